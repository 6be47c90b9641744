package cmd

import (
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "yaourt-fem-dg",
	Short: "Discontinuous Galerkin solvers for scalar PDEs on planar meshes",
	Long: `
Two-dimensional discontinuous Galerkin finite-element solvers for scalar
linear PDEs on unstructured planar meshes: a pure diffusion problem with
symmetric interior penalty stabilisation and a first-order advection-reaction
problem with optional upwinding. Solutions are measured against manufactured
reference solutions in the L2 norm and can be archived for visualisation.`,
	SilenceUsage: true,
}

// Execute runs the root command; any error terminates with a non-zero exit
// status.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.yaourt-fem-dg.yaml)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".yaourt-fem-dg")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
