package cmd

import (
	"fmt"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/s-lunowa/yaourt-fem-dg/dg"
)

var diffusionCmd = &cobra.Command{
	Use:   "diffusion",
	Short: "Solve the pure diffusion problem with interior penalty stabilisation",
	Long: `
Discretises -div(grad u) = f on the unit square with a symmetric interior
penalty dG method, solves the resulting linear system iteratively and reports
the L2 distance to the manufactured reference solution.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opt, err := parseOptions(cmd)
		if err != nil {
			return err
		}
		if opt.profileCPU {
			defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
		}
		msh, err := buildMesh(opt.meshFamily, opt.cfg.RefLevels, opt.cfg.Shatter)
		if err != nil {
			return err
		}
		prob := dg.DefaultDiffusionProblem()
		fmt.Printf("Running dG diffusion solver\n")
		fmt.Printf("\tdegree: %d, eta: %g, mesh: %s with %d cells\n",
			opt.cfg.Degree, opt.cfg.Eta, opt.meshFamily, msh.NumCells())
		status, sol, err := dg.RunDiffusionSolver(msh, opt.cfg, prob)
		if err != nil {
			fmt.Println(status)
			return err
		}
		fmt.Println(status)
		export(opt, msh, status, sol, prob)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(diffusionCmd)
	addSolverFlags(diffusionCmd)
}
