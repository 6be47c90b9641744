package cmd

import (
	"fmt"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/s-lunowa/yaourt-fem-dg/dg"
)

var advectionCmd = &cobra.Command{
	Use:   "advection",
	Short: "Solve the advection-reaction problem with optional upwinding",
	Long: `
Discretises beta.grad(u) + mu u = f on the unit square with a dG method using
centred or upwinded numerical fluxes, solves the resulting linear system
iteratively and reports the L2 distance to the manufactured reference
solution. The operator is asymmetric, so the conjugate gradient solver is
applied to the normal equations.`,
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
		prob := dg.DefaultAdvectionProblem()
		fmt.Printf("Running dG advection-reaction solver\n")
		fmt.Printf("\tdegree: %d, eta: %g, upwinding: %v, mesh: %s with %d cells\n",
			opt.cfg.Degree, opt.cfg.Eta, opt.cfg.UseUpwinding, opt.meshFamily, msh.NumCells())
		status, sol, err := dg.RunAdvectionReactionSolver(msh, opt.cfg, prob)
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
	rootCmd.AddCommand(advectionCmd)
	addSolverFlags(advectionCmd)
	advectionCmd.Flags().BoolP("upwind", "u", false, "use upwinded numerical fluxes")
}
