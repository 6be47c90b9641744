package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/s-lunowa/yaourt-fem-dg/bases"
	"github.com/s-lunowa/yaourt-fem-dg/dataio"
	"github.com/s-lunowa/yaourt-fem-dg/dg"
	"github.com/s-lunowa/yaourt-fem-dg/mesh"
	"github.com/s-lunowa/yaourt-fem-dg/utils"
)

// shatterAmplitude is the relative node perturbation applied by -S.
const shatterAmplitude = 0.2

type runOptions struct {
	cfg          dg.Config
	meshFamily   string
	outputFile   string
	gnuplotFile  string
	residualFile string
	profileCPU   bool
}

func addSolverFlags(c *cobra.Command) {
	c.Flags().Float64P("eta", "e", 1.0, "stabilisation weight")
	c.Flags().IntP("degree", "k", 1, "polynomial degree of the basis (at least 1)")
	c.Flags().IntP("ref-levels", "r", 4, "number of uniform mesh refinement levels")
	c.Flags().StringP("mesh", "m", "tri", "mesh family, tri or quad")
	c.Flags().BoolP("quadrangles", "q", false, "use the quadrangular mesh")
	c.Flags().BoolP("simplices", "s", false, "use the triangular mesh")
	c.Flags().BoolP("precondition", "p", false, "use the Jacobi preconditioner")
	c.Flags().BoolP("shatter", "S", false, "randomly perturb the interior mesh nodes")
	c.Flags().BoolP("verbose", "v", false, "print per-iteration solver residuals")
	c.Flags().String("solver", "cg", "iterative solver, cg or bicgstab")
	c.Flags().StringP("input", "I", "", "YAML parameter file, explicit flags take precedence")
	c.Flags().StringP("output", "o", "", "write mesh and solution to this VTK file")
	c.Flags().String("gnuplot", "", "write the sampled solution to this gnuplot data file")
	c.Flags().String("residuals", "", "write the solver residual history to this PNG file")
	c.Flags().Bool("profile", false, "write a CPU profile to the working directory")
}

func parseOptions(cmd *cobra.Command) (runOptions, error) {
	f := cmd.Flags()
	opt := runOptions{
		cfg:        dg.DefaultConfig(),
		meshFamily: "tri",
	}

	if in, _ := f.GetString("input"); in != "" {
		data, err := os.ReadFile(in)
		if err != nil {
			return opt, fmt.Errorf("reading parameter file: %w", err)
		}
		var ip InputParameters
		if err := ip.Parse(data); err != nil {
			return opt, fmt.Errorf("parsing parameter file %s: %w", in, err)
		}
		ip.Print()
		if err := ip.Apply(&opt.cfg, &opt.meshFamily); err != nil {
			return opt, err
		}
	}

	if f.Changed("eta") {
		opt.cfg.Eta, _ = f.GetFloat64("eta")
	}
	if f.Changed("degree") {
		opt.cfg.Degree, _ = f.GetInt("degree")
	}
	if f.Changed("ref-levels") {
		opt.cfg.RefLevels, _ = f.GetInt("ref-levels")
	}
	if f.Changed("solver") {
		s, _ := f.GetString("solver")
		st, err := dg.ParseSolverType(s)
		if err != nil {
			return opt, err
		}
		opt.cfg.Solver = st
	}
	if v, _ := f.GetBool("precondition"); v {
		opt.cfg.UsePreconditioner = true
	}
	if v, _ := f.GetBool("shatter"); v {
		opt.cfg.Shatter = true
	}
	if v, _ := f.GetBool("verbose"); v {
		opt.cfg.Verbose = true
	}
	if f.Lookup("upwind") != nil {
		if v, _ := f.GetBool("upwind"); v {
			opt.cfg.UseUpwinding = true
		}
	}

	if f.Changed("mesh") {
		opt.meshFamily, _ = f.GetString("mesh")
	} else if q, _ := f.GetBool("quadrangles"); q {
		opt.meshFamily = "quad"
	} else if s, _ := f.GetBool("simplices"); s {
		opt.meshFamily = "tri"
	}

	if opt.cfg.Degree < 1 {
		fmt.Println("Degree must be positive. Falling back to degree 1.")
		opt.cfg.Degree = 1
	}
	if opt.cfg.RefLevels < 0 {
		fmt.Println("Refinement levels must be non-negative. Falling back to 0.")
		opt.cfg.RefLevels = 0
	}

	opt.outputFile, _ = f.GetString("output")
	opt.gnuplotFile, _ = f.GetString("gnuplot")
	opt.residualFile, _ = f.GetString("residuals")
	opt.profileCPU, _ = f.GetBool("profile")
	return opt, nil
}

func buildMesh(family string, refLevels int, shatter bool) (mesh.Mesh, error) {
	var msh mesh.Mesh
	switch family {
	case "tri":
		msh = mesh.NewTriMesh(refLevels)
	case "quad":
		msh = mesh.NewQuadMesh(refLevels)
	default:
		return nil, fmt.Errorf("unknown mesh family %q, want tri or quad", family)
	}
	if shatter {
		msh.Shatter(shatterAmplitude)
	}
	return msh, nil
}

// export writes the optional post-processing artefacts. Export failures are
// reported but do not invalidate the computed solution.
func export(opt runOptions, msh mesh.Mesh, status dg.SolverStatus, sol utils.Vector, prob dg.Problem) {
	if opt.outputFile != "" {
		if err := writeArchive(opt.outputFile, msh, opt.cfg.Degree, sol, prob); err != nil {
			fmt.Fprintf(os.Stderr, "writing %s: %v\n", opt.outputFile, err)
		}
	}
	if opt.gnuplotFile != "" {
		if err := writeGnuplotFile(opt.gnuplotFile, msh, opt.cfg.Degree, sol); err != nil {
			fmt.Fprintf(os.Stderr, "writing %s: %v\n", opt.gnuplotFile, err)
		}
	}
	if opt.residualFile != "" {
		if err := dataio.SaveResidualPlot(opt.residualFile, status.Residuals); err != nil {
			fmt.Fprintf(os.Stderr, "writing %s: %v\n", opt.residualFile, err)
		}
	}
}

// writeArchive stores the mesh, the cellwise solution means and the problem
// coefficients sampled at the mesh nodes.
func writeArchive(path string, msh mesh.Mesh, degree int, sol utils.Vector, prob dg.Problem) error {
	db, err := dataio.Create(path)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.AddMesh(msh, "mesh"); err != nil {
		return err
	}

	// The zeroth basis function is the constant one, so its coefficient is
	// the cell mean of the solution.
	bs := bases.Size(msh.ElementType(), degree)
	cellVals := make([]float64, msh.NumCells())
	for cl := range cellVals {
		cellVals[cl] = sol.AtVec(bs * cl)
	}
	if err := db.AddZonalVariable("solution", cellVals); err != nil {
		return err
	}

	pts := msh.Points()
	muVals := make([]float64, len(pts))
	epsVals := make([]float64, len(pts))
	betaX := make([]float64, len(pts))
	betaY := make([]float64, len(pts))
	for i, p := range pts {
		muVals[i] = prob.Mu(p)
		epsVals[i] = prob.Epsilon(p)
		b := prob.Beta(p)
		betaX[i] = b.X
		betaY[i] = b.Y
	}
	for _, v := range []struct {
		name string
		vals []float64
	}{
		{"mu", muVals},
		{"epsilon", epsVals},
		{"beta_x", betaX},
		{"beta_y", betaY},
	} {
		if err := db.AddNodalVariable(v.name, v.vals); err != nil {
			return err
		}
	}
	return nil
}

func writeGnuplotFile(path string, msh mesh.Mesh, degree int, sol utils.Vector) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return dataio.WriteGnuplot(f, msh, degree, sol, 6)
}
