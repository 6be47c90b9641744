package dg

import (
	"fmt"
	"math"

	"github.com/s-lunowa/yaourt-fem-dg/bases"
	"github.com/s-lunowa/yaourt-fem-dg/mesh"
	"github.com/s-lunowa/yaourt-fem-dg/quadratures"
	"github.com/s-lunowa/yaourt-fem-dg/utils"
)

// SolverStatus is the convergence report of one driver run. The two error
// fields hold squared L2 error surrogates; their square roots are the error
// estimates.
type SolverStatus struct {
	MeshH      float64
	L2ErrSqQP  float64
	L2ErrSqMM  float64
	Iterations int
	Residuals  []float64
}

func (s SolverStatus) String() string {
	return fmt.Sprintf("Convergence results:\n"+
		"  mesh size (h):         %v\n"+
		"  L2-norm error (qp):    %v\n"+
		"  L2-norm error (mm):    %v\n"+
		"  solver iterations:     %v",
		s.MeshH, math.Sqrt(s.L2ErrSqQP), math.Sqrt(s.L2ErrSqMM), s.Iterations)
}

// L2Errors measures the global solution against the reference solution with
// two surrogates per cell: a direct quadrature-point sum and the mass-matrix
// residual of the local L2 projection of the reference.
func L2Errors(msh mesh.Mesh, degree int, sol utils.Vector, ref ScalarFunc) (errQP, errMM float64) {
	for cl := 0; cl < msh.NumCells(); cl++ {
		b := bases.New(msh, cl, degree)
		size := b.Size()
		ofs := msh.Offset(cl)

		locSol := utils.NewVector(size)
		for i := 0; i < size; i++ {
			locSol.SetVec(i, sol.AtVec(size*ofs+i))
		}

		M := utils.NewMatrix(size, size)
		a := utils.NewVector(size)

		for _, qp := range quadratures.Cell(msh, cl, 2*degree) {
			phi := b.Eval(qp.P)
			sv := ref(qp.P)

			M.AddOuter(qp.W, phi, phi)
			a.AddScaled(qp.W*sv, phi)

			cv := locSol.Dot(phi)
			errQP += qp.W * (sv - cv) * (sv - cv)
		}

		proj := M.LUSolve(a)
		diff := proj.Copy().Subtract(locSol)
		errMM += diff.Dot(M.MulVec(diff))
	}
	return
}
