package dg

import (
	"github.com/s-lunowa/yaourt-fem-dg/bases"
	"github.com/s-lunowa/yaourt-fem-dg/mesh"
	"github.com/s-lunowa/yaourt-fem-dg/quadratures"
	"github.com/s-lunowa/yaourt-fem-dg/utils"
)

// RunAdvectionReactionSolver assembles and solves the first-order
// advection-reaction discretisation with optional upwind stabilisation. The
// assembled operator is asymmetric, so CG runs on the normal equations.
func RunAdvectionReactionSolver(msh mesh.Mesh, cfg Config, prob Problem) (SolverStatus, utils.Vector, error) {
	var status SolverStatus
	status.MeshH = msh.Diameter()

	msh.ComputeConnectivity()

	degree := cfg.Degree
	eta := cfg.Eta

	assm := NewAssembler(msh, degree, cfg.UsePreconditioner)
	for tcl := 0; tcl < msh.NumCells(); tcl++ {
		tb := bases.New(msh, tcl, degree)
		qps := quadratures.Cell(msh, tcl, 2*degree)
		K, locRHS := AdvectionVolume(qps, tb, prob.Mu, prob.Beta, prob.RHS)

		for fc := 0; fc < msh.NumFaces(tcl); fc++ {
			ncl, hasNeighbour := msh.NeighbourVia(tcl, fc)
			nb := bases.New(msh, ncl, degree)

			nu := msh.Normal(tcl, fc)
			fqps := quadratures.Face(msh, tcl, fc, 2*degree)

			Att, Atn := AdvectionFace(fqps, nu, eta, cfg.UseUpwinding, tb, nb, hasNeighbour, prob.Beta)
			assm.AssembleFace(tcl, tcl, Att)
			if hasNeighbour {
				assm.AssembleFace(tcl, ncl, Atn)
			}
		}

		assm.AssembleCell(tcl, K, locRHS)
	}
	assm.Finalize()

	sol := utils.NewVector(assm.SystemSize())
	res, err := runSolver(cfg, assm, true, sol)
	status.Iterations = res.Iterations
	status.Residuals = res.History
	if err != nil {
		return status, sol, err
	}

	status.L2ErrSqQP, status.L2ErrSqMM = L2Errors(msh, degree, sol, prob.RefSol)
	return status, sol, nil
}
