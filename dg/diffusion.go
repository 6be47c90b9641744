package dg

import (
	"fmt"

	"github.com/james-bowman/sparse"

	"github.com/s-lunowa/yaourt-fem-dg/bases"
	"github.com/s-lunowa/yaourt-fem-dg/mesh"
	"github.com/s-lunowa/yaourt-fem-dg/quadratures"
	"github.com/s-lunowa/yaourt-fem-dg/solvers"
	"github.com/s-lunowa/yaourt-fem-dg/utils"
)

// RunDiffusionSolver assembles and solves the SIPG discretisation of the
// pure diffusion problem, then measures the solution against the reference.
// The penalty is eta = 3 k^2 * cfg.Eta, scaled per face by 1/diam(F).
func RunDiffusionSolver(msh mesh.Mesh, cfg Config, prob Problem) (SolverStatus, utils.Vector, error) {
	var status SolverStatus
	status.MeshH = msh.Diameter()

	msh.ComputeConnectivity()

	degree := cfg.Degree
	eta := 3 * float64(degree*degree) * cfg.Eta

	assm := NewAssembler(msh, degree, cfg.UsePreconditioner)
	for tcl := 0; tcl < msh.NumCells(); tcl++ {
		tb := bases.New(msh, tcl, degree)
		qps := quadratures.Cell(msh, tcl, 2*degree)
		K, locRHS := DiffusionVolume(qps, tb, prob.RHS)

		for fc := 0; fc < msh.NumFaces(tcl); fc++ {
			ncl, hasNeighbour := msh.NeighbourVia(tcl, fc)
			nb := bases.New(msh, ncl, degree)

			nu := msh.Normal(tcl, fc)
			etaL := eta / msh.FaceDiameter(tcl, fc)
			fqps := quadratures.Face(msh, tcl, fc, 2*degree)

			Att, Atn := DiffusionFace(fqps, nu, etaL, tb, nb, hasNeighbour, prob.Dirichlet, locRHS)
			assm.AssembleFace(tcl, tcl, Att)
			if hasNeighbour {
				assm.AssembleFace(tcl, ncl, Atn)
			}
		}

		assm.AssembleCell(tcl, K, locRHS)
	}
	assm.Finalize()

	sol := utils.NewVector(assm.SystemSize())
	res, err := runSolver(cfg, assm, false, sol)
	status.Iterations = res.Iterations
	status.Residuals = res.History
	if err != nil {
		return status, sol, err
	}

	status.L2ErrSqQP, status.L2ErrSqMM = L2Errors(msh, degree, sol, prob.RefSol)
	return status, sol, nil
}

// runSolver inverts the finalized operator with the configured Krylov
// method. normalEqns requests CG on the normal equations for asymmetric
// operators; BiCGSTAB handles those directly.
func runSolver(cfg Config, assm *Assembler, normalEqns bool, sol utils.Vector) (solvers.Result, error) {
	params := solvers.CGParams{
		RRTol:   1e-8,
		RRMax:   10000,
		MaxIter: 2 * assm.SystemSize(),
		Verbose: cfg.Verbose,
	}
	var pc sparse.Sparser
	if cfg.UsePreconditioner {
		pc = assm.PC
	}

	switch cfg.Solver {
	case CG:
		params.UseNormalEqns = normalEqns
		return solvers.ConjugateGradient(params, assm.LHS, pc, assm.RHS, sol)
	case BiCGSTAB:
		return solvers.BiCGStab(params, assm.LHS, pc, assm.RHS, sol)
	default:
		return solvers.Result{}, fmt.Errorf("dg: solver %v is not implemented, use cg or bicgstab", cfg.Solver)
	}
}
