// Package dg implements the discretisation engine: per-cell and per-face
// local forms, their accumulation into a global sparse operator, and the
// a-posteriori L2 error measurement against a manufactured solution.
package dg

import (
	"fmt"
	"math"
	"strings"

	"github.com/s-lunowa/yaourt-fem-dg/mesh"
)

type SolverType uint8

const (
	CG SolverType = iota
	BiCGSTAB
	QMR
	Direct
)

func (s SolverType) String() string {
	switch s {
	case CG:
		return "cg"
	case BiCGSTAB:
		return "bicgstab"
	case QMR:
		return "qmr"
	default:
		return "direct"
	}
}

func ParseSolverType(s string) (SolverType, error) {
	switch strings.ToLower(s) {
	case "cg":
		return CG, nil
	case "bicgstab":
		return BiCGSTAB, nil
	case "qmr":
		return QMR, nil
	case "direct":
		return Direct, nil
	}
	return CG, fmt.Errorf("unknown solver %q (want cg, bicgstab, qmr or direct)", s)
}

// Config collects the discretisation options shared by the two drivers.
type Config struct {
	Eta               float64
	Degree            int
	RefLevels         int
	UsePreconditioner bool
	UseUpwinding      bool
	Shatter           bool
	Solver            SolverType
	Verbose           bool
}

func DefaultConfig() Config {
	return Config{
		Eta:       1.0,
		Degree:    1,
		RefLevels: 4,
		Solver:    CG,
	}
}

// ScalarFunc and VectorFunc are pure point-wise coefficient callbacks.
type ScalarFunc func(pt mesh.Point) float64
type VectorFunc func(pt mesh.Point) mesh.Vec2

// Problem bundles the coefficients and data of one scalar PDE: reaction mu,
// advection field beta, diffusion epsilon, source rhs, Dirichlet datum and
// the manufactured reference solution.
type Problem struct {
	Mu        ScalarFunc
	Beta      VectorFunc
	Epsilon   ScalarFunc
	RHS       ScalarFunc
	Dirichlet ScalarFunc
	RefSol    ScalarFunc
}

// DefaultDiffusionProblem is the manufactured pure-diffusion problem
// u = sin(pi x) sin(pi y) on the unit square with homogeneous Dirichlet data.
func DefaultDiffusionProblem() Problem {
	return Problem{
		Mu:      func(mesh.Point) float64 { return 1.0 },
		Beta:    func(mesh.Point) mesh.Vec2 { return mesh.Vec2{X: 1, Y: 0} },
		Epsilon: func(mesh.Point) float64 { return 1.0 },
		RHS: func(pt mesh.Point) float64 {
			return 2 * math.Pi * math.Pi * math.Sin(math.Pi*pt.X) * math.Sin(math.Pi*pt.Y)
		},
		Dirichlet: func(mesh.Point) float64 { return 0.0 },
		RefSol: func(pt mesh.Point) float64 {
			return math.Sin(math.Pi*pt.X) * math.Sin(math.Pi*pt.Y)
		},
	}
}

// DefaultAdvectionProblem is the manufactured advection-reaction problem
// u = sin(pi x) with beta = (1,0), mu = 1 and homogeneous inflow datum.
func DefaultAdvectionProblem() Problem {
	mu := func(mesh.Point) float64 { return 1.0 }
	beta := func(mesh.Point) mesh.Vec2 { return mesh.Vec2{X: 1, Y: 0} }
	return Problem{
		Mu:      mu,
		Beta:    beta,
		Epsilon: func(mesh.Point) float64 { return 1.0 },
		RHS: func(pt mesh.Point) float64 {
			u := math.Sin(math.Pi * pt.X)
			du := mesh.Vec2{X: math.Pi * math.Cos(math.Pi*pt.X), Y: 0}
			return beta(pt).Dot(du) + mu(pt)*u
		},
		Dirichlet: func(mesh.Point) float64 { return 0.0 },
		RefSol: func(pt mesh.Point) float64 {
			return math.Sin(math.Pi * pt.X)
		},
	}
}
