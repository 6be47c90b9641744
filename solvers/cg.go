// Package solvers provides the Krylov solvers used to invert the assembled
// sparse DG operators.
package solvers

import (
	"errors"
	"fmt"

	"github.com/james-bowman/sparse"

	"github.com/s-lunowa/yaourt-fem-dg/utils"
)

type Status uint8

const (
	Converged Status = iota
	Diverged
	MaxIterationsReached
)

func (s Status) String() string {
	switch s {
	case Converged:
		return "converged"
	case Diverged:
		return "diverged"
	default:
		return "iteration cap reached"
	}
}

var (
	ErrDiverged      = errors.New("solvers: residual blow-up, solver diverged")
	ErrMaxIterations = errors.New("solvers: iteration cap reached before convergence")
)

// CGParams configures the conjugate gradient driver.
type CGParams struct {
	RRTol   float64 // relative residual tolerance
	RRMax   float64 // relative residual blow-up bound
	MaxIter int
	Verbose bool
	// UseNormalEqns solves A^T A x = A^T b instead of A x = b; the reported
	// residual is the residual of the normal system.
	UseNormalEqns bool
}

// Result reports how a solve terminated. History holds the relative residual
// after every iteration.
type Result struct {
	Status     Status
	Iterations int
	Residual   float64
	History    []float64
}

// spmv computes dst = a * x.
func spmv(dst []float64, a sparse.Sparser, x []float64) {
	for i := range dst {
		dst[i] = 0
	}
	a.DoNonZero(func(i, j int, v float64) {
		dst[i] += v * x[j]
	})
}

// spmvTrans computes dst = a^T * x.
func spmvTrans(dst []float64, a sparse.Sparser, x []float64) {
	for i := range dst {
		dst[i] = 0
	}
	a.DoNonZero(func(i, j int, v float64) {
		dst[j] += v * x[i]
	})
}

func dot(a, b []float64) (d float64) {
	for i, v := range a {
		d += v * b[i]
	}
	return
}

// ConjugateGradient solves lhs*sol = rhs with the Hestenes-Stiefel recurrence,
// optionally left-preconditioned with pc (pass nil for none) and optionally on
// the normal equations. sol carries the initial guess in and the final
// iterate out.
func ConjugateGradient(params CGParams, lhs, pc sparse.Sparser, rhs, sol utils.Vector) (Result, error) {
	var (
		n    = rhs.Len()
		x    = sol.Data()
		b    = make([]float64, n)
		r    = make([]float64, n)
		z    = make([]float64, n)
		p    = make([]float64, n)
		q    = make([]float64, n)
		work = make([]float64, n)
		res  Result
	)

	apply := func(dst, src []float64) {
		if params.UseNormalEqns {
			spmv(work, lhs, src)
			spmvTrans(dst, lhs, work)
		} else {
			spmv(dst, lhs, src)
		}
	}

	copy(b, rhs.Data())
	if params.UseNormalEqns {
		spmvTrans(b, lhs, rhs.Data())
	}

	apply(r, x)
	for i := range r {
		r[i] = b[i] - r[i]
	}
	r0norm := norm2(r)
	if r0norm == 0 {
		return Result{Status: Converged}, nil
	}

	precond := func(dst, src []float64) {
		if pc == nil {
			copy(dst, src)
		} else {
			spmv(dst, pc, src)
		}
	}

	precond(z, r)
	copy(p, z)
	rho := dot(r, z)

	for it := 1; it <= params.MaxIter; it++ {
		apply(q, p)
		pq := dot(p, q)
		if pq == 0 {
			res.Status = Diverged
			res.Iterations = it
			return res, fmt.Errorf("%w: breakdown at iteration %d", ErrDiverged, it)
		}
		alpha := rho / pq
		for i := range x {
			x[i] += alpha * p[i]
			r[i] -= alpha * q[i]
		}

		rr := norm2(r) / r0norm
		res.Iterations = it
		res.Residual = rr
		res.History = append(res.History, rr)
		if params.Verbose {
			fmt.Printf("  cg: iteration %6d, relative residual %e\n", it, rr)
		}
		if rr <= params.RRTol {
			res.Status = Converged
			return res, nil
		}
		if rr > params.RRMax {
			res.Status = Diverged
			return res, fmt.Errorf("%w: relative residual %e after %d iterations", ErrDiverged, rr, it)
		}

		precond(z, r)
		rhoNew := dot(r, z)
		beta := rhoNew / rho
		for i := range p {
			p[i] = z[i] + beta*p[i]
		}
		rho = rhoNew
	}

	res.Status = MaxIterationsReached
	return res, fmt.Errorf("%w: relative residual %e after %d iterations", ErrMaxIterations, res.Residual, params.MaxIter)
}

func norm2(v []float64) float64 {
	return utils.NewVector(len(v), v).Norm()
}
