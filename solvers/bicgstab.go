package solvers

import (
	"fmt"

	"github.com/james-bowman/sparse"

	"github.com/s-lunowa/yaourt-fem-dg/utils"
)

// BiCGStab solves the generally asymmetric system lhs*sol = rhs with the
// stabilised biconjugate gradient method, right-preconditioned with pc when
// given. Termination semantics match ConjugateGradient; UseNormalEqns is
// ignored since the method handles asymmetric operators directly.
func BiCGStab(params CGParams, lhs, pc sparse.Sparser, rhs, sol utils.Vector) (Result, error) {
	var (
		n     = rhs.Len()
		x     = sol.Data()
		r     = make([]float64, n)
		rHat  = make([]float64, n)
		v     = make([]float64, n)
		p     = make([]float64, n)
		pHat  = make([]float64, n)
		s     = make([]float64, n)
		sHat  = make([]float64, n)
		t     = make([]float64, n)
		res   Result
		rho   = 1.0
		alpha = 1.0
		omega = 1.0
	)

	precond := func(dst, src []float64) {
		if pc == nil {
			copy(dst, src)
		} else {
			spmv(dst, pc, src)
		}
	}

	spmv(r, lhs, x)
	for i := range r {
		r[i] = rhs.AtVec(i) - r[i]
	}
	copy(rHat, r)
	r0norm := norm2(r)
	if r0norm == 0 {
		return Result{Status: Converged}, nil
	}

	for it := 1; it <= params.MaxIter; it++ {
		rhoNew := dot(rHat, r)
		if rhoNew == 0 || omega == 0 {
			res.Status = Diverged
			res.Iterations = it
			return res, fmt.Errorf("%w: breakdown at iteration %d", ErrDiverged, it)
		}
		beta := (rhoNew / rho) * (alpha / omega)
		for i := range p {
			p[i] = r[i] + beta*(p[i]-omega*v[i])
		}
		precond(pHat, p)
		spmv(v, lhs, pHat)
		alpha = rhoNew / dot(rHat, v)
		for i := range s {
			s[i] = r[i] - alpha*v[i]
		}
		precond(sHat, s)
		spmv(t, lhs, sHat)
		tt := dot(t, t)
		if tt == 0 {
			omega = 0
		} else {
			omega = dot(t, s) / tt
		}
		for i := range x {
			x[i] += alpha*pHat[i] + omega*sHat[i]
			r[i] = s[i] - omega*t[i]
		}
		rho = rhoNew

		rr := norm2(r) / r0norm
		res.Iterations = it
		res.Residual = rr
		res.History = append(res.History, rr)
		if params.Verbose {
			fmt.Printf("  bicgstab: iteration %6d, relative residual %e\n", it, rr)
		}
		if rr <= params.RRTol {
			res.Status = Converged
			return res, nil
		}
		if rr > params.RRMax {
			res.Status = Diverged
			return res, fmt.Errorf("%w: relative residual %e after %d iterations", ErrDiverged, rr, it)
		}
	}

	res.Status = MaxIterationsReached
	return res, fmt.Errorf("%w: relative residual %e after %d iterations", ErrMaxIterations, res.Residual, params.MaxIter)
}
