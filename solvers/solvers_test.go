package solvers

import (
	"testing"

	"github.com/james-bowman/sparse"
	"github.com/stretchr/testify/assert"

	"github.com/s-lunowa/yaourt-fem-dg/utils"
)

func csrFromDense(n int, data []float64) *sparse.CSR {
	dok := sparse.NewDOK(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if v := data[i*n+j]; v != 0 {
				dok.Set(i, j, v)
			}
		}
	}
	return dok.ToCSR()
}

// spdSystem is a small SPD test operator with a known solution.
func spdSystem() (*sparse.CSR, utils.Vector, utils.Vector) {
	lhs := csrFromDense(4, []float64{
		4, 1, 0, 0,
		1, 5, 1, 0,
		0, 1, 6, 1,
		0, 0, 1, 4,
	})
	want := utils.NewVector(4, []float64{1, -1, 2, 0.5})
	rhs := utils.NewVector(4)
	spmv(rhs.Data(), lhs, want.Data())
	return lhs, rhs, want
}

func defaultParams(n int) CGParams {
	return CGParams{RRTol: 1e-12, RRMax: 1e6, MaxIter: 10 * n}
}

func TestConjugateGradient(t *testing.T) {
	{ // Plain SPD solve
		lhs, rhs, want := spdSystem()
		sol := utils.NewVector(4)
		res, err := ConjugateGradient(defaultParams(4), lhs, nil, rhs, sol)
		assert.NoError(t, err)
		assert.Equal(t, Converged, res.Status)
		assert.InDeltaSlice(t, want.Data(), sol.Data(), 1e-9)
		assert.Equal(t, len(res.History), res.Iterations)
		assert.LessOrEqual(t, res.Residual, 1e-12)
	}
	{ // Jacobi-preconditioned solve reaches the same solution
		lhs, rhs, want := spdSystem()
		pc := sparse.NewDIA(4, 4, []float64{1 / 4., 1 / 5., 1 / 6., 1 / 4.})
		sol := utils.NewVector(4)
		res, err := ConjugateGradient(defaultParams(4), lhs, pc, rhs, sol)
		assert.NoError(t, err)
		assert.Equal(t, Converged, res.Status)
		assert.InDeltaSlice(t, want.Data(), sol.Data(), 1e-9)
	}
	{ // Zero right-hand side converges immediately
		lhs, _, _ := spdSystem()
		sol := utils.NewVector(4)
		res, err := ConjugateGradient(defaultParams(4), lhs, nil, utils.NewVector(4), sol)
		assert.NoError(t, err)
		assert.Equal(t, Converged, res.Status)
		assert.Equal(t, 0, res.Iterations)
	}
	{ // Iteration cap
		lhs, rhs, _ := spdSystem()
		params := defaultParams(4)
		params.MaxIter = 1
		sol := utils.NewVector(4)
		res, err := ConjugateGradient(params, lhs, nil, rhs, sol)
		assert.ErrorIs(t, err, ErrMaxIterations)
		assert.Equal(t, MaxIterationsReached, res.Status)
	}
}

func TestConjugateGradientNormalEquations(t *testing.T) {
	// Asymmetric but invertible operator: CG on A^T A x = A^T b.
	lhs := csrFromDense(3, []float64{
		2, 1, 0,
		0, 3, 1,
		1, 0, 4,
	})
	want := utils.NewVector(3, []float64{1, 2, -1})
	rhs := utils.NewVector(3)
	spmv(rhs.Data(), lhs, want.Data())

	params := defaultParams(3)
	params.UseNormalEqns = true
	sol := utils.NewVector(3)
	res, err := ConjugateGradient(params, lhs, nil, rhs, sol)
	assert.NoError(t, err)
	assert.Equal(t, Converged, res.Status)
	assert.InDeltaSlice(t, want.Data(), sol.Data(), 1e-8)
}

func TestBiCGStab(t *testing.T) {
	{ // Asymmetric solve without forming the normal equations
		lhs := csrFromDense(3, []float64{
			4, 1, 0,
			0, 5, 2,
			1, 0, 6,
		})
		want := utils.NewVector(3, []float64{-1, 0.5, 2})
		rhs := utils.NewVector(3)
		spmv(rhs.Data(), lhs, want.Data())

		sol := utils.NewVector(3)
		res, err := BiCGStab(defaultParams(3), lhs, nil, rhs, sol)
		assert.NoError(t, err)
		assert.Equal(t, Converged, res.Status)
		assert.InDeltaSlice(t, want.Data(), sol.Data(), 1e-8)
	}
	{ // SPD systems are handled as well
		lhs, rhs, want := spdSystem()
		sol := utils.NewVector(4)
		res, err := BiCGStab(defaultParams(4), lhs, nil, rhs, sol)
		assert.NoError(t, err)
		assert.Equal(t, Converged, res.Status)
		assert.InDeltaSlice(t, want.Data(), sol.Data(), 1e-8)
	}
}

func TestSpmv(t *testing.T) {
	a := csrFromDense(2, []float64{1, 2, 3, 4})
	x := []float64{1, 1}
	dst := make([]float64, 2)
	spmv(dst, a, x)
	assert.Equal(t, []float64{3, 7}, dst)
	spmvTrans(dst, a, x)
	assert.Equal(t, []float64{4, 6}, dst)
}
