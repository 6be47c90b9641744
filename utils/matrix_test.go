package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatrixOps(t *testing.T) {
	{ // Construction and chaining
		A := NewMatrix(2, 2, []float64{1, 2, 3, 4})
		B := A.Copy().Scale(2)
		assert.Equal(t, []float64{2, 4, 6, 8}, B.Data())
		assert.Equal(t, []float64{1, 2, 3, 4}, A.Data())

		B.Add(A)
		assert.Equal(t, []float64{3, 6, 9, 12}, B.Data())
		B.Subtract(A).Subtract(A)
		assert.Equal(t, []float64{1, 2, 3, 4}, B.Data())

		assert.Panics(t, func() { NewMatrix(2, 2, []float64{1, 2, 3}) })
	}
	{ // Transpose and multiplication
		A := NewMatrix(2, 3, []float64{1, 2, 3, 4, 5, 6})
		At := A.Transpose()
		nr, nc := At.Dims()
		assert.Equal(t, 3, nr)
		assert.Equal(t, 2, nc)
		assert.Equal(t, []float64{1, 4, 2, 5, 3, 6}, At.Data())

		AAt := A.Mul(At)
		assert.Equal(t, []float64{14, 32, 32, 77}, AAt.Data())

		v := A.MulVec(NewVector(3, []float64{1, 1, 1}))
		assert.Equal(t, []float64{6, 15}, v.Data())
	}
	{ // Rank-one accumulation
		A := NewMatrix(2, 2)
		x := NewVector(2, []float64{1, 2})
		y := NewVector(2, []float64{3, 4})
		A.AddOuter(2, x, y)
		assert.Equal(t, []float64{6, 8, 12, 16}, A.Data())
	}
}

func TestLUSolve(t *testing.T) {
	// Projection round-trip: for x in the solvable range, solving A y = A x
	// recovers x.
	A := NewMatrix(3, 3, []float64{
		4, 1, 0,
		1, 3, 1,
		0, 1, 2,
	})
	x := NewVector(3, []float64{1, -2, 0.5})
	b := A.MulVec(x)
	y := A.LUSolve(b)
	assert.InDeltaSlice(t, x.Data(), y.Data(), 1e-12)
}

func TestVectorOps(t *testing.T) {
	v := NewVector(3, []float64{3, -1, 2})
	assert.Equal(t, 3.0, v.Max())
	assert.Equal(t, -1.0, v.Min())
	assert.InDelta(t, 14.0, v.Dot(v), 1e-14)
	assert.InDelta(t, v.Norm()*v.Norm(), v.Dot(v), 1e-12)

	w := v.Copy().AddScaled(2, v)
	assert.Equal(t, []float64{9, -3, 6}, w.Data())
	assert.Equal(t, []float64{3, -1, 2}, v.Data())

	w.Subtract(v).Scale(0.5)
	assert.Equal(t, []float64{3, -1, 2}, w.Data())
}

func TestSymTriDiagonal(t *testing.T) {
	S := NewSymTriDiagonal([]float64{1, 2, 3}, []float64{4, 5})
	assert.Equal(t, 4.0, S.At(0, 1))
	assert.Equal(t, 4.0, S.At(1, 0))
	assert.Equal(t, 5.0, S.At(2, 1))
	assert.Equal(t, 0.0, S.At(0, 2))
	assert.Equal(t, 2.0, S.At(1, 1))
}
