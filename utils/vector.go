package utils

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Vector wraps gonum's dense vector the same way Matrix wraps mat.Dense.
type Vector struct {
	V *mat.VecDense
}

func NewVector(n int, dataO ...[]float64) (R Vector) {
	var v *mat.VecDense
	if len(dataO) != 0 {
		if len(dataO[0]) != n {
			err := fmt.Errorf("mismatch in allocation: NewVector n = %v, len(data[0]) = %v", n, len(dataO[0]))
			panic(err)
		}
		v = mat.NewVecDense(n, dataO[0])
	} else {
		v = mat.NewVecDense(n, make([]float64, n))
	}
	R = Vector{v}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (v Vector) Dims() (r, c int)    { return v.V.Dims() }
func (v Vector) At(i, j int) float64 { return v.V.At(i, j) }
func (v Vector) T() mat.Matrix       { return v.V.T() }

func (v Vector) Len() int            { return v.V.Len() }
func (v Vector) AtVec(i int) float64 { return v.V.AtVec(i) }
func (v Vector) Data() []float64     { return v.V.RawVector().Data }

func (v Vector) SetVec(i int, val float64) Vector { // Changes receiver
	v.V.SetVec(i, val)
	return v
}

func (v Vector) Copy() (R Vector) { // Does not change receiver
	R = NewVector(v.Len())
	R.V.CloneFromVec(v.V)
	return
}

func (v Vector) Add(a Vector) Vector { // Changes receiver
	v.V.AddVec(v.V, a.V)
	return v
}

func (v Vector) Subtract(a Vector) Vector { // Changes receiver
	v.V.SubVec(v.V, a.V)
	return v
}

func (v Vector) Scale(a float64) Vector { // Changes receiver
	v.V.ScaleVec(a, v.V)
	return v
}

// AddScaled accumulates v += alpha * a.
func (v Vector) AddScaled(alpha float64, a Vector) Vector { // Changes receiver
	v.V.AddScaledVec(v.V, alpha, a.V)
	return v
}

func (v Vector) Dot(a Vector) float64 {
	return mat.Dot(v.V, a.V)
}

func (v Vector) Norm() (n float64) {
	for _, val := range v.Data() {
		n += val * val
	}
	return math.Sqrt(n)
}

func (v Vector) Min() (min float64) {
	for i, val := range v.Data() {
		if i == 0 || val < min {
			min = val
		}
	}
	return
}

func (v Vector) Max() (max float64) {
	for i, val := range v.Data() {
		if i == 0 || val > max {
			max = val
		}
	}
	return
}
