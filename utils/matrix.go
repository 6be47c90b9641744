package utils

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Matrix is a thin chainable wrapper over gonum's dense matrix. All local
// blocks assembled by the DG forms (K, Att, Atn, mass matrices) are carried
// in this type.
type Matrix struct {
	M *mat.Dense
}

func NewMatrix(nr, nc int, dataO ...[]float64) (R Matrix) {
	var m *mat.Dense
	if len(dataO) != 0 {
		if len(dataO[0]) != nr*nc {
			err := fmt.Errorf("mismatch in allocation: NewMatrix nr,nc = %v,%v, len(data[0]) = %v", nr, nc, len(dataO[0]))
			panic(err)
		}
		m = mat.NewDense(nr, nc, dataO[0])
	} else {
		m = mat.NewDense(nr, nc, make([]float64, nr*nc))
	}
	R = Matrix{m}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m Matrix) Dims() (r, c int)    { return m.M.Dims() }
func (m Matrix) At(i, j int) float64 { return m.M.At(i, j) }
func (m Matrix) T() mat.Matrix       { return m.M.T() }

func (m Matrix) Data() []float64 { return m.M.RawMatrix().Data }

func (m Matrix) Set(i, j int, val float64) Matrix { // Changes receiver
	m.M.Set(i, j, val)
	return m
}

func (m Matrix) Copy() (R Matrix) { // Does not change receiver
	nr, nc := m.Dims()
	R = NewMatrix(nr, nc)
	R.M.CloneFrom(m.M)
	return
}

func (m Matrix) Transpose() (R Matrix) { // Does not change receiver
	var (
		nr, nc = m.Dims()
	)
	R = NewMatrix(nc, nr)
	for j := 0; j < nc; j++ {
		for i := 0; i < nr; i++ {
			R.M.Set(j, i, m.M.At(i, j))
		}
	}
	return
}

func (m Matrix) Add(A Matrix) Matrix { // Changes receiver
	m.M.Add(m.M, A.M)
	return m
}

func (m Matrix) Subtract(A Matrix) Matrix { // Changes receiver
	m.M.Sub(m.M, A.M)
	return m
}

func (m Matrix) Scale(a float64) Matrix { // Changes receiver
	m.M.Scale(a, m.M)
	return m
}

// AddOuter accumulates the rank-one update m += alpha * x * y^T.
func (m Matrix) AddOuter(alpha float64, x, y Vector) Matrix { // Changes receiver
	m.M.RankOne(m.M, alpha, x.V, y.V)
	return m
}

func (m Matrix) Mul(A Matrix) (R Matrix) { // Does not change receiver
	var (
		nrM, _ = m.M.Dims()
		_, ncA = A.M.Dims()
	)
	R = NewMatrix(nrM, ncA)
	R.M.Mul(m.M, A.M)
	return
}

func (m Matrix) MulVec(v Vector) (R Vector) { // Does not change receiver
	nr, _ := m.Dims()
	R = NewVector(nr)
	R.V.MulVec(m.M, v.V)
	return
}

// LUSolve solves m * x = b by dense LU decomposition. The receiver must be
// square and non-singular.
func (m Matrix) LUSolve(b Vector) (x Vector) {
	var lu mat.LU
	lu.Factorize(m.M)
	x = NewVector(b.Len())
	if err := lu.SolveVecTo(x.V, false, b.V); err != nil {
		panic(fmt.Errorf("LUSolve: %v", err))
	}
	return
}

// NewSymTriDiagonal builds a dense symmetric matrix from the main diagonal d0
// and the first super/sub diagonal d1.
func NewSymTriDiagonal(d0, d1 []float64) (R *mat.SymDense) {
	n := len(d0)
	R = mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		R.SetSym(i, i, d0[i])
		if i < n-1 {
			R.SetSym(i, i+1, d1[i])
		}
	}
	return
}
