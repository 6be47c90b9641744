package quadratures

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/s-lunowa/yaourt-fem-dg/mesh"
)

func TestJacobiGQ(t *testing.T) {
	{ // Two-point Gauss-Legendre
		x, w := JacobiGQ(0, 0, 1)
		assert.InDeltaSlice(t, []float64{-1 / math.Sqrt(3), 1 / math.Sqrt(3)}, x, 1e-12)
		assert.InDeltaSlice(t, []float64{1, 1}, w, 1e-12)
	}
	{ // One-point Gauss-Jacobi(1,0): integrates (1-x) on [-1,1]
		x, w := JacobiGQ(1, 0, 0)
		assert.InDeltaSlice(t, []float64{-1. / 3.}, x, 1e-12)
		assert.InDeltaSlice(t, []float64{2}, w, 1e-12)
	}
	{ // Two-point Gauss-Jacobi(1,0): nodes are the roots of the monic
		// recurrence with diagonal (-1/3, -1/15), weights follow from the
		// moments of (1-x).
		x, w := JacobiGQ(1, 0, 1)
		s6 := math.Sqrt(6)
		assert.InDeltaSlice(t, []float64{(-1 - s6) / 5, (-1 + s6) / 5}, x, 1e-12)
		assert.InDeltaSlice(t, []float64{1 + s6/9, 1 - s6/9}, w, 1e-12)

		// Exact for the moments of (1-x) up to degree 2n+1 = 3.
		for d, want := range []float64{2, -2. / 3., 2. / 3., -2. / 5.} {
			got := 0.0
			for i := range x {
				got += w[i] * math.Pow(x[i], float64(d))
			}
			assert.InDelta(t, want, got, 1e-12, "moment of degree %d", d)
		}
	}
	{ // Weights of any rule sum to the weighted measure of [-1,1]
		for n := 0; n <= 4; n++ {
			_, w := JacobiGQ(0, 0, n)
			sum := 0.0
			for _, v := range w {
				sum += v
			}
			assert.InDelta(t, 2.0, sum, 1e-12)
		}
	}
}

// integrate applies the cell rule of the given order to f over the whole mesh.
func integrate(msh mesh.Mesh, order int, f func(p mesh.Point) float64) (s float64) {
	for cl := 0; cl < msh.NumCells(); cl++ {
		for _, qp := range Cell(msh, cl, order) {
			s += qp.W * f(qp.P)
		}
	}
	return
}

func TestCellRuleExactness(t *testing.T) {
	monomial := func(px, py int) func(mesh.Point) float64 {
		return func(p mesh.Point) float64 {
			return math.Pow(p.X, float64(px)) * math.Pow(p.Y, float64(py))
		}
	}
	// Exact integrals of x^px y^py over the unit square.
	exact := func(px, py int) float64 {
		return 1 / (float64(px+1) * float64(py+1))
	}

	for _, msh := range []mesh.Mesh{mesh.NewTriMesh(1), mesh.NewQuadMesh(1)} {
		// Weights sum to the mesh area.
		assert.InDelta(t, 1.0, integrate(msh, 1, func(mesh.Point) float64 { return 1 }), 1e-12)

		for order := 1; order <= 4; order++ {
			for px := 0; px <= order; px++ {
				for py := 0; px+py <= order; py++ {
					got := integrate(msh, order, monomial(px, py))
					assert.InDelta(t, exact(px, py), got, 1e-12,
						"order %d monomial x^%d y^%d on %v", order, px, py, msh.ElementType())
				}
			}
		}
	}
}

func TestFaceRule(t *testing.T) {
	msh := mesh.NewTriMesh(1)
	for cl := 0; cl < msh.NumCells(); cl++ {
		for fc := 0; fc < msh.NumFaces(cl); fc++ {
			// Weights sum to the face length.
			sum := 0.0
			for _, qp := range Face(msh, cl, fc, 3) {
				sum += qp.W
			}
			assert.InDelta(t, msh.FaceDiameter(cl, fc), sum, 1e-13)
		}
	}

	// Exactness along a horizontal boundary face: integral of x^3 over the
	// face from (0,0) to (0.5,0) is 0.5^4/4.
	face := Face(msh, 0, 0, 3)
	got := 0.0
	for _, qp := range face {
		got += qp.W * qp.P.X * qp.P.X * qp.P.X
		assert.InDelta(t, 0.0, qp.P.Y, 1e-14)
	}
	assert.InDelta(t, math.Pow(0.5, 4)/4, got, 1e-14)
}
