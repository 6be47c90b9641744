// Package quadratures provides numerical integration rules over the cells
// and faces of a planar mesh, exact for polynomials up to a requested degree.
package quadratures

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/s-lunowa/yaourt-fem-dg/mesh"
	"github.com/s-lunowa/yaourt-fem-dg/utils"
)

// QP is a quadrature point in physical coordinates with its weight.
type QP struct {
	P mesh.Point
	W float64
}

// JacobiGQ computes the n+1 point Gauss quadrature associated with the
// Jacobi weight (1-x)^alpha (1+x)^beta on [-1,1] via the Golub-Welsch
// eigenvalue problem of the recurrence matrix.
func JacobiGQ(alpha, beta float64, n int) (x, w []float64) {
	if n == 0 {
		x = []float64{-(alpha - beta) / (alpha + beta + 2)}
		w = []float64{gamma0(alpha, beta)}
		return
	}

	h1 := make([]float64, n+1)
	for i := 0; i < n+1; i++ {
		h1[i] = 2*float64(i) + alpha + beta
	}

	d0 := make([]float64, n+1)
	fac := -(alpha*alpha - beta*beta)
	for i := 0; i < n+1; i++ {
		val := h1[i]
		d0[i] = fac / (val * (val + 2))
	}
	eps := 1.e-16
	if alpha+beta < 10*eps {
		d0[0] = 0
	}

	d1 := make([]float64, n)
	for i := 0; i < n; i++ {
		ip1 := float64(i + 1)
		val := h1[i]
		d1[i] = 2. / (val + 2.)
		d1[i] *= math.Sqrt(ip1 * (ip1 + alpha + beta) * (ip1 + alpha) * (ip1 + beta) / ((val + 1.) * (val + 3.)))
	}

	JJ := utils.NewSymTriDiagonal(d0, d1)

	var eig mat.EigenSym
	if ok := eig.Factorize(JJ, true); !ok {
		panic("eigenvalue decomposition failed")
	}
	x = eig.Values(nil)

	VVr := mat.NewDense(len(x), len(x), nil)
	eig.VectorsTo(VVr)
	w = make([]float64, len(x))
	g0 := gamma0(alpha, beta)
	for i, v := range VVr.RawRowView(0) {
		w[i] = v * v * g0
	}
	return
}

func gamma0(alpha, beta float64) float64 {
	ab1 := alpha + beta + 1.
	a1 := alpha + 1.
	b1 := beta + 1.
	return math.Gamma(a1) * math.Gamma(b1) * math.Pow(2, ab1) / ab1 / math.Gamma(ab1)
}

// numPoints returns the 1D point count whose Gauss rule is exact for
// polynomials of the given degree.
func numPoints(degree int) int {
	if degree < 1 {
		degree = 1
	}
	return (degree + 2) / 2
}

// Cell returns a rule over cell cl exact for polynomials of total degree
// `order` on triangles and for tensor degree `order` on affine
// quadrilaterals.
func Cell(msh mesh.Mesh, cl, order int) []QP {
	switch msh.ElementType() {
	case mesh.Triangle:
		return triangleRule(msh.CellPoints(cl), order)
	default:
		return quadRule(msh.CellPoints(cl), order)
	}
}

// triangleRule uses the Duffy transform of the unit square: the collapsed
// direction carries a Gauss-Jacobi(1,0) rule whose weight absorbs the (1-v)
// Jacobian factor exactly.
func triangleRule(v []mesh.Point, order int) (qps []QP) {
	np := numPoints(order)
	ga, wa := JacobiGQ(0, 0, np-1)
	gb, wb := JacobiGQ(1, 0, np-1)

	e1 := mesh.Vec2{X: v[1].X - v[0].X, Y: v[1].Y - v[0].Y}
	e2 := mesh.Vec2{X: v[2].X - v[0].X, Y: v[2].Y - v[0].Y}
	jac := math.Abs(e1.X*e2.Y - e1.Y*e2.X) // twice the area

	qps = make([]QP, 0, np*np)
	for i := 0; i < np; i++ {
		u := (1 + ga[i]) / 2
		for j := 0; j < np; j++ {
			w := (1 + gb[j]) / 2
			qps = append(qps, QP{
				P: mesh.Point{
					X: v[0].X + u*(1-w)*e1.X + w*e2.X,
					Y: v[0].Y + u*(1-w)*e1.Y + w*e2.Y,
				},
				W: jac * (wa[i] / 2) * (wb[j] / 4),
			})
		}
	}
	return
}

// quadRule maps a tensor Gauss-Legendre rule through the bilinear cell map,
// with the Jacobian determinant evaluated per point.
func quadRule(v []mesh.Point, order int) (qps []QP) {
	np := numPoints(order)
	g, w := JacobiGQ(0, 0, np-1)

	qps = make([]QP, 0, np*np)
	for i := 0; i < np; i++ {
		u := (1 + g[i]) / 2
		for j := 0; j < np; j++ {
			t := (1 + g[j]) / 2
			// Derivatives of the bilinear map at (u,t).
			dxu := (1-t)*(v[1].X-v[0].X) + t*(v[2].X-v[3].X)
			dyu := (1-t)*(v[1].Y-v[0].Y) + t*(v[2].Y-v[3].Y)
			dxt := (1-u)*(v[3].X-v[0].X) + u*(v[2].X-v[1].X)
			dyt := (1-u)*(v[3].Y-v[0].Y) + u*(v[2].Y-v[1].Y)
			jac := math.Abs(dxu*dyt - dyu*dxt)

			n0, n1, n2, n3 := (1-u)*(1-t), u*(1-t), u*t, (1-u)*t
			qps = append(qps, QP{
				P: mesh.Point{
					X: n0*v[0].X + n1*v[1].X + n2*v[2].X + n3*v[3].X,
					Y: n0*v[0].Y + n1*v[1].Y + n2*v[2].Y + n3*v[3].Y,
				},
				W: jac * (w[i] / 2) * (w[j] / 2),
			})
		}
	}
	return
}

// Face returns a Gauss-Legendre rule over face fc of cell cl, exact for
// polynomials of the given degree along the face.
func Face(msh mesh.Mesh, cl, fc, order int) (qps []QP) {
	np := numPoints(order)
	g, w := JacobiGQ(0, 0, np-1)

	p, q := msh.FacePoints(cl, fc)
	l := p.DistanceTo(q)
	qps = make([]QP, np)
	for i := 0; i < np; i++ {
		s := (1 + g[i]) / 2
		qps[i] = QP{
			P: mesh.Point{X: p.X + s*(q.X-p.X), Y: p.Y + s*(q.Y-p.Y)},
			W: l * w[i] / 2,
		}
	}
	return
}
