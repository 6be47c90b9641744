// Package bases provides the per-cell scalar polynomial bases of the DG
// discretisation: monomials in the barycentre-centred, diameter-scaled cell
// coordinates. The zeroth function is the constant 1, so the zeroth
// coefficient of an expansion is the cell mean.
package bases

import (
	"github.com/s-lunowa/yaourt-fem-dg/mesh"
	"github.com/s-lunowa/yaourt-fem-dg/utils"
)

// ScalarBasisSize returns the dimension of the total-degree polynomial space
// P_k in dim spatial variables.
func ScalarBasisSize(degree, dim int) int {
	size := 1
	for d := 1; d <= dim; d++ {
		size = size * (degree + d) / d
	}
	return size
}

// Size returns the basis dimension used on the given element type: P_k on
// triangles, the tensor space Q_k on quadrilaterals.
func Size(etype mesh.ElementType, degree int) int {
	if etype == mesh.Triangle {
		return ScalarBasisSize(degree, 2)
	}
	return (degree + 1) * (degree + 1)
}

// Basis is the scalar basis of one cell.
type Basis struct {
	exps   [][2]int
	center mesh.Point
	h      float64
}

// New builds the basis of degree `degree` on cell cl.
func New(msh mesh.Mesh, cl, degree int) (b Basis) {
	pts := msh.CellPoints(cl)
	for _, p := range pts {
		b.center.X += p.X
		b.center.Y += p.Y
	}
	b.center.X /= float64(len(pts))
	b.center.Y /= float64(len(pts))
	b.h = msh.CellDiameter(cl)

	if msh.ElementType() == mesh.Triangle {
		for d := 0; d <= degree; d++ {
			for i := 0; i <= d; i++ {
				b.exps = append(b.exps, [2]int{d - i, i})
			}
		}
	} else {
		for px := 0; px <= degree; px++ {
			for py := 0; py <= degree; py++ {
				b.exps = append(b.exps, [2]int{px, py})
			}
		}
	}
	return
}

func (b Basis) Size() int { return len(b.exps) }

// Eval returns the column vector of the basis functions at p.
func (b Basis) Eval(p mesh.Point) (phi utils.Vector) {
	xi := (p.X - b.center.X) / b.h
	eta := (p.Y - b.center.Y) / b.h
	phi = utils.NewVector(b.Size())
	for m, e := range b.exps {
		phi.SetVec(m, powInt(xi, e[0])*powInt(eta, e[1]))
	}
	return
}

// EvalGrads returns the Size x 2 matrix of basis gradients at p.
func (b Basis) EvalGrads(p mesh.Point) (dphi utils.Matrix) {
	xi := (p.X - b.center.X) / b.h
	eta := (p.Y - b.center.Y) / b.h
	dphi = utils.NewMatrix(b.Size(), 2)
	for m, e := range b.exps {
		px, py := e[0], e[1]
		if px > 0 {
			dphi.Set(m, 0, float64(px)*powInt(xi, px-1)*powInt(eta, py)/b.h)
		}
		if py > 0 {
			dphi.Set(m, 1, float64(py)*powInt(xi, px)*powInt(eta, py-1)/b.h)
		}
	}
	return
}

func powInt(x float64, n int) (p float64) {
	p = 1
	for i := 0; i < n; i++ {
		p *= x
	}
	return
}
