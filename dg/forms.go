package dg

import (
	"math"

	"github.com/s-lunowa/yaourt-fem-dg/bases"
	"github.com/s-lunowa/yaourt-fem-dg/mesh"
	"github.com/s-lunowa/yaourt-fem-dg/quadratures"
	"github.com/s-lunowa/yaourt-fem-dg/utils"
)

// DiffusionVolume builds the local stiffness matrix and load vector of the
// diffusion bilinear form on one cell:
//
//	K       = sum_q w_q grad(phi) grad(phi)^T
//	loc_rhs = sum_q w_q f(p_q) phi
func DiffusionVolume(qps []quadratures.QP, b bases.Basis, f ScalarFunc) (K utils.Matrix, locRHS utils.Vector) {
	K = utils.NewMatrix(b.Size(), b.Size())
	locRHS = utils.NewVector(b.Size())
	for _, qp := range qps {
		phi := b.Eval(qp.P)
		dphi := b.EvalGrads(qp.P)
		K.Add(dphi.Mul(dphi.Transpose()).Scale(qp.W))
		locRHS.AddScaled(qp.W*f(qp.P), phi)
	}
	return
}

// AdvectionVolume builds the local reaction + advection operator
//
//	K = sum_q w_q [ mu phi phi^T + phi (grad(phi) . beta)^T ]
//
// and the load vector against the advection-reaction source.
func AdvectionVolume(qps []quadratures.QP, b bases.Basis, mu ScalarFunc, beta VectorFunc, f ScalarFunc) (K utils.Matrix, locRHS utils.Vector) {
	K = utils.NewMatrix(b.Size(), b.Size())
	locRHS = utils.NewVector(b.Size())
	for _, qp := range qps {
		phi := b.Eval(qp.P)
		dphi := b.EvalGrads(qp.P)
		bv := beta(qp.P)
		dphiBeta := dphi.MulVec(utils.NewVector(2, []float64{bv.X, bv.Y}))

		K.AddOuter(qp.W*mu(qp.P), phi, phi)
		K.AddOuter(qp.W, phi, dphiBeta)
		locRHS.AddScaled(qp.W*f(qp.P), phi)
	}
	return
}

// DiffusionFace builds the SIPG face couplings of a cell through one of its
// faces: Att (self) and Atn (neighbour). On a boundary face the half factors
// become full (consistent Nitsche treatment) and the Dirichlet datum g is
// accumulated into locRHS; Atn is untouched there.
func DiffusionFace(fqps []quadratures.QP, nu mesh.Vec2, etaL float64, tb, nb bases.Basis,
	interior bool, g ScalarFunc, locRHS utils.Vector) (Att, Atn utils.Matrix) {

	Att = utils.NewMatrix(tb.Size(), tb.Size())
	Atn = utils.NewMatrix(tb.Size(), nb.Size())
	nv := utils.NewVector(2, []float64{nu.X, nu.Y})

	for _, qp := range fqps {
		tphi := tb.Eval(qp.P)
		tdphiN := tb.EvalGrads(qp.P).MulVec(nv)

		if !interior {
			Att.AddOuter(qp.W*etaL, tphi, tphi)
			Att.AddOuter(-qp.W, tphi, tdphiN)
			Att.AddOuter(-qp.W, tdphiN, tphi)

			gv := g(qp.P)
			locRHS.AddScaled(-qp.W*gv, tdphiN)
			locRHS.AddScaled(qp.W*etaL*gv, tphi)
			continue
		}

		Att.AddOuter(qp.W*etaL, tphi, tphi)
		Att.AddOuter(-0.5*qp.W, tphi, tdphiN)
		Att.AddOuter(-0.5*qp.W, tdphiN, tphi)

		nphi := nb.Eval(qp.P)
		ndphiN := nb.EvalGrads(qp.P).MulVec(nv)

		Atn.AddOuter(-qp.W*etaL, tphi, nphi)
		Atn.AddOuter(-0.5*qp.W, tphi, ndphiN)
		Atn.AddOuter(0.5*qp.W, tdphiN, nphi)
	}
	return
}

// AdvectionFace builds the advection flux couplings through one face. With
// upwinding the stabilised coefficient is c = b - eta|b|, b = beta . nu. On a
// boundary face only the inflow part b^- = (|b|-b)/2 contributes (homogeneous
// inflow datum).
func AdvectionFace(fqps []quadratures.QP, nu mesh.Vec2, eta float64, upwind bool,
	tb, nb bases.Basis, interior bool, beta VectorFunc) (Att, Atn utils.Matrix) {

	Att = utils.NewMatrix(tb.Size(), tb.Size())
	Atn = utils.NewMatrix(tb.Size(), nb.Size())

	for _, qp := range fqps {
		tphi := tb.Eval(qp.P)
		b := beta(qp.P).Dot(nu)

		if !interior {
			if b < 0 {
				bMinus := 0.5 * (math.Abs(b) - b)
				Att.AddOuter(qp.W*bMinus, tphi, tphi)
			}
			continue
		}

		c := b
		if upwind {
			c = b - eta*math.Abs(b)
		}
		Att.AddOuter(-0.5*qp.W*c, tphi, tphi)
		Atn.AddOuter(0.5*qp.W*c, tphi, nb.Eval(qp.P))
	}
	return
}
