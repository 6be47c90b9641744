package dg

import (
	"fmt"
	"math"

	"github.com/james-bowman/sparse"

	"github.com/s-lunowa/yaourt-fem-dg/bases"
	"github.com/s-lunowa/yaourt-fem-dg/mesh"
	"github.com/s-lunowa/yaourt-fem-dg/utils"
)

type triplet struct {
	row, col int
	val      float64
}

// Assembler accumulates local cell and face blocks into the global sparse
// operator. Triplet emission order is irrelevant: the value at (i,j) is the
// sum of every triplet emitted there. Finalize materialises the CSR operator
// once; afterwards the assembler is terminal.
type Assembler struct {
	msh       mesh.Mesh
	basisSize int
	sysSize   int
	buildPC   bool
	finalized bool

	triplets []triplet
	pcTemp   []float64

	LHS *sparse.CSR
	RHS utils.Vector
	PC  *sparse.DIA
}

// NewAssembler fixes the basis size B and the system size N = B * |cells|
// and allocates the global right-hand side and the diagonal accumulator.
func NewAssembler(msh mesh.Mesh, degree int, buildPC bool) *Assembler {
	if degree < 1 {
		panic(fmt.Errorf("dg: polynomial degree must be >= 1, got %d", degree))
	}
	b := bases.Size(msh.ElementType(), degree)
	n := b * msh.NumCells()
	return &Assembler{
		msh:       msh,
		basisSize: b,
		sysSize:   n,
		buildPC:   buildPC,
		RHS:       utils.NewVector(n),
		pcTemp:    make([]float64, n),
	}
}

func (a *Assembler) SystemSize() int { return a.sysSize }
func (a *Assembler) BasisSize() int  { return a.basisSize }

func (a *Assembler) checkUsable() {
	if a.sysSize == 0 || a.basisSize == 0 {
		panic("dg: assembler in invalid state")
	}
	if a.finalized {
		panic("dg: assembler is finalized, no further assembly allowed")
	}
}

// AssembleFace emits the B x B block coupling cell clA to cell clB. Diagonal
// entries of self-blocks feed the Jacobi accumulator when the preconditioner
// was requested.
func (a *Assembler) AssembleFace(clA, clB int, block utils.Matrix) {
	a.checkUsable()
	nr, nc := block.Dims()
	if nr != a.basisSize || nc != a.basisSize {
		panic(fmt.Errorf("dg: block is %dx%d, want %dx%d", nr, nc, a.basisSize, a.basisSize))
	}

	ofsA := a.msh.Offset(clA) * a.basisSize
	ofsB := a.msh.Offset(clB) * a.basisSize
	for i := 0; i < a.basisSize; i++ {
		ci := ofsA + i
		for j := 0; j < a.basisSize; j++ {
			cj := ofsB + j
			a.triplets = append(a.triplets, triplet{ci, cj, block.At(i, j)})
			if a.buildPC && ci == cj {
				a.pcTemp[ci] += block.At(i, j)
			}
		}
	}
}

// AssembleCell emits the volume block of a cell and writes its slice of the
// global right-hand side (each cell owns a disjoint slice, so this is a
// plain assignment).
func (a *Assembler) AssembleCell(cl int, K utils.Matrix, locRHS utils.Vector) {
	a.AssembleFace(cl, cl, K)
	ofs := a.msh.Offset(cl) * a.basisSize
	for i := 0; i < a.basisSize; i++ {
		a.RHS.SetVec(ofs+i, locRHS.AtVec(i))
	}
}

// Finalize sums the emitted triplets into the CSR operator, validates every
// accumulated value is finite, and, when requested, inverts the harvested
// diagonal into the Jacobi preconditioner. Diagonal accumulators with
// magnitude <= 1e-2 denote a structurally singular pattern or mis-assembly
// and abort the build.
func (a *Assembler) Finalize() {
	a.checkUsable()

	dok := sparse.NewDOK(a.sysSize, a.sysSize)
	for _, t := range a.triplets {
		if math.IsNaN(t.val) || math.IsInf(t.val, 0) {
			panic(fmt.Errorf("dg: non-finite value %v assembled at (%d,%d)", t.val, t.row, t.col))
		}
		dok.Set(t.row, t.col, dok.At(t.row, t.col)+t.val)
	}
	a.LHS = dok.ToCSR()
	a.triplets = nil

	if a.buildPC {
		diag := make([]float64, a.sysSize)
		for i, v := range a.pcTemp {
			if math.Abs(v) <= 1e-2 {
				panic(fmt.Errorf("dg: near-zero diagonal %e at dof %d, Jacobi preconditioner would be singular", v, i))
			}
			diag[i] = 1 / v
		}
		a.PC = sparse.NewDIA(a.sysSize, a.sysSize, diag)
	}
	a.finalized = true
}
