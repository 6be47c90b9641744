package dataio

import (
	"fmt"
	"io"

	"github.com/s-lunowa/yaourt-fem-dg/bases"
	"github.com/s-lunowa/yaourt-fem-dg/mesh"
	"github.com/s-lunowa/yaourt-fem-dg/utils"
)

// WriteGnuplot samples the DG solution at a lattice of test points inside
// every cell and writes "x y value" rows suitable for gnuplot's splot.
func WriteGnuplot(w io.Writer, msh mesh.Mesh, degree int, sol utils.Vector, nSamples int) error {
	for cl := 0; cl < msh.NumCells(); cl++ {
		b := bases.New(msh, cl, degree)
		size := b.Size()
		ofs := msh.Offset(cl)

		locSol := utils.NewVector(size)
		for i := 0; i < size; i++ {
			locSol.SetVec(i, sol.AtVec(size*ofs+i))
		}

		for _, tp := range mesh.TestPoints(msh, cl, nSamples) {
			val := locSol.Dot(b.Eval(tp))
			if _, err := fmt.Fprintf(w, "%g %g %g\n", tp.X, tp.Y, val); err != nil {
				return fmt.Errorf("dataio: writing gnuplot output: %w", err)
			}
		}
	}
	return nil
}
