// Package dataio exports meshes, solution fields and solver diagnostics for
// external visualisation.
package dataio

import (
	"bufio"
	"fmt"
	"os"

	"github.com/s-lunowa/yaourt-fem-dg/mesh"
)

// Database writes an unstructured 2D mesh with named zonal (per-cell) and
// nodal (per-point) variables as a legacy-VTK archive readable by VisIt and
// ParaView. The layout mirrors the SILO UCD convention of the reference
// tooling: node ordering follows the mesh's PointIDs per cell verbatim, with
// one shape descriptor for the whole zone list (VTK connectivity is 0-based
// where SILO's is 1-based).
//
// Zonal variables must be added before nodal ones; the VTK cell-data section
// precedes the point-data section.
type Database struct {
	f *os.File
	w *bufio.Writer

	nPoints, nCells int
	inCellData      bool
	inPointData     bool
}

// Create opens the archive file, truncating any previous content.
func Create(path string) (*Database, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("dataio: creating archive: %w", err)
	}
	return &Database{f: f, w: bufio.NewWriter(f)}, nil
}

// AddMesh writes the point coordinates and the zone list. It must be called
// exactly once, before any variable.
func (db *Database) AddMesh(msh mesh.Mesh, name string) error {
	if db.nPoints != 0 {
		return fmt.Errorf("dataio: archive already contains a mesh")
	}
	pts := msh.Points()
	db.nPoints = len(pts)
	db.nCells = msh.NumCells()

	fmt.Fprintf(db.w, "# vtk DataFile Version 3.0\n%s\nASCII\nDATASET UNSTRUCTURED_GRID\n", name)

	fmt.Fprintf(db.w, "POINTS %d double\n", db.nPoints)
	for _, pt := range pts {
		fmt.Fprintf(db.w, "%g %g 0\n", pt.X, pt.Y)
	}

	shape := msh.ElementType().NumVertices()
	fmt.Fprintf(db.w, "CELLS %d %d\n", db.nCells, db.nCells*(shape+1))
	for cl := 0; cl < db.nCells; cl++ {
		fmt.Fprintf(db.w, "%d", shape)
		for _, id := range msh.PointIDs(cl) {
			fmt.Fprintf(db.w, " %d", id)
		}
		fmt.Fprintln(db.w)
	}

	vtkType := 5 // triangle
	if msh.ElementType() == mesh.Quadrilateral {
		vtkType = 9
	}
	fmt.Fprintf(db.w, "CELL_TYPES %d\n", db.nCells)
	for cl := 0; cl < db.nCells; cl++ {
		fmt.Fprintf(db.w, "%d\n", vtkType)
	}
	return db.w.Flush()
}

// AddZonalVariable writes one scalar per cell.
func (db *Database) AddZonalVariable(name string, v []float64) error {
	if db.nPoints == 0 {
		return fmt.Errorf("dataio: archive contains no mesh")
	}
	if db.inPointData {
		return fmt.Errorf("dataio: zonal variable %q after nodal data", name)
	}
	if len(v) != db.nCells {
		return fmt.Errorf("dataio: zonal variable %q has %d values, mesh has %d cells", name, len(v), db.nCells)
	}
	if !db.inCellData {
		fmt.Fprintf(db.w, "CELL_DATA %d\n", db.nCells)
		db.inCellData = true
	}
	return db.writeScalars(name, v)
}

// AddNodalVariable writes one scalar per mesh point.
func (db *Database) AddNodalVariable(name string, v []float64) error {
	if db.nPoints == 0 {
		return fmt.Errorf("dataio: archive contains no mesh")
	}
	if len(v) != db.nPoints {
		return fmt.Errorf("dataio: nodal variable %q has %d values, mesh has %d points", name, len(v), db.nPoints)
	}
	if !db.inPointData {
		fmt.Fprintf(db.w, "POINT_DATA %d\n", db.nPoints)
		db.inPointData = true
	}
	return db.writeScalars(name, v)
}

func (db *Database) writeScalars(name string, v []float64) error {
	fmt.Fprintf(db.w, "SCALARS %s double 1\nLOOKUP_TABLE default\n", name)
	for _, val := range v {
		fmt.Fprintf(db.w, "%g\n", val)
	}
	return db.w.Flush()
}

// Close flushes and releases the archive file handle.
func (db *Database) Close() error {
	if db.f == nil {
		return nil
	}
	if err := db.w.Flush(); err != nil {
		db.f.Close()
		return fmt.Errorf("dataio: flushing archive: %w", err)
	}
	err := db.f.Close()
	db.f = nil
	return err
}
