package mesh

import "math"

// Point is a planar coordinate pair.
type Point struct {
	X, Y float64
}

func (p Point) DistanceTo(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Vec2 is a planar vector, used for face normals and advection fields.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Dot(w Vec2) float64 { return v.X*w.X + v.Y*w.Y }
func (v Vec2) Norm() float64      { return math.Hypot(v.X, v.Y) }

type ElementType uint8

const (
	Triangle ElementType = iota
	Quadrilateral
)

func (e ElementType) NumVertices() int {
	if e == Triangle {
		return 3
	}
	return 4
}

func (e ElementType) String() string {
	if e == Triangle {
		return "triangle"
	}
	return "quadrilateral"
}

// Mesh is the capability set the DG machinery needs from a planar
// unstructured mesh. Cells are identified by their stable zero-based offset;
// face f of a cell joins its vertices f and f+1 (mod NumFaces).
//
// ComputeConnectivity must be invoked once before any NeighbourVia query.
type Mesh interface {
	Points() []Point
	NumCells() int
	Offset(cl int) int
	NumFaces(cl int) int
	PointIDs(cl int) []int
	CellPoints(cl int) []Point

	// NeighbourVia returns the cell sharing face fc of cl. The second return
	// is false on a boundary face, in which case the sentinel cl is returned.
	NeighbourVia(cl, fc int) (int, bool)

	// Normal returns the outward unit normal of face fc of cell cl.
	Normal(cl, fc int) Vec2
	FacePoints(cl, fc int) (Point, Point)
	FaceDiameter(cl, fc int) float64

	CellDiameter(cl int) float64
	// Diameter is the largest cell diameter of the mesh.
	Diameter() float64

	ElementType() ElementType
	ComputeConnectivity()
	Shatter(amplitude float64)
}
