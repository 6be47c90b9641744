package mesh

import (
	"fmt"
	"math/rand"
)

// grid carries the shared state of the two unit-square meshers. Cells store
// their vertex ids in counter-clockwise order.
type grid struct {
	points []Point
	cells  [][]int
	etype  ElementType
	step   float64

	// edge (lo,hi point id) -> up to two incident cells, built once.
	edges map[edgeKey][2]int
}

type edgeKey struct {
	a, b int
}

func newEdgeKey(p, q int) edgeKey {
	if p > q {
		p, q = q, p
	}
	return edgeKey{p, q}
}

func (g *grid) Points() []Point          { return g.points }
func (g *grid) NumCells() int            { return len(g.cells) }
func (g *grid) Offset(cl int) int        { return cl }
func (g *grid) NumFaces(cl int) int      { return len(g.cells[cl]) }
func (g *grid) PointIDs(cl int) []int    { return g.cells[cl] }
func (g *grid) ElementType() ElementType { return g.etype }

func (g *grid) CellPoints(cl int) (pts []Point) {
	ids := g.cells[cl]
	pts = make([]Point, len(ids))
	for i, id := range ids {
		pts[i] = g.points[id]
	}
	return
}

func (g *grid) facePointIDs(cl, fc int) (int, int) {
	ids := g.cells[cl]
	return ids[fc], ids[(fc+1)%len(ids)]
}

func (g *grid) FacePoints(cl, fc int) (Point, Point) {
	a, b := g.facePointIDs(cl, fc)
	return g.points[a], g.points[b]
}

func (g *grid) FaceDiameter(cl, fc int) float64 {
	p, q := g.FacePoints(cl, fc)
	return p.DistanceTo(q)
}

// Normal relies on the counter-clockwise vertex ordering of every cell.
func (g *grid) Normal(cl, fc int) Vec2 {
	p, q := g.FacePoints(cl, fc)
	dx, dy := q.X-p.X, q.Y-p.Y
	l := Vec2{dx, dy}.Norm()
	return Vec2{dy / l, -dx / l}
}

func (g *grid) CellDiameter(cl int) (d float64) {
	pts := g.CellPoints(cl)
	for i := 0; i < len(pts); i++ {
		for j := i + 1; j < len(pts); j++ {
			if l := pts[i].DistanceTo(pts[j]); l > d {
				d = l
			}
		}
	}
	return
}

func (g *grid) Diameter() (d float64) {
	for cl := 0; cl < g.NumCells(); cl++ {
		if l := g.CellDiameter(cl); l > d {
			d = l
		}
	}
	return
}

func (g *grid) ComputeConnectivity() {
	g.edges = make(map[edgeKey][2]int, 2*len(g.cells))
	for cl, ids := range g.cells {
		for fc := range ids {
			a, b := g.facePointIDs(cl, fc)
			key := newEdgeKey(a, b)
			if e, ok := g.edges[key]; ok {
				e[1] = cl
				g.edges[key] = e
			} else {
				g.edges[key] = [2]int{cl, -1}
			}
		}
	}
}

func (g *grid) NeighbourVia(cl, fc int) (int, bool) {
	if g.edges == nil {
		panic("mesh: NeighbourVia called before ComputeConnectivity")
	}
	a, b := g.facePointIDs(cl, fc)
	e, ok := g.edges[newEdgeKey(a, b)]
	if !ok {
		panic(fmt.Errorf("mesh: unknown face %d of cell %d", fc, cl))
	}
	if e[0] != cl {
		return e[0], true
	}
	if e[1] >= 0 {
		return e[1], true
	}
	return cl, false
}

// Shatter perturbs every interior node by up to amplitude*step in each
// coordinate. The RNG is seeded deterministically so that repeated runs
// produce the same mesh.
func (g *grid) Shatter(amplitude float64) {
	rng := rand.New(rand.NewSource(42))
	for i, pt := range g.points {
		if pt.X == 0 || pt.X == 1 || pt.Y == 0 || pt.Y == 1 {
			continue
		}
		g.points[i].X += amplitude * g.step * (rng.Float64() - 0.5)
		g.points[i].Y += amplitude * g.step * (rng.Float64() - 0.5)
	}
}

// latticePoints generates the (n+1)^2 nodes of a uniform n x n grid on the
// unit square, node id = j*(n+1) + i.
func latticePoints(n int) (pts []Point) {
	h := 1.0 / float64(n)
	pts = make([]Point, 0, (n+1)*(n+1))
	for j := 0; j <= n; j++ {
		for i := 0; i <= n; i++ {
			pts = append(pts, Point{float64(i) * h, float64(j) * h})
		}
	}
	return
}

// TriMesh is a simplicial mesh of the unit square.
type TriMesh struct {
	grid
}

// NewTriMesh builds a structured triangulation of [0,1]^2 with 2^refLevels
// squares per side, each split into two triangles. The splitting diagonal
// alternates between neighbouring squares (union-jack pattern), which keeps
// the interior-penalty form coercive at the default stabilisation weight;
// splitting every square along the same diagonal does not.
func NewTriMesh(refLevels int) *TriMesh {
	n := 1 << uint(refLevels)
	m := &TriMesh{grid{
		points: latticePoints(n),
		etype:  Triangle,
		step:   1.0 / float64(n),
	}}
	vid := func(i, j int) int { return j*(n+1) + i }
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			v00, v10 := vid(i, j), vid(i+1, j)
			v11, v01 := vid(i+1, j+1), vid(i, j+1)
			if (i+j)%2 == 0 {
				m.cells = append(m.cells, []int{v00, v10, v11})
				m.cells = append(m.cells, []int{v00, v11, v01})
			} else {
				m.cells = append(m.cells, []int{v00, v10, v01})
				m.cells = append(m.cells, []int{v10, v11, v01})
			}
		}
	}
	return m
}

// QuadMesh is a quadrangular mesh of the unit square.
type QuadMesh struct {
	grid
}

// NewQuadMesh builds a structured quadrangulation of [0,1]^2 with
// 2^refLevels cells per side.
func NewQuadMesh(refLevels int) *QuadMesh {
	n := 1 << uint(refLevels)
	m := &QuadMesh{grid{
		points: latticePoints(n),
		etype:  Quadrilateral,
		step:   1.0 / float64(n),
	}}
	vid := func(i, j int) int { return j*(n+1) + i }
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			m.cells = append(m.cells, []int{vid(i, j), vid(i+1, j), vid(i+1, j+1), vid(i, j+1)})
		}
	}
	return m
}

// TestPoints returns a lattice of sample points inside cell cl, n+1 points
// per direction. It serves the plain-text solution export.
func TestPoints(msh Mesh, cl, n int) (pts []Point) {
	v := msh.CellPoints(cl)
	switch msh.ElementType() {
	case Triangle:
		for i := 0; i <= n; i++ {
			for j := 0; i+j <= n; j++ {
				l1, l2 := float64(i)/float64(n), float64(j)/float64(n)
				pts = append(pts, Point{
					v[0].X + l1*(v[1].X-v[0].X) + l2*(v[2].X-v[0].X),
					v[0].Y + l1*(v[1].Y-v[0].Y) + l2*(v[2].Y-v[0].Y),
				})
			}
		}
	case Quadrilateral:
		for i := 0; i <= n; i++ {
			for j := 0; j <= n; j++ {
				u, w := float64(i)/float64(n), float64(j)/float64(n)
				pts = append(pts, bilinear(v, u, w))
			}
		}
	}
	return
}

// bilinear maps (u,w) in [0,1]^2 onto the quadrilateral with CCW vertices v.
func bilinear(v []Point, u, w float64) Point {
	n0, n1, n2, n3 := (1-u)*(1-w), u*(1-w), u*w, (1-u)*w
	return Point{
		n0*v[0].X + n1*v[1].X + n2*v[2].X + n3*v[3].X,
		n0*v[0].Y + n1*v[1].Y + n2*v[2].Y + n3*v[3].Y,
	}
}
