package multipatch

import (
	"fmt"
	"math"

	"github.com/james-bowman/sparse"
)

// NodeTol is the coordinate tolerance used when matching patch corners into
// shared vertices.
const NodeTol = 1.e-12

// Topology holds the connectivity of a multi-patch domain. Interfaces,
// boundaries and vertices are ordered deterministically: sides by
// 4*patch+side, vertices by first appearance in patch/corner order.
type Topology struct {
	Patches    []Geometry
	Interfaces []Interface
	Boundaries []PatchSide
	Vertices   [][]CornerRef

	vertexOf map[CornerRef]int
}

// ComputeTopology reconstructs interfaces, boundary sides and vertex lists
// from patch corner geometry. Sides pair into an interface when they share
// both endpoint vertices.
func ComputeTopology(patches []Geometry) (t *Topology, err error) {
	if len(patches) == 0 {
		err = fmt.Errorf("cannot compute topology of an empty patch set")
		return
	}
	t = &Topology{
		Patches:  patches,
		vertexOf: make(map[CornerRef]int),
	}

	// Merge coincident corners into global vertices
	var xs, ys []float64
	for p := range patches {
		for _, c := range []Corner{SouthWest, SouthEast, NorthWest, NorthEast} {
			x, y := patches[p].Corner(c)
			id := -1
			for i := range xs {
				if math.Abs(xs[i]-x) < NodeTol && math.Abs(ys[i]-y) < NodeTol {
					id = i
					break
				}
			}
			if id < 0 {
				xs, ys = append(xs, x), append(ys, y)
				t.Vertices = append(t.Vertices, nil)
				id = len(xs) - 1
			}
			ref := CornerRef{Patch: p, Corner: c}
			t.vertexOf[ref] = id
			t.Vertices[id] = append(t.Vertices[id], ref)
		}
	}

	// Side-to-vertex incidence; two sides sharing both vertices form an
	// interface, detected via the S*St product
	var (
		numSides = 4 * len(patches)
		numVerts = len(xs)
	)
	SpSToVTmp := sparse.NewDOK(numSides, numVerts)
	for p := range patches {
		for s := West; s <= North; s++ {
			c0, c1 := s.EndCorners()
			v0 := t.vertexOf[CornerRef{Patch: p, Corner: c0}]
			v1 := t.vertexOf[CornerRef{Patch: p, Corner: c1}]
			if v0 == v1 {
				err = fmt.Errorf("degenerate side: patch %d side %v has coincident corners", p, s)
				return nil, err
			}
			sid := sideIndex(p, s)
			SpSToVTmp.Set(sid, v0, 1)
			SpSToVTmp.Set(sid, v1, 1)
		}
	}
	SpSToV := SpSToVTmp.ToCSR()
	SpSToS := sparse.NewCSR(numSides, numSides, nil, nil, nil)
	SpSToS.Mul(SpSToV, SpSToV.T())

	matched := make([]bool, numSides)
	for i := 0; i < numSides; i++ {
		for j := i + 1; j < numSides; j++ {
			if SpSToS.At(i, j) == 2 {
				if matched[i] || matched[j] {
					err = fmt.Errorf("degenerate topology: side %v pairs with more than one partner", sideOfIndex(i))
					return nil, err
				}
				matched[i], matched[j] = true, true
				t.Interfaces = append(t.Interfaces, Interface{
					First:  sideOfIndex(i),
					Second: sideOfIndex(j),
				})
			}
		}
	}
	for i := 0; i < numSides; i++ {
		if !matched[i] {
			t.Boundaries = append(t.Boundaries, sideOfIndex(i))
		}
	}
	return
}

func sideIndex(patch int, s Side) int {
	return 4*patch + int(s) - 1
}

func sideOfIndex(i int) PatchSide {
	return PatchSide{Patch: i / 4, Side: Side(i%4 + 1)}
}

func (t *Topology) NumPatches() int  { return len(t.Patches) }
func (t *Topology) NumVertices() int { return len(t.Vertices) }

// VertexOf looks up the global vertex a patch corner belongs to.
func (t *Topology) VertexOf(ref CornerRef) int {
	return t.vertexOf[ref]
}

// SubTopology recomputes the connectivity of a subset of the patches; the
// vertex classifier uses it to count interfaces locally rebuilt around a
// vertex.
func (t *Topology) SubTopology(patchIdx []int) (*Topology, error) {
	sub := make([]Geometry, len(patchIdx))
	for i, p := range patchIdx {
		sub[i] = t.Patches[p]
	}
	return ComputeTopology(sub)
}

// InterfaceEndCorners gives the corners of the First side at the two ends
// of interface i, ordered by ascending edge parameter.
func (t *Topology) InterfaceEndCorners(i int) (c0, c1 CornerRef) {
	var (
		side   = t.Interfaces[i].First
		e0, e1 = side.Side.EndCorners()
	)
	return CornerRef{Patch: side.Patch, Corner: e0}, CornerRef{Patch: side.Patch, Corner: e1}
}

// InterfaceKinks runs the tangent-alignment test at both ends of interface
// i and reports which ends bend.
func (t *Topology) InterfaceKinks(i int) (kink [2]bool) {
	var (
		iface  = t.Interfaces[i]
		a      = t.Patches[iface.First.Patch]
		b      = t.Patches[iface.Second.Patch]
		da     = iface.First.Side.TransverseDirection()
		db     = iface.Second.Side.TransverseDirection()
		a0, a1 = iface.First.Side.EndCorners()
		b0, b1 = iface.Second.Side.EndCorners()
	)
	kink[0] = Kink(a, a0, da, b, b0, db)
	kink[1] = Kink(a, a1, da, b, b1, db)
	return
}
