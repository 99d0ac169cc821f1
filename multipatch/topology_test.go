package multipatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func twoSquares() []Geometry {
	return []Geometry{
		NewUnitSquare(0, 0),
		NewUnitSquare(1, 0),
	}
}

func fourSquares() []Geometry {
	return []Geometry{
		NewUnitSquare(0, 0),
		NewUnitSquare(1, 0),
		NewUnitSquare(0, 1),
		NewUnitSquare(1, 1),
	}
}

func TestTwoPatchTopology(t *testing.T) {
	top, err := ComputeTopology(twoSquares())
	assert.NoError(t, err)
	assert.Equal(t, 2, top.NumPatches())
	assert.Equal(t, 1, len(top.Interfaces))
	assert.Equal(t, 6, len(top.Boundaries))
	assert.Equal(t, 6, top.NumVertices())

	iface := top.Interfaces[0]
	assert.Equal(t, PatchSide{Patch: 0, Side: East}, iface.First)
	assert.Equal(t, PatchSide{Patch: 1, Side: West}, iface.Second)

	// Shared corners merge into one vertex each
	assert.Equal(t, top.VertexOf(CornerRef{Patch: 0, Corner: SouthEast}),
		top.VertexOf(CornerRef{Patch: 1, Corner: SouthWest}))
	assert.Equal(t, top.VertexOf(CornerRef{Patch: 0, Corner: NorthEast}),
		top.VertexOf(CornerRef{Patch: 1, Corner: NorthWest}))

	c0, c1 := top.InterfaceEndCorners(0)
	assert.Equal(t, 1, top.VertexOf(c0))
	assert.Equal(t, 3, top.VertexOf(c1))
	assert.Equal(t, 2, len(top.Vertices[1]))
	assert.Equal(t, 1, len(top.Vertices[0]))

	kink := top.InterfaceKinks(0)
	assert.False(t, kink[0])
	assert.False(t, kink[1])
}

func TestFourPatchTopology(t *testing.T) {
	top, err := ComputeTopology(fourSquares())
	assert.NoError(t, err)
	assert.Equal(t, 4, len(top.Interfaces))
	assert.Equal(t, 8, len(top.Boundaries))
	assert.Equal(t, 9, top.NumVertices())

	// Center vertex collects one corner from every patch
	center := top.VertexOf(CornerRef{Patch: 0, Corner: NorthEast})
	assert.Equal(t, 4, len(top.Vertices[center]))

	// A vertex's sub-topology rebuilds the interfaces around it
	sub, err := top.SubTopology([]int{0, 1, 2, 3})
	assert.NoError(t, err)
	assert.Equal(t, 4, len(sub.Interfaces))

	sub, err = top.SubTopology([]int{0, 1})
	assert.NoError(t, err)
	assert.Equal(t, 1, len(sub.Interfaces))
}

func TestDeterministicOrdering(t *testing.T) {
	a, err := ComputeTopology(fourSquares())
	assert.NoError(t, err)
	b, err := ComputeTopology(fourSquares())
	assert.NoError(t, err)
	assert.Equal(t, a.Interfaces, b.Interfaces)
	assert.Equal(t, a.Boundaries, b.Boundaries)
	assert.Equal(t, a.Vertices, b.Vertices)
}

func TestKinkDetection(t *testing.T) {
	// A sheared neighbor bends the boundary at both interface ends
	top, err := ComputeTopology([]Geometry{
		NewUnitSquare(0, 0),
		NewBilinearPatch(
			[2]float64{1, 0},
			[2]float64{2, 0.5},
			[2]float64{1, 1},
			[2]float64{2, 1.5},
		),
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, len(top.Interfaces))
	kink := top.InterfaceKinks(0)
	assert.True(t, kink[0])
	assert.True(t, kink[1])
}

func TestDegenerateTopology(t *testing.T) {
	_, err := ComputeTopology(nil)
	assert.Error(t, err)

	// Collapsed west side
	_, err = ComputeTopology([]Geometry{
		NewBilinearPatch(
			[2]float64{0, 0},
			[2]float64{1, 0},
			[2]float64{0, 0},
			[2]float64{1, 1},
		),
	})
	assert.Error(t, err)
}
