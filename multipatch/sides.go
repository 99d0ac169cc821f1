// Package multipatch models the topology of a planar multi-patch domain:
// patches, oriented sides, corners, patch-to-patch interfaces, outer
// boundary sides and the vertex (corner incidence) lists the G1 DOF
// classifier works from.
package multipatch

import "fmt"

// Side numbers a patch side: West = u0, East = u1, South = v0, North = v1.
type Side int

const (
	West Side = iota + 1
	East
	South
	North
)

func (s Side) String() string {
	switch s {
	case West:
		return "west"
	case East:
		return "east"
	case South:
		return "south"
	case North:
		return "north"
	}
	return fmt.Sprintf("side(%d)", int(s))
}

// Direction is the parametric direction running along the side: west/east
// sides run in v, south/north sides in u.
func (s Side) Direction() int {
	if s < South {
		return 1
	}
	return 0
}

// TransverseDirection is the parametric direction crossing the side.
func (s Side) TransverseDirection() int {
	return 1 - s.Direction()
}

// EndCorners returns the side's corners ordered by ascending edge parameter.
func (s Side) EndCorners() (c0, c1 Corner) {
	switch s {
	case West:
		return SouthWest, NorthWest
	case East:
		return SouthEast, NorthEast
	case South:
		return SouthWest, SouthEast
	default:
		return NorthWest, NorthEast
	}
}

// Corner numbers a patch corner in the usual tensor order.
type Corner int

const (
	SouthWest Corner = iota + 1
	SouthEast
	NorthWest
	NorthEast
)

// UV gives the parametric coordinates of the corner.
func (c Corner) UV() (u, v float64) {
	switch c {
	case SouthEast:
		return 1, 0
	case NorthWest:
		return 0, 1
	case NorthEast:
		return 1, 1
	}
	return 0, 0
}

type PatchSide struct {
	Patch int
	Side  Side
}

type CornerRef struct {
	Patch  int
	Corner Corner
}

// Interface is an oriented pairing of two patch sides. The edge parameter
// of both sides is assumed aligned: end 0 of First abuts end 0 of Second.
type Interface struct {
	First, Second PatchSide
}
