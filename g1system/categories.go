package g1system

import "fmt"

// DofCategory names one of the seven flat index ranges making up the global
// G1 DOF space. The first five are chained into one global row numbering in
// declaration order; PatchInteriorFunctions numbers the primal per-patch
// coefficients and PatchInteriorInterfaceFunctions the column space of the
// transformation matrix.
type DofCategory uint8

const (
	InterfaceFunctions DofCategory = iota
	EdgeFunctions
	VertexFunctions
	BoundaryEdgeFunctions
	BoundaryVertexFunctions
	PatchInteriorFunctions
	PatchInteriorInterfaceFunctions
	numDofCategories
)

func (c DofCategory) String() string {
	switch c {
	case InterfaceFunctions:
		return "interface"
	case EdgeFunctions:
		return "edge"
	case VertexFunctions:
		return "vertex"
	case BoundaryEdgeFunctions:
		return "boundary-edge"
	case BoundaryVertexFunctions:
		return "boundary-vertex"
	case PatchInteriorFunctions:
		return "patch-interior"
	case PatchInteriorInterfaceFunctions:
		return "patch-interior-interface"
	}
	return fmt.Sprintf("category(%d)", uint8(c))
}

// OffsetTable is a cumulative DOF count with one entry per entity plus a
// leading offset: entity i owns rows [t[i], t[i+1]). Tables of chained
// categories start where the previous category's table ends.
type OffsetTable []int

func (t OffsetTable) First() int { return t[0] }
func (t OffsetTable) Last() int  { return t[len(t)-1] }

// NumEntities is the number of entities the table covers.
func (t OffsetTable) NumEntities() int { return len(t) - 1 }

// Offset is the first global row of entity i.
func (t OffsetTable) Offset(i int) int { return t[i] }

// Count is the number of DOFs entity i owns.
func (t OffsetTable) Count(i int) int { return t[i+1] - t[i] }

func (t OffsetTable) Copy() (r OffsetTable) {
	r = make(OffsetTable, len(t))
	copy(r, t)
	return
}

func (t OffsetTable) shiftBy(off int) {
	for i := range t {
		t[i] += off
	}
}
