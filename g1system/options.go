package g1system

// Options select the exception rules applied during index allocation and
// insertion routing.
type Options struct {
	// TwoPatch enables the two-patch exception: interface plus-space
	// endpoint functions are rerouted into the boundary-vertex blocks of
	// the interface end vertices.
	TwoPatch bool

	// NeumannBdy doubles the boundary-edge blocks and moves all edge
	// functions into the fixed categories.
	NeumannBdy bool

	// Isogeometric makes the interface column space coincide with the
	// primal per-patch space (a single multi-basis numbering).
	Isogeometric bool

	// InnerKnotMult > 0 enlarges interfaces whose plus space is minimal
	// (m_p-1-m_r == 1) by three extra functions per trace.
	InnerKnotMult int
}

// PruneTol is the squared-magnitude threshold for sparsification: a
// coefficient is stored only if its square strictly exceeds it.
const PruneTol = 1.e-25

// Endpoint functions excluded from every interface block and routed into
// the vertex/boundary categories instead; one more is excluded per kinked
// end.
const (
	ifaceEndExclusions        = 4
	ifaceEndExclusionsNeumann = 8
)

// innerKnotSupplement enlarges the plus space when the inner-knot option
// applies.
const innerKnotSupplement = 3

// Per-vertex DOF counts, split (free, fixed). These are domain-derived
// constants of the G1 vertex-space construction, not instances of a
// closed-form rule; keep them in sync with the continuity-basis generator.
const (
	// two-patch mode
	twoPatchBdyVertexDofs              = 1
	twoPatchBdyVertexFixed             = 3
	twoPatchBdyVertexFixedNeumann      = 4
	twoPatchIfaceBdyVertexFixed        = 2 // +1 per kinked interface end
	twoPatchIfaceBdyVertexFixedNeumann = 4

	// general mode
	bdyVertexDofs       = 1
	bdyVertexFixed      = 6
	interiorVertexDofs  = 6
	ifaceBdyVertexDofs  = 3
	ifaceBdyVertexFixed = 6
)

// VertexKind classifies a vertex by its surrounding topology.
type VertexKind int8

const (
	BoundaryVertex          VertexKind = -1
	InteriorVertex          VertexKind = 0
	InterfaceBoundaryVertex VertexKind = 1
)

func (k VertexKind) String() string {
	switch k {
	case BoundaryVertex:
		return "boundary"
	case InteriorVertex:
		return "interior"
	case InterfaceBoundaryVertex:
		return "interface-boundary"
	}
	return "unknown"
}
