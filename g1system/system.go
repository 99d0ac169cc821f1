// Package g1system builds the global, reduced G1 degree-of-freedom space of
// a multi-patch domain and the sparse transformation matrix D mapping it
// onto the concatenated per-patch spline coefficients. The lifecycle is
// strictly staged: NewSystem classifies the topology and allocates the
// chained offset tables, the Insert* operations scatter externally computed
// basis pieces into D, Finalize adds the interior identity block and splits
// D into its free and fixed parts, and Solve/Construct* may then run
// repeatedly against the read-only result.
package g1system

import (
	"fmt"

	"github.com/james-bowman/sparse"

	"github.com/igafem/g1mp/multipatch"
	"github.com/igafem/g1mp/spline"
	"github.com/igafem/g1mp/utils"
)

type System struct {
	opts Options
	top  *multipatch.Topology
	mb   []spline.MultiBasis

	tables      [numDofCategories]OffsetTable
	vertexKind  []VertexKind
	sizePlusInt []int
	sizePlusBdy []int
	kinks       [][2]bool
	ifaceEndVtx [][2]int
	reroutedVtx []bool

	dimK, dimG1Dofs, dimG1Bdy int

	trip *utils.Triplets
	g1   []float64

	d, d0, dBdy *sparse.CSR
	finalized   bool
}

// NewSystem classifies the topology, allocates the seven chained offset
// tables and prepares the empty transformation matrix. mb holds the primal
// multi-basis and, unless opts.Isogeometric, optionally a second multi-basis
// spanning the interface column space.
func NewSystem(top *multipatch.Topology, mb []spline.MultiBasis, opts Options) (s *System, err error) {
	if top == nil || top.NumPatches() == 0 {
		err = fmt.Errorf("%w: empty topology", ErrConfiguration)
		return
	}
	if len(mb) == 0 || mb[0].NumBases() != top.NumPatches() {
		err = fmt.Errorf("%w: need one basis per patch, have %d bases for %d patches",
			ErrConfiguration, basisCount(mb), top.NumPatches())
		return
	}

	s = &System{
		opts: opts,
		top:  top,
		mb:   mb,
	}
	if err = s.allocate(); err != nil {
		return nil, err
	}

	N := s.dimG1Dofs + s.dimG1Bdy + s.dimK
	s.trip = utils.NewTriplets(N, s.dimK)
	s.g1 = make([]float64, N)
	return
}

func basisCount(mb []spline.MultiBasis) int {
	if len(mb) == 0 {
		return 0
	}
	return mb[0].NumBases()
}

func (s *System) allocate() (err error) {
	var (
		nP = s.top.NumPatches()
		nI = len(s.top.Interfaces)
		nB = len(s.top.Boundaries)
		nV = s.top.NumVertices()
	)

	// Per-patch primal coefficient offsets (local numbering, not chained)
	t5 := make(OffsetTable, nP+1)
	for i := 0; i < nP; i++ {
		size := s.mb[0].Basis(i).Size()
		if size <= 0 {
			return fmt.Errorf("%w: patch %d has empty basis", ErrConfiguration, i)
		}
		t5[i+1] = t5[i] + size
	}
	s.tables[PatchInteriorFunctions] = t5

	// Column space: primal, or primal followed by the interface space
	t6 := make(OffsetTable, nP+1)
	if !s.opts.Isogeometric && len(s.mb) == 2 {
		t6[0] = t5.Last()
		for i := 0; i < nP; i++ {
			t6[i+1] = t6[i] + s.mb[1].Basis(i).Size()
		}
	} else {
		copy(t6, t5)
	}
	s.tables[PatchInteriorInterfaceFunctions] = t6

	if err = s.allocateInterfaces(nI); err != nil {
		return
	}
	if err = s.allocateBoundaries(nB); err != nil {
		return
	}
	if err = s.allocateVertices(nV); err != nil {
		return
	}

	// Chain the global categories
	s.tables[EdgeFunctions].shiftBy(s.tables[InterfaceFunctions].Last())
	s.tables[VertexFunctions].shiftBy(s.tables[EdgeFunctions].Last())
	s.tables[BoundaryEdgeFunctions].shiftBy(s.tables[VertexFunctions].Last())
	s.tables[BoundaryVertexFunctions].shiftBy(s.tables[BoundaryEdgeFunctions].Last())

	s.dimK = s.tables[PatchInteriorInterfaceFunctions].Last()
	s.dimG1Dofs = s.tables[VertexFunctions].Last()
	s.dimG1Bdy = s.tables[BoundaryVertexFunctions].Last() - s.tables[BoundaryEdgeFunctions].First()
	return
}

func (s *System) allocateInterfaces(nI int) (err error) {
	t0 := make(OffsetTable, nI+1)
	s.sizePlusInt = make([]int, nI)
	s.kinks = make([][2]bool, nI)
	s.ifaceEndVtx = make([][2]int, nI)

	for i, iface := range s.top.Interfaces {
		b1 := s.mb[0].Basis(iface.First.Patch).Component(iface.First.Side.Direction())
		b2 := s.mb[0].Basis(iface.Second.Patch).Component(iface.Second.Side.Direction())

		mp := minInt(b1.Degree(), b2.Degree())
		mr := minInt(mp-b1.KnotMultiplicity()-1, mp-2)
		mn := minInt(b1.NumElements(), b2.NumElements())
		if mp < 2 || mr < 0 {
			return fmt.Errorf("%w: interface %d needs degree >= 2 and regularity >= 0 (p = %d, r = %d)",
				ErrConfiguration, i, mp, mr)
		}

		excl := ifaceEndExclusions
		if s.opts.NeumannBdy {
			excl = ifaceEndExclusionsNeumann
		}
		s.kinks[i] = s.top.InterfaceKinks(i)
		if s.kinks[i][0] {
			excl++
		}
		if s.kinks[i][1] {
			excl++
		}

		innerKnot := 0
		if s.opts.InnerKnotMult > 0 && mp-1-mr == 1 {
			innerKnot = innerKnotSupplement
		}

		count := 2*(mp-mr-1)*(mn-1) + 2*mp + 1 - excl + 2*innerKnot
		if count < 0 {
			return fmt.Errorf("%w: interface %d has negative DOF count %d", ErrConfiguration, i, count)
		}
		t0[i+1] = t0[i] + count
		s.sizePlusInt[i] = (mp-mr-1)*(mn-1) + mp + 1 + innerKnot

		c0, c1 := s.top.InterfaceEndCorners(i)
		s.ifaceEndVtx[i] = [2]int{s.top.VertexOf(c0), s.top.VertexOf(c1)}
	}
	s.tables[InterfaceFunctions] = t0
	return
}

func (s *System) allocateBoundaries(nB int) (err error) {
	t1 := make(OffsetTable, nB+1)
	t3 := make(OffsetTable, nB+1)
	s.sizePlusBdy = make([]int, nB)

	for i, side := range s.top.Boundaries {
		be := s.mb[0].Basis(side.Patch).Component(side.Side.Direction())

		var bdy, edge, plus int
		if s.opts.TwoPatch {
			size := be.Size()
			if size < 5 {
				return fmt.Errorf("%w: boundary side %d basis too small (size %d)", ErrConfiguration, i, size)
			}
			plus = size - 4
			if s.opts.NeumannBdy {
				bdy, edge = 2*size-8, 0
			} else {
				bdy, edge = size-4, size-4
			}
		} else {
			mp := be.Degree()
			mr := minInt(mp-be.KnotMultiplicity()-1, mp-2)
			mn := be.NumElements()
			plus = (mp-mr-1)*(mn-1) + mp + 1
			if s.opts.NeumannBdy {
				bdy, edge = 2*plus-1-10, 0
			} else {
				bdy, edge = plus-6, plus-5
			}
			if bdy < 0 || edge < 0 {
				return fmt.Errorf("%w: boundary side %d basis too small (p = %d, elements = %d)",
					ErrConfiguration, i, mp, mn)
			}
		}
		t3[i+1] = t3[i] + bdy
		t1[i+1] = t1[i] + edge
		s.sizePlusBdy[i] = plus
	}
	s.tables[EdgeFunctions] = t1
	s.tables[BoundaryEdgeFunctions] = t3
	return
}

func (s *System) allocateVertices(nV int) (err error) {
	t2 := make(OffsetTable, nV+1)
	t4 := make(OffsetTable, nV+1)
	s.vertexKind = make([]VertexKind, nV)
	s.reroutedVtx = make([]bool, nV)

	if s.opts.TwoPatch && !s.opts.NeumannBdy {
		for _, ends := range s.ifaceEndVtx {
			s.reroutedVtx[ends[0]] = true
			s.reroutedVtx[ends[1]] = true
		}
	}

	for v, refs := range s.top.Vertices {
		if len(refs) == 0 {
			return fmt.Errorf("%w: vertex %d has no incident corners", ErrConfiguration, v)
		}
		var dofs, fixed int
		if len(refs) == 1 {
			s.vertexKind[v] = BoundaryVertex
			switch {
			case s.opts.TwoPatch && s.opts.NeumannBdy:
				dofs, fixed = 0, twoPatchBdyVertexFixedNeumann
			case s.opts.TwoPatch:
				dofs, fixed = twoPatchBdyVertexDofs, twoPatchBdyVertexFixed
			default:
				dofs, fixed = bdyVertexDofs, bdyVertexFixed
			}
		} else {
			patches := incidentPatches(refs)
			sub, subErr := s.top.SubTopology(patches)
			if subErr != nil {
				return fmt.Errorf("%w: vertex %d: %v", ErrConfiguration, v, subErr)
			}
			if len(refs) == len(sub.Interfaces) {
				s.vertexKind[v] = InteriorVertex
				if !s.opts.TwoPatch {
					dofs, fixed = interiorVertexDofs, 0
				}
			} else {
				s.vertexKind[v] = InterfaceBoundaryVertex
				switch {
				case s.opts.TwoPatch && s.opts.NeumannBdy:
					dofs, fixed = 0, twoPatchIfaceBdyVertexFixedNeumann
				case s.opts.TwoPatch:
					dofs, fixed = 0, twoPatchIfaceBdyVertexFixed+s.kinksAtVertex(v)
				default:
					dofs, fixed = ifaceBdyVertexDofs, ifaceBdyVertexFixed
				}
			}
		}
		t2[v+1] = t2[v] + dofs
		t4[v+1] = t4[v] + fixed
	}
	s.tables[VertexFunctions] = t2
	s.tables[BoundaryVertexFunctions] = t4
	return
}

// kinksAtVertex counts detected kinks at interface ends meeting vertex v.
func (s *System) kinksAtVertex(v int) (n int) {
	for i, ends := range s.ifaceEndVtx {
		for e := 0; e < 2; e++ {
			if ends[e] == v && s.kinks[i][e] {
				n++
			}
		}
	}
	return
}

func incidentPatches(refs []multipatch.CornerRef) (patches []int) {
	for _, ref := range refs {
		seen := false
		for _, p := range patches {
			if p == ref.Patch {
				seen = true
				break
			}
		}
		if !seen {
			patches = append(patches, ref.Patch)
		}
	}
	return
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Accessors. Returned tables are live views; callers must not mutate them.

func (s *System) NumInterfaceFunctions() OffsetTable      { return s.tables[InterfaceFunctions] }
func (s *System) NumEdgeFunctions() OffsetTable           { return s.tables[EdgeFunctions] }
func (s *System) NumVertexFunctions() OffsetTable         { return s.tables[VertexFunctions] }
func (s *System) NumBoundaryEdgeFunctions() OffsetTable   { return s.tables[BoundaryEdgeFunctions] }
func (s *System) NumBoundaryVertexFunctions() OffsetTable { return s.tables[BoundaryVertexFunctions] }
func (s *System) NumBasisFunctions() OffsetTable          { return s.tables[PatchInteriorFunctions] }
func (s *System) NumBasisFunctionsInterface() OffsetTable {
	return s.tables[PatchInteriorInterfaceFunctions]
}

func (s *System) Table(c DofCategory) OffsetTable { return s.tables[c] }

func (s *System) KindOfVertex() []VertexKind { return s.vertexKind }

func (s *System) SizePlusInterface(i int) int { return s.sizePlusInt[i] }
func (s *System) SizePlusBoundary(i int) int  { return s.sizePlusBdy[i] }

// Dims returns the column count of D and the free/fixed global row counts.
func (s *System) Dims() (dimK, dimG1Dofs, dimG1Bdy int) {
	return s.dimK, s.dimG1Dofs, s.dimG1Bdy
}

// BoundarySize is the number of fixed-category rows.
func (s *System) BoundarySize() int { return s.dimG1Bdy }

// TransformationMatrix exposes D after finalize.
func (s *System) TransformationMatrix() (*sparse.CSR, error) {
	if !s.finalized {
		return nil, fmt.Errorf("%w: transformation matrix requested before finalize", ErrState)
	}
	return s.d, nil
}

// SingleBasis extracts the primal-space coefficient slice of one global
// basis function on one patch.
func (s *System) SingleBasis(globalRow, patch int) ([]float64, error) {
	if !s.finalized {
		return nil, fmt.Errorf("%w: basis slice requested before finalize", ErrState)
	}
	t := s.tables[PatchInteriorFunctions]
	return utils.SparseRowSlice(s.d, globalRow, t.Offset(patch), t.Offset(patch+1)), nil
}

// SingleInterfaceBasis extracts the interface-space coefficient slice of one
// global basis function on one patch.
func (s *System) SingleInterfaceBasis(globalRow, patch int) ([]float64, error) {
	if !s.finalized {
		return nil, fmt.Errorf("%w: basis slice requested before finalize", ErrState)
	}
	t := s.tables[PatchInteriorInterfaceFunctions]
	return utils.SparseRowSlice(s.d, globalRow, t.Offset(patch), t.Offset(patch+1)), nil
}

// SingleBoundaryBasis extracts the primal-space slice of one fixed-category
// basis function, addressed relative to the first boundary row.
func (s *System) SingleBoundaryBasis(boundaryRow, patch int) ([]float64, error) {
	return s.SingleBasis(s.dimG1Dofs+boundaryRow, patch)
}
