package g1system

import (
	"fmt"

	"github.com/igafem/g1mp/spline"
)

// InsertInterface scatters one interface basis function into D. pieces
// holds the function's coefficients on each of the two interface patches;
// bfID is the function's ordinal within the interface's trace basis. In
// two-patch/non-Neumann mode the plus-space endpoint functions are rerouted
// into the boundary-vertex blocks of the interface end vertices.
func (s *System) InsertInterface(iID, bfID int, pieces []spline.Piece) (err error) {
	if s.finalized {
		return fmt.Errorf("%w: insertion after finalize (interface %d, ordinal %d)", ErrState, iID, bfID)
	}
	if iID < 0 || iID >= len(s.top.Interfaces) {
		return fmt.Errorf("%w: interface %d out of range", ErrConfiguration, iID)
	}
	if bfID < 0 || bfID >= s.InterfaceOrdinals(iID) {
		return fmt.Errorf("%w: interface %d ordinal %d out of range [0,%d)",
			ErrConfiguration, iID, bfID, s.InterfaceOrdinals(iID))
	}
	row := s.interfaceRow(iID, bfID)
	for _, piece := range pieces {
		s.insertPiece(row, s.tables[PatchInteriorInterfaceFunctions], piece)
	}
	return
}

// interfaceRow maps an interface ordinal to its global row, applying the
// two-patch endpoint and kink reroutes.
func (s *System) interfaceRow(iID, bfID int) (row int) {
	if !s.opts.TwoPatch || s.opts.NeumannBdy {
		return s.tables[InterfaceFunctions].Offset(iID) + bfID
	}
	var (
		plus   = s.sizePlusInt[iID]
		kink   = s.kinks[iID]
		v0, v1 = s.ifaceEndVtx[iID][0], s.ifaceEndVtx[iID][1]
		t4     = s.tables[BoundaryVertexFunctions]
	)
	switch {
	case bfID == 0:
		return t4.Offset(v0)
	case bfID == plus:
		return t4.Offset(v0) + 1
	case bfID == plus-1:
		return t4.Offset(v1)
	case bfID == 2*plus-2:
		return t4.Offset(v1) + 1
	case bfID == 1 && kink[0]:
		return t4.Offset(v0) + 2
	case bfID == plus-2 && kink[1]:
		return t4.Offset(v1) + 2
	}
	// Remaining ordinals shift down past the rerouted ones: one endpoint
	// (plus one kink) below the plus/minus split, three (plus both kinks)
	// above it.
	split := plus - 1
	if kink[1] {
		split = plus - 2
	}
	shift := 1 + b2i(kink[0])
	if bfID >= split {
		shift = 3 + b2i(kink[0]) + b2i(kink[1])
	}
	return s.tables[InterfaceFunctions].Offset(iID) + bfID - shift
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

// InsertBoundary scatters one boundary-side basis function. Ordinals below
// the plus-space threshold land in the fixed boundary-edge block, the rest
// in the free edge block; with a Neumann boundary everything is fixed.
func (s *System) InsertBoundary(bID, bfID int, piece spline.Piece) (err error) {
	if s.finalized {
		return fmt.Errorf("%w: insertion after finalize (boundary %d, ordinal %d)", ErrState, bID, bfID)
	}
	if bID < 0 || bID >= len(s.top.Boundaries) {
		return fmt.Errorf("%w: boundary side %d out of range", ErrConfiguration, bID)
	}
	if bfID < 0 || bfID >= s.BoundaryOrdinals(bID) {
		return fmt.Errorf("%w: boundary side %d ordinal %d out of range [0,%d)",
			ErrConfiguration, bID, bfID, s.BoundaryOrdinals(bID))
	}

	var (
		plus = s.sizePlusBdy[bID]
		t1   = s.tables[EdgeFunctions]
		t3   = s.tables[BoundaryEdgeFunctions]
		row  int
	)
	switch {
	case s.opts.TwoPatch && !s.opts.NeumannBdy:
		if bfID < plus {
			row = t3.Offset(bID) + bfID
		} else {
			row = t1.Offset(bID) + bfID - plus
		}
	case !s.opts.NeumannBdy:
		if bfID < plus-6 {
			row = t3.Offset(bID) + bfID
		} else {
			row = t1.Offset(bID) + bfID - plus + 6
		}
	default:
		row = t3.Offset(bID) + bfID
	}
	s.insertPiece(row, s.tables[PatchInteriorFunctions], piece)
	return
}

// InsertVertex scatters one vertex basis function. The first nDofs ordinals
// are free vertex DOFs, the remainder fixed boundary-vertex DOFs; interior
// vertices own free DOFs only.
func (s *System) InsertVertex(vID, nDofs, bfID int, pieces []spline.Piece) (err error) {
	if s.finalized {
		return fmt.Errorf("%w: insertion after finalize (vertex %d, ordinal %d)", ErrState, vID, bfID)
	}
	if vID < 0 || vID >= s.top.NumVertices() {
		return fmt.Errorf("%w: vertex %d out of range", ErrConfiguration, vID)
	}

	var (
		t2  = s.tables[VertexFunctions]
		t4  = s.tables[BoundaryVertexFunctions]
		row int
	)
	if s.vertexKind[vID] == InteriorVertex || bfID < nDofs {
		row = t2.Offset(vID) + bfID
		if row >= t2.Offset(vID + 1) {
			return fmt.Errorf("%w: vertex %d ordinal %d exceeds its free block (%d DOFs)",
				ErrConfiguration, vID, bfID, t2.Count(vID))
		}
	} else {
		row = t4.Offset(vID) + bfID - nDofs
		if row >= t4.Offset(vID + 1) {
			return fmt.Errorf("%w: vertex %d ordinal %d exceeds its fixed block (%d DOFs)",
				ErrConfiguration, vID, bfID, t4.Count(vID))
		}
	}
	for _, piece := range pieces {
		s.insertPiece(row, s.tables[PatchInteriorFunctions], piece)
	}
	return
}

// insertPiece is the coefficient-copy loop shared by all entity kinds:
// every coefficient whose square exceeds the pruning tolerance lands at
// (row, column offset of the piece's patch + local index).
func (s *System) insertPiece(row int, colTable OffsetTable, piece spline.Piece) {
	off := colTable.Offset(piece.Patch)
	for j, val := range piece.Coefs {
		if val*val > PruneTol {
			s.trip.Append(row, off+j, val)
		}
	}
}
