package g1system

import (
	"fmt"

	"github.com/igafem/g1mp/spline"
)

// BasisGenerator is the external continuity-basis collaborator: it produces,
// per entity DOF, the small per-patch spline pieces the system scatters into
// D. Interface and vertex functions span several patches, boundary-side
// functions one.
type BasisGenerator interface {
	InterfacePiece(iID, bfID int) ([]spline.Piece, error)
	BoundaryPiece(bID, bfID int) (spline.Piece, error)
	VertexPiece(vID, bfID int) ([]spline.Piece, error)
}

// InterfaceOrdinals is the number of basis functions the generator must
// produce for interface iID, including the endpoint functions that get
// rerouted in two-patch mode.
func (s *System) InterfaceOrdinals(iID int) int {
	if s.opts.TwoPatch && !s.opts.NeumannBdy {
		return 2*s.sizePlusInt[iID] - 1
	}
	return s.tables[InterfaceFunctions].Count(iID)
}

// BoundaryOrdinals is the number of basis functions expected on boundary
// side bID across both its edge blocks.
func (s *System) BoundaryOrdinals(bID int) int {
	return s.tables[BoundaryEdgeFunctions].Count(bID) + s.tables[EdgeFunctions].Count(bID)
}

// VertexOrdinals is the number of basis functions expected at vertex vID;
// zero at vertices whose rows are filled by interface reroutes.
func (s *System) VertexOrdinals(vID int) int {
	if s.reroutedVtx[vID] {
		return 0
	}
	return s.tables[VertexFunctions].Count(vID) + s.tables[BoundaryVertexFunctions].Count(vID)
}

// VertexDofs is the free (non-boundary) DOF count of vertex vID, the split
// point InsertVertex routes by.
func (s *System) VertexDofs(vID int) int {
	return s.tables[VertexFunctions].Count(vID)
}

// Assemble drives the three insertion operations over every entity DOF the
// allocator provisioned, pulling pieces from the generator.
func (s *System) Assemble(gen BasisGenerator) (err error) {
	for iID := range s.top.Interfaces {
		for bf := 0; bf < s.InterfaceOrdinals(iID); bf++ {
			pieces, genErr := gen.InterfacePiece(iID, bf)
			if genErr != nil {
				return fmt.Errorf("interface %d ordinal %d: %w", iID, bf, genErr)
			}
			if err = s.InsertInterface(iID, bf, pieces); err != nil {
				return
			}
		}
	}
	for bID := range s.top.Boundaries {
		for bf := 0; bf < s.BoundaryOrdinals(bID); bf++ {
			piece, genErr := gen.BoundaryPiece(bID, bf)
			if genErr != nil {
				return fmt.Errorf("boundary side %d ordinal %d: %w", bID, bf, genErr)
			}
			if err = s.InsertBoundary(bID, bf, piece); err != nil {
				return
			}
		}
	}
	for vID := range s.top.Vertices {
		nDofs := s.VertexDofs(vID)
		for bf := 0; bf < s.VertexOrdinals(vID); bf++ {
			pieces, genErr := gen.VertexPiece(vID, bf)
			if genErr != nil {
				return fmt.Errorf("vertex %d ordinal %d: %w", vID, bf, genErr)
			}
			if err = s.InsertVertex(vID, nDofs, bf, pieces); err != nil {
				return
			}
		}
	}
	return
}
