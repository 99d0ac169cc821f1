package g1system

import (
	"fmt"

	"github.com/igafem/g1mp/utils"
)

// Finalize completes the transformation matrix: it adds an identity mapping
// for every strictly interior per-patch coefficient (two basis functions
// away from each patch edge in both directions), compresses the collected
// triplets into D, splits D into its free part D_0 and fixed part
// D_boundary via diagonal selectors, and stores the prescribed boundary
// values g. Must run exactly once, after all insertions.
func (s *System) Finalize(g []float64) (err error) {
	if s.finalized {
		return fmt.Errorf("%w: finalize called twice", ErrState)
	}
	if len(g) != s.dimG1Bdy {
		return fmt.Errorf("%w: boundary value vector has length %d, want %d",
			ErrConfiguration, len(g), s.dimG1Bdy)
	}

	var (
		N    = s.dimG1Dofs + s.dimG1Bdy + s.dimK
		b0   = make([]float64, N)
		bBdy = make([]float64, N)
		t5   = s.tables[PatchInteriorFunctions]
	)
	for i := 0; i < s.dimG1Dofs; i++ {
		b0[i] = 1
	}
	for i := 0; i < s.dimG1Bdy; i++ {
		bBdy[s.dimG1Dofs+i] = 1
	}

	for np := 0; np < s.mb[0].NumBases(); np++ {
		dimU, dimV := s.mb[0].Basis(np).Dims()
		for j := 2; j < dimV-2; j++ {
			for i := 2; i < dimU-2; i++ {
				col := t5.Offset(np) + j*dimU + i
				row := s.dimG1Dofs + s.dimG1Bdy + col
				s.trip.Append(row, col, 1)
				b0[row] = 1
			}
		}
	}

	s.d = s.trip.ToCSR()
	s.d0 = utils.SparseMul(utils.NewDiagonal(N, b0), s.d)
	s.dBdy = utils.SparseMul(utils.NewDiagonal(N, bBdy), s.d)

	copy(s.g1[s.dimG1Dofs:s.dimG1Dofs+s.dimG1Bdy], g)
	s.trip = nil
	s.finalized = true
	return
}
