package g1system

import (
	"fmt"

	"github.com/james-bowman/sparse"

	"github.com/igafem/g1mp/spline"
	"github.com/igafem/g1mp/utils"
)

// ConstructG1Solution expands a reduced solution back into per-patch spline
// pieces, walking the offset tables in assembly order: interfaces, then
// boundary sides, then vertices. Free-category rows are scaled by x, fixed
// rows by the stored boundary values. The result holds one piece per
// (entity DOF, contributing patch) pair, grouped by patch.
func (s *System) ConstructG1Solution(x []float64) (fields [][]spline.Piece, err error) {
	if err = s.checkConstruct(x); err != nil {
		return
	}
	var (
		t0 = s.tables[InterfaceFunctions]
		t1 = s.tables[EdgeFunctions]
		t2 = s.tables[VertexFunctions]
		t3 = s.tables[BoundaryEdgeFunctions]
		t4 = s.tables[BoundaryVertexFunctions]
	)
	fields = make([][]spline.Piece, s.top.NumPatches())

	for iID, iface := range s.top.Interfaces {
		for _, p := range []int{iface.First.Patch, iface.Second.Patch} {
			for i := 0; i < t0.Count(iID); i++ {
				row := t0.Offset(iID) + i
				fields[p] = append(fields[p], s.scaledPiece(row, p, true, x[row]))
			}
		}
	}

	for bID, side := range s.top.Boundaries {
		p := side.Patch
		for i := 0; i < t3.Count(bID); i++ {
			row := t3.Offset(bID) + i
			fields[p] = append(fields[p], s.scaledPiece(row, p, false, s.g1[row]))
		}
		for i := 0; i < t1.Count(bID); i++ {
			row := t1.Offset(bID) + i
			fields[p] = append(fields[p], s.scaledPiece(row, p, false, x[row]))
		}
	}

	for vID, refs := range s.top.Vertices {
		for _, ref := range refs {
			p := ref.Patch
			for i := 0; i < t4.Count(vID); i++ {
				row := t4.Offset(vID) + i
				fields[p] = append(fields[p], s.scaledPiece(row, p, s.reroutedVtx[vID], s.g1[row]))
			}
			for i := 0; i < t2.Count(vID); i++ {
				row := t2.Offset(vID) + i
				fields[p] = append(fields[p], s.scaledPiece(row, p, false, x[row]))
			}
		}
	}
	return
}

// scaledPiece slices one row of D over one patch's column block and scales
// it; rerouted rows live in the interface column space.
func (s *System) scaledPiece(row, patch int, interfaceSpace bool, a float64) spline.Piece {
	t := s.tables[PatchInteriorFunctions]
	if interfaceSpace {
		t = s.tables[PatchInteriorInterfaceFunctions]
	}
	coefs := utils.SparseRowSlice(s.d, row, t.Offset(patch), t.Offset(patch+1))
	for i := range coefs {
		coefs[i] *= a
	}
	return spline.Piece{Patch: patch, Coefs: coefs}
}

// ConstructSparseG1Solution returns the scaled G1 block of D as an explicit
// sparse reconstruction matrix: free rows scaled by x, fixed rows by the
// stored boundary values, plus one trailing row holding the interior
// solution.
func (s *System) ConstructSparseG1Solution(x []float64) (result *sparse.CSR, err error) {
	if err = s.checkConstruct(x); err != nil {
		return
	}
	var (
		nr   = s.dimG1Dofs + s.dimG1Bdy + 1
		trip = utils.NewTriplets(nr, s.dimK)
	)
	s.d.DoNonZero(func(i, j int, v float64) {
		switch {
		case i < s.dimG1Dofs:
			if w := v * x[i]; w != 0 {
				trip.Append(i, j, w)
			}
		case i < s.dimG1Dofs+s.dimG1Bdy:
			if w := v * s.g1[i]; w != 0 {
				trip.Append(i, j, w)
			}
		}
	})
	for i := 0; i < s.dimK; i++ {
		if val := x[s.dimG1Dofs+s.dimG1Bdy+i]; val != 0 {
			trip.Append(nr-1, i, val)
		}
	}
	result = trip.ToCSR()
	return
}

func (s *System) checkConstruct(x []float64) error {
	if !s.finalized {
		return fmt.Errorf("%w: reconstruction before finalize", ErrState)
	}
	if want := s.dimG1Dofs + s.dimG1Bdy + s.dimK; len(x) != want {
		return fmt.Errorf("%w: solution vector has length %d, want %d", ErrConfiguration, len(x), want)
	}
	return nil
}
