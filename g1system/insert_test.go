package g1system

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/igafem/g1mp/spline"
)

func marker(patch, local int, val float64) []spline.Piece {
	coefs := make([]float64, 49)
	coefs[local] = val
	return []spline.Piece{spline.NewPiece(patch, coefs)}
}

func TestInterfaceEndpointReroutes(t *testing.T) {
	sys := twoPatchSystem(t, Options{TwoPatch: true, Isogeometric: true})
	// plus = 7, 13 ordinals; end vertices are 1 and 3 with boundary-vertex
	// blocks starting at rows 52 and 57
	assert.Equal(t, 13, sys.InterfaceOrdinals(0))

	assert.NoError(t, sys.InsertInterface(0, 0, marker(0, 0, 10)))
	assert.NoError(t, sys.InsertInterface(0, 7, marker(0, 1, 11)))
	assert.NoError(t, sys.InsertInterface(0, 6, marker(0, 2, 12)))
	assert.NoError(t, sys.InsertInterface(0, 12, marker(0, 3, 13)))
	// Non-rerouted ordinals shift down past the excluded endpoints
	assert.NoError(t, sys.InsertInterface(0, 1, marker(1, 4, 14)))
	assert.NoError(t, sys.InsertInterface(0, 8, marker(0, 5, 15)))

	assert.NoError(t, sys.Finalize(make([]float64, 34)))
	D, err := sys.TransformationMatrix()
	assert.NoError(t, err)

	assert.Equal(t, 10., D.At(52, 0))
	assert.Equal(t, 11., D.At(53, 1))
	assert.Equal(t, 12., D.At(57, 2))
	assert.Equal(t, 13., D.At(58, 3))
	assert.Equal(t, 14., D.At(0, 49+4))
	assert.Equal(t, 15., D.At(5, 5))
}

func TestInterfaceRowsStayInPatchColumns(t *testing.T) {
	full := func(patch int, val float64) spline.Piece {
		coefs := make([]float64, 49)
		for i := range coefs {
			coefs[i] = val
		}
		return spline.NewPiece(patch, coefs)
	}
	{
		sys := twoPatchSystem(t, Options{TwoPatch: true, Isogeometric: true})
		for bf := 0; bf < sys.InterfaceOrdinals(0); bf++ {
			err := sys.InsertInterface(0, bf, []spline.Piece{full(0, 1), full(1, 2)})
			assert.NoError(t, err)
		}
		assert.NoError(t, sys.Finalize(make([]float64, 34)))
		D, _ := sys.TransformationMatrix()
		D.DoNonZero(func(i, j int, v float64) {
			if i >= 65 {
				return // interior identity block
			}
			if j < 49 {
				assert.Equal(t, 1., v)
			} else {
				assert.Equal(t, 2., v)
			}
		})
	}
	{
		// Four patches: interface 0 joins patches 0 and 1, so its rows must
		// never touch the column ranges of patches 2 and 3
		sys := fourPatchSystem(t, Options{Isogeometric: true})
		for bf := 0; bf < sys.InterfaceOrdinals(0); bf++ {
			err := sys.InsertInterface(0, bf, []spline.Piece{full(0, 1), full(1, 1)})
			assert.NoError(t, err)
		}
		assert.NoError(t, sys.Finalize(make([]float64, 56)))
		D, _ := sys.TransformationMatrix()
		t0 := sys.NumInterfaceFunctions()
		D.DoNonZero(func(i, j int, v float64) {
			if i >= t0.Offset(0) && i < t0.Offset(1) {
				assert.True(t, j < 2*49, "row %d touches column %d", i, j)
			}
		})
	}
}

func TestBoundaryRouting(t *testing.T) {
	{
		// Two-patch: plus = 3 fixed, 3 free ordinals per side
		sys := twoPatchSystem(t, Options{TwoPatch: true, Isogeometric: true})
		assert.Equal(t, 6, sys.BoundaryOrdinals(0))
		assert.NoError(t, sys.InsertBoundary(0, 0, marker(0, 6, 20)[0]))
		assert.NoError(t, sys.InsertBoundary(0, 2, marker(0, 7, 21)[0]))
		assert.NoError(t, sys.InsertBoundary(0, 3, marker(0, 8, 22)[0]))
		assert.NoError(t, sys.InsertBoundary(0, 5, marker(0, 9, 23)[0]))
		assert.NoError(t, sys.Finalize(make([]float64, 34)))
		D, _ := sys.TransformationMatrix()
		assert.Equal(t, 20., D.At(31, 6))
		assert.Equal(t, 21., D.At(33, 7))
		assert.Equal(t, 22., D.At(9, 8))
		assert.Equal(t, 23., D.At(11, 9))
	}
	{
		// General mode: plus = 7, 1 fixed and 2 free ordinals per side
		sys := fourPatchSystem(t, Options{Isogeometric: true})
		assert.Equal(t, 3, sys.BoundaryOrdinals(0))
		assert.NoError(t, sys.InsertBoundary(0, 0, marker(0, 6, 30)[0]))
		assert.NoError(t, sys.InsertBoundary(0, 1, marker(0, 7, 31)[0]))
		assert.NoError(t, sys.InsertBoundary(0, 2, marker(0, 8, 32)[0]))
		assert.NoError(t, sys.Finalize(make([]float64, 56)))
		D, _ := sys.TransformationMatrix()
		assert.Equal(t, 30., D.At(74, 6))
		assert.Equal(t, 31., D.At(36, 7))
		assert.Equal(t, 32., D.At(37, 8))
	}
}

func TestNeumannBoundaryRouting(t *testing.T) {
	sys := twoPatchSystem(t, Options{TwoPatch: true, NeumannBdy: true, Isogeometric: true})
	// Doubled fixed block, no free edge functions
	assert.Equal(t, 6, sys.BoundaryOrdinals(0))
	assert.Equal(t, 0, sys.NumEdgeFunctions().Count(0))
	assert.NoError(t, sys.InsertBoundary(0, 5, marker(0, 6, 40)[0]))
	assert.NoError(t, sys.Finalize(make([]float64, 60)))
	D, _ := sys.TransformationMatrix()
	t3 := sys.NumBoundaryEdgeFunctions()
	assert.Equal(t, 40., D.At(t3.Offset(0)+5, 6))
}

func TestVertexRouting(t *testing.T) {
	{
		// Boundary vertex in two-patch mode: 1 free + 3 fixed ordinals
		sys := twoPatchSystem(t, Options{TwoPatch: true, Isogeometric: true})
		assert.Equal(t, 4, sys.VertexOrdinals(0))
		assert.Equal(t, 1, sys.VertexDofs(0))
		// Interface end vertices are filled by reroutes instead
		assert.Equal(t, 0, sys.VertexOrdinals(1))
		assert.Equal(t, 0, sys.VertexOrdinals(3))

		assert.NoError(t, sys.InsertVertex(0, 1, 0, marker(0, 10, 50)))
		assert.NoError(t, sys.InsertVertex(0, 1, 1, marker(0, 11, 51)))
		assert.NoError(t, sys.InsertVertex(0, 1, 3, marker(0, 12, 52)))
		err := sys.InsertVertex(0, 1, 4, marker(0, 13, 53))
		assert.True(t, errors.Is(err, ErrConfiguration))

		assert.NoError(t, sys.Finalize(make([]float64, 34)))
		D, _ := sys.TransformationMatrix()
		assert.Equal(t, 50., D.At(27, 10))
		assert.Equal(t, 51., D.At(49, 11))
		assert.Equal(t, 52., D.At(51, 12))
	}
	{
		// Interior vertex in general mode: 6 free ordinals, no fixed block
		sys := fourPatchSystem(t, Options{Isogeometric: true})
		assert.Equal(t, 6, sys.VertexOrdinals(3))
		assert.NoError(t, sys.InsertVertex(3, 6, 0, marker(0, 14, 60)))
		assert.NoError(t, sys.InsertVertex(3, 6, 5, marker(3, 15, 61)))
		err := sys.InsertVertex(3, 6, 6, marker(0, 16, 62))
		assert.True(t, errors.Is(err, ErrConfiguration))

		assert.NoError(t, sys.Finalize(make([]float64, 56)))
		D, _ := sys.TransformationMatrix()
		t2 := sys.NumVertexFunctions()
		assert.Equal(t, 60., D.At(t2.Offset(3), 14))
		assert.Equal(t, 61., D.At(t2.Offset(3)+5, 3*49+15))
	}
}

func TestInsertRangeErrors(t *testing.T) {
	sys := twoPatchSystem(t, Options{TwoPatch: true, Isogeometric: true})
	assert.True(t, errors.Is(sys.InsertInterface(1, 0, nil), ErrConfiguration))
	assert.True(t, errors.Is(sys.InsertInterface(0, 13, nil), ErrConfiguration))
	assert.True(t, errors.Is(sys.InsertInterface(0, -1, nil), ErrConfiguration))
	assert.True(t, errors.Is(sys.InsertBoundary(6, 0, spline.Piece{}), ErrConfiguration))
	assert.True(t, errors.Is(sys.InsertBoundary(0, 6, spline.Piece{}), ErrConfiguration))
	assert.True(t, errors.Is(sys.InsertVertex(6, 0, 0, nil), ErrConfiguration))
}

func TestPruning(t *testing.T) {
	sys := twoPatchSystem(t, Options{TwoPatch: true, Isogeometric: true})
	coefs := make([]float64, 49)
	coefs[0] = 1.e-12                // squared: 1e-24, kept
	coefs[1] = 1.e-13                // squared: 1e-26, pruned
	coefs[2] = 3.162277660168379e-13 // squared magnitude at the 1e-25 threshold, pruned
	assert.True(t, coefs[2]*coefs[2] <= PruneTol)
	assert.NoError(t, sys.InsertBoundary(0, 0, spline.NewPiece(0, coefs)))
	assert.NoError(t, sys.Finalize(make([]float64, 34)))
	D, _ := sys.TransformationMatrix()
	assert.Equal(t, 1.e-12, D.At(31, 0))
	assert.Equal(t, 0., D.At(31, 1))
	assert.Equal(t, 0., D.At(31, 2))
}

func TestLifecycleStateErrors(t *testing.T) {
	sys := twoPatchSystem(t, Options{TwoPatch: true, Isogeometric: true})

	_, err := sys.TransformationMatrix()
	assert.True(t, errors.Is(err, ErrState))
	_, err = sys.SingleBasis(0, 0)
	assert.True(t, errors.Is(err, ErrState))
	_, err = sys.Solve(nil, nil, nil)
	assert.True(t, errors.Is(err, ErrState))
	_, err = sys.ConstructG1Solution(nil)
	assert.True(t, errors.Is(err, ErrState))

	assert.True(t, errors.Is(sys.Finalize(nil), ErrConfiguration))
	assert.NoError(t, sys.Finalize(make([]float64, 34)))
	assert.True(t, errors.Is(sys.Finalize(make([]float64, 34)), ErrState))

	assert.True(t, errors.Is(sys.InsertInterface(0, 0, nil), ErrState))
	assert.True(t, errors.Is(sys.InsertBoundary(0, 0, spline.Piece{}), ErrState))
	assert.True(t, errors.Is(sys.InsertVertex(0, 1, 0, nil), ErrState))
}
