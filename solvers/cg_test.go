package solvers

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/igafem/g1mp/utils"
)

// tridiagonal builds the 1D Laplacian stencil, a classic SPD test matrix.
func tridiagonal(n int) *utils.Triplets {
	trip := utils.NewTriplets(n, n)
	for i := 0; i < n; i++ {
		trip.Append(i, i, 2)
		if i > 0 {
			trip.Append(i, i-1, -1)
		}
		if i < n-1 {
			trip.Append(i, i+1, -1)
		}
	}
	return trip
}

func TestCGDiagonal(t *testing.T) {
	{
		// Identity system
		trip := utils.NewTriplets(4, 4)
		for i := 0; i < 4; i++ {
			trip.Append(i, i, 1)
		}
		b := []float64{1, -2, 3, 0.5}
		x, err := NewCGDiagonal().Solve(trip.ToCSR(), b)
		assert.NoError(t, err)
		for i := range b {
			assert.True(t, near(x[i], b[i]))
		}
	}
	{
		// 3x3 Laplacian, known solution
		x, err := NewCGDiagonal().Solve(tridiagonal(3).ToCSR(), []float64{1, 0, 0})
		assert.NoError(t, err)
		assert.True(t, near(x[0], 0.75))
		assert.True(t, near(x[1], 0.50))
		assert.True(t, near(x[2], 0.25))
	}
	{
		// Zero right hand side short circuits
		x, err := NewCGDiagonal().Solve(tridiagonal(5).ToCSR(), make([]float64, 5))
		assert.NoError(t, err)
		for i := range x {
			assert.True(t, x[i] == 0)
		}
	}
}

func TestCGNotConverged(t *testing.T) {
	cg := NewCGDiagonal()
	cg.MaxIterations = 1
	cg.Tolerance = 1.e-14
	b := make([]float64, 10)
	b[0] = 1
	_, err := cg.Solve(tridiagonal(10).ToCSR(), b)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotConverged))
}

func TestCGDimensionMismatch(t *testing.T) {
	_, err := NewCGDiagonal().Solve(tridiagonal(3).ToCSR(), []float64{1, 2})
	assert.Error(t, err)
}

func near(a, b float64) (l bool) {
	if math.Abs(a-b) < 1.e-08*math.Max(math.Abs(a), 1) {
		l = true
	}
	return
}
