package utils

import (
	"fmt"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

// Triplets collects scattered (row, col, value) contributions and compresses
// them into a CSR matrix once, after all insertions are known. Entries are
// appended in any order; row ranges are expected to be disjoint between
// callers, so no duplicate coordinates arise.
type Triplets struct {
	nr, nc int
	rows   Index
	cols   Index
	vals   []float64
}

func NewTriplets(nr, nc int) (T *Triplets) {
	T = &Triplets{
		nr: nr,
		nc: nc,
	}
	return
}

func (t *Triplets) Dims() (r, c int) { return t.nr, t.nc }
func (t *Triplets) Len() int         { return len(t.vals) }

func (t *Triplets) Append(i, j int, val float64) {
	if i < 0 || i >= t.nr || j < 0 || j >= t.nc {
		err := fmt.Errorf("triplet out of range: (%d,%d) for dims (%d,%d)", i, j, t.nr, t.nc)
		panic(err)
	}
	t.rows = append(t.rows, i)
	t.cols = append(t.cols, j)
	t.vals = append(t.vals, val)
}

func (t *Triplets) ToCSR() (R *sparse.CSR) {
	C := sparse.NewCOO(t.nr, t.nc, t.rows.Copy(), t.cols.Copy(), append([]float64{}, t.vals...))
	R = C.ToCSR()
	return
}

// NewDiagonal builds an NxN diagonal selector matrix.
func NewDiagonal(n int, diag []float64) *sparse.DIA {
	return sparse.NewDIA(n, n, diag)
}

// SparseMul multiplies two sparse operands into a fresh CSR result.
func SparseMul(a, b mat.Matrix) (R *sparse.CSR) {
	var (
		nr, _ = a.Dims()
		_, nc = b.Dims()
	)
	R = sparse.NewCSR(nr, nc, nil, nil, nil)
	R.Mul(a, b)
	return
}

// SparseMulVec computes y = A*x for a CSR matrix.
func SparseMulVec(A *sparse.CSR, x []float64) (y []float64) {
	var (
		nr, nc = A.Dims()
	)
	if len(x) != nc {
		err := fmt.Errorf("dimension mismatch in mat-vec: nc = %d, len(x) = %d", nc, len(x))
		panic(err)
	}
	y = make([]float64, nr)
	A.DoNonZero(func(i, j int, v float64) {
		y[i] += v * x[j]
	})
	return
}

// SparseRowSlice extracts columns [j0,j1) of one row as a dense slice.
func SparseRowSlice(A *sparse.CSR, row, j0, j1 int) (r []float64) {
	r = make([]float64, j1-j0)
	for j := j0; j < j1; j++ {
		r[j-j0] = A.At(row, j)
	}
	return
}

// SparseDiagonal extracts the main diagonal of a square CSR matrix.
func SparseDiagonal(A *sparse.CSR) (d []float64) {
	var (
		nr, nc = A.Dims()
	)
	if nr != nc {
		err := fmt.Errorf("diagonal of non-square matrix: dims (%d,%d)", nr, nc)
		panic(err)
	}
	d = make([]float64, nr)
	A.DoNonZero(func(i, j int, v float64) {
		if i == j {
			d[i] = v
		}
	})
	return
}
