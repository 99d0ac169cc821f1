// Package solvers provides the sparse linear solvers the G1 system adapter
// delegates to. The reduced operator is symmetric positive semi-definite,
// so the default is conjugate gradients with a Jacobi preconditioner.
package solvers

import (
	"errors"
	"fmt"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/floats"

	"github.com/igafem/g1mp/utils"
)

// ErrNotConverged is wrapped by solvers that hit the iteration cap before
// reaching the residual tolerance.
var ErrNotConverged = errors.New("iterative solver did not converge")

// SparseSolver solves A*x = b for a symmetric sparse A.
type SparseSolver interface {
	Solve(A *sparse.CSR, b []float64) (x []float64, err error)
}

// CGDiagonal is a preconditioned conjugate gradient solver. Rows with a
// zero diagonal (selector-masked rows of the reduced system) get a unit
// preconditioner entry; their residual is identically zero.
type CGDiagonal struct {
	MaxIterations int     // 0 means 3*n
	Tolerance     float64 // relative residual target
}

func NewCGDiagonal() *CGDiagonal {
	return &CGDiagonal{
		Tolerance: 1.e-12,
	}
}

func (cg *CGDiagonal) Solve(A *sparse.CSR, b []float64) (x []float64, err error) {
	var (
		nr, nc = A.Dims()
	)
	if nr != nc || len(b) != nr {
		err = fmt.Errorf("dimension mismatch: A is (%d,%d), len(b) = %d", nr, nc, len(b))
		return
	}
	maxIter := cg.MaxIterations
	if maxIter == 0 {
		maxIter = 3 * nr
	}
	tol := cg.Tolerance
	if tol == 0 {
		tol = 1.e-12
	}

	mInv := utils.SparseDiagonal(A)
	for i, d := range mInv {
		if d != 0 {
			mInv[i] = 1. / d
		} else {
			mInv[i] = 1.
		}
	}

	x = make([]float64, nr)
	bNorm := floats.Norm(b, 2)
	if bNorm == 0 {
		return
	}

	r := append([]float64{}, b...)
	z := make([]float64, nr)
	for i := range z {
		z[i] = mInv[i] * r[i]
	}
	p := append([]float64{}, z...)
	rz := floats.Dot(r, z)

	for iter := 0; iter < maxIter; iter++ {
		Ap := utils.SparseMulVec(A, p)
		pAp := floats.Dot(p, Ap)
		if pAp == 0 {
			break
		}
		alpha := rz / pAp
		floats.AddScaled(x, alpha, p)
		floats.AddScaled(r, -alpha, Ap)
		if floats.Norm(r, 2)/bNorm <= tol {
			return x, nil
		}
		for i := range z {
			z[i] = mInv[i] * r[i]
		}
		rzNext := floats.Dot(r, z)
		beta := rzNext / rz
		rz = rzNext
		for i := range p {
			p[i] = z[i] + beta*p[i]
		}
	}
	if floats.Norm(r, 2)/bNorm <= tol {
		return x, nil
	}
	err = fmt.Errorf("%w: residual %.3e after %d iterations",
		ErrNotConverged, floats.Norm(r, 2)/bNorm, maxIter)
	return
}
