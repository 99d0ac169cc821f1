package g1system

import (
	"fmt"

	"github.com/james-bowman/sparse"

	"github.com/igafem/g1mp/solvers"
	"github.com/igafem/g1mp/utils"
)

// Solve forms the reduced system
//
//	A = D_0 * K * D_0^t
//	F = D_0*f - D_0*K*D_boundary^t*g
//
// and delegates to the supplied sparse solver (CG with diagonal
// preconditioning when nil). K and f are expressed in the flat per-patch
// local basis; K is assumed symmetric, no symmetrization is performed.
// The returned vector spans the full global row space; free-category
// entries hold the reduced solution.
func (s *System) Solve(K *sparse.CSR, f []float64, solver solvers.SparseSolver) (x []float64, err error) {
	if !s.finalized {
		return nil, fmt.Errorf("%w: solve before finalize", ErrState)
	}
	kr, kc := K.Dims()
	if kr != s.dimK || kc != s.dimK || len(f) != s.dimK {
		return nil, fmt.Errorf("%w: stiffness is (%d,%d) with len(f) = %d, want dim_K = %d",
			ErrConfiguration, kr, kc, len(f), s.dimK)
	}
	if solver == nil {
		solver = solvers.NewCGDiagonal()
	}

	A := utils.SparseMul(s.d0, utils.SparseMul(K, s.d0.T()))
	F := utils.SparseMulVec(s.d0, f)
	Mg := utils.SparseMulVec(utils.SparseMul(s.d0, utils.SparseMul(K, s.dBdy.T())), s.g1)
	for i := range F {
		F[i] -= Mg[i]
	}

	x, err = solver.Solve(A, F)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNumerical, err)
	}
	return
}
