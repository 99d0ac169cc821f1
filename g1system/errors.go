package g1system

import "errors"

var (
	// ErrConfiguration marks empty or degenerate topology and malformed
	// basis counts. Fatal; the system must be rebuilt with valid inputs.
	ErrConfiguration = errors.New("g1system: invalid configuration")

	// ErrState marks caller misuse of the build lifecycle: insertion after
	// finalize, or solve/reconstruct before it.
	ErrState = errors.New("g1system: invalid call sequence")

	// ErrNumerical marks a failed reduced solve (solver non-convergence).
	// It is surfaced as-is; no alternate solver or relaxed tolerance is
	// attempted.
	ErrNumerical = errors.New("g1system: numerical failure")
)
