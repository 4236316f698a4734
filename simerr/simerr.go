// Package simerr collects the error kinds shared across the simulation
// core, so that callers can tell a singular matrix from a missing state
// value with errors.Is instead of parsing message text.
package simerr

import "errors"

var (
	// ErrDimensionMismatch is returned by matrix operations given
	// incompatible shapes.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrSingularMatrix is returned by the n-diagonal solver when a pivot
	// falls below the numerical tolerance.
	ErrSingularMatrix = errors.New("singular matrix")

	// ErrIterativeNonConvergence is returned by Gauss-Seidel when the
	// iteration budget is exhausted before the convergence threshold is met.
	ErrIterativeNonConvergence = errors.New("iterative solver did not converge")

	// ErrMissingStateValue indicates a required state slot was never
	// populated before use; this is a wiring bug, not a runtime condition.
	ErrMissingStateValue = errors.New("missing state value")

	// ErrBoundaryUnsupported is returned when a Boundary is reached in a
	// context where it has no implemented coupling (Ground, in the
	// reference implementation).
	ErrBoundaryUnsupported = errors.New("boundary kind unsupported in this context")

	// ErrOpticalDataCorrupt is returned when a cached daylight-coefficient
	// matrix has zero columns or an unrecognized shape.
	ErrOpticalDataCorrupt = errors.New("optical data corrupt")

	// ErrBoundaryValueMissing is returned when a weather- or space-derived
	// quantity required for a calculation is absent.
	ErrBoundaryValueMissing = errors.New("boundary value missing")
)
