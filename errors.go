package sfgsim

import "github.com/pkg/errors"

// Sentinel errors. Every error of the classes below that this package
// returns is one of these or wraps one via errors.Wrap, so callers can
// compare with errors.Cause(err) == ... while humans still get a
// contextual message. Errors for operations missing a required
// capability (Value, InitialValue, Evaluate, GraphLike) are plain
// errors with no sentinel, and errors returned by input-provider or
// custom-operation callables are passed on with their own cause.
var (
	// Structural compile errors (graph malformed).
	ErrStrayInput     = errors.New("input operation not declared by its containing subgraph")
	ErrInputOutsideOf = errors.New("input operation encountered outside any subgraph")
	ErrDirectFeedback = errors.New("direct feedback loop")
	ErrTooManyResults = errors.New("more result keys than fit in 16 bits")
	ErrQuantizeWidth  = errors.New("quantisation width out of range (1..64)")
	ErrStackUnderflow = errors.New("input/output count mismatch")

	// Runtime type errors.
	ErrComplexCompare   = errors.New("min/max on complex value")
	ErrComplexTruncate  = errors.New("truncation of value with non-zero imaginary component")
	ErrBitsOverrideWide = errors.New("bits override out of range (1..64)")

	// Runtime argument errors.
	ErrInputIndexRange       = errors.New("input provider index out of range")
	ErrSequenceLengthMismatch = errors.New("sequence input providers disagree on length")
	ErrProviderCountMismatch = errors.New("wrong number of input providers")
	ErrIterationOverflow     = errors.New("iteration counter overflow")
	ErrNoFiniteLength        = errors.New("run() requires a finite input length")
)
