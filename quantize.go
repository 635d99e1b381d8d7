package sfgsim

import "github.com/pkg/errors"

// quantizeMode selects how an interpreter applies quantisation to
// instruction results, per spec.md §4.3's three modes.
type quantizeMode int

const (
	// quantizeDisabled ignores both per-instruction quantize opcodes and
	// any configured bits override: the interpreter runs at full
	// precision.
	quantizeDisabled quantizeMode = iota
	// quantizePerInstruction honours only the compiled quantize opcodes
	// emitted for signals that declared a bit width.
	quantizePerInstruction
	// quantizeBitsOverride ignores the compiled quantize opcodes and
	// instead truncates every instruction's result to a single global
	// bit width.
	quantizeBitsOverride
)

// truncateReal masks off the high bits of an integer-valued real number,
// per the declared quantisation width. It returns ErrComplexTruncate if
// n carries a non-zero imaginary component, since quantisation has no
// defined meaning there.
func truncateReal(n Number, mask uint64) (Number, error) {
	if !n.IsReal() {
		return n, errors.Wrap(ErrComplexTruncate, "quantize")
	}
	truncated := int64(n.Real()) & int64(mask)
	return RealNumber(float64(truncated)), nil
}
