package sfgsim

import "github.com/pkg/errors"

type providerKind int

const (
	providerConstant providerKind = iota
	providerSequence
	providerCallable
)

// InputProvider supplies one of a Program's inputs across iterations. It
// is a closed sum type: exactly one of the three constructors below
// produces a valid value.
type InputProvider struct {
	kind     providerKind
	constant Number
	sequence []Number
	callable func(iteration int) (Number, error)
}

// ConstantInput returns a provider that yields v on every iteration.
func ConstantInput(v Number) InputProvider {
	return InputProvider{kind: providerConstant, constant: v}
}

// SequenceInput returns a provider that yields values[i] on iteration i.
// It has finite length len(values); a Run() call needs at least one
// provider with a finite length to determine how many iterations to
// execute.
func SequenceInput(values []Number) InputProvider {
	return InputProvider{kind: providerSequence, sequence: append([]Number(nil), values...)}
}

// CallableInput returns a provider that invokes f for every iteration.
// f must not retain the engine's internal state; it is called exactly
// once per iteration, in input-index order.
func CallableInput(f func(iteration int) (Number, error)) InputProvider {
	return InputProvider{kind: providerCallable, callable: f}
}

// length reports the provider's finite length, if it has one.
func (p InputProvider) length() (int, bool) {
	if p.kind == providerSequence {
		return len(p.sequence), true
	}
	return 0, false
}

// valueAt resolves the provider's value for the given (zero-based)
// iteration index.
func (p InputProvider) valueAt(iteration int) (Number, error) {
	switch p.kind {
	case providerConstant:
		return p.constant, nil
	case providerSequence:
		if iteration < 0 || iteration >= len(p.sequence) {
			return 0, errors.Wrap(ErrInputIndexRange, "sequence input")
		}
		return p.sequence[iteration], nil
	case providerCallable:
		return p.callable(iteration)
	default:
		return 0, errors.New("sfgsim: invalid input provider")
	}
}

// finiteLength returns the common finite length across providers that
// declare one, or false if none do. It returns ErrSequenceLengthMismatch
// if two sequence providers disagree.
func finiteLength(providers []InputProvider) (int, bool, error) {
	length, have := 0, false
	for _, p := range providers {
		n, ok := p.length()
		if !ok {
			continue
		}
		if !have {
			length, have = n, true
			continue
		}
		if n != length {
			return 0, false, ErrSequenceLengthMismatch
		}
	}
	return length, have, nil
}
