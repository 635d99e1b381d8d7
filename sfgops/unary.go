package sfgops

import "github.com/asicgo/sfgsim"

func newUnary(typeName, id string, in *sfgsim.OutputPin) *unary {
	n := &unary{typeName: typeName}
	n.init(n, id, 1, 1)
	n.connect(0, in)
	return n
}

// unary backs every single-input, single-output node with no parameters
// of its own: square root, complex conjugate, absolute value.
type unary struct {
	base
	typeName string
}

func (n *unary) TypeName() string { return n.typeName }

// NewSqrt returns a node computing the principal square root of in.
func NewSqrt(id string, in *sfgsim.OutputPin) *unary { return newUnary("sqrt", id, in) }

// NewConj returns a node computing the complex conjugate of in.
func NewConj(id string, in *sfgsim.OutputPin) *unary { return newUnary("conj", id, in) }

// NewAbs returns a node computing the magnitude of in, as a real-valued
// result.
func NewAbs(id string, in *sfgsim.OutputPin) *unary { return newUnary("abs", id, in) }
