package sfgops

import "github.com/asicgo/sfgsim"

func newBinary(typeName, id string, a, b *sfgsim.OutputPin) *binary {
	n := &binary{typeName: typeName}
	n.init(n, id, 2, 1)
	n.connect(0, a)
	n.connect(1, b)
	return n
}

// binary backs every two-input, one-output arithmetic node: addition,
// subtraction, multiplication, division, and the real-valued min/max.
type binary struct {
	base
	typeName string
}

func (n *binary) TypeName() string { return n.typeName }

// NewAdd returns a node computing a + b.
func NewAdd(id string, a, b *sfgsim.OutputPin) *binary { return newBinary("add", id, a, b) }

// NewSub returns a node computing a - b.
func NewSub(id string, a, b *sfgsim.OutputPin) *binary { return newBinary("sub", id, a, b) }

// NewMul returns a node computing a * b.
func NewMul(id string, a, b *sfgsim.OutputPin) *binary { return newBinary("mul", id, a, b) }

// NewDiv returns a node computing a / b.
func NewDiv(id string, a, b *sfgsim.OutputPin) *binary { return newBinary("div", id, a, b) }

// NewMin returns a node computing the lesser of a and b. Both must be
// real-valued at runtime, or the simulation fails with ErrComplexCompare.
func NewMin(id string, a, b *sfgsim.OutputPin) *binary { return newBinary("min", id, a, b) }

// NewMax returns a node computing the greater of a and b. Both must be
// real-valued at runtime, or the simulation fails with ErrComplexCompare.
func NewMax(id string, a, b *sfgsim.OutputPin) *binary { return newBinary("max", id, a, b) }
