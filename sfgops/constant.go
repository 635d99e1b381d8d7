package sfgops

import "github.com/asicgo/sfgsim"

// Constant is a zero-input node that always produces the same value.
type Constant struct {
	base
	value sfgsim.Number
}

// NewConstant returns a constant node producing v on every iteration.
func NewConstant(id string, v sfgsim.Number) *Constant {
	c := &Constant{value: v}
	c.init(c, id, 0, 1)
	return c
}

func (c *Constant) TypeName() string   { return "c" }
func (c *Constant) Value() sfgsim.Number { return c.value }

// ConstMul multiplies its single input by a fixed constant factor.
type ConstMul struct {
	base
	factor sfgsim.Number
}

// NewConstMul returns a node computing in * factor.
func NewConstMul(id string, in *sfgsim.OutputPin, factor sfgsim.Number) *ConstMul {
	m := &ConstMul{factor: factor}
	m.init(m, id, 1, 1)
	m.connect(0, in)
	return m
}

func (m *ConstMul) TypeName() string     { return "cmul" }
func (m *ConstMul) Value() sfgsim.Number { return m.factor }
