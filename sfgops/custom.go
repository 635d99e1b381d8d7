package sfgops

import "github.com/asicgo/sfgsim"

// Custom wraps an externally supplied Evaluator as a graph node with
// arbitrary input and output arity — an escape hatch for operations this
// package does not build in, such as a lookup-table quantiser or an
// FFT stage expressed as a single opaque call.
type Custom struct {
	base
	name string
	eval sfgsim.Evaluator
}

// NewCustom declares a custom node named id, of the given type name (the
// tag recorded against its CustomOperation), wired to ins in order.
func NewCustom(id, typeName string, outputCount int, eval sfgsim.Evaluator, ins ...*sfgsim.OutputPin) *Custom {
	c := &Custom{name: typeName, eval: eval}
	c.init(c, id, len(ins), outputCount)
	for i, in := range ins {
		c.connect(i, in)
	}
	return c
}

func (c *Custom) TypeName() string           { return c.name }
func (c *Custom) Evaluate() sfgsim.Evaluator { return c.eval }
