// Package sfgops provides a concrete library of signal-flow-graph
// operations: constants, arithmetic, delays, subgraphs, and externally
// evaluated custom nodes, each implementing sfgsim.Operation directly so
// they can be wired into a graph and handed to sfgsim.Compile.
package sfgops

import "github.com/asicgo/sfgsim"

// base is the common embed behind every concrete operation in this
// package. It owns the operation's declared inputs and outputs and
// implements the bulk of sfgsim.Operation; concrete types add TypeName
// and whatever capability interfaces apply (Value, InitialValue,
// Evaluate, GraphLike).
type base struct {
	id      string
	inputs  []sfgsim.InputPin
	outputs []sfgsim.OutputPin
}

// init wires up numIn inputs and numOut outputs, and stamps every output
// pin's Op field with self — the owning concrete type, so that
// downstream type assertions (valueOperation, initialValueOperation,
// ...) see the real operation rather than this embedded base.
func (b *base) init(self sfgsim.Operation, id string, numIn, numOut int) {
	b.id = id
	b.inputs = make([]sfgsim.InputPin, numIn)
	b.outputs = make([]sfgsim.OutputPin, numOut)
	for i := range b.outputs {
		b.outputs[i] = sfgsim.OutputPin{Op: self, Index: i}
	}
}

func (b *base) GraphID() string               { return b.id }
func (b *base) InputCount() int               { return len(b.inputs) }
func (b *base) OutputCount() int              { return len(b.outputs) }
func (b *base) Input(i int) *sfgsim.InputPin  { return &b.inputs[i] }
func (b *base) Output(i int) *sfgsim.OutputPin { return &b.outputs[i] }

// connect wires src into input i with no declared bit width.
func (b *base) connect(i int, src *sfgsim.OutputPin) {
	b.inputs[i] = sfgsim.InputPin{Source: src}
}

// Connect rewires input i to src. Exported so a test constructing an
// illegal direct-feedback graph can wire an operation's output back into
// one of its own inputs after construction.
func (b *base) Connect(i int, src *sfgsim.OutputPin) {
	b.connect(i, src)
}

// SetBits declares a quantisation bit width for input i; 0 (the
// default) leaves the signal unquantised in quantizePerInstruction mode.
func (b *base) SetBits(i, bits int) {
	b.inputs[i].Bits = bits
}

// Output0 is a convenience for the overwhelmingly common case of an
// operation with exactly one output.
func (b *base) Output0() *sfgsim.OutputPin { return &b.outputs[0] }
