package sfgops

import "github.com/asicgo/sfgsim"

// Butterfly is the canonical two-point FFT building block: output 0 is
// a+b, output 1 is a-b.
type Butterfly struct {
	base
}

// NewButterfly wires a butterfly node from inputs a and b.
func NewButterfly(id string, a, b *sfgsim.OutputPin) *Butterfly {
	n := &Butterfly{}
	n.init(n, id, 2, 2)
	n.connect(0, a)
	n.connect(1, b)
	return n
}

func (n *Butterfly) TypeName() string { return "bfly" }

// Sum is output 0 (a+b).
func (n *Butterfly) Sum() *sfgsim.OutputPin { return n.Output(0) }

// Diff is output 1 (a-b).
func (n *Butterfly) Diff() *sfgsim.OutputPin { return n.Output(1) }
