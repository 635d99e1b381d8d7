package sfgops

import "github.com/asicgo/sfgsim"

// In marks one input port of a graph or subgraph. At the outermost
// level it resolves to the corresponding Simulation input provider;
// nested inside a Subgraph, it resolves to the signal wired into that
// subgraph's matching port.
type In struct {
	base
}

// NewIn declares an input port named id.
func NewIn(id string) *In {
	n := &In{}
	n.init(n, id, 0, 1)
	return n
}

func (n *In) TypeName() string { return "in" }

// Out marks one output sink of a graph or subgraph: the value flowing
// into it is what that port produces on each iteration.
type Out struct {
	base
}

// NewOut declares an output sink named id, fed by in.
func NewOut(id string, in *sfgsim.OutputPin) *Out {
	n := &Out{}
	n.init(n, id, 1, 1)
	n.connect(0, in)
	return n
}

func (n *Out) TypeName() string { return "out" }
