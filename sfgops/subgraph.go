package sfgops

import "github.com/asicgo/sfgsim"

// Graph is the top-level GraphLike builder: it collects a set of
// declared input ports and output sinks into the value sfgsim.Compile
// walks. Build it last, once every operation in the graph has been
// constructed and wired.
type Graph struct {
	inputs  []sfgsim.Operation
	outputs []sfgsim.Operation
}

// NewGraph assembles a graph from its declared inputs (in port order)
// and outputs (in sink order).
func NewGraph(inputs []*In, outputs []*Out) *Graph {
	g := &Graph{
		inputs:  make([]sfgsim.Operation, len(inputs)),
		outputs: make([]sfgsim.Operation, len(outputs)),
	}
	for i, in := range inputs {
		g.inputs[i] = in
	}
	for i, out := range outputs {
		g.outputs[i] = out
	}
	return g
}

func (g *Graph) InputCount() int                        { return len(g.inputs) }
func (g *Graph) OutputCount() int                        { return len(g.outputs) }
func (g *Graph) InputOperations() []sfgsim.Operation     { return g.inputs }
func (g *Graph) OutputOperations() []sfgsim.Operation    { return g.outputs }

// Subgraph embeds a Graph as a single node of an enclosing graph: it is
// both an Operation (wired in among its parent's nodes, one input per
// declared In, one output per declared Out) and a GraphLike over its
// own contents, which is what lets sfgsim.Compile flatten it in place.
type Subgraph struct {
	base
	inner *Graph
}

// NewSubgraph wraps inner as a single operation named id, wired to ins
// (one source per inner.InputOperations() port, in order).
func NewSubgraph(id string, inner *Graph, ins ...*sfgsim.OutputPin) *Subgraph {
	if len(ins) != inner.InputCount() {
		panic("sfgops: NewSubgraph: wrong number of input connections")
	}
	s := &Subgraph{inner: inner}
	s.init(s, id, inner.InputCount(), inner.OutputCount())
	for i, in := range ins {
		s.connect(i, in)
	}
	return s
}

func (s *Subgraph) TypeName() string { return "sfg" }

func (s *Subgraph) InputOperations() []sfgsim.Operation  { return s.inner.InputOperations() }
func (s *Subgraph) OutputOperations() []sfgsim.Operation { return s.inner.OutputOperations() }
