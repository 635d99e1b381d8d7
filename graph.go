package sfgsim

// OutputPin is one output of one Operation. Its identity (pointer
// equality) is what the compiler memoises on: two InputPins whose
// Source points at the same *OutputPin refer to the same produced
// value, and must be compiled to a single emission plus push_result
// references on re-visit.
type OutputPin struct {
	Op    Operation
	Index int
}

// InputPin is one input of one Operation: the single signal feeding it
// (spec.md's inputs[i].signals[0]) and an optional quantisation bit
// width for that signal (0 means "unspecified").
type InputPin struct {
	Source *OutputPin
	Bits   int
}

// Operation is the narrow, read-only contract the compiler uses to walk
// one node of a source graph. Concrete graphs (see package sfgops)
// implement this directly; the compiler never depends on a concrete
// graph representation.
//
// TypeName returns one of the short dispatch tags documented in
// spec.md §4.2: "c", "add", "sub", "mul", "div", "min", "max", "sqrt",
// "conj", "abs", "cmul", "bfly", "in", "out", "t", "sfg". Any other tag
// is treated as a custom operation.
type Operation interface {
	GraphID() string
	TypeName() string
	InputCount() int
	OutputCount() int
	Input(i int) *InputPin
	Output(i int) *OutputPin
}

// GraphLike is exposed both by the root graph handed to Compile and, for
// "sfg" operations, by the nested subgraph itself.
type GraphLike interface {
	InputCount() int
	OutputCount() int
	// OutputOperations are the graph's sinks: compilation walks upstream
	// from each of these. They are "out" operations, one per output port,
	// both at the root and inside a subgraph.
	OutputOperations() []Operation
	// InputOperations are the graph's declared "in" operations, in port
	// order. Used to resolve a nested "in" to the outer signal driving
	// the corresponding port.
	InputOperations() []Operation
}

// valueOperation is implemented by "c" (constant) and "cmul" (constant
// multiplication) operations.
type valueOperation interface {
	Value() Number
}

// initialValueOperation is implemented by "t" (delay) operations.
type initialValueOperation interface {
	InitialValue() Number
}

// subgraphOperation is implemented by "sfg" operations: both an
// Operation (for wiring into the parent graph) and a GraphLike (for
// walking its contents).
type subgraphOperation interface {
	Operation
	GraphLike
}

// evaluatorOperation is implemented by custom operations: anything whose
// TypeName() is not one of the built-in dispatch tags, but that can
// still produce an Evaluator to be invoked at runtime.
type evaluatorOperation interface {
	Evaluate() Evaluator
}
