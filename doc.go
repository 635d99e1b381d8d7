/*
Package sfgsim provides the core simulation engine for a signal-flow-graph
(SFG) DSP toolbox.

It compiles a structural description of a signal-flow graph — operations
connected by signals, with feedback permitted only through delay elements
— into a flat linear program for a small stack-based virtual machine, and
then interprets that program, iteration by iteration, against persistent
delay state.

The package is split into a compiler (graph.go, compiler.go) which lowers
a read-only graph description into a *Program, and an interpreter
(interpreter.go, quantize.go) plus a driver (simulation.go,
inputprovider.go) which run that program and collect per-node result
time-series.

Concrete graph-building blocks (adders, delays, subgraphs, ...) live in
the sibling package sfgops; this package only depends on the narrow
Operation/GraphLike accessor interfaces in graph.go.
*/
package sfgsim
