package sfgops

import "github.com/asicgo/sfgsim"

// Delay is a unit delay (z^-1): on iteration n it produces the value
// its input carried on iteration n-1 (or Initial, on the first
// iteration). Its input is wired after construction with Feed, since
// the feeding signal commonly depends on the delay's own current value
// (a feedback loop through a delay is exactly what makes a
// signal-flow graph recursive rather than acyclic).
type Delay struct {
	base
	initial sfgsim.Number
}

// NewDelay declares a delay node with the given initial value. Call
// Feed before compiling the graph.
func NewDelay(id string, initial sfgsim.Number) *Delay {
	d := &Delay{initial: initial}
	d.init(d, id, 1, 1)
	return d
}

// Feed wires in as the value the delay publishes on the following
// iteration.
func (d *Delay) Feed(in *sfgsim.OutputPin) { d.connect(0, in) }

func (d *Delay) TypeName() string            { return "t" }
func (d *Delay) InitialValue() sfgsim.Number { return d.initial }
