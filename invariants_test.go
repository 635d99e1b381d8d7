package sfgsim

import "testing"

// Minimal in-package Operation fakes, used only to build a small graph
// without importing sfgops (which itself imports this package).

type fakeIn struct {
	id  string
	out OutputPin
}

func newFakeIn(id string) *fakeIn {
	f := &fakeIn{id: id}
	f.out = OutputPin{Op: f, Index: 0}
	return f
}

func (f *fakeIn) GraphID() string        { return f.id }
func (f *fakeIn) TypeName() string       { return "in" }
func (f *fakeIn) InputCount() int        { return 0 }
func (f *fakeIn) OutputCount() int       { return 1 }
func (f *fakeIn) Input(i int) *InputPin  { panic("no inputs") }
func (f *fakeIn) Output(i int) *OutputPin { return &f.out }

type fakeConst struct {
	id  string
	v   Number
	out OutputPin
}

func newFakeConst(id string, v Number) *fakeConst {
	f := &fakeConst{id: id, v: v}
	f.out = OutputPin{Op: f, Index: 0}
	return f
}

func (f *fakeConst) GraphID() string        { return f.id }
func (f *fakeConst) TypeName() string       { return "c" }
func (f *fakeConst) InputCount() int        { return 0 }
func (f *fakeConst) OutputCount() int       { return 1 }
func (f *fakeConst) Input(i int) *InputPin  { panic("no inputs") }
func (f *fakeConst) Output(i int) *OutputPin { return &f.out }
func (f *fakeConst) Value() Number          { return f.v }

type fakeAdd struct {
	id     string
	inputs [2]InputPin
	out    OutputPin
}

func newFakeAdd(id string, a, b *OutputPin) *fakeAdd {
	f := &fakeAdd{id: id}
	f.inputs[0] = InputPin{Source: a}
	f.inputs[1] = InputPin{Source: b}
	f.out = OutputPin{Op: f, Index: 0}
	return f
}

func (f *fakeAdd) GraphID() string        { return f.id }
func (f *fakeAdd) TypeName() string       { return "add" }
func (f *fakeAdd) InputCount() int        { return 2 }
func (f *fakeAdd) OutputCount() int       { return 1 }
func (f *fakeAdd) Input(i int) *InputPin  { return &f.inputs[i] }
func (f *fakeAdd) Output(i int) *OutputPin { return &f.out }

type fakeOut struct {
	id    string
	input InputPin
	out   OutputPin
}

func newFakeOut(id string, in *OutputPin) *fakeOut {
	f := &fakeOut{id: id}
	f.input = InputPin{Source: in}
	f.out = OutputPin{Op: f, Index: 0}
	return f
}

func (f *fakeOut) GraphID() string        { return f.id }
func (f *fakeOut) TypeName() string       { return "out" }
func (f *fakeOut) InputCount() int        { return 1 }
func (f *fakeOut) OutputCount() int       { return 1 }
func (f *fakeOut) Input(i int) *InputPin  { return &f.input }
func (f *fakeOut) Output(i int) *OutputPin { return &f.out }

type fakeGraph struct {
	ins  []Operation
	outs []Operation
}

func (g *fakeGraph) InputCount() int                 { return len(g.ins) }
func (g *fakeGraph) OutputCount() int                { return len(g.outs) }
func (g *fakeGraph) InputOperations() []Operation    { return g.ins }
func (g *fakeGraph) OutputOperations() []Operation   { return g.outs }

// add(add(c1, c2), add(c3, c4)) — a balanced binary tree deep enough that
// the compiler must hold partial sums on the stack across both branches
// of the outer add before it can combine them.
func buildDiamond() GraphLike {
	c1, c2, c3, c4 := newFakeConst("c1", RealNumber(1)), newFakeConst("c2", RealNumber(2)),
		newFakeConst("c3", RealNumber(3)), newFakeConst("c4", RealNumber(4))
	left := newFakeAdd("left", c1.Output(0), c2.Output(0))
	right := newFakeAdd("right", c3.Output(0), c4.Output(0))
	top := newFakeAdd("top", left.Output(0), right.Output(0))
	out := newFakeOut("out", top.Output(0))
	return &fakeGraph{outs: []Operation{out}}
}

// peakStackDepth replays a program's instructions using each opcode's
// declared stack effect and returns the highest depth reached.
func peakStackDepth(t *testing.T, p *Program) int {
	t.Helper()
	depth, peak := 0, 0
	for _, instr := range p.Instructions {
		var effect int
		if instr.Op == OpCustom {
			op := p.CustomOperations[p.CustomSources[instr.Index].CustomOperationIndex]
			effect = 1 - op.InputCount
		} else {
			effect = instr.Op.stackEffect()
		}
		depth += effect
		if depth < 0 {
			t.Fatalf("stack underflow replaying instruction %+v", instr)
		}
		if depth > peak {
			peak = depth
		}
	}
	return peak
}

func TestRequiredStackSizeIsThePeakDepthReached(t *testing.T) {
	p, err := Compile(buildDiamond())
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if got := peakStackDepth(t, p); got != p.RequiredStackSize {
		t.Fatalf("peak stack depth = %d, RequiredStackSize = %d", got, p.RequiredStackSize)
	}
}

func TestResultKeysAreUnique(t *testing.T) {
	p, err := Compile(buildDiamond())
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	seen := make(map[string]bool, len(p.ResultKeys))
	for _, k := range p.ResultKeys {
		if seen[k] {
			t.Fatalf("duplicate result key %q", k)
		}
		seen[k] = true
	}
}
