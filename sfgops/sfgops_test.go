package sfgops_test

import (
	"testing"

	"github.com/asicgo/sfgsim"
	"github.com/asicgo/sfgsim/sfgops"
)

func r(v float64) sfgsim.Number { return sfgsim.RealNumber(v) }

func TestOperationArityAndTypeNames(t *testing.T) {
	in0, in1 := sfgops.NewIn("in0"), sfgops.NewIn("in1")
	cases := []struct {
		op       sfgsim.Operation
		wantType string
		wantIn   int
		wantOut  int
	}{
		{sfgops.NewConstant("c", r(1)), "c", 0, 1},
		{sfgops.NewAdd("add", in0.Output(0), in1.Output(0)), "add", 2, 1},
		{sfgops.NewSub("sub", in0.Output(0), in1.Output(0)), "sub", 2, 1},
		{sfgops.NewMul("mul", in0.Output(0), in1.Output(0)), "mul", 2, 1},
		{sfgops.NewDiv("div", in0.Output(0), in1.Output(0)), "div", 2, 1},
		{sfgops.NewMin("min", in0.Output(0), in1.Output(0)), "min", 2, 1},
		{sfgops.NewMax("max", in0.Output(0), in1.Output(0)), "max", 2, 1},
		{sfgops.NewSqrt("sqrt", in0.Output(0)), "sqrt", 1, 1},
		{sfgops.NewConj("conj", in0.Output(0)), "conj", 1, 1},
		{sfgops.NewAbs("abs", in0.Output(0)), "abs", 1, 1},
		{sfgops.NewConstMul("cmul", in0.Output(0), r(2)), "cmul", 1, 1},
		{sfgops.NewButterfly("bfly", in0.Output(0), in1.Output(0)), "bfly", 2, 2},
		{in0, "in", 0, 1},
		{sfgops.NewOut("out", in0.Output(0)), "out", 1, 1},
		{sfgops.NewDelay("t", r(0)), "t", 1, 1},
	}
	for _, c := range cases {
		if got := c.op.TypeName(); got != c.wantType {
			t.Errorf("%s: TypeName = %q, want %q", c.op.GraphID(), got, c.wantType)
		}
		if got := c.op.InputCount(); got != c.wantIn {
			t.Errorf("%s: InputCount = %d, want %d", c.op.GraphID(), got, c.wantIn)
		}
		if got := c.op.OutputCount(); got != c.wantOut {
			t.Errorf("%s: OutputCount = %d, want %d", c.op.GraphID(), got, c.wantOut)
		}
	}
}

func TestOutputPinIdentityIsStablePerOperation(t *testing.T) {
	c := sfgops.NewConstant("c", r(1))
	if c.Output(0) != c.Output(0) {
		t.Fatal("Output(0) must return the same *OutputPin across calls")
	}
}

// A two-level nested subgraph preserves a distinct, prefixed result key
// for every node at every level of nesting.
func TestNestedSubgraphKeyPrefixing(t *testing.T) {
	bIn := sfgops.NewIn("bin")
	bConst := sfgops.NewConstant("c1", r(1))
	bAdd := sfgops.NewAdd("badd", bIn.Output(0), bConst.Output(0))
	bOut := sfgops.NewOut("bout", bAdd.Output(0))
	innerGraph := sfgops.NewGraph([]*sfgops.In{bIn}, []*sfgops.Out{bOut})

	aIn := sfgops.NewIn("ain")
	subB := sfgops.NewSubgraph("subB", innerGraph, aIn.Output(0))
	aOut := sfgops.NewOut("aout", subB.Output(0))
	middleGraph := sfgops.NewGraph([]*sfgops.In{aIn}, []*sfgops.Out{aOut})

	topIn := sfgops.NewIn("top_in")
	subA := sfgops.NewSubgraph("subA", middleGraph, topIn.Output(0))
	topOut := sfgops.NewOut("result", subA.Output(0))
	topGraph := sfgops.NewGraph([]*sfgops.In{topIn}, []*sfgops.Out{topOut})

	p, err := sfgsim.Compile(topGraph)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	sim, err := sfgsim.NewSimulation(p, []sfgsim.InputProvider{sfgsim.ConstantInput(r(5))}, sfgsim.Config{})
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}
	out, err := sim.Step()
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if len(out) != 1 || !out[0].Equal(r(6)) {
		t.Fatalf("final output: got %v, want [6]", out)
	}

	history := sim.Results()
	want := map[string]sfgsim.Number{
		"top_in":           r(5),
		"subA.ain":         r(5),
		"subA.subB.bin":    r(5),
		"subA.subB.c1":     r(1),
		"subA.subB.badd":   r(6),
		"subA.subB.bout":   r(6),
		"subA.subB":        r(6),
		"subA.aout":        r(6),
		"subA":             r(6),
	}
	for key, v := range want {
		got, ok := history[key]
		if !ok {
			t.Errorf("missing result key %q (have: %v)", key, keys(history))
			continue
		}
		if len(got) != 1 || !got[0].Equal(v) {
			t.Errorf("key %q: got %v, want [%v]", key, got, v)
		}
	}
}

func keys(m map[string][]sfgsim.Number) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
