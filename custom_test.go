package sfgsim_test

import (
	"testing"

	"github.com/asicgo/sfgsim"
	"github.com/asicgo/sfgsim/sfgops"
	"github.com/asicgo/sfgsim/sfgtest"
)

// A custom operation evaluated externally: out = 2*in0 + in1.
func TestScenarioCustomOperation(t *testing.T) {
	in0, in1 := sfgops.NewIn("in0"), sfgops.NewIn("in1")
	eval := func(outputIndex int, inputs []sfgsim.Number, quantizeEnabled bool) (sfgsim.Number, error) {
		return inputs[0].Mul(num(2)).Add(inputs[1]), nil
	}
	custom := sfgops.NewCustom("scale_add", "scale_add", 1, eval, in0.Output(0), in1.Output(0))
	out := sfgops.NewOut("out", custom.Output(0))
	g := sfgops.NewGraph([]*sfgops.In{in0, in1}, []*sfgops.Out{out})

	p, err := sfgsim.Compile(g)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	sim := newSim(t, p, []sfgsim.InputProvider{
		sfgsim.SequenceInput(nums(1, 2, 3)),
		sfgsim.SequenceInput(nums(1, 1, 1)),
	}, sfgsim.Config{})
	sfgtest.AssertOutputs(t, sim, [][]sfgsim.Number{nums(3), nums(5), nums(7)})
}

// The two outputs of one custom node each get their own CustomSource but
// share one CustomOperation entry.
func TestCustomOperationDeduplicatesAcrossOutputs(t *testing.T) {
	in0 := sfgops.NewIn("in0")
	eval := func(outputIndex int, inputs []sfgsim.Number, quantizeEnabled bool) (sfgsim.Number, error) {
		if outputIndex == 0 {
			return inputs[0].Add(num(1)), nil
		}
		return inputs[0].Sub(num(1)), nil
	}
	custom := sfgops.NewCustom("plus_minus", "plus_minus", 2, eval, in0.Output(0))
	out0 := sfgops.NewOut("out0", custom.Output(0))
	out1 := sfgops.NewOut("out1", custom.Output(1))
	g := sfgops.NewGraph([]*sfgops.In{in0}, []*sfgops.Out{out0, out1})

	p, err := sfgsim.Compile(g)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(p.CustomOperations) != 1 {
		t.Fatalf("CustomOperations: got %d, want 1", len(p.CustomOperations))
	}
	if len(p.CustomSources) != 2 {
		t.Fatalf("CustomSources: got %d, want 2", len(p.CustomSources))
	}

	sim := newSim(t, p, []sfgsim.InputProvider{sfgsim.ConstantInput(num(10))}, sfgsim.Config{})
	sfgtest.AssertOutputs(t, sim, [][]sfgsim.Number{nums(11, 9)})
}
