package sfgsim

import "github.com/pkg/errors"

// executeStep runs p's instructions once against delayValues (the
// persistent per-delay state, mutated in place by any update_delay
// instruction) and inputs (one value per declared input).
//
// It returns two views of the step: results holds one entry per
// ResultKeys plus the trailing scratch slot that instructions tagged
// RESULT_NONE write to, and outputs holds the final stack contents —
// exactly OutputCount values, per the compiled program's invariant.
//
// mode and bitsOverrideMask together select one of the three
// quantisation behaviours documented in spec.md §4.3; bitsOverrideMask
// is ignored unless mode is quantizeBitsOverride.
func executeStep(p *Program, delayValues []Number, inputs []Number, mode quantizeMode, bitsOverrideMask uint64) ([]Number, []Number, error) {
	if len(inputs) != p.InputCount {
		return nil, nil, errors.Wrapf(ErrProviderCountMismatch, "got %d, want %d", len(inputs), p.InputCount)
	}
	if len(delayValues) != len(p.Delays) {
		return nil, nil, errors.New("sfgsim: delay state size does not match program")
	}

	stack := make([]Number, 0, p.RequiredStackSize)
	push := func(v Number) { stack = append(stack, v) }
	pop := func() Number {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return v
	}
	peek := func() Number { return stack[len(stack)-1] }

	results := make([]Number, len(p.ResultKeys)+1)
	quantizeActive := mode != quantizeDisabled

	for _, instr := range p.Instructions {
		var out Number
		pushedBack := true

		switch instr.Op {
		case OpPushInput:
			if instr.Index < 0 || instr.Index >= len(inputs) {
				return nil, nil, errors.Wrap(ErrInputIndexRange, "push_input")
			}
			out = inputs[instr.Index]
			push(out)

		case OpPushResult:
			out = results[instr.Index]
			push(out)

		case OpPushDelay:
			out = delayValues[instr.Index]
			push(out)

		case OpPushConstant:
			out = instr.Value
			push(out)

		case OpQuantize:
			v := pop()
			if mode == quantizePerInstruction {
				t, err := truncateReal(v, instr.Mask)
				if err != nil {
					return nil, nil, err
				}
				v = t
			}
			out = v
			push(out)

		case OpAdd:
			rhs, lhs := pop(), pop()
			out = lhs.Add(rhs)
			push(out)

		case OpSub:
			rhs, lhs := pop(), pop()
			out = lhs.Sub(rhs)
			push(out)

		case OpMul:
			rhs, lhs := pop(), pop()
			out = lhs.Mul(rhs)
			push(out)

		case OpDiv:
			rhs, lhs := pop(), pop()
			out = lhs.Div(rhs)
			push(out)

		case OpMin:
			rhs, lhs := pop(), pop()
			if !rhs.IsReal() || !lhs.IsReal() {
				return nil, nil, errors.Wrap(ErrComplexCompare, "min")
			}
			if lhs.Real() <= rhs.Real() {
				out = lhs
			} else {
				out = rhs
			}
			push(out)

		case OpMax:
			rhs, lhs := pop(), pop()
			if !rhs.IsReal() || !lhs.IsReal() {
				return nil, nil, errors.Wrap(ErrComplexCompare, "max")
			}
			if lhs.Real() >= rhs.Real() {
				out = lhs
			} else {
				out = rhs
			}
			push(out)

		case OpSqrt:
			out = pop().Sqrt()
			push(out)

		case OpConj:
			out = pop().Conj()
			push(out)

		case OpAbs:
			out = pop().Abs()
			push(out)

		case OpConstMul:
			out = pop().Mul(instr.Value)
			push(out)

		case OpUpdateDelay:
			out = pop()
			delayValues[instr.Index] = out
			pushedBack = false

		case OpCustom:
			src := p.CustomSources[instr.Index]
			op := p.CustomOperations[src.CustomOperationIndex]
			ins := make([]Number, op.InputCount)
			for k := op.InputCount - 1; k >= 0; k-- {
				ins[k] = pop()
			}
			v, err := op.Eval(src.OutputIndex, ins, quantizeActive)
			if err != nil {
				return nil, nil, errors.Wrapf(err, "custom operation %q", op.Name)
			}
			out = v
			push(out)

		case OpForwardValue:
			out = peek()

		default:
			return nil, nil, errors.Errorf("sfgsim: unknown opcode %v", instr.Op)
		}

		if mode == quantizeBitsOverride {
			t, err := truncateReal(out, bitsOverrideMask)
			if err != nil {
				return nil, nil, err
			}
			out = t
			if pushedBack {
				stack[len(stack)-1] = out
			} else {
				delayValues[instr.Index] = out
			}
		}

		results[instr.Result] = out
	}

	return results, stack, nil
}
