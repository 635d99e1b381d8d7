package sfgsim

// Opcode identifies the operation performed by one Instruction in a
// compiled Program. See the stack-effect table in spec.md §4.1.
type Opcode uint8

const (
	OpPushInput Opcode = iota
	OpPushResult
	OpPushDelay
	OpPushConstant
	OpQuantize
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMin
	OpMax
	OpSqrt
	OpConj
	OpAbs
	OpConstMul
	OpUpdateDelay
	OpCustom
	OpForwardValue
)

var opcodeNames = [...]string{
	OpPushInput:    "push_input",
	OpPushResult:   "push_result",
	OpPushDelay:    "push_delay",
	OpPushConstant: "push_constant",
	OpQuantize:     "quantize",
	OpAdd:          "addition",
	OpSub:          "subtraction",
	OpMul:          "multiplication",
	OpDiv:          "division",
	OpMin:          "min",
	OpMax:          "max",
	OpSqrt:         "square_root",
	OpConj:         "complex_conjugate",
	OpAbs:          "absolute",
	OpConstMul:     "constant_multiplication",
	OpUpdateDelay:  "update_delay",
	OpCustom:       "custom",
	OpForwardValue: "forward_value",
}

// String implements fmt.Stringer.
func (op Opcode) String() string {
	if int(op) < len(opcodeNames) {
		return opcodeNames[op]
	}
	return "opcode(?)"
}

// stackEffect returns the net change in stack depth produced by executing
// one instruction of this opcode, per the table in spec.md §4.1. Opcodes
// whose effect depends on the instruction payload (custom) are handled
// separately by the caller.
func (op Opcode) stackEffect() int {
	switch op {
	case OpPushInput, OpPushResult, OpPushDelay, OpPushConstant:
		return 1
	case OpQuantize, OpSqrt, OpConj, OpAbs, OpConstMul, OpForwardValue:
		return 0
	case OpAdd, OpSub, OpMul, OpDiv, OpMin, OpMax, OpUpdateDelay:
		return -1
	default:
		panic("sfgsim: stackEffect called with opcode " + op.String() + " (needs payload)")
	}
}
