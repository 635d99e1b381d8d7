package sfgsim

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// CompileOption configures a single call to Compile.
type CompileOption func(*compiler)

// WithLogger attaches a logger the compiler uses for Debug-level
// tracing of memoisation and delay-draining decisions. A nil logger (the
// default) disables all compile-time logging; it never affects the
// compiled Program.
func WithLogger(l *logrus.Logger) CompileOption {
	return func(c *compiler) { c.logger = l }
}

// frame identifies one level of subgraph nesting during traversal: the
// "sfg" operation as wired into its parent, the subgraph's own content
// view, and the key prefix that was active one level up (needed to
// resolve a nested "in" operation back to the signal driving it).
type frame struct {
	op           subgraphOperation
	parentPrefix string
}

type deferredDelay struct {
	delayIndex int
	input      *InputPin
	prefix     string
	stack      []frame
}

type compiler struct {
	root GraphLike

	instructions []Instruction
	delays       []Delay
	resultKeys   []string

	customOperations []CustomOperation
	customSources    []CustomSource
	customOpIndex    map[Operation]int

	resultIndex map[*OutputPin]ResultIndex
	inProgress  map[*OutputPin]bool

	deferred []deferredDelay

	stackDepth int
	maxStack   int

	logger *logrus.Logger
}

// Compile lowers graph into a flat Program. graph is never mutated; the
// returned Program is immutable and safe to share across any number of
// Simulation instances.
func Compile(graph GraphLike, opts ...CompileOption) (*Program, error) {
	c := &compiler{
		root:          graph,
		customOpIndex: make(map[Operation]int),
		resultIndex:   make(map[*OutputPin]ResultIndex),
		inProgress:    make(map[*OutputPin]bool),
	}
	for _, o := range opts {
		o(c)
	}

	sinks := graph.OutputOperations()
	for i, sink := range sinks {
		if _, err := c.compileSink(sink, i, "", nil); err != nil {
			return nil, errors.Wrapf(err, "output %d", i)
		}
	}

	for len(c.deferred) > 0 {
		d := c.deferred[0]
		c.deferred = c.deferred[1:]
		if c.logger != nil {
			c.logger.WithFields(logrus.Fields{
				"delay": d.delayIndex,
				"key":   c.delays[d.delayIndex].Result,
			}).Debug("draining deferred delay input")
		}
		if err := c.pushOperand(d.input, d.prefix, d.stack); err != nil {
			return nil, errors.Wrapf(err, "delay %d input", d.delayIndex)
		}
		c.emit(Instruction{Op: OpUpdateDelay, Index: d.delayIndex, Result: ResultNone})
	}

	return c.finalize()
}

func (c *compiler) finalize() (*Program, error) {
	if len(c.resultKeys) > int(ResultNone) {
		return nil, ErrTooManyResults
	}
	scratch := ResultIndex(len(c.resultKeys))
	for i := range c.instructions {
		if c.instructions[i].Result == ResultNone {
			c.instructions[i].Result = scratch
		}
	}
	return &Program{
		Instructions:      c.instructions,
		Delays:            c.delays,
		CustomOperations:  c.customOperations,
		CustomSources:     c.customSources,
		ResultKeys:        c.resultKeys,
		InputCount:        c.root.InputCount(),
		OutputCount:       c.root.OutputCount(),
		RequiredStackSize: c.maxStack,
	}, nil
}

// emit appends instr to the program, updating (and checking) the
// tracked stack depth.
func (c *compiler) emit(instr Instruction) error {
	var eff int
	if instr.Op == OpCustom {
		src := c.customSources[instr.Index]
		eff = 1 - c.customOperations[src.CustomOperationIndex].InputCount
	} else {
		eff = instr.Op.stackEffect()
	}
	c.stackDepth += eff
	if c.stackDepth < 0 {
		return errors.Wrap(ErrStackUnderflow, instr.Op.String())
	}
	if c.stackDepth > c.maxStack {
		c.maxStack = c.stackDepth
	}
	c.instructions = append(c.instructions, instr)
	return nil
}

func (c *compiler) newResult(key string) (ResultIndex, error) {
	if len(c.resultKeys) >= int(ResultNone) {
		return 0, ErrTooManyResults
	}
	idx := ResultIndex(len(c.resultKeys))
	c.resultKeys = append(c.resultKeys, key)
	return idx, nil
}

// keyFor computes the result key for one output of op, given the active
// key prefix, following the naming rule in spec.md §3.
func keyFor(op Operation, outputIndex int, prefix string) string {
	local := op.GraphID()
	if op.OutputCount() > 1 {
		local = local + "." + strconv.Itoa(outputIndex)
	}
	if prefix == "" {
		return local
	}
	return prefix + "." + local
}

func maskForBits(bits int) uint64 {
	if bits >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(bits)) - 1
}

func indexOfOperation(ops []Operation, op Operation) (int, bool) {
	for i, o := range ops {
		if o == op {
			return i, true
		}
	}
	return -1, false
}

// pushOperand walks in's source onto the stack and, if in declares a bit
// width, emits the corresponding quantize instruction immediately after.
func (c *compiler) pushOperand(in *InputPin, prefix string, stack []frame) error {
	if _, err := c.pushValue(in.Source, prefix, stack); err != nil {
		return err
	}
	if in.Bits > 0 {
		if in.Bits > 64 {
			return ErrQuantizeWidth
		}
		return c.emit(Instruction{Op: OpQuantize, Mask: maskForBits(in.Bits), Result: ResultNone})
	}
	return nil
}

// pushValue ensures the value produced at outPin is on top of the stack,
// either by compiling it for the first time or, on re-visit, by emitting
// a single push_result referencing its previously-assigned index.
func (c *compiler) pushValue(outPin *OutputPin, prefix string, stack []frame) (ResultIndex, error) {
	if idx, ok := c.resultIndex[outPin]; ok {
		if err := c.emit(Instruction{Op: OpPushResult, Index: int(idx), Result: ResultNone}); err != nil {
			return 0, err
		}
		return idx, nil
	}
	if c.inProgress[outPin] {
		if outPin.Op.TypeName() != "t" {
			return 0, errors.Wrap(ErrDirectFeedback, outPin.Op.GraphID())
		}
	}
	c.inProgress[outPin] = true
	idx, err := c.compileOutput(outPin, prefix, stack)
	delete(c.inProgress, outPin)
	if err != nil {
		return 0, err
	}
	if c.logger != nil {
		c.logger.WithFields(logrus.Fields{
			"op":  outPin.Op.TypeName(),
			"id":  outPin.Op.GraphID(),
			"key": c.resultKeys[idx],
		}).Debug("memoised output")
	}
	return idx, nil
}

// compileSink walks an "out" operation's feeding signal and records it
// under the sink's own key: sinkIndex (its positional index among the
// enclosing OutputOperations list) when prefix is empty, p.g otherwise.
func (c *compiler) compileSink(sink Operation, sinkIndex int, prefix string, stack []frame) (ResultIndex, error) {
	outPin := sink.Output(0)
	if idx, ok := c.resultIndex[outPin]; ok {
		if err := c.emit(Instruction{Op: OpPushResult, Index: int(idx), Result: ResultNone}); err != nil {
			return 0, err
		}
		return idx, nil
	}
	if c.inProgress[outPin] {
		return 0, errors.Wrap(ErrDirectFeedback, sink.GraphID())
	}
	c.inProgress[outPin] = true
	defer delete(c.inProgress, outPin)

	if err := c.pushOperand(sink.Input(0), prefix, stack); err != nil {
		return 0, err
	}
	var key string
	if prefix == "" {
		key = strconv.Itoa(sinkIndex)
	} else {
		key = prefix + "." + sink.GraphID()
	}
	idx, err := c.newResult(key)
	if err != nil {
		return 0, err
	}
	if err := c.emit(Instruction{Op: OpForwardValue, Result: idx}); err != nil {
		return 0, err
	}
	c.resultIndex[outPin] = idx
	return idx, nil
}

// compileOutput dispatches on the operation's declared type tag,
// implementing the rules in spec.md §4.2. It assumes outPin is neither
// memoised nor (other than legally, via a delay) in progress.
func (c *compiler) compileOutput(outPin *OutputPin, prefix string, stack []frame) (ResultIndex, error) {
	op := outPin.Op
	switch op.TypeName() {
	case "c":
		idx, err := c.newResult(keyFor(op, 0, prefix))
		if err != nil {
			return 0, err
		}
		v, ok := op.(valueOperation)
		if !ok {
			return 0, errors.New("constant operation " + op.GraphID() + " has no Value()")
		}
		if err := c.emit(Instruction{Op: OpPushConstant, Value: v.Value(), Result: idx}); err != nil {
			return 0, err
		}
		c.resultIndex[outPin] = idx
		return idx, nil

	case "add", "sub", "mul", "div", "min", "max":
		if err := c.pushOperand(op.Input(0), prefix, stack); err != nil {
			return 0, err
		}
		if err := c.pushOperand(op.Input(1), prefix, stack); err != nil {
			return 0, err
		}
		idx, err := c.newResult(keyFor(op, 0, prefix))
		if err != nil {
			return 0, err
		}
		opc := map[string]Opcode{"add": OpAdd, "sub": OpSub, "mul": OpMul, "div": OpDiv, "min": OpMin, "max": OpMax}[op.TypeName()]
		if err := c.emit(Instruction{Op: opc, Result: idx}); err != nil {
			return 0, err
		}
		c.resultIndex[outPin] = idx
		return idx, nil

	case "sqrt", "conj", "abs":
		if err := c.pushOperand(op.Input(0), prefix, stack); err != nil {
			return 0, err
		}
		idx, err := c.newResult(keyFor(op, 0, prefix))
		if err != nil {
			return 0, err
		}
		opc := map[string]Opcode{"sqrt": OpSqrt, "conj": OpConj, "abs": OpAbs}[op.TypeName()]
		if err := c.emit(Instruction{Op: opc, Result: idx}); err != nil {
			return 0, err
		}
		c.resultIndex[outPin] = idx
		return idx, nil

	case "cmul":
		if err := c.pushOperand(op.Input(0), prefix, stack); err != nil {
			return 0, err
		}
		idx, err := c.newResult(keyFor(op, 0, prefix))
		if err != nil {
			return 0, err
		}
		v, ok := op.(valueOperation)
		if !ok {
			return 0, errors.New("cmul operation " + op.GraphID() + " has no Value()")
		}
		if err := c.emit(Instruction{Op: OpConstMul, Value: v.Value(), Result: idx}); err != nil {
			return 0, err
		}
		c.resultIndex[outPin] = idx
		return idx, nil

	case "bfly":
		if err := c.pushOperand(op.Input(0), prefix, stack); err != nil {
			return 0, err
		}
		if err := c.pushOperand(op.Input(1), prefix, stack); err != nil {
			return 0, err
		}
		idx, err := c.newResult(keyFor(op, outPin.Index, prefix))
		if err != nil {
			return 0, err
		}
		opc := OpAdd
		if outPin.Index == 1 {
			opc = OpSub
		}
		if err := c.emit(Instruction{Op: opc, Result: idx}); err != nil {
			return 0, err
		}
		c.resultIndex[outPin] = idx
		return idx, nil

	case "t":
		init, ok := op.(initialValueOperation)
		if !ok {
			return 0, errors.New("delay operation " + op.GraphID() + " has no InitialValue()")
		}
		idx, err := c.newResult(keyFor(op, 0, prefix))
		if err != nil {
			return 0, err
		}
		c.resultIndex[outPin] = idx
		delayIdx := len(c.delays)
		c.delays = append(c.delays, Delay{Initial: init.InitialValue(), Result: idx})
		if err := c.emit(Instruction{Op: OpPushDelay, Index: delayIdx, Result: idx}); err != nil {
			return 0, err
		}
		c.deferred = append(c.deferred, deferredDelay{
			delayIndex: delayIdx,
			input:      op.Input(0),
			prefix:     prefix,
			stack:      append([]frame(nil), stack...),
		})
		return idx, nil

	case "in":
		return c.compileIn(outPin, prefix, stack)

	case "sfg":
		return c.compileSubgraph(outPin, prefix, stack)

	default:
		return c.compileCustom(outPin, prefix, stack)
	}
}

func (c *compiler) compileIn(outPin *OutputPin, prefix string, stack []frame) (ResultIndex, error) {
	op := outPin.Op
	if len(stack) == 0 {
		slot, ok := indexOfOperation(c.root.InputOperations(), op)
		if !ok {
			return 0, errors.Wrap(ErrInputOutsideOf, op.GraphID())
		}
		idx, err := c.newResult(keyFor(op, 0, prefix))
		if err != nil {
			return 0, err
		}
		if err := c.emit(Instruction{Op: OpPushInput, Index: slot, Result: idx}); err != nil {
			return 0, err
		}
		c.resultIndex[outPin] = idx
		return idx, nil
	}

	top := stack[len(stack)-1]
	j, ok := indexOfOperation(top.op.InputOperations(), op)
	if !ok {
		return 0, errors.Wrap(ErrStrayInput, op.GraphID())
	}
	outerIn := top.op.Input(j)
	outerStack := stack[:len(stack)-1]
	if err := c.pushOperand(outerIn, top.parentPrefix, outerStack); err != nil {
		return 0, err
	}
	idx, err := c.newResult(keyFor(op, 0, prefix))
	if err != nil {
		return 0, err
	}
	if err := c.emit(Instruction{Op: OpForwardValue, Result: idx}); err != nil {
		return 0, err
	}
	c.resultIndex[outPin] = idx
	return idx, nil
}

func (c *compiler) compileSubgraph(outPin *OutputPin, prefix string, stack []frame) (ResultIndex, error) {
	op := outPin.Op
	sub, ok := op.(subgraphOperation)
	if !ok {
		return 0, errors.New("sfg operation " + op.GraphID() + " does not implement GraphLike")
	}
	i := outPin.Index
	outs := sub.OutputOperations()
	if i >= len(outs) {
		return 0, errors.New("sfg operation " + op.GraphID() + " has no output " + strconv.Itoa(i))
	}
	ownKey := keyFor(op, i, prefix)
	newStack := append(append([]frame(nil), stack...), frame{op: sub, parentPrefix: prefix})
	if _, err := c.compileSink(outs[i], i, ownKey, newStack); err != nil {
		return 0, err
	}
	idx, err := c.newResult(ownKey)
	if err != nil {
		return 0, err
	}
	if err := c.emit(Instruction{Op: OpForwardValue, Result: idx}); err != nil {
		return 0, err
	}
	c.resultIndex[outPin] = idx
	return idx, nil
}

func (c *compiler) compileCustom(outPin *OutputPin, prefix string, stack []frame) (ResultIndex, error) {
	op := outPin.Op
	ev, ok := op.(evaluatorOperation)
	if !ok {
		return 0, errors.New("operation " + op.GraphID() + ": unrecognised type " + op.TypeName())
	}
	for i := 0; i < op.InputCount(); i++ {
		if err := c.pushOperand(op.Input(i), prefix, stack); err != nil {
			return 0, err
		}
	}
	opIdx, ok := c.customOpIndex[op]
	if !ok {
		opIdx = len(c.customOperations)
		c.customOperations = append(c.customOperations, CustomOperation{
			Name:        op.TypeName(),
			InputCount:  op.InputCount(),
			OutputCount: op.OutputCount(),
			Eval:        ev.Evaluate(),
		})
		c.customOpIndex[op] = opIdx
	}
	srcIdx := len(c.customSources)
	c.customSources = append(c.customSources, CustomSource{CustomOperationIndex: opIdx, OutputIndex: outPin.Index})
	idx, err := c.newResult(keyFor(op, outPin.Index, prefix))
	if err != nil {
		return 0, err
	}
	if err := c.emit(Instruction{Op: OpCustom, Index: srcIdx, Result: idx}); err != nil {
		return 0, err
	}
	c.resultIndex[outPin] = idx
	return idx, nil
}
