package sfgsim

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Config controls how a Simulation executes a Program. The zero Config
// runs at full precision with no logging, which matches most tests.
type Config struct {
	// QuantizeEnabled turns on the compiled per-instruction quantize
	// opcodes (quantizePerInstruction). Ignored if BitsOverride is set.
	QuantizeEnabled bool

	// BitsOverride, if non-nil, switches to quantizeBitsOverride mode:
	// every instruction's result is truncated to this many bits,
	// regardless of the compiled quantize opcodes. Must be in 1..64.
	BitsOverride *int

	// Logger, if non-nil, receives Debug-level tracing of step
	// boundaries and delay-state resets.
	Logger *logrus.Logger
}

func (c Config) mode() (quantizeMode, uint64, error) {
	if c.BitsOverride != nil {
		b := *c.BitsOverride
		if b < 1 || b > 64 {
			return 0, 0, ErrBitsOverrideWide
		}
		return quantizeBitsOverride, maskForBits(b), nil
	}
	if c.QuantizeEnabled {
		return quantizePerInstruction, 0, nil
	}
	return quantizeDisabled, 0, nil
}

// Simulation drives repeated execution of an immutable *Program,
// holding the mutable state (delay values, accumulated results, the
// iteration counter) that execution needs between steps. A *Program may
// back any number of independent Simulations; a *Simulation itself is
// not safe for concurrent use.
type Simulation struct {
	program   *Program
	providers []InputProvider
	cfg       Config

	delayValues []Number
	iteration   int

	history map[string][]Number
}

// NewSimulation builds a Simulation against program, with one provider
// per declared input (in input-slot order).
func NewSimulation(program *Program, providers []InputProvider, cfg Config) (*Simulation, error) {
	if len(providers) != program.InputCount {
		return nil, errors.Wrapf(ErrProviderCountMismatch, "got %d, want %d", len(providers), program.InputCount)
	}
	if _, _, err := cfg.mode(); err != nil {
		return nil, err
	}
	s := &Simulation{
		program:     program,
		providers:   providers,
		cfg:         cfg,
		delayValues: initialDelayValues(program),
		history:     make(map[string][]Number, len(program.ResultKeys)),
	}
	return s, nil
}

func initialDelayValues(p *Program) []Number {
	v := make([]Number, len(p.Delays))
	for i, d := range p.Delays {
		v[i] = d.Initial
	}
	return v
}

// Step executes one iteration and returns its output vector
// (len == program.OutputCount).
func (s *Simulation) Step() ([]Number, error) {
	inputs := make([]Number, len(s.providers))
	for i, p := range s.providers {
		v, err := p.valueAt(s.iteration)
		if err != nil {
			return nil, errors.Wrapf(err, "input %d at iteration %d", i, s.iteration)
		}
		inputs[i] = v
	}

	mode, mask, err := s.cfg.mode()
	if err != nil {
		return nil, err
	}
	results, outputs, err := executeStep(s.program, s.delayValues, inputs, mode, mask)
	if err != nil {
		return nil, errors.Wrapf(err, "iteration %d", s.iteration)
	}

	for i, key := range s.program.ResultKeys {
		s.history[key] = append(s.history[key], results[i])
	}

	if s.iteration == int(^uint(0)>>1) {
		return nil, ErrIterationOverflow
	}
	s.iteration++

	if s.cfg.Logger != nil {
		s.cfg.Logger.WithFields(logrus.Fields{"iteration": s.iteration}).Debug("step complete")
	}

	return outputs, nil
}

// RunFor executes n further iterations.
func (s *Simulation) RunFor(n int) error {
	for i := 0; i < n; i++ {
		if _, err := s.Step(); err != nil {
			return err
		}
	}
	return nil
}

// RunUntil executes iterations until Iteration() reaches target. It is
// a no-op if the simulation has already reached or passed target.
func (s *Simulation) RunUntil(target int) error {
	for s.iteration < target {
		if _, err := s.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Run executes iterations until Iteration() reaches the common length of
// the sequence input providers. It fails with ErrSequenceLengthMismatch
// if two sequence providers disagree on length, and with
// ErrNoFiniteLength if no provider declares a finite length.
func (s *Simulation) Run() error {
	length, ok, err := finiteLength(s.providers)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNoFiniteLength
	}
	return s.RunUntil(length)
}

// Iteration returns the number of completed iterations.
func (s *Simulation) Iteration() int { return s.iteration }

// Results returns, for every named node, the sequence of values it took
// on across all iterations executed so far. The returned map is a copy;
// mutating it does not affect the simulation.
func (s *Simulation) Results() map[string][]Number {
	out := make(map[string][]Number, len(s.history))
	for k, v := range s.history {
		out[k] = append([]Number(nil), v...)
	}
	return out
}

// ClearResults discards the accumulated per-iteration history without
// touching delay state or the iteration counter.
func (s *Simulation) ClearResults() {
	s.history = make(map[string][]Number, len(s.program.ResultKeys))
}

// ClearState zeroes every delay's current value. It does not reset the
// iteration counter or touch accumulated results.
//
// This zeroes delay state rather than restoring each delay's declared
// Initial value. That asymmetry is carried over deliberately: see
// DESIGN.md for the rationale.
func (s *Simulation) ClearState() {
	for i := range s.delayValues {
		s.delayValues[i] = 0
	}
	if s.cfg.Logger != nil {
		s.cfg.Logger.Debug("delay state cleared")
	}
}
