// Package sfgtest provides small helpers for driving a compiled program
// through a fixed number of iterations and asserting on its outputs, so
// individual tests don't each hand-roll a Simulation loop.
package sfgtest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/asicgo/sfgsim"
)

// RunAndCollect compiles and simulates nothing itself — it drives an
// already-built *sfgsim.Simulation for n iterations and returns every
// named node's value history, keyed exactly as sfgsim.Program.ResultKeys
// names it.
func RunAndCollect(t *testing.T, sim *sfgsim.Simulation, n int) map[string][]sfgsim.Number {
	t.Helper()
	require.NoError(t, sim.RunFor(n))
	return sim.Results()
}

// AssertOutputs runs sim for len(want) iterations and asserts that the
// sequence of output vectors produced matches want exactly, iteration by
// iteration.
func AssertOutputs(t *testing.T, sim *sfgsim.Simulation, want [][]sfgsim.Number) {
	t.Helper()
	for i, w := range want {
		got, err := sim.Step()
		require.NoError(t, err, "iteration %d", i)
		require.Equal(t, w, got, "iteration %d", i)
	}
}

// AssertResultKey asserts that the recorded history for key (after
// having already run the simulation) equals want exactly.
func AssertResultKey(t *testing.T, history map[string][]sfgsim.Number, key string, want []sfgsim.Number) {
	t.Helper()
	got, ok := history[key]
	require.True(t, ok, "no recorded result for key %q", key)
	require.Equal(t, want, got, "result key %q", key)
}
