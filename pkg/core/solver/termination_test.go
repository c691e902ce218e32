package solver

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewTerminationManager_AllZero(t *testing.T) {
	_, err := NewTerminationManager(0, 0, 0, nil)
	assert.ErrorIs(t, err, ErrNoTerminationCriteria)
}

func TestNewTerminationManager_Negative(t *testing.T) {
	_, err := NewTerminationManager(-1, 10, 0, nil)
	assert.Error(t, err)

	_, err = NewTerminationManager(10, -1, 0, nil)
	assert.Error(t, err)

	_, err = NewTerminationManager(10, 0, -1, nil)
	assert.Error(t, err)
}

func TestTerminationManager_MaxElapsedTime(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	for n := 0; n < 1000; n++ {
		maxTime := int64(rng.IntN(1000) + 1)
		tm, err := NewTerminationManager(maxTime, 0, 0, nil)
		require.NoError(t, err)

		assert.True(t, tm.Terminated(maxTime, 100, 100))
		assert.True(t, tm.Terminated(maxTime+1+int64(rng.IntN(1000)), 100, 100))
		assert.False(t, tm.Terminated(maxTime-1, 100, 100))
	}
}

func TestTerminationManager_MaxEpochs(t *testing.T) {
	rng := rand.New(rand.NewPCG(2, 2))
	for n := 0; n < 1000; n++ {
		maxEpochs := rng.IntN(1000) + 1
		tm, err := NewTerminationManager(0, maxEpochs, 0, nil)
		require.NoError(t, err)

		assert.True(t, tm.Terminated(100, maxEpochs+rng.IntN(1000), 100))
		assert.False(t, tm.Terminated(100, maxEpochs-1, 100))
	}
}

func TestTerminationManager_MaxEpochsWithoutImprovement(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 3))
	for n := 0; n < 1000; n++ {
		maxStagnation := rng.IntN(1000) + 1
		tm, err := NewTerminationManager(0, 0, maxStagnation, nil)
		require.NoError(t, err)

		assert.True(t, tm.Terminated(100, 100, maxStagnation+rng.IntN(1000)))
		assert.False(t, tm.Terminated(100, 100, maxStagnation-1))
	}
}

func TestTerminationManager_AnyCriterion(t *testing.T) {
	tm, err := NewTerminationManager(1000, 50, 10, nil)
	require.NoError(t, err)

	assert.False(t, tm.Terminated(999, 49, 9))
	assert.True(t, tm.Terminated(1000, 0, 0))
	assert.True(t, tm.Terminated(0, 50, 0))
	assert.True(t, tm.Terminated(0, 0, 10))
}

func TestTerminationManager_LogsCriterion(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	tm, err := NewTerminationManager(0, 5, 0, zap.New(core))
	require.NoError(t, err)

	require.True(t, tm.Terminated(0, 5, 0))

	entries := logs.FilterMessage("Computation terminated: max epochs reached").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(5), entries[0].ContextMap()["max_epochs"])
}
