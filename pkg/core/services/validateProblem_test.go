package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/shiftgen/pkg/core/model"
)

func TestValidateProblem_Stats(t *testing.T) {
	p, err := model.NewProblem(5, 3, 3)
	require.NoError(t, err)
	require.NoError(t, p.CloseSlots(model.IntRange{From: 2, To: 4}, model.IntRange{From: 1, To: 2}))
	require.NoError(t, p.SetMaxConsecutiveWorkingDays(3, 1))

	stats, err := ValidateProblem(p, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, 15, stats.Cells)
	assert.Equal(t, 6, stats.ForcedCells)
	assert.Equal(t, 9, stats.ChromosomeLength)
	assert.Equal(t, []string{"ItemIsBusyForSlotLength", "MaxWorkingDays", "NoUbiquityOverIncompatibleSlots"}, stats.Enforcers)
	assert.Len(t, stats.Dimensions, 5)
}

func TestValidateProblem_Invalid(t *testing.T) {
	p, err := model.NewProblem(5, 3, 3)
	require.NoError(t, err)
	p.SlotLengths = p.SlotLengths[:2]

	_, err = ValidateProblem(p, zap.NewNop())
	assert.Error(t, err)
}

func TestValidateProblem_Nil(t *testing.T) {
	_, err := ValidateProblem(nil, zap.NewNop())
	assert.Error(t, err)
}
