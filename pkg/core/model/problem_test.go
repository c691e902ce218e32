package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntRange_FromGreaterThanTo(t *testing.T) {
	_, err := NewIntRange(5, 2)
	assert.Error(t, err)
}

func TestIntRange_Valid(t *testing.T) {
	r, err := NewIntRange(2, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, r.From)
	assert.Equal(t, 5, r.To)
	assert.Equal(t, 4, r.Len())
	assert.True(t, r.Contains(2))
	assert.True(t, r.Contains(5))
	assert.False(t, r.Contains(6))
	assert.Equal(t, "2-5", r.String())
	assert.Equal(t, "3", Single(3).String())
}

func TestNewProblem_RejectsSmallCounts(t *testing.T) {
	_, err := NewProblem(0, 2, 2)
	assert.ErrorIs(t, err, ErrTooFewDays)

	_, err = NewProblem(1, 1, 2)
	assert.ErrorIs(t, err, ErrTooFewSlots)

	_, err = NewProblem(1, 2, 1)
	assert.ErrorIs(t, err, ErrTooFewItems)
}

func TestNewProblem_Defaults(t *testing.T) {
	p, err := NewProblem(7, 3, 4)
	require.NoError(t, err)

	assert.Equal(t, float32(1), p.DefaultAptitude)
	assert.Equal(t, []int{1, 1, 1}, p.SlotLengths)
	assert.Equal(t, []float32{1, 1, 1}, p.SlotWeights)
	assert.Nil(t, p.ItemWeights)
	assert.Nil(t, p.SlotValues)
	assert.Nil(t, p.ItemStartupEfforts)
	assert.Nil(t, p.CompatibleSlots)
	assert.Nil(t, p.ConsecutiveSlotAptitudes)
	assert.Nil(t, p.CrossItemAptitudes)
	assert.NoError(t, p.Validate())
}

func TestProblem_SetItemWeight_InitialisesDefaults(t *testing.T) {
	p, err := NewProblem(5, 2, 4)
	require.NoError(t, err)

	require.NoError(t, p.SetItemWeight(3, IntRange{From: 1, To: 2}))
	assert.Equal(t, []float32{1, 3, 3, 1}, p.ItemWeights)
}

func TestProblem_SetItemStartupEffort_InitialisesDefaults(t *testing.T) {
	p, err := NewProblem(5, 2, 3)
	require.NoError(t, err)

	require.NoError(t, p.SetItemStartupEffort(0, 2))
	assert.Equal(t, []float32{1, 1, 0}, p.ItemStartupEfforts)
}

func TestProblem_SetCompatibleSlots_Symmetric(t *testing.T) {
	p, err := NewProblem(5, 3, 3)
	require.NoError(t, err)

	require.NoError(t, p.SetCompatibleSlots(0, 2))
	assert.True(t, p.CompatibleSlots[0][2])
	assert.True(t, p.CompatibleSlots[2][0])
	assert.False(t, p.CompatibleSlots[0][1])
}

func TestProblem_SetCompatibleSlots_SameSlot(t *testing.T) {
	p, err := NewProblem(5, 3, 3)
	require.NoError(t, err)

	assert.Error(t, p.SetCompatibleSlots(1, 1))
}

func TestProblem_SetConsecutiveSlotAptitude(t *testing.T) {
	p, err := NewProblem(5, 4, 3)
	require.NoError(t, err)

	require.NoError(t, p.SetConsecutiveSlotAptitude(0, IntRange{From: 0, To: 1}, IntRange{From: 2, To: 3}))
	assert.Equal(t, float32(0), p.ConsecutiveSlotAptitudes[0][2])
	assert.Equal(t, float32(0), p.ConsecutiveSlotAptitudes[1][3])
	assert.Equal(t, float32(1), p.ConsecutiveSlotAptitudes[2][0])
	assert.Equal(t, float32(1), p.ConsecutiveSlotAptitudes[0][0])
}

func TestProblem_SetCrossItemAptitude(t *testing.T) {
	p, err := NewProblem(5, 2, 3)
	require.NoError(t, err)

	require.NoError(t, p.SetCrossItemAptitude(2, 0, 1, 0, 2))
	assert.Equal(t, float32(2), p.CrossItemAptitudes[0][1][0][2])
	assert.Equal(t, float32(1), p.CrossItemAptitudes[1][0][2][0])
	assert.NoError(t, p.Validate())
}

func TestProblem_RangesOutOfBounds(t *testing.T) {
	p, err := NewProblem(5, 3, 3)
	require.NoError(t, err)

	assert.Error(t, p.CloseSlots(IntRange{From: 0, To: 5}, Single(0)))
	assert.Error(t, p.MakeUnavailable(Single(3), Single(0), Single(0)))
	assert.Error(t, p.AssignAptitude(2, Single(0), Single(0), IntRange{From: -1, To: 0}))
	assert.Error(t, p.SetSlotLength(0, Single(0)))
	assert.Empty(t, p.SlotClosures)
	assert.Empty(t, p.ItemUnavailabilities)
	assert.Empty(t, p.ItemAptitudes)
}

func TestProblem_Validate_RejectsBadShapes(t *testing.T) {
	p, err := NewProblem(5, 3, 3)
	require.NoError(t, err)

	p.SlotWeights = []float32{1}
	assert.Error(t, p.Validate())
}

func TestProblem_Validate_RejectsHandBuiltBadRange(t *testing.T) {
	p, err := NewProblem(5, 3, 3)
	require.NoError(t, err)

	p.SlotClosures = append(p.SlotClosures, SlotClosure{Days: IntRange{From: 4, To: 2}, Slots: Single(0)})
	err = p.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "slot closure 0")
}

func TestProblem_Validate_NegativeAptitude(t *testing.T) {
	p, err := NewProblem(5, 3, 3)
	require.NoError(t, err)

	p.ItemAptitudes = append(p.ItemAptitudes, ItemAptitude{Aptitude: -1})
	err = p.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestProblem_DayDate(t *testing.T) {
	p, err := NewProblem(5, 3, 3)
	require.NoError(t, err)

	assert.Equal(t, p.FirstDay.AddDate(0, 0, 3), p.DayDate(3))
}
