package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func allocDates(n int) []time.Time {
	start := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	dates := make([]time.Time, n)
	for i := range dates {
		dates[i] = start.AddDate(0, 0, i)
	}
	return dates
}

func uniformMasks(dates []time.Time, mask ShiftMask) map[time.Time]ShiftMask {
	masks := make(map[time.Time]ShiftMask, len(dates))
	for _, d := range dates {
		masks[d] = mask
	}
	return masks
}

func TestAllocateSlots_ZeroTarget(t *testing.T) {
	dates := allocDates(5)

	plan := AllocateSlots(dates, uniformMasks(dates, MaskAll), 0, -1)

	assert.Empty(t, plan.Shifts)
	assert.Equal(t, 0, plan.AssignedHours)
	assert.Equal(t, 0, plan.ShortfallHours)
}

func TestAllocateSlots_PrefersSplits(t *testing.T) {
	dates := allocDates(5)

	plan := AllocateSlots(dates, uniformMasks(dates, MaskAll), 40, -1)

	assert.Equal(t, 40, plan.AssignedHours)
	assert.Equal(t, 0, plan.ShortfallHours)
	for _, d := range dates {
		assert.Equal(t, ShiftSplit, plan.Shifts[d])
	}
}

func TestAllocateSlots_LastSlotFallsBackToMorning(t *testing.T) {
	// 20h = 5 slots: two splits then a single, which prefers morning.
	dates := allocDates(5)

	plan := AllocateSlots(dates, uniformMasks(dates, MaskAll), 20, -1)

	assert.Equal(t, 20, plan.AssignedHours)
	assert.Equal(t, ShiftSplit, plan.Shifts[dates[0]])
	assert.Equal(t, ShiftSplit, plan.Shifts[dates[1]])
	assert.Equal(t, ShiftMorning, plan.Shifts[dates[2]])
	assert.NotContains(t, plan.Shifts, dates[3])
	assert.NotContains(t, plan.Shifts, dates[4])
}

func TestAllocateSlots_MorningOnlyMask(t *testing.T) {
	dates := allocDates(5)

	plan := AllocateSlots(dates, uniformMasks(dates, MaskMorning), 40, -1)

	assert.Equal(t, 20, plan.AssignedHours, "five mornings is all the mask allows")
	assert.Equal(t, 20, plan.ShortfallHours)
	for _, d := range dates {
		assert.Equal(t, ShiftMorning, plan.Shifts[d])
	}
}

func TestAllocateSlots_AfternoonOnlyMask(t *testing.T) {
	dates := allocDates(3)

	plan := AllocateSlots(dates, uniformMasks(dates, MaskAfternoon), 8, -1)

	assert.Equal(t, 8, plan.AssignedHours)
	assert.Equal(t, 2, plan.AfternoonsUsed)
}

func TestAllocateSlots_AfternoonBudgetBlocksSplits(t *testing.T) {
	dates := allocDates(5)

	plan := AllocateSlots(dates, uniformMasks(dates, MaskAll), 16, 1)

	// One split consumes the whole budget; the rest fills with mornings.
	assert.Equal(t, 16, plan.AssignedHours)
	assert.Equal(t, 1, plan.AfternoonsUsed)
	assert.Equal(t, ShiftSplit, plan.Shifts[dates[0]])
	assert.Equal(t, ShiftMorning, plan.Shifts[dates[1]])
	assert.Equal(t, ShiftMorning, plan.Shifts[dates[2]])
}

func TestAllocateSlots_ExhaustedBudgetAccruesShortfall(t *testing.T) {
	// Split-only days with no afternoon budget left: nothing assignable.
	dates := allocDates(4)

	plan := AllocateSlots(dates, uniformMasks(dates, MaskSplit), 16, 0)

	assert.Empty(t, plan.Shifts)
	assert.Equal(t, 16, plan.ShortfallHours)
}

func TestAllocateSlots_NoCandidates(t *testing.T) {
	plan := AllocateSlots(nil, map[time.Time]ShiftMask{}, 24, -1)

	assert.Empty(t, plan.Shifts)
	assert.Equal(t, 24, plan.ShortfallHours)
}

func TestAllocateSlots_SplitOnlyMaskSkipsOddRemainder(t *testing.T) {
	// 12h = 3 slots on split-only days: one split fits, the odd slot
	// cannot, so 4h of shortfall remain.
	dates := allocDates(4)

	plan := AllocateSlots(dates, uniformMasks(dates, MaskSplit), 12, -1)

	assert.Equal(t, 8, plan.AssignedHours)
	assert.Equal(t, 4, plan.ShortfallHours)
	assert.Len(t, plan.Shifts, 1)
}

func TestAllocateSlots_StopsAtTarget(t *testing.T) {
	dates := allocDates(6)

	plan := AllocateSlots(dates, uniformMasks(dates, MaskAll), 8, -1)

	assert.Equal(t, 8, plan.AssignedHours)
	assert.Len(t, plan.Shifts, 1)
	assert.Equal(t, ShiftSplit, plan.Shifts[dates[0]])
}
