package scheduler

import "time"

// SlotPlan is the outcome of one employee's greedy allocation pass.
type SlotPlan struct {
	// Shifts maps assigned dates to their shift type. Dates not present
	// stay off.
	Shifts map[time.Time]ShiftType

	AssignedHours  int
	ShortfallHours int

	// AfternoonsUsed counts afternoons consumed, splits included.
	AfternoonsUsed int
}

// AllocateSlots walks the ranked dates and greedily converts the hour
// target into shifts. Per date it tries a split first (two slots), then a
// morning, then an afternoon, skipping whatever the mask or the afternoon
// budget forbids. maxAfternoons < 0 means no budget.
//
// A target of zero yields no assignments; exhausting the candidates before
// the target accrues a shortfall, reported as data.
func AllocateSlots(ranked []time.Time, masks map[time.Time]ShiftMask, targetHours, maxAfternoons int) SlotPlan {
	plan := SlotPlan{Shifts: make(map[time.Time]ShiftType)}

	slotsNeeded := targetHours / SlotHours
	slotsUsed := 0

	for _, date := range ranked {
		if slotsUsed == slotsNeeded {
			break
		}

		mask := masks[date]
		afternoonOK := maxAfternoons < 0 || plan.AfternoonsUsed < maxAfternoons

		switch {
		case mask.Allows(MaskSplit) && slotsUsed+2 <= slotsNeeded && afternoonOK:
			plan.Shifts[date] = ShiftSplit
			slotsUsed += 2
			plan.AfternoonsUsed++
		case mask.Allows(MaskMorning) && slotsUsed+1 <= slotsNeeded:
			plan.Shifts[date] = ShiftMorning
			slotsUsed++
		case mask.Allows(MaskAfternoon) && slotsUsed+1 <= slotsNeeded && afternoonOK:
			plan.Shifts[date] = ShiftAfternoon
			slotsUsed++
			plan.AfternoonsUsed++
		}
	}

	plan.AssignedHours = slotsUsed * SlotHours
	plan.ShortfallHours = targetHours - plan.AssignedHours

	return plan
}
