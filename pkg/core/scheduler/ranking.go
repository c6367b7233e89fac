package scheduler

import (
	"math/rand"
	"sort"
	"time"
)

// RankDays orders an employee's available dates for the slot allocator.
//
// A uniform seeded permutation breaks ties fairly across runs and
// employees, then a stable sort pushes Saturdays to the end. Within the
// non-Saturday dates the shuffled order survives, so Saturday is the last
// resort when hours are scarce but never excluded.
func RankDays(dates []time.Time, rng *rand.Rand) []time.Time {
	ranked := make([]time.Time, len(dates))
	copy(ranked, dates)

	rng.Shuffle(len(ranked), func(i, j int) {
		ranked[i], ranked[j] = ranked[j], ranked[i]
	})

	sort.SliceStable(ranked, func(i, j int) bool {
		return saturdayWeight(ranked[i]) < saturdayWeight(ranked[j])
	})

	return ranked
}

func saturdayWeight(date time.Time) int {
	if date.Weekday() == time.Saturday {
		return 1
	}
	return 0
}
