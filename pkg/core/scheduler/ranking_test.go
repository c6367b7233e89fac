package scheduler

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weekdaysOf(week WeekWindow) []time.Time {
	dates := week.Dates()
	return dates[:6] // Monday through Saturday
}

func TestRankDays_DeterministicForSeed(t *testing.T) {
	week := mustWeek(t, time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC))

	first := RankDays(weekdaysOf(week), rand.New(rand.NewSource(42)))
	second := RankDays(weekdaysOf(week), rand.New(rand.NewSource(42)))

	assert.Equal(t, first, second)
}

func TestRankDays_SaturdayAlwaysLast(t *testing.T) {
	week := mustWeek(t, time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC))

	for seed := int64(0); seed < 50; seed++ {
		ranked := RankDays(weekdaysOf(week), rand.New(rand.NewSource(seed)))

		require.Len(t, ranked, 6)
		assert.Equal(t, time.Saturday, ranked[5].Weekday(), "seed %d", seed)
	}
}

func TestRankDays_KeepsAllDates(t *testing.T) {
	week := mustWeek(t, time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC))
	input := weekdaysOf(week)

	ranked := RankDays(input, rand.New(rand.NewSource(7)))

	assert.ElementsMatch(t, input, ranked)
	// The input slice itself stays untouched.
	assert.Equal(t, weekdaysOf(week), input)
}

func TestRankDays_EmptyAndSingle(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	assert.Empty(t, RankDays(nil, rng))

	single := []time.Time{time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, single, RankDays(single, rng))
}
