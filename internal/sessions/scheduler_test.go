package sessions

import (
	"fmt"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var brt = time.FixedZone("BRT", -3*60*60)

func testNow() time.Time {
	return time.Date(2026, time.March, 10, 15, 30, 0, 0, brt)
}

func testSlots() []SlotConfig {
	return []SlotConfig{
		{Hour: 14, Minute: 0, Language: "dubbed", Price: 20},
		{Hour: 20, Minute: 30, Language: "subtitled", Price: 30},
	}
}

func hallIDs(n int) []uuid.UUID {
	ids := make([]uuid.UUID, n)
	for i := range ids {
		ids[i] = uuid.New()
	}
	return ids
}

func opts(window, slots int) PlanOptions {
	return PlanOptions{WindowDays: window, SlotsPerDay: slots, Location: brt}
}

func TestPlan_SingleDayTwoHalls(t *testing.T) {
	movie := uuid.New()
	halls := hallIDs(2)

	planned, err := Plan(movie, halls, nil, testSlots(), opts(1, 2), testNow())
	require.NoError(t, err)
	require.Len(t, planned, 2)

	assert.Equal(t, halls[0], planned[0].HallID)
	assert.Equal(t, time.Date(2026, time.March, 10, 14, 0, 0, 0, brt), planned[0].StartsAt)
	assert.Equal(t, "dubbed", planned[0].Language)
	assert.Equal(t, 20.0, planned[0].Price)

	assert.Equal(t, halls[1], planned[1].HallID)
	assert.Equal(t, time.Date(2026, time.March, 10, 20, 30, 0, 0, brt), planned[1].StartsAt)
	assert.Equal(t, "subtitled", planned[1].Language)

	for _, s := range planned {
		assert.Equal(t, movie, s.MovieID)
	}
}

func TestPlan_SkipsCoveredDay(t *testing.T) {
	movie := uuid.New()
	existing := []Session{{
		MovieID:  movie,
		HallID:   uuid.New(),
		StartsAt: time.Date(2026, time.March, 13, 23, 15, 0, 0, brt),
	}}

	planned, err := Plan(movie, hallIDs(3), existing, testSlots(), opts(7, 2), testNow())
	require.NoError(t, err)
	require.Len(t, planned, 12)

	perDay := map[int]int{}
	for _, s := range planned {
		perDay[s.StartsAt.Day()]++
	}
	assert.Equal(t, map[int]int{10: 2, 11: 2, 12: 2, 14: 2, 15: 2, 16: 2}, perDay)
}

func TestPlan_CoverageUsesLocalCalendarDay(t *testing.T) {
	movie := uuid.New()
	// 01:00 UTC on the 11th is still the 10th in BRT
	existing := []Session{{StartsAt: time.Date(2026, time.March, 11, 1, 0, 0, 0, time.UTC)}}

	planned, err := Plan(movie, hallIDs(1), existing, testSlots(), opts(2, 1), testNow())
	require.NoError(t, err)
	require.Len(t, planned, 1)
	assert.Equal(t, 11, planned[0].StartsAt.Day())
}

func TestPlan_Idempotent(t *testing.T) {
	movie := uuid.New()
	halls := hallIDs(2)

	first, err := Plan(movie, halls, nil, testSlots(), opts(7, 2), testNow())
	require.NoError(t, err)
	require.Len(t, first, 14)

	second, err := Plan(movie, halls, first, testSlots(), opts(7, 2), testNow())
	require.NoError(t, err)
	assert.Empty(t, second)
}

func TestPlan_Deterministic(t *testing.T) {
	movie := uuid.New()
	halls := hallIDs(3)

	a, err := Plan(movie, halls, nil, testSlots(), opts(5, 3), testNow())
	require.NoError(t, err)
	b, err := Plan(movie, halls, nil, testSlots(), opts(5, 3), testNow())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestPlan_SlotRotationFollowsDayOffset(t *testing.T) {
	planned, err := Plan(uuid.New(), hallIDs(1), nil, testSlots(), opts(2, 1), testNow())
	require.NoError(t, err)
	require.Len(t, planned, 2)

	assert.Equal(t, 14, planned[0].StartsAt.Hour())
	assert.Equal(t, 20, planned[1].StartsAt.Hour())
	assert.Equal(t, 30, planned[1].StartsAt.Minute())
}

func TestPlan_HallFairness(t *testing.T) {
	for h := 1; h <= 5; h++ {
		for w := 1; w <= 10; w++ {
			for s := 1; s <= 4; s++ {
				t.Run(fmt.Sprintf("halls=%d/window=%d/slots=%d", h, w, s), func(t *testing.T) {
					halls := hallIDs(h)
					planned, err := Plan(uuid.New(), halls, nil, testSlots(), opts(w, s), testNow())
					require.NoError(t, err)

					n := w * s
					require.Len(t, planned, n)

					counts := map[uuid.UUID]int{}
					for _, p := range planned {
						counts[p.HallID]++
					}
					for _, id := range halls {
						assert.GreaterOrEqual(t, counts[id], n/h)
						assert.LessOrEqual(t, counts[id], (n+h-1)/h)
					}
				})
			}
		}
	}
}

func TestPlan_FairnessWithCoveredDays(t *testing.T) {
	movie := uuid.New()
	halls := hallIDs(3)
	existing := []Session{
		{StartsAt: time.Date(2026, time.March, 11, 14, 0, 0, 0, brt)},
		{StartsAt: time.Date(2026, time.March, 14, 14, 0, 0, 0, brt)},
	}

	planned, err := Plan(movie, halls, existing, testSlots(), opts(7, 2), testNow())
	require.NoError(t, err)
	require.Len(t, planned, 10)

	counts := map[uuid.UUID]int{}
	for _, p := range planned {
		counts[p.HallID]++
	}
	for _, id := range halls {
		assert.InDelta(t, 10.0/3, counts[id], 1)
	}
}

func TestPlan_Errors(t *testing.T) {
	_, err := Plan(uuid.New(), nil, nil, testSlots(), opts(7, 2), testNow())
	assert.ErrorIs(t, err, ErrNoHallsAvailable)

	_, err = Plan(uuid.New(), hallIDs(1), nil, nil, opts(7, 2), testNow())
	assert.ErrorIs(t, err, ErrNoSlotConfigs)

	_, err = Plan(uuid.New(), hallIDs(1), nil, testSlots(), opts(0, 2), testNow())
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestParseSlots(t *testing.T) {
	slots, err := ParseSlots([]string{"13:45|dubbed|18.5", " 21:00 | original | 40 ", ""})
	require.NoError(t, err)
	assert.Equal(t, []SlotConfig{
		{Hour: 13, Minute: 45, Language: "dubbed", Price: 18.5},
		{Hour: 21, Minute: 0, Language: "original", Price: 40},
	}, slots)

	for _, bad := range []string{"25:00|dubbed|10", "10:00|dubbed", "10:00||10", "10:00|dubbed|-1", "10:00|dubbed|abc"} {
		_, err := ParseSlots([]string{bad})
		assert.Error(t, err, bad)
	}
}

// Sao Paulo skipped midnight on 2018-11-04 when daylight saving started.
func TestPlan_MidnightSkippedByDST(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	movie := uuid.New()
	halls := hallIDs(2)
	now := time.Date(2018, time.November, 2, 12, 0, 0, 0, loc)
	o := PlanOptions{WindowDays: 7, SlotsPerDay: 2, Location: loc}

	first, err := Plan(movie, halls, nil, testSlots(), o, now)
	require.NoError(t, err)
	require.Len(t, first, 14)

	perDay := map[int]int{}
	for _, s := range first {
		local := s.StartsAt.In(loc)
		assert.Contains(t, []int{14, 20}, local.Hour(), "showtime kept its wall clock")
		perDay[local.Day()]++
	}
	assert.Equal(t, map[int]int{2: 2, 3: 2, 4: 2, 5: 2, 6: 2, 7: 2, 8: 2}, perDay)

	second, err := Plan(movie, halls, first, testSlots(), o, now)
	require.NoError(t, err)
	assert.Empty(t, second)
}
