package sessions

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	ErrNoHallsAvailable = errors.New("no halls available")
	ErrNoSlotConfigs    = errors.New("no slot configs")
	ErrInvalidWindow    = errors.New("invalid scheduling window")
)

var validate = validator.New()

// PlanOptions sizes the rolling window.
type PlanOptions struct {
	WindowDays  int            `validate:"gt=0"`
	SlotsPerDay int            `validate:"gt=0"`
	Location    *time.Location `validate:"-"`
}

// DefaultPlanOptions is a one week window with two showtimes per day.
func DefaultPlanOptions() PlanOptions {
	return PlanOptions{WindowDays: 7, SlotsPerDay: 2, Location: time.Local}
}

// Plan returns the sessions needed so that every day in the window starting
// at now's calendar day has at least one showtime for movieID.
//
// A day counts as covered when any existing session starts on it, whatever
// the hall or time. Uncovered days get SlotsPerDay sessions: slot i of day
// offset d uses slots[(d+i)%len(slots)], and the n-th planned session goes
// to halls[n%len(halls)] so hall loads never differ by more than one.
// Hall assignment for a day therefore depends on how many earlier days in
// the window were already covered.
// Days are calendar dates in opts.Location, so a DST jump over midnight
// never moves a showtime onto the neighbouring day.
// The result depends only on its arguments.
func Plan(movieID uuid.UUID, halls []uuid.UUID, existing []Session, slots []SlotConfig, opts PlanOptions, now time.Time) ([]Session, error) {
	if len(halls) == 0 {
		return nil, ErrNoHallsAvailable
	}
	if len(slots) == 0 {
		return nil, ErrNoSlotConfigs
	}
	if err := validate.Struct(opts); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWindow, err)
	}

	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	covered := make(map[civilDate]struct{}, len(existing))
	for _, s := range existing {
		covered[dateOf(s.StartsAt, loc)] = struct{}{}
	}

	today := dateOf(now, loc)

	var planned []Session
	for d := 0; d < opts.WindowDays; d++ {
		day := today.addDays(d, loc)
		if _, ok := covered[day]; ok {
			continue
		}

		for i := 0; i < opts.SlotsPerDay; i++ {
			slot := slots[(d+i)%len(slots)]
			hall := halls[len(planned)%len(halls)]

			planned = append(planned, Session{
				MovieID:  movieID,
				HallID:   hall,
				StartsAt: time.Date(day.year, day.month, day.day, slot.Hour, slot.Minute, 0, 0, loc),
				Price:    slot.Price,
				Language: slot.Language,
			})
		}
	}

	return planned, nil
}

// civilDate is a calendar day with no time or zone attached.
type civilDate struct {
	year  int
	month time.Month
	day   int
}

func dateOf(t time.Time, loc *time.Location) civilDate {
	y, m, d := t.In(loc).Date()
	return civilDate{year: y, month: m, day: d}
}

// addDays steps through noon, which exists on every day in every zone.
func (c civilDate) addDays(n int, loc *time.Location) civilDate {
	y, m, d := time.Date(c.year, c.month, c.day+n, 12, 0, 0, 0, loc).Date()
	return civilDate{year: y, month: m, day: d}
}
