package rrulext

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hawthorne-dev/rrule"
)

func newDailySet(t *testing.T, dtstart time.Time, count int) *rrule.Set {
	t.Helper()
	r, err := rrule.NewRRule(rrule.ROption{Freq: rrule.DAILY, Dtstart: dtstart, Count: count})
	require.NoError(t, err)
	set := &rrule.Set{}
	set.RRule(r)
	return set
}

func TestPolicy_InactivePassesThrough(t *testing.T) {
	dtstart := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC) // a Monday
	set := newDailySet(t, dtstart, 10)

	p, err := NewPolicy(Options{Set: set})
	require.NoError(t, err)
	assert.False(t, p.Active())

	all := set.All()
	after := p.After(all[0], false)
	assert.Equal(t, all[1], after)
}

func TestPolicy_ShiftOffWeekend(t *testing.T) {
	dtstart := time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC) // a Friday
	set := newDailySet(t, dtstart, 5)                      // Fri..Tue

	p, err := NewPolicy(Options{Set: set, ShiftOffWeekend: true})
	require.NoError(t, err)
	assert.True(t, p.Active())

	after := p.After(dtstart, false)
	// Saturday (Jan 6) shifts forward 2 days to Monday (Jan 8).
	assert.Equal(t, time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC), after)
}

func TestPolicy_ValidOnlyOnWeekends(t *testing.T) {
	dtstart := time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC) // a Friday
	set := newDailySet(t, dtstart, 10)

	p, err := NewPolicy(Options{Set: set, ValidOnlyOnWeekends: true})
	require.NoError(t, err)

	after := p.After(dtstart, false)
	assert.True(t, after.Weekday() == time.Saturday || after.Weekday() == time.Sunday)
}

func TestPolicy_ShiftOffHolidaysWithUSCalendar(t *testing.T) {
	// New Year's Day 2024 (Jan 1, a Monday) is a US holiday.
	dtstart := time.Date(2023, 12, 30, 9, 0, 0, 0, time.UTC)
	set := newDailySet(t, dtstart, 10)

	p, err := NewPolicy(Options{Set: set, ShiftOffHolidays: true, ISOCode: "us"})
	require.NoError(t, err)

	after := p.After(time.Date(2023, 12, 31, 9, 0, 0, 0, time.UTC), false)
	assert.False(t, after.Month() == time.January && after.Day() == 1)
}

func TestPolicy_CustomFilter(t *testing.T) {
	dtstart := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	set := newDailySet(t, dtstart, 10)

	p, err := NewPolicy(Options{
		Set: set,
		CustomFilter: func(tm time.Time) bool {
			return tm.Day()%2 == 0
		},
	})
	require.NoError(t, err)

	after := p.After(dtstart, false)
	assert.Equal(t, 0, after.Day()%2)
}

func TestPolicy_BetweenAppliesShift(t *testing.T) {
	dtstart := time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC) // Friday
	set := newDailySet(t, dtstart, 5)                      // Fri..Tue

	p, err := NewPolicy(Options{Set: set, ShiftOffWeekend: true})
	require.NoError(t, err)

	window := p.Between(dtstart.Add(-time.Hour), dtstart.AddDate(0, 0, 10), true)
	for _, o := range window {
		assert.False(t, o.Weekday() == time.Saturday || o.Weekday() == time.Sunday)
	}
}
