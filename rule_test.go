package rrule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRRule_Monotonicity(t *testing.T) {
	r, err := NewRRule(ROption{
		Freq:     WEEKLY,
		Dtstart:  time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		Count:    20,
		Byweekday: []Weekday{TU, WE},
	})
	require.NoError(t, err)

	occs, err := r.All(0)
	require.NoError(t, err)
	require.NotEmpty(t, occs)
	for i := 1; i < len(occs); i++ {
		assert.True(t, occs[i].After(occs[i-1]), "occurrence %d (%v) is not after %d (%v)", i, occs[i], i-1, occs[i-1])
	}
}

func TestRRule_WeeklyTueWedMinusWeeklyWed(t *testing.T) {
	dtstart := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC) // a Monday
	include, err := NewRRule(ROption{Freq: WEEKLY, Dtstart: dtstart, Count: 6, Byweekday: []Weekday{TU, WE}})
	require.NoError(t, err)
	exclude, err := NewRRule(ROption{Freq: WEEKLY, Dtstart: dtstart, Count: 6, Byweekday: []Weekday{WE}})
	require.NoError(t, err)

	set := &Set{}
	set.RRule(include)
	set.ExRule(exclude)

	occs := set.All()
	require.NotEmpty(t, occs)
	for _, o := range occs {
		assert.Equal(t, time.Tuesday, o.Weekday())
	}
}

func TestRRule_LastWeekdayOfMonthBySetPos(t *testing.T) {
	r, err := NewRRule(ROption{
		Freq:      MONTHLY,
		Dtstart:   time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		Count:     3,
		Byweekday: []Weekday{MO, TU, WE, TH, FR},
		Bysetpos:  []int{-1},
	})
	require.NoError(t, err)

	occs, err := r.All(0)
	require.NoError(t, err)
	require.Len(t, occs, 3)
	assert.Equal(t, 31, occs[0].Day())
	assert.Equal(t, time.January, occs[0].Month())
	assert.Equal(t, 29, occs[1].Day())
	assert.Equal(t, time.February, occs[1].Month())
	assert.Equal(t, 29, occs[2].Day())
	assert.Equal(t, time.March, occs[2].Month())
}

func TestRRule_YearlyNthWeekday(t *testing.T) {
	r, err := NewRRule(ROption{
		Freq:      YEARLY,
		Dtstart:   time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		Count:     3,
		Byweekday: []Weekday{MO.Nth(20)},
	})
	require.NoError(t, err)

	occs, err := r.All(0)
	require.NoError(t, err)
	require.Len(t, occs, 3)
	for i, o := range occs {
		assert.Equal(t, time.Monday, o.Weekday())
		assert.Equal(t, 2024+i, o.Year())
	}
}

func TestRRule_DailyUntilHonoured(t *testing.T) {
	until := time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)
	r, err := NewRRule(ROption{
		Freq:    DAILY,
		Dtstart: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		Until:   until,
	})
	require.NoError(t, err)

	occs, err := r.All(0)
	require.NoError(t, err)
	require.NotEmpty(t, occs)
	last := occs[len(occs)-1]
	assert.True(t, !last.After(until))
}

func TestRRule_InfeasibleRuleTripsIterationLimit(t *testing.T) {
	r, err := NewRRule(ROption{
		Freq:       YEARLY,
		Dtstart:    time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		Bymonth:    []int{2},
		Bymonthday: []int{30},
	})
	require.NoError(t, err)

	_, err = r.All(0)
	assert.ErrorIs(t, err, ErrIterationLimitExceeded)
}

func TestRRule_CountHonoured(t *testing.T) {
	r, err := NewRRule(ROption{
		Freq:    DAILY,
		Dtstart: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		Count:   7,
	})
	require.NoError(t, err)

	occs, err := r.All(0)
	require.NoError(t, err)
	assert.Len(t, occs, 7)
}

func TestRRule_BySetPosIdempotentOnRepeatedIteration(t *testing.T) {
	r, err := NewRRule(ROption{
		Freq:      MONTHLY,
		Dtstart:   time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		Count:     2,
		Byweekday: []Weekday{MO, TU, WE, TH, FR},
		Bysetpos:  []int{1, -1},
	})
	require.NoError(t, err)

	first, err := r.All(0)
	require.NoError(t, err)
	second, err := r.All(0)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRRule_BetweenIsConsistentWithAll(t *testing.T) {
	r, err := NewRRule(ROption{
		Freq:    DAILY,
		Dtstart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Count:   30,
	})
	require.NoError(t, err)

	all, err := r.All(0)
	require.NoError(t, err)

	window, err := r.Between(all[5], all[10], true)
	require.NoError(t, err)
	assert.Equal(t, all[5:11], window)
}

func TestRRule_AfterAndBefore(t *testing.T) {
	r, err := NewRRule(ROption{
		Freq:    DAILY,
		Dtstart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Count:   10,
	})
	require.NoError(t, err)

	all, err := r.All(0)
	require.NoError(t, err)

	after, err := r.After(all[3], false)
	require.NoError(t, err)
	assert.Equal(t, all[4], after)

	before, err := r.Before(all[3], false)
	require.NoError(t, err)
	assert.Equal(t, all[2], before)
}

func TestRRule_ImpliedByPartFromDtstart(t *testing.T) {
	dtstart := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	r, err := NewRRule(ROption{Freq: MONTHLY, Dtstart: dtstart, Count: 3})
	require.NoError(t, err)

	occs, err := r.All(0)
	require.NoError(t, err)
	for _, o := range occs {
		assert.Equal(t, 15, o.Day())
	}
}
