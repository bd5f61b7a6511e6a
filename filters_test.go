package rrule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilters_NegativeByMonthDay(t *testing.T) {
	r, err := NewRRule(ROption{
		Freq:       MONTHLY,
		Dtstart:    time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		Count:      3,
		Bymonthday: []int{-1},
	})
	require.NoError(t, err)

	occs, err := r.All(0)
	require.NoError(t, err)
	require.Len(t, occs, 3)
	assert.Equal(t, 31, occs[0].Day())
	assert.Equal(t, time.February, occs[1].Month())
	assert.Equal(t, 29, occs[1].Day())
	assert.Equal(t, 31, occs[2].Day())
}

func TestFilters_NegativeByYearDay(t *testing.T) {
	r, err := NewRRule(ROption{
		Freq:      YEARLY,
		Dtstart:   time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		Count:     2,
		Byyearday: []int{-1},
	})
	require.NoError(t, err)

	occs, err := r.All(0)
	require.NoError(t, err)
	require.Len(t, occs, 2)
	assert.Equal(t, time.December, occs[0].Month())
	assert.Equal(t, 31, occs[0].Day())
	assert.Equal(t, 2024, occs[0].Year())
	assert.Equal(t, 2025, occs[1].Year())
}

func TestFilters_ByMonthRestrictsYearly(t *testing.T) {
	r, err := NewRRule(ROption{
		Freq:      YEARLY,
		Dtstart:   time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		Count:     4,
		Bymonth:   []int{3, 6},
		Byweekday: []Weekday{MO},
	})
	require.NoError(t, err)

	occs, err := r.All(0)
	require.NoError(t, err)
	require.Len(t, occs, 4)
	for _, o := range occs {
		assert.Contains(t, []time.Month{time.March, time.June}, o.Month())
		assert.Equal(t, time.Monday, o.Weekday())
	}
}

func TestFilters_CombinedByMonthDayAndByDay(t *testing.T) {
	// The 13th of any month that is a Friday (classic "Friday the 13th").
	r, err := NewRRule(ROption{
		Freq:       MONTHLY,
		Dtstart:    time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		Count:      1,
		Bymonthday: []int{13},
		Byweekday:  []Weekday{FR},
	})
	require.NoError(t, err)

	occs, err := r.All(0)
	require.NoError(t, err)
	require.Len(t, occs, 1)
	assert.Equal(t, 13, occs[0].Day())
	assert.Equal(t, time.Friday, occs[0].Weekday())
	assert.Equal(t, time.September, occs[0].Month())
	assert.Equal(t, 2024, occs[0].Year())
}
