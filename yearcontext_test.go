package rrule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYearContext_ByWeekNoWeekOne(t *testing.T) {
	// 2023-01-01 is a Sunday, so under the ISO rule (week 1 is the week
	// holding the year's first Thursday) it belongs to 2022's last week;
	// week 1 of 2023 is 2023-01-02 .. 2023-01-08.
	r, err := NewRRule(ROption{
		Freq:      YEARLY,
		Dtstart:   time.Date(2023, 1, 1, 9, 0, 0, 0, time.UTC),
		Count:     1,
		Byweekno:  []int{1},
		Byweekday: []Weekday{MO},
	})
	require.NoError(t, err)

	occs, err := r.All(0)
	require.NoError(t, err)
	require.Len(t, occs, 1)
	assert.Equal(t, time.Monday, occs[0].Weekday())
	assert.Equal(t, time.Date(2023, 1, 2, 9, 0, 0, 0, time.UTC), occs[0])
}

func TestYearContext_LeapYearFeb29(t *testing.T) {
	r, err := NewRRule(ROption{
		Freq:       YEARLY,
		Dtstart:    time.Date(2020, 2, 29, 9, 0, 0, 0, time.UTC),
		Count:      2,
		Bymonth:    []int{2},
		Bymonthday: []int{29},
	})
	require.NoError(t, err)

	occs, err := r.All(0)
	require.NoError(t, err)
	require.Len(t, occs, 2)
	assert.Equal(t, 2020, occs[0].Year())
	assert.Equal(t, 2024, occs[1].Year())
}

func TestYearContext_ByEaster(t *testing.T) {
	r, err := NewRRule(ROption{
		Freq:     YEARLY,
		Dtstart:  time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		Count:    2,
		Byeaster: []int{0},
	})
	require.NoError(t, err)

	occs, err := r.All(0)
	require.NoError(t, err)
	require.Len(t, occs, 2)
	// Easter Sunday 2024 fell on March 31.
	assert.Equal(t, time.March, occs[0].Month())
	assert.Equal(t, 31, occs[0].Day())
}

func TestYearContext_ByEasterOffset(t *testing.T) {
	r, err := NewRRule(ROption{
		Freq:     YEARLY,
		Dtstart:  time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		Count:    1,
		Byeaster: []int{-2},
	})
	require.NoError(t, err)

	occs, err := r.All(0)
	require.NoError(t, err)
	require.Len(t, occs, 1)
	// Good Friday 2024: two days before Easter Sunday (March 31).
	assert.Equal(t, time.March, occs[0].Month())
	assert.Equal(t, 29, occs[0].Day())
}
