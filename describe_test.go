package rrule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe_SimpleDaily(t *testing.T) {
	r, err := NewRRule(ROption{Freq: DAILY, Dtstart: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)})
	require.NoError(t, err)

	s := Describe(r)
	assert.Contains(t, s, "Every daily")
}

func TestDescribe_IntervalAndCount(t *testing.T) {
	r, err := NewRRule(ROption{
		Freq:     WEEKLY,
		Dtstart:  time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		Interval: 2,
		Count:    10,
	})
	require.NoError(t, err)

	s := Describe(r)
	assert.Contains(t, s, "Every 2 weekly")
	assert.Contains(t, s, "up to 10 times")
}

func TestDescribe_ByDayAndBySetPos(t *testing.T) {
	r, err := NewRRule(ROption{
		Freq:      MONTHLY,
		Dtstart:   time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		Byweekday: []Weekday{MO, TU, WE, TH, FR},
		Bysetpos:  []int{-1},
	})
	require.NoError(t, err)

	s := Describe(r)
	assert.Contains(t, s, "on MO, TU, WE, TH, FR")
	assert.Contains(t, s, "taking the last match")
}

func TestDescribeNext_UpcomingOccurrence(t *testing.T) {
	r, err := NewRRule(ROption{
		Freq:    DAILY,
		Dtstart: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		Count:   5,
	})
	require.NoError(t, err)

	s := DescribeNext(r, time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC))
	assert.NotEqual(t, "never", s)
}

func TestDescribeNext_NoMoreOccurrences(t *testing.T) {
	r, err := NewRRule(ROption{
		Freq:    DAILY,
		Dtstart: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		Count:   5,
	})
	require.NoError(t, err)

	s := DescribeNext(r, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "never", s)
}
