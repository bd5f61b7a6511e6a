package rrule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet_RDateUnionRRuleMinusExDate(t *testing.T) {
	dtstart := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	r, err := NewRRule(ROption{Freq: DAILY, Dtstart: dtstart, Count: 5})
	require.NoError(t, err)

	set := &Set{}
	set.RRule(r)
	set.RDate(time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC))
	set.ExDate(time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC))

	occs := set.All()
	require.Len(t, occs, 5)
	for _, o := range occs {
		assert.False(t, o.Equal(time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC)))
	}
	assert.True(t, occs[len(occs)-1].Equal(time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)))
}

func TestSet_ExRuleExcludesMatchingInstants(t *testing.T) {
	dtstart := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
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

func TestSet_MergeIsSortedAndDeduplicated(t *testing.T) {
	dtstart := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	r, err := NewRRule(ROption{Freq: DAILY, Dtstart: dtstart, Count: 3})
	require.NoError(t, err)

	set := &Set{}
	set.RRule(r)
	// Duplicate of an occurrence r already produces.
	set.RDate(time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC))

	occs := set.All()
	require.Len(t, occs, 3)
	for i := 1; i < len(occs); i++ {
		assert.True(t, occs[i].After(occs[i-1]))
	}
}

func TestSet_BetweenAfterBefore(t *testing.T) {
	dtstart := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	r, err := NewRRule(ROption{Freq: DAILY, Dtstart: dtstart, Count: 10})
	require.NoError(t, err)

	set := &Set{}
	set.RRule(r)

	all := set.All()
	require.Len(t, all, 10)

	after := set.After(all[2], false)
	assert.Equal(t, all[3], after)

	before := set.Before(all[2], false)
	assert.Equal(t, all[1], before)

	window := set.Between(all[2], all[5], true)
	assert.Equal(t, all[2:6], window)
}

func TestSet_StringRendersDtstartAndMembers(t *testing.T) {
	dtstart := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	r, err := NewRRule(ROption{Freq: DAILY, Dtstart: dtstart, Count: 3, RFC: true})
	require.NoError(t, err)

	set := &Set{}
	set.DTStart(dtstart)
	set.RRule(r)

	s := set.String()
	assert.Contains(t, s, "DTSTART:")
	assert.Contains(t, s, "RRULE:FREQ=DAILY;COUNT=3")
}
