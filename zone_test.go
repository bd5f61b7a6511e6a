package rrule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultZoneResolver_Resolve(t *testing.T) {
	loc, err := DefaultZoneResolver.Resolve("America/New_York")
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", loc.String())
}

func TestDefaultZoneResolver_ResolveUnknownZone(t *testing.T) {
	_, err := DefaultZoneResolver.Resolve("Not/AZone")
	assert.Error(t, err)
}

func TestDefaultZoneResolver_ClassifyOrdinaryInstant(t *testing.T) {
	loc, err := DefaultZoneResolver.Resolve("America/New_York")
	require.NoError(t, err)

	wall := time.Date(2024, 6, 1, 12, 0, 0, 0, loc)
	assert.NoError(t, DefaultZoneResolver.Classify(wall, loc))
}

func TestDefaultZoneResolver_ClassifyNonexistentLocalTime(t *testing.T) {
	loc, err := DefaultZoneResolver.Resolve("America/New_York")
	require.NoError(t, err)

	// 2024-03-10 02:30 local does not exist: clocks sprang forward from
	// 2:00 to 3:00 that morning in America/New_York. The reading is built
	// in UTC so it reaches Classify as 02:30; time.Date in loc would already
	// have normalized it to 01:30 EST.
	wall := time.Date(2024, 3, 10, 2, 30, 0, 0, time.UTC)
	err = DefaultZoneResolver.Classify(wall, loc)
	assert.ErrorIs(t, err, ErrNonexistentLocalTime)
}

func TestDefaultZoneResolver_ClassifyAmbiguousLocalTime(t *testing.T) {
	loc, err := DefaultZoneResolver.Resolve("America/New_York")
	require.NoError(t, err)

	// 2024-11-03 01:30 local occurs twice: clocks fell back from 2:00 to
	// 1:00 that morning in America/New_York.
	wall := time.Date(2024, 11, 3, 1, 30, 0, 0, loc)
	err = DefaultZoneResolver.Classify(wall, loc)
	assert.ErrorIs(t, err, ErrAmbiguousLocalTime)
}

func TestValidZoneNames(t *testing.T) {
	names := ValidZoneNames()
	assert.NotEmpty(t, names)
	assert.Contains(t, names, "America/New_York")
}
