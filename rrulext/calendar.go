// Package rrulext layers business-calendar observance policy on top of a
// *rrule.Set: shifting an occurrence off weekends and holidays, restricting
// occurrences to only weekends or only holidays, and falling back to the
// nearest business day. Ground: alibs-slim's atime/rruleplus package, which
// offers this same policy over teambition/rrule-go; this package reproduces
// it over this module's own Set instead, using github.com/rickar/cal/v2
// directly rather than a vendored holiday table.
package rrulext

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rickar/cal/v2"
	cal_us "github.com/rickar/cal/v2/us"
)

// ICalendar is the holiday lookup a Policy consults. cal.BusinessCalendar
// satisfies it directly.
type ICalendar interface {
	AddHoliday(holiday ...*cal.Holiday)
	IsHoliday(date time.Time) (actual, observed bool, h *cal.Holiday)
}

var (
	calendarRegistry = make(map[string]ICalendar)
	registryMutex    sync.RWMutex
)

// NewCalendar builds a business calendar for iso, a two-letter country code.
// Only "us" is currently populated with a holiday table.
func NewCalendar(iso string) (ICalendar, error) {
	iso = CleanISO(iso)
	if iso == "" {
		return nil, fmt.Errorf("rrulext: empty ISO code")
	}

	bc := cal.NewBusinessCalendar()
	switch iso {
	case "us":
		bc.AddHoliday(cal_us.Holidays...)
	default:
		return nil, fmt.Errorf("rrulext: ISO code not supported: %s", iso)
	}
	return bc, nil
}

// GetCalendar looks up a calendar previously registered with SetCalendar.
func GetCalendar(iso string) (ICalendar, error) {
	iso = CleanISO(iso)

	registryMutex.RLock()
	defer registryMutex.RUnlock()

	c, ok := calendarRegistry[iso]
	if !ok {
		return nil, fmt.Errorf("rrulext: no calendar registered for ISO code: %s", iso)
	}
	return c, nil
}

// SetCalendar registers c under iso for future GetCalendar lookups, so a
// process resolves each ISO code's holiday table only once.
func SetCalendar(iso string, c ICalendar) {
	iso = CleanISO(iso)

	registryMutex.Lock()
	defer registryMutex.Unlock()
	calendarRegistry[iso] = c
}

// CleanISO normalizes an ISO code for use as a registry key.
func CleanISO(code string) string {
	return strings.TrimSpace(strings.ToLower(code))
}
