package rrule

import (
	"fmt"
	"time"

	"github.com/mileusna/timezones"
)

// ZoneResolver resolves an IANA zone name (a DTSTART's TZID) to a
// *time.Location, and classifies a wall-clock instant against a zone's DST
// transitions. Ground: spec.md §6's "opaque resolve zone name → zone"
// collaborator; the alibs-slim atime package's TimeIn/GetLocation wrap the
// same stdlib primitives this default implementation does.
type ZoneResolver interface {
	// Resolve loads the zone named name, e.g. "America/New_York".
	Resolve(name string) (*time.Location, error)

	// Classify reports whether wall's date and clock fields, read as a
	// wall-clock reading in loc, fall in a fold (ambiguous: maps to two
	// instants) or a gap (nonexistent: maps to no instant) in loc. A gap
	// reading is only visible if wall was built in a zone where it exists
	// (e.g. UTC): time.Date in loc itself already moves it out of the gap.
	Classify(wall time.Time, loc *time.Location) error
}

// defaultZoneResolver is the ZoneResolver every *RRule uses unless a caller
// injects a different one (spec.md §6: "callers may substitute their own
// collaborator for testing or for a zone source other than the system
// tzdata").
type defaultZoneResolver struct{}

// DefaultZoneResolver is the stdlib-backed ZoneResolver used when none is
// supplied explicitly.
var DefaultZoneResolver ZoneResolver = defaultZoneResolver{}

func (defaultZoneResolver) Resolve(name string) (*time.Location, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("rrule: resolve zone %q: %w", name, err)
	}
	return loc, nil
}

// Classify detects a DST fold or gap by rebuilding wall's date/clock fields
// directly in loc. A gap shows up as time.Date silently normalizing the
// nonexistent wall-clock to a different reading (e.g. 02:30 on a
// spring-forward night in America/New_York comes back as 01:30 EST). A fold
// shows up as the same wall-clock value also being representable under the
// UTC offset in force a day earlier or a day later.
func (defaultZoneResolver) Classify(wall time.Time, loc *time.Location) error {
	y, m, d := wall.Date()
	h, mi, se := wall.Clock()

	rebuilt := time.Date(y, m, d, h, mi, se, wall.Nanosecond(), loc)
	if rebuilt.Year() != y || rebuilt.Month() != m || rebuilt.Day() != d ||
		rebuilt.Hour() != h || rebuilt.Minute() != mi {
		return fmt.Errorf("%w: %04d-%02d-%02dT%02d:%02d:%02d has no representation in %s",
			ErrNonexistentLocalTime, y, m, d, h, mi, se, loc)
	}

	_, offHere := rebuilt.Zone()
	for _, probe := range []time.Time{rebuilt.Add(-24 * time.Hour), rebuilt.Add(24 * time.Hour)} {
		_, offOther := probe.Zone()
		if offOther == offHere {
			continue
		}
		// The instant that reads the same wall clock under offOther.
		other := rebuilt.Add(time.Duration(offHere-offOther) * time.Second)
		if _, off := other.Zone(); off == offOther {
			return fmt.Errorf("%w: %04d-%02d-%02dT%02d:%02d:%02d is ambiguous in %s",
				ErrAmbiguousLocalTime, y, m, d, h, mi, se, loc)
		}
	}
	return nil
}

// ValidZoneNames returns every IANA zone name this package's bundled
// timezone list recognizes, for callers that want to validate a TZID before
// building a Rule from it. Ground: spec.md §6/SPEC_FULL.md's domain stack —
// mileusna/timezones.List(), the same source alibs-slim's GetOSTimeZones
// uses.
func ValidZoneNames() []string {
	return timezones.List()
}
