package rrulext

import "time"

// IRuleSet is the occurrence source a Policy wraps: this module's own
// *rrule.Set satisfies it directly, with its deliberately bare-value
// convenience signatures (see Set.After/Before/Between in ruleset.go).
type IRuleSet interface {
	After(dt time.Time, inclusive bool) time.Time
	Before(dt time.Time, inclusive bool) time.Time
	Between(after, before time.Time, inclusive bool) []time.Time
}

// Options configures a Policy: which shifts and restrictions apply on top
// of the wrapped rule set's raw occurrence stream.
type Options struct {
	// Set is the occurrence source to wrap. Required.
	Set IRuleSet

	// ShiftOffWeekend moves a Saturday occurrence to the following Monday
	// and a Sunday occurrence to the following Monday as well (Saturday
	// shifts 2 days, Sunday 1), rather than dropping it.
	ShiftOffWeekend bool

	// ShiftOffHolidays walks an occurrence forward a day at a time past
	// any holiday (actual or observed) the calendar reports, rather than
	// dropping it. Requires a resolved calendar (Calendar or ISOCode).
	ShiftOffHolidays bool

	// ValidOnlyOnWeekends keeps only occurrences that (after any shift)
	// fall on a Saturday or Sunday, rather than excluding them.
	ValidOnlyOnWeekends bool

	// ValidOnlyOnHolidays keeps only occurrences that (after any shift)
	// the calendar reports as a holiday.
	ValidOnlyOnHolidays bool

	// ISOCode resolves a calendar via GetCalendar/NewCalendar when
	// Calendar is nil.
	ISOCode string

	// Calendar, if set, is used directly instead of resolving ISOCode.
	Calendar ICalendar

	// Observance, if non-empty, is a final fallback applied after
	// ShiftOffWeekend/ShiftOffHolidays: it keeps walking in the given
	// direction until a non-holiday, non-weekend date is reached. Like
	// ShiftOffHolidays, it requires a resolved calendar and has no effect
	// without one.
	Observance ObservanceMode

	// CustomFilter, if set, must accept an occurrence (after shifting)
	// for it to be considered valid.
	CustomFilter func(time.Time) bool
}

// Policy wraps an IRuleSet with the shift/restriction behavior Options
// describes. Ground: alibs-slim's RRulePlus, reproduced here over this
// module's own Set/RRule types instead of teambition/rrule-go's.
type Policy struct {
	set      IRuleSet
	calendar ICalendar
	opt      Options
}

// NewPolicy builds a Policy from opt, resolving a calendar from opt.ISOCode
// if opt.Calendar is nil and opt.ISOCode is non-empty.
func NewPolicy(opt Options) (*Policy, error) {
	var calendar ICalendar
	switch {
	case opt.Calendar != nil:
		calendar = opt.Calendar
	case opt.ISOCode != "":
		c, err := GetCalendar(opt.ISOCode)
		if err != nil || c == nil {
			c, err = NewCalendar(opt.ISOCode)
			if err != nil {
				return nil, err
			}
			SetCalendar(opt.ISOCode, c)
		}
		calendar = c
	}

	return &Policy{set: opt.Set, calendar: calendar, opt: opt}, nil
}

// Active reports whether p carries any policy beyond the wrapped set's raw
// occurrence stream; when false, After/Before/Between pass straight through.
func (p *Policy) Active() bool {
	o := p.opt
	return o.ShiftOffWeekend ||
		o.ShiftOffHolidays ||
		o.ValidOnlyOnHolidays ||
		o.ValidOnlyOnWeekends ||
		!o.Observance.IsEmpty() ||
		o.CustomFilter != nil ||
		o.ISOCode != ""
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func (p *Policy) isValid(t time.Time) bool {
	o := p.opt

	if o.CustomFilter != nil && !o.CustomFilter(t) {
		return false
	}

	weekend := isWeekend(t)
	var holiday bool
	if p.calendar != nil {
		actual, observed, _ := p.calendar.IsHoliday(t)
		holiday = actual || observed
	}

	if o.ValidOnlyOnWeekends && !weekend {
		return false
	}
	if o.ValidOnlyOnHolidays && !holiday {
		return false
	}
	if weekend && !o.ShiftOffWeekend && !o.ValidOnlyOnWeekends {
		return false
	}
	if holiday && !o.ShiftOffHolidays && !o.ValidOnlyOnHolidays {
		return false
	}
	return true
}

// applyShift moves t per ShiftOffWeekend, ShiftOffHolidays and Observance,
// in that order.
func (p *Policy) applyShift(t time.Time) time.Time {
	o := p.opt

	if o.ShiftOffWeekend {
		switch t.Weekday() {
		case time.Saturday:
			t = t.AddDate(0, 0, 2)
		case time.Sunday:
			t = t.AddDate(0, 0, 1)
		}
	}

	if o.ShiftOffHolidays && p.calendar != nil {
		for {
			actual, observed, _ := p.calendar.IsHoliday(t)
			if !actual && !observed {
				break
			}
			t = t.AddDate(0, 0, 1)
		}
	}

	if !o.Observance.IsEmpty() && p.calendar != nil {
		step := 1
		if o.Observance == ObservancePreviousBizDay {
			step = -1
		}
		for {
			actual, observed, _ := p.calendar.IsHoliday(t)
			if !actual && !observed && !isWeekend(t) {
				break
			}
			t = t.AddDate(0, 0, step)
		}
	}

	return t
}

// maxScanAttempts bounds how many candidate occurrences scan consults
// before giving up, so a policy combination with no satisfying occurrence
// (e.g. ValidOnlyOnHolidays against a calendar with no matching holiday
// near dt) cannot spin forever.
const maxScanAttempts = 1000

func (p *Policy) scan(forward bool, t time.Time, inclusive bool) time.Time {
	cursor := t
	step := time.Second
	if !forward {
		step = -step
	}

	for attempts := 0; attempts < maxScanAttempts; attempts++ {
		var next time.Time
		if forward {
			next = p.set.After(cursor, inclusive)
		} else {
			next = p.set.Before(cursor, inclusive)
		}
		if next.IsZero() {
			return time.Time{}
		}
		adjusted := p.applyShift(next)
		if p.isValid(adjusted) {
			return adjusted
		}
		cursor = next.Add(step)
		inclusive = false
	}
	return time.Time{}
}

// After returns the first occurrence after dt (or at dt, if inclusive) that
// satisfies p's policy, or the zero time if none is found within
// maxScanAttempts candidates.
func (p *Policy) After(dt time.Time, inclusive bool) time.Time {
	if !p.Active() {
		return p.set.After(dt, inclusive)
	}
	return p.scan(true, dt, inclusive)
}

// Before returns the last occurrence before dt (or at dt, if inclusive)
// that satisfies p's policy.
func (p *Policy) Before(dt time.Time, inclusive bool) time.Time {
	if !p.Active() {
		return p.set.Before(dt, inclusive)
	}
	return p.scan(false, dt, inclusive)
}

// Between returns every occurrence in [after, before] (or (after, before),
// if !inclusive) that satisfies p's policy, after shifting.
func (p *Policy) Between(after, before time.Time, inclusive bool) []time.Time {
	if !p.Active() {
		return p.set.Between(after, before, inclusive)
	}

	var out []time.Time
	for _, t := range p.set.Between(after, before, inclusive) {
		adjusted := p.applyShift(t)
		inWindow := adjusted.After(after) && adjusted.Before(before)
		if inclusive {
			inWindow = !adjusted.Before(after) && !adjusted.After(before)
		}
		if p.isValid(adjusted) && inWindow {
			out = append(out, adjusted)
		}
	}
	return out
}
