package rrule

import (
	"fmt"
	"time"
)

// ROption assembles a recurrence rule's properties before validation. It is
// the mutable "builder" half of the pattern spec.md §9 describes: fields are
// set directly or via the With* helpers, then NewRRule seals them into an
// immutable *RRule or returns ErrInvalidRule. Ground: the teacher's ROption
// struct. Validation covers ranges and termination fields only; see
// validateBounds for what it does and does not reject.
type ROption struct {
	Freq       Frequency
	Dtstart    time.Time
	Interval   int
	Wkst       Weekday
	Count      int
	Until      time.Time
	Bysetpos   []int
	Bymonth    []int
	Bymonthday []int
	Byyearday  []int
	Byweekno   []int
	Byweekday  []Weekday
	Byhour     []int
	Byminute   []int
	Bysecond   []int
	Byeaster   []int

	// RFC renders String() without an implicit DTSTART property, matching
	// callers that track dtstart separately (e.g. as a Set's own DTSTART).
	RFC bool

	// Resolver classifies Dtstart against its own zone's DST transitions
	// at construction time (spec.md §6/§7). Nil means DefaultZoneResolver.
	Resolver ZoneResolver
}

// WithInterval sets Interval and returns opt for chaining.
func (opt ROption) WithInterval(n int) ROption {
	opt.Interval = n
	return opt
}

// WithCount sets Count and returns opt for chaining.
func (opt ROption) WithCount(n int) ROption {
	opt.Count = n
	return opt
}

// WithUntil sets Until and returns opt for chaining.
func (opt ROption) WithUntil(t time.Time) ROption {
	opt.Until = t
	return opt
}

// validateBounds checks arg against the invariants of a validated Rule:
// interval and count >= 0 (an interval of 0 is later read as 1), COUNT and
// UNTIL mutually exclusive, BY-set integers in range, BYDAY ordinals within
// [-53, 53], BYSETPOS values nonzero. It does not require BYSETPOS to come
// with another BY-part, and it restricts neither Nth-prefixed BYDAY nor
// BYWEEKNO to particular frequencies.
func validateBounds(arg ROption) error {
	if arg.Interval < 0 {
		return fmt.Errorf("%w: interval must be >= 0", ErrInvalidRule)
	}
	if arg.Count != 0 && !arg.Until.IsZero() {
		return fmt.Errorf("%w: COUNT and UNTIL are mutually exclusive", ErrInvalidRule)
	}
	if arg.Count < 0 {
		return fmt.Errorf("%w: count must be >= 0", ErrInvalidRule)
	}

	bounds := []struct {
		field     []int
		param     string
		lo, hi    int
		plusMinus bool // also accepts [-hi, -lo]
	}{
		{arg.Bysecond, "BYSECOND", 0, 60, false},
		{arg.Byminute, "BYMINUTE", 0, 59, false},
		{arg.Byhour, "BYHOUR", 0, 23, false},
		{arg.Bymonthday, "BYMONTHDAY", 1, 31, true},
		{arg.Byyearday, "BYYEARDAY", 1, 366, true},
		{arg.Byweekno, "BYWEEKNO", 1, 53, true},
		{arg.Bymonth, "BYMONTH", 1, 12, false},
		{arg.Bysetpos, "BYSETPOS", 1, 366, true},
	}

	for _, b := range bounds {
		for _, v := range b.field {
			if !inBounds(v, b.lo, b.hi, b.plusMinus) {
				return fmt.Errorf("%w: %s value %d out of range", ErrInvalidRule, b.param, v)
			}
		}
	}

	// RFC 5545 restricts an ordinal-prefixed BYDAY (e.g. +2MO) to
	// FREQ=YEARLY/MONTHLY, and BYWEEKNO to FREQ=YEARLY. This package
	// follows the teacher's own validateBounds in not enforcing either
	// restriction: both combinations are accepted. For FREQ finer than
	// MONTHLY, NewRRule drops a BYDAY ordinal, so +2FR matches every
	// Friday; BYWEEKNO filters by the year's week numbers
	// (yearcontext.go's rebuildWeekNoMask) whatever the FREQ.
	for _, w := range arg.Byweekday {
		if w.n != 0 && (w.n > 53 || w.n < -53) {
			return fmt.Errorf("%w: BYDAY ordinal must be between -53 and 53", ErrInvalidRule)
		}
	}

	if len(arg.Bysetpos) != 0 {
		for _, p := range arg.Bysetpos {
			if p == 0 {
				return fmt.Errorf("%w: BYSETPOS values must be nonzero", ErrInvalidRule)
			}
		}
	}

	return nil
}

func inBounds(v, lo, hi int, plusMinus bool) bool {
	if v >= lo && v <= hi {
		return true
	}
	return plusMinus && v <= -lo && v >= -hi
}

