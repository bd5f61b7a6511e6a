package rrule

import (
	"fmt"
	"time"
)

// Next is a streaming iterator function: each call returns the next
// occurrence and true, or the zero time and false once the sequence is
// exhausted. If it stops because the engine's own safety bound tripped
// (ErrIterationLimitExceeded) rather than because the rule naturally
// terminated, err is non-nil. Ground: spec.md §4.6/§9 ("a pull-based
// iterator interface"); the teacher's Iterator() returns the bare-closure
// shape this generalizes.
type Next func() (t time.Time, ok bool, err error)

// rIterator walks a single RRule's periods, buffering one period's worth
// of filtered, set-pos-selected occurrences at a time and handing them out
// one by one. Ground: the teacher's rIterator/generate.
type rIterator struct {
	rule *RRule
	ctx  yearContext

	year    int
	month   time.Month
	day     int
	hour    int
	minute  int
	second  int
	weekday int

	timeset []time.Time

	total    int
	remain   int // occurrences still to emit before Count is reached (0 = unbounded)
	buffer   []time.Time
	done     bool
	err      error
	periodsSinceOutput int
}

func newRIterator(r *RRule) *rIterator {
	it := &rIterator{rule: r}
	it.year, _, _ = r.DateStart.Date()
	it.month = r.DateStart.Month()
	it.day = r.DateStart.Day()
	it.hour, it.minute, it.second = r.DateStart.Clock()
	it.weekday = toPyWeekday(r.DateStart.Weekday())

	it.ctx = yearContext{rule: r}
	it.ctx.rebuild(it.year, it.month)

	if r.Freq < HOURLY {
		it.timeset = r.Timeset
	} else if r.Freq >= HOURLY && len(r.Byhour) != 0 && !contains(r.Byhour, it.hour) ||
		r.Freq >= MINUTELY && len(r.Byminute) != 0 && !contains(r.Byminute, it.minute) ||
		r.Freq >= SECONDLY && len(r.Bysecond) != 0 && !contains(r.Bysecond, it.second) {
		it.timeset = nil
	} else {
		it.timeset = it.ctx.timeSet(r.Freq, it.hour, it.minute, it.second)
	}
	it.remain = r.Count
	return it
}

// next implements spec.md §4.6's next() state machine.
func (it *rIterator) next() (time.Time, bool, error) {
	if it.err != nil {
		return time.Time{}, false, it.err
	}
	if len(it.buffer) == 0 && !it.done {
		it.fill()
	}
	if len(it.buffer) == 0 {
		return time.Time{}, false, it.err
	}
	v := it.buffer[0]
	it.buffer = it.buffer[1:]
	return v, true, nil
}

// fill regenerates candidates for consecutive periods until it has at
// least one occurrence buffered, the rule terminates (Count/Until
// reached), or the safety bound (spec.md §4.6) trips.
func (it *rIterator) fill() {
	r := it.rule
	for len(it.buffer) == 0 {
		dayset, start, end := it.ctx.daySet(r.Freq, it.year, it.month, it.day)
		filtered := it.ctx.applyFilters(dayset, start, end)

		var occurrences []time.Time
		if len(r.Bysetpos) != 0 && len(it.timeset) != 0 {
			occurrences = it.ctx.applySetPos(r.Bysetpos, dayset, start, end, it.timeset)
		} else {
			occurrences = it.expandPlain(dayset, start, end)
		}

		for _, res := range occurrences {
			if !r.UntilTime.IsZero() && res.After(r.UntilTime) {
				it.done = true
				return
			}
			if res.Before(r.DateStart) {
				continue
			}
			it.total++
			it.buffer = append(it.buffer, res)
			if r.Count != 0 {
				it.remain--
				if it.remain == 0 {
					it.done = true
					return
				}
			}
		}

		if len(it.buffer) != 0 {
			it.periodsSinceOutput = 0
		} else {
			it.periodsSinceOutput++
			if it.periodsSinceOutput > maxEmptyPeriods {
				logger.Debug().
					Str("freq", r.Freq.String()).
					Int("year", it.year).
					Msg("rrule: safety bound tripped, no candidates in too many consecutive periods")
				it.err = fmt.Errorf("%w: no occurrences found after %d consecutive periods", ErrIterationLimitExceeded, maxEmptyPeriods)
				it.done = true
				return
			}
		}

		if !it.advancePeriod(filtered) {
			return
		}
	}
}

func (it *rIterator) expandPlain(dayset []*int, start, end int) []time.Time {
	var out []time.Time
	for _, d := range dayset[start:end] {
		if d == nil {
			continue
		}
		date := it.ctx.firstyday.AddDate(0, 0, *d)
		for _, clock := range it.timeset {
			out = append(out, time.Date(date.Year(), date.Month(), date.Day(),
				clock.Hour(), clock.Minute(), clock.Second(), clock.Nanosecond(), clock.Location()))
		}
	}
	return out
}

// advancePeriod steps the period anchor forward by one Interval's worth of
// Freq, rebuilding the year context as needed. It returns false if the
// safety bound (MaxYear) was hit, in which case it has already set
// it.done/it.err.
func (it *rIterator) advancePeriod(filtered bool) bool {
	r := it.rule
	fixday := false

	switch r.Freq {
	case YEARLY:
		it.year += r.Interval
		if it.year > MaxYear {
			return it.stopAtYearLimit()
		}
		it.ctx.rebuild(it.year, it.month)

	case MONTHLY:
		it.month += time.Month(r.Interval)
		if it.month > 12 {
			div, mod := divmod(int(it.month), 12)
			it.month = time.Month(mod)
			it.year += div
			if it.month == 0 {
				it.month = 12
				it.year--
			}
			if it.year > MaxYear {
				return it.stopAtYearLimit()
			}
		}
		it.ctx.rebuild(it.year, it.month)

	case WEEKLY:
		if r.Wkst > it.weekday {
			it.day += -(it.weekday + 1 + (6 - r.Wkst)) + r.Interval*7
		} else {
			it.day += -(it.weekday - r.Wkst) + r.Interval*7
		}
		it.weekday = r.Wkst
		fixday = true

	case DAILY:
		it.day += r.Interval
		fixday = true

	case HOURLY:
		if filtered {
			it.hour += ((23 - it.hour) / r.Interval) * r.Interval
		}
		for {
			it.hour += r.Interval
			div, mod := divmod(it.hour, 24)
			if div != 0 {
				it.hour = mod
				it.day += div
				fixday = true
			}
			if len(r.Byhour) == 0 || contains(r.Byhour, it.hour) {
				break
			}
		}
		it.timeset = it.ctx.timeSet(r.Freq, it.hour, it.minute, it.second)

	case MINUTELY:
		if filtered {
			it.minute += ((1439 - (it.hour*60 + it.minute)) / r.Interval) * r.Interval
		}
		for {
			it.minute += r.Interval
			div, mod := divmod(it.minute, 60)
			if div != 0 {
				it.minute = mod
				it.hour += div
				hdiv, hmod := divmod(it.hour, 24)
				if hdiv != 0 {
					it.hour = hmod
					it.day += hdiv
					fixday = true
					filtered = false
				}
			}
			if (len(r.Byhour) == 0 || contains(r.Byhour, it.hour)) &&
				(len(r.Byminute) == 0 || contains(r.Byminute, it.minute)) {
				break
			}
		}
		it.timeset = it.ctx.timeSet(r.Freq, it.hour, it.minute, it.second)

	case SECONDLY:
		if filtered {
			it.second += ((86399 - (it.hour*3600 + it.minute*60 + it.second)) / r.Interval) * r.Interval
		}
		for {
			it.second += r.Interval
			div, mod := divmod(it.second, 60)
			if div != 0 {
				it.second = mod
				it.minute += div
				mdiv, mmod := divmod(it.minute, 60)
				if mdiv != 0 {
					it.minute = mmod
					it.hour += mdiv
					hdiv, hmod := divmod(it.hour, 24)
					if hdiv != 0 {
						it.hour = hmod
						it.day += hdiv
						fixday = true
					}
				}
			}
			if (len(r.Byhour) == 0 || contains(r.Byhour, it.hour)) &&
				(len(r.Byminute) == 0 || contains(r.Byminute, it.minute)) &&
				(len(r.Bysecond) == 0 || contains(r.Bysecond, it.second)) {
				break
			}
		}
		it.timeset = it.ctx.timeSet(r.Freq, it.hour, it.minute, it.second)
	}

	if fixday && it.day > 28 {
		dim := daysInMonth(it.year, it.month)
		if it.day > dim {
			for it.day > dim {
				it.day -= dim
				it.month++
				if it.month == 13 {
					it.month = 1
					it.year++
					if it.year > MaxYear {
						return it.stopAtYearLimit()
					}
				}
				dim = daysInMonth(it.year, it.month)
			}
			it.ctx.rebuild(it.year, it.month)
		}
	}
	return true
}

func (it *rIterator) stopAtYearLimit() bool {
	it.done = true
	it.err = fmt.Errorf("%w: advanced past MaxYear %d with no occurrences", ErrIterationLimitExceeded, MaxYear)
	return false
}
