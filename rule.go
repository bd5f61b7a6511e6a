package rrule

import (
	"sort"
	"time"
)

// RRule is a single validated recurrence rule: an immutable bundle of
// properties plus the dtstart anchor (spec.md §3's "Rule"). Construct one
// with NewRRule. Its fields are exported for reading; DTStart/Until are the
// only methods that change a rule after construction, which exist because
// recomputing a rule's timeset in place is cheaper than rebuilding one from
// scratch.
type RRule struct {
	OrigOptions ROption
	options     ROption

	Freq      Frequency
	DateStart time.Time
	Interval  int
	Wkst      int
	Count     int
	UntilTime time.Time

	Bysetpos   []int
	Bymonth    []int
	Bymonthday []int
	Bynmonthday []int
	Byyearday  []int
	Byweekno   []int
	Byweekday  []int
	bynweekday []Weekday
	Byhour     []int
	Byminute   []int
	Bysecond   []int
	Byeaster   []int

	// Timeset holds the candidate times-of-day (date fixed at year 1) for
	// date-level frequencies (YEARLY..DAILY), where BYHOUR/BYMINUTE/
	// BYSECOND (or dtstart's own clock, if none given) apply uniformly to
	// every candidate day rather than varying per period.
	Timeset []time.Time
}

// NewRRule validates arg per spec.md §6 and, if valid, seals it into an
// immutable *RRule. Ground: the teacher's NewRRule; validateBounds lists
// which checks are made and which combinations are accepted unchecked.
func NewRRule(arg ROption) (*RRule, error) {
	if err := validateBounds(arg); err != nil {
		return nil, err
	}

	r := &RRule{OrigOptions: arg}

	if arg.Dtstart.IsZero() {
		arg.Dtstart = time.Now().UTC()
	}
	arg.Dtstart = arg.Dtstart.Truncate(time.Second)

	resolver := arg.Resolver
	if resolver == nil {
		resolver = DefaultZoneResolver
	}
	if err := resolver.Classify(arg.Dtstart, arg.Dtstart.Location()); err != nil {
		return nil, err
	}

	r.DateStart = arg.Dtstart
	r.Freq = arg.Freq

	r.Interval = arg.Interval
	if r.Interval == 0 {
		r.Interval = 1
	}

	r.Count = arg.Count
	if arg.Until.IsZero() {
		// A sentinel far enough out that no rule will reach it before
		// MaxYear does: the effective "no UNTIL" termination.
		arg.Until = time.Date(MaxYear+1, time.January, 1, 0, 0, 0, 0, r.DateStart.Location())
	}
	r.UntilTime = arg.Until
	r.Wkst = arg.Wkst.weekday
	r.Bysetpos = arg.Bysetpos

	// RFC 5545's "implicit BY-part" rule: if none of the date-scoping
	// BY-parts were given, the anchor's own date fields become an
	// implicit BY-part so dtstart's own day-of-week/month/etc is what
	// YEARLY/MONTHLY/WEEKLY recurs on.
	if len(arg.Byweekno) == 0 && len(arg.Byyearday) == 0 && len(arg.Bymonthday) == 0 &&
		len(arg.Byweekday) == 0 && len(arg.Byeaster) == 0 {
		switch r.Freq {
		case YEARLY:
			if len(arg.Bymonth) == 0 {
				arg.Bymonth = []int{int(r.DateStart.Month())}
			}
			arg.Bymonthday = []int{r.DateStart.Day()}
		case MONTHLY:
			arg.Bymonthday = []int{r.DateStart.Day()}
		case WEEKLY:
			arg.Byweekday = []Weekday{{weekday: toPyWeekday(r.DateStart.Weekday())}}
		}
	}

	r.Bymonth = arg.Bymonth
	r.Byyearday = arg.Byyearday
	r.Byeaster = arg.Byeaster
	r.Byweekno = arg.Byweekno

	for _, d := range arg.Bymonthday {
		if d > 0 {
			r.Bymonthday = append(r.Bymonthday, d)
		} else if d < 0 {
			r.Bynmonthday = append(r.Bynmonthday, d)
		}
	}

	for _, w := range arg.Byweekday {
		if w.n == 0 || r.Freq > MONTHLY {
			r.Byweekday = append(r.Byweekday, w.weekday)
		} else {
			r.bynweekday = append(r.bynweekday, w)
		}
	}

	r.Byhour = impliedByPart(arg.Byhour, r.Freq < HOURLY, r.DateStart.Hour())
	r.Byminute = impliedByPart(arg.Byminute, r.Freq < MINUTELY, r.DateStart.Minute())
	r.Bysecond = impliedByPart(arg.Bysecond, r.Freq < SECONDLY, r.DateStart.Second())

	r.options = arg
	r.calculateTimeset()

	return r, nil
}

// impliedByPart returns explicit when it is non-empty; otherwise, if
// coarser is true (the rule's frequency is coarser than this BY-part's
// natural granularity), it returns the anchor's own field value as the
// sole member — spec.md §4.3's "sub-daily rules ... inherit dtstart's
// field at that level".
func impliedByPart(explicit []int, coarser bool, anchor int) []int {
	if len(explicit) != 0 {
		return explicit
	}
	if coarser {
		return []int{anchor}
	}
	return nil
}

// DTStart rebinds r to a new anchor instant, recomputing any BY-parts that
// were implied from the old anchor's clock fields.
func (r *RRule) DTStart(dt time.Time) {
	r.DateStart = dt.Truncate(time.Second)
	r.options.Dtstart = r.DateStart

	if len(r.options.Byhour) == 0 && r.Freq < HOURLY {
		r.Byhour = []int{r.DateStart.Hour()}
	}
	if len(r.options.Byminute) == 0 && r.Freq < MINUTELY {
		r.Byminute = []int{r.DateStart.Minute()}
	}
	if len(r.options.Bysecond) == 0 && r.Freq < SECONDLY {
		r.Bysecond = []int{r.DateStart.Second()}
	}
	r.calculateTimeset()
}

// Until rebinds r's UNTIL bound.
func (r *RRule) Until(ut time.Time) {
	r.UntilTime = ut
	r.options.Until = ut
}

func (r *RRule) calculateTimeset() {
	r.Timeset = nil
	if r.Freq >= HOURLY {
		return
	}
	for _, h := range r.Byhour {
		for _, m := range r.Byminute {
			for _, s := range r.Bysecond {
				r.Timeset = append(r.Timeset, time.Date(1, 1, 1, h, m, s, 0, r.DateStart.Location()))
			}
		}
	}
	sort.Sort(byClock(r.Timeset))
}

// Iterator returns a restartable Next closure over r's occurrences, per
// spec.md §4.6.
func (r *RRule) Iterator() Next {
	it := newRIterator(r)
	return it.next
}

// All returns every occurrence of r, up to limit. It fails with
// ErrLimitExceeded if limit is reached before the rule naturally
// terminates — the mechanism spec.md §6/§7 describe for distinguishing
// bounded truncation from genuine termination. A zero or negative limit
// means unbounded.
func (r *RRule) All(limit int) ([]time.Time, error) {
	return collectAll(r.Iterator(), limit)
}

// Between returns r's occurrences in [after, before], inclusive of the
// endpoints iff inclusive is true.
func (r *RRule) Between(after, before time.Time, inclusive bool) ([]time.Time, error) {
	return collectBetween(r.Iterator(), after, before, inclusive)
}

// Before returns the last occurrence before dt (or at dt, if inclusive),
// or the zero time if none exists.
func (r *RRule) Before(dt time.Time, inclusive bool) (time.Time, error) {
	return findBefore(r.Iterator(), dt, inclusive)
}

// After returns the first occurrence after dt (or at dt, if inclusive), or
// the zero time if none exists.
func (r *RRule) After(dt time.Time, inclusive bool) (time.Time, error) {
	return findAfter(r.Iterator(), dt, inclusive)
}
