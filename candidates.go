package rrule

import (
	"sort"
	"time"
)

// daySet returns the candidate day-ordinals (0-based, into ctx's year) the
// current period contributes, along with the [start, end) slice of that
// set actually populated — spec.md §4.3's candidate generator. Ground: the
// teacher's getdayset.
func (ctx *yearContext) daySet(freq Frequency, year int, month time.Month, day int) ([]*int, int, int) {
	switch freq {
	case YEARLY:
		set := make([]*int, ctx.yearlen)
		for i := range set {
			v := i
			set[i] = &v
		}
		return set, 0, ctx.yearlen

	case MONTHLY:
		set := make([]*int, ctx.yearlen)
		start, end := ctx.monthRange[month-1], ctx.monthRange[month]
		for i := start; i < end; i++ {
			v := i
			set[i] = &v
		}
		return set, start, end

	case WEEKLY:
		// Padded 7 entries past yearlen so a week straddling Dec 31 can be
		// represented without a second, cross-year dayset.
		set := make([]*int, ctx.yearlen+7)
		i := dayOfYear(year, month, day) - 1
		start := i
		for j := 0; j < 7; j++ {
			v := i
			set[i] = &v
			i++
			if ctx.weekdayMask[i] == ctx.rule.Wkst {
				break
			}
		}
		return set, start, i
	}

	// DAILY, HOURLY, MINUTELY, SECONDLY all advance one calendar day (or
	// finer) at a time, so the dayset is always a single ordinal.
	set := make([]*int, ctx.yearlen)
	i := dayOfYear(year, month, day) - 1
	set[i] = &i
	return set, i, i + 1
}

// timeSet returns the candidate time-of-day tuples for sub-daily
// frequencies, expanding the BY-set(s) finer than freq against each other.
// Ground: the teacher's gettimeset.
func (ctx *yearContext) timeSet(freq Frequency, hour, minute, second int) []time.Time {
	r := ctx.rule
	var result []time.Time
	switch freq {
	case HOURLY:
		for _, m := range r.Byminute {
			for _, s := range r.Bysecond {
				result = append(result, time.Date(1, 1, 1, hour, m, s, 0, r.DateStart.Location()))
			}
		}
	case MINUTELY:
		for _, s := range r.Bysecond {
			result = append(result, time.Date(1, 1, 1, hour, minute, s, 0, r.DateStart.Location()))
		}
	case SECONDLY:
		result = []time.Time{time.Date(1, 1, 1, hour, minute, second, 0, r.DateStart.Location())}
	}
	sort.Sort(byClock(result))
	return result
}

type byClock []time.Time

func (s byClock) Len() int      { return len(s) }
func (s byClock) Swap(i, j int) { s[i], s[j] = s[j], s[i] }
func (s byClock) Less(i, j int) bool {
	return s[i].Hour() < s[j].Hour() ||
		(s[i].Hour() == s[j].Hour() && s[i].Minute() < s[j].Minute()) ||
		(s[i].Hour() == s[j].Hour() && s[i].Minute() == s[j].Minute() && s[i].Second() < s[j].Second())
}
