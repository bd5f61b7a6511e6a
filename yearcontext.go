package rrule

import "time"

// yearContext holds the per-day facts spec.md §4.2 describes, precomputed
// once per calendar year (and, for BYDAY-with-ordinal rules, refreshed per
// month too). It is owned by exactly one rIterator and is never shared
// (spec.md §5). Ground: the teacher's iterInfo/rebuild.
type yearContext struct {
	rule *RRule

	lastyear  int
	lastmonth time.Month

	yearlen     int
	nextyearlen int
	firstyday   time.Time
	yearweekday int

	monthMask    []int
	monthRange   []int
	monthDayMask []int
	negMonthDay  []int
	weekdayMask  []int
	weekNoMask   []int
	nweekdayMask []int
	easterMask   []int
}

// rebuild refreshes the context for (year, month), recomputing the
// year-scoped masks only when the year actually changed and the
// month-scoped Nth-weekday mask only when the (year, month) pair changed.
// This lazy refresh is what keeps a single-rule iterator's working set to
// one year's worth of ints (spec.md §5) across an iteration spanning many
// years.
func (ctx *yearContext) rebuild(year int, month time.Month) {
	r := ctx.rule
	if year != ctx.lastyear {
		ctx.rebuildYear(year)
	}
	if len(r.bynweekday) != 0 && (month != ctx.lastmonth || year != ctx.lastyear) {
		ctx.rebuildNthWeekdayMask(year, month)
	}
	if len(r.Byeaster) != 0 {
		ctx.rebuildEasterMask(year)
	}
	ctx.lastyear = year
	ctx.lastmonth = month
}

func (ctx *yearContext) rebuildYear(year int) {
	r := ctx.rule
	ctx.yearlen = 365 + isLeap(year)
	ctx.nextyearlen = 365 + isLeap(year+1)
	ctx.firstyday = time.Date(year, time.January, 1, 0, 0, 0, 0, r.DateStart.Location())
	ctx.yearweekday = toPyWeekday(ctx.firstyday.Weekday())
	ctx.weekdayMask = weekdayMask[ctx.yearweekday:]

	if ctx.yearlen == 365 {
		ctx.monthMask = month365Mask
		ctx.monthDayMask = monthDay365Mask
		ctx.negMonthDay = negMonthDay365Mask
		ctx.monthRange = month365Range
	} else {
		ctx.monthMask = month366Mask
		ctx.monthDayMask = monthDay366Mask
		ctx.negMonthDay = negMonthDay366Mask
		ctx.monthRange = month366Range
	}

	if len(r.Byweekno) == 0 {
		ctx.weekNoMask = nil
	} else {
		ctx.rebuildWeekNoMask(year)
	}
}

// rebuildWeekNoMask implements spec.md §4.2's BYWEEKNO mask: the week
// containing Jan 1 belongs to the prior year iff it has fewer than 4 days
// in `year` (the ISO-8601 rule, generalized to an arbitrary week-start).
// Ground: the teacher's rebuild, which additionally bleeds week 1 of next
// year and the last week of last year into this year's mask where RFC 5545
// requires it.
func (ctx *yearContext) rebuildWeekNoMask(year int) {
	r := ctx.rule
	ctx.weekNoMask = make([]int, ctx.yearlen+7)
	firstwkst := pymod(7-ctx.yearweekday+r.Wkst, 7)
	no1wkst := firstwkst
	var wyearlen int
	if no1wkst >= 4 {
		no1wkst = 0
		wyearlen = ctx.yearlen + pymod(ctx.yearweekday-r.Wkst, 7)
	} else {
		wyearlen = ctx.yearlen - no1wkst
	}
	div, mod := divmod(wyearlen, 7)
	numweeks := div + mod/4

	for _, n := range r.Byweekno {
		if n < 0 {
			n += numweeks + 1
		}
		if !(n > 0 && n <= numweeks) {
			continue
		}
		var i int
		if n > 1 {
			i = no1wkst + (n-1)*7
			if no1wkst != firstwkst {
				i -= 7 - firstwkst
			}
		} else {
			i = no1wkst
		}
		for j := 0; j < 7; j++ {
			ctx.weekNoMask[i] = 1
			i++
			if ctx.weekdayMask[i] == r.Wkst {
				break
			}
		}
	}

	if contains(r.Byweekno, 1) {
		// Week number 1 of next year can bleed a few days into this one.
		i := no1wkst + numweeks*7
		if no1wkst != firstwkst {
			i -= 7 - firstwkst
		}
		if i < ctx.yearlen {
			for j := 0; j < 7; j++ {
				ctx.weekNoMask[i] = 1
				i++
				if ctx.weekdayMask[i] == r.Wkst {
					break
				}
			}
		}
	}

	if no1wkst != 0 {
		var lnumweeks int
		if !contains(r.Byweekno, -1) {
			lyearweekday := toPyWeekday(time.Date(year-1, 1, 1, 0, 0, 0, 0, r.DateStart.Location()).Weekday())
			lno1wkst := pymod(7-lyearweekday+r.Wkst, 7)
			lyearlen := 365 + isLeap(year-1)
			if lno1wkst >= 4 {
				lnumweeks = 52 + pymod(lyearlen+pymod(lyearweekday-r.Wkst, 7), 7)/4
			} else {
				lnumweeks = 52 + pymod(ctx.yearlen-no1wkst, 7)/4
			}
		} else {
			lnumweeks = -1
		}
		if contains(r.Byweekno, lnumweeks) {
			for i := 0; i < no1wkst; i++ {
				ctx.weekNoMask[i] = 1
			}
		}
	}
}

// rebuildNthWeekdayMask implements the "Nth occurrence of weekday W" half
// of BYDAY filtering (spec.md §4.4): within a yearly rule without BYMONTH
// (with or without BYWEEKNO), N is scoped to the year; within a yearly rule
// with BYMONTH, or any monthly rule, N is scoped to the month.
func (ctx *yearContext) rebuildNthWeekdayMask(year int, month time.Month) {
	r := ctx.rule
	var ranges [][2]int
	switch {
	case r.Freq == YEARLY && len(r.Bymonth) != 0:
		for _, m := range r.Bymonth {
			ranges = append(ranges, [2]int{ctx.monthRange[m-1], ctx.monthRange[m]})
		}
	case r.Freq == YEARLY:
		ranges = [][2]int{{0, ctx.yearlen}}
	case r.Freq == MONTHLY:
		ranges = [][2]int{{ctx.monthRange[month-1], ctx.monthRange[month]}}
	}
	if len(ranges) == 0 {
		return
	}

	ctx.nweekdayMask = make([]int, ctx.yearlen)
	for _, rg := range ranges {
		first, last := rg[0], rg[1]-1
		for _, nw := range r.bynweekday {
			wday, n := nw.weekday, nw.n
			var i int
			if n < 0 {
				i = last + (n+1)*7
				i -= pymod(ctx.weekdayMask[i]-wday, 7)
			} else {
				i = first + (n-1)*7
				i += pymod(7-ctx.weekdayMask[i]+wday, 7)
			}
			if first <= i && i <= last {
				ctx.nweekdayMask[i] = 1
			}
		}
	}
}

func (ctx *yearContext) rebuildEasterMask(year int) {
	r := ctx.rule
	ctx.easterMask = make([]int, ctx.yearlen+7)
	eyday := easter(year).YearDay() - 1
	for _, offset := range r.Byeaster {
		idx := eyday + offset
		if idx >= 0 && idx < len(ctx.easterMask) {
			ctx.easterMask[idx] = 1
		}
	}
}
