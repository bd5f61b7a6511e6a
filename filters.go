package rrule

// applyFilters nils out every entry of dayset[start:end] that fails any
// active BY-part predicate (spec.md §4.4). It reports whether at least one
// candidate was rejected, which the iterator uses to fast-forward
// sub-daily periods that can never match. Ground: the predicate chain in
// the teacher's rIterator.generate; split into its own function per
// spec.md §2's separation of "filter chain" from "candidate generator" and
// "single-rule iterator".
func (ctx *yearContext) applyFilters(dayset []*int, start, end int) (filtered bool) {
	r := ctx.rule
	for _, i := range dayset[start:end] {
		if ctx.rejects(r, *i) {
			dayset[*i] = nil
			filtered = true
		}
	}
	return filtered
}

func (ctx *yearContext) rejects(r *RRule, i int) bool {
	if len(r.Bymonth) != 0 && !contains(r.Bymonth, ctx.monthMask[i]) {
		return true
	}
	if len(r.Byweekno) != 0 && ctx.weekNoMask[i] == 0 {
		return true
	}
	if len(r.Byweekday) != 0 && !contains(r.Byweekday, ctx.weekdayMask[i]) {
		return true
	}
	if len(ctx.nweekdayMask) != 0 && ctx.nweekdayMask[i] == 0 {
		return true
	}
	if len(r.Byeaster) != 0 && (i >= len(ctx.easterMask) || ctx.easterMask[i] == 0) {
		return true
	}
	if len(r.Bymonthday) != 0 || len(r.Bynmonthday) != 0 {
		if !contains(r.Bymonthday, ctx.monthDayMask[i]) && !contains(r.Bynmonthday, ctx.negMonthDay[i]) {
			return true
		}
	}
	if len(r.Byyearday) != 0 && !ctx.acceptsYearDay(r, i) {
		return true
	}
	return false
}

// acceptsYearDay implements BYYEARDAY's dual positive/negative membership:
// a candidate at index i (0-based, possibly past yearlen for a
// cross-year week) matches if its 1-based ordinal, counted from either end
// of whichever year it actually falls in, is in the BY-set.
func (ctx *yearContext) acceptsYearDay(r *RRule, i int) bool {
	if i < ctx.yearlen {
		return contains(r.Byyearday, i+1) || contains(r.Byyearday, -ctx.yearlen+i)
	}
	return contains(r.Byyearday, i+1-ctx.yearlen) || contains(r.Byyearday, -ctx.nextyearlen+i-ctx.yearlen)
}
