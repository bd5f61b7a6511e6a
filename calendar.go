package rrule

import "time"

// MaxYear bounds how far the single-rule iterator will advance its period
// anchor (spec §4.6's safety bound) before giving up with
// ErrIterationLimitExceeded. python-dateutil and the teacher's rrule.go use
// the same constant for the same reason: an unsatisfiable BY-combination
// (e.g. BYMONTH=2;BYMONTHDAY=30) must never be allowed to spin forever.
const MaxYear = 9999

// maxEmptyPeriods bounds how many consecutive periods may yield zero
// candidates before the iterator gives up, independent of MaxYear — this
// catches rules that are satisfiable in principle but pathologically sparse
// well before year 9999 would.
const maxEmptyPeriods = 50000

// isLeap reports whether y is a leap year on the proleptic Gregorian
// calendar, returning 1/0 so callers can add it directly to 365.
func isLeap(y int) int {
	if y%4 == 0 && (y%100 != 0 || y%400 == 0) {
		return 1
	}
	return 0
}

var daysInMonthTable = [...]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// daysInMonth returns the number of days in the given month of year y.
func daysInMonth(y int, m time.Month) int {
	if m == time.February {
		return 28 + isLeap(y)
	}
	return daysInMonthTable[m-1]
}

// dayOfYear returns the 1-based ordinal of date (y, m, d) within year y.
func dayOfYear(y int, m time.Month, d int) int {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).YearDay()
}

// weekdayOf returns the Monday=0..Sunday=6 weekday of date (y, m, d).
func weekdayOf(y int, m time.Month, d int) int {
	return toPyWeekday(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Weekday())
}

// isoWeek returns the ISO-8601 (iso_year, week) pair for date (y, m, d),
// i.e. week-start = Monday and the week containing Jan 1 belongs to the
// prior year iff it has fewer than 4 days in y.
func isoWeek(y int, m time.Month, d int) (int, int) {
	iy, iw := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).ISOWeek()
	return iy, iw
}

// toPyWeekday converts a stdlib time.Weekday (Sunday=0) to the
// Monday=0..Sunday=6 convention used throughout this package, mirroring
// python-dateutil's weekday numbering.
func toPyWeekday(wd time.Weekday) int {
	return pymod(int(wd)-1, 7)
}

// pymod is Python-style modulo: the result always has the sign of the
// divisor, unlike Go's %. The year-context week-number arithmetic (ported
// from the teacher's rebuild) depends on this.
func pymod(a, b int) int {
	r := a % b
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}
	return r
}

// divmod returns (a/b, a%b) using Python's floor-division semantics, i.e.
// the remainder always has the sign of b.
func divmod(a, b int) (int, int) {
	m := pymod(a, b)
	return (a - m) / b, m
}

// contains reports whether needle is present in haystack.
func contains(haystack []int, needle int) bool {
	for _, v := range haystack {
		if v == needle {
			return true
		}
	}
	return false
}

// addDays returns t shifted by n calendar days, preserving wall-clock time
// and location (DST transitions are handled by time.Time.AddDate).
func addDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// easter returns the date of Western (Gregorian) Easter Sunday for year y,
// via the anonymous Gregorian algorithm. Grounded on the teacher's
// BYEASTER support, which requires the same computation.
func easter(y int) time.Time {
	a := y % 19
	b := y / 100
	c := y % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return time.Date(y, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}
