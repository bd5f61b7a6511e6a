package rrule

// Day-of-year lookup masks, precomputed once at package init and sliced per
// year by yearContext.rebuild. Every mask is padded 7 entries past the end
// of the year so weekly candidate generation can read past Dec 31 without
// bounds-checking a cross-year week. Ground: teacher's package-level mask
// vars and init(), which port python-dateutil's M365MASK/M366MASK family.
var (
	month365Mask     []int
	month366Mask     []int
	monthDay365Mask  []int
	monthDay366Mask  []int
	negMonthDay365Mask []int
	negMonthDay366Mask []int
	weekdayMask      []int

	month366Range = []int{0, 31, 60, 91, 121, 152, 182, 213, 244, 274, 305, 335, 366}
	month365Range = []int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334, 365}
)

func init() {
	month366Mask = concat(
		repeat(1, 31), repeat(2, 29), repeat(3, 31), repeat(4, 30),
		repeat(5, 31), repeat(6, 30), repeat(7, 31), repeat(8, 31),
		repeat(9, 30), repeat(10, 31), repeat(11, 30), repeat(12, 31),
		repeat(1, 7),
	)
	month365Mask = concat(month366Mask[:59], month366Mask[60:])

	d29, d30, d31 := rang(1, 30), rang(1, 31), rang(1, 32)
	monthDay366Mask = concat(d31, d29, d31, d30, d31, d30, d31, d31, d30, d31, d30, d31, d31[:7])
	monthDay365Mask = concat(monthDay366Mask[:59], monthDay366Mask[60:])

	n29, n30, n31 := rang(-29, 0), rang(-30, 0), rang(-31, 0)
	negMonthDay366Mask = concat(n31, n29, n31, n30, n31, n30, n31, n31, n30, n31, n30, n31, n31[:7])
	negMonthDay365Mask = concat(negMonthDay366Mask[:31], negMonthDay366Mask[32:])

	weekdayMask = make([]int, 0, 55*7)
	for i := 0; i < 55; i++ {
		weekdayMask = append(weekdayMask, 0, 1, 2, 3, 4, 5, 6)
	}
}

func repeat(value, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = value
	}
	return out
}

// rang returns the half-open integer range [from, to).
func rang(from, to int) []int {
	out := make([]int, 0, to-from)
	for i := from; i < to; i++ {
		out = append(out, i)
	}
	return out
}

func concat(parts ...[]int) []int {
	var out []int
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
