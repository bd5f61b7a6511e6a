package rrulext

import "strings"

// ObservanceMode picks the fallback direction a Policy shifts an occurrence
// that lands on a non-business day when no simpler shift rule resolves it.
type ObservanceMode string

const (
	// ObservanceNone applies no fallback beyond ShiftOffWeekend/ShiftOffHolidays.
	ObservanceNone ObservanceMode = ""

	// ObservanceNextBizDay walks forward a day at a time until a non-holiday,
	// non-weekend date is reached.
	ObservanceNextBizDay ObservanceMode = "next-business-day"

	// ObservancePreviousBizDay walks backward a day at a time until a
	// non-holiday, non-weekend date is reached.
	ObservancePreviousBizDay ObservanceMode = "previous-business-day"
)

// IsEmpty reports whether m carries no observance fallback.
func (m ObservanceMode) IsEmpty() bool {
	return m.TrimSpace() == ""
}

// TrimSpace returns m with leading/trailing whitespace removed.
func (m ObservanceMode) TrimSpace() ObservanceMode {
	return ObservanceMode(strings.TrimSpace(string(m)))
}
