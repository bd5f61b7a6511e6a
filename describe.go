package rrule

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Describe renders r as an English sentence fragment, one clause per
// populated field, in this fixed order: frequency and interval, count,
// until, start, time of day, BYDAY, BYMONTHDAY, BYYEARDAY, BYWEEKNO,
// BYMONTH, BYEASTER, BYSETPOS. WKST and BYSECOND are not described, and
// BYHOUR/BYMINUTE contribute only their first values, as one "at HH:MM"
// clause. Ground:
// alibs-slim's rruleplus.describeROptions, adapted from its ROptionExtend
// shape to this package's OrigOptions and from plain fmt.Sprintf counts to
// go-humanize's Comma/Ordinal helpers.
func Describe(r *RRule) string {
	opt := r.OrigOptions
	var out []string

	freq := strings.ToLower(r.Freq.String())
	if opt.Interval > 1 {
		out = append(out, fmt.Sprintf("Every %s %s", humanize.Comma(int64(opt.Interval)), freq))
	} else {
		out = append(out, "Every "+freq)
	}

	if opt.Count > 0 {
		out = append(out, fmt.Sprintf("up to %s times", humanize.Comma(int64(opt.Count))))
	}
	if !opt.Until.IsZero() {
		out = append(out, "until "+opt.Until.Format("2006-01-02"))
	}
	if !opt.Dtstart.IsZero() {
		out = append(out, "starting "+opt.Dtstart.Format("2006-01-02 15:04"))
	}

	if len(opt.Byhour) > 0 || len(opt.Byminute) > 0 {
		h, m := 0, 0
		if len(opt.Byhour) > 0 {
			h = opt.Byhour[0]
		}
		if len(opt.Byminute) > 0 {
			m = opt.Byminute[0]
		}
		out = append(out, fmt.Sprintf("at %02d:%02d", h, m))
	}

	if len(opt.Byweekday) > 0 {
		labels := make([]string, len(opt.Byweekday))
		for i, w := range opt.Byweekday {
			labels[i] = w.String()
		}
		out = append(out, "on "+strings.Join(labels, ", "))
	}

	if len(opt.Bymonthday) > 0 {
		out = append(out, "on month days "+joinOrdinals(opt.Bymonthday))
	}
	if len(opt.Byyearday) > 0 {
		out = append(out, "on year days "+joinOrdinals(opt.Byyearday))
	}
	if len(opt.Byweekno) > 0 {
		out = append(out, "in week "+joinInts(opt.Byweekno))
	}
	if len(opt.Bymonth) > 0 {
		out = append(out, "in "+joinMonthNames(opt.Bymonth))
	}
	if len(opt.Byeaster) > 0 {
		out = append(out, "relative to Easter by "+joinInts(opt.Byeaster)+" days")
	}
	if len(opt.Bysetpos) > 0 {
		out = append(out, "taking the "+joinOrdinals(opt.Bysetpos)+" match")
	}

	return strings.Join(out, ", ")
}

// DescribeNext renders the rule's next occurrence after now as a phrase
// relative to now via humanize.RelTime ("3 days from now"), or "never" if
// the rule has no more occurrences (or hit its safety bound) after now.
func DescribeNext(r *RRule, now time.Time) string {
	next, err := r.After(now, false)
	if err != nil || next.IsZero() {
		return "never"
	}
	return humanize.RelTime(next, now, "ago", "from now")
}

func joinOrdinals(vals []int) string {
	strs := make([]string, len(vals))
	for i, v := range vals {
		switch {
		case v == -1:
			strs[i] = "last"
		case v < 0:
			strs[i] = humanize.Ordinal(-v) + "-to-last"
		default:
			strs[i] = humanize.Ordinal(v)
		}
	}
	return strings.Join(strs, ", ")
}

func joinMonthNames(vals []int) string {
	names := [...]string{"", "January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December"}
	strs := make([]string, len(vals))
	for i, v := range vals {
		if v >= 1 && v <= 12 {
			strs[i] = names[v]
		} else {
			strs[i] = strconv.Itoa(v)
		}
	}
	return strings.Join(strs, ", ")
}
