package rrule

import (
	"sort"
	"time"
)

// applySetPos implements spec.md §4.5: sort the period's surviving
// candidates (day x time-of-day, in that priority) ascending by absolute
// instant, then for each position p in bysetpos pick index p-1 (p>0) or
// len+p (p<0), dropping out-of-range picks and deduplicating. Ground: the
// Bysetpos branch of the teacher's rIterator.generate.
func (ctx *yearContext) applySetPos(bysetpos []int, dayset []*int, start, end int, timeset []time.Time) []time.Time {
	if len(timeset) == 0 {
		return nil
	}

	var days []int
	for _, d := range dayset[start:end] {
		if d != nil {
			days = append(days, *d)
		}
	}
	if len(days) == 0 {
		return nil
	}

	total := len(days) * len(timeset)
	var picked []time.Time
	for _, pos := range bysetpos {
		var idx int
		if pos > 0 {
			idx = pos - 1
		} else {
			idx = total + pos
		}
		if idx < 0 || idx >= total {
			continue
		}
		dayIdx, timeIdx := idx/len(timeset), idx%len(timeset)
		day := days[dayIdx]
		clock := timeset[timeIdx]
		date := ctx.firstyday.AddDate(0, 0, day)
		res := time.Date(date.Year(), date.Month(), date.Day(),
			clock.Hour(), clock.Minute(), clock.Second(), clock.Nanosecond(), clock.Location())
		if !containsTime(picked, res) {
			picked = append(picked, res)
		}
	}
	sort.Sort(byInstant(picked))
	return picked
}

func containsTime(haystack []time.Time, needle time.Time) bool {
	for _, t := range haystack {
		if t.Equal(needle) {
			return true
		}
	}
	return false
}

type byInstant []time.Time

func (s byInstant) Len() int           { return len(s) }
func (s byInstant) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }
func (s byInstant) Less(i, j int) bool { return s[i].Before(s[j]) }
