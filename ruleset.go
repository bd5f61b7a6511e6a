package rrule

import (
	"container/heap"
	"sort"
	"strings"
	"time"
)

// Set groups one or more RRules, raw RDATE instants, EXRULEs, and raw
// EXDATE instants into a single occurrence stream, per spec.md §4.7: the
// union of the include sources minus the union of the exclude sources. A
// Set's zero value is ready to use. Ground: the upstream rrule-go family's
// RRuleSet convention this repo's str_test.go already exercises — the
// teacher's own retrieved slice of rrule.go omits the type, so its method
// surface here is reconstructed to the exact contract that test demands.
type Set struct {
	dtstart    time.Time
	dtstartSet bool
	rrules     []*RRule
	exrules    []*RRule
	rdates     []time.Time
	exdates    []time.Time
}

// DTStart records the set's anchor instant. Set's own methods use it only
// for rendering String()'s DTSTART line — member rules carry their own
// DateStart; StrSliceToRRuleSetInLoc also anchors the rules it parses at it.
func (s *Set) DTStart(dt time.Time) {
	s.dtstart = dt
	s.dtstartSet = true
}

// GetDTStart returns the instant set by DTStart, or the zero time.
func (s *Set) GetDTStart() time.Time { return s.dtstart }

// RRule adds an include rule to the set.
func (s *Set) RRule(r *RRule) { s.rrules = append(s.rrules, r) }

// ExRule adds an exclude rule to the set: any instant it produces is
// dropped from the merged stream.
func (s *Set) ExRule(r *RRule) { s.exrules = append(s.exrules, r) }

// RDate adds a single include instant to the set.
func (s *Set) RDate(dt time.Time) { s.rdates = append(s.rdates, dt) }

// ExDate adds a single exclude instant to the set.
func (s *Set) ExDate(dt time.Time) { s.exdates = append(s.exdates, dt) }

// GetRRule, GetExRule, GetRDate, GetExDate expose the set's raw sources.
func (s *Set) GetRRule() []*RRule     { return s.rrules }
func (s *Set) GetExRule() []*RRule    { return s.exrules }
func (s *Set) GetRDate() []time.Time  { return s.rdates }
func (s *Set) GetExDate() []time.Time { return s.exdates }

// All, Between, Before and After deliberately keep the bare-value
// convenience shape (no error return) rather than RRule's error-aware
// one: Set is the RFC-5545-text-oriented grouping convenience this
// package has always offered, and an internal safety-bound trip degrades
// here to "no more occurrences" rather than a reported error.
func (s *Set) All() []time.Time {
	out, _ := collectAll(s.Iterator(), 0)
	return out
}

func (s *Set) Between(after, before time.Time, inclusive bool) []time.Time {
	out, _ := collectBetween(s.Iterator(), after, before, inclusive)
	return out
}

func (s *Set) Before(dt time.Time, inclusive bool) time.Time {
	t, _ := findBefore(s.Iterator(), dt, inclusive)
	return t
}

func (s *Set) After(dt time.Time, inclusive bool) time.Time {
	t, _ := findAfter(s.Iterator(), dt, inclusive)
	return t
}

// String renders s back to RFC 5545 calendar-component lines: an
// optional DTSTART line, then one RRULE/EXRULE line per member rule,
// then an EXDATE line and an RDATE line if those are non-empty.
func (s *Set) String() string {
	var lines []string
	if s.dtstartSet {
		lines = append(lines, "DTSTART"+dtstartPropertySuffix(s.dtstart))
	}
	for _, r := range s.rrules {
		lines = append(lines, "RRULE:"+r.String())
	}
	for _, r := range s.exrules {
		lines = append(lines, "EXRULE:"+r.String())
	}
	if len(s.exdates) != 0 {
		lines = append(lines, "EXDATE:"+joinTimes(s.exdates))
	}
	if len(s.rdates) != 0 {
		lines = append(lines, "RDATE:"+joinTimes(s.rdates))
	}
	return strings.Join(lines, "\n")
}

func dtstartPropertySuffix(t time.Time) string {
	if t.Location() == time.UTC {
		return ":" + timeToStr(t)
	}
	return ";TZID=" + t.Location().String() + ":" + t.Format("20060102T150405")
}

func joinTimes(ts []time.Time) string {
	strs := make([]string, len(ts))
	for i, t := range ts {
		strs[i] = timeToStr(t)
	}
	return strings.Join(strs, ",")
}

// Iterator returns a restartable Next closure over the set's merged
// occurrence stream: a container/heap n-way merge of every include
// source (each RRule's own iterator, plus the sorted RDATEs as one more
// source), with exclude sources (EXRULEs, EXDATEs) consulted lazily —
// an excluded instant is never materialized, only skipped past. Ground:
// spec.md §4.7's "lazy exclusion" requirement and the container/heap
// pattern standard to an n-way merge.
func (s *Set) Iterator() Next {
	include, includeErr := s.mergeHeap(s.rrules, s.rdates)
	exclude, excludeErr := s.mergeHeap(s.exrules, s.exdates)

	var lastEmitted time.Time
	haveLast := false
	firstErr := includeErr
	if firstErr == nil {
		firstErr = excludeErr
	}

	return func() (time.Time, bool, error) {
		if firstErr != nil {
			err := firstErr
			firstErr = nil
			return time.Time{}, false, err
		}

		for include.Len() > 0 {
			top := include.sources[0]
			t := top.cur
			top.advance()
			if top.err != nil {
				return time.Time{}, false, top.err
			}
			if top.done {
				heap.Pop(include)
			} else {
				heap.Fix(include, 0)
			}

			if haveLast && t.Equal(lastEmitted) {
				continue
			}

			for exclude.Len() > 0 && exclude.sources[0].cur.Before(t) {
				et := exclude.sources[0]
				et.advance()
				if et.err != nil {
					return time.Time{}, false, et.err
				}
				if et.done {
					heap.Pop(exclude)
				} else {
					heap.Fix(exclude, 0)
				}
			}
			if exclude.Len() > 0 && exclude.sources[0].cur.Equal(t) {
				continue
			}

			lastEmitted = t
			haveLast = true
			return t, true, nil
		}
		return time.Time{}, false, nil
	}
}

// mergeSource wraps a single occurrence stream (an RRule's Next closure,
// or a sorted slice of fixed instants) as a heap element: cur holds the
// next not-yet-emitted value from this source, advance() pulls the one
// after it. err is set, along with done, when the source stopped because
// its own Next reported an error (such as ErrIterationLimitExceeded)
// rather than naturally exhausting — spec.md §7's "propagates the first
// error from any of its sub-iterators".
type mergeSource struct {
	next Next
	cur  time.Time
	done bool
	err  error
}

func newMergeSource(next Next) *mergeSource {
	ms := &mergeSource{next: next}
	ms.advance()
	return ms
}

func (ms *mergeSource) advance() {
	t, ok, err := ms.next()
	if err != nil {
		ms.err = err
		ms.done = true
		return
	}
	if !ok {
		ms.done = true
		return
	}
	ms.cur = t
}

func sortedDatesSource(dates []time.Time) Next {
	sorted := append([]time.Time(nil), dates...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })
	i := 0
	return func() (time.Time, bool, error) {
		if i >= len(sorted) {
			return time.Time{}, false, nil
		}
		t := sorted[i]
		i++
		return t, true, nil
	}
}

// sourceHeap is a container/heap of mergeSources ordered by each source's
// next pending instant.
type sourceHeap struct {
	sources []*mergeSource
}

func (h *sourceHeap) Len() int            { return len(h.sources) }
func (h *sourceHeap) Less(i, j int) bool  { return h.sources[i].cur.Before(h.sources[j].cur) }
func (h *sourceHeap) Swap(i, j int)       { h.sources[i], h.sources[j] = h.sources[j], h.sources[i] }
func (h *sourceHeap) Push(x interface{})  { h.sources = append(h.sources, x.(*mergeSource)) }
func (h *sourceHeap) Pop() interface{} {
	old := h.sources
	n := len(old)
	item := old[n-1]
	h.sources = old[:n-1]
	return item
}

func (s *Set) mergeHeap(rules []*RRule, dates []time.Time) (*sourceHeap, error) {
	h := &sourceHeap{}
	for _, r := range rules {
		src := newMergeSource(r.Iterator())
		if src.err != nil {
			return h, src.err
		}
		if !src.done {
			h.sources = append(h.sources, src)
		}
	}
	if len(dates) != 0 {
		src := newMergeSource(sortedDatesSource(dates))
		if src.err != nil {
			return h, src.err
		}
		if !src.done {
			h.sources = append(h.sources, src)
		}
	}
	heap.Init(h)
	return h, nil
}
