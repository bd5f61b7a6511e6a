package rrule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// String renders r in RFC 5545 RRULE value syntax, from its original
// (pre-validation-default) options — so a field the caller never set is
// never echoed back. RFC suppresses the DTSTART=... field, for callers
// (such as Set) that track dtstart out of band. Ground: spec.md §4.1's
// "Rule" data model: grounded on this package's own ROption field order.
func (r *RRule) String() string {
	o := r.OrigOptions
	parts := []string{"FREQ=" + o.Freq.String()}

	if !o.RFC && !o.Dtstart.IsZero() {
		parts = append(parts, "DTSTART="+timeToStr(o.Dtstart))
	}
	if o.Interval != 0 {
		parts = append(parts, "INTERVAL="+strconv.Itoa(o.Interval))
	}
	if o.Wkst != (Weekday{}) {
		parts = append(parts, "WKST="+o.Wkst.String())
	}
	if o.Count != 0 {
		parts = append(parts, "COUNT="+strconv.Itoa(o.Count))
	}
	if !o.Until.IsZero() {
		parts = append(parts, "UNTIL="+timeToStr(o.Until))
	}
	if len(o.Bysetpos) != 0 {
		parts = append(parts, "BYSETPOS="+joinInts(o.Bysetpos))
	}
	if len(o.Bymonth) != 0 {
		parts = append(parts, "BYMONTH="+joinInts(o.Bymonth))
	}
	if len(o.Bymonthday) != 0 {
		parts = append(parts, "BYMONTHDAY="+joinInts(o.Bymonthday))
	}
	if len(o.Byyearday) != 0 {
		parts = append(parts, "BYYEARDAY="+joinInts(o.Byyearday))
	}
	if len(o.Byweekno) != 0 {
		parts = append(parts, "BYWEEKNO="+joinInts(o.Byweekno))
	}
	if len(o.Byweekday) != 0 {
		names := make([]string, len(o.Byweekday))
		for i, w := range o.Byweekday {
			names[i] = w.String()
		}
		parts = append(parts, "BYDAY="+strings.Join(names, ","))
	}
	if len(o.Byhour) != 0 {
		parts = append(parts, "BYHOUR="+joinInts(o.Byhour))
	}
	if len(o.Byminute) != 0 {
		parts = append(parts, "BYMINUTE="+joinInts(o.Byminute))
	}
	if len(o.Bysecond) != 0 {
		parts = append(parts, "BYSECOND="+joinInts(o.Bysecond))
	}
	if len(o.Byeaster) != 0 {
		parts = append(parts, "BYEASTER="+joinInts(o.Byeaster))
	}
	return strings.Join(parts, ";")
}

func joinInts(vs []int) string {
	strs := make([]string, len(vs))
	for i, v := range vs {
		strs[i] = strconv.Itoa(v)
	}
	return strings.Join(strs, ",")
}

// timeToStr renders t in RFC 5545's UTC basic format, e.g. 20180101T140000Z.
func timeToStr(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

var freqByName = map[string]Frequency{
	"YEARLY":   YEARLY,
	"MONTHLY":  MONTHLY,
	"WEEKLY":   WEEKLY,
	"DAILY":    DAILY,
	"HOURLY":   HOURLY,
	"MINUTELY": MINUTELY,
	"SECONDLY": SECONDLY,
}

var weekdayByCode = map[string]Weekday{
	"MO": MO, "TU": TU, "WE": WE, "TH": TH, "FR": FR, "SA": SA, "SU": SU,
}

// StrToRRule parses an RFC 5545 RRULE value (optionally including an
// inline DTSTART=... field) into a validated *RRule.
func StrToRRule(s string) (*RRule, error) {
	arg, err := parseROption(s)
	if err != nil {
		return nil, err
	}
	return NewRRule(arg)
}

// parseROption parses the `KEY=VALUE;KEY=VALUE...` body of an RRULE (or
// EXRULE) property value into an ROption. FREQ is mandatory; a key that is
// not one of the RRULE properties handled below is rejected.
func parseROption(s string) (ROption, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return ROption{}, fmt.Errorf("%w: empty rule string", ErrInvalidRule)
	}

	var arg ROption
	freqSet := false

	for _, pair := range strings.Split(trimmed, ";") {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 || kv[0] == "" || kv[1] == "" {
			return ROption{}, fmt.Errorf("%w: malformed property %q", ErrInvalidRule, pair)
		}
		key, val := kv[0], kv[1]

		var err error
		switch key {
		case "FREQ":
			f, ok := freqByName[val]
			if !ok {
				return ROption{}, fmt.Errorf("%w: unknown FREQ %q", ErrInvalidRule, val)
			}
			arg.Freq = f
			freqSet = true
		case "DTSTART":
			arg.Dtstart, err = parseBasicTimestamp(val, time.UTC)
		case "INTERVAL":
			arg.Interval, err = strconv.Atoi(val)
		case "WKST":
			arg.Wkst, err = parseWeekday(val)
		case "COUNT":
			arg.Count, err = strconv.Atoi(val)
		case "UNTIL":
			arg.Until, err = parseBasicTimestamp(val, time.UTC)
		case "BYSETPOS":
			arg.Bysetpos, err = parseIntList(val)
		case "BYMONTH":
			arg.Bymonth, err = parseIntList(val)
		case "BYMONTHDAY":
			arg.Bymonthday, err = parseIntList(val)
		case "BYYEARDAY":
			arg.Byyearday, err = parseIntList(val)
		case "BYWEEKNO":
			arg.Byweekno, err = parseIntList(val)
		case "BYDAY":
			arg.Byweekday, err = parseWeekdayList(val)
		case "BYHOUR":
			arg.Byhour, err = parseIntList(val)
		case "BYMINUTE":
			arg.Byminute, err = parseIntList(val)
		case "BYSECOND":
			arg.Bysecond, err = parseIntList(val)
		case "BYEASTER":
			arg.Byeaster, err = parseIntList(val)
		default:
			return ROption{}, fmt.Errorf("%w: unknown property %q", ErrInvalidRule, key)
		}
		if err != nil {
			return ROption{}, err
		}
	}

	if !freqSet {
		return ROption{}, fmt.Errorf("%w: FREQ is required", ErrInvalidRule)
	}
	return arg, nil
}

func parseIntList(val string) ([]int, error) {
	parts := strings.Split(val, ",")
	out := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an integer", ErrInvalidRule, p)
		}
		out[i] = n
	}
	return out, nil
}

func parseWeekdayList(val string) ([]Weekday, error) {
	parts := strings.Split(val, ",")
	out := make([]Weekday, len(parts))
	for i, p := range parts {
		w, err := parseWeekday(p)
		if err != nil {
			return nil, err
		}
		out[i] = w
	}
	return out, nil
}

// parseWeekday parses a BYDAY/WKST token like "MO", "+2FR" or "-1SU".
func parseWeekday(tok string) (Weekday, error) {
	if len(tok) < 2 {
		return Weekday{}, fmt.Errorf("%w: invalid weekday %q", ErrInvalidRule, tok)
	}
	code := tok[len(tok)-2:]
	wd, ok := weekdayByCode[code]
	if !ok {
		return Weekday{}, fmt.Errorf("%w: invalid weekday code %q", ErrInvalidRule, code)
	}
	nPart := tok[:len(tok)-2]
	if nPart == "" {
		return wd, nil
	}
	n, err := strconv.Atoi(nPart)
	if err != nil {
		return Weekday{}, fmt.Errorf("%w: invalid weekday ordinal %q", ErrInvalidRule, nPart)
	}
	return wd.Nth(n), nil
}

// parseBasicTimestamp parses an RFC 5545 DATE or DATE-TIME value: an
// 8-digit DATE (implicit midnight UTC), a 15-digit DATE-TIME suffixed Z
// (UTC, regardless of loc), or a bare 15-digit DATE-TIME interpreted in
// loc.
func parseBasicTimestamp(s string, loc *time.Location) (time.Time, error) {
	switch {
	case len(s) == 8:
		t, err := time.ParseInLocation("20060102", s, time.UTC)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidRule, err)
		}
		return t, nil
	case strings.HasSuffix(s, "Z"):
		t, err := time.Parse("20060102T150405Z", s)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidRule, err)
		}
		return t, nil
	default:
		t, err := time.ParseInLocation("20060102T150405", s, loc)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidRule, err)
		}
		return t, nil
	}
}

// processRRuleName validates that item begins with one of the five
// recognized iCalendar property names (DTSTART, RRULE, EXRULE, RDATE,
// EXDATE) and returns everything after the name and its separator
// character — the part a more specific parser (parseROption,
// strToDtStart, StrToDatesInLoc) knows how to read.
func processRRuleName(item string) (string, error) {
	trimmed := strings.TrimSpace(item)
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty property line", ErrInvalidRule)
	}
	idx := strings.IndexAny(trimmed, ";:")
	if idx <= 0 {
		return "", fmt.Errorf("%w: missing property name in %q", ErrInvalidRule, item)
	}
	name := trimmed[:idx]
	switch name {
	case "DTSTART", "RRULE", "EXRULE", "RDATE", "EXDATE":
	default:
		return "", fmt.Errorf("%w: unknown property %q", ErrInvalidRule, name)
	}
	return trimmed[idx+1:], nil
}

// strToDtStart parses a DTSTART property value (with the "DTSTART" name
// and its separator already stripped by processRRuleName): a bare
// timestamp, or a TZID=<zone>:<timestamp> pair.
func strToDtStart(s string, defaultLoc *time.Location) (time.Time, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || strings.HasPrefix(trimmed, "DTSTART") {
		return time.Time{}, fmt.Errorf("%w: invalid DTSTART value %q", ErrInvalidRule, s)
	}

	idx := strings.LastIndex(trimmed, ":")
	if idx < 0 {
		return parseBasicTimestamp(trimmed, defaultLoc)
	}

	paramsStr, valueStr := trimmed[:idx], trimmed[idx+1:]
	if !strings.HasPrefix(paramsStr, "TZID=") {
		return time.Time{}, fmt.Errorf("%w: invalid DTSTART parameter %q", ErrInvalidRule, paramsStr)
	}
	zone := strings.TrimPrefix(paramsStr, "TZID=")
	if zone == "" {
		return time.Time{}, fmt.Errorf("%w: empty TZID", ErrInvalidRule)
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}
	return parseBasicTimestamp(valueStr, loc)
}

// StrToDates parses an RDATE/EXDATE property value (UTC default zone)
// into a list of instants. See StrToDatesInLoc for the TZID/VALUE
// parameter grammar.
func StrToDates(s string) ([]time.Time, error) {
	return StrToDatesInLoc(s, time.UTC)
}

// StrToDatesInLoc parses an RDATE/EXDATE property value — an optional
// "PARAM=value;..." prefix (TZID=<zone>, VALUE=DATE|DATE-TIME; VALUE=
// PERIOD is rejected, periods are a Non-goal) followed by ":" and a
// comma-separated instant list — into a list of instants. A bare value
// with no params is parsed in defaultLoc.
func StrToDatesInLoc(s string, defaultLoc *time.Location) ([]time.Time, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty date-list value", ErrInvalidRule)
	}

	var paramsStr, valuesStr string
	if idx := strings.LastIndex(trimmed, ":"); idx >= 0 {
		paramsStr, valuesStr = trimmed[:idx], trimmed[idx+1:]
	} else {
		valuesStr = trimmed
	}

	loc := defaultLoc
	if paramsStr != "" {
		for _, tok := range strings.Split(paramsStr, ";") {
			if tok == "" {
				return nil, fmt.Errorf("%w: malformed parameter in %q", ErrInvalidRule, paramsStr)
			}
			kv := strings.SplitN(tok, "=", 2)
			if len(kv) != 2 || kv[0] == "" || kv[1] == "" {
				return nil, fmt.Errorf("%w: malformed parameter %q", ErrInvalidRule, tok)
			}
			switch strings.ToUpper(kv[0]) {
			case "TZID":
				l, err := time.LoadLocation(kv[1])
				if err != nil {
					return nil, fmt.Errorf("%w: %v", ErrInvalidRule, err)
				}
				loc = l
			case "VALUE":
				switch kv[1] {
				case "DATE", "DATE-TIME":
				default:
					return nil, fmt.Errorf("%w: unsupported VALUE type %q", ErrInvalidRule, kv[1])
				}
			default:
				return nil, fmt.Errorf("%w: unknown parameter %q", ErrInvalidRule, kv[0])
			}
		}
	}

	parts := strings.Split(valuesStr, ",")
	out := make([]time.Time, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, fmt.Errorf("%w: empty instant in date-list", ErrInvalidRule)
		}
		t, err := parseBasicTimestamp(p, loc)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// StrToRRuleSet parses a multi-line RFC 5545 calendar component body
// (DTSTART/RRULE/EXRULE/RDATE/EXDATE lines, one per line) into a *Set.
func StrToRRuleSet(s string) (*Set, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("%w: empty rule set string", ErrInvalidRule)
	}
	return StrSliceToRRuleSet(strings.Split(s, "\n"))
}

// StrSliceToRRuleSet is StrToRRuleSet with the input pre-split into
// lines, defaulting any zone-less RDATE/EXDATE instant to UTC (or to the
// set's own DTSTART zone, if a DTSTART line is present).
func StrSliceToRRuleSet(lines []string) (*Set, error) {
	return StrSliceToRRuleSetInLoc(lines, time.UTC)
}

// StrSliceToRRuleSetInLoc is StrSliceToRRuleSet with an explicit default
// zone for zone-less RDATE/EXDATE instants, overridden by the set's own
// DTSTART zone when a DTSTART line is present.
func StrSliceToRRuleSetInLoc(lines []string, defaultLoc *time.Location) (*Set, error) {
	s := &Set{}
	loc := defaultLoc

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || !strings.HasPrefix(trimmed, "DTSTART") {
			continue
		}
		payload, err := processRRuleName(trimmed)
		if err != nil {
			return nil, err
		}
		dt, err := strToDtStart(payload, defaultLoc)
		if err != nil {
			return nil, err
		}
		s.DTStart(dt)
		loc = dt.Location()
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "DTSTART") {
			continue
		}
		payload, err := processRRuleName(trimmed)
		if err != nil {
			return nil, err
		}

		switch {
		case strings.HasPrefix(trimmed, "RRULE"):
			r, err := newSetMemberRule(payload, s)
			if err != nil {
				return nil, err
			}
			s.RRule(r)
		case strings.HasPrefix(trimmed, "EXRULE"):
			r, err := newSetMemberRule(payload, s)
			if err != nil {
				return nil, err
			}
			s.ExRule(r)
		case strings.HasPrefix(trimmed, "RDATE"):
			dates, err := StrToDatesInLoc(payload, loc)
			if err != nil {
				return nil, err
			}
			for _, d := range dates {
				s.RDate(d)
			}
		case strings.HasPrefix(trimmed, "EXDATE"):
			dates, err := StrToDatesInLoc(payload, loc)
			if err != nil {
				return nil, err
			}
			for _, d := range dates {
				s.ExDate(d)
			}
		}
	}

	return s, nil
}

// newSetMemberRule parses an RRULE/EXRULE property value as an RFC-
// compliant rule (no inline DTSTART field echoed by String()) anchored
// at the enclosing set's DTSTART, if any.
func newSetMemberRule(payload string, s *Set) (*RRule, error) {
	arg, err := parseROption(payload)
	if err != nil {
		return nil, err
	}
	arg.RFC = true
	if s.dtstartSet {
		arg.Dtstart = s.dtstart
	}
	return NewRRule(arg)
}
