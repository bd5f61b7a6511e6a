package rrule

import (
	"fmt"
	"time"
)

// collectAll drains next into a slice, per spec.md §6's All. A positive
// limit caps the result at limit entries and reports ErrLimitExceeded if
// the sequence was still producing when the cap was hit; limit <= 0 means
// unbounded (bounded only by the sequence's own termination or the
// engine's safety net, which surfaces as ErrIterationLimitExceeded).
func collectAll(next Next, limit int) ([]time.Time, error) {
	var out []time.Time
	for {
		t, ok, err := next()
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, t)
		if limit > 0 && len(out) >= limit {
			if _, ok, err := next(); err != nil {
				return out, err
			} else if ok {
				return out, fmt.Errorf("%w: more than %d occurrences", ErrLimitExceeded, limit)
			}
			return out, nil
		}
	}
}

// collectBetween drains next into a slice of the occurrences falling in
// [after, before] (or (after, before), if !inclusive), per spec.md §6's
// Between. It relies on Monotonicity (spec.md §8) to stop as soon as an
// occurrence passes before.
func collectBetween(next Next, after, before time.Time, inclusive bool) ([]time.Time, error) {
	var out []time.Time
	for {
		t, ok, err := next()
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		if inclusive {
			if t.Before(after) {
				continue
			}
			if t.After(before) {
				return out, nil
			}
		} else {
			if !t.After(after) {
				continue
			}
			if !t.Before(before) {
				return out, nil
			}
		}
		out = append(out, t)
	}
}

// findAfter returns the first occurrence strictly after dt (or at-or-after
// dt, if inclusive), per spec.md §6's After.
func findAfter(next Next, dt time.Time, inclusive bool) (time.Time, error) {
	for {
		t, ok, err := next()
		if err != nil {
			return time.Time{}, err
		}
		if !ok {
			return time.Time{}, nil
		}
		if inclusive {
			if !t.Before(dt) {
				return t, nil
			}
		} else if t.After(dt) {
			return t, nil
		}
	}
}

// findBefore returns the last occurrence strictly before dt (or at-or-
// before dt, if inclusive), per spec.md §6's Before. It must drain the
// whole sequence up to the point it overshoots dt, since occurrences only
// ever arrive in increasing order (spec.md §8's Monotonicity).
func findBefore(next Next, dt time.Time, inclusive bool) (time.Time, error) {
	var best time.Time
	for {
		t, ok, err := next()
		if err != nil {
			return best, err
		}
		if !ok {
			return best, nil
		}
		if inclusive {
			if t.After(dt) {
				return best, nil
			}
		} else if !t.Before(dt) {
			return best, nil
		}
		best = t
	}
}
