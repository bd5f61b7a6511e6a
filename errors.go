package rrule

import "errors"

// Sentinel errors surfaced to callers, per spec.md §6/§7's error taxonomy.
// ErrInvalidRule is produced eagerly by NewRRule and the StrTo* parsers
// before any iteration happens; the rest may arise while an iterator is
// running (or, for the two local-time errors, when NewRRule classifies
// dtstart).
// Wrap with fmt.Errorf("...: %w", ErrX) and unwrap with errors.Is.
var (
	// ErrInvalidRule means a Rule failed validation or parsing: an
	// out-of-range value, conflicting termination fields, or malformed
	// RFC 5545 text. BY-part/frequency combinations are not checked.
	ErrInvalidRule = errors.New("rrule: invalid rule")

	// ErrLimitExceeded means a caller-supplied limit (All's limit
	// parameter) was reached before the rule naturally terminated. It is
	// the mechanism by which a caller distinguishes "there may be more"
	// from "the rule ended".
	ErrLimitExceeded = errors.New("rrule: limit exceeded")

	// ErrIterationLimitExceeded means the engine's own internal safety
	// bound (spec.md §4.6: MaxYear or too many consecutive empty periods)
	// was hit, which in practice means the rule can never produce another
	// occurrence (e.g. BYMONTHDAY=30;BYMONTH=2).
	ErrIterationLimitExceeded = errors.New("rrule: iteration limit exceeded")

	// ErrAmbiguousLocalTime means a wall-clock time falls in a DST fold
	// (it maps to two instants) and the zone collaborator refused to pick
	// one.
	ErrAmbiguousLocalTime = errors.New("rrule: ambiguous local time")

	// ErrNonexistentLocalTime means a wall-clock time falls in a DST gap
	// (it maps to no instant).
	ErrNonexistentLocalTime = errors.New("rrule: nonexistent local time")
)
