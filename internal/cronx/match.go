package cronx

import "time"

// Match reports whether t itself is a matching instant for sched. It
// is implemented as a get_prev round trip: step one granularity unit
// past t, search backward, and check whether the result lands exactly
// on t (C8).
func Match(sched *Schedule, t time.Time, dayOr bool) (bool, error) {
	gran := time.Minute
	if sched.HasSeconds() {
		gran = time.Second
	}
	prev, err := occurrenceBefore(sched, t.Add(gran), dayOr, DefaultMaxYearsBetweenMatches)
	if err != nil {
		return false, nil
	}
	return prev.Equal(truncateToGranularity(t, sched)), nil
}

// MatchRange reports whether sched has any matching instant in
// [start, end).
func MatchRange(sched *Schedule, start, end time.Time, dayOr bool) (bool, error) {
	gran := time.Minute
	if sched.HasSeconds() {
		gran = time.Second
	}
	base := truncateToGranularity(start, sched)
	if base.Equal(start) {
		base = base.Add(-gran)
	}
	next, err := occurrenceAfter(sched, base, dayOr, DefaultMaxYearsBetweenMatches)
	if err != nil {
		return false, nil
	}
	return !next.Before(start) && next.Before(end), nil
}

// truncateToGranularity drops sub-granularity precision from t so
// Match compares at the same resolution the engine searches at.
func truncateToGranularity(t time.Time, sched *Schedule) time.Time {
	if sched.HasSeconds() {
		return t.Truncate(time.Second)
	}
	return t.Truncate(time.Minute)
}
