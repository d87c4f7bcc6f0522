package cronx

import "time"

// Range returns a range-over-func iterator that yields every matching
// instant between start and stop (C7 bounded range iterator). When
// forward is true it yields in ascending order starting just after
// start and stopping before stop; when false it yields in descending
// order starting just before start and stopping after stop.
func Range(sched *Schedule, start, stop time.Time, dayOr bool, forward bool) func(yield func(time.Time) bool) {
	return func(yield func(time.Time) bool) {
		cur := start
		for {
			var next time.Time
			var err error
			if forward {
				next, err = occurrenceAfter(sched, cur, dayOr, DefaultMaxYearsBetweenMatches)
				if err != nil || !next.Before(stop) {
					return
				}
			} else {
				next, err = occurrenceBefore(sched, cur, dayOr, DefaultMaxYearsBetweenMatches)
				if err != nil || !next.After(stop) {
					return
				}
			}
			if !yield(next) {
				return
			}
			cur = next
		}
	}
}
