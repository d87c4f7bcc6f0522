package cronx

import "time"

// Scheduler calculates the next N occurrences of a cron expression.
// It is the thin, stable surface internal/check, internal/stats,
// internal/diff, internal/budget and internal/cmd build on, backed by
// this package's own occurrence engine (engine.go) rather than any
// third-party scheduling library -- see classic.go for where
// robfig/cron is still exercised, as an independent cross-check.
type Scheduler interface {
	// Next calculates the next N occurrences of a cron expression starting from the given time.
	// Returns a slice of time.Time values representing when the cron job would run.
	// Returns an error if the expression is invalid or cannot be parsed.
	Next(expression string, from time.Time, count int) ([]time.Time, error)

	// Prev calculates the previous N occurrences before the given time,
	// in reverse-chronological order.
	Prev(expression string, before time.Time, count int) ([]time.Time, error)
}

// scheduler implements Scheduler.
type scheduler struct {
	parser   Parser
	dayOr    bool
	maxYears int
}

// NewScheduler creates a new Scheduler instance using Vixie OR
// semantics and the default search bound.
func NewScheduler() Scheduler {
	return &scheduler{
		parser:   NewParser(),
		dayOr:    true,
		maxYears: DefaultMaxYearsBetweenMatches,
	}
}

// Next implements Scheduler.
func (s *scheduler) Next(expression string, from time.Time, count int) ([]time.Time, error) {
	schedule, err := s.parser.Parse(expression)
	if err != nil {
		return nil, err
	}

	times := make([]time.Time, 0, count)
	current := from
	for i := 0; i < count; i++ {
		next, err := occurrenceAfter(schedule, current, s.dayOr, s.maxYears)
		if err != nil {
			return times, err
		}
		times = append(times, next)
		current = next
	}
	return times, nil
}

// Prev implements Scheduler.
func (s *scheduler) Prev(expression string, before time.Time, count int) ([]time.Time, error) {
	schedule, err := s.parser.Parse(expression)
	if err != nil {
		return nil, err
	}

	times := make([]time.Time, 0, count)
	current := before
	for i := 0; i < count; i++ {
		prev, err := occurrenceBefore(schedule, current, s.dayOr, s.maxYears)
		if err != nil {
			return times, err
		}
		times = append(times, prev)
		current = prev
	}
	return times, nil
}
