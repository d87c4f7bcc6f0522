package cronx

import (
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// ClassicCompatible reports whether expression is expressible as a
// plain 5-field POSIX cron expression -- no seconds, no year, no H/R/L
// placeholders, no "#n"/"?" markers. Such expressions can be
// cross-checked against robfig/cron, a mature, independently
// maintained implementation of the same classic grammar.
func ClassicCompatible(expression string) bool {
	trimmed := strings.TrimSpace(expression)
	if strings.HasPrefix(trimmed, "@") {
		_, ok := keywordExpansions[strings.ToLower(trimmed)]
		return ok
	}
	if len(strings.Fields(trimmed)) != 5 {
		return false
	}
	upper := strings.ToUpper(trimmed)
	// Month and weekday names (e.g. FRI, JUL) contain marker letters,
	// so they are removed before the marker scan.
	for _, name := range []string{"JAN", "FEB", "MAR", "APR", "MAY", "JUN", "JUL", "AUG", "SEP", "OCT", "NOV", "DEC", "SUN", "MON", "TUE", "WED", "THU", "FRI", "SAT"} {
		upper = strings.ReplaceAll(upper, name, "")
	}
	for _, marker := range []string{"H", "R", "L", "#", "?"} {
		if strings.Contains(upper, marker) {
			return false
		}
	}
	return true
}

var classicParser = cron.NewParser(
	cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// ClassicNext computes the next occurrence using robfig/cron directly,
// bypassing this package's own occurrence engine entirely. It is used
// as an independent cross-check for classic 5-field expressions (see
// internal/check's CRON-013 diagnostic) -- never as the primary
// scheduling path, which is internal/cronx's own engine (engine.go).
func ClassicNext(expression string, from time.Time) (time.Time, error) {
	schedule, err := classicParser.Parse(expression)
	if err != nil {
		return time.Time{}, badCron("classic parser rejected %q: %v", expression, err)
	}
	return schedule.Next(from), nil
}
