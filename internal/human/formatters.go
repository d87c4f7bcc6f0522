package human

import (
	"fmt"
	"strings"

	"github.com/joaquimrocha/croniter-go/internal/cronx"
)

// formatHour formats hour as HH:00
func formatHour(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

// formatHourEnd formats hour as HH:59 (end of hour range)
func formatHourEnd(hour int) string {
	return fmt.Sprintf("%02d:59", hour)
}

// formatTime formats hour and minute as HH:MM
func formatTime(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// formatList formats a slice of strings with Oxford comma
func formatList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return fmt.Sprintf("%s and %s", items[0], items[1])
	default:
		last := items[len(items)-1]
		rest := items[:len(items)-1]
		return fmt.Sprintf("%s, and %s", strings.Join(rest, ", "), last)
	}
}

// dayName returns the name for a day of week (0=Sunday, 6=Saturday)
func dayName(day int) string {
	days := []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
	if day >= 0 && day < len(days) {
		return days[day]
	}
	return fmt.Sprintf("day%d", day)
}

// formatMonth returns the name for a month (1=January, 12=December)
func formatMonth(month int) string {
	months := []string{
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	}
	if month >= 1 && month <= 12 {
		return months[month-1]
	}
	return fmt.Sprintf("month%d", month)
}

// ordinal returns the ordinal word for a number (1st, 2nd, 3rd, etc.)
func ordinal(n int) string {
	return fmt.Sprintf("%d%s", n, ordinalSuffix(n))
}

// isHashOrRandomToken reports whether any comma-separated piece of a raw
// field expression begins with the H or R placeholder syntax (H, H(a-b),
// H/step, R, R(a-b)). No literal month or weekday name starts with H or R,
// so this is an unambiguous signal that the field's resolved value was
// seed- or randomly-derived rather than written out by hand.
func isHashOrRandomToken(raw string) bool {
	for _, piece := range strings.Split(raw, ",") {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		switch piece[0] {
		case 'H', 'h', 'R', 'r':
			return true
		}
	}
	return false
}

// formatDOWModifiers renders the "#n"/"L<d>" markers attached to a
// day-of-week field, e.g. "the 2nd Friday of the month" or "the last
// Friday of the month".
func formatDOWModifiers(mods []cronx.DOWModifier) string {
	if len(mods) == 0 {
		return ""
	}
	descs := make([]string, len(mods))
	for i, m := range mods {
		if m.Last {
			descs[i] = fmt.Sprintf("the last %s of the month", dayName(m.Weekday))
		} else {
			descs[i] = fmt.Sprintf("the %s %s of the month", ordinal(m.Nth), dayName(m.Weekday))
		}
	}
	return formatList(descs)
}

// ordinalSuffix returns the ordinal suffix for a day number (1st, 2nd, 3rd, etc.)
func ordinalSuffix(day int) string {
	// Numbers ending in 11, 12, or 13 always use "th" (e.g., 11th, 12th, 13th, 111th, 112th, 113th)
	lastTwoDigits := day % 100
	if lastTwoDigits >= 11 && lastTwoDigits <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}
