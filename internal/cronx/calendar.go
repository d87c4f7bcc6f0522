package cronx

import "time"

// IsLeapYear reports whether year is a leap year under the Gregorian
// calendar rule.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

var daysInMonthTable = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// DaysInMonth returns the number of days in the given month (1-12) of
// year, honoring the leap-year rule for February.
func DaysInMonth(year, month int) int {
	if month == 2 && IsLeapYear(year) {
		return 29
	}
	return daysInMonthTable[month-1]
}

// LastDayOfMonth is an alias for DaysInMonth, named to match the
// "L" sentinel it resolves during occurrence search.
func LastDayOfMonth(year, month int) int {
	return DaysInMonth(year, month)
}

// Weekday returns the day of week for the given date, 0 = Sunday ..
// 6 = Saturday, matching time.Weekday's numbering.
func Weekday(year, month, day int) int {
	return int(time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Weekday())
}

// NthWeekdayOfMonth returns every day-of-month in (year, month) that
// falls on the given weekday (0 = Sunday .. 6 = Saturday), in
// ascending order. The result has length 4 or 5.
func NthWeekdayOfMonth(year, month, weekday int) []int {
	days := DaysInMonth(year, month)
	first := Weekday(year, month, 1)
	// offset to the first day-of-month landing on `weekday`
	firstMatch := 1 + (weekday-first+7)%7

	var out []int
	for d := firstMatch; d <= days; d += 7 {
		out = append(out, d)
	}
	return out
}

// LastWeekdayOfMonth returns the day-of-month of the last occurrence
// of weekday in (year, month).
func LastWeekdayOfMonth(year, month, weekday int) int {
	occurrences := NthWeekdayOfMonth(year, month, weekday)
	return occurrences[len(occurrences)-1]
}
