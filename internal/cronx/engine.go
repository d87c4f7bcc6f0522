package cronx

import "time"

// occurrenceAfter finds the earliest instant strictly after from that
// satisfies sched (C6 occurrence engine, forward direction). Rather
// than stepping second-by-second, it carries overflow from the
// smallest field upward: whenever a field has no matching value at or
// after its current value, the next field up is bumped and everything
// below it resets, and the search restarts from the top. Since every
// field domain is finite and sorted, each such carry makes bounded
// progress, and the year-span guard in maxYears stops a schedule that
// can never match (e.g. day 31 in a Month field restricted to
// February) from looping forever.
func occurrenceAfter(sched *Schedule, from time.Time, dayOr bool, maxYears int) (time.Time, error) {
	loc := from.Location()
	hasSeconds := sched.HasSeconds()

	cur := WallClockFromTime(from)
	if hasSeconds {
		cur.Second++
	} else {
		cur.Second = 0
		cur.Minute++
	}

	startYear := cur.Year
	monthValues := sched.Month.Values()
	hourValues := sched.Hour.Values()
	minuteValues := sched.Minute.Values()
	var secondValues []int
	if hasSeconds {
		secondValues = sched.Second.Values()
	}
	var yearValues []int
	if sched.HasYear() {
		yearValues = sched.Year.Values()
	}

	for {
		if maxYears > 0 && cur.Year-startYear > maxYears {
			return time.Time{}, badDate("no matching date within %d years of %s", maxYears, from)
		}

		if yearValues != nil {
			ny, ok := ceilInDomain(yearValues, cur.Year)
			if !ok {
				return time.Time{}, badDate("no matching year at or after %d", cur.Year)
			}
			if ny != cur.Year {
				cur = WallClock{Year: ny, Month: 1, Day: 1}
				continue
			}
		}

		nm, ok := ceilInDomain(monthValues, cur.Month)
		if !ok {
			cur = WallClock{Year: cur.Year + 1, Month: monthValues[0], Day: 1}
			continue
		}
		if nm != cur.Month {
			cur = WallClock{Year: cur.Year, Month: nm, Day: 1}
			continue
		}

		daysInMonth := DaysInMonth(cur.Year, cur.Month)
		if cur.Day > daysInMonth {
			cur = carryMonth(cur, monthValues, 1)
			continue
		}
		foundDay := 0
		for day := cur.Day; day <= daysInMonth; day++ {
			if domainDayValid(cur.Year, cur.Month, day, sched.DayOfMonth, sched.DayOfWeek, dayOr) {
				foundDay = day
				break
			}
		}
		if foundDay == 0 {
			cur = carryMonth(cur, monthValues, 1)
			continue
		}
		if foundDay != cur.Day {
			cur = WallClock{Year: cur.Year, Month: cur.Month, Day: foundDay}
			continue
		}

		nh, ok := ceilInDomain(hourValues, cur.Hour)
		if !ok {
			cur = WallClock{Year: cur.Year, Month: cur.Month, Day: cur.Day + 1}
			continue
		}
		if nh != cur.Hour {
			cur.Hour, cur.Minute, cur.Second = nh, 0, 0
			continue
		}

		nmin, ok := ceilInDomain(minuteValues, cur.Minute)
		if !ok {
			cur = WallClock{Year: cur.Year, Month: cur.Month, Day: cur.Day, Hour: cur.Hour + 1}
			continue
		}
		if nmin != cur.Minute {
			cur.Minute, cur.Second = nmin, 0
			continue
		}

		if hasSeconds {
			ns, ok := ceilInDomain(secondValues, cur.Second)
			if !ok {
				cur = WallClock{Year: cur.Year, Month: cur.Month, Day: cur.Day, Hour: cur.Hour, Minute: cur.Minute + 1}
				continue
			}
			if ns != cur.Second {
				cur.Second = ns
				continue
			}
		}

		return cur.ToTime(loc), nil
	}
}

// occurrenceBefore is occurrenceAfter's mirror image: it borrows from
// the next field up instead of carrying into it, and searches each
// field downward instead of upward.
func occurrenceBefore(sched *Schedule, from time.Time, dayOr bool, maxYears int) (time.Time, error) {
	loc := from.Location()
	hasSeconds := sched.HasSeconds()

	cur := WallClockFromTime(from)
	if hasSeconds {
		cur.Second--
	} else {
		cur.Second = 0
		cur.Minute--
	}

	startYear := cur.Year
	monthValues := sched.Month.Values()
	hourValues := sched.Hour.Values()
	minuteValues := sched.Minute.Values()
	var secondValues []int
	if hasSeconds {
		secondValues = sched.Second.Values()
	}
	var yearValues []int
	if sched.HasYear() {
		yearValues = sched.Year.Values()
	}

	for {
		if maxYears > 0 && startYear-cur.Year > maxYears {
			return time.Time{}, badDate("no matching date within %d years of %s", maxYears, from)
		}

		if yearValues != nil {
			py, ok := floorInDomain(yearValues, cur.Year)
			if !ok {
				return time.Time{}, badDate("no matching year at or before %d", cur.Year)
			}
			if py != cur.Year {
				cur = WallClock{Year: py, Month: 12, Day: 31, Hour: 23, Minute: 59, Second: 59}
				continue
			}
		}

		pm, ok := floorInDomain(monthValues, cur.Month)
		if !ok {
			last := monthValues[len(monthValues)-1]
			cur = WallClock{Year: cur.Year - 1, Month: last, Day: 31, Hour: 23, Minute: 59, Second: 59}
			continue
		}
		if pm != cur.Month {
			cur = WallClock{Year: cur.Year, Month: pm, Day: 31, Hour: 23, Minute: 59, Second: 59}
			continue
		}

		daysInMonth := DaysInMonth(cur.Year, cur.Month)
		if cur.Day > daysInMonth {
			cur.Day = daysInMonth
		}
		if cur.Day < 1 {
			cur = borrowMonth(cur, monthValues)
			continue
		}
		foundDay := 0
		for day := cur.Day; day >= 1; day-- {
			if domainDayValid(cur.Year, cur.Month, day, sched.DayOfMonth, sched.DayOfWeek, dayOr) {
				foundDay = day
				break
			}
		}
		if foundDay == 0 {
			cur = borrowMonth(cur, monthValues)
			continue
		}
		if foundDay != cur.Day {
			cur = WallClock{Year: cur.Year, Month: cur.Month, Day: foundDay, Hour: 23, Minute: 59, Second: 59}
			continue
		}

		ph, ok := floorInDomain(hourValues, cur.Hour)
		if !ok {
			cur = WallClock{Year: cur.Year, Month: cur.Month, Day: cur.Day - 1, Hour: 23, Minute: 59, Second: 59}
			continue
		}
		if ph != cur.Hour {
			cur.Hour, cur.Minute, cur.Second = ph, 59, 59
			continue
		}

		pmin, ok := floorInDomain(minuteValues, cur.Minute)
		if !ok {
			cur = WallClock{Year: cur.Year, Month: cur.Month, Day: cur.Day, Hour: cur.Hour - 1, Minute: 59, Second: 59}
			continue
		}
		if pmin != cur.Minute {
			cur.Minute, cur.Second = pmin, 59
			continue
		}

		if hasSeconds {
			ps, ok := floorInDomain(secondValues, cur.Second)
			if !ok {
				cur = WallClock{Year: cur.Year, Month: cur.Month, Day: cur.Day, Hour: cur.Hour, Minute: cur.Minute - 1, Second: 59}
				continue
			}
			if ps != cur.Second {
				cur.Second = ps
				continue
			}
		}

		if !hasSeconds {
			cur.Second = 0
		}
		return cur.ToTime(loc), nil
	}
}

func carryMonth(cur WallClock, monthValues []int, _ int) WallClock {
	nm, ok := ceilInDomain(monthValues, cur.Month+1)
	if !ok {
		return WallClock{Year: cur.Year + 1, Month: monthValues[0], Day: 1}
	}
	return WallClock{Year: cur.Year, Month: nm, Day: 1}
}

func borrowMonth(cur WallClock, monthValues []int) WallClock {
	pm, ok := floorInDomain(monthValues, cur.Month-1)
	if !ok {
		last := monthValues[len(monthValues)-1]
		return WallClock{Year: cur.Year - 1, Month: last, Day: 31, Hour: 23, Minute: 59, Second: 59}
	}
	return WallClock{Year: cur.Year, Month: pm, Day: 31, Hour: 23, Minute: 59, Second: 59}
}

// domainDayValid reports whether (year, month, day) satisfies the
// day-of-month / day-of-week portion of the schedule, combining them
// with Vixie's OR rule (dayOr true, the classic and default cron
// behavior) or AND (dayOr false) when both fields are restricted.
func domainDayValid(year, month, day int, dom, dow Field, dayOr bool) bool {
	domRestricted := !dom.IsEvery()
	dowRestricted := !dow.IsEvery()

	switch {
	case !domRestricted && !dowRestricted:
		return true
	case domRestricted && !dowRestricted:
		return matchesDOM(dom, year, month, day)
	case !domRestricted && dowRestricted:
		return matchesDOW(dow, year, month, day)
	default:
		if dayOr {
			return matchesDOM(dom, year, month, day) || matchesDOW(dow, year, month, day)
		}
		return matchesDOM(dom, year, month, day) && matchesDOW(dow, year, month, day)
	}
}

func matchesDOM(dom Field, year, month, day int) bool {
	if dom.HasLast() && day == LastDayOfMonth(year, month) {
		return true
	}
	if ef, ok := dom.(*expandedField); ok {
		return ef.contains(day)
	}
	for _, v := range dom.ListValues() {
		if v == day {
			return true
		}
	}
	return false
}

func matchesDOW(dow Field, year, month, day int) bool {
	wd := Weekday(year, month, day)
	contained := false
	if ef, ok := dow.(*expandedField); ok {
		contained = ef.contains(wd)
	} else {
		for _, v := range dow.ListValues() {
			if v == wd {
				contained = true
				break
			}
		}
	}
	if contained {
		return true
	}
	for _, m := range dow.DOWModifiers() {
		if m.Weekday != wd {
			continue
		}
		if m.Last {
			if day == LastWeekdayOfMonth(year, month, wd) {
				return true
			}
			continue
		}
		occurrences := NthWeekdayOfMonth(year, month, wd)
		idx := m.Nth - 1
		if idx >= 0 && idx < len(occurrences) && occurrences[idx] == day {
			return true
		}
	}
	return false
}

// ceilInDomain returns the smallest value in the sorted slice values
// that is >= cur, and false if none exists.
func ceilInDomain(values []int, cur int) (int, bool) {
	lo, hi := 0, len(values)
	for lo < hi {
		mid := (lo + hi) / 2
		if values[mid] < cur {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo == len(values) {
		return 0, false
	}
	return values[lo], true
}

// floorInDomain returns the largest value in the sorted slice values
// that is <= cur, and false if none exists.
func floorInDomain(values []int, cur int) (int, bool) {
	lo, hi := 0, len(values)
	for lo < hi {
		mid := (lo + hi) / 2
		if values[mid] <= cur {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo == 0 {
		return 0, false
	}
	return values[lo-1], true
}
