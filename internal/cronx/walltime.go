package cronx

import "time"

// WallClock is the decomposed wall-clock representation the
// occurrence engine searches over. Field-by-field carry/borrow
// arithmetic is done directly on these integers; the only place a
// WallClock is converted back to an instant is ToTime, which moves a
// wall time in a DST spring-forward gap to the end of the gap and
// leaves fall-back folds to time.Date.
type WallClock struct {
	Year, Month, Day, Hour, Minute, Second int
}

// WallClockFromTime decomposes t in its own location.
func WallClockFromTime(t time.Time) WallClock {
	y, mo, d := t.Date()
	h, mi, s := t.Clock()
	return WallClock{Year: y, Month: int(mo), Day: d, Hour: h, Minute: mi, Second: s}
}

// ToTime re-composes the wall-clock point in loc. time.Date silently
// normalizes an out-of-range Day (e.g. day 32) by rolling into the
// next month, and a local time that falls in a DST gap is resolved by
// advancing to the first valid instant after it -- both behaviors the
// occurrence engine relies on.
func (w WallClock) ToTime(loc *time.Location) time.Time {
	t := time.Date(w.Year, time.Month(w.Month), w.Day, w.Hour, w.Minute, w.Second, 0, loc)
	want := time.Date(w.Year, time.Month(w.Month), w.Day, w.Hour, w.Minute, w.Second, 0, time.UTC)
	got := WallClockFromTime(t)
	if got == WallClockFromTime(want) {
		return t
	}
	// The wall time does not exist in loc: return the transition that
	// ends the gap, whichever side time.Date resolved it to.
	start, end := t.ZoneBounds()
	if got.ToTime(time.UTC).Before(want) {
		return end
	}
	return start
}
