package cronx

import "time"

// Cron is a stateful cursor over a parsed schedule, mirroring the
// classic croniter object: GetNext/GetPrev advance the cursor and
// return the new instant, GetCurrent/SetCurrent inspect or rebase it.
type Cron struct {
	schedule *Schedule
	loc      *time.Location
	dayOr    bool
	maxYears int
	current  time.Time
}

type cronOptions struct {
	locale              string
	secondAtBeginning   bool
	hashID              any
	expandFromStartTime bool
	startTime           time.Time
	dayOr               bool
	maxYears            int
}

// Option configures a Cron at construction time.
type Option func(*cronOptions)

// WithLocale selects the day/month alias registry (default "en").
func WithLocale(locale string) Option { return func(o *cronOptions) { o.locale = locale } }

// WithSecondAtBeginning disambiguates a 6-field expression as
// "sec min hour dom month dow" instead of "min hour dom month dow year".
func WithSecondAtBeginning(b bool) Option { return func(o *cronOptions) { o.secondAtBeginning = b } }

// WithHashID anchors "H" placeholders to a deterministic seed; nil,
// []byte or string.
func WithHashID(hashID any) Option { return func(o *cronOptions) { o.hashID = hashID } }

// WithExpandFromStartTime aligns bare "*/step" fields to start
// counting from the cursor's own start time instead of the field
// minimum.
func WithExpandFromStartTime(b bool) Option {
	return func(o *cronOptions) { o.expandFromStartTime = b }
}

// WithStartTime sets the cursor's initial position (default time.Now()).
func WithStartTime(t time.Time) Option { return func(o *cronOptions) { o.startTime = t } }

// WithDayOr selects Vixie OR semantics (default true) when both
// day-of-month and day-of-week are restricted; false selects AND.
func WithDayOr(b bool) Option { return func(o *cronOptions) { o.dayOr = b } }

// WithMaxYearsBetweenMatches bounds how far the occurrence search may
// range before giving up (default DefaultMaxYearsBetweenMatches).
func WithMaxYearsBetweenMatches(n int) Option { return func(o *cronOptions) { o.maxYears = n } }

// New parses expression and returns a cursor positioned at its start
// time (time.Now() unless WithStartTime is given).
func New(expression string, opts ...Option) (*Cron, error) {
	o := cronOptions{dayOr: true, maxYears: DefaultMaxYearsBetweenMatches, locale: "en"}
	for _, fn := range opts {
		fn(&o)
	}

	start := o.startTime
	if start.IsZero() {
		start = time.Now()
	}

	parser := NewParserWithLocale(o.locale)
	parseOpts := ParseOptions{
		Locale:            o.locale,
		SecondAtBeginning: o.secondAtBeginning,
		HashID:            o.hashID,
	}
	if o.expandFromStartTime {
		parseOpts.ExpandFromStartTime = start
	}

	schedule, err := parser.ParseWithOptions(expression, parseOpts)
	if err != nil {
		return nil, err
	}

	return &Cron{
		schedule: schedule,
		loc:      start.Location(),
		dayOr:    o.dayOr,
		maxYears: o.maxYears,
		current:  start,
	}, nil
}

// GetNext advances the cursor to the next matching instant strictly
// after the current one.
func (c *Cron) GetNext() (time.Time, error) {
	next, err := occurrenceAfter(c.schedule, c.current, c.dayOr, c.maxYears)
	if err != nil {
		return time.Time{}, err
	}
	c.current = next
	return next, nil
}

// GetPrev rewinds the cursor to the previous matching instant strictly
// before the current one.
func (c *Cron) GetPrev() (time.Time, error) {
	prev, err := occurrenceBefore(c.schedule, c.current, c.dayOr, c.maxYears)
	if err != nil {
		return time.Time{}, err
	}
	c.current = prev
	return prev, nil
}

// GetCurrent returns the cursor's position without moving it.
func (c *Cron) GetCurrent() time.Time { return c.current }

// SetCurrent rebases the cursor to t. Unless force is true, t must
// itself match the schedule -- GetNext/GetPrev are always strict
// (never return the current instant), so an arbitrary non-matching
// cursor position would silently change their first-call behavior;
// force opts into that explicitly.
func (c *Cron) SetCurrent(t time.Time, force bool) error {
	if !force {
		ok, err := Match(c.schedule, t, c.dayOr)
		if err != nil {
			return err
		}
		if !ok {
			return badDate("%s does not match this schedule; pass force=true to override", t)
		}
	}
	c.current = t
	return nil
}

// AllNext returns the next n matching instants in order, advancing
// the cursor.
func (c *Cron) AllNext(n int) ([]time.Time, error) {
	out := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		t, err := c.GetNext()
		if err != nil {
			return out, err
		}
		out = append(out, t)
	}
	return out, nil
}

// AllPrev returns the previous n matching instants in reverse-chronological
// order, rewinding the cursor.
func (c *Cron) AllPrev(n int) ([]time.Time, error) {
	out := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		t, err := c.GetPrev()
		if err != nil {
			return out, err
		}
		out = append(out, t)
	}
	return out, nil
}

// Schedule exposes the underlying parsed schedule, e.g. for the human
// explainer or validator packages.
func (c *Cron) Schedule() *Schedule { return c.schedule }
