package cronx

// FieldIndex identifies one of the seven positional fields a cron
// expression may carry. Five-field expressions only populate Minute
// through DayOfWeek; Second and Year are populated once the schema
// grows to six or seven tokens.
type FieldIndex int

const (
	Minute FieldIndex = iota
	Hour
	DayOfMonth
	Month
	DayOfWeek
	Second
	Year

	fieldCount
)

// Cron field value ranges
const (
	// MinMinute is the minimum minute value (0)
	MinMinute = 0
	// MaxMinute is the maximum minute value (59)
	MaxMinute = 59
	// MinHour is the minimum hour value (0)
	MinHour = 0
	// MaxHour is the maximum hour value (23)
	MaxHour = 23
	// MinDayOfMonth is the minimum day of month value (1)
	MinDayOfMonth = 1
	// MaxDayOfMonth is the maximum day of month value (31)
	MaxDayOfMonth = 31
	// MinMonth is the minimum month value (1)
	MinMonth = 1
	// MaxMonth is the maximum month value (12)
	MaxMonth = 12
	// MinDayOfWeek is the minimum day of week value (0, Sunday)
	MinDayOfWeek = 0
	// MaxDayOfWeek is the maximum day of week value (6, Saturday)
	MaxDayOfWeek = 6
	// MaxDayOfWeekInput is accepted on input before canonicalization;
	// both 0 and 7 mean Sunday.
	MaxDayOfWeekInput = 7

	// MinSecond and MaxSecond bound the optional seconds field.
	MinSecond = 0
	MaxSecond = 59

	// MinYear and MaxYear bound the optional year field.
	MinYear = 1970
	MaxYear = 2099
)

// fieldRange describes the legal closed interval for a field index,
// using the input-side maximum (e.g. day-of-week accepts 0-7).
type fieldRange struct {
	min, max int
}

var fieldRanges = [fieldCount]fieldRange{
	Minute:     {MinMinute, MaxMinute},
	Hour:       {MinHour, MaxHour},
	DayOfMonth: {MinDayOfMonth, MaxDayOfMonth},
	Month:      {MinMonth, MaxMonth},
	DayOfWeek:  {MinDayOfWeek, MaxDayOfWeekInput},
	Second:     {MinSecond, MaxSecond},
	Year:       {MinYear, MaxYear},
}

func (idx FieldIndex) legalRange() fieldRange { return fieldRanges[idx] }

// DefaultMaxYearsBetweenMatches bounds how far GetNext/GetPrev will
// search before giving up with ErrBadDate.
const DefaultMaxYearsBetweenMatches = 50

// keywordExpansions maps whole-expression "@" keywords to their
// classic 5-field equivalent, matching the Vixie cron aliases (e.g.
// @daily -> "0 0 * * *"). This is the expansion used when no hash seed
// is configured.
var keywordExpansions = map[string][5]string{
	"@yearly":   {"0", "0", "1", "1", "*"},
	"@annually": {"0", "0", "1", "1", "*"},
	"@monthly":  {"0", "0", "1", "*", "*"},
	"@weekly":   {"0", "0", "*", "*", "0"},
	"@daily":    {"0", "0", "*", "*", "*"},
	"@midnight": {"0", "0", "*", "*", "*"},
	"@hourly":   {"0", "*", "*", "*", "*"},
}

// hashKeywordExpansions maps the same "@" keywords to their H-placeholder
// form, used when a hash seed is configured (WithHashID / ParseOptions.HashID
// set). Per spec.md sec 4.3, hash mode spreads keyword schedules across
// their period instead of pinning them to the top of it (e.g. @daily
// resolves to a stable, seed-derived time of day rather than midnight).
var hashKeywordExpansions = map[string][5]string{
	"@yearly":   {"H", "H", "H", "H", "*"},
	"@annually": {"H", "H", "H", "H", "*"},
	"@monthly":  {"H", "H", "H", "*", "*"},
	"@weekly":   {"H", "H", "*", "*", "H"},
	"@daily":    {"H", "H", "*", "*", "*"},
	"@midnight": {"H", "H(0-2)", "*", "*", "*"},
	"@hourly":   {"H", "*", "*", "*", "*"},
}
