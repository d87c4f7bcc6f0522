package cronx

import (
	"strings"
	"sync"
	"time"
)

// Schedule represents a parsed cron schedule with field information.
type Schedule struct {
	Original   string // The original cron expression string
	Second     Field  // Second field (MinSecond-MaxSecond), nil unless the expression carries one
	Minute     Field  // Minute field (MinMinute-MaxMinute)
	Hour       Field  // Hour field (MinHour-MaxHour)
	DayOfMonth Field  // Day of month field (MinDayOfMonth-MaxDayOfMonth)
	Month      Field  // Month field (MinMonth-MaxMonth)
	DayOfWeek  Field  // Day of week field (MinDayOfWeek-MaxDayOfWeek, Sunday=0)
	Year       Field  // Year field (MinYear-MaxYear), nil unless the expression carries one

	hasSecond bool
	hasYear   bool
}

// HasSeconds reports whether the parsed expression carried an explicit
// seconds field (6-field-with-second_at_beginning or 7-field form).
func (s *Schedule) HasSeconds() bool { return s.hasSecond }

// HasYear reports whether the parsed expression carried an explicit
// year field (6-field or 7-field form).
func (s *Schedule) HasYear() bool { return s.hasYear }

// ParseOptions configures how a single expression is expanded. The
// zero value parses a plain 5/6/7-field expression with no hash
// anchor and classic (field-minimum) step alignment.
type ParseOptions struct {
	// Locale selects the day/month alias registry. Empty means "en".
	Locale string

	// SecondAtBeginning disambiguates a 6-field expression as
	// "sec min hour dom month dow" instead of the default
	// "min hour dom month dow year".
	SecondAtBeginning bool

	// HashID anchors H placeholders; nil, []byte or string.
	HashID any

	// ExpandFromStartTime, when non-zero, aligns any bare "*/step"
	// field to start counting from that instant's own field value
	// instead of the field's minimum.
	ExpandFromStartTime time.Time
}

// Parser is the abstraction layer for cron expression parsing.
type Parser interface {
	Parse(expression string) (*Schedule, error)
	ParseWithOptions(expression string, opts ParseOptions) (*Schedule, error)
}

type cacheKey struct {
	expression string
	locale     string
	secondAt   bool
}

// parser implements Parser.
type parser struct {
	locale  string
	symbols SymbolRegistry
	cache   map[cacheKey]*Schedule
	cacheMu sync.RWMutex
}

// NewParser creates a new cron expression parser with English locale (default).
func NewParser() Parser {
	return NewParserWithLocale("en")
}

// NewParserWithLocale creates a new cron expression parser with a specific locale.
func NewParserWithLocale(locale string) Parser {
	symbols, _ := GetSymbolRegistry(locale)
	return &parser{
		locale:  locale,
		symbols: symbols,
		cache:   make(map[cacheKey]*Schedule),
	}
}

// Parse parses a cron expression (5/6/7-field form or @keyword) with
// default options. Results are cached.
func (p *parser) Parse(expression string) (*Schedule, error) {
	return p.ParseWithOptions(expression, ParseOptions{})
}

// ParseWithOptions parses expression honoring the hash anchor and
// start-time step alignment in opts. Only the no-HashID/no-start-time
// case is cached, since those results are independent of call-site
// context; everything else is re-expanded every call.
func (p *parser) ParseWithOptions(expression string, opts ParseOptions) (*Schedule, error) {
	if strings.TrimSpace(expression) == "" {
		return nil, badCron("empty expression")
	}

	cacheable := opts.HashID == nil && opts.ExpandFromStartTime.IsZero()
	key := cacheKey{expression: expression, locale: opts.Locale, secondAt: opts.SecondAtBeginning}
	if cacheable {
		p.cacheMu.RLock()
		if cached, ok := p.cache[key]; ok {
			p.cacheMu.RUnlock()
			return cached, nil
		}
		p.cacheMu.RUnlock()
	}

	registry := p.symbols
	if opts.Locale != "" && opts.Locale != p.locale {
		if r, ok := GetSymbolRegistry(opts.Locale); ok {
			registry = r
		}
	}

	seed, err := hashSeed(opts.HashID)
	if err != nil {
		return nil, err
	}

	tokens, err := tokenizeExpression(expression, opts.SecondAtBeginning, opts.HashID != nil)
	if err != nil {
		return nil, err
	}

	schedule := &Schedule{Original: expression}
	fieldsByIndex := map[FieldIndex]*Field{
		Second:     &schedule.Second,
		Minute:     &schedule.Minute,
		Hour:       &schedule.Hour,
		DayOfMonth: &schedule.DayOfMonth,
		Month:      &schedule.Month,
		DayOfWeek:  &schedule.DayOfWeek,
		Year:       &schedule.Year,
	}

	var domRaw, dowRaw string
	var sawDOM, sawDOW bool

	for _, tok := range tokens {
		fieldOpts := expandOptions{hashSeed: seed}
		if !opts.ExpandFromStartTime.IsZero() {
			base := fieldValueFromTime(opts.ExpandFromStartTime, tok.idx)
			fieldOpts.stepBase = &base
		}

		raw := tok.text
		if tok.idx == DayOfMonth {
			domRaw = raw
			sawDOM = true
		}
		if tok.idx == DayOfWeek {
			dowRaw = raw
			sawDOW = true
		}

		expanded, err := expandField(raw, tok.idx, registry, fieldOpts)
		if err != nil {
			return nil, err
		}
		*fieldsByIndex[tok.idx] = expanded

		switch tok.idx {
		case Second:
			schedule.hasSecond = true
		case Year:
			schedule.hasYear = true
		}
	}

	if sawDOM && sawDOW {
		if err := validateQuestionMark(domRaw, dowRaw); err != nil {
			return nil, err
		}
	}

	if cacheable {
		p.cacheMu.Lock()
		p.cache[key] = schedule
		p.cacheMu.Unlock()
	}

	return schedule, nil
}

type fieldToken struct {
	idx  FieldIndex
	text string
}

// tokenizeExpression expands @keywords and splits the remaining
// whitespace-separated fields into 5/6/7-field schemas, per spec
// section 4.3. hashMode selects the H-placeholder keyword expansion
// instead of the literal one when a hash seed is configured.
func tokenizeExpression(expression string, secondAtBeginning, hashMode bool) ([]fieldToken, error) {
	expanded := expandKeyword(expression, hashMode)

	words := strings.Fields(expanded)
	switch len(words) {
	case 5:
		return []fieldToken{
			{Minute, words[0]},
			{Hour, words[1]},
			{DayOfMonth, words[2]},
			{Month, words[3]},
			{DayOfWeek, words[4]},
		}, nil
	case 6:
		if secondAtBeginning {
			return []fieldToken{
				{Second, words[0]},
				{Minute, words[1]},
				{Hour, words[2]},
				{DayOfMonth, words[3]},
				{Month, words[4]},
				{DayOfWeek, words[5]},
			}, nil
		}
		return []fieldToken{
			{Minute, words[0]},
			{Hour, words[1]},
			{DayOfMonth, words[2]},
			{Month, words[3]},
			{DayOfWeek, words[4]},
			{Year, words[5]},
		}, nil
	case 7:
		return []fieldToken{
			{Second, words[0]},
			{Minute, words[1]},
			{Hour, words[2]},
			{DayOfMonth, words[3]},
			{Month, words[4]},
			{DayOfWeek, words[5]},
			{Year, words[6]},
		}, nil
	default:
		return nil, badCron("expected 5, 6 or 7 fields, got %d", len(words))
	}
}

// expandKeyword rewrites a leading "@keyword" into its 5-field form:
// the literal Vixie form normally, or the H-placeholder form when
// hashMode is set (a hash seed was configured for this parse).
// Non-keyword expressions pass through unchanged.
func expandKeyword(expression string, hashMode bool) string {
	trimmed := strings.TrimSpace(expression)
	if !strings.HasPrefix(trimmed, "@") {
		return expression
	}
	table := keywordExpansions
	if hashMode {
		table = hashKeywordExpansions
	}
	if fields, ok := table[strings.ToLower(trimmed)]; ok {
		return strings.Join(fields[:], " ")
	}
	return expression
}

// validateQuestionMark enforces that "?" only ever appears alone in
// DayOfMonth or DayOfWeek, never combined with other values in the
// same field.
func validateQuestionMark(domRaw, dowRaw string) error {
	domQ := strings.Contains(domRaw, "?")
	dowQ := strings.Contains(dowRaw, "?")
	if domQ && strings.Contains(domRaw, ",") {
		return badCronField(DayOfMonth, "'?' cannot be combined with other values")
	}
	if dowQ && strings.Contains(dowRaw, ",") {
		return badCronField(DayOfWeek, "'?' cannot be combined with other values")
	}
	_ = domQ
	_ = dowQ
	return nil
}

// fieldValueFromTime extracts the component of t that corresponds to
// idx, used to align "*/step" fields under ExpandFromStartTime.
func fieldValueFromTime(t time.Time, idx FieldIndex) int {
	switch idx {
	case Second:
		return t.Second()
	case Minute:
		return t.Minute()
	case Hour:
		return t.Hour()
	case DayOfMonth:
		return t.Day()
	case Month:
		return int(t.Month())
	case DayOfWeek:
		return int(t.Weekday())
	case Year:
		return t.Year()
	default:
		return 0
	}
}
