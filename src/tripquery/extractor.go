// Package tripquery extracts structured trip parameters from free-text travel
// requests.
package tripquery

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"
)

var (
	// ErrNoCityPattern indicates that neither city pattern matched the input.
	ErrNoCityPattern = errors.New("could not identify departure and arrival cities")
)

// City capture stops at the first date clause ("from 1", "on 3"), the word
// "find", or end of input, so date text is never swallowed into a city name.
var (
	cityWithFromRe = regexp.MustCompile(`from\s+([a-zA-Z\s]+?)\s+to\s+([a-zA-Z\s]+?)(?:\s+from\s+\d|\s+on\s+\d|\s+find|\s*$)`)
	cityBareRe     = regexp.MustCompile(`([a-zA-Z\s]{2,}?)\s+to\s+([a-zA-Z\s]{2,}?)(?:\s+from\s+\d|\s+on\s+\d|\s+find|\s*$)`)
	datesRe        = regexp.MustCompile(`from\s*(\d{1,2})(?:st|nd|rd|th)?\s*([a-zA-Z]+)\s*to\s*(\d{1,2})(?:st|nd|rd|th)?\s*([a-zA-Z]+)\s*(\d{4})`)
	hotelClassRe   = regexp.MustCompile(`(\d+)\s*star hotel`)
	stopWordsRe    = regexp.MustCompile(`\b(plan|trip|want|need|going|travel)\b`)
	spacesRe       = regexp.MustCompile(`\s+`)
)

// misspellings maps known city typos to their canonical spelling.
var misspellings = map[string]string{
	"mardrid": "madrid",
	"mardid":  "madrid",
}

const defaultTripDays = 3

// Extractor parses free-text travel requests into TripQuery values.
type Extractor struct {
	logger *slog.Logger
	now    func() time.Time
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithClock overrides the time source, used by tests for deterministic
// default-date windows.
func WithClock(now func() time.Time) Option {
	return func(e *Extractor) {
		e.now = now
	}
}

// NewExtractor creates an extractor. A nil logger falls back to slog.Default.
func NewExtractor(logger *slog.Logger, opts ...Option) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Extractor{
		logger: logger.With("component", "tripquery"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses the user's request text. It returns ErrNoCityPattern when no
// city pair can be identified; date extraction never fails, it silently falls
// back to the default window (tomorrow, tomorrow+3d) and records the fallback
// on the TripQuery and in the log.
func (e *Extractor) Extract(text string) (*TripQuery, error) {
	input := strings.ToLower(text)

	departure, arrival, err := e.extractCities(input)
	if err != nil {
		return nil, err
	}

	outbound, ret, defaulted := e.extractDates(input)
	if defaulted {
		e.logger.Warn("no date pattern matched, using default window",
			"outbound", outbound.Format(DateFormat),
			"return", ret.Format(DateFormat))
	}

	q := &TripQuery{
		DepartureCity:  departure,
		ArrivalCity:    arrival,
		OutboundDate:   outbound,
		ReturnDate:     ret,
		HotelClass:     extractHotelClass(input),
		Adults:         1,
		Children:       0,
		Rooms:          1,
		DatesDefaulted: defaulted,
	}

	e.logger.Debug("extracted trip query",
		"departure", q.DepartureCity,
		"arrival", q.ArrivalCity,
		"outbound", q.OutboundDateString(),
		"return", q.ReturnDateString(),
		"hotel_class", q.HotelClass)

	return q, nil
}

func (e *Extractor) extractCities(input string) (string, string, error) {
	m := cityWithFromRe.FindStringSubmatch(input)
	if m == nil {
		m = cityBareRe.FindStringSubmatch(input)
	}
	if m == nil {
		return "", "", ErrNoCityPattern
	}

	departure := cleanCity(m[1])
	arrival := cleanCity(m[2])
	if departure == "" || arrival == "" {
		return "", "", ErrNoCityPattern
	}
	return departure, arrival, nil
}

// cleanCity collapses whitespace, removes stop words that leak into the
// capture, and normalizes known misspellings.
func cleanCity(raw string) string {
	city := spacesRe.ReplaceAllString(strings.TrimSpace(raw), " ")
	city = strings.TrimSpace(stopWordsRe.ReplaceAllString(city, ""))
	city = spacesRe.ReplaceAllString(city, " ")
	if canonical, ok := misspellings[city]; ok {
		city = canonical
	}
	return city
}

// extractDates returns the outbound/return pair and whether the default
// window was applied.
func (e *Extractor) extractDates(input string) (time.Time, time.Time, bool) {
	m := datesRe.FindStringSubmatch(input)
	if m == nil {
		return e.defaultDates()
	}

	day1, month1, day2, month2, year := m[1], m[2], m[3], m[4], m[5]

	outbound, err1 := parseDayMonthYear(day1, month1, year)
	ret, err2 := parseDayMonthYear(day2, month2, year)
	if err1 != nil || err2 != nil {
		e.logger.Warn("date pattern matched but did not parse, using default window",
			"outbound_err", err1, "return_err", err2)
		return e.defaultDates()
	}

	return outbound, ret, false
}

func (e *Extractor) defaultDates() (time.Time, time.Time, bool) {
	outbound := e.now().AddDate(0, 0, 1)
	outbound = time.Date(outbound.Year(), outbound.Month(), outbound.Day(), 0, 0, 0, 0, outbound.Location())
	return outbound, outbound.AddDate(0, 0, defaultTripDays), true
}

// parseDayMonthYear parses a "2 Jan 2006" style date from its parts, using
// the first three letters of the month name.
func parseDayMonthYear(day, month, year string) (time.Time, error) {
	if len(month) < 3 {
		return time.Time{}, fmt.Errorf("month %q too short", month)
	}
	abbr := strings.ToUpper(month[:1]) + strings.ToLower(month[1:3])
	return time.Parse("2 Jan 2006", fmt.Sprintf("%s %s %s", day, abbr, year))
}

func extractHotelClass(input string) string {
	m := hotelClassRe.FindStringSubmatch(input)
	if m == nil {
		return ""
	}
	return m[1]
}
