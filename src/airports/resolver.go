// Package airports resolves free-text city names to IATA airport codes using
// an OpenFlights-format dataset.
package airports

import (
	"embed"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

//go:embed data/airports.dat
var embeddedData embed.FS

// CodeNotFound is the sentinel returned when no airport matches a query.
const CodeNotFound = "N/A"

// aliases maps common city name variations to the dataset's canonical name.
var aliases = map[string]string{
	"delhi":     "new delhi",
	"bombay":    "mumbai",
	"bengaluru": "bangalore",
	"calcutta":  "kolkata",
	"madras":    "chennai",
	"cochin":    "kochi",
	"thane":     "mumbai",
	"gurgaon":   "new delhi",
	"noida":     "new delhi",
	"nyc":       "new york",
}

// Resolver maps city names to IATA codes. It is immutable after construction
// and safe for concurrent use.
type Resolver struct {
	byCity map[string]string
	logger *slog.Logger
}

// NewResolver builds a resolver from the embedded OpenFlights dataset.
func NewResolver(logger *slog.Logger) (*Resolver, error) {
	f, err := embeddedData.Open("data/airports.dat")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded airport dataset: %w", err)
	}
	defer f.Close()
	return newResolver(f, logger)
}

// NewResolverFromFile builds a resolver from an OpenFlights-format file on
// the given filesystem.
func NewResolverFromFile(fs afero.Fs, path string, logger *slog.Logger) (*Resolver, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open airport dataset %s: %w", path, err)
	}
	defer f.Close()
	return newResolver(f, logger)
}

// newResolver parses OpenFlights airport records: comma-delimited, city in
// column 2, IATA code in column 4. Rows without a valid 3-letter code are
// skipped; on duplicate city names the last valid code wins.
func newResolver(r io.Reader, logger *slog.Logger) (*Resolver, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "airports")

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	byCity := make(map[string]string)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse airport dataset: %w", err)
		}
		if len(row) < 5 {
			continue
		}
		city := strings.ToLower(strings.TrimSpace(row[2]))
		iata := strings.ToUpper(strings.TrimSpace(row[4]))
		if city == "" || !validCode(iata) {
			continue
		}
		byCity[city] = iata
	}

	if len(byCity) == 0 {
		return nil, fmt.Errorf("airport dataset contains no usable records")
	}

	logger.Info("loaded airport dataset", "cities", len(byCity))
	return &Resolver{byCity: byCity, logger: logger}, nil
}

func validCode(iata string) bool {
	if len(iata) != 3 || iata == `\N` || iata == CodeNotFound {
		return false
	}
	for _, r := range iata {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// Len returns the number of cities in the dataset.
func (r *Resolver) Len() int {
	return len(r.byCity)
}

// Resolve maps a city or country query to an IATA code, returning
// CodeNotFound when nothing matches. Resolution is deterministic: repeated
// calls with the same query always return the same code.
func (r *Resolver) Resolve(query string) string {
	city := strings.ToLower(strings.TrimSpace(query))
	if city == "" {
		return CodeNotFound
	}

	if code, ok := r.byCity[city]; ok {
		r.logger.Debug("resolved airport code", "query", city, "code", code)
		return code
	}

	if canonical, ok := aliases[city]; ok {
		if code, ok := r.byCity[canonical]; ok {
			r.logger.Debug("resolved airport code via alias",
				"query", city, "canonical", canonical, "code", code)
			return code
		}
	}

	if code := r.fuzzyResolve(city); code != CodeNotFound {
		return code
	}

	r.logger.Warn("no airport code for query", "query", city)
	return CodeNotFound
}

// fuzzyResolve handles partial matches like "new york city": the shortest
// (then lexicographically smallest) city name containing or contained in the
// query wins, keeping results stable across calls.
func (r *Resolver) fuzzyResolve(query string) string {
	if len(query) < 4 {
		return CodeNotFound
	}

	var candidates []string
	for city := range r.byCity {
		if len(city) < 4 {
			continue
		}
		if strings.Contains(query, city) || strings.Contains(city, query) {
			candidates = append(candidates, city)
		}
	}
	if len(candidates) == 0 {
		return CodeNotFound
	}

	sort.Slice(candidates, func(i, j int) bool {
		if len(candidates[i]) != len(candidates[j]) {
			return len(candidates[i]) < len(candidates[j])
		}
		return candidates[i] < candidates[j]
	})

	best := candidates[0]
	r.logger.Debug("resolved airport code via fuzzy match", "query", query, "city", best)
	return r.byCity[best]
}
