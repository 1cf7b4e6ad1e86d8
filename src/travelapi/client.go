package travelapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	defaultBaseURL = "https://serpapi.com"
	defaultTimeout = 20 * time.Second
)

// ErrNoAPIKey is returned when a client is constructed without credentials.
var ErrNoAPIKey = errors.New("no serpapi api key provided")

// Config holds client configuration.
type Config struct {
	APIKey     string
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client calls SerpApi search engines. Safe for concurrent use.
type Client struct {
	apiKey     string
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a search client from config.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrNoAPIKey
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		timeout:    cfg.Timeout,
		httpClient: cfg.HTTPClient,
		logger:     cfg.Logger.With("component", "travelapi"),
	}, nil
}

// FlightSearchParams describe a round-trip flight search.
type FlightSearchParams struct {
	DepartureID  string
	ArrivalID    string
	OutboundDate string
	ReturnDate   string
	Adults       int
	Children     int
	Currency     string
}

// SortByHighestRating is the google_hotels sort order for rating-ranked
// results.
const SortByHighestRating = 8

// HotelSearchParams describe a hotel search.
type HotelSearchParams struct {
	Query        string
	CheckInDate  string
	CheckOutDate string
	Adults       int
	Children     int
	Rooms        int
	SortBy       int
	HotelClass   string
	Currency     string
}

// SearchFlights runs a google_flights search. A provider-reported error
// becomes a ResultText value; only transport and decoding failures return an
// error.
func (c *Client) SearchFlights(ctx context.Context, p FlightSearchParams) (*FlightResult, error) {
	q := url.Values{}
	q.Set("engine", "google_flights")
	q.Set("departure_id", p.DepartureID)
	q.Set("arrival_id", p.ArrivalID)
	q.Set("outbound_date", p.OutboundDate)
	q.Set("return_date", p.ReturnDate)
	q.Set("adults", strconv.Itoa(p.Adults))
	q.Set("children", strconv.Itoa(p.Children))
	if p.Currency != "" {
		q.Set("currency", p.Currency)
	}

	body, err := c.search(ctx, q)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Error          string          `json:"error"`
		BestFlights    json.RawMessage `json:"best_flights"`
		OtherFlights   json.RawMessage `json:"other_flights"`
		SearchMetadata struct {
			GoogleFlightsURL string `json:"google_flights_url"`
		} `json:"search_metadata"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode flight response: %w", err)
	}
	if envelope.Error != "" {
		c.logger.Warn("flight search returned provider error", "error", envelope.Error)
		return &FlightResult{Kind: ResultText, Text: envelope.Error}, nil
	}

	raw := envelope.BestFlights
	if len(raw) == 0 || string(raw) == "null" {
		raw = envelope.OtherFlights
	}
	options, kind, text := decodeOptions[FlightOption](raw)
	for i := range options {
		if options[i].GoogleFlightsURL == "" {
			options[i].GoogleFlightsURL = envelope.SearchMetadata.GoogleFlightsURL
		}
	}

	c.logger.Info("flight search complete",
		"departure", p.DepartureID, "arrival", p.ArrivalID,
		"kind", kind.String(), "options", len(options))
	return &FlightResult{Kind: kind, Options: options, Text: text}, nil
}

// SearchHotels runs a google_hotels search. Shape handling mirrors
// SearchFlights.
func (c *Client) SearchHotels(ctx context.Context, p HotelSearchParams) (*HotelResult, error) {
	q := url.Values{}
	q.Set("engine", "google_hotels")
	q.Set("q", p.Query)
	q.Set("check_in_date", p.CheckInDate)
	q.Set("check_out_date", p.CheckOutDate)
	q.Set("adults", strconv.Itoa(p.Adults))
	q.Set("children", strconv.Itoa(p.Children))
	q.Set("rooms", strconv.Itoa(p.Rooms))
	if p.SortBy != 0 {
		q.Set("sort_by", strconv.Itoa(p.SortBy))
	}
	if p.HotelClass != "" {
		q.Set("hotel_class", p.HotelClass)
	}
	if p.Currency != "" {
		q.Set("currency", p.Currency)
	}

	body, err := c.search(ctx, q)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Error      string          `json:"error"`
		Properties json.RawMessage `json:"properties"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode hotel response: %w", err)
	}
	if envelope.Error != "" {
		c.logger.Warn("hotel search returned provider error", "error", envelope.Error)
		return &HotelResult{Kind: ResultText, Text: envelope.Error}, nil
	}

	options, kind, text := decodeOptions[HotelOption](envelope.Properties)

	c.logger.Info("hotel search complete",
		"query", p.Query, "kind", kind.String(), "options", len(options))
	return &HotelResult{Kind: kind, Options: options, Text: text}, nil
}

// search issues one GET /search call with the shared timeout applied on top
// of the caller's context.
func (c *Client) search(ctx context.Context, q url.Values) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	q.Set("api_key", c.apiKey)
	endpoint := c.baseURL + "/search?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read search response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}
	return body, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
