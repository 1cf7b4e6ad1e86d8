// Package travelapi is a client for SerpApi-compatible flight and hotel
// search endpoints.
package travelapi

import (
	"encoding/json"
	"fmt"
)

// ResultKind discriminates the shape a provider response was parsed into.
// Every consumer must handle all four kinds.
type ResultKind int

const (
	// ResultEmpty means the provider returned no usable options.
	ResultEmpty ResultKind = iota
	// ResultList means one or more options were parsed.
	ResultList
	// ResultSingle means the provider returned a single bare object.
	ResultSingle
	// ResultText means the provider returned an error or free-text payload.
	ResultText
)

func (k ResultKind) String() string {
	switch k {
	case ResultEmpty:
		return "empty"
	case ResultList:
		return "list"
	case ResultSingle:
		return "single"
	case ResultText:
		return "text"
	default:
		return fmt.Sprintf("ResultKind(%d)", int(k))
	}
}

// AirportInfo is one endpoint of a flight leg.
type AirportInfo struct {
	Name string `json:"name"`
	ID   string `json:"id"`
	Time string `json:"time"`
}

// FlightLeg is a single segment of an itinerary.
type FlightLeg struct {
	DepartureAirport AirportInfo `json:"departure_airport"`
	ArrivalAirport   AirportInfo `json:"arrival_airport"`
	Airline          string      `json:"airline"`
	AirlineLogo      string      `json:"airline_logo"`
	FlightNumber     string      `json:"flight_number"`
	Duration         int         `json:"duration"`
	Airplane         string      `json:"airplane"`
	TravelClass      string      `json:"travel_class"`
}

// FlightOption is one bookable flight choice.
type FlightOption struct {
	Flights          []FlightLeg `json:"flights"`
	TotalDuration    int         `json:"total_duration"`
	Price            float64     `json:"price"`
	Type             string      `json:"type"`
	AirlineLogo      string      `json:"airline_logo"`
	GoogleFlightsURL string      `json:"google_flights_url"`
	Link             string      `json:"link"`
}

// FlightResult is the parsed outcome of a flight search.
type FlightResult struct {
	Kind    ResultKind
	Options []FlightOption
	Text    string
}

// Rate is a hotel price, both as the provider displays it and as an
// extracted numeric value when available.
type Rate struct {
	Lowest          string  `json:"lowest"`
	ExtractedLowest float64 `json:"extracted_lowest"`
}

// Transportation describes one way of reaching a nearby place.
type Transportation struct {
	Type     string `json:"type"`
	Duration string `json:"duration"`
}

// NearbyPlace is a point of interest near a hotel.
type NearbyPlace struct {
	Name            string           `json:"name"`
	Transportations []Transportation `json:"transportations"`
}

// HotelOption is one bookable property.
type HotelOption struct {
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	Link          string        `json:"link"`
	HotelClass    string        `json:"hotel_class"`
	OverallRating float64       `json:"overall_rating"`
	Reviews       int           `json:"reviews"`
	CheckInTime   string        `json:"check_in_time"`
	CheckOutTime  string        `json:"check_out_time"`
	RatePerNight  *Rate         `json:"rate_per_night"`
	TotalRate     *Rate         `json:"total_rate"`
	Amenities     []string      `json:"amenities"`
	NearbyPlaces  []NearbyPlace `json:"nearby_places"`
}

// HotelResult is the parsed outcome of a hotel search.
type HotelResult struct {
	Kind    ResultKind
	Options []HotelOption
	Text    string
}

// decodeOptions parses a raw JSON fragment that a provider may emit as a
// list, a single object, or a bare string.
func decodeOptions[T any](raw json.RawMessage) ([]T, ResultKind, string) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, ResultEmpty, ""
	}
	switch raw[0] {
	case '[':
		var options []T
		if err := json.Unmarshal(raw, &options); err != nil {
			return nil, ResultText, fmt.Sprintf("unparseable response: %v", err)
		}
		if len(options) == 0 {
			return nil, ResultEmpty, ""
		}
		return options, ResultList, ""
	case '{':
		var single T
		if err := json.Unmarshal(raw, &single); err != nil {
			return nil, ResultText, fmt.Sprintf("unparseable response: %v", err)
		}
		return []T{single}, ResultSingle, ""
	case '"':
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return nil, ResultText, string(raw)
		}
		return nil, ResultText, text
	default:
		return nil, ResultText, string(raw)
	}
}
