// Package itinerary renders search results and day-by-day trip plans as
// markdown-flavored text suitable for both terminal display and email bodies.
package itinerary

import (
	"fmt"
	"strings"

	"github.com/voyagent/voyagent/src/travelapi"
)

// Format renders the FLIGHTS and HOTELS sections from search results. It
// accepts every result kind, never panics, and renders missing data as
// deterministic "not found" lines.
func Format(flights *travelapi.FlightResult, hotels *travelapi.HotelResult) string {
	return formatFlights(flights) + "\n" + formatHotels(hotels)
}

func formatFlights(res *travelapi.FlightResult) string {
	if res == nil {
		return "No flights found.\n"
	}

	var b strings.Builder
	switch res.Kind {
	case travelapi.ResultList:
		b.WriteString("\n✈️ FLIGHTS\n\n")
		for i, option := range res.Options {
			fmt.Fprintf(&b, "<div style=\"font-weight:700;font-size:1.15em;\">Option %d:</div>\n", i+1)
			writeFlightOption(&b, option)
		}
	case travelapi.ResultSingle:
		b.WriteString("\n✈️ FLIGHTS\n\n")
		for _, option := range res.Options {
			fmt.Fprintf(&b, "- Price: %s USD\n", formatPrice(option.Price))
			writeFlightOption(&b, option)
		}
	case travelapi.ResultText:
		fmt.Fprintf(&b, "Flights: %s\n", res.Text)
	case travelapi.ResultEmpty:
		b.WriteString("No flights found.\n")
	default:
		b.WriteString("No flights found.\n")
	}
	return b.String()
}

func writeFlightOption(b *strings.Builder, option travelapi.FlightOption) {
	for _, leg := range option.Flights {
		airline := leg.Airline
		if airline == "" {
			airline = "Unknown Airline"
		}
		depDate, depTime := splitDateTime(leg.DepartureAirport.Time)
		_, arrTime := splitDateTime(leg.ArrivalAirport.Time)

		fmt.Fprintf(b, "  - %s %s from %s (%s) at %s to %s (%s) at %s on %s\n",
			airline, leg.FlightNumber,
			leg.DepartureAirport.Name, leg.DepartureAirport.ID, depTime,
			leg.ArrivalAirport.Name, leg.ArrivalAirport.ID, arrTime,
			depDate)
		if leg.AirlineLogo != "" {
			fmt.Fprintf(b, "    <img src=%q alt=%q width=\"70\" height=\"70\"><br>\n",
				leg.AirlineLogo, airline)
		}
	}

	switch {
	case option.GoogleFlightsURL != "":
		fmt.Fprintf(b, "  [Book on Google Flights](%s)\n", option.GoogleFlightsURL)
	case option.Link != "":
		fmt.Fprintf(b, "  [Book](%s)\n", option.Link)
	}
}

func formatHotels(res *travelapi.HotelResult) string {
	if res == nil {
		return "No hotels found.\n"
	}

	var b strings.Builder
	switch res.Kind {
	case travelapi.ResultList:
		b.WriteString("\n🏨 HOTELS\n\n")
		for i, hotel := range res.Options {
			fmt.Fprintf(&b, "\n<div style=\"font-weight:700;font-size:1.15em;\">Option %d:</div>\n", i+1)
			writeHotelOption(&b, hotel)
		}
	case travelapi.ResultSingle:
		b.WriteString("\n🏨 HOTELS\n\n")
		for _, hotel := range res.Options {
			b.WriteString("\n")
			writeHotelOption(&b, hotel)
		}
	case travelapi.ResultText:
		fmt.Fprintf(&b, "Hotels: %s\n", res.Text)
	case travelapi.ResultEmpty:
		b.WriteString("No hotels found.\n")
	default:
		b.WriteString("No hotels found.\n")
	}
	return b.String()
}

func writeHotelOption(b *strings.Builder, hotel travelapi.HotelOption) {
	name := hotel.Name
	if name == "" {
		name = "Unknown Hotel"
	}
	fmt.Fprintf(b, "Hotel: %s\n", name)
	fmt.Fprintf(b, "Description: %s\n", hotel.Description)
	fmt.Fprintf(b, "Class: %s\n", hotel.HotelClass)
	fmt.Fprintf(b, "Rating: %s/5 (%s reviews)\n",
		formatRating(hotel.OverallRating), formatReviews(hotel.Reviews))
	fmt.Fprintf(b, "Check-in: %s, Check-out: %s\n", hotel.CheckInTime, hotel.CheckOutTime)

	if hotel.RatePerNight != nil {
		fmt.Fprintf(b, "Rate per night: %s\n", formatRate(hotel.RatePerNight))
	}
	if hotel.TotalRate != nil {
		fmt.Fprintf(b, "Total rate: %s\n", formatRate(hotel.TotalRate))
	}
	if len(hotel.Amenities) > 0 {
		fmt.Fprintf(b, "Amenities: %s\n", strings.Join(hotel.Amenities, ", "))
	}
	if len(hotel.NearbyPlaces) > 0 {
		b.WriteString("Nearby places:\n")
		for _, place := range hotel.NearbyPlaces {
			fmt.Fprintf(b, "  - %s: ", place.Name)
			transports := make([]string, 0, len(place.Transportations))
			for _, t := range place.Transportations {
				transports = append(transports, fmt.Sprintf("%s (%s)", t.Type, t.Duration))
			}
			b.WriteString(strings.Join(transports, ", "))
			b.WriteString("\n")
		}
	}
	if hotel.Link != "" {
		fmt.Fprintf(b, "Website: <a href=%q>%s</a>\n", hotel.Link, hotel.Link)
	}
}

// formatRate prefers the extracted numeric value and falls back to the
// provider's display string.
func formatRate(r *travelapi.Rate) string {
	if r.ExtractedLowest != 0 {
		return formatPrice(r.ExtractedLowest)
	}
	if r.Lowest != "" {
		return r.Lowest
	}
	return "N/A"
}

func formatRating(rating float64) string {
	if rating == 0 {
		return "N/A"
	}
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.1f", rating), "0"), ".")
}

func formatReviews(reviews int) string {
	if reviews == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%d", reviews)
}

// formatPrice prints whole prices without a decimal part.
func formatPrice(price float64) string {
	if price == float64(int64(price)) {
		return fmt.Sprintf("%d", int64(price))
	}
	return fmt.Sprintf("%.2f", price)
}

// splitDateTime splits a provider "YYYY-MM-DD HH:MM" timestamp into its date
// and time halves, tolerating missing parts.
func splitDateTime(ts string) (date, clock string) {
	parts := strings.SplitN(ts, " ", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return ts, ""
}
