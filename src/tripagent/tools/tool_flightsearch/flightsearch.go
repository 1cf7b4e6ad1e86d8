package tool_flightsearch

import (
	"context"
	"fmt"

	"github.com/voyagent/voyagent/src/agent"
	"github.com/voyagent/voyagent/src/travelapi"
)

// Tool name constant
const Name = "search_flights"

const flightSearchPrompt = `Searches round-trip flights between two airports. Both airports must be given as 3-letter IATA codes (use the airport lookup tool to resolve city names first). Dates are in YYYY-MM-DD format. Returns bookable flight options with airlines, times, prices, and booking links.`

// FlightSearchInput represents the input for a flight search
type FlightSearchInput struct {
	DepartureID  string `json:"departure_id" required:"true" description:"Departure airport IATA code"`
	ArrivalID    string `json:"arrival_id" required:"true" description:"Arrival airport IATA code"`
	OutboundDate string `json:"outbound_date" required:"true" description:"Outbound date in YYYY-MM-DD format"`
	ReturnDate   string `json:"return_date" required:"true" description:"Return date in YYYY-MM-DD format"`
	Adults       int    `json:"adults,omitempty" description:"Number of adult travelers (default 1)"`
	Children     int    `json:"children,omitempty" description:"Number of child travelers"`
}

// FlightSearchOutput represents the result of a flight search
type FlightSearchOutput struct {
	Kind    string                   `json:"kind" description:"Shape of the result: list, single, text, or empty"`
	Options []travelapi.FlightOption `json:"options,omitempty" description:"Bookable flight options"`
	Message string                   `json:"message,omitempty" description:"Provider message when no options are available"`
}

// makeFlightSearchHandler creates a typed handler for the flight search tool
func makeFlightSearchHandler(client *travelapi.Client) func(context.Context, FlightSearchInput) (FlightSearchOutput, error) {
	return func(ctx context.Context, input FlightSearchInput) (FlightSearchOutput, error) {
		adults := input.Adults
		if adults == 0 {
			adults = 1
		}

		result, err := client.SearchFlights(ctx, travelapi.FlightSearchParams{
			DepartureID:  input.DepartureID,
			ArrivalID:    input.ArrivalID,
			OutboundDate: input.OutboundDate,
			ReturnDate:   input.ReturnDate,
			Adults:       adults,
			Children:     input.Children,
		})
		if err != nil {
			return FlightSearchOutput{}, fmt.Errorf("flight search failed: %v", err)
		}

		return FlightSearchOutput{
			Kind:    result.Kind.String(),
			Options: result.Options,
			Message: result.Text,
		}, nil
	}
}

// Tool returns the search_flights tool definition using GenericTool
func Tool(client *travelapi.Client) (agent.Tool, error) {
	return agent.NewGenericTool(Name, flightSearchPrompt, makeFlightSearchHandler(client))
}
