package tool_airportlookup

import (
	"context"

	"github.com/voyagent/voyagent/src/agent"
	"github.com/voyagent/voyagent/src/airports"
)

// Tool name constant
const Name = "airport_code_lookup"

const airportLookupPrompt = `Looks up the 3-letter IATA airport code for a city name. Returns "N/A" when no airport is known for the city. Use this before searching flights.`

// AirportLookupInput represents the input for an airport code lookup
type AirportLookupInput struct {
	City string `json:"city" required:"true" description:"City name to look up"`
}

// AirportLookupOutput represents the result of an airport code lookup
type AirportLookupOutput struct {
	City  string `json:"city" description:"The city that was looked up"`
	Code  string `json:"code" description:"IATA airport code or N/A"`
	Found bool   `json:"found" description:"Whether a code was found"`
}

// makeAirportLookupHandler creates a typed handler for the airport lookup tool
func makeAirportLookupHandler(resolver *airports.Resolver) func(context.Context, AirportLookupInput) (AirportLookupOutput, error) {
	return func(ctx context.Context, input AirportLookupInput) (AirportLookupOutput, error) {
		code := resolver.Resolve(input.City)
		return AirportLookupOutput{
			City:  input.City,
			Code:  code,
			Found: code != airports.CodeNotFound,
		}, nil
	}
}

// Tool returns the airport_code_lookup tool definition using GenericTool
func Tool(resolver *airports.Resolver) (agent.Tool, error) {
	return agent.NewGenericTool(Name, airportLookupPrompt, makeAirportLookupHandler(resolver))
}
