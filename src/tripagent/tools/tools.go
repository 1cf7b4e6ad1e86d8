package tools

import (
	"github.com/voyagent/voyagent/src/agent"
	"github.com/voyagent/voyagent/src/airports"
	"github.com/voyagent/voyagent/src/travelapi"
	tool_airportlookup "github.com/voyagent/voyagent/src/tripagent/tools/tool_airportlookup"
	tool_flightsearch "github.com/voyagent/voyagent/src/tripagent/tools/tool_flightsearch"
	tool_hotelsearch "github.com/voyagent/voyagent/src/tripagent/tools/tool_hotelsearch"
)

// Tool name constants - re-exported from individual packages
const (
	FlightSearchName  = tool_flightsearch.Name
	HotelSearchName   = tool_hotelsearch.Name
	AirportLookupName = tool_airportlookup.Name
)

func FlightSearchTool(client *travelapi.Client) (agent.Tool, error) {
	return tool_flightsearch.Tool(client)
}

func HotelSearchTool(client *travelapi.Client) (agent.Tool, error) {
	return tool_hotelsearch.Tool(client)
}

func AirportLookupTool(resolver *airports.Resolver) (agent.Tool, error) {
	return tool_airportlookup.Tool(resolver)
}
