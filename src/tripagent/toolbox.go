package tripagent

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/voyagent/voyagent/src/agent"
	"github.com/voyagent/voyagent/src/airports"
	"github.com/voyagent/voyagent/src/aisdk"
	"github.com/voyagent/voyagent/src/travelapi"
	"github.com/voyagent/voyagent/src/tripagent/tools"
)

// NewToolbox builds the travel toolbox: flight search, hotel search, and
// airport code lookup, with logging middleware applied.
func NewToolbox(searchClient *travelapi.Client, resolver *airports.Resolver, logger *slog.Logger) (*agent.DefaultToolbox, error) {
	toolbox := agent.NewToolbox[agent.Tool]()

	flightTool, err := tools.FlightSearchTool(searchClient)
	if err != nil {
		return nil, fmt.Errorf("failed to create flight search tool: %w", err)
	}
	hotelTool, err := tools.HotelSearchTool(searchClient)
	if err != nil {
		return nil, fmt.Errorf("failed to create hotel search tool: %w", err)
	}
	lookupTool, err := tools.AirportLookupTool(resolver)
	if err != nil {
		return nil, fmt.Errorf("failed to create airport lookup tool: %w", err)
	}

	for _, tool := range []agent.Tool{flightTool, hotelTool, lookupTool} {
		if err := toolbox.RegisterTool(tool); err != nil {
			return nil, err
		}
	}

	if logger != nil {
		toolbox.RegisterMiddleware(agent.LoggingMiddleware(logger))
	}

	return toolbox, nil
}

// NewAgent wires the model client, system prompt, and toolbox into an agent
// ready to take a travel request.
func NewAgent(model aisdk.ModelClient, searchClient *travelapi.Client, resolver *airports.Resolver, logger *slog.Logger) (*agent.Agent, error) {
	toolbox, err := NewToolbox(searchClient, resolver, logger)
	if err != nil {
		return nil, err
	}

	return &agent.Agent{
		SystemPrompt: ToolsSystemPrompt(time.Now()),
		Model:        model,
		Toolbox:      toolbox,
		Logger:       logger,
	}, nil
}
