package tool_hotelsearch

import (
	"context"
	"fmt"

	"github.com/voyagent/voyagent/src/agent"
	"github.com/voyagent/voyagent/src/travelapi"
)

// Tool name constant
const Name = "search_hotels"

const hotelSearchPrompt = `Searches hotels in a location for a stay between two dates. The location is a free-text query such as "hotels in new york". Dates are in YYYY-MM-DD format. An optional hotel class (2 to 5) filters by star rating. Returns properties with prices, ratings, amenities, and booking links.`

// HotelSearchInput represents the input for a hotel search
type HotelSearchInput struct {
	Query        string `json:"query" required:"true" description:"Location query such as 'hotels in new york'"`
	CheckInDate  string `json:"check_in_date" required:"true" description:"Check-in date in YYYY-MM-DD format"`
	CheckOutDate string `json:"check_out_date" required:"true" description:"Check-out date in YYYY-MM-DD format"`
	Adults       int    `json:"adults,omitempty" description:"Number of adult guests (default 1)"`
	Children     int    `json:"children,omitempty" description:"Number of child guests"`
	Rooms        int    `json:"rooms,omitempty" description:"Number of rooms (default 1)"`
	SortBy       int    `json:"sort_by,omitempty" description:"Result sort order, 8 sorts by highest rating"`
	HotelClass   string `json:"hotel_class,omitempty" description:"Star rating filter from 2 to 5"`
}

// HotelSearchOutput represents the result of a hotel search
type HotelSearchOutput struct {
	Kind    string                  `json:"kind" description:"Shape of the result: list, single, text, or empty"`
	Options []travelapi.HotelOption `json:"options,omitempty" description:"Bookable properties"`
	Message string                  `json:"message,omitempty" description:"Provider message when no options are available"`
}

// makeHotelSearchHandler creates a typed handler for the hotel search tool
func makeHotelSearchHandler(client *travelapi.Client) func(context.Context, HotelSearchInput) (HotelSearchOutput, error) {
	return func(ctx context.Context, input HotelSearchInput) (HotelSearchOutput, error) {
		adults := input.Adults
		if adults == 0 {
			adults = 1
		}
		rooms := input.Rooms
		if rooms == 0 {
			rooms = 1
		}

		result, err := client.SearchHotels(ctx, travelapi.HotelSearchParams{
			Query:        input.Query,
			CheckInDate:  input.CheckInDate,
			CheckOutDate: input.CheckOutDate,
			Adults:       adults,
			Children:     input.Children,
			Rooms:        rooms,
			SortBy:       input.SortBy,
			HotelClass:   input.HotelClass,
		})
		if err != nil {
			return HotelSearchOutput{}, fmt.Errorf("hotel search failed: %v", err)
		}

		return HotelSearchOutput{
			Kind:    result.Kind.String(),
			Options: result.Options,
			Message: result.Text,
		}, nil
	}
}

// Tool returns the search_hotels tool definition using GenericTool
func Tool(client *travelapi.Client) (agent.Tool, error) {
	return agent.NewGenericTool(Name, hotelSearchPrompt, makeHotelSearchHandler(client))
}
