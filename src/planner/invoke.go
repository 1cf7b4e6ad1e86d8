package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/voyagent/voyagent/src/airports"
	"github.com/voyagent/voyagent/src/itinerary"
	"github.com/voyagent/voyagent/src/storage"
	"github.com/voyagent/voyagent/src/travelapi"
)

// runToolingRound executes the single deterministic tooling round: extract
// trip parameters from the original query, resolve both airports, run both
// searches concurrently, and format the combined itinerary.
func (s *Service) runToolingRound(ctx context.Context, session *storage.Session) (string, error) {
	q, err := s.extractor.Extract(session.Query)
	if err != nil {
		// extraction failure is fatal, nothing is searched
		return "", err
	}

	departureCode := s.resolver.Resolve(q.DepartureCity)
	if departureCode == airports.CodeNotFound {
		return "", fmt.Errorf("%w: no IATA code for departure city %q", ErrAirportNotFound, q.DepartureCity)
	}
	arrivalCode := s.resolver.Resolve(q.ArrivalCity)
	if arrivalCode == airports.CodeNotFound {
		return "", fmt.Errorf("%w: no IATA code for arrival city %q", ErrAirportNotFound, q.ArrivalCity)
	}

	params, err := json.Marshal(tripParams{
		DepartureCity: q.DepartureCity,
		ArrivalCity:   q.ArrivalCity,
		DepartureCode: departureCode,
		ArrivalCode:   arrivalCode,
		OutboundDate:  q.OutboundDateString(),
		ReturnDate:    q.ReturnDateString(),
		HotelClass:    q.HotelClass,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal trip parameters: %w", err)
	}
	session.TripParams = storage.JSONText(params)
	if err := storage.UpdateSession(ctx, s.db.DB(), session); err != nil {
		return "", fmt.Errorf("failed to persist trip parameters: %w", err)
	}

	s.logger.Info("resolved trip",
		"departure", q.DepartureCity, "departure_code", departureCode,
		"arrival", q.ArrivalCity, "arrival_code", arrivalCode,
		"outbound", q.OutboundDateString(), "return", q.ReturnDateString())

	flights, hotels := s.runSearches(ctx, session.ID, q.ArrivalCity, departureCode, arrivalCode,
		q.OutboundDateString(), q.ReturnDateString(), q.Adults, q.Children, q.Rooms, q.HotelClass)

	text := itinerary.Format(flights, hotels)
	text += itinerary.Schedule(q.DepartureCity, q.ArrivalCity, q.OutboundDateString(), q.ReturnDateString())
	return text, nil
}

// runSearches dispatches the flight and hotel searches concurrently and joins
// before returning. A failed search degrades to a nil result, which the
// formatter renders as a "not found" line.
func (s *Service) runSearches(
	ctx context.Context,
	sessionID string,
	arrivalCity, departureCode, arrivalCode string,
	outboundDate, returnDate string,
	adults, children, rooms int,
	hotelClass string,
) (*travelapi.FlightResult, *travelapi.HotelResult) {
	var (
		wg      sync.WaitGroup
		flights *travelapi.FlightResult
		hotels  *travelapi.HotelResult
	)

	flightParams := travelapi.FlightSearchParams{
		DepartureID:  departureCode,
		ArrivalID:    arrivalCode,
		OutboundDate: outboundDate,
		ReturnDate:   returnDate,
		Adults:       adults,
		Children:     children,
		Currency:     s.currency,
	}
	hotelParams := travelapi.HotelSearchParams{
		Query:        arrivalCity,
		CheckInDate:  outboundDate,
		CheckOutDate: returnDate,
		Adults:       adults,
		Children:     children,
		Rooms:        rooms,
		SortBy:       travelapi.SortByHighestRating,
		HotelClass:   hotelClass,
		Currency:     s.currency,
	}

	wg.Add(2)

	go func() {
		defer wg.Done()
		start := time.Now()
		result, err := s.search.SearchFlights(ctx, flightParams)
		s.recordSearch(ctx, sessionID, "search_flights", flightParams, err, time.Since(start))
		if err != nil {
			s.logger.Warn("flight search failed", "error", err)
			return
		}
		flights = result
	}()

	go func() {
		defer wg.Done()
		start := time.Now()
		result, err := s.search.SearchHotels(ctx, hotelParams)
		s.recordSearch(ctx, sessionID, "search_hotels", hotelParams, err, time.Since(start))
		if err != nil {
			s.logger.Warn("hotel search failed", "error", err)
			return
		}
		hotels = result
	}()

	wg.Wait()
	return flights, hotels
}

// recordSearch stores one search invocation for diagnostics. Recording is best
// effort and never affects the search outcome.
func (s *Service) recordSearch(ctx context.Context, sessionID, name string, params any, searchErr error, elapsed time.Duration) {
	input, err := json.Marshal(params)
	if err != nil {
		return
	}
	record := &storage.ToolExecution{
		SessionID:  sessionID,
		ToolName:   name,
		Input:      string(input),
		DurationMs: elapsed.Milliseconds(),
	}
	if searchErr != nil {
		record.Error = searchErr.Error()
	}
	if err := storage.CreateToolExecution(ctx, s.db.DB(), record); err != nil {
		s.logger.Warn("failed to record tool execution", "tool", name, "error", err)
	}
}
