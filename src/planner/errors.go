package planner

import "errors"

var (
	// ErrAirportNotFound indicates a city resolved to no IATA code. The
	// wrapping error names the city; no searches run after it.
	ErrAirportNotFound = errors.New("airport not found")

	// ErrSessionNotFound indicates an unknown session ID.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionNotPaused indicates a resume on a session that is not
	// waiting for delivery.
	ErrSessionNotPaused = errors.New("session is not awaiting delivery")

	// ErrAlreadyDelivered indicates a resume on a completed session.
	ErrAlreadyDelivered = errors.New("session already delivered")
)
