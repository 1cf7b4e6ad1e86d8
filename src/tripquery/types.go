package tripquery

import (
	"time"
)

// DateFormat is the wire format used for all trip dates.
const DateFormat = "2006-01-02"

// TripQuery holds the structured parameters extracted from a free-text travel
// request. It is constructed once per request and not mutated afterwards.
type TripQuery struct {
	DepartureCity string
	ArrivalCity   string
	OutboundDate  time.Time
	ReturnDate    time.Time
	// HotelClass is the "<n> star hotel" filter, empty when unconstrained.
	HotelClass string
	Adults     int
	Children   int
	Rooms      int
	// DatesDefaulted is set when no date pattern matched and the default
	// window was applied.
	DatesDefaulted bool
}

// OutboundDateString returns the outbound date in wire format.
func (q *TripQuery) OutboundDateString() string {
	return q.OutboundDate.Format(DateFormat)
}

// ReturnDateString returns the return date in wire format.
func (q *TripQuery) ReturnDateString() string {
	return q.ReturnDate.Format(DateFormat)
}
