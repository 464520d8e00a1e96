package domain

import "fmt"

// Route is an ordered chain of stops: departure, zero or more intermediate
// stops in physical traversal order, destination. Routes are created once
// through the route builder and treated as immutable afterwards; flights
// reference them but a route owns no flights.
type Route struct {
	ID                int64
	DepartureStopID   int64
	DestinationStopID int64
	// IntermediateStopIDs holds the intermediate stops in traversal order.
	// The slice is replaced wholesale, never mutated in place.
	IntermediateStopIDs []int64
}

func (r *Route) Validate() error {
	if r.DepartureStopID == 0 {
		return fmt.Errorf("%w: route departure stop is required", ErrInvalid)
	}
	if r.DestinationStopID == 0 {
		return fmt.Errorf("%w: route destination stop is required", ErrInvalid)
	}
	for _, id := range r.IntermediateStopIDs {
		if id == 0 {
			return fmt.Errorf("%w: route intermediate stop without identity", ErrInvalid)
		}
	}
	return nil
}

// RouteDetail is a route with its stop references resolved against the
// stop catalog. Intermediate stops keep insertion order.
type RouteDetail struct {
	ID                int64
	DepartureStop     Stop
	DestinationStop   Stop
	IntermediateStops []Stop
}
