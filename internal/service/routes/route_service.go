package routes

import (
	"context"
	"fmt"

	"github.com/vkozyr/busterminal/internal/domain"
	"github.com/vkozyr/busterminal/internal/repository"
)

type RouteUseCase interface {
	AddRoute(ctx context.Context, route *domain.Route) error
	GetRouteByID(ctx context.Context, id int64) (*domain.RouteDetail, error)
	ListRoutes(ctx context.Context) ([]domain.RouteDetail, error)
}

type RouteService struct {
	routes repository.RouteRepository
	stops  repository.StopRepository
}

func NewRouteService(routes repository.RouteRepository, stops repository.StopRepository) *RouteService {
	return &RouteService{routes: routes, stops: stops}
}

// AddRoute persists the route atomically: header plus ordered intermediate
// links commit together or not at all, so no reader ever observes a partial
// route. Endpoint stops must already have persisted identities.
func (s *RouteService) AddRoute(ctx context.Context, route *domain.Route) error {
	if err := route.Validate(); err != nil {
		return err
	}
	return s.routes.Create(ctx, route)
}

// GetRouteByID reloads the route and resolves every stop reference through
// the stop catalog. An unresolvable stop is a data-integrity failure, never
// silently dropped: a route without its endpoints is meaningless.
func (s *RouteService) GetRouteByID(ctx context.Context, id int64) (*domain.RouteDetail, error) {
	route, err := s.routes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if route == nil {
		return nil, nil
	}
	return s.resolve(ctx, route)
}

func (s *RouteService) ListRoutes(ctx context.Context) ([]domain.RouteDetail, error) {
	rawRoutes, err := s.routes.List(ctx)
	if err != nil {
		return nil, err
	}

	details := make([]domain.RouteDetail, 0, len(rawRoutes))
	for i := range rawRoutes {
		detail, err := s.resolve(ctx, &rawRoutes[i])
		if err != nil {
			return nil, err
		}
		details = append(details, *detail)
	}
	return details, nil
}

func (s *RouteService) resolve(ctx context.Context, route *domain.Route) (*domain.RouteDetail, error) {
	departure, err := s.resolveStop(ctx, route.ID, route.DepartureStopID, "departure")
	if err != nil {
		return nil, err
	}
	destination, err := s.resolveStop(ctx, route.ID, route.DestinationStopID, "destination")
	if err != nil {
		return nil, err
	}

	intermediate := make([]domain.Stop, 0, len(route.IntermediateStopIDs))
	for _, stopID := range route.IntermediateStopIDs {
		stop, err := s.resolveStop(ctx, route.ID, stopID, "intermediate")
		if err != nil {
			return nil, err
		}
		intermediate = append(intermediate, *stop)
	}

	return &domain.RouteDetail{
		ID:                route.ID,
		DepartureStop:     *departure,
		DestinationStop:   *destination,
		IntermediateStops: intermediate,
	}, nil
}

func (s *RouteService) resolveStop(ctx context.Context, routeID, stopID int64, role string) (*domain.Stop, error) {
	stop, err := s.stops.GetByID(ctx, stopID)
	if err != nil {
		return nil, fmt.Errorf("load %s stop %d: %w", role, stopID, err)
	}
	if stop == nil {
		return nil, repository.IntegrityErrorf("route %d references missing %s stop %d", routeID, role, stopID)
	}
	return stop, nil
}

var _ RouteUseCase = (*RouteService)(nil)
