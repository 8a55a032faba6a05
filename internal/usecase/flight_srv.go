package usecase

import (
	"context"

	"forfly/internal/apperrors"
	"forfly/internal/data/entity"
	"forfly/internal/data/repository"
	"forfly/internal/dto/response"

	"go.uber.org/zap"
)

type FlightService interface {
	Origins(ctx context.Context) ([]string, error)
	Destinations(ctx context.Context, origin string) ([]string, error)
	// Search matches origin and destination exactly against the catalog and
	// returns ErrNoFlightsFound when no flight serves the route.
	Search(ctx context.Context, origin, destination string) ([]response.FlightResponse, error)
}

type flightService struct {
	flights repository.FlightRepository
	log     *zap.Logger
}

func NewFlightService(flights repository.FlightRepository, log *zap.Logger) FlightService {
	return &flightService{
		flights: flights,
		log:     log,
	}
}

func (s *flightService) Origins(ctx context.Context) ([]string, error) {
	return s.flights.Origins(), nil
}

func (s *flightService) Destinations(ctx context.Context, origin string) ([]string, error) {
	return s.flights.Destinations(origin), nil
}

func (s *flightService) Search(ctx context.Context, origin, destination string) ([]response.FlightResponse, error) {
	results := s.flights.Search(origin, destination)
	if len(results) == 0 {
		s.log.Info("No flights found for route",
			zap.String("origin", origin),
			zap.String("destination", destination))
		return nil, apperrors.ErrNoFlightsFound
	}

	out := make([]response.FlightResponse, 0, len(results))
	for _, f := range results {
		out = append(out, convertFlightResponse(f))
	}
	return out, nil
}

func convertFlightResponse(f entity.Flight) response.FlightResponse {
	return response.FlightResponse{
		FlightNumber:  f.FlightNumber,
		Origin:        f.Origin,
		Destination:   f.Destination,
		DepartureTime: f.DepartureTime,
		ArrivalTime:   f.ArrivalTime,
		Price:         f.Price,
		AircraftModel: f.AircraftModel,
		Logo:          f.Logo,
	}
}
