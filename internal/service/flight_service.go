package service

import (
	"context"
	"strings"

	models "github.com/dariofm/flightdeck/internal"
	"github.com/dariofm/flightdeck/internal/ports"
	"github.com/google/uuid"
)

type flightService struct {
	repo  ports.FlightRepository
	cache ports.Cache
}

func NewFlightService(repo ports.FlightRepository, cache ports.Cache) *flightService {
	return &flightService{repo: repo, cache: cache}
}

func (s *flightService) SearchFlights(ctx context.Context, req *models.FlightSearchRequest) ([]models.Flight, error) {
	origin := strings.ToUpper(req.Origin)
	destination := strings.ToUpper(req.Destination)

	if s.cache != nil {
		if cached, err := s.cache.GetFlightSearch(ctx, origin, destination, req.Date); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.repo.SearchFlights(ctx, origin, destination, req.Date)
	if err != nil {
		return nil, err
	}
	if flights == nil {
		flights = []models.Flight{}
	}
	if s.cache != nil {
		_ = s.cache.SetFlightSearch(ctx, origin, destination, req.Date, flights)
	}
	return flights, nil
}

func (s *flightService) GetFlight(ctx context.Context, id string) (*models.Flight, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, models.ErrInvalidUUID
	}
	return s.repo.GetFlightByID(ctx, id)
}

func (s *flightService) ListAirports(ctx context.Context) ([]models.Airport, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetAirports(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	airports, err := s.repo.ListAirports(ctx)
	if err != nil {
		return nil, err
	}
	if airports == nil {
		airports = []models.Airport{}
	}
	if s.cache != nil {
		_ = s.cache.SetAirports(ctx, airports)
	}
	return airports, nil
}
