package mocks

import (
	"context"
	"time"

	models "github.com/dariofm/flightdeck/internal"
	"github.com/stretchr/testify/mock"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) CreateBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	args := m.Called(ctx, booking)
	if fn, ok := args.Get(0).(func(context.Context, *models.Booking) *models.Booking); ok {
		return fn(ctx, booking), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetBookingsPaginated(ctx context.Context, email, afterCursor string, limit int) ([]models.BookingResponse, string, error) {
	args := m.Called(ctx, email, afterCursor, limit)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]models.BookingResponse), args.String(1), args.Error(2)
}

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) GetFlightByID(ctx context.Context, id string) (*models.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Flight), args.Error(1)
}

func (m *MockFlightRepository) SearchFlights(ctx context.Context, origin, destination string, day time.Time) ([]models.Flight, error) {
	args := m.Called(ctx, origin, destination, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Flight), args.Error(1)
}

func (m *MockFlightRepository) ListAirports(ctx context.Context) ([]models.Airport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Airport), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetAirports(ctx context.Context) ([]models.Airport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Airport), args.Error(1)
}

func (m *MockCache) SetAirports(ctx context.Context, airports []models.Airport) error {
	args := m.Called(ctx, airports)
	return args.Error(0)
}

func (m *MockCache) GetFlightSearch(ctx context.Context, origin, destination string, day time.Time) ([]models.Flight, error) {
	args := m.Called(ctx, origin, destination, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Flight), args.Error(1)
}

func (m *MockCache) SetFlightSearch(ctx context.Context, origin, destination string, day time.Time, flights []models.Flight) error {
	args := m.Called(ctx, origin, destination, day, flights)
	return args.Error(0)
}

type MockEventProducer struct {
	mock.Mock
}

func (m *MockEventProducer) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	args := m.Called(ctx, topic, key, payload)
	return args.Error(0)
}
