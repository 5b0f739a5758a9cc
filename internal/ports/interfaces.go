package ports

import (
	"context"
	"time"

	models "github.com/dariofm/flightdeck/internal"
)

type FlightRepository interface {
	GetFlightByID(ctx context.Context, id string) (*models.Flight, error)
	SearchFlights(ctx context.Context, origin, destination string, day time.Time) ([]models.Flight, error)
	ListAirports(ctx context.Context) ([]models.Airport, error)
}

type BookingRepository interface {
	CreateBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error)
	GetBookingsPaginated(ctx context.Context, email, afterCursor string, limit int) ([]models.BookingResponse, string, error)
}

type BookingService interface {
	CreateBooking(ctx context.Context, request *models.BookingRequest) (*models.Booking, error)
	AllBookings(ctx context.Context, req models.GetBookingsRequest) (*models.AllBookingsResponse, error)
}

type FlightService interface {
	SearchFlights(ctx context.Context, req *models.FlightSearchRequest) ([]models.Flight, error)
	GetFlight(ctx context.Context, id string) (*models.Flight, error)
	ListAirports(ctx context.Context) ([]models.Airport, error)
}

// Cache is a read-through cache for reference data. Implementations must be
// safe for concurrent use; a nil Cache disables caching.
type Cache interface {
	GetAirports(ctx context.Context) ([]models.Airport, error)
	SetAirports(ctx context.Context, airports []models.Airport) error
	GetFlightSearch(ctx context.Context, origin, destination string, day time.Time) ([]models.Flight, error)
	SetFlightSearch(ctx context.Context, origin, destination string, day time.Time, flights []models.Flight) error
}

type EventProducer interface {
	Publish(ctx context.Context, topic, key string, payload interface{}) error
}
