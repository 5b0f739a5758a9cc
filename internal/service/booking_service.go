package service

import (
	"context"
	"fmt"
	"log"
	"time"

	models "github.com/dariofm/flightdeck/internal"
	"github.com/dariofm/flightdeck/internal/kafka"
	"github.com/dariofm/flightdeck/internal/ports"
	"github.com/google/uuid"
)

type bookingService struct {
	bookings ports.BookingRepository
	flights  ports.FlightRepository
	producer ports.EventProducer
	topic    string
}

type BookingServiceOption func(*bookingService)

// WithEventProducer enables publishing of booking events. Without it the
// service works the same, it just stays silent.
func WithEventProducer(producer ports.EventProducer, topic string) BookingServiceOption {
	return func(s *bookingService) {
		s.producer = producer
		s.topic = topic
	}
}

func NewBookingService(bookings ports.BookingRepository, flights ports.FlightRepository, opts ...BookingServiceOption) *bookingService {
	s := &bookingService{
		bookings: bookings,
		flights:  flights,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateBooking reserves seats for every passenger on the requested flight.
// The advisory availability read only produces friendlier failures; the
// actual guarantee comes from the conditional decrement inside the
// repository's transaction, so a stale read here can never oversell.
func (s *bookingService) CreateBooking(ctx context.Context, request *models.BookingRequest) (*models.Booking, error) {
	flightID, err := uuid.Parse(request.FlightID)
	if err != nil {
		return nil, models.ErrInvalidUUID
	}

	flight, err := s.flights.GetFlightByID(ctx, flightID.String())
	if err != nil {
		return nil, err
	}

	seats := len(request.Passengers)
	if flight.SeatsAvailable < seats {
		return nil, models.ErrInsufficientCapacity
	}

	passengers := make([]models.Passenger, seats)
	for i, p := range request.Passengers {
		passengers[i] = models.Passenger{
			ID:             uuid.New(),
			FirstName:      p.FirstName,
			LastName:       p.LastName,
			Email:          p.Email,
			DocumentNumber: p.DocumentNumber,
		}
	}

	// price is snapshotted here: later price changes on the flight must not
	// affect this booking's total
	booking := &models.Booking{
		ID:           uuid.New(),
		FlightID:     flightID,
		ContactEmail: request.ContactEmail,
		Passengers:   passengers,
		TotalAmount:  flight.Price * float64(seats),
		Status:       models.StatusConfirmed,
		CreatedAt:    time.Now().UTC(),
	}

	saved, err := s.bookings.CreateBooking(ctx, booking)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, "booking_created", saved)
	return saved, nil
}

func (s *bookingService) AllBookings(ctx context.Context, req models.GetBookingsRequest) (*models.AllBookingsResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = 10
	}

	bookings, nextCursor, err := s.bookings.GetBookingsPaginated(ctx, req.Email, req.Cursor, limit)
	if err != nil {
		return nil, fmt.Errorf("error fetching bookings: %w", err)
	}
	if bookings == nil {
		bookings = []models.BookingResponse{}
	}

	return &models.AllBookingsResponse{
		Bookings: bookings,
		Limit:    limit,
		Cursor:   nextCursor,
	}, nil
}

// publish is best effort: a booking is valid even when the event pipeline is
// down, so failures are logged and swallowed.
func (s *bookingService) publish(ctx context.Context, eventType string, booking *models.Booking) {
	if s.producer == nil || s.topic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:         eventType,
		BookingID:    booking.ID.String(),
		FlightID:     booking.FlightID.String(),
		ContactEmail: booking.ContactEmail,
		Passengers:   len(booking.Passengers),
		TotalAmount:  booking.TotalAmount,
		Status:       string(booking.Status),
		CreatedAt:    booking.CreatedAt,
	}
	if err := s.producer.Publish(ctx, s.topic, event.BookingID, event); err != nil {
		log.Printf("failed to publish %s event for booking %s: %v", eventType, event.BookingID, err)
	}
}
