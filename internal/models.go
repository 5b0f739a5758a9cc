package models

import (
	"time"

	"github.com/google/uuid"
)

type Airport struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	City    string `json:"city"`
	Country string `json:"country"`
}

type Flight struct {
	ID             uuid.UUID `json:"id"`
	FlightNumber   string    `json:"flight_number"`
	Origin         string    `json:"origin"`
	Destination    string    `json:"destination"`
	DepartureTime  time.Time `json:"departure_time"`
	ArrivalTime    time.Time `json:"arrival_time"`
	Price          float64   `json:"price"`
	SeatsTotal     int       `json:"seats_total"`
	SeatsAvailable int       `json:"seats_available"`
}

type Passenger struct {
	ID             uuid.UUID `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	DocumentNumber string    `json:"document_number,omitempty"`
}

type BookingStatus string

const (
	StatusReserved  BookingStatus = "RESERVED"
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCancelled BookingStatus = "CANCELLED"
)

type Booking struct {
	ID           uuid.UUID     `json:"id"`
	FlightID     uuid.UUID     `json:"flight_id"`
	ContactEmail string        `json:"contact_email"`
	Passengers   []Passenger   `json:"passengers"`
	TotalAmount  float64       `json:"total_amount"`
	Status       BookingStatus `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
}

type PassengerRequest struct {
	FirstName      string `json:"first_name" validate:"required,min=1,max=50"`
	LastName       string `json:"last_name" validate:"required,min=1,max=50"`
	Email          string `json:"email" validate:"required,email"`
	DocumentNumber string `json:"document_number" validate:"omitempty,max=30"`
}

type BookingRequest struct {
	FlightID     string             `json:"flight_id" validate:"required"`
	ContactEmail string             `json:"contact_email" validate:"required,email"`
	Passengers   []PassengerRequest `json:"passengers" validate:"required,min=1,dive"`
}

type BookingCreatedResponse struct {
	BookingID string `json:"booking_id"`
	Status    string `json:"status"`
}

// BookingResponse joins a booking with the current state of its flight,
// not the state at booking time.
type BookingResponse struct {
	Booking
	Flight *Flight `json:"flight,omitempty"`
}

type AllBookingsResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Limit    int               `json:"limit"`
	Cursor   string            `json:"cursor"`
}

type GetBookingsRequest struct {
	Email  string
	Cursor string
	Limit  int
}

type FlightSearchRequest struct {
	Origin      string    `json:"origin" validate:"required,iata"`
	Destination string    `json:"destination" validate:"required,iata"`
	Date        time.Time `json:"date" validate:"required"`
}
