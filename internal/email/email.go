package email

import (
	"context"
	"log"

	"github.com/dariofm/flightdeck/internal/kafka"
)

// Sender delivers booking notifications to the contact email. The current
// implementation only logs; swapping in an SMTP or provider-backed sender is
// a matter of replacing this type behind the same method.
type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	log.Printf("notify %s: booking %s on flight %s is %s (%d passengers, total %.2f)",
		event.ContactEmail, event.BookingID, event.FlightID, event.Status,
		event.Passengers, event.TotalAmount)
	return nil
}
