package email

import (
	"context"
	"log"

	"github.com/Klimentov1992/flightbooking/internal/kafka"
)

// Sender is a stand-in for a real mail integration: it logs the
// notification instead of delivering it.
type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	log.Printf("send email to %s about %s for booking %d (flight %d)", event.Email, event.Type, event.BookingID, event.FlightID)
	return nil
}
