package notify

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/turingair/flightassist/internal/kafka"
)

// Notifier delivers booking event notifications to customers. The demo
// delivery channel is the log.
type Notifier struct{}

func NewNotifier() *Notifier {
	return &Notifier{}
}

func (n *Notifier) Notify(ctx context.Context, event kafka.BookingEvent) error {
	log.Info().
		Str("customer", event.Name).
		Str("bookingNumber", event.BookingNumber).
		Str("type", event.Type).
		Str("date", event.Date).
		Str("route", event.From+"-"+event.To).
		Str("status", event.Status).
		Msg("notify customer")
	return nil
}
