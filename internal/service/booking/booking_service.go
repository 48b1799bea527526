package booking

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/turingair/flightassist/internal/domain"
	"github.com/turingair/flightassist/internal/kafka"
	"github.com/turingair/flightassist/internal/store"
)

type BookingUseCase interface {
	List(ctx context.Context) []BookingDetails
	GetDetails(ctx context.Context, bookingNumber, name string) (BookingDetails, error)
	Change(ctx context.Context, bookingNumber, name, newDate, from, to string) error
	Cancel(ctx context.Context, bookingNumber, name string) error
	CompleteDepartedBookings(ctx context.Context) ([]BookingDetails, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// BookingDetails is the read-only projection handed to callers. It keeps the
// typed status and cabin class; string labels appear only at the tool boundary.
type BookingDetails struct {
	BookingNumber string
	Name          string
	Date          time.Time
	Status        domain.BookingStatus
	From          string
	To            string
	Class         domain.CabinClass
}

type BookingService struct {
	store    store.BookingStore
	producer Producer
	topic    string
}

type BookingServiceOption func(*BookingService)

// WithProducer wires booking lifecycle events to kafka. Without it the
// service runs event-less.
func WithProducer(producer Producer, topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.producer = producer
		s.topic = topic
	}
}

func NewBookingService(store store.BookingStore, opts ...BookingServiceOption) *BookingService {
	service := &BookingService{store: store}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) List(ctx context.Context) []BookingDetails {
	bookings := s.store.ListAll()
	details := make([]BookingDetails, 0, len(bookings))
	for _, b := range bookings {
		details = append(details, toBookingDetails(b))
	}
	return details
}

func (s *BookingService) GetDetails(ctx context.Context, bookingNumber, name string) (BookingDetails, error) {
	b, err := s.findBooking(bookingNumber, name)
	if err != nil {
		return BookingDetails{}, err
	}
	return toBookingDetails(b), nil
}

// Change replaces the date, origin and destination of a booking. Changes are
// refused once the flight departs within 24 hours. The checks and the field
// assignment run as one step under the store lock, so no field is touched
// until every check has passed and a concurrent mutation of the same booking
// cannot interleave.
func (s *BookingService) Change(ctx context.Context, bookingNumber, name, newDate, from, to string) error {
	var changed domain.Booking
	found, err := s.store.Update(bookingNumber, name, func(b *domain.Booking) error {
		if b.Date.Before(domain.Today().AddDate(0, 0, 1)) {
			return ErrChangeWindow
		}
		date, perr := domain.ParseDate(newDate)
		if perr != nil {
			return ErrInvalidDate
		}
		b.Date = date
		b.From = from
		b.To = to
		changed = *b
		return nil
	})
	if !found {
		return &NotFoundError{BookingNumber: bookingNumber, Name: name}
	}
	if err != nil {
		return err
	}

	log.Info().Str("bookingNumber", changed.BookingNumber).Str("date", newDate).
		Str("from", from).Str("to", to).Msg("booking changed")
	s.publish(ctx, kafka.EventBookingChanged, changed)
	return nil
}

// Cancel flips the booking status to CANCELLED. Cancellation is refused
// within 48 hours of departure. Re-cancelling an already cancelled booking is
// accepted silently.
func (s *BookingService) Cancel(ctx context.Context, bookingNumber, name string) error {
	var cancelled domain.Booking
	found, err := s.store.Update(bookingNumber, name, func(b *domain.Booking) error {
		if b.Date.Before(domain.Today().AddDate(0, 0, 2)) {
			return ErrCancelWindow
		}
		b.Status = domain.BookingStatusCancelled
		cancelled = *b
		return nil
	})
	if !found {
		return &NotFoundError{BookingNumber: bookingNumber, Name: name}
	}
	if err != nil {
		return err
	}

	log.Info().Str("bookingNumber", cancelled.BookingNumber).Msg("booking cancelled")
	s.publish(ctx, kafka.EventBookingCancelled, cancelled)
	return nil
}

// CompleteDepartedBookings moves CONFIRMED bookings whose flight date has
// passed to COMPLETED. Invoked periodically by the worker.
func (s *BookingService) CompleteDepartedBookings(ctx context.Context) ([]BookingDetails, error) {
	today := domain.Today()
	var completed []BookingDetails
	for _, b := range s.store.ListAll() {
		if b.Status != domain.BookingStatusConfirmed || !b.Date.Before(today) {
			continue
		}
		// Re-check under the lock: the booking may have been cancelled
		// between listing and updating.
		var done domain.Booking
		applied := false
		found, _ := s.store.Update(b.BookingNumber, b.Customer.Name, func(cur *domain.Booking) error {
			if cur.Status != domain.BookingStatusConfirmed || !cur.Date.Before(today) {
				return nil
			}
			cur.Status = domain.BookingStatusCompleted
			done = *cur
			applied = true
			return nil
		})
		if !found || !applied {
			continue
		}
		s.publish(ctx, kafka.EventBookingCompleted, done)
		completed = append(completed, toBookingDetails(done))
	}
	return completed, nil
}

func (s *BookingService) findBooking(bookingNumber, name string) (domain.Booking, error) {
	b, ok := s.store.FindBooking(bookingNumber, name)
	if !ok {
		return domain.Booking{}, &NotFoundError{BookingNumber: bookingNumber, Name: name}
	}
	return b, nil
}

func (s *BookingService) publish(ctx context.Context, eventType string, b domain.Booking) {
	if s.producer == nil || s.topic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:          eventType,
		BookingNumber: b.BookingNumber,
		Name:          b.Customer.Name,
		Date:          b.Date.Format(domain.DateLayout),
		From:          b.From,
		To:            b.To,
		Status:        string(b.Status),
	}
	if err := s.producer.Publish(ctx, s.topic, b.BookingNumber, event); err != nil {
		log.Warn().Err(err).Str("type", eventType).
			Str("bookingNumber", b.BookingNumber).Msg("failed to publish booking event")
	}
}

func toBookingDetails(b domain.Booking) BookingDetails {
	return BookingDetails{
		BookingNumber: b.BookingNumber,
		Name:          b.Customer.Name,
		Date:          b.Date,
		Status:        b.Status,
		From:          b.From,
		To:            b.To,
		Class:         b.Class,
	}
}

var _ BookingUseCase = (*BookingService)(nil)
