package store

import (
	"strings"
	"sync"

	"github.com/turingair/flightassist/internal/domain"
)

// BookingStore is the authoritative in-memory collection of bookings and
// customers. It is volatile: the process rebuilds it from seed data on start.
type BookingStore interface {
	// FindBooking matches on bookingNumber and customer name jointly,
	// case-insensitively. A number match with a mismatched name reports
	// absence, same as no match at all.
	FindBooking(bookingNumber, name string) (domain.Booking, bool)
	// ListAll returns copies of every booking in stable insertion order.
	ListAll() []domain.Booking
	// Update runs fn against the record matching the joint key while the
	// write lock is held, so a check inside fn and the mutation it guards
	// are a single atomic step. It reports false when no record matches;
	// an error from fn is returned as-is and fn must not have touched the
	// record in that case. Records are never removed.
	Update(bookingNumber, name string, fn func(*domain.Booking) error) (bool, error)
	FindCustomer(name string) (*domain.Customer, bool)
}

type MemoryStore struct {
	mu        sync.RWMutex
	bookings  []*domain.Booking
	byNumber  map[string]*domain.Booking
	customers map[string]*domain.Customer
}

func New() *MemoryStore {
	return &MemoryStore{
		byNumber:  make(map[string]*domain.Booking),
		customers: make(map[string]*domain.Customer),
	}
}

// Add registers a booking, reusing or creating the owning customer record and
// keeping its back-reference list consistent.
func (s *MemoryStore) Add(b *domain.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(b.Customer.Name)
	customer, ok := s.customers[key]
	if !ok {
		customer = &domain.Customer{Name: b.Customer.Name}
		s.customers[key] = customer
	}
	b.Customer = customer
	customer.Bookings = append(customer.Bookings, b)

	s.bookings = append(s.bookings, b)
	s.byNumber[strings.ToLower(b.BookingNumber)] = b
}

func (s *MemoryStore) FindBooking(bookingNumber, name string) (domain.Booking, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.byNumber[strings.ToLower(bookingNumber)]
	if !ok || !strings.EqualFold(b.Customer.Name, name) {
		return domain.Booking{}, false
	}
	return *b, true
}

func (s *MemoryStore) ListAll() []domain.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		out = append(out, *b)
	}
	return out
}

func (s *MemoryStore) Update(bookingNumber, name string, fn func(*domain.Booking) error) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.byNumber[strings.ToLower(bookingNumber)]
	if !ok || !strings.EqualFold(current.Customer.Name, name) {
		return false, nil
	}
	return true, fn(current)
}

func (s *MemoryStore) FindCustomer(name string) (*domain.Customer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	customer, ok := s.customers[strings.ToLower(name)]
	return customer, ok
}

var _ BookingStore = (*MemoryStore)(nil)
