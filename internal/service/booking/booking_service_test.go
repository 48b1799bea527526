package booking

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/turingair/flightassist/internal/domain"
	"github.com/turingair/flightassist/internal/kafka"
	"github.com/turingair/flightassist/internal/store"
)

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

func seedBooking(number, name string, daysFromNow int) *domain.Booking {
	return &domain.Booking{
		BookingNumber: number,
		Date:          domain.Today().AddDate(0, 0, daysFromNow),
		Customer:      &domain.Customer{Name: name},
		From:          "武汉",
		To:            "西安",
		Status:        domain.BookingStatusConfirmed,
		Class:         domain.CabinClassBusiness,
	}
}

func newTestStore(bookings ...*domain.Booking) *store.MemoryStore {
	s := store.New()
	for _, b := range bookings {
		s.Add(b)
	}
	return s
}

func TestBookingService_List(t *testing.T) {
	s := newTestStore(seedBooking("101", "徐庶", 4), seedBooking("102", "诸葛", 6))
	service := NewBookingService(s)

	details := service.List(context.Background())
	assert.Len(t, details, 2)
	assert.Equal(t, "101", details[0].BookingNumber)
	assert.Equal(t, "徐庶", details[0].Name)
	assert.Equal(t, domain.BookingStatusConfirmed, details[0].Status)
	assert.Equal(t, "102", details[1].BookingNumber)
}

func TestBookingService_List_EmptyStore(t *testing.T) {
	service := NewBookingService(newTestStore())
	assert.Empty(t, service.List(context.Background()))
}

func TestBookingService_GetDetails_Success(t *testing.T) {
	service := NewBookingService(newTestStore(seedBooking("101", "徐庶", 4)))

	details, err := service.GetDetails(context.Background(), "101", "徐庶")
	assert.NoError(t, err)
	assert.Equal(t, "101", details.BookingNumber)
	assert.Equal(t, "徐庶", details.Name)
	assert.Equal(t, "武汉", details.From)
	assert.Equal(t, "西安", details.To)
	assert.Equal(t, domain.CabinClassBusiness, details.Class)
}

func TestBookingService_GetDetails_NotFound(t *testing.T) {
	service := NewBookingService(newTestStore(seedBooking("101", "徐庶", 4)))

	testCases := []struct {
		name          string
		bookingNumber string
		customer      string
	}{
		{"unknown number", "999", "徐庶"},
		{"mismatched name", "101", "诸葛"},
		{"both unknown", "999", "nobody"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.GetDetails(context.Background(), tc.bookingNumber, tc.customer)
			assert.Error(t, err)
			assert.True(t, IsNotFound(err))
			assert.Contains(t, err.Error(), tc.bookingNumber)
			assert.Contains(t, err.Error(), tc.customer)
		})
	}
}

func TestBookingService_Change_Success(t *testing.T) {
	service := NewBookingService(newTestStore(seedBooking("101", "徐庶", 4)))
	ctx := context.Background()

	err := service.Change(ctx, "101", "徐庶", "2099-01-01", "北京", "上海")
	assert.NoError(t, err)

	details, err := service.GetDetails(ctx, "101", "徐庶")
	assert.NoError(t, err)
	assert.Equal(t, "2099-01-01", details.Date.Format(domain.DateLayout))
	assert.Equal(t, "北京", details.From)
	assert.Equal(t, "上海", details.To)
	// status and class stay untouched
	assert.Equal(t, domain.BookingStatusConfirmed, details.Status)
	assert.Equal(t, domain.CabinClassBusiness, details.Class)
}

func TestBookingService_Change_InsideWindow(t *testing.T) {
	// departs today: inside the 24h window
	service := NewBookingService(newTestStore(seedBooking("101", "徐庶", 0)))
	ctx := context.Background()

	// the check is not affected by retries
	for i := 0; i < 3; i++ {
		err := service.Change(ctx, "101", "徐庶", "2099-01-01", "北京", "上海")
		assert.ErrorIs(t, err, ErrChangeWindow)
	}

	details, err := service.GetDetails(ctx, "101", "徐庶")
	assert.NoError(t, err)
	assert.Equal(t, domain.Today(), details.Date)
	assert.Equal(t, "武汉", details.From)
	assert.Equal(t, "西安", details.To)
}

func TestBookingService_Change_TomorrowAllowed(t *testing.T) {
	// departs exactly tomorrow: the strict before-tomorrow check lets it pass
	service := NewBookingService(newTestStore(seedBooking("101", "徐庶", 1)))

	err := service.Change(context.Background(), "101", "徐庶", "2099-01-01", "北京", "上海")
	assert.NoError(t, err)
}

func TestBookingService_Change_InvalidDate(t *testing.T) {
	service := NewBookingService(newTestStore(seedBooking("101", "徐庶", 4)))
	ctx := context.Background()

	err := service.Change(ctx, "101", "徐庶", "01/02/2099", "北京", "上海")
	assert.ErrorIs(t, err, ErrInvalidDate)

	// nothing was applied
	details, _ := service.GetDetails(ctx, "101", "徐庶")
	assert.Equal(t, "武汉", details.From)
	assert.Equal(t, "西安", details.To)
}

func TestBookingService_Change_NotFound(t *testing.T) {
	service := NewBookingService(newTestStore(seedBooking("101", "徐庶", 4)))

	err := service.Change(context.Background(), "101", "诸葛", "2099-01-01", "北京", "上海")
	assert.True(t, IsNotFound(err))
}

func TestBookingService_Cancel_Success(t *testing.T) {
	service := NewBookingService(newTestStore(seedBooking("101", "徐庶", 4)))
	ctx := context.Background()

	err := service.Cancel(ctx, "101", "徐庶")
	assert.NoError(t, err)

	details, _ := service.GetDetails(ctx, "101", "徐庶")
	assert.Equal(t, domain.BookingStatusCancelled, details.Status)
}

func TestBookingService_Cancel_InsideWindow(t *testing.T) {
	// departs tomorrow: inside the 48h window
	service := NewBookingService(newTestStore(seedBooking("101", "徐庶", 1)))
	ctx := context.Background()

	err := service.Cancel(ctx, "101", "徐庶")
	assert.ErrorIs(t, err, ErrCancelWindow)

	details, _ := service.GetDetails(ctx, "101", "徐庶")
	assert.Equal(t, domain.BookingStatusConfirmed, details.Status)
}

func TestBookingService_Cancel_Twice(t *testing.T) {
	// re-cancelling a cancelled booking is accepted silently
	service := NewBookingService(newTestStore(seedBooking("101", "徐庶", 4)))
	ctx := context.Background()

	assert.NoError(t, service.Cancel(ctx, "101", "徐庶"))
	assert.NoError(t, service.Cancel(ctx, "101", "徐庶"))

	details, _ := service.GetDetails(ctx, "101", "徐庶")
	assert.Equal(t, domain.BookingStatusCancelled, details.Status)
}

func TestBookingService_Cancel_PublishesEvent(t *testing.T) {
	mockProducer := &MockProducer{}
	service := NewBookingService(
		newTestStore(seedBooking("101", "徐庶", 4)),
		WithProducer(mockProducer, "booking_events"),
	)
	ctx := context.Background()

	mockProducer.On("Publish", ctx, "booking_events", "101", mock.AnythingOfType("kafka.BookingEvent")).
		Return(nil).Once()

	assert.NoError(t, service.Cancel(ctx, "101", "徐庶"))

	mockProducer.AssertExpectations(t)
	event := mockProducer.Calls[0].Arguments.Get(3).(kafka.BookingEvent)
	assert.Equal(t, kafka.EventBookingCancelled, event.Type)
	assert.Equal(t, "徐庶", event.Name)
	assert.Equal(t, string(domain.BookingStatusCancelled), event.Status)
}

func TestBookingService_Change_PublishFailureIsNotFatal(t *testing.T) {
	mockProducer := &MockProducer{}
	service := NewBookingService(
		newTestStore(seedBooking("101", "徐庶", 4)),
		WithProducer(mockProducer, "booking_events"),
	)
	ctx := context.Background()

	mockProducer.On("Publish", ctx, "booking_events", "101", mock.Anything).
		Return(assert.AnError).Once()

	assert.NoError(t, service.Change(ctx, "101", "徐庶", "2099-01-01", "北京", "上海"))
	mockProducer.AssertExpectations(t)
}

func TestBookingService_CompleteDepartedBookings(t *testing.T) {
	departed := seedBooking("101", "徐庶", -1)
	cancelled := seedBooking("102", "诸葛", -2)
	cancelled.Status = domain.BookingStatusCancelled
	upcoming := seedBooking("103", "百里", 3)

	service := NewBookingService(newTestStore(departed, cancelled, upcoming))
	ctx := context.Background()

	completed, err := service.CompleteDepartedBookings(ctx)
	assert.NoError(t, err)
	assert.Len(t, completed, 1)
	assert.Equal(t, "101", completed[0].BookingNumber)

	details, _ := service.GetDetails(ctx, "101", "徐庶")
	assert.Equal(t, domain.BookingStatusCompleted, details.Status)
	details, _ = service.GetDetails(ctx, "102", "诸葛")
	assert.Equal(t, domain.BookingStatusCancelled, details.Status)
	details, _ = service.GetDetails(ctx, "103", "百里")
	assert.Equal(t, domain.BookingStatusConfirmed, details.Status)
}

func TestBookingService_ConcurrentReadsAndMutations(t *testing.T) {
	s := newTestStore(seedBooking("101", "徐庶", 4), seedBooking("102", "诸葛", 6))
	service := NewBookingService(s)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				assert.Len(t, service.List(ctx), 2)
				_, _ = service.GetDetails(ctx, "101", "徐庶")
			}
		}()
	}
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				_ = service.Change(ctx, "101", "徐庶", "2099-01-01", "北京", "上海")
				_ = service.Cancel(ctx, "102", "诸葛")
			}
		}()
	}
	wg.Wait()

	details, err := service.GetDetails(ctx, "101", "徐庶")
	assert.NoError(t, err)
	// no torn write: the three changed fields land together
	assert.Equal(t, "2099-01-01", details.Date.Format(domain.DateLayout))
	assert.Equal(t, "北京", details.From)
	assert.Equal(t, "上海", details.To)
}

// A cancellation must survive a Change racing against it on the same
// booking: once CANCELLED, the status never reverts to CONFIRMED.
func TestBookingService_ConcurrentChangeAndCancel_SameBooking(t *testing.T) {
	ctx := context.Background()
	for i := 0; i < 200; i++ {
		s := newTestStore(seedBooking("101", "徐庶", 4))
		service := NewBookingService(s)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = service.Change(ctx, "101", "徐庶", "2099-01-01", "北京", "上海")
		}()
		go func() {
			defer wg.Done()
			assert.NoError(t, service.Cancel(ctx, "101", "徐庶"))
		}()
		wg.Wait()

		details, err := service.GetDetails(ctx, "101", "徐庶")
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusCancelled, details.Status)
	}
}

func TestBookingService_Change_KeepsCancelledStatus(t *testing.T) {
	s := newTestStore(seedBooking("101", "徐庶", 4))
	service := NewBookingService(s)
	ctx := context.Background()

	assert.NoError(t, service.Cancel(ctx, "101", "徐庶"))
	assert.NoError(t, service.Change(ctx, "101", "徐庶", "2099-01-01", "北京", "上海"))

	details, err := service.GetDetails(ctx, "101", "徐庶")
	assert.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCancelled, details.Status)
	assert.Equal(t, "北京", details.From)
}
