package domain

import "time"

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCompleted BookingStatus = "COMPLETED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

type CabinClass string

const (
	CabinClassEconomy  CabinClass = "ECONOMY"
	CabinClassBusiness CabinClass = "BUSINESS"
	CabinClassFirst    CabinClass = "FIRST"
)

var CabinClasses = []CabinClass{CabinClassEconomy, CabinClassBusiness, CabinClassFirst}

// DateLayout is the wire format for flight dates. A flight date has no time
// component; it is stored as local midnight.
const DateLayout = "2006-01-02"

type Booking struct {
	BookingNumber string
	Date          time.Time
	Customer      *Customer
	From          string
	To            string
	Status        BookingStatus
	Class         CabinClass
}

// Today returns the current local date at day granularity. All mutation-window
// comparisons are made against this value.
func Today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
}

// ParseDate parses a yyyy-MM-dd calendar date in the local zone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.Local)
}
