package domain

// Customer owns zero or more bookings. The booking is the primary record; the
// customer's list is a back-reference kept for display, and every booking in it
// must point back at this customer.
type Customer struct {
	Name     string
	Bookings []*Booking
}
