package domain

import "fmt"

// Customer holds contact details and the bookings made in their name, in
// creation order.
type Customer struct {
	ID      int
	Name    string
	Phone   string
	Email   string
	Deleted bool

	bookings []*Booking
}

func NewCustomer(id int, name, phone, email string) *Customer {
	return &Customer{ID: id, Name: name, Phone: phone, Email: email}
}

// AddBooking appends a booking to the customer's list. Nil bookings and
// bookings whose ID is already present are rejected.
func (c *Customer) AddBooking(b *Booking) error {
	if b == nil {
		return fmt.Errorf("cannot add a nil booking")
	}
	for _, existing := range c.bookings {
		if existing.ID == b.ID {
			return fmt.Errorf("booking %d already belongs to customer %d: %w", b.ID, c.ID, ErrDuplicateID)
		}
	}
	c.bookings = append(c.bookings, b)
	return nil
}

func (c *Customer) RemoveBooking(b *Booking) {
	for i, existing := range c.bookings {
		if existing == b {
			c.bookings = append(c.bookings[:i], c.bookings[i+1:]...)
			return
		}
	}
}

// Bookings returns a copy of the customer's booking list in insertion order.
func (c *Customer) Bookings() []*Booking {
	out := make([]*Booking, len(c.bookings))
	copy(out, c.bookings)
	return out
}

// ActiveBookings returns the customer's non-cancelled bookings.
func (c *Customer) ActiveBookings() []*Booking {
	out := make([]*Booking, 0, len(c.bookings))
	for _, b := range c.bookings {
		if !b.Cancelled() {
			out = append(out, b)
		}
	}
	return out
}

// BookingByFlightID returns the first of the customer's bookings for the
// given flight, or nil if there is none.
func (c *Customer) BookingByFlightID(flightID int) *Booking {
	for _, b := range c.bookings {
		if b.Flight.ID == flightID {
			return b
		}
	}
	return nil
}

func (c *Customer) String() string {
	return fmt.Sprintf("Customer ID: %d, Name: %s, Phone: %s, Email: %s", c.ID, c.Name, c.Phone, c.Email)
}
