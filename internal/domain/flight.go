package domain

import (
	"fmt"
	"time"
)

// Flight is a scheduled flight in the ledger. The passenger set and booking
// list are owned by the flight; callers get copies and mutate through methods.
type Flight struct {
	ID            int
	FlightNumber  string
	Origin        string
	Destination   string
	DepartureDate time.Time
	NumberOfSeats int
	BasePrice     float64
	Deleted       bool

	passengers map[int]*Customer
	bookings   []*Booking
}

func NewFlight(id int, flightNumber, origin, destination string, departureDate time.Time, numberOfSeats int, basePrice float64) *Flight {
	return &Flight{
		ID:            id,
		FlightNumber:  flightNumber,
		Origin:        origin,
		Destination:   destination,
		DepartureDate: departureDate,
		NumberOfSeats: numberOfSeats,
		BasePrice:     basePrice,
		passengers:    make(map[int]*Customer),
	}
}

// AddPassenger puts the customer in the passenger set. Adding a customer who
// is already a passenger is a no-op.
func (f *Flight) AddPassenger(c *Customer) error {
	if c == nil {
		return fmt.Errorf("cannot add a nil passenger")
	}
	f.passengers[c.ID] = c
	return nil
}

// RemovePassenger drops the customer from the passenger set unless they still
// hold another non-cancelled booking on this flight.
func (f *Flight) RemovePassenger(c *Customer) {
	if c == nil {
		return
	}
	for _, b := range f.bookings {
		if b.Customer.ID == c.ID && b.Flight == f && !b.Cancelled() {
			return
		}
	}
	delete(f.passengers, c.ID)
}

// Passengers returns a copy of the passenger set.
func (f *Flight) Passengers() []*Customer {
	out := make([]*Customer, 0, len(f.passengers))
	for _, c := range f.passengers {
		out = append(out, c)
	}
	return out
}

func (f *Flight) AddBooking(b *Booking) {
	if b == nil {
		return
	}
	f.bookings = append(f.bookings, b)
}

func (f *Flight) RemoveBooking(b *Booking) {
	for i, existing := range f.bookings {
		if existing == b {
			f.bookings = append(f.bookings[:i], f.bookings[i+1:]...)
			return
		}
	}
}

// Bookings returns the non-cancelled bookings held against this flight.
func (f *Flight) Bookings() []*Booking {
	out := make([]*Booking, 0, len(f.bookings))
	for _, b := range f.bookings {
		if !b.Cancelled() {
			out = append(out, b)
		}
	}
	return out
}

// BookedSeats counts passengers with a live booking on the flight.
func (f *Flight) BookedSeats() int {
	return len(f.passengers)
}

func (f *Flight) SeatsLeft() int {
	return f.NumberOfSeats - f.BookedSeats()
}

func (f *Flight) IsFullyBooked() bool {
	return f.BookedSeats() >= f.NumberOfSeats
}

// HasNotDeparted reports whether the flight departs strictly after asOf.
func (f *Flight) HasNotDeparted(asOf time.Time) bool {
	return f.DepartureDate.After(asOf)
}

// CalculatePrice computes the fare for one seat as of the given date.
//
// The base price is scaled by an urgency multiplier (x1 with six or more days
// to departure, x2 within five days, x3 on or after the departure day) and a
// scarcity surcharge of 50 per seat below five remaining is added on top. The
// two effects are additive. A fully booked flight returns the unmodified base
// price; callers are expected to reject the booking before getting here.
func (f *Flight) CalculatePrice(asOf time.Time) (int, error) {
	bookedSeats := f.BookedSeats()
	if bookedSeats >= f.NumberOfSeats {
		return int(f.BasePrice), nil
	}

	daysLeft := daysBetween(asOf, f.DepartureDate)

	priceFactor := 1
	switch {
	case daysLeft >= 6:
		priceFactor = 1
	case daysLeft >= 1:
		priceFactor = 2
	default:
		priceFactor = 3
	}

	finalPrice := f.BasePrice * float64(priceFactor)

	seatsLeft := f.NumberOfSeats - bookedSeats
	if seatsLeft <= 0 {
		return 0, ErrNoSeatsAvailable
	}
	if seatsLeft <= 4 {
		finalPrice += 50.0 * float64(5-seatsLeft)
	}

	return int(finalPrice), nil
}

func (f *Flight) String() string {
	return fmt.Sprintf("Flight #%d - %s - %s to %s on %s - Seats: %d - Price: $%g",
		f.ID, f.FlightNumber, f.Origin, f.Destination, f.DepartureDate.Format("02/01/2006"), f.NumberOfSeats, f.BasePrice)
}

// daysBetween returns the number of whole calendar days from a to b, negative
// when b is before a.
func daysBetween(a, b time.Time) int {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
