package domain

import (
	"fmt"
	"time"
)

const (
	cancellationFeeRate = 0.1
	rebookFeeRate       = 0.05
)

// Booking ties a customer to a seat on a flight. The price is the fare
// captured at booking time and is not recomputed later. The cancelled flag is
// monotonic: once set it is never cleared.
type Booking struct {
	ID          int
	Customer    *Customer
	Flight      *Flight
	BookingDate time.Time
	Price       float64

	cancelled       bool
	cancellationFee float64
	rebookFee       float64
}

func NewBooking(id int, customer *Customer, flight *Flight, bookingDate time.Time, price float64) (*Booking, error) {
	if customer == nil || flight == nil {
		return nil, fmt.Errorf("booking requires a customer and a flight: %w", ErrNotFound)
	}
	return &Booking{
		ID:          id,
		Customer:    customer,
		Flight:      flight,
		BookingDate: bookingDate,
		Price:       price,
	}, nil
}

func (b *Booking) Cancelled() bool {
	return b.cancelled
}

// Cancel marks the booking cancelled, removes the customer from the flight's
// passenger set and records a cancellation fee of 10% of the captured price.
// Cancelling an already cancelled booking is a no-op.
func (b *Booking) Cancel() {
	if b.cancelled {
		return
	}
	b.cancelled = true
	b.Flight.RemovePassenger(b.Customer)
	b.cancellationFee = b.Price * cancellationFeeRate
}

func (b *Booking) CancellationFee() float64 {
	return b.cancellationFee
}

func (b *Booking) RebookFee() float64 {
	return b.rebookFee
}

// Rebook moves the booking onto another flight at the given fare, charging a
// rebook fee of 5% of the old fare. Cancelled bookings cannot be rebooked.
func (b *Booking) Rebook(newFlight *Flight, newPrice float64) error {
	if newFlight == nil {
		return fmt.Errorf("rebook requires a flight: %w", ErrNotFound)
	}
	if b.cancelled {
		return ErrBookingCancelled
	}

	old := b.Flight
	old.RemoveBooking(b)
	b.Flight = newFlight
	old.RemovePassenger(b.Customer)

	b.rebookFee = b.Price * rebookFeeRate
	b.Price = newPrice
	newFlight.AddBooking(b)
	return newFlight.AddPassenger(b.Customer)
}

func (b *Booking) String() string {
	status := "active"
	if b.cancelled {
		status = "cancelled"
	}
	return fmt.Sprintf("Booking #%d - customer #%d on flight #%d - booked %s - $%g (%s)",
		b.ID, b.Customer.ID, b.Flight.ID, b.BookingDate.Format("2006-01-02"), b.Price, status)
}
