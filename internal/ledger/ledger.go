package ledger

import (
	"fmt"
	"sort"
	"time"

	"github.com/Domenick1991/flightledger/internal/domain"
)

// Ledger is the authoritative in-memory store of flights, customers and
// bookings. Entity IDs are unique within their map, every booking references
// a flight and a customer present in the other two maps, and maxBookingID
// never falls below the largest booking ID ever issued.
//
// Flights and customers are never physically removed: deleting one tombstones
// the record and hard-removes every booking that references it.
type Ledger struct {
	systemDate time.Time

	flights   map[int]*domain.Flight
	customers map[int]*domain.Customer
	bookings  map[int]*domain.Booking

	maxBookingID int
}

// New returns an empty ledger. systemDate is the reference date used for
// departure and pricing decisions.
func New(systemDate time.Time) *Ledger {
	return &Ledger{
		systemDate: systemDate,
		flights:    make(map[int]*domain.Flight),
		customers:  make(map[int]*domain.Customer),
		bookings:   make(map[int]*domain.Booking),
	}
}

func (l *Ledger) SystemDate() time.Time {
	return l.systemDate
}

// GenerateBookingID issues the next booking ID. The first call on a fresh
// ledger returns 1.
func (l *Ledger) GenerateBookingID() int {
	l.maxBookingID++
	return l.maxBookingID
}

// SetMaxBookingID raises the booking ID watermark, typically after loading
// persisted bookings. It never lowers it.
func (l *Ledger) SetMaxBookingID(id int) {
	if id > l.maxBookingID {
		l.maxBookingID = id
	}
}

func (l *Ledger) MaxBookingID() int {
	return l.maxBookingID
}

// AddFlight registers a flight. It fails if the flight ID is taken or if any
// flight, tombstoned or not, already has the same number and departure date.
func (l *Ledger) AddFlight(f *domain.Flight) error {
	if _, ok := l.flights[f.ID]; ok {
		return fmt.Errorf("flight %d: %w", f.ID, domain.ErrDuplicateID)
	}
	for _, existing := range l.flights {
		if existing.FlightNumber == f.FlightNumber && sameDate(existing.DepartureDate, f.DepartureDate) {
			return fmt.Errorf("flight %s on %s: %w", f.FlightNumber, f.DepartureDate.Format("2006-01-02"), domain.ErrScheduleConflict)
		}
	}
	l.flights[f.ID] = f
	return nil
}

func (l *Ledger) AddCustomer(c *domain.Customer) error {
	if _, ok := l.customers[c.ID]; ok {
		return fmt.Errorf("customer %d: %w", c.ID, domain.ErrDuplicateID)
	}
	l.customers[c.ID] = c
	return nil
}

// AddBooking registers a booking. Seat availability is the caller's problem;
// the ledger only checks identity and that both references are set.
func (l *Ledger) AddBooking(b *domain.Booking) error {
	if b.Customer == nil || b.Flight == nil {
		return fmt.Errorf("booking %d: customer or flight not set: %w", b.ID, domain.ErrNotFound)
	}
	if _, ok := l.bookings[b.ID]; ok {
		return fmt.Errorf("booking %d: %w", b.ID, domain.ErrDuplicateID)
	}
	l.bookings[b.ID] = b
	return nil
}

// FlightByID returns the flight with the given ID, tombstoned or not.
func (l *Ledger) FlightByID(id int) (*domain.Flight, error) {
	f, ok := l.flights[id]
	if !ok {
		return nil, fmt.Errorf("flight %d: %w", id, domain.ErrNotFound)
	}
	return f, nil
}

func (l *Ledger) CustomerByID(id int) (*domain.Customer, error) {
	c, ok := l.customers[id]
	if !ok {
		return nil, fmt.Errorf("customer %d: %w", id, domain.ErrNotFound)
	}
	return c, nil
}

func (l *Ledger) BookingByID(id int) (*domain.Booking, error) {
	b, ok := l.bookings[id]
	if !ok {
		return nil, fmt.Errorf("booking %d: %w", id, domain.ErrNotFound)
	}
	return b, nil
}

// Flights returns all flights ordered by ID, tombstones included.
func (l *Ledger) Flights() []*domain.Flight {
	out := make([]*domain.Flight, 0, len(l.flights))
	for _, f := range l.flights {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (l *Ledger) Customers() []*domain.Customer {
	out := make([]*domain.Customer, 0, len(l.customers))
	for _, c := range l.customers {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (l *Ledger) Bookings() []*domain.Booking {
	out := make([]*domain.Booking, 0, len(l.bookings))
	for _, b := range l.bookings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// NextFlightID returns the next free flight ID.
func (l *Ledger) NextFlightID() int {
	max := 0
	for id := range l.flights {
		if id > max {
			max = id
		}
	}
	return max + 1
}

func (l *Ledger) NextCustomerID() int {
	max := 0
	for id := range l.customers {
		if id > max {
			max = id
		}
	}
	return max + 1
}

// DeleteFlight tombstones the flight and hard-removes every booking that
// references it, from the booking map and from the owning customers' lists.
// The flight record itself stays retrievable by ID.
func (l *Ledger) DeleteFlight(id int) error {
	f, err := l.FlightByID(id)
	if err != nil {
		return err
	}
	f.Deleted = true
	for bid, b := range l.bookings {
		if b.Flight == f {
			b.Customer.RemoveBooking(b)
			f.RemoveBooking(b)
			f.RemovePassenger(b.Customer)
			delete(l.bookings, bid)
		}
	}
	return nil
}

// DeleteCustomer tombstones the customer and hard-removes their bookings the
// same way DeleteFlight does.
func (l *Ledger) DeleteCustomer(id int) error {
	c, err := l.CustomerByID(id)
	if err != nil {
		return err
	}
	c.Deleted = true
	for bid, b := range l.bookings {
		if b.Customer == c {
			c.RemoveBooking(b)
			b.Flight.RemoveBooking(b)
			b.Flight.RemovePassenger(c)
			delete(l.bookings, bid)
		}
	}
	return nil
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
