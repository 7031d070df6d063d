package ledger

import (
	"testing"
	"time"

	"github.com/Domenick1991/flightledger/internal/domain"
	"github.com/stretchr/testify/assert"
)

var systemDate = time.Date(2020, 11, 11, 0, 0, 0, 0, time.UTC)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newBooking(t *testing.T, led *Ledger, id int, c *domain.Customer, f *domain.Flight) *domain.Booking {
	t.Helper()
	b, err := domain.NewBooking(id, c, f, systemDate, 100)
	assert.NoError(t, err)
	assert.NoError(t, led.AddBooking(b))
	assert.NoError(t, c.AddBooking(b))
	f.AddBooking(b)
	assert.NoError(t, f.AddPassenger(c))
	led.SetMaxBookingID(id)
	return b
}

func TestLedger_AddFlight_DuplicateID(t *testing.T) {
	led := New(systemDate)
	assert.NoError(t, led.AddFlight(domain.NewFlight(1, "FL100", "LHR", "CDG", date(2020, 11, 21), 10, 100)))

	err := led.AddFlight(domain.NewFlight(1, "FL200", "LHR", "AMS", date(2020, 11, 22), 10, 100))
	assert.ErrorIs(t, err, domain.ErrDuplicateID)
}

func TestLedger_AddFlight_ScheduleConflict(t *testing.T) {
	led := New(systemDate)
	assert.NoError(t, led.AddFlight(domain.NewFlight(1, "FL100", "LHR", "CDG", date(2020, 11, 21), 10, 100)))

	err := led.AddFlight(domain.NewFlight(2, "FL100", "MAN", "CDG", date(2020, 11, 21), 20, 90))
	assert.ErrorIs(t, err, domain.ErrScheduleConflict)

	// A different departure date is fine.
	assert.NoError(t, led.AddFlight(domain.NewFlight(3, "FL100", "LHR", "CDG", date(2020, 11, 22), 10, 100)))
}

func TestLedger_AddFlight_ScheduleConflictIncludesTombstones(t *testing.T) {
	led := New(systemDate)
	assert.NoError(t, led.AddFlight(domain.NewFlight(1, "FL100", "LHR", "CDG", date(2020, 11, 21), 10, 100)))
	assert.NoError(t, led.DeleteFlight(1))

	err := led.AddFlight(domain.NewFlight(2, "FL100", "LHR", "CDG", date(2020, 11, 21), 10, 100))
	assert.ErrorIs(t, err, domain.ErrScheduleConflict)
}

func TestLedger_AddCustomer_DuplicateID(t *testing.T) {
	led := New(systemDate)
	assert.NoError(t, led.AddCustomer(domain.NewCustomer(1, "Alice", "000", "alice@example.com")))

	err := led.AddCustomer(domain.NewCustomer(1, "Bob", "111", "bob@example.com"))
	assert.ErrorIs(t, err, domain.ErrDuplicateID)
}

func TestLedger_GenerateBookingID(t *testing.T) {
	led := New(systemDate)

	assert.Equal(t, 1, led.GenerateBookingID())
	assert.Equal(t, 2, led.GenerateBookingID())

	led.SetMaxBookingID(10)
	assert.Equal(t, 11, led.GenerateBookingID())

	// Lower watermarks never roll the counter back.
	led.SetMaxBookingID(3)
	assert.Equal(t, 12, led.GenerateBookingID())
}

func TestLedger_GettersReportMissingIDs(t *testing.T) {
	led := New(systemDate)

	_, err := led.FlightByID(1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = led.CustomerByID(1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = led.BookingByID(1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLedger_GettersReturnTombstones(t *testing.T) {
	led := New(systemDate)
	assert.NoError(t, led.AddFlight(domain.NewFlight(1, "FL100", "LHR", "CDG", date(2020, 11, 21), 10, 100)))
	assert.NoError(t, led.DeleteFlight(1))

	f, err := led.FlightByID(1)
	assert.NoError(t, err)
	assert.True(t, f.Deleted)
}

func TestLedger_DeleteFlight_CascadesBookings(t *testing.T) {
	led := New(systemDate)
	f1 := domain.NewFlight(1, "FL100", "LHR", "CDG", date(2020, 11, 21), 10, 100)
	f2 := domain.NewFlight(2, "FL200", "LHR", "AMS", date(2020, 11, 22), 10, 100)
	c := domain.NewCustomer(1, "Alice", "000", "alice@example.com")
	assert.NoError(t, led.AddFlight(f1))
	assert.NoError(t, led.AddFlight(f2))
	assert.NoError(t, led.AddCustomer(c))
	newBooking(t, led, 1, c, f1)
	kept := newBooking(t, led, 2, c, f2)

	assert.NoError(t, led.DeleteFlight(1))

	// Flight tombstoned, its bookings erased, unrelated bookings untouched.
	assert.True(t, f1.Deleted)
	_, err := led.BookingByID(1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	got, err := led.BookingByID(2)
	assert.NoError(t, err)
	assert.Equal(t, kept, got)
	assert.Len(t, c.Bookings(), 1)
	assert.Empty(t, f1.Passengers())
}

func TestLedger_DeleteCustomer_CascadesBookings(t *testing.T) {
	led := New(systemDate)
	f := domain.NewFlight(1, "FL100", "LHR", "CDG", date(2020, 11, 21), 10, 100)
	alice := domain.NewCustomer(1, "Alice", "000", "alice@example.com")
	bob := domain.NewCustomer(2, "Bob", "111", "bob@example.com")
	assert.NoError(t, led.AddFlight(f))
	assert.NoError(t, led.AddCustomer(alice))
	assert.NoError(t, led.AddCustomer(bob))
	newBooking(t, led, 1, alice, f)
	newBooking(t, led, 2, bob, f)

	assert.NoError(t, led.DeleteCustomer(1))

	assert.True(t, alice.Deleted)
	_, err := led.BookingByID(1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = led.BookingByID(2)
	assert.NoError(t, err)
	assert.Len(t, f.Passengers(), 1)
	assert.Empty(t, alice.Bookings())

	// The customer record itself survives as a tombstone.
	got, err := led.CustomerByID(1)
	assert.NoError(t, err)
	assert.True(t, got.Deleted)
}

func TestLedger_AddBooking_Validation(t *testing.T) {
	led := New(systemDate)
	f := domain.NewFlight(1, "FL100", "LHR", "CDG", date(2020, 11, 21), 10, 100)
	c := domain.NewCustomer(1, "Alice", "000", "alice@example.com")
	assert.NoError(t, led.AddFlight(f))
	assert.NoError(t, led.AddCustomer(c))

	b, err := domain.NewBooking(1, c, f, systemDate, 100)
	assert.NoError(t, err)
	assert.NoError(t, led.AddBooking(b))

	dup, err := domain.NewBooking(1, c, f, systemDate, 100)
	assert.NoError(t, err)
	assert.ErrorIs(t, led.AddBooking(dup), domain.ErrDuplicateID)
}

func TestLedger_ListingsAreOrderedByID(t *testing.T) {
	led := New(systemDate)
	assert.NoError(t, led.AddFlight(domain.NewFlight(3, "FL300", "LHR", "FRA", date(2020, 11, 23), 10, 100)))
	assert.NoError(t, led.AddFlight(domain.NewFlight(1, "FL100", "LHR", "CDG", date(2020, 11, 21), 10, 100)))
	assert.NoError(t, led.AddFlight(domain.NewFlight(2, "FL200", "LHR", "AMS", date(2020, 11, 22), 10, 100)))

	flights := led.Flights()
	assert.Equal(t, []int{1, 2, 3}, []int{flights[0].ID, flights[1].ID, flights[2].ID})
	assert.Equal(t, 4, led.NextFlightID())
}
