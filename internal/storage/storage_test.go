package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Domenick1991/flightledger/internal/domain"
	"github.com/Domenick1991/flightledger/internal/ledger"
	"github.com/stretchr/testify/assert"
)

var systemDate = time.Date(2020, 11, 11, 0, 0, 0, 0, time.UTC)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newFileStore(t *testing.T) *FileStore {
	t.Helper()
	dir := t.TempDir()
	return NewFileStore(
		filepath.Join(dir, "flights.txt"),
		filepath.Join(dir, "customers.txt"),
		filepath.Join(dir, "bookings.txt"),
	)
}

func seedLedger(t *testing.T) *ledger.Ledger {
	t.Helper()
	led := ledger.New(systemDate)

	f1 := domain.NewFlight(1, "FL100", "LHR", "CDG", date(2020, 11, 21), 10, 100)
	f2 := domain.NewFlight(2, "FL200", "LHR", "AMS", date(2020, 12, 1), 5, 80.5)
	f2.Deleted = true
	assert.NoError(t, led.AddFlight(f1))
	assert.NoError(t, led.AddFlight(f2))

	alice := domain.NewCustomer(1, "Alice", "0700000001", "alice@example.com")
	bob := domain.NewCustomer(2, "Bob", "0700000002", "bob@example.com")
	bob.Deleted = true
	assert.NoError(t, led.AddCustomer(alice))
	assert.NoError(t, led.AddCustomer(bob))

	b1, err := domain.NewBooking(1, alice, f1, date(2020, 11, 11), 100)
	assert.NoError(t, err)
	b2, err := domain.NewBooking(2, bob, f1, date(2020, 11, 12), 200)
	assert.NoError(t, err)
	for _, b := range []*domain.Booking{b1, b2} {
		assert.NoError(t, led.AddBooking(b))
		assert.NoError(t, b.Customer.AddBooking(b))
		b.Flight.AddBooking(b)
		assert.NoError(t, b.Flight.AddPassenger(b.Customer))
	}
	b2.Cancel()
	led.SetMaxBookingID(2)
	return led
}

func TestFileStore_RoundTrip(t *testing.T) {
	store := newFileStore(t)
	led := seedLedger(t)

	assert.NoError(t, store.StoreAll(led))

	reloaded := ledger.New(systemDate)
	assert.NoError(t, store.Load(reloaded))

	f1, err := reloaded.FlightByID(1)
	assert.NoError(t, err)
	assert.Equal(t, "FL100", f1.FlightNumber)
	assert.Equal(t, "LHR", f1.Origin)
	assert.Equal(t, "CDG", f1.Destination)
	assert.Equal(t, date(2020, 11, 21), f1.DepartureDate)
	assert.Equal(t, 10, f1.NumberOfSeats)
	assert.Equal(t, 100.0, f1.BasePrice)
	assert.False(t, f1.Deleted)

	f2, err := reloaded.FlightByID(2)
	assert.NoError(t, err)
	assert.True(t, f2.Deleted)
	assert.Equal(t, 80.5, f2.BasePrice)

	alice, err := reloaded.CustomerByID(1)
	assert.NoError(t, err)
	assert.Equal(t, "Alice", alice.Name)
	assert.Equal(t, "0700000001", alice.Phone)
	assert.False(t, alice.Deleted)

	bob, err := reloaded.CustomerByID(2)
	assert.NoError(t, err)
	assert.True(t, bob.Deleted)

	b1, err := reloaded.BookingByID(1)
	assert.NoError(t, err)
	assert.Equal(t, 1, b1.Customer.ID)
	assert.Equal(t, 1, b1.Flight.ID)
	assert.Equal(t, 100.0, b1.Price)
	assert.False(t, b1.Cancelled())

	b2, err := reloaded.BookingByID(2)
	assert.NoError(t, err)
	assert.True(t, b2.Cancelled())
	assert.Equal(t, 20.0, b2.CancellationFee())

	// Only Alice still occupies a seat; Bob's booking was cancelled.
	assert.Equal(t, 1, f1.BookedSeats())
}

func TestFileStore_LoadSetsMaxBookingID(t *testing.T) {
	store := newFileStore(t)
	led := seedLedger(t)
	assert.NoError(t, store.StoreAll(led))

	reloaded := ledger.New(systemDate)
	assert.NoError(t, store.Load(reloaded))

	assert.Equal(t, 3, reloaded.GenerateBookingID())
}

func TestFileStore_MissingFilesMeanEmptyLedger(t *testing.T) {
	store := newFileStore(t)
	led := ledger.New(systemDate)

	assert.NoError(t, store.Load(led))
	assert.Empty(t, led.Flights())
	assert.Empty(t, led.Customers())
	assert.Empty(t, led.Bookings())
}

func TestFileStore_AppendThenLoad(t *testing.T) {
	store := newFileStore(t)

	f := domain.NewFlight(1, "FL100", "LHR", "CDG", date(2020, 11, 21), 10, 100)
	c := domain.NewCustomer(1, "Alice", "0700000001", "alice@example.com")
	assert.NoError(t, store.AppendFlight(f))
	assert.NoError(t, store.AppendCustomer(c))

	b, err := domain.NewBooking(1, c, f, date(2020, 11, 11), 100)
	assert.NoError(t, err)
	assert.NoError(t, store.AppendBooking(b))

	led := ledger.New(systemDate)
	assert.NoError(t, store.Load(led))

	got, err := led.BookingByID(1)
	assert.NoError(t, err)
	assert.Equal(t, 1, got.Customer.ID)
	assert.Equal(t, 1, got.Flight.ID)
}

func TestFlightStore_MalformedRecord(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flights.txt")
	assert.NoError(t, os.WriteFile(path, []byte("abc::FL100::LHR::CDG::2020-11-21::10::100::\n"), 0o644))

	err := NewFlightStore(path).Load(ledger.New(systemDate))
	assert.ErrorIs(t, err, domain.ErrMalformedRecord)
	assert.ErrorContains(t, err, "line 1")
}

func TestBookingStore_UnknownReferenceRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bookings.txt")
	assert.NoError(t, os.WriteFile(path, []byte("1::9::9::2020-11-11::100::\n"), 0o644))

	err := NewBookingStore(path).Load(ledger.New(systemDate))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFlightStore_TrailingTokenOptional(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flights.txt")
	// No trailing field at all: deleted defaults to false.
	assert.NoError(t, os.WriteFile(path, []byte("1::FL100::LHR::CDG::2020-11-21::10::100\n"), 0o644))

	led := ledger.New(systemDate)
	assert.NoError(t, NewFlightStore(path).Load(led))

	f, err := led.FlightByID(1)
	assert.NoError(t, err)
	assert.False(t, f.Deleted)
}
