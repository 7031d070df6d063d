package storage

import (
	"github.com/Domenick1991/flightledger/internal/domain"
	"github.com/Domenick1991/flightledger/internal/ledger"
)

const separator = "::"

// DataManager loads one entity kind into a ledger and writes it back out as a
// whole snapshot.
type DataManager interface {
	Load(led *ledger.Ledger) error
	Store(led *ledger.Ledger) error
}

// Load fills the ledger from the given managers in order. Bookings reference
// flights and customers, so their manager must come last.
func Load(led *ledger.Ledger, managers []DataManager) error {
	for _, m := range managers {
		if err := m.Load(led); err != nil {
			return err
		}
	}
	return nil
}

// Store writes the full ledger state through every manager.
func Store(led *ledger.Ledger, managers []DataManager) error {
	for _, m := range managers {
		if err := m.Store(led); err != nil {
			return err
		}
	}
	return nil
}

// FileStore bundles the three flat-file stores behind the single collaborator
// surface the command executor persists through.
type FileStore struct {
	flights   *FlightStore
	customers *CustomerStore
	bookings  *BookingStore
}

func NewFileStore(flightsPath, customersPath, bookingsPath string) *FileStore {
	return &FileStore{
		flights:   NewFlightStore(flightsPath),
		customers: NewCustomerStore(customersPath),
		bookings:  NewBookingStore(bookingsPath),
	}
}

// Managers returns the store's data managers in load order.
func (s *FileStore) Managers() []DataManager {
	return []DataManager{s.flights, s.customers, s.bookings}
}

func (s *FileStore) Load(led *ledger.Ledger) error {
	return Load(led, s.Managers())
}

func (s *FileStore) StoreAll(led *ledger.Ledger) error {
	return Store(led, s.Managers())
}

func (s *FileStore) AppendFlight(f *domain.Flight) error {
	return s.flights.Append(f)
}

func (s *FileStore) AppendCustomer(c *domain.Customer) error {
	return s.customers.Append(c)
}

func (s *FileStore) AppendBooking(b *domain.Booking) error {
	return s.bookings.Append(b)
}
