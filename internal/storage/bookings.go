package storage

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Domenick1991/flightledger/internal/domain"
	"github.com/Domenick1991/flightledger/internal/ledger"
)

// BookingStore persists bookings one per line as
// id::customerId::flightId::bookingDate::price::[cancelled].
//
// Load must run after flights and customers are in the ledger: each record is
// rehydrated into live references, attached to its owners, and replayed
// through Cancel when the cancelled token is present.
type BookingStore struct {
	path string
}

func NewBookingStore(path string) *BookingStore {
	return &BookingStore{path: path}
}

func (s *BookingStore) Load(led *ledger.Ledger) error {
	file, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open bookings file: %w", err)
	}
	defer file.Close()

	maxID := 0
	sc := bufio.NewScanner(file)
	for line := 1; sc.Scan(); line++ {
		text := sc.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		b, cancelled, err := parseBooking(led, text)
		if err != nil {
			return fmt.Errorf("bookings line %d: %w", line, err)
		}
		if err := led.AddBooking(b); err != nil {
			return fmt.Errorf("bookings line %d: %w", line, err)
		}
		if err := b.Customer.AddBooking(b); err != nil {
			return fmt.Errorf("bookings line %d: %w", line, err)
		}
		b.Flight.AddBooking(b)
		if err := b.Flight.AddPassenger(b.Customer); err != nil {
			return fmt.Errorf("bookings line %d: %w", line, err)
		}
		if cancelled {
			b.Cancel()
		}
		if b.ID > maxID {
			maxID = b.ID
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read bookings file: %w", err)
	}
	led.SetMaxBookingID(maxID)
	return nil
}

func (s *BookingStore) Store(led *ledger.Ledger) error {
	file, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("write bookings file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	for _, b := range led.Bookings() {
		fmt.Fprintln(w, formatBooking(b))
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write bookings file: %w", err)
	}
	return nil
}

func (s *BookingStore) Append(b *domain.Booking) error {
	file, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("append bookings file: %w", err)
	}
	defer file.Close()

	if _, err := fmt.Fprintln(file, formatBooking(b)); err != nil {
		return fmt.Errorf("append bookings file: %w", err)
	}
	return nil
}

func parseBooking(led *ledger.Ledger, line string) (*domain.Booking, bool, error) {
	props := strings.Split(line, separator)
	if len(props) < 5 {
		return nil, false, fmt.Errorf("expected at least 5 fields, got %d: %w", len(props), domain.ErrMalformedRecord)
	}
	id, err := strconv.Atoi(props[0])
	if err != nil {
		return nil, false, fmt.Errorf("booking id %q: %w", props[0], domain.ErrMalformedRecord)
	}
	customerID, err := strconv.Atoi(props[1])
	if err != nil {
		return nil, false, fmt.Errorf("customer id %q: %w", props[1], domain.ErrMalformedRecord)
	}
	flightID, err := strconv.Atoi(props[2])
	if err != nil {
		return nil, false, fmt.Errorf("flight id %q: %w", props[2], domain.ErrMalformedRecord)
	}
	date, err := time.Parse(dateLayout, props[3])
	if err != nil {
		return nil, false, fmt.Errorf("booking date %q: %w", props[3], domain.ErrMalformedRecord)
	}
	price, err := strconv.ParseFloat(props[4], 64)
	if err != nil {
		return nil, false, fmt.Errorf("price %q: %w", props[4], domain.ErrMalformedRecord)
	}

	customer, err := led.CustomerByID(customerID)
	if err != nil {
		return nil, false, fmt.Errorf("booking %d: %w", id, err)
	}
	flight, err := led.FlightByID(flightID)
	if err != nil {
		return nil, false, fmt.Errorf("booking %d: %w", id, err)
	}

	b, err := domain.NewBooking(id, customer, flight, date, price)
	if err != nil {
		return nil, false, err
	}
	cancelled := len(props) > 5 && strings.EqualFold(props[5], "cancelled")
	return b, cancelled, nil
}

func formatBooking(b *domain.Booking) string {
	cancelled := ""
	if b.Cancelled() {
		cancelled = "cancelled"
	}
	return strings.Join([]string{
		strconv.Itoa(b.ID),
		strconv.Itoa(b.Customer.ID),
		strconv.Itoa(b.Flight.ID),
		b.BookingDate.Format(dateLayout),
		strconv.FormatFloat(b.Price, 'f', -1, 64),
		cancelled,
	}, separator)
}
