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

const dateLayout = "2006-01-02"

// FlightStore persists flights one per line as
// id::flightNumber::origin::destination::departureDate::numberOfSeats::price::[deleted].
type FlightStore struct {
	path string
}

func NewFlightStore(path string) *FlightStore {
	return &FlightStore{path: path}
}

func (s *FlightStore) Load(led *ledger.Ledger) error {
	file, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open flights file: %w", err)
	}
	defer file.Close()

	sc := bufio.NewScanner(file)
	for line := 1; sc.Scan(); line++ {
		text := sc.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		f, err := parseFlight(text)
		if err != nil {
			return fmt.Errorf("flights line %d: %w", line, err)
		}
		if err := led.AddFlight(f); err != nil {
			return fmt.Errorf("flights line %d: %w", line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read flights file: %w", err)
	}
	return nil
}

func (s *FlightStore) Store(led *ledger.Ledger) error {
	file, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("write flights file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	for _, f := range led.Flights() {
		fmt.Fprintln(w, formatFlight(f))
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write flights file: %w", err)
	}
	return nil
}

// Append adds a single flight record to the end of the file.
func (s *FlightStore) Append(f *domain.Flight) error {
	file, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("append flights file: %w", err)
	}
	defer file.Close()

	if _, err := fmt.Fprintln(file, formatFlight(f)); err != nil {
		return fmt.Errorf("append flights file: %w", err)
	}
	return nil
}

func parseFlight(line string) (*domain.Flight, error) {
	props := strings.Split(line, separator)
	if len(props) < 7 {
		return nil, fmt.Errorf("expected at least 7 fields, got %d: %w", len(props), domain.ErrMalformedRecord)
	}
	id, err := strconv.Atoi(props[0])
	if err != nil {
		return nil, fmt.Errorf("flight id %q: %w", props[0], domain.ErrMalformedRecord)
	}
	departure, err := time.Parse(dateLayout, props[4])
	if err != nil {
		return nil, fmt.Errorf("departure date %q: %w", props[4], domain.ErrMalformedRecord)
	}
	seats, err := strconv.Atoi(props[5])
	if err != nil {
		return nil, fmt.Errorf("seat count %q: %w", props[5], domain.ErrMalformedRecord)
	}
	price, err := strconv.ParseFloat(props[6], 64)
	if err != nil {
		return nil, fmt.Errorf("price %q: %w", props[6], domain.ErrMalformedRecord)
	}

	f := domain.NewFlight(id, props[1], props[2], props[3], departure, seats, price)
	// An absent trailing token means the flight is live.
	f.Deleted = len(props) > 7 && strings.EqualFold(props[7], "deleted")
	return f, nil
}

func formatFlight(f *domain.Flight) string {
	deleted := ""
	if f.Deleted {
		deleted = "deleted"
	}
	return strings.Join([]string{
		strconv.Itoa(f.ID),
		f.FlightNumber,
		f.Origin,
		f.Destination,
		f.DepartureDate.Format(dateLayout),
		strconv.Itoa(f.NumberOfSeats),
		strconv.FormatFloat(f.BasePrice, 'f', -1, 64),
		deleted,
	}, separator)
}
