package storage

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/Domenick1991/flightledger/internal/domain"
	"github.com/Domenick1991/flightledger/internal/ledger"
)

// CustomerStore persists customers one per line as
// id::name::phone::email::[deleted].
type CustomerStore struct {
	path string
}

func NewCustomerStore(path string) *CustomerStore {
	return &CustomerStore{path: path}
}

func (s *CustomerStore) Load(led *ledger.Ledger) error {
	file, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open customers file: %w", err)
	}
	defer file.Close()

	sc := bufio.NewScanner(file)
	for line := 1; sc.Scan(); line++ {
		text := sc.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		c, err := parseCustomer(text)
		if err != nil {
			return fmt.Errorf("customers line %d: %w", line, err)
		}
		if err := led.AddCustomer(c); err != nil {
			return fmt.Errorf("customers line %d: %w", line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read customers file: %w", err)
	}
	return nil
}

func (s *CustomerStore) Store(led *ledger.Ledger) error {
	file, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("write customers file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	for _, c := range led.Customers() {
		fmt.Fprintln(w, formatCustomer(c))
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write customers file: %w", err)
	}
	return nil
}

func (s *CustomerStore) Append(c *domain.Customer) error {
	file, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("append customers file: %w", err)
	}
	defer file.Close()

	if _, err := fmt.Fprintln(file, formatCustomer(c)); err != nil {
		return fmt.Errorf("append customers file: %w", err)
	}
	return nil
}

func parseCustomer(line string) (*domain.Customer, error) {
	props := strings.Split(line, separator)
	if len(props) < 4 {
		return nil, fmt.Errorf("expected at least 4 fields, got %d: %w", len(props), domain.ErrMalformedRecord)
	}
	id, err := strconv.Atoi(props[0])
	if err != nil {
		return nil, fmt.Errorf("customer id %q: %w", props[0], domain.ErrMalformedRecord)
	}

	c := domain.NewCustomer(id, props[1], props[2], props[3])
	c.Deleted = len(props) > 4 && strings.EqualFold(props[4], "deleted")
	return c, nil
}

func formatCustomer(c *domain.Customer) string {
	deleted := ""
	if c.Deleted {
		deleted = "deleted"
	}
	return strings.Join([]string{
		strconv.Itoa(c.ID),
		c.Name,
		c.Phone,
		c.Email,
		deleted,
	}, separator)
}
