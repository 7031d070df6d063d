package command

import (
	"context"
	"fmt"
	"log"

	"github.com/Domenick1991/flightledger/internal/domain"
	"github.com/Domenick1991/flightledger/internal/kafka"
	"github.com/Domenick1991/flightledger/internal/ledger"
	"github.com/google/uuid"
)

// bookingHorizonYears caps how far ahead of the booking date a flight may
// depart.
const bookingHorizonYears = 2

// Dispatcher executes ledger commands. Front ends (CLI, HTTP) depend on this
// interface rather than the concrete executor.
type Dispatcher interface {
	Execute(ctx context.Context, cmd Command) (*Result, error)
}

// Store is the persistence collaborator the executor writes through. Add
// commands append a single record; everything else snapshots the whole ledger.
type Store interface {
	AppendFlight(f *domain.Flight) error
	AppendCustomer(c *domain.Customer) error
	AppendBooking(b *domain.Booking) error
	StoreAll(led *ledger.Ledger) error
}

// Cache holds the flight-list read model. May be nil.
type Cache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
	InvalidateFlights(ctx context.Context) error
}

// Producer publishes booking lifecycle events. May be nil.
type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type Executor struct {
	led                *ledger.Ledger
	store              Store
	cache              Cache
	producer           Producer
	bookingTopic       string
	notificationsTopic string
}

type ExecutorOption func(*Executor)

func WithCache(cache Cache) ExecutorOption {
	return func(e *Executor) { e.cache = cache }
}

func WithProducer(producer Producer, bookingTopic string) ExecutorOption {
	return func(e *Executor) {
		e.producer = producer
		e.bookingTopic = bookingTopic
	}
}

func WithNotificationsTopic(topic string) ExecutorOption {
	return func(e *Executor) { e.notificationsTopic = topic }
}

func NewExecutor(led *ledger.Ledger, store Store, opts ...ExecutorOption) *Executor {
	e := &Executor{led: led, store: store}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs one command against the ledger. Every precondition is checked
// before the first mutation; once validation passes the remaining steps only
// touch memory and cannot fail halfway.
func (e *Executor) Execute(ctx context.Context, cmd Command) (*Result, error) {
	switch cmd.Kind {
	case KindAddFlight:
		return e.addFlight(ctx, cmd)
	case KindAddCustomer:
		return e.addCustomer(ctx, cmd)
	case KindAddBooking:
		return e.addBooking(ctx, cmd)
	case KindCancelBooking:
		return e.cancelBooking(ctx, cmd)
	case KindEditBooking:
		return e.editBooking(ctx, cmd)
	case KindDeleteFlight:
		return e.deleteFlight(ctx, cmd)
	case KindDeleteCustomer:
		return e.deleteCustomer(ctx, cmd)
	case KindListFlights:
		return e.listFlights(ctx)
	case KindListCustomers:
		return e.listCustomers()
	case KindListBookings:
		return e.listBookings()
	case KindShowFlight:
		return e.showFlight(cmd.FlightID)
	case KindShowCustomer:
		return e.showCustomer(cmd.CustomerID)
	default:
		return nil, fmt.Errorf("unknown command kind %q", cmd.Kind)
	}
}

func (e *Executor) addFlight(ctx context.Context, cmd Command) (*Result, error) {
	f := domain.NewFlight(e.led.NextFlightID(), cmd.FlightNumber, cmd.Origin, cmd.Destination, cmd.DepartureDate, cmd.NumberOfSeats, cmd.Price)
	if err := e.led.AddFlight(f); err != nil {
		return nil, err
	}
	if err := e.store.AppendFlight(f); err != nil {
		return nil, fmt.Errorf("persist flight: %w", err)
	}
	e.invalidateFlights(ctx)
	return &Result{Flight: f, Message: fmt.Sprintf("Flight #%d added.", f.ID)}, nil
}

func (e *Executor) addCustomer(ctx context.Context, cmd Command) (*Result, error) {
	c := domain.NewCustomer(e.led.NextCustomerID(), cmd.Name, cmd.Phone, cmd.Email)
	if err := e.led.AddCustomer(c); err != nil {
		return nil, err
	}
	if err := e.store.AppendCustomer(c); err != nil {
		return nil, fmt.Errorf("persist customer: %w", err)
	}
	return &Result{Customer: c, Message: fmt.Sprintf("Customer #%d added.", c.ID)}, nil
}

func (e *Executor) addBooking(ctx context.Context, cmd Command) (*Result, error) {
	today := e.led.SystemDate()

	customer, err := e.led.CustomerByID(cmd.CustomerID)
	if err != nil {
		return nil, err
	}
	flight, err := e.led.FlightByID(cmd.FlightID)
	if err != nil {
		return nil, err
	}
	if flight.DepartureDate.After(today.AddDate(bookingHorizonYears, 0, 0)) {
		return nil, domain.ErrHorizonExceeded
	}
	if !flight.HasNotDeparted(today) {
		return nil, fmt.Errorf("flight %d: %w", flight.ID, domain.ErrFlightDeparted)
	}
	if flight.BookedSeats() >= flight.NumberOfSeats {
		return nil, fmt.Errorf("flight %d: %w", flight.ID, domain.ErrFlightFull)
	}

	price, err := flight.CalculatePrice(today)
	if err != nil {
		return nil, err
	}

	booking, err := domain.NewBooking(e.led.GenerateBookingID(), customer, flight, today, float64(price))
	if err != nil {
		return nil, err
	}
	if err := e.led.AddBooking(booking); err != nil {
		return nil, err
	}
	if err := customer.AddBooking(booking); err != nil {
		return nil, err
	}
	flight.AddBooking(booking)
	if err := flight.AddPassenger(customer); err != nil {
		return nil, err
	}

	if !booking.Cancelled() {
		if err := e.store.AppendBooking(booking); err != nil {
			return nil, fmt.Errorf("persist booking: %w", err)
		}
	}
	e.invalidateFlights(ctx)
	e.publish(ctx, "booking_created", booking)
	return &Result{Booking: booking, Message: "Booking was issued successfully to the customer."}, nil
}

func (e *Executor) cancelBooking(ctx context.Context, cmd Command) (*Result, error) {
	customer, err := e.led.CustomerByID(cmd.CustomerID)
	if err != nil {
		return nil, err
	}
	if _, err := e.led.FlightByID(cmd.FlightID); err != nil {
		return nil, err
	}

	booking := customer.BookingByFlightID(cmd.FlightID)
	if booking == nil {
		return nil, fmt.Errorf("no booking for customer %d on flight %d: %w", cmd.CustomerID, cmd.FlightID, domain.ErrNotFound)
	}

	booking.Cancel()

	if err := e.store.StoreAll(e.led); err != nil {
		return nil, fmt.Errorf("persist ledger: %w", err)
	}
	e.invalidateFlights(ctx)
	e.publish(ctx, "booking_cancelled", booking)
	return &Result{Booking: booking, Message: fmt.Sprintf("Booking successfully cancelled for customer ID: %d and flight ID: %d", cmd.CustomerID, cmd.FlightID)}, nil
}

func (e *Executor) editBooking(ctx context.Context, cmd Command) (*Result, error) {
	today := e.led.SystemDate()

	booking, err := e.led.BookingByID(cmd.BookingID)
	if err != nil {
		return nil, err
	}
	if booking.Cancelled() {
		return nil, fmt.Errorf("booking %d: %w", booking.ID, domain.ErrBookingCancelled)
	}
	newFlight, err := e.led.FlightByID(cmd.NewFlightID)
	if err != nil {
		return nil, err
	}
	if !newFlight.HasNotDeparted(today) {
		return nil, fmt.Errorf("flight %d: %w", newFlight.ID, domain.ErrFlightDeparted)
	}
	if newFlight.BookedSeats() >= newFlight.NumberOfSeats {
		return nil, fmt.Errorf("flight %d: %w", newFlight.ID, domain.ErrFlightFull)
	}

	price, err := newFlight.CalculatePrice(today)
	if err != nil {
		return nil, err
	}
	if err := booking.Rebook(newFlight, float64(price)); err != nil {
		return nil, err
	}

	if err := e.store.StoreAll(e.led); err != nil {
		return nil, fmt.Errorf("persist ledger: %w", err)
	}
	e.invalidateFlights(ctx)
	e.publish(ctx, "booking_rebooked", booking)
	return &Result{Booking: booking, Message: fmt.Sprintf("Booking #%d moved to flight #%d.", booking.ID, newFlight.ID)}, nil
}

func (e *Executor) deleteFlight(ctx context.Context, cmd Command) (*Result, error) {
	if err := e.led.DeleteFlight(cmd.FlightID); err != nil {
		return nil, err
	}
	if err := e.store.StoreAll(e.led); err != nil {
		return nil, fmt.Errorf("persist ledger: %w", err)
	}
	e.invalidateFlights(ctx)
	return &Result{Message: fmt.Sprintf("Flight successfully deleted for flight ID: %d", cmd.FlightID)}, nil
}

func (e *Executor) deleteCustomer(ctx context.Context, cmd Command) (*Result, error) {
	if err := e.led.DeleteCustomer(cmd.CustomerID); err != nil {
		return nil, err
	}
	if err := e.store.StoreAll(e.led); err != nil {
		return nil, fmt.Errorf("persist ledger: %w", err)
	}
	e.invalidateFlights(ctx)
	return &Result{Message: fmt.Sprintf("Customer successfully deleted for customer ID: %d", cmd.CustomerID)}, nil
}

func (e *Executor) listFlights(ctx context.Context) (*Result, error) {
	if e.cache != nil {
		if cached, err := e.cache.GetFlights(ctx); err == nil && cached != nil {
			return &Result{Flights: cached}, nil
		}
	}

	live := e.led.Flights()
	flights := make([]domain.Flight, 0, len(live))
	for _, f := range live {
		flights = append(flights, *f)
	}
	if e.cache != nil {
		if err := e.cache.SetFlights(ctx, flights); err != nil {
			log.Printf("cache flights: %v", err)
		}
	}
	return &Result{Flights: flights}, nil
}

func (e *Executor) listCustomers() (*Result, error) {
	return &Result{Customers: e.led.Customers()}, nil
}

func (e *Executor) listBookings() (*Result, error) {
	return &Result{Bookings: e.led.Bookings()}, nil
}

func (e *Executor) showFlight(id int) (*Result, error) {
	f, err := e.led.FlightByID(id)
	if err != nil {
		return nil, err
	}
	return &Result{Flight: f}, nil
}

func (e *Executor) showCustomer(id int) (*Result, error) {
	c, err := e.led.CustomerByID(id)
	if err != nil {
		return nil, err
	}
	return &Result{Customer: c}, nil
}

func (e *Executor) invalidateFlights(ctx context.Context) {
	if e.cache == nil {
		return
	}
	if err := e.cache.InvalidateFlights(ctx); err != nil {
		log.Printf("invalidate flights cache: %v", err)
	}
}

func (e *Executor) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	if e.producer == nil || e.bookingTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		EventID:     uuid.NewString(),
		Type:        eventType,
		BookingID:   booking.ID,
		CustomerID:  booking.Customer.ID,
		FlightID:    booking.Flight.ID,
		Email:       booking.Customer.Email,
		Price:       booking.Price,
		Cancelled:   booking.Cancelled(),
		BookingDate: booking.BookingDate,
	}
	key := fmt.Sprintf("booking-%d", booking.ID)
	if err := e.producer.Publish(ctx, e.bookingTopic, key, event); err != nil {
		log.Printf("publish %s event for booking %d: %v", eventType, booking.ID, err)
	}
	if e.notificationsTopic != "" {
		if err := e.producer.Publish(ctx, e.notificationsTopic, key, event); err != nil {
			log.Printf("publish %s notification for booking %d: %v", eventType, booking.ID, err)
		}
	}
}

var _ Dispatcher = (*Executor)(nil)
