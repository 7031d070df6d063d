package command

import (
	"time"

	"github.com/Domenick1991/flightledger/internal/domain"
)

// Kind discriminates the closed set of ledger commands.
type Kind string

const (
	KindAddFlight      Kind = "addflight"
	KindAddCustomer    Kind = "addcustomer"
	KindAddBooking     Kind = "addbooking"
	KindCancelBooking  Kind = "cancelbooking"
	KindEditBooking    Kind = "editbooking"
	KindDeleteFlight   Kind = "deleteflight"
	KindDeleteCustomer Kind = "deletecustomer"
	KindListFlights    Kind = "listflights"
	KindListCustomers  Kind = "listcustomers"
	KindListBookings   Kind = "listbookings"
	KindShowFlight     Kind = "showflight"
	KindShowCustomer   Kind = "showcustomer"
)

// Command is a tagged variant: Kind selects the operation, the remaining
// fields carry its validated parameters. Construct values through the New*
// helpers so only the relevant fields are set.
type Command struct {
	Kind Kind

	// AddFlight
	FlightNumber  string
	Origin        string
	Destination   string
	DepartureDate time.Time
	NumberOfSeats int
	Price         float64

	// AddCustomer
	Name  string
	Phone string
	Email string

	// Bookings and deletes
	CustomerID  int
	FlightID    int
	BookingID   int
	NewFlightID int
}

func NewAddFlight(flightNumber, origin, destination string, departureDate time.Time, numberOfSeats int, price float64) Command {
	return Command{
		Kind:          KindAddFlight,
		FlightNumber:  flightNumber,
		Origin:        origin,
		Destination:   destination,
		DepartureDate: departureDate,
		NumberOfSeats: numberOfSeats,
		Price:         price,
	}
}

func NewAddCustomer(name, phone, email string) Command {
	return Command{Kind: KindAddCustomer, Name: name, Phone: phone, Email: email}
}

func NewAddBooking(customerID, flightID int) Command {
	return Command{Kind: KindAddBooking, CustomerID: customerID, FlightID: flightID}
}

func NewCancelBooking(customerID, flightID int) Command {
	return Command{Kind: KindCancelBooking, CustomerID: customerID, FlightID: flightID}
}

func NewEditBooking(bookingID, newFlightID int) Command {
	return Command{Kind: KindEditBooking, BookingID: bookingID, NewFlightID: newFlightID}
}

func NewDeleteFlight(flightID int) Command {
	return Command{Kind: KindDeleteFlight, FlightID: flightID}
}

func NewDeleteCustomer(customerID int) Command {
	return Command{Kind: KindDeleteCustomer, CustomerID: customerID}
}

func NewListFlights() Command   { return Command{Kind: KindListFlights} }
func NewListCustomers() Command { return Command{Kind: KindListCustomers} }
func NewListBookings() Command  { return Command{Kind: KindListBookings} }

func NewShowFlight(flightID int) Command {
	return Command{Kind: KindShowFlight, FlightID: flightID}
}

func NewShowCustomer(customerID int) Command {
	return Command{Kind: KindShowCustomer, CustomerID: customerID}
}

// Result carries whatever a command produced. Only the fields relevant to the
// executed kind are set.
type Result struct {
	Flight   *domain.Flight
	Customer *domain.Customer
	Booking  *domain.Booking

	Flights   []domain.Flight
	Customers []*domain.Customer
	Bookings  []*domain.Booking

	Message string
}
