package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/Domenick1991/flightledger/internal/command"
)

const helpText = `Commands:
	listflights                               print all flights
	listcustomers                             print all customers
	listbookings                              print all bookings
	addflight                                 add a new flight
	addcustomer                               add a new customer
	addbooking [customer id] [flight id]      add a new booking
	cancelbooking [customer id] [flight id]   cancel a booking
	editbooking [booking id] [flight id]      move a booking to another flight
	deleteflight [flight id]                  delete a flight
	deletecustomer [customer id]              delete a customer
	showflight [flight id]                    show flight details
	showcustomer [customer id]                show customer details
	help                                      prints this help message
	exit                                      exits the program`

// Runner drives the interactive command loop: one line in, one command
// dispatched, output printed.
type Runner struct {
	dispatcher command.Dispatcher
	in         *bufio.Reader
	out        io.Writer
}

func NewRunner(dispatcher command.Dispatcher, in io.Reader, out io.Writer) *Runner {
	return &Runner{dispatcher: dispatcher, in: bufio.NewReader(in), out: out}
}

// Run reads commands until "exit" or EOF. Command errors are printed and the
// loop continues.
func (r *Runner) Run(ctx context.Context) error {
	fmt.Fprintln(r.out, "Flight Booking System")
	fmt.Fprintln(r.out, "Enter 'help' to see a list of available commands.")
	for {
		fmt.Fprint(r.out, "> ")
		line, err := r.in.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" {
			return nil
		}
		if line == "help" {
			fmt.Fprintln(r.out, helpText)
			continue
		}

		cmd, err := r.parse(line)
		if err != nil {
			fmt.Fprintln(r.out, err)
			continue
		}
		res, err := r.dispatcher.Execute(ctx, cmd)
		if err != nil {
			fmt.Fprintln(r.out, err)
			continue
		}
		r.print(res)
	}
}

// parse turns one input line into a command, prompting for the multi-field
// add operations the way the original interpreter did.
func (r *Runner) parse(line string) (command.Command, error) {
	parts := strings.Fields(line)
	word := parts[0]

	switch word {
	case "listflights":
		return command.NewListFlights(), nil
	case "listcustomers":
		return command.NewListCustomers(), nil
	case "listbookings":
		return command.NewListBookings(), nil
	case "addflight":
		return r.promptAddFlight()
	case "addcustomer":
		return r.promptAddCustomer()
	case "addbooking", "cancelbooking", "editbooking":
		if len(parts) != 3 {
			return command.Command{}, fmt.Errorf("usage: %s [id] [id]", word)
		}
		first, err := strconv.Atoi(parts[1])
		if err != nil {
			return command.Command{}, fmt.Errorf("invalid id %q", parts[1])
		}
		second, err := strconv.Atoi(parts[2])
		if err != nil {
			return command.Command{}, fmt.Errorf("invalid id %q", parts[2])
		}
		switch word {
		case "addbooking":
			return command.NewAddBooking(first, second), nil
		case "cancelbooking":
			return command.NewCancelBooking(first, second), nil
		default:
			return command.NewEditBooking(first, second), nil
		}
	case "deleteflight", "deletecustomer", "showflight", "showcustomer":
		if len(parts) != 2 {
			return command.Command{}, fmt.Errorf("usage: %s [id]", word)
		}
		id, err := strconv.Atoi(parts[1])
		if err != nil {
			return command.Command{}, fmt.Errorf("invalid id %q", parts[1])
		}
		switch word {
		case "deleteflight":
			return command.NewDeleteFlight(id), nil
		case "deletecustomer":
			return command.NewDeleteCustomer(id), nil
		case "showflight":
			return command.NewShowFlight(id), nil
		default:
			return command.NewShowCustomer(id), nil
		}
	}
	return command.Command{}, fmt.Errorf("invalid command: %s", word)
}

func (r *Runner) promptAddFlight() (command.Command, error) {
	flightNumber, err := r.prompt("Flight Number: ")
	if err != nil {
		return command.Command{}, err
	}
	origin, err := r.prompt("Origin: ")
	if err != nil {
		return command.Command{}, err
	}
	destination, err := r.prompt("Destination: ")
	if err != nil {
		return command.Command{}, err
	}
	departure, err := r.promptDate("Departure Date (yyyy-MM-dd): ")
	if err != nil {
		return command.Command{}, err
	}
	seatsText, err := r.prompt("Number of Seats: ")
	if err != nil {
		return command.Command{}, err
	}
	seats, err := strconv.Atoi(seatsText)
	if err != nil {
		return command.Command{}, fmt.Errorf("invalid seat count %q", seatsText)
	}
	priceText, err := r.prompt("Price: ")
	if err != nil {
		return command.Command{}, err
	}
	price, err := strconv.ParseFloat(priceText, 64)
	if err != nil {
		return command.Command{}, fmt.Errorf("invalid price %q", priceText)
	}
	return command.NewAddFlight(flightNumber, origin, destination, departure, seats, price), nil
}

func (r *Runner) promptAddCustomer() (command.Command, error) {
	name, err := r.prompt("Name: ")
	if err != nil {
		return command.Command{}, err
	}
	phone, err := r.prompt("Phone: ")
	if err != nil {
		return command.Command{}, err
	}
	email, err := r.prompt("Email: ")
	if err != nil {
		return command.Command{}, err
	}
	return command.NewAddCustomer(name, phone, email), nil
}

func (r *Runner) prompt(label string) (string, error) {
	fmt.Fprint(r.out, label)
	line, err := r.in.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (r *Runner) promptDate(label string) (time.Time, error) {
	text, err := r.prompt(label)
	if err != nil {
		return time.Time{}, err
	}
	d, err := time.Parse("2006-01-02", text)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected yyyy-MM-dd", text)
	}
	return d, nil
}

func (r *Runner) print(res *command.Result) {
	switch {
	case res.Flights != nil:
		for i := range res.Flights {
			fmt.Fprintln(r.out, res.Flights[i].String())
		}
		fmt.Fprintf(r.out, "%d flight(s)\n", len(res.Flights))
	case res.Customers != nil:
		for _, c := range res.Customers {
			fmt.Fprintln(r.out, c)
		}
		fmt.Fprintf(r.out, "%d customer(s)\n", len(res.Customers))
	case res.Bookings != nil:
		for _, b := range res.Bookings {
			fmt.Fprintln(r.out, b)
		}
		fmt.Fprintf(r.out, "%d booking(s)\n", len(res.Bookings))
	case res.Message != "":
		fmt.Fprintln(r.out, res.Message)
	case res.Flight != nil:
		fmt.Fprintln(r.out, res.Flight)
		fmt.Fprintf(r.out, "Passengers: %d\n", res.Flight.BookedSeats())
	case res.Customer != nil:
		fmt.Fprintln(r.out, res.Customer)
		for _, b := range res.Customer.Bookings() {
			fmt.Fprintln(r.out, " ", b)
		}
	case res.Booking != nil:
		fmt.Fprintln(r.out, res.Booking)
	}
}
