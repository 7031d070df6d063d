package domain

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrDuplicateID      = errors.New("duplicate id")
	ErrScheduleConflict = errors.New("a flight with the same number and departure date already exists")
	ErrFlightFull       = errors.New("the flight is full")
	ErrFlightDeparted   = errors.New("the flight has already departed")
	ErrNoSeatsAvailable = errors.New("no seats available for booking")
	ErrBookingCancelled = errors.New("booking is cancelled")
	ErrHorizonExceeded  = errors.New("bookings more than 2 years in advance are not allowed")
	ErrMalformedRecord  = errors.New("malformed record")
)
