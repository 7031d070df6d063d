package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/flightledger/internal/domain"
	"github.com/gin-gonic/gin"
)

// statusFor maps ledger error kinds onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateID), errors.Is(err, domain.ErrScheduleConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrFlightFull),
		errors.Is(err, domain.ErrFlightDeparted),
		errors.Is(err, domain.ErrNoSeatsAvailable),
		errors.Is(err, domain.ErrBookingCancelled),
		errors.Is(err, domain.ErrHorizonExceeded):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}
