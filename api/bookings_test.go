package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Domenick1991/flightledger/internal/command"
	"github.com/Domenick1991/flightledger/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testBooking(t *testing.T) *domain.Booking {
	t.Helper()
	customer := domain.NewCustomer(1, "Alice", "0700000001", "alice@example.com")
	flight := domain.NewFlight(1, "FL100", "LHR", "CDG",
		time.Date(2020, 11, 21, 0, 0, 0, 0, time.UTC), 100, 120)
	booking, err := domain.NewBooking(1, customer, flight,
		time.Date(2020, 11, 11, 0, 0, 0, 0, time.UTC), 240)
	assert.NoError(t, err)
	return booking
}

func TestBookingHandler_create(t *testing.T) {
	dispatcher := &MockDispatcher{}
	handler := NewBookingHandler(dispatcher)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{"customer_id":1,"flight_id":1}`
	c.Request = httptest.NewRequest("POST", "/bookings", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	dispatcher.On("Execute", c.Request.Context(), command.NewAddBooking(1, 1)).
		Return(&command.Result{Booking: testBooking(t)}, nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"price":240`)

	dispatcher.AssertExpectations(t)
}

func TestBookingHandler_create_flightFull(t *testing.T) {
	dispatcher := &MockDispatcher{}
	handler := NewBookingHandler(dispatcher)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{"customer_id":1,"flight_id":1}`
	c.Request = httptest.NewRequest("POST", "/bookings", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	dispatcher.On("Execute", mock.Anything, mock.Anything).
		Return(nil, domain.ErrFlightFull)

	handler.create(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestBookingHandler_create_badBody(t *testing.T) {
	handler := NewBookingHandler(&MockDispatcher{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest("POST", "/bookings", strings.NewReader(`{"customer_id":1}`))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookingHandler_cancel(t *testing.T) {
	dispatcher := &MockDispatcher{}
	handler := NewBookingHandler(dispatcher)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{"customer_id":1,"flight_id":1}`
	c.Request = httptest.NewRequest("POST", "/bookings/cancel", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	booking := testBooking(t)
	booking.Cancel()

	dispatcher.On("Execute", c.Request.Context(), command.NewCancelBooking(1, 1)).
		Return(&command.Result{Booking: booking}, nil)

	handler.cancel(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"cancelled":true`)
	assert.Contains(t, w.Body.String(), `"cancellation_fee":24`)

	dispatcher.AssertExpectations(t)
}

func TestBookingHandler_rebook(t *testing.T) {
	dispatcher := &MockDispatcher{}
	handler := NewBookingHandler(dispatcher)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "1"}}
	body := `{"new_flight_id":2}`
	c.Request = httptest.NewRequest("PUT", "/bookings/1/flight", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	dispatcher.On("Execute", c.Request.Context(), command.NewEditBooking(1, 2)).
		Return(&command.Result{Booking: testBooking(t)}, nil)

	handler.rebook(c)

	assert.Equal(t, http.StatusOK, w.Code)

	dispatcher.AssertExpectations(t)
}

func TestBookingHandler_rebook_cancelledBooking(t *testing.T) {
	dispatcher := &MockDispatcher{}
	handler := NewBookingHandler(dispatcher)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "1"}}
	c.Request = httptest.NewRequest("PUT", "/bookings/1/flight", strings.NewReader(`{"new_flight_id":2}`))
	c.Request.Header.Set("Content-Type", "application/json")

	dispatcher.On("Execute", mock.Anything, mock.Anything).
		Return(nil, domain.ErrBookingCancelled)

	handler.rebook(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestBookingHandler_list(t *testing.T) {
	dispatcher := &MockDispatcher{}
	handler := NewBookingHandler(dispatcher)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/bookings", nil)

	dispatcher.On("Execute", c.Request.Context(), command.NewListBookings()).
		Return(&command.Result{Bookings: []*domain.Booking{testBooking(t)}}, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"customer_id":1`)

	dispatcher.AssertExpectations(t)
}
