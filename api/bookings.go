package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/flightledger/internal/command"
	"github.com/Domenick1991/flightledger/internal/domain"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	dispatcher command.Dispatcher
}

type createBookingRequest struct {
	CustomerID int `json:"customer_id" binding:"required"`
	FlightID   int `json:"flight_id" binding:"required"`
}

type cancelBookingRequest struct {
	CustomerID int `json:"customer_id" binding:"required"`
	FlightID   int `json:"flight_id" binding:"required"`
}

type rebookRequest struct {
	NewFlightID int `json:"new_flight_id" binding:"required"`
}

type bookingResponse struct {
	ID              int     `json:"id"`
	CustomerID      int     `json:"customer_id"`
	FlightID        int     `json:"flight_id"`
	BookingDate     string  `json:"booking_date"`
	Price           float64 `json:"price"`
	Cancelled       bool    `json:"cancelled"`
	CancellationFee float64 `json:"cancellation_fee,omitempty"`
	RebookFee       float64 `json:"rebook_fee,omitempty"`
}

func NewBookingHandler(dispatcher command.Dispatcher) *BookingHandler {
	return &BookingHandler{dispatcher: dispatcher}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.POST("/", h.create)
	router.POST("/cancel", h.cancel)
	router.PUT("/:id/flight", h.rebook)
}

func (h *BookingHandler) list(c *gin.Context) {
	res, err := h.dispatcher.Execute(c.Request.Context(), command.NewListBookings())
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]bookingResponse, 0, len(res.Bookings))
	for _, b := range res.Bookings {
		out = append(out, toBookingResponse(b))
	}
	c.JSON(http.StatusOK, out)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := h.dispatcher.Execute(c.Request.Context(), command.NewAddBooking(req.CustomerID, req.FlightID))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toBookingResponse(res.Booking))
}

func (h *BookingHandler) cancel(c *gin.Context) {
	var req cancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := h.dispatcher.Execute(c.Request.Context(), command.NewCancelBooking(req.CustomerID, req.FlightID))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(res.Booking))
}

func (h *BookingHandler) rebook(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req rebookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := h.dispatcher.Execute(c.Request.Context(), command.NewEditBooking(id, req.NewFlightID))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(res.Booking))
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		ID:              b.ID,
		CustomerID:      b.Customer.ID,
		FlightID:        b.Flight.ID,
		BookingDate:     b.BookingDate.Format("2006-01-02"),
		Price:           b.Price,
		Cancelled:       b.Cancelled(),
		CancellationFee: b.CancellationFee(),
		RebookFee:       b.RebookFee(),
	}
}
