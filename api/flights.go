package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Domenick1991/flightledger/internal/command"
	"github.com/Domenick1991/flightledger/internal/domain"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	dispatcher command.Dispatcher
}

type createFlightRequest struct {
	FlightNumber  string  `json:"flight_number" binding:"required"`
	Origin        string  `json:"origin" binding:"required"`
	Destination   string  `json:"destination" binding:"required"`
	DepartureDate string  `json:"departure_date" binding:"required"`
	NumberOfSeats int     `json:"number_of_seats" binding:"required"`
	Price         float64 `json:"price"`
}

type flightResponse struct {
	ID            int     `json:"id"`
	FlightNumber  string  `json:"flight_number"`
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	DepartureDate string  `json:"departure_date"`
	NumberOfSeats int     `json:"number_of_seats"`
	Price         float64 `json:"price"`
	Deleted       bool    `json:"deleted,omitempty"`
	BookedSeats   *int    `json:"booked_seats,omitempty"`
}

func NewFlightHandler(dispatcher command.Dispatcher) *FlightHandler {
	return &FlightHandler{dispatcher: dispatcher}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.GET("/:id", h.get)
	router.POST("/", h.create)
	router.DELETE("/:id", h.delete)
}

func (h *FlightHandler) list(c *gin.Context) {
	res, err := h.dispatcher.Execute(c.Request.Context(), command.NewListFlights())
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]flightResponse, 0, len(res.Flights))
	for i := range res.Flights {
		out = append(out, toFlightResponse(&res.Flights[i], false))
	}
	c.JSON(http.StatusOK, out)
}

func (h *FlightHandler) get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	res, err := h.dispatcher.Execute(c.Request.Context(), command.NewShowFlight(id))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightResponse(res.Flight, true))
}

func (h *FlightHandler) create(c *gin.Context) {
	var req createFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	departure, err := time.Parse("2006-01-02", req.DepartureDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid departure_date, expected yyyy-MM-dd"})
		return
	}

	res, err := h.dispatcher.Execute(c.Request.Context(),
		command.NewAddFlight(req.FlightNumber, req.Origin, req.Destination, departure, req.NumberOfSeats, req.Price))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toFlightResponse(res.Flight, false))
}

func (h *FlightHandler) delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	res, err := h.dispatcher.Execute(c.Request.Context(), command.NewDeleteFlight(id))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": res.Message})
}

func toFlightResponse(f *domain.Flight, withSeats bool) flightResponse {
	resp := flightResponse{
		ID:            f.ID,
		FlightNumber:  f.FlightNumber,
		Origin:        f.Origin,
		Destination:   f.Destination,
		DepartureDate: f.DepartureDate.Format("2006-01-02"),
		NumberOfSeats: f.NumberOfSeats,
		Price:         f.BasePrice,
		Deleted:       f.Deleted,
	}
	if withSeats {
		booked := f.BookedSeats()
		resp.BookedSeats = &booked
	}
	return resp
}
