package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/flightledger/internal/command"
	"github.com/Domenick1991/flightledger/internal/domain"
	"github.com/gin-gonic/gin"
)

type CustomerHandler struct {
	dispatcher command.Dispatcher
}

type createCustomerRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

type customerResponse struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Deleted  bool   `json:"deleted,omitempty"`
	Bookings *int   `json:"bookings,omitempty"`
}

func NewCustomerHandler(dispatcher command.Dispatcher) *CustomerHandler {
	return &CustomerHandler{dispatcher: dispatcher}
}

func (h *CustomerHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.GET("/:id", h.get)
	router.POST("/", h.create)
	router.DELETE("/:id", h.delete)
}

func (h *CustomerHandler) list(c *gin.Context) {
	res, err := h.dispatcher.Execute(c.Request.Context(), command.NewListCustomers())
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]customerResponse, 0, len(res.Customers))
	for _, customer := range res.Customers {
		out = append(out, toCustomerResponse(customer, false))
	}
	c.JSON(http.StatusOK, out)
}

func (h *CustomerHandler) get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	res, err := h.dispatcher.Execute(c.Request.Context(), command.NewShowCustomer(id))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCustomerResponse(res.Customer, true))
}

func (h *CustomerHandler) create(c *gin.Context) {
	var req createCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := h.dispatcher.Execute(c.Request.Context(), command.NewAddCustomer(req.Name, req.Phone, req.Email))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCustomerResponse(res.Customer, false))
}

func (h *CustomerHandler) delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	res, err := h.dispatcher.Execute(c.Request.Context(), command.NewDeleteCustomer(id))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": res.Message})
}

func toCustomerResponse(customer *domain.Customer, withBookings bool) customerResponse {
	resp := customerResponse{
		ID:      customer.ID,
		Name:    customer.Name,
		Phone:   customer.Phone,
		Email:   customer.Email,
		Deleted: customer.Deleted,
	}
	if withBookings {
		count := len(customer.Bookings())
		resp.Bookings = &count
	}
	return resp
}
