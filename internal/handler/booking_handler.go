package handler

import (
	"net/http"

	"car_rental/internal/logger"
	"car_rental/internal/model"
	"car_rental/internal/service"

	"github.com/gin-gonic/gin"
)

// BookingHandler handles booking requests
type BookingHandler struct {
	service service.BookingService
	log     logger.ILogger
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(s service.BookingService, log logger.ILogger) *BookingHandler {
	return &BookingHandler{service: s, log: log}
}

func (h *BookingHandler) Create(c *gin.Context) {
	var req model.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	booking, err := h.service.Create(c.Request.Context(), authUserID(c), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

func (h *BookingHandler) List(c *gin.Context) {
	res, err := h.service.List(c.Request.Context(), authUserID(c), c.Query("status"), pagination(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *BookingHandler) Get(c *gin.Context) {
	booking, err := h.service.Get(c.Request.Context(), c.Param("id"), authUserID(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	var req model.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	booking, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), authUserID(c), req.Status)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// RegisterBookingRoutes registers booking routes
func (h *BookingHandler) RegisterBookingRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	bookings := rg.Group("/bookings")
	bookings.Use(authMW)
	{
		bookings.POST("", h.Create)
		bookings.GET("", h.List)
		bookings.GET("/:id", h.Get)
		bookings.PUT("/:id", h.UpdateStatus)
	}
}
