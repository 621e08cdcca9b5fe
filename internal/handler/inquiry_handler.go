package handler

import (
	"net/http"

	"car_rental/internal/logger"
	"car_rental/internal/model"
	"car_rental/internal/service"

	"github.com/gin-gonic/gin"
)

// InquiryHandler handles rental inquiry requests
type InquiryHandler struct {
	service service.InquiryService
	log     logger.ILogger
}

// NewInquiryHandler creates a new InquiryHandler
func NewInquiryHandler(s service.InquiryService, log logger.ILogger) *InquiryHandler {
	return &InquiryHandler{service: s, log: log}
}

func (h *InquiryHandler) Create(c *gin.Context) {
	var req model.CreateInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	inquiry, err := h.service.Create(c.Request.Context(), authUserID(c), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, inquiry)
}

func (h *InquiryHandler) List(c *gin.Context) {
	res, err := h.service.List(c.Request.Context(), authUserID(c), c.Query("status"), pagination(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *InquiryHandler) Get(c *gin.Context) {
	inquiry, err := h.service.Get(c.Request.Context(), c.Param("id"), authUserID(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, inquiry)
}

// UpdateStatus is admin-only; the service runs the access guard before touching anything
func (h *InquiryHandler) UpdateStatus(c *gin.Context) {
	var req model.UpdateInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	inquiry, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), authUserID(c), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, inquiry)
}

// RegisterInquiryRoutes registers inquiry routes
func (h *InquiryHandler) RegisterInquiryRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	inquiries := rg.Group("/inquiries")
	inquiries.Use(authMW)
	{
		inquiries.POST("", h.Create)
		inquiries.GET("", h.List)
		inquiries.GET("/:id", h.Get)
		inquiries.PUT("/:id", h.UpdateStatus)
	}
}
