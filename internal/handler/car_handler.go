package handler

import (
	"net/http"

	"car_rental/internal/logger"
	"car_rental/internal/model"
	"car_rental/internal/service"

	"github.com/gin-gonic/gin"
)

// CarHandler serves the public catalogue and admin car management
type CarHandler struct {
	service service.CarService
	log     logger.ILogger
}

// NewCarHandler creates a new CarHandler
func NewCarHandler(s service.CarService, log logger.ILogger) *CarHandler {
	return &CarHandler{service: s, log: log}
}

func (h *CarHandler) filters(c *gin.Context) (model.CarFilters, error) {
	f := model.CarFilters{
		Category: optionalString(c, "category"),
		Brand:    optionalString(c, "brand"),
	}
	var err error
	if f.Available, err = optionalBool(c, "available"); err != nil {
		return f, err
	}
	if f.Featured, err = optionalBool(c, "featured"); err != nil {
		return f, err
	}
	if f.Popular, err = optionalBool(c, "popular"); err != nil {
		return f, err
	}
	if f.MinPrice, err = optionalFloat(c, "min_price"); err != nil {
		return f, err
	}
	if f.MaxPrice, err = optionalFloat(c, "max_price"); err != nil {
		return f, err
	}
	return f, nil
}

func (h *CarHandler) List(c *gin.Context) {
	filters, err := h.filters(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	res, err := h.service.List(c.Request.Context(), filters, pagination(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *CarHandler) Get(c *gin.Context) {
	car, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, car)
}

func (h *CarHandler) Create(c *gin.Context) {
	var req model.CarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	car, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, car)
}

func (h *CarHandler) Update(c *gin.Context) {
	var req model.CarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	car, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, car)
}

func (h *CarHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Car deleted successfully"})
}

// RegisterCarRoutes registers public and admin car routes
func (h *CarHandler) RegisterCarRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	cars := rg.Group("/cars")
	{
		cars.GET("", h.List)
		cars.GET("/:id", h.Get)
	}

	adminCars := rg.Group("/cars")
	adminCars.Use(authMW, adminMW)
	{
		adminCars.POST("", h.Create)
		adminCars.PUT("/:id", h.Update)
		adminCars.DELETE("/:id", h.Delete)
	}
}
