package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"car_rental/internal/logger"
	"car_rental/internal/middleware"
	"car_rental/internal/service"
	"car_rental/internal/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto the HTTP error contract. Unknown errors are logged and hidden.
func respondError(c *gin.Context, log logger.ILogger, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message, "field": verr.Field})
	case errors.Is(err, service.ErrUnavailable),
		errors.Is(err, service.ErrInvalidFileFormat),
		errors.Is(err, service.ErrFileSizeExceeded):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "User with this email already exists"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	default:
		log.Error("request failed",
			logger.String("method", c.Request.Method),
			logger.String("path", c.FullPath()),
			logger.Error(err))
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
}

// authUserID reads the caller set by JWTAuthMiddleware
func authUserID(c *gin.Context) string {
	return c.GetString(middleware.AuthUserKey)
}

func pagination(c *gin.Context) utils.Pagination {
	return utils.ParsePagination(c.Query("page"), c.Query("limit"))
}

// optionalString returns nil for an absent or empty query value
func optionalString(c *gin.Context, key string) *string {
	if v := c.Query(key); v != "" {
		return &v
	}
	return nil
}

func optionalBool(c *gin.Context, key string) (*bool, error) {
	v := c.Query(key)
	if v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, &service.ValidationError{Field: key, Message: "Invalid value for '" + key + "', use true or false"}
	}
	return &b, nil
}

func optionalFloat(c *gin.Context, key string) (*float64, error) {
	v := c.Query(key)
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, &service.ValidationError{Field: key, Message: "Invalid number for '" + key + "'"}
	}
	return &f, nil
}

func optionalDate(c *gin.Context, key string) (*time.Time, error) {
	v := c.Query(key)
	if v == "" {
		return nil, nil
	}
	d, err := utils.ParseDate(v)
	if err != nil {
		return nil, &service.ValidationError{Field: key, Message: "Invalid date format for '" + key + "', use YYYY-MM-DD"}
	}
	return &d, nil
}
