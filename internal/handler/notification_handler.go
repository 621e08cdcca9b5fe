package handler

import (
	"net/http"

	"car_rental/internal/logger"
	"car_rental/internal/service"

	"github.com/gin-gonic/gin"
)

// NotificationHandler serves the caller's own notifications
type NotificationHandler struct {
	service service.NotificationService
	log     logger.ILogger
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(s service.NotificationService, log logger.ILogger) *NotificationHandler {
	return &NotificationHandler{service: s, log: log}
}

func (h *NotificationHandler) List(c *gin.Context) {
	unread, err := optionalBool(c, "unread")
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	res, err := h.service.List(c.Request.Context(), authUserID(c), unread != nil && *unread, pagination(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	count, err := h.service.UnreadCount(c.Request.Context(), authUserID(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	if err := h.service.MarkRead(c.Request.Context(), c.Param("id"), authUserID(c)); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	n, err := h.service.MarkAllRead(c.Request.Context(), authUserID(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": n})
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	notifications := rg.Group("/notifications")
	notifications.Use(authMW)
	{
		notifications.GET("", h.List)
		notifications.GET("/unread-count", h.UnreadCount)
		notifications.PUT("/read-all", h.MarkAllRead)
		notifications.PUT("/:id/read", h.MarkRead)
	}
}
