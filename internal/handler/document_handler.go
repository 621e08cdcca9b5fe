package handler

import (
	"net/http"
	"os"
	"strings"

	"car_rental/internal/logger"
	"car_rental/internal/model"
	"car_rental/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// DocumentHandler handles customer document uploads and admin verification
type DocumentHandler struct {
	service service.DocumentService
	log     logger.ILogger
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(s service.DocumentService, log logger.ILogger) *DocumentHandler {
	return &DocumentHandler{service: s, log: log}
}

// Create accepts either a JSON record of an externally hosted document or a multipart upload with a "file" part
func (h *DocumentHandler) Create(c *gin.Context) {
	var req model.CreateDocumentRequest
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		if err := c.ShouldBindWith(&req, binding.FormMultipart); err != nil {
			badRequest(c, err)
			return
		}
		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Document file is required: " + err.Error()})
			return
		}
		doc, err := h.service.Upload(c.Request.Context(), authUserID(c), req, file)
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		c.JSON(http.StatusCreated, doc)
		return
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	doc, err := h.service.Create(c.Request.Context(), authUserID(c), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, doc)
}

func (h *DocumentHandler) List(c *gin.Context) {
	filters := model.DocumentFilters{
		UserID:       optionalString(c, "user_id"),
		DocumentType: optionalString(c, "document_type"),
	}
	verified, err := optionalBool(c, "verified")
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	filters.Verified = verified

	res, err := h.service.List(c.Request.Context(), authUserID(c), filters, pagination(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *DocumentHandler) GetFile(c *gin.Context) {
	filePath, fileName, err := h.service.GetFilePath(c.Request.Context(), c.Param("id"), authUserID(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document file not found on server"})
		return
	}
	c.FileAttachment(filePath, fileName)
}

// Verify is admin-only; the service runs the access guard first
func (h *DocumentHandler) Verify(c *gin.Context) {
	var req model.VerifyDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	doc, err := h.service.Verify(c.Request.Context(), authUserID(c), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// RegisterDocumentRoutes registers document routes
func (h *DocumentHandler) RegisterDocumentRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	documents := rg.Group("/documents")
	documents.Use(authMW)
	{
		documents.POST("", h.Create)
		documents.GET("", h.List)
		documents.PUT("", h.Verify)
		documents.GET("/:id/file", h.GetFile)
	}
}
