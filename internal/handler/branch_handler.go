package handler

import (
	"net/http"

	"car_rental/internal/logger"
	"car_rental/internal/model"
	"car_rental/internal/service"

	"github.com/gin-gonic/gin"
)

// BranchHandler handles branch requests
type BranchHandler struct {
	service service.BranchService
	log     logger.ILogger
}

// NewBranchHandler creates a new BranchHandler
func NewBranchHandler(s service.BranchService, log logger.ILogger) *BranchHandler {
	return &BranchHandler{service: s, log: log}
}

func (h *BranchHandler) List(c *gin.Context) {
	active, err := optionalBool(c, "active")
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	branches, err := h.service.List(c.Request.Context(), active)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, branches)
}

func (h *BranchHandler) Get(c *gin.Context) {
	branch, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, branch)
}

func (h *BranchHandler) Create(c *gin.Context) {
	var req model.CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	branch, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, branch)
}

func (h *BranchHandler) Update(c *gin.Context) {
	var req model.UpdateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	branch, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, branch)
}

// RegisterBranchRoutes registers public and admin branch routes
func (h *BranchHandler) RegisterBranchRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	branches := rg.Group("/branches")
	{
		branches.GET("", h.List)
		branches.GET("/:id", h.Get)
	}

	adminBranches := rg.Group("/branches")
	adminBranches.Use(authMW, adminMW)
	{
		adminBranches.POST("", h.Create)
		adminBranches.PUT("/:id", h.Update)
	}
}
