package handler

import (
	"fmt"
	"net/http"
	"time"

	"car_rental/internal/logger"
	"car_rental/internal/model"
	"car_rental/internal/service"

	"github.com/gin-gonic/gin"
)

// ExpenseHandler handles admin expense requests
type ExpenseHandler struct {
	service service.ExpenseService
	log     logger.ILogger
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(s service.ExpenseService, log logger.ILogger) *ExpenseHandler {
	return &ExpenseHandler{service: s, log: log}
}

// filters reads start_date, end_date, category and branch_id
func (h *ExpenseHandler) filters(c *gin.Context) (model.ExpenseFilters, error) {
	f := model.ExpenseFilters{
		Category: optionalString(c, "category"),
		BranchID: optionalString(c, "branch_id"),
	}
	var err error
	if f.StartDate, err = optionalDate(c, "start_date"); err != nil {
		return f, err
	}
	if f.EndDate, err = optionalDate(c, "end_date"); err != nil {
		return f, err
	}
	return f, nil
}

func (h *ExpenseHandler) Create(c *gin.Context) {
	var req model.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	expense, err := h.service.Create(c.Request.Context(), authUserID(c), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, expense)
}

func (h *ExpenseHandler) List(c *gin.Context) {
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

func (h *ExpenseHandler) Stats(c *gin.Context) {
	filters, err := h.filters(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	stats, err := h.service.Stats(c.Request.Context(), filters)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *ExpenseHandler) ExportCSV(c *gin.Context) {
	filters, err := h.filters(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	csvBuffer, err := h.service.ExportCSV(c.Request.Context(), filters)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	fileName := fmt.Sprintf("expenses_export_%s.csv", time.Now().Format("20060102_150405"))
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	c.Data(http.StatusOK, "text/csv", csvBuffer.Bytes())
}

// RegisterExpenseRoutes registers admin-only expense routes
func (h *ExpenseHandler) RegisterExpenseRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	expenses := rg.Group("/expenses")
	expenses.Use(authMW, adminMW)
	{
		expenses.POST("", h.Create)
		expenses.GET("", h.List)
		expenses.GET("/stats", h.Stats)
		expenses.GET("/export/csv", h.ExportCSV)
	}
}
