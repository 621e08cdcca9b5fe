package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"car_rental/internal/model"
	"car_rental/internal/repository"
	"car_rental/internal/utils"

	"github.com/google/uuid"
)

// ExpenseService records and reports operating costs. Every route in front of it is admin-only.
type ExpenseService interface {
	Create(ctx context.Context, adminID string, req model.CreateExpenseRequest) (*model.Expense, error)
	List(ctx context.Context, filters model.ExpenseFilters, p utils.Pagination) (utils.PageResult[model.Expense], error)
	Stats(ctx context.Context, filters model.ExpenseFilters) (*model.ExpenseStats, error)
	ExportCSV(ctx context.Context, filters model.ExpenseFilters) (*bytes.Buffer, error)
}

type expenseService struct {
	repo repository.ExpenseRepository
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(repo repository.ExpenseRepository) ExpenseService {
	return &expenseService{repo: repo}
}

func (s *expenseService) Create(ctx context.Context, adminID string, req model.CreateExpenseRequest) (*model.Expense, error) {
	if strings.TrimSpace(req.Category) == "" {
		return nil, missingField("category")
	}
	if req.Amount <= 0 {
		return nil, invalidField("amount", "amount must be greater than 0")
	}
	expenseDate := req.ExpenseDate
	if expenseDate == "" {
		expenseDate = time.Now().Format(utils.DateLayout)
	} else if _, err := utils.ParseDate(expenseDate); err != nil {
		return nil, invalidField("expense_date", "Invalid expense_date, expected YYYY-MM-DD")
	}

	expense := &model.Expense{
		ID:          uuid.NewString(),
		Category:    req.Category,
		Amount:      req.Amount,
		Description: req.Description,
		ExpenseDate: expenseDate,
		BranchID:    req.BranchID,
		CarID:       req.CarID,
		CreatedBy:   adminID,
		CreatedAt:   time.Now(),
	}
	if err := s.repo.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to create expense in repo: %w", err)
	}
	return expense, nil
}

func validateExpenseFilters(filters model.ExpenseFilters) error {
	if filters.StartDate != nil && filters.EndDate != nil && filters.EndDate.Before(*filters.StartDate) {
		return invalidField("end_date", "end_date must not be before start_date")
	}
	return nil
}

func (s *expenseService) List(ctx context.Context, filters model.ExpenseFilters, p utils.Pagination) (utils.PageResult[model.Expense], error) {
	if err := validateExpenseFilters(filters); err != nil {
		return utils.PageResult[model.Expense]{}, err
	}
	expenses, total, err := s.repo.List(ctx, filters, p)
	if err != nil {
		return utils.PageResult[model.Expense]{}, fmt.Errorf("failed to list expenses: %w", err)
	}
	return utils.NewPageResult(expenses, total, p), nil
}

func (s *expenseService) Stats(ctx context.Context, filters model.ExpenseFilters) (*model.ExpenseStats, error) {
	if err := validateExpenseFilters(filters); err != nil {
		return nil, err
	}
	stats, err := s.repo.GetStats(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense stats: %w", err)
	}
	return stats, nil
}

func (s *expenseService) ExportCSV(ctx context.Context, filters model.ExpenseFilters) (*bytes.Buffer, error) {
	if err := validateExpenseFilters(filters); err != nil {
		return nil, err
	}
	expenses, err := s.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch expenses for CSV export: %w", err)
	}

	buffer := &bytes.Buffer{}
	writer := csv.NewWriter(buffer)

	header := []string{"ID", "Category", "Amount", "Description", "ExpenseDate", "BranchID", "CarID", "CreatedBy", "CreatedAt"}
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, e := range expenses {
		row := []string{
			e.ID,
			e.Category,
			strconv.FormatFloat(e.Amount, 'f', 2, 64),
			deref(e.Description),
			e.ExpenseDate,
			deref(e.BranchID),
			deref(e.CarID),
			e.CreatedBy,
			e.CreatedAt.Format(time.RFC3339),
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("error flushing CSV writer: %w", err)
	}
	return buffer, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
