package model

import "time"

// Expense is an operating cost recorded by an admin
type Expense struct {
	ID          string    `json:"id"`
	Category    string    `json:"category"`
	Amount      float64   `json:"amount"`
	Description *string   `json:"description,omitempty"`
	ExpenseDate string    `json:"expense_date"` // YYYY-MM-DD
	BranchID    *string   `json:"branch_id,omitempty"`
	CarID       *string   `json:"car_id,omitempty"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateExpenseRequest struct {
	Category    string  `json:"category" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Description *string `json:"description"`
	ExpenseDate string  `json:"expense_date"` // defaults to today
	BranchID    *string `json:"branch_id"`
	CarID       *string `json:"car_id"`
}

// ExpenseFilters contains filter parameters for expense queries
type ExpenseFilters struct {
	StartDate *time.Time
	EndDate   *time.Time
	Category  *string
	BranchID  *string
}

// ExpenseStats aggregates expenses matching a filter
type ExpenseStats struct {
	Total      float64            `json:"total"`
	Count      int64              `json:"count"`
	ByCategory map[string]float64 `json:"by_category"`
}
