package repository

import (
	"context"
	"fmt"

	"car_rental/internal/model"
	"car_rental/internal/utils"

	"github.com/jackc/pgx/v5"
)

// ExpenseRepository defines operations for expense data
type ExpenseRepository interface {
	Create(ctx context.Context, e *model.Expense) error
	List(ctx context.Context, filters model.ExpenseFilters, p utils.Pagination) ([]model.Expense, int, error)
	FindAll(ctx context.Context, filters model.ExpenseFilters) ([]model.Expense, error)
	GetStats(ctx context.Context, filters model.ExpenseFilters) (*model.ExpenseStats, error)
}

type expenseRepository struct {
	db DB
}

// NewExpenseRepository creates a new ExpenseRepository
func NewExpenseRepository(db DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

const expenseColumns = `id, category, amount, description, expense_date::text, branch_id, car_id, created_by, created_at`

func scanExpense(row pgx.Row, e *model.Expense) error {
	return row.Scan(&e.ID, &e.Category, &e.Amount, &e.Description, &e.ExpenseDate, &e.BranchID, &e.CarID, &e.CreatedBy, &e.CreatedAt)
}

func expenseConditions(filters model.ExpenseFilters) conditions {
	var conds conditions
	if filters.StartDate != nil {
		conds.add("expense_date >= $%d", *filters.StartDate)
	}
	if filters.EndDate != nil {
		conds.add("expense_date <= $%d", *filters.EndDate)
	}
	if filters.Category != nil && *filters.Category != "" {
		conds.add("category = $%d", *filters.Category)
	}
	if filters.BranchID != nil && *filters.BranchID != "" {
		conds.add("branch_id = $%d", *filters.BranchID)
	}
	return conds
}

// Create inserts a new expense
func (r *expenseRepository) Create(ctx context.Context, e *model.Expense) error {
	sql := `INSERT INTO expenses (id, category, amount, description, expense_date, branch_id, car_id, created_by, created_at)
            VALUES ($1, $2, $3, $4, $5::date, $6, $7, $8, $9)`
	_, err := r.db.Exec(ctx, sql, e.ID, e.Category, e.Amount, e.Description, e.ExpenseDate, e.BranchID, e.CarID, e.CreatedBy, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

func (r *expenseRepository) query(ctx context.Context, sql string, args []interface{}) ([]model.Expense, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []model.Expense
	for rows.Next() {
		var e model.Expense
		if err := scanExpense(rows, &e); err != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense rows: %w", err)
	}
	return expenses, nil
}

// List returns one page of expenses matching filters, latest expense_date first
func (r *expenseRepository) List(ctx context.Context, filters model.ExpenseFilters, p utils.Pagination) ([]model.Expense, int, error) {
	conds := expenseConditions(filters)
	total, err := conds.count(ctx, r.db, "FROM expenses")
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}
	limit, args := conds.page(p.Limit, p.Offset())
	sql := `SELECT ` + expenseColumns + ` FROM expenses` + conds.where() + ` ORDER BY expense_date DESC, created_at DESC` + limit
	expenses, err := r.query(ctx, sql, args)
	if err != nil {
		return nil, 0, err
	}
	return expenses, total, nil
}

// FindAll returns every expense matching filters, used for export
func (r *expenseRepository) FindAll(ctx context.Context, filters model.ExpenseFilters) ([]model.Expense, error) {
	conds := expenseConditions(filters)
	sql := `SELECT ` + expenseColumns + ` FROM expenses` + conds.where() + ` ORDER BY expense_date DESC, created_at DESC`
	return r.query(ctx, sql, conds.args)
}

// GetStats sums expenses matching filters overall and per category
func (r *expenseRepository) GetStats(ctx context.Context, filters model.ExpenseFilters) (*model.ExpenseStats, error) {
	stats := &model.ExpenseStats{ByCategory: make(map[string]float64)}
	conds := expenseConditions(filters)

	sumQuery := `SELECT COALESCE(SUM(amount), 0)::float8, COUNT(*) FROM expenses` + conds.where()
	if err := r.db.QueryRow(ctx, sumQuery, conds.args...).Scan(&stats.Total, &stats.Count); err != nil {
		return nil, fmt.Errorf("failed to get expense totals: %w", err)
	}

	categoryQuery := `SELECT category, COALESCE(SUM(amount), 0)::float8 FROM expenses` + conds.where() + ` GROUP BY category`
	rows, err := r.db.Query(ctx, categoryQuery, conds.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get expenses by category: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var category string
		var sum float64
		if err := rows.Scan(&category, &sum); err != nil {
			return nil, fmt.Errorf("failed to scan expenses by category: %w", err)
		}
		stats.ByCategory[category] = sum
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expenses by category: %w", err)
	}
	return stats, nil
}
