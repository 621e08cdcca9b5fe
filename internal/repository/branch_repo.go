package repository

import (
	"context"
	"errors"
	"fmt"

	"car_rental/internal/model"

	"github.com/jackc/pgx/v5"
)

// BranchRepository defines operations for branch data
type BranchRepository interface {
	Create(ctx context.Context, b *model.Branch) error
	FindByID(ctx context.Context, id string) (*model.Branch, error)
	List(ctx context.Context, activeOnly *bool) ([]model.Branch, error)
	Update(ctx context.Context, id string, req model.UpdateBranchRequest) (*model.Branch, error)
}

type branchRepository struct {
	db DB
}

// NewBranchRepository creates a new BranchRepository
func NewBranchRepository(db DB) BranchRepository {
	return &branchRepository{db: db}
}

const branchColumns = `id, name, address, city, phone, email, is_active, created_at, updated_at`

func scanBranch(row pgx.Row, b *model.Branch) error {
	return row.Scan(&b.ID, &b.Name, &b.Address, &b.City, &b.Phone, &b.Email, &b.IsActive, &b.CreatedAt, &b.UpdatedAt)
}

// Create inserts a new branch
func (r *branchRepository) Create(ctx context.Context, b *model.Branch) error {
	sql := `INSERT INTO branches (id, name, address, city, phone, email, is_active, created_at, updated_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.Exec(ctx, sql, b.ID, b.Name, b.Address, b.City, b.Phone, b.Email, b.IsActive, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create branch: %w", err)
	}
	return nil
}

// FindByID retrieves a branch by its ID; nil, nil when absent
func (r *branchRepository) FindByID(ctx context.Context, id string) (*model.Branch, error) {
	b := &model.Branch{}
	sql := `SELECT ` + branchColumns + ` FROM branches WHERE id = $1`
	if err := scanBranch(r.db.QueryRow(ctx, sql, id), b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find branch by ID: %w", err)
	}
	return b, nil
}

// List returns all branches ordered by name, optionally filtered on is_active
func (r *branchRepository) List(ctx context.Context, activeOnly *bool) ([]model.Branch, error) {
	var conds conditions
	if activeOnly != nil {
		conds.add("is_active = $%d", *activeOnly)
	}
	sql := `SELECT ` + branchColumns + ` FROM branches` + conds.where() + ` ORDER BY name`
	rows, err := r.db.Query(ctx, sql, conds.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query branches: %w", err)
	}
	defer rows.Close()

	var branches []model.Branch
	for rows.Next() {
		var b model.Branch
		if err := scanBranch(rows, &b); err != nil {
			return nil, fmt.Errorf("failed to scan branch row: %w", err)
		}
		branches = append(branches, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating branch rows: %w", err)
	}
	return branches, nil
}

// Update applies the non-nil fields of req
func (r *branchRepository) Update(ctx context.Context, id string, req model.UpdateBranchRequest) (*model.Branch, error) {
	var s setter
	if req.Name != nil {
		s.set("name", *req.Name)
	}
	if req.Address != nil {
		s.set("address", *req.Address)
	}
	if req.City != nil {
		s.set("city", *req.City)
	}
	if req.Phone != nil {
		s.set("phone", *req.Phone)
	}
	if req.Email != nil {
		s.set("email", *req.Email)
	}
	if req.IsActive != nil {
		s.set("is_active", *req.IsActive)
	}
	if s.empty() {
		b, err := r.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if b == nil {
			return nil, ErrNotFound
		}
		return b, nil
	}

	set, n := s.clause()
	sql := fmt.Sprintf(`UPDATE branches %s WHERE id = $%d RETURNING %s`, set, n, branchColumns)
	b := &model.Branch{}
	if err := scanBranch(r.db.QueryRow(ctx, sql, append(s.args, id)...), b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update branch: %w", err)
	}
	return b, nil
}
