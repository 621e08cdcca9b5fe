package repository

import (
	"context"
	"errors"
	"fmt"

	"car_rental/internal/model"
	"car_rental/internal/utils"

	"github.com/jackc/pgx/v5"
)

// InquiryRepository defines operations for inquiry data
type InquiryRepository interface {
	Create(ctx context.Context, inquiry *model.Inquiry) error
	FindByID(ctx context.Context, id string) (*model.Inquiry, error)
	List(ctx context.Context, filters model.InquiryFilters, p utils.Pagination) ([]model.Inquiry, int, error)
	Update(ctx context.Context, id string, upd model.InquiryUpdate) (*model.Inquiry, error)
}

type inquiryRepository struct {
	db DB
}

// NewInquiryRepository creates a new InquiryRepository
func NewInquiryRepository(db DB) InquiryRepository {
	return &inquiryRepository{db: db}
}

// inquirySelect reads an inquiry joined with its car summary; %s is the row source aliased as i.
const inquirySelect = `SELECT i.id, i.user_id, i.car_id, i.pickup_date::text, i.return_date::text, i.pickup_location,
    i.dropoff_location, i.message, i.status, i.admin_response, i.created_at, i.updated_at,
    c.name, c.brand, c.model
    FROM %s i LEFT JOIN cars c ON c.id = i.car_id`

func scanInquiry(row pgx.Row, i *model.Inquiry) error {
	var carName, carBrand, carModel *string
	err := row.Scan(
		&i.ID, &i.UserID, &i.CarID, &i.PickupDate, &i.ReturnDate, &i.PickupLocation,
		&i.DropoffLocation, &i.Message, &i.Status, &i.AdminResponse, &i.CreatedAt, &i.UpdatedAt,
		&carName, &carBrand, &carModel,
	)
	if err != nil {
		return err
	}
	if carName != nil {
		i.Car = &model.CarSummary{ID: i.CarID, Name: *carName}
		if carBrand != nil {
			i.Car.Brand = *carBrand
		}
		if carModel != nil {
			i.Car.Model = *carModel
		}
	}
	return nil
}

// Create inserts a new inquiry
func (r *inquiryRepository) Create(ctx context.Context, i *model.Inquiry) error {
	sql := `INSERT INTO inquiries (id, user_id, car_id, pickup_date, return_date, pickup_location, dropoff_location,
                message, status, created_at, updated_at)
            VALUES ($1, $2, $3, $4::date, $5::date, $6, $7, $8, $9, $10, $11)`
	_, err := r.db.Exec(ctx, sql,
		i.ID, i.UserID, i.CarID, i.PickupDate, i.ReturnDate, i.PickupLocation, i.DropoffLocation,
		i.Message, string(i.Status), i.CreatedAt, i.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create inquiry: %w", err)
	}
	return nil
}

// FindByID retrieves an inquiry by its ID; nil, nil when absent
func (r *inquiryRepository) FindByID(ctx context.Context, id string) (*model.Inquiry, error) {
	i := &model.Inquiry{}
	sql := fmt.Sprintf(inquirySelect, "inquiries") + ` WHERE i.id = $1`
	if err := scanInquiry(r.db.QueryRow(ctx, sql, id), i); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find inquiry by ID: %w", err)
	}
	return i, nil
}

// List returns one page of inquiries, newest first, and the total match count
func (r *inquiryRepository) List(ctx context.Context, filters model.InquiryFilters, p utils.Pagination) ([]model.Inquiry, int, error) {
	var conds conditions
	if filters.UserID != nil {
		conds.add("i.user_id = $%d", *filters.UserID)
	}
	if filters.Status != nil {
		conds.add("i.status = $%d", string(*filters.Status))
	}

	total, err := conds.count(ctx, r.db, "FROM inquiries i")
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count inquiries: %w", err)
	}

	limit, args := conds.page(p.Limit, p.Offset())
	sql := fmt.Sprintf(inquirySelect, "inquiries") + conds.where() + ` ORDER BY i.created_at DESC` + limit
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query inquiries: %w", err)
	}
	defer rows.Close()

	var inquiries []model.Inquiry
	for rows.Next() {
		var i model.Inquiry
		if err := scanInquiry(rows, &i); err != nil {
			return nil, 0, fmt.Errorf("failed to scan inquiry row: %w", err)
		}
		inquiries = append(inquiries, i)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating inquiry rows: %w", err)
	}
	return inquiries, total, nil
}

// Update applies only the supplied fields and returns the updated inquiry; ErrNotFound when absent
func (r *inquiryRepository) Update(ctx context.Context, id string, upd model.InquiryUpdate) (*model.Inquiry, error) {
	var s setter
	if upd.Status != nil {
		s.set("status", string(*upd.Status))
	}
	if upd.AdminResponse != nil {
		s.set("admin_response", *upd.AdminResponse)
	}
	if s.empty() {
		existing, err := r.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, ErrNotFound
		}
		return existing, nil
	}

	set, idArg := s.clause()
	sql := fmt.Sprintf(`WITH updated AS (UPDATE inquiries %s WHERE id = $%d RETURNING *) `, set, idArg) +
		fmt.Sprintf(inquirySelect, "updated")

	i := &model.Inquiry{}
	if err := scanInquiry(r.db.QueryRow(ctx, sql, append(s.args, id)...), i); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update inquiry: %w", err)
	}
	return i, nil
}
