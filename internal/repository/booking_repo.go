package repository

import (
	"context"
	"errors"
	"fmt"

	"car_rental/internal/model"
	"car_rental/internal/utils"

	"github.com/jackc/pgx/v5"
)

// BookingRepository defines operations for booking data
type BookingRepository interface {
	Create(ctx context.Context, b *model.Booking) error
	FindByID(ctx context.Context, id string) (*model.Booking, error)
	List(ctx context.Context, filters model.BookingFilters, p utils.Pagination) ([]model.Booking, int, error)
	UpdateStatus(ctx context.Context, id string, status model.BookingStatus) (*model.Booking, error)
}

type bookingRepository struct {
	db DB
}

// NewBookingRepository creates a new BookingRepository
func NewBookingRepository(db DB) BookingRepository {
	return &bookingRepository{db: db}
}

const bookingSelect = `SELECT b.id, b.user_id, b.car_id, b.inquiry_id, b.pickup_date::text, b.return_date::text,
    b.pickup_location, b.dropoff_location, b.total_price, b.status, b.created_at, b.updated_at,
    c.name, c.brand, c.model
    FROM %s b LEFT JOIN cars c ON c.id = b.car_id`

func scanBooking(row pgx.Row, b *model.Booking) error {
	var carName, carBrand, carModel *string
	err := row.Scan(
		&b.ID, &b.UserID, &b.CarID, &b.InquiryID, &b.PickupDate, &b.ReturnDate,
		&b.PickupLocation, &b.DropoffLocation, &b.TotalPrice, &b.Status, &b.CreatedAt, &b.UpdatedAt,
		&carName, &carBrand, &carModel,
	)
	if err != nil {
		return err
	}
	if carName != nil {
		b.Car = &model.CarSummary{ID: b.CarID, Name: *carName}
		if carBrand != nil {
			b.Car.Brand = *carBrand
		}
		if carModel != nil {
			b.Car.Model = *carModel
		}
	}
	return nil
}

// Create inserts a new booking
func (r *bookingRepository) Create(ctx context.Context, b *model.Booking) error {
	sql := `INSERT INTO bookings (id, user_id, car_id, inquiry_id, pickup_date, return_date, pickup_location,
                dropoff_location, total_price, status, created_at, updated_at)
            VALUES ($1, $2, $3, $4, $5::date, $6::date, $7, $8, $9, $10, $11, $12)`
	_, err := r.db.Exec(ctx, sql, b.ID, b.UserID, b.CarID, b.InquiryID, b.PickupDate, b.ReturnDate, b.PickupLocation,
		b.DropoffLocation, b.TotalPrice, string(b.Status), b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// FindByID retrieves a booking by its ID; nil, nil when absent
func (r *bookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	b := &model.Booking{}
	sql := fmt.Sprintf(bookingSelect, "bookings") + ` WHERE b.id = $1`
	if err := scanBooking(r.db.QueryRow(ctx, sql, id), b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return b, nil
}

// List returns one page of bookings matching filters, newest first
func (r *bookingRepository) List(ctx context.Context, filters model.BookingFilters, p utils.Pagination) ([]model.Booking, int, error) {
	var conds conditions
	if filters.UserID != nil {
		conds.add("b.user_id = $%d", *filters.UserID)
	}
	if filters.CarID != nil {
		conds.add("b.car_id = $%d", *filters.CarID)
	}
	if filters.Status != nil {
		conds.add("b.status = $%d", string(*filters.Status))
	}

	total, err := conds.count(ctx, r.db, "FROM bookings b")
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	limit, args := conds.page(p.Limit, p.Offset())
	sql := fmt.Sprintf(bookingSelect, "bookings") + conds.where() + ` ORDER BY b.created_at DESC` + limit
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []model.Booking
	for rows.Next() {
		var b model.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, 0, fmt.Errorf("failed to scan booking row: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating booking rows: %w", err)
	}
	return bookings, total, nil
}

// UpdateStatus sets the booking status and returns the updated booking
func (r *bookingRepository) UpdateStatus(ctx context.Context, id string, status model.BookingStatus) (*model.Booking, error) {
	sql := `WITH updated AS (UPDATE bookings SET status = $1 WHERE id = $2 RETURNING *) ` +
		fmt.Sprintf(bookingSelect, "updated")
	b := &model.Booking{}
	if err := scanBooking(r.db.QueryRow(ctx, sql, string(status), id), b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}
	return b, nil
}
