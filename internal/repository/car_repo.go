package repository

import (
	"context"
	"errors"
	"fmt"

	"car_rental/internal/model"
	"car_rental/internal/utils"

	"github.com/jackc/pgx/v5"
)

// CarRepository defines operations for car data
type CarRepository interface {
	Create(ctx context.Context, car *model.Car) error
	FindByID(ctx context.Context, id string) (*model.Car, error)
	List(ctx context.Context, filters model.CarFilters, p utils.Pagination) ([]model.Car, int, error)
	Update(ctx context.Context, car *model.Car) error
	Delete(ctx context.Context, id string) error
}

type carRepository struct {
	db DB
}

// NewCarRepository creates a new CarRepository
func NewCarRepository(db DB) CarRepository {
	return &carRepository{db: db}
}

const carColumns = `id, name, brand, model, year, category, price_per_day, price_per_week, price_per_month,
    images, features, specifications, available, availability, rating, review_count, is_popular, is_featured,
    description, created_at, updated_at`

func scanCar(row pgx.Row, c *model.Car) error {
	return row.Scan(
		&c.ID, &c.Name, &c.Brand, &c.Model, &c.Year, &c.Category, &c.PricePerDay, &c.PricePerWeek, &c.PricePerMonth,
		&c.Images, &c.Features, &c.Specifications, &c.Available, &c.Availability, &c.Rating, &c.ReviewCount,
		&c.IsPopular, &c.IsFeatured, &c.Description, &c.CreatedAt, &c.UpdatedAt,
	)
}

// Create inserts a new car
func (r *carRepository) Create(ctx context.Context, c *model.Car) error {
	sql := `INSERT INTO cars (id, name, brand, model, year, category, price_per_day, price_per_week, price_per_month,
                images, features, specifications, available, availability, is_popular, is_featured, description,
                created_at, updated_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
            RETURNING rating, review_count`
	err := r.db.QueryRow(ctx, sql,
		c.ID, c.Name, c.Brand, c.Model, c.Year, c.Category, c.PricePerDay, c.PricePerWeek, c.PricePerMonth,
		c.Images, c.Features, c.Specifications, c.Available, c.Availability, c.IsPopular, c.IsFeatured, c.Description,
		c.CreatedAt, c.UpdatedAt,
	).Scan(&c.Rating, &c.ReviewCount)
	if err != nil {
		return fmt.Errorf("failed to create car: %w", err)
	}
	return nil
}

// FindByID retrieves a car by its ID; nil, nil when absent
func (r *carRepository) FindByID(ctx context.Context, id string) (*model.Car, error) {
	c := &model.Car{}
	sql := `SELECT ` + carColumns + ` FROM cars WHERE id = $1`
	if err := scanCar(r.db.QueryRow(ctx, sql, id), c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find car by ID: %w", err)
	}
	return c, nil
}

// List returns one page of cars matching filters and the total match count
func (r *carRepository) List(ctx context.Context, filters model.CarFilters, p utils.Pagination) ([]model.Car, int, error) {
	var conds conditions
	if filters.Category != nil && *filters.Category != "" {
		conds.add("category = $%d", *filters.Category)
	}
	if filters.Brand != nil && *filters.Brand != "" {
		conds.add("brand ILIKE $%d", *filters.Brand)
	}
	if filters.Available != nil {
		conds.add("available = $%d", *filters.Available)
	}
	if filters.MinPrice != nil {
		conds.add("price_per_day >= $%d", *filters.MinPrice)
	}
	if filters.MaxPrice != nil {
		conds.add("price_per_day <= $%d", *filters.MaxPrice)
	}
	if filters.Featured != nil {
		conds.add("is_featured = $%d", *filters.Featured)
	}
	if filters.Popular != nil {
		conds.add("is_popular = $%d", *filters.Popular)
	}

	total, err := conds.count(ctx, r.db, "FROM cars")
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count cars: %w", err)
	}

	limit, args := conds.page(p.Limit, p.Offset())
	sql := `SELECT ` + carColumns + ` FROM cars` + conds.where() + ` ORDER BY is_featured DESC, created_at DESC` + limit
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query cars: %w", err)
	}
	defer rows.Close()

	var cars []model.Car
	for rows.Next() {
		var c model.Car
		if err := scanCar(rows, &c); err != nil {
			return nil, 0, fmt.Errorf("failed to scan car row: %w", err)
		}
		cars = append(cars, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating car rows: %w", err)
	}
	return cars, total, nil
}

// Update replaces the mutable columns of a car
func (r *carRepository) Update(ctx context.Context, c *model.Car) error {
	sql := `UPDATE cars
            SET name = $1, brand = $2, model = $3, year = $4, category = $5, price_per_day = $6, price_per_week = $7,
                price_per_month = $8, images = $9, features = $10, specifications = $11, available = $12,
                availability = $13, is_popular = $14, is_featured = $15, description = $16
            WHERE id = $17 RETURNING updated_at`
	err := r.db.QueryRow(ctx, sql,
		c.Name, c.Brand, c.Model, c.Year, c.Category, c.PricePerDay, c.PricePerWeek, c.PricePerMonth,
		c.Images, c.Features, c.Specifications, c.Available, c.Availability, c.IsPopular, c.IsFeatured, c.Description,
		c.ID,
	).Scan(&c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update car: %w", err)
	}
	return nil
}

// Delete removes a car
func (r *carRepository) Delete(ctx context.Context, id string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM cars WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete car: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
