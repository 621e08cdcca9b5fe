package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"car_rental/internal/model"
	"car_rental/internal/utils"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var carCols = []string{
	"id", "name", "brand", "model", "year", "category", "price_per_day", "price_per_week", "price_per_month",
	"images", "features", "specifications", "available", "availability", "rating", "review_count", "is_popular",
	"is_featured", "description", "created_at", "updated_at",
}

func testCar() *model.Car {
	now := time.Now()
	return &model.Car{
		ID: "C123", Name: "Civic 2023", Brand: "Honda", Model: "Civic", Year: 2023, Category: "sedan",
		PricePerDay:    45.5,
		Images:         []string{"civic-front.jpg"},
		Features:       []string{"bluetooth", "cruise control"},
		Specifications: map[string]interface{}{"seats": float64(5)},
		Available:      true,
		Availability:   map[string]interface{}{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func TestCarRepository_CreateReadsDefaults(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCarRepository(mock)
	car := testCar()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO cars")).
		WithArgs("C123", "Civic 2023", "Honda", "Civic", 2023, "sedan", 45.5, (*float64)(nil), (*float64)(nil),
			[]string{"civic-front.jpg"}, []string{"bluetooth", "cruise control"}, map[string]interface{}{"seats": float64(5)},
			true, map[string]interface{}{}, false, false, (*string)(nil), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"rating", "review_count"}).AddRow(4.5, 12))

	require.NoError(t, repo.Create(context.Background(), car))
	assert.Equal(t, 4.5, car.Rating)
	assert.Equal(t, 12, car.ReviewCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCarRepository_FindByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCarRepository(mock)
	now := time.Now()
	week := 280.0

	mock.ExpectQuery(regexp.QuoteMeta("FROM cars WHERE id = $1")).
		WithArgs("C123").
		WillReturnRows(pgxmock.NewRows(carCols).AddRow(
			"C123", "Civic 2023", "Honda", "Civic", 2023, "sedan", 45.5, &week, (*float64)(nil),
			[]string{"civic-front.jpg"}, []string{"bluetooth"}, map[string]interface{}{"seats": float64(5)},
			true, map[string]interface{}{}, 4.5, 12, true, false, strPtr("Compact and thrifty"), now, now,
		))

	car, err := repo.FindByID(context.Background(), "C123")
	require.NoError(t, err)
	assert.Equal(t, "Honda", car.Brand)
	require.NotNil(t, car.PricePerWeek)
	assert.Equal(t, 280.0, *car.PricePerWeek)
	assert.Nil(t, car.PricePerMonth)
	assert.Equal(t, []string{"civic-front.jpg"}, car.Images)
	assert.Equal(t, float64(5), car.Specifications["seats"])
	assert.True(t, car.IsPopular)

	mock.ExpectQuery(regexp.QuoteMeta("FROM cars WHERE id = $1")).WithArgs("missing").WillReturnError(pgx.ErrNoRows)
	car, err = repo.FindByID(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Nil(t, car)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCarRepository_ListFilters(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCarRepository(mock)
	available := true
	minPrice, maxPrice := 30.0, 60.0
	filters := model.CarFilters{Brand: strPtr("honda"), Available: &available, MinPrice: &minPrice, MaxPrice: &maxPrice}

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT COUNT(*) FROM cars WHERE brand ILIKE $1 AND available = $2 AND price_per_day >= $3 AND price_per_day <= $4")).
		WithArgs("honda", true, 30.0, 60.0).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY is_featured DESC, created_at DESC LIMIT $5 OFFSET $6")).
		WithArgs("honda", true, 30.0, 60.0, 10, 0).
		WillReturnRows(pgxmock.NewRows(carCols))

	cars, total, err := repo.List(context.Background(), filters, utils.Pagination{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Empty(t, cars)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCarRepository_UpdateAndDeleteMissing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCarRepository(mock)
	car := testCar()
	car.ID = "gone"

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE cars")).
		WithArgs("Civic 2023", "Honda", "Civic", 2023, "sedan", 45.5, (*float64)(nil), (*float64)(nil),
			[]string{"civic-front.jpg"}, []string{"bluetooth", "cruise control"}, map[string]interface{}{"seats": float64(5)},
			true, map[string]interface{}{}, false, false, (*string)(nil), "gone").
		WillReturnError(pgx.ErrNoRows)
	assert.ErrorIs(t, repo.Update(context.Background(), car), ErrNotFound)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM cars WHERE id = $1")).
		WithArgs("gone").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), "gone"), ErrNotFound)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM cars WHERE id = $1")).
		WithArgs("C123").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	assert.NoError(t, repo.Delete(context.Background(), "C123"))

	assert.NoError(t, mock.ExpectationsWereMet())
}
