package service

import (
	"context"
	"encoding/csv"
	"testing"
	"time"

	"car_rental/internal/model"
	"car_rental/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpenseService_CreateDefaultsDate(t *testing.T) {
	repo := &fakeExpenses{}
	svc := NewExpenseService(repo)

	e, err := svc.Create(context.Background(), "admin1", model.CreateExpenseRequest{Category: "fuel", Amount: 20})
	require.NoError(t, err)
	assert.Equal(t, time.Now().Format(utils.DateLayout), e.ExpenseDate)
	assert.Equal(t, "admin1", e.CreatedBy)

	_, err = svc.Create(context.Background(), "admin1", model.CreateExpenseRequest{Category: "fuel", Amount: 20, ExpenseDate: "yesterday"})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.Create(context.Background(), "admin1", model.CreateExpenseRequest{Category: "fuel", Amount: 0})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Len(t, repo.rows, 1)
}

func TestExpenseService_ExportCSV(t *testing.T) {
	branch := "b1"
	repo := &fakeExpenses{rows: []model.Expense{
		{ID: "e1", Category: "fuel", Amount: 12.5, ExpenseDate: "2025-01-02", BranchID: &branch, CreatedBy: "admin1", CreatedAt: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)},
		{ID: "e2", Category: "repairs", Amount: 300, Description: ptr("brakes, front"), ExpenseDate: "2025-01-03", CreatedBy: "admin1"},
	}}
	svc := NewExpenseService(repo)

	buf, err := svc.ExportCSV(context.Background(), model.ExpenseFilters{})
	require.NoError(t, err)

	records, err := csv.NewReader(buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "ID", records[0][0])
	assert.Equal(t, []string{"e1", "fuel", "12.50", "", "2025-01-02", "b1", "", "admin1", "2025-01-02T00:00:00Z"}, records[1])
	assert.Equal(t, "brakes, front", records[2][3])
}

func TestExpenseService_StatsRejectsInvertedRange(t *testing.T) {
	svc := NewExpenseService(&fakeExpenses{rows: []model.Expense{
		{Category: "fuel", Amount: 10}, {Category: "fuel", Amount: 5}, {Category: "insurance", Amount: 100},
	}})
	start := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.Stats(context.Background(), model.ExpenseFilters{StartDate: &start, EndDate: &end})
	assert.ErrorIs(t, err, ErrValidation)

	stats, err := svc.Stats(context.Background(), model.ExpenseFilters{})
	require.NoError(t, err)
	assert.Equal(t, 115.0, stats.Total)
	assert.Equal(t, int64(3), stats.Count)
	assert.Equal(t, 15.0, stats.ByCategory["fuel"])
}
