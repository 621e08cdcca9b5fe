package service

import (
	"context"
	"testing"

	"car_rental/internal/logger"
	"car_rental/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryCarCache counts lookups so tests can see read-through behaviour
type memoryCarCache struct {
	cars map[string]model.Car
	hits int
}

func (m *memoryCarCache) Get(_ context.Context, id string) (*model.Car, bool, error) {
	c, ok := m.cars[id]
	if !ok {
		return nil, false, nil
	}
	m.hits++
	return &c, true, nil
}

func (m *memoryCarCache) Set(_ context.Context, car *model.Car) error {
	m.cars[car.ID] = *car
	return nil
}

func (m *memoryCarCache) Invalidate(_ context.Context, id string) error {
	delete(m.cars, id)
	return nil
}

func ptr[T any](v T) *T { return &v }

func fullCarRequest() model.CarRequest {
	return model.CarRequest{
		Name:        ptr("Civic 2023"),
		Brand:       ptr("Honda"),
		Model:       ptr("Civic"),
		Year:        ptr(2023),
		Category:    ptr("sedan"),
		PricePerDay: ptr(45.0),
	}
}

func TestCarService_CreateRequiresEveryField(t *testing.T) {
	cases := map[string]func(r *model.CarRequest){
		"name":        func(r *model.CarRequest) { r.Name = nil },
		"brand":       func(r *model.CarRequest) { r.Brand = ptr("") },
		"model":       func(r *model.CarRequest) { r.Model = nil },
		"year":        func(r *model.CarRequest) { r.Year = nil },
		"category":    func(r *model.CarRequest) { r.Category = nil },
		"pricePerDay": func(r *model.CarRequest) { r.PricePerDay = nil },
	}
	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			cars := newFakeCars()
			svc := NewCarService(cars, &memoryCarCache{cars: map[string]model.Car{}}, logger.NewNop())
			req := fullCarRequest()
			mutate(&req)

			_, err := svc.Create(context.Background(), req)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, field, verr.Field)
			assert.Empty(t, cars.byID)
		})
	}
}

func TestCarService_CreateDefaults(t *testing.T) {
	cars := newFakeCars()
	svc := NewCarService(cars, &memoryCarCache{cars: map[string]model.Car{}}, logger.NewNop())

	car, err := svc.Create(context.Background(), fullCarRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, car.ID)
	assert.True(t, car.Available)
	assert.NotNil(t, car.Images)
	assert.NotNil(t, car.Specifications)
	assert.Contains(t, cars.byID, car.ID)
}

func TestCarService_GetReadsThroughAndUpdateInvalidates(t *testing.T) {
	cars := newFakeCars(&model.Car{ID: "C123", Name: "Civic", Brand: "Honda", Model: "Civic", Year: 2023, Category: "sedan", PricePerDay: 45, Available: true})
	c := &memoryCarCache{cars: map[string]model.Car{}}
	svc := NewCarService(cars, c, logger.NewNop())
	ctx := context.Background()

	_, err := svc.Get(ctx, "C123")
	require.NoError(t, err)
	assert.Equal(t, 0, c.hits)
	assert.Contains(t, c.cars, "C123")

	_, err = svc.Get(ctx, "C123")
	require.NoError(t, err)
	assert.Equal(t, 1, c.hits)

	req := fullCarRequest()
	req.PricePerDay = ptr(50.0)
	req.Available = ptr(false)
	updated, err := svc.Update(ctx, "C123", req)
	require.NoError(t, err)
	assert.Equal(t, 50.0, updated.PricePerDay)
	assert.False(t, updated.Available)
	assert.NotContains(t, c.cars, "C123")

	_, err = svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.Delete(ctx, "C123"))
	assert.ErrorIs(t, svc.Delete(ctx, "C123"), ErrNotFound)
}

func TestCarService_UpdateValidatesBeforeWriting(t *testing.T) {
	cars := newFakeCars(&model.Car{ID: "C123", Name: "Civic"})
	svc := NewCarService(cars, &memoryCarCache{cars: map[string]model.Car{}}, logger.NewNop())

	req := fullCarRequest()
	req.Year = nil
	_, err := svc.Update(context.Background(), "C123", req)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, 0, cars.updates)

	_, err = svc.Update(context.Background(), "nope", fullCarRequest())
	assert.ErrorIs(t, err, ErrNotFound)
}
