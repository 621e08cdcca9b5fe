package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"car_rental/internal/cache"
	"car_rental/internal/logger"
	"car_rental/internal/metrics"
	"car_rental/internal/model"
	"car_rental/internal/repository"
	"car_rental/internal/utils"

	"github.com/google/uuid"
)

// CarService manages the car catalogue
type CarService interface {
	Create(ctx context.Context, req model.CarRequest) (*model.Car, error)
	Get(ctx context.Context, id string) (*model.Car, error)
	List(ctx context.Context, filters model.CarFilters, p utils.Pagination) (utils.PageResult[model.Car], error)
	Update(ctx context.Context, id string, req model.CarRequest) (*model.Car, error)
	Delete(ctx context.Context, id string) error
}

type carService struct {
	repo  repository.CarRepository
	cache cache.CarCache
	log   logger.ILogger
}

// NewCarService creates a new CarService
func NewCarService(repo repository.CarRepository, carCache cache.CarCache, log logger.ILogger) CarService {
	return &carService{repo: repo, cache: carCache, log: log}
}

// validateCarRequest checks the fields every create and update must carry
func validateCarRequest(req model.CarRequest) error {
	switch {
	case req.Name == nil || strings.TrimSpace(*req.Name) == "":
		return missingField("name")
	case req.Brand == nil || strings.TrimSpace(*req.Brand) == "":
		return missingField("brand")
	case req.Model == nil || strings.TrimSpace(*req.Model) == "":
		return missingField("model")
	case req.Year == nil:
		return missingField("year")
	case req.Category == nil || strings.TrimSpace(*req.Category) == "":
		return missingField("category")
	case req.PricePerDay == nil:
		return missingField("pricePerDay")
	}
	if *req.PricePerDay <= 0 {
		return invalidField("pricePerDay", "pricePerDay must be greater than 0")
	}
	return nil
}

// apply copies the request onto car; optional fields left out keep their current value
func apply(car *model.Car, req model.CarRequest) {
	car.Name = *req.Name
	car.Brand = *req.Brand
	car.Model = *req.Model
	car.Year = *req.Year
	car.Category = *req.Category
	car.PricePerDay = *req.PricePerDay
	if req.PricePerWeek != nil {
		car.PricePerWeek = req.PricePerWeek
	}
	if req.PricePerMonth != nil {
		car.PricePerMonth = req.PricePerMonth
	}
	if req.Images != nil {
		car.Images = req.Images
	}
	if req.Features != nil {
		car.Features = req.Features
	}
	if req.Specifications != nil {
		car.Specifications = req.Specifications
	}
	if req.Available != nil {
		car.Available = *req.Available
	}
	if req.Availability != nil {
		car.Availability = req.Availability
	}
	if req.IsPopular != nil {
		car.IsPopular = *req.IsPopular
	}
	if req.IsFeatured != nil {
		car.IsFeatured = *req.IsFeatured
	}
	if req.Description != nil {
		car.Description = req.Description
	}
}

func (s *carService) Create(ctx context.Context, req model.CarRequest) (*model.Car, error) {
	if err := validateCarRequest(req); err != nil {
		return nil, err
	}
	now := time.Now()
	car := &model.Car{
		ID:             uuid.NewString(),
		Images:         []string{},
		Features:       []string{},
		Specifications: map[string]interface{}{},
		Available:      true,
		Availability:   map[string]interface{}{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	apply(car, req)

	if err := s.repo.Create(ctx, car); err != nil {
		return nil, fmt.Errorf("failed to create car in repo: %w", err)
	}
	return car, nil
}

// Get reads through the cache; cache failures fall back to the database
func (s *carService) Get(ctx context.Context, id string) (*model.Car, error) {
	if car, ok, err := s.cache.Get(ctx, id); err != nil {
		s.log.Warning("car cache read failed", logger.String("car_id", id), logger.Error(err))
	} else if ok {
		metrics.CarCacheLookups.WithLabelValues("hit").Inc()
		return car, nil
	}
	metrics.CarCacheLookups.WithLabelValues("miss").Inc()

	car, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find car by ID: %w", err)
	}
	if car == nil {
		return nil, ErrNotFound
	}
	if err := s.cache.Set(ctx, car); err != nil {
		s.log.Warning("car cache write failed", logger.String("car_id", id), logger.Error(err))
	}
	return car, nil
}

func (s *carService) List(ctx context.Context, filters model.CarFilters, p utils.Pagination) (utils.PageResult[model.Car], error) {
	if filters.MinPrice != nil && filters.MaxPrice != nil && *filters.MinPrice > *filters.MaxPrice {
		return utils.PageResult[model.Car]{}, invalidField("min_price", "min_price must not exceed max_price")
	}
	cars, total, err := s.repo.List(ctx, filters, p)
	if err != nil {
		return utils.PageResult[model.Car]{}, fmt.Errorf("failed to list cars: %w", err)
	}
	return utils.NewPageResult(cars, total, p), nil
}

func (s *carService) Update(ctx context.Context, id string, req model.CarRequest) (*model.Car, error) {
	if err := validateCarRequest(req); err != nil {
		return nil, err
	}
	car, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find car for update: %w", err)
	}
	if car == nil {
		return nil, ErrNotFound
	}
	apply(car, req)

	if err := s.repo.Update(ctx, car); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update car in repo: %w", err)
	}
	s.invalidate(ctx, id)
	return car, nil
}

func (s *carService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete car in repo: %w", err)
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *carService) invalidate(ctx context.Context, id string) {
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.log.Warning("car cache invalidation failed", logger.String("car_id", id), logger.Error(err))
	}
}
