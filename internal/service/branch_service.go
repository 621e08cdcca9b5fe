package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"car_rental/internal/model"
	"car_rental/internal/repository"

	"github.com/google/uuid"
)

// BranchService manages rental branches. Admin checks happen at the route.
type BranchService interface {
	Create(ctx context.Context, req model.CreateBranchRequest) (*model.Branch, error)
	Get(ctx context.Context, id string) (*model.Branch, error)
	List(ctx context.Context, activeOnly *bool) ([]model.Branch, error)
	Update(ctx context.Context, id string, req model.UpdateBranchRequest) (*model.Branch, error)
}

type branchService struct {
	repo repository.BranchRepository
}

// NewBranchService creates a new BranchService
func NewBranchService(repo repository.BranchRepository) BranchService {
	return &branchService{repo: repo}
}

func (s *branchService) Create(ctx context.Context, req model.CreateBranchRequest) (*model.Branch, error) {
	switch {
	case strings.TrimSpace(req.Name) == "":
		return nil, missingField("name")
	case strings.TrimSpace(req.Address) == "":
		return nil, missingField("address")
	case strings.TrimSpace(req.City) == "":
		return nil, missingField("city")
	}

	now := time.Now()
	branch := &model.Branch{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Address:   req.Address,
		City:      req.City,
		Phone:     req.Phone,
		Email:     req.Email,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.IsActive != nil {
		branch.IsActive = *req.IsActive
	}
	if err := s.repo.Create(ctx, branch); err != nil {
		return nil, fmt.Errorf("failed to create branch in repo: %w", err)
	}
	return branch, nil
}

func (s *branchService) Get(ctx context.Context, id string) (*model.Branch, error) {
	branch, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find branch by ID: %w", err)
	}
	if branch == nil {
		return nil, ErrNotFound
	}
	return branch, nil
}

func (s *branchService) List(ctx context.Context, activeOnly *bool) ([]model.Branch, error) {
	branches, err := s.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	if branches == nil {
		branches = []model.Branch{}
	}
	return branches, nil
}

func (s *branchService) Update(ctx context.Context, id string, req model.UpdateBranchRequest) (*model.Branch, error) {
	fields := []struct {
		name  string
		value *string
	}{{"name", req.Name}, {"address", req.Address}, {"city", req.City}}
	for _, f := range fields {
		if f.value != nil && strings.TrimSpace(*f.value) == "" {
			return nil, invalidField(f.name, "%s must not be empty", f.name)
		}
	}
	branch, err := s.repo.Update(ctx, id, req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update branch: %w", err)
	}
	return branch, nil
}
