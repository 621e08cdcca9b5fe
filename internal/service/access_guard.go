package service

import (
	"context"
	"fmt"

	"car_rental/internal/model"
	"car_rental/internal/repository"
)

// AccessGuard decides admin rights from the stored profile, never from token claims alone.
type AccessGuard interface {
	RequireAdmin(ctx context.Context, userID string) (*model.Profile, error)
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

type accessGuard struct {
	profiles repository.ProfileRepository
}

// NewAccessGuard creates a new AccessGuard
func NewAccessGuard(profiles repository.ProfileRepository) AccessGuard {
	return &accessGuard{profiles: profiles}
}

// RequireAdmin returns the caller's profile or ErrForbidden when it is missing or not an admin
func (g *accessGuard) RequireAdmin(ctx context.Context, userID string) (*model.Profile, error) {
	profile, err := g.profiles.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load caller profile: %w", err)
	}
	if !profile.IsAdmin() {
		return nil, ErrForbidden
	}
	return profile, nil
}

func (g *accessGuard) IsAdmin(ctx context.Context, userID string) (bool, error) {
	profile, err := g.profiles.FindByID(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to load caller profile: %w", err)
	}
	return profile.IsAdmin(), nil
}
