package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"car_rental/internal/logger"
	"car_rental/internal/model"
	"car_rental/internal/repository"
	"car_rental/internal/utils"

	"github.com/google/uuid"
)

// AuthService provides authentication related services
type AuthService interface {
	Signup(ctx context.Context, req model.SignupRequest) (*model.Profile, string, error)
	Login(ctx context.Context, email, password string) (*model.Profile, string, error)
	Me(ctx context.Context, userID string) (*model.Profile, error)
}

type authService struct {
	profiles repository.ProfileRepository
	jwtUtil  *utils.JWTUtil
	log      logger.ILogger
}

// NewAuthService creates a new AuthService
func NewAuthService(profiles repository.ProfileRepository, jwtUtil *utils.JWTUtil, log logger.ILogger) AuthService {
	return &authService{
		profiles: profiles,
		jwtUtil:  jwtUtil,
		log:      log,
	}
}

// Signup creates a client account. The role is never taken from the request.
func (s *authService) Signup(ctx context.Context, req model.SignupRequest) (*model.Profile, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	existing, err := s.profiles.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check existing profile: %w", err)
	}
	if existing != nil {
		return nil, "", ErrConflict
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	profile := &model.Profile{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         model.RoleClient,
		FullName:     req.FullName,
		Phone:        req.Phone,
		CreatedAt:    time.Now(),
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		// a concurrent signup won the unique email constraint
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, "", ErrConflict
		}
		return nil, "", fmt.Errorf("failed to create profile in repository: %w", err)
	}

	token, err := s.sign(profile)
	if err != nil {
		s.log.Error("profile created but token signing failed",
			logger.String("user_id", profile.ID), logger.Error(err))
		return profile, "", err
	}
	return profile, token, nil
}

// Login authenticates by email and password and returns a fresh token
func (s *authService) Login(ctx context.Context, email, password string) (*model.Profile, string, error) {
	profile, err := s.profiles.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, "", fmt.Errorf("error finding profile by email: %w", err)
	}
	if profile == nil {
		return nil, "", ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(password, profile.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.sign(profile)
	if err != nil {
		return nil, "", err
	}
	return profile, token, nil
}

func (s *authService) Me(ctx context.Context, userID string) (*model.Profile, error) {
	profile, err := s.profiles.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if profile == nil {
		return nil, ErrNotFound
	}
	return profile, nil
}

func (s *authService) sign(p *model.Profile) (string, error) {
	token, err := s.jwtUtil.Sign(utils.Claim{UserID: p.ID, Email: p.Email, Role: p.Role})
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}
