package repository

import (
	"context"
	"errors"
	"fmt"

	"car_rental/internal/model"

	"github.com/jackc/pgx/v5"
)

// ProfileRepository defines operations for profile data
type ProfileRepository interface {
	Create(ctx context.Context, profile *model.Profile) error
	FindByEmail(ctx context.Context, email string) (*model.Profile, error)
	FindByID(ctx context.Context, id string) (*model.Profile, error)
	FindByRole(ctx context.Context, role string) ([]model.Profile, error)
}

type profileRepository struct {
	db DB
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db DB) ProfileRepository {
	return &profileRepository{db: db}
}

const profileColumns = `id, email, password_hash, role, full_name, phone, created_at`

func scanProfile(row pgx.Row, p *model.Profile) error {
	return row.Scan(&p.ID, &p.Email, &p.PasswordHash, &p.Role, &p.FullName, &p.Phone, &p.CreatedAt)
}

// Create inserts a new profile
func (r *profileRepository) Create(ctx context.Context, p *model.Profile) error {
	sql := `INSERT INTO profiles (id, email, password_hash, role, full_name, phone, created_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.Exec(ctx, sql, p.ID, p.Email, p.PasswordHash, p.Role, p.FullName, p.Phone, p.CreatedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("profile %s: %w", p.Email, ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// FindByEmail retrieves a profile by email; nil, nil when absent
func (r *profileRepository) FindByEmail(ctx context.Context, email string) (*model.Profile, error) {
	p := &model.Profile{}
	sql := `SELECT ` + profileColumns + ` FROM profiles WHERE email = $1`
	if err := scanProfile(r.db.QueryRow(ctx, sql, email), p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find profile by email: %w", err)
	}
	return p, nil
}

// FindByID retrieves a profile by id; nil, nil when absent
func (r *profileRepository) FindByID(ctx context.Context, id string) (*model.Profile, error) {
	p := &model.Profile{}
	sql := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	if err := scanProfile(r.db.QueryRow(ctx, sql, id), p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find profile by ID: %w", err)
	}
	return p, nil
}

// FindByRole lists every profile holding role
func (r *profileRepository) FindByRole(ctx context.Context, role string) ([]model.Profile, error) {
	sql := `SELECT ` + profileColumns + ` FROM profiles WHERE role = $1 ORDER BY created_at`
	rows, err := r.db.Query(ctx, sql, role)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles by role: %w", err)
	}
	defer rows.Close()

	var profiles []model.Profile
	for rows.Next() {
		var p model.Profile
		if err := scanProfile(rows, &p); err != nil {
			return nil, fmt.Errorf("failed to scan profile row: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating profile rows: %w", err)
	}
	return profiles, nil
}
