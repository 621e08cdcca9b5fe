package model

import "time"

const (
	RoleClient = "client"
	RoleAdmin  = "admin"
)

// Profile represents an account in the system
type Profile struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Do not expose password hash in JSON responses
	Role         string    `json:"role"`
	FullName     string    `json:"full_name"`
	Phone        *string   `json:"phone,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsAdmin reports whether the stored role grants admin access.
func (p *Profile) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

type SignupRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=6"`
	FullName string  `json:"full_name" binding:"required"`
	Phone    *string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}
