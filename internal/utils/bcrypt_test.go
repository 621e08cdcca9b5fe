package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_UsesDefaultCost(t *testing.T) {
	hash, err := HashPassword("rental-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "rental-pass", hash)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestHashPassword_Salted(t *testing.T) {
	first, err := HashPassword("rental-pass")
	require.NoError(t, err)
	second, err := HashPassword("rental-pass")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestCheckPasswordHash(t *testing.T) {
	tests := []struct {
		name     string
		password string
		hash     func(t *testing.T) string
		want     bool
	}{
		{"match", "rental-pass", hashOf("rental-pass"), true},
		{"wrong password", "other-pass", hashOf("rental-pass"), false},
		{"empty password against real hash", "", hashOf("rental-pass"), false},
		{"empty password hashed", "", hashOf(""), true},
		{"not a bcrypt hash", "rental-pass", func(*testing.T) string { return "plaintext" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CheckPasswordHash(tt.password, tt.hash(t)))
		})
	}
}

func hashOf(password string) func(t *testing.T) string {
	return func(t *testing.T) string {
		h, err := HashPassword(password)
		require.NoError(t, err)
		return h
	}
}
