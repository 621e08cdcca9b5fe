package service

import (
	"context"
	"testing"

	"car_rental/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessGuard(t *testing.T) {
	guard := NewAccessGuard(newFakeProfiles(
		&model.Profile{ID: "admin1", Role: model.RoleAdmin},
		&model.Profile{ID: "client1", Role: model.RoleClient},
	))
	ctx := context.Background()

	p, err := guard.RequireAdmin(ctx, "admin1")
	require.NoError(t, err)
	assert.Equal(t, "admin1", p.ID)

	_, err = guard.RequireAdmin(ctx, "client1")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = guard.RequireAdmin(ctx, "ghost")
	assert.ErrorIs(t, err, ErrForbidden)

	ok, err := guard.IsAdmin(ctx, "client1")
	require.NoError(t, err)
	assert.False(t, ok)
}
