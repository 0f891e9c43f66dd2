//go:build unit

package jwt

import (
	"testing"
	"time"

	"local-deals/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_AccessAndRefresh(t *testing.T) {
	svc := NewService("secret", time.Minute, time.Hour)
	id := uuid.New()

	access, err := svc.GenerateAccessToken(id, user.RoleCustomer)
	require.NoError(t, err)
	refresh, err := svc.GenerateRefreshToken(id, user.RoleCustomer)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, id, claims.UserID)
	assert.Equal(t, "customer", claims.Role)

	_, err = svc.ValidateToken(refresh)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	claims, err = svc.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, claims.TokenType)
}

func TestService_Expired(t *testing.T) {
	svc := NewService("secret", time.Minute, time.Hour)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	token, err := svc.GenerateAccessToken(uuid.New(), user.RoleAdmin)
	require.NoError(t, err)

	svc.now = func() time.Time { return base.Add(2 * time.Minute) }
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestService_WrongSecret(t *testing.T) {
	token, err := NewService("a", time.Minute, time.Hour).GenerateAccessToken(uuid.New(), user.RoleBusiness)
	require.NoError(t, err)

	_, err = NewService("b", time.Minute, time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
