//go:build unit

package usecase_test

import (
	"testing"
	"time"

	"local-deals/internal/domain/user"
	"local-deals/internal/pkg/errs"
	"local-deals/internal/pkg/jwt"
	"local-deals/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenValidator(t *testing.T) {
	svc := jwt.NewService("test-secret-key-for-local-deals", time.Minute, time.Hour)
	v := usecase.NewTokenValidator(svc)
	id := uuid.New()

	access, err := svc.GenerateAccessToken(id, user.RoleBusiness)
	require.NoError(t, err)
	p, err := v.ValidateAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, usecase.Principal{UserID: id, Role: user.RoleBusiness}, p)

	refresh, err := svc.GenerateRefreshToken(id, user.RoleBusiness)
	require.NoError(t, err)
	_, err = v.ValidateAccessToken(refresh)
	assert.True(t, errs.Is(err, errs.ErrUnauthenticated))

	_, err = v.ValidateAccessToken("garbage")
	assert.ErrorIs(t, err, usecase.ErrInvalidAccessToken)
}
