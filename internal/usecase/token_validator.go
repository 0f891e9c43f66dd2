package usecase

import (
	"local-deals/internal/domain/user"
	"local-deals/internal/pkg/errs"
	"local-deals/internal/pkg/jwt"

	"github.com/google/uuid"
)

var ErrInvalidAccessToken = errs.Mark(errs.New("invalid or expired access token"), errs.ErrUnauthenticated)

// Principal is the identity carried by a valid access token.
type Principal struct {
	UserID uuid.UUID
	Role   user.Role
}

type TokenValidator interface {
	ValidateAccessToken(tokenString string) (Principal, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{jwtService: jwtService}
}

// Refresh tokens are rejected here; they are only accepted by the refresh endpoint.
func (t *tokenValidatorImpl) ValidateAccessToken(tokenString string) (Principal, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return Principal{}, errs.Mark(err, ErrInvalidAccessToken)
	}
	role, err := user.NewRole(claims.Role)
	if err != nil {
		return Principal{}, errs.Mark(err, ErrInvalidAccessToken)
	}
	return Principal{UserID: claims.UserID, Role: role}, nil
}
