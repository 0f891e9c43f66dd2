package commands

import (
	"context"
	"log/slog"

	"local-deals/internal/domain/user"
	"local-deals/internal/infra"
	"local-deals/internal/pkg/errs"
	"local-deals/internal/pkg/jwt"
	"local-deals/internal/usecase/shared"

	"github.com/google/uuid"
)

// TokenIssuer is satisfied by *jwt.Service.
type TokenIssuer interface {
	GenerateAccessToken(userID uuid.UUID, role user.Role) (string, error)
	GenerateRefreshToken(userID uuid.UUID, role user.Role) (string, error)
	ValidateRefreshToken(tokenString string) (*jwt.Claims, error)
}

// PasswordHasher is satisfied by *password.Hasher.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hashed, plain string) error
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

var ErrTokenGeneration = errs.New("token generation failed")

func issuePair(tokens TokenIssuer, userID uuid.UUID, role user.Role) (*TokenPair, error) {
	access, err := tokens.GenerateAccessToken(userID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}
	refresh, err := tokens.GenerateRefreshToken(userID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func invalid(err error) error {
	return errs.Mark(err, errs.ErrDomainValidation)
}

// translate replaces repository kinds the caller cares about with use case sentinels.
func translate(err error, notFound, duplicate, foreignKey error) error {
	switch {
	case err == nil:
		return nil
	case notFound != nil && infra.IsKind(err, infra.KindNotFound):
		return notFound
	case duplicate != nil && infra.IsKind(err, infra.KindDuplicateKey):
		return duplicate
	case foreignKey != nil && infra.IsKind(err, infra.KindForeignKeyViolated):
		return foreignKey
	}
	return err
}

// Listing staleness is bounded by the cache TTL, so a failed bump is logged only.
func invalidateDeals(ctx context.Context, cache shared.DealCache) {
	if err := cache.Invalidate(ctx); err != nil {
		slog.WarnContext(ctx, "failed to invalidate deal list cache", "error", err.Error())
	}
}
