package commands

import (
	"context"
	"log/slog"

	"local-deals/internal/domain/auth"
	"local-deals/internal/domain/user"
	"local-deals/internal/pkg/clock"
	"local-deals/internal/pkg/errs"
	"local-deals/internal/usecase/queries"
	"local-deals/internal/usecase/shared"
)

var (
	ErrEmailTaken          = errs.Mark(errs.New("email is already registered"), errs.ErrConflict)
	ErrInvalidCredentials  = errs.Mark(auth.ErrInvalidCredentials, errs.ErrUnauthenticated)
	ErrUserInactive        = errs.Mark(auth.ErrInactiveUser, errs.ErrUnauthenticated)
	ErrInvalidRefreshToken = errs.Mark(errs.New("invalid refresh token"), errs.ErrUnauthenticated)
)

type LoginResult struct {
	TokenPair *TokenPair
	User      *queries.UserView
}

type AuthCommands interface {
	Register(ctx context.Context, reg auth.Registration) (*queries.UserView, error)
	Login(ctx context.Context, creds auth.Credentials) (*LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (*LoginResult, error)
}

type authCommandsImpl struct {
	uow       shared.UnitOfWork
	readStore queries.UserReadStore
	tokens    TokenIssuer
	hasher    PasswordHasher
	clock     clock.Clock
}

func NewAuthCommands(uow shared.UnitOfWork, readStore queries.UserReadStore, tokens TokenIssuer, hasher PasswordHasher, clk clock.Clock) AuthCommands {
	return &authCommandsImpl{
		uow:       uow,
		readStore: readStore,
		tokens:    tokens,
		hasher:    hasher,
		clock:     clk,
	}
}

func (a *authCommandsImpl) Register(ctx context.Context, reg auth.Registration) (*queries.UserView, error) {
	hash, err := a.hasher.Hash(reg.Password().Value())
	if err != nil {
		return nil, err
	}
	u := user.NewUser(reg.Email(), reg.FullName(), hash, reg.Role())

	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return translate(tx.Users().Create(ctx, tx.DB(), u), nil, ErrEmailTaken, nil)
	})
	if err != nil {
		return nil, err
	}

	return &queries.UserView{
		ID:        u.ID(),
		Email:     u.Email().Value(),
		FullName:  u.FullName(),
		Role:      u.Role().String(),
		Points:    u.Points(),
		IsActive:  u.IsActive(),
		CreatedAt: a.clock.Now(),
	}, nil
}

func (a *authCommandsImpl) Login(ctx context.Context, creds auth.Credentials) (*LoginResult, error) {
	view, hash, err := a.readStore.FindByEmail(ctx, creds.Email().Value())
	if err != nil {
		// Same answer as a wrong password so accounts cannot be enumerated.
		return nil, ErrInvalidCredentials
	}
	if err := a.hasher.Compare(hash, creds.Password().Value()); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !view.IsActive {
		return nil, ErrUserInactive
	}

	role, err := user.NewRole(view.Role)
	if err != nil {
		return nil, err
	}
	pair, err := issuePair(a.tokens, view.ID, role)
	if err != nil {
		return nil, err
	}

	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().UpdateLastLogin(ctx, tx.DB(), view.ID, a.clock.Now())
	})
	if err != nil {
		slog.WarnContext(ctx, "failed to update last login", "user_id", view.ID, "error", err.Error())
	}

	return &LoginResult{TokenPair: pair, User: view}, nil
}

// Refresh re-reads the user so a role change since the last token takes effect.
func (a *authCommandsImpl) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	claims, err := a.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidRefreshToken)
	}

	view, err := a.readStore.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, translate(err, ErrInvalidRefreshToken, nil, nil)
	}
	if !view.IsActive {
		return nil, ErrUserInactive
	}

	role, err := user.NewRole(view.Role)
	if err != nil {
		return nil, err
	}
	pair, err := issuePair(a.tokens, view.ID, role)
	if err != nil {
		return nil, err
	}
	return &LoginResult{TokenPair: pair, User: view}, nil
}
