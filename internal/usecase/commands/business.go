package commands

import (
	"context"

	"local-deals/internal/domain/business"
	"local-deals/internal/domain/user"
	"local-deals/internal/pkg/clock"
	"local-deals/internal/pkg/errs"
	"local-deals/internal/usecase/queries"
	"local-deals/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound     = errs.Mark(errs.New("user not found"), errs.ErrNotFound)
	ErrBusinessExists   = errs.Mark(business.ErrBusinessAlreadyExists, errs.ErrConflict)
	ErrBusinessNotFound = errs.Mark(errs.New("business not found"), errs.ErrNotFound)
)

// BusinessRegistration carries a new token pair when the owner was promoted
// from customer, since their old token still names the old role.
type BusinessRegistration struct {
	BusinessID uuid.UUID
	Promoted   bool
	TokenPair  *TokenPair
	User       *queries.UserView
}

type BusinessCommands interface {
	Register(ctx context.Context, userID uuid.UUID, p business.Profile) (*BusinessRegistration, error)
	SetVerificationStatus(ctx context.Context, businessID uuid.UUID, status string) error
}

type businessCommandsImpl struct {
	uow    shared.UnitOfWork
	tokens TokenIssuer
	clock  clock.Clock
}

func NewBusinessCommands(uow shared.UnitOfWork, tokens TokenIssuer, clk clock.Clock) BusinessCommands {
	return &businessCommandsImpl{uow: uow, tokens: tokens, clock: clk}
}

func (c *businessCommandsImpl) Register(ctx context.Context, userID uuid.UUID, p business.Profile) (*BusinessRegistration, error) {
	b, err := business.NewBusiness(userID, p, c.clock.Now())
	if err != nil {
		return nil, invalid(err)
	}

	var (
		owner    *shared.UserSnapshot
		role     user.Role
		promoted bool
	)
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Users().FindByID(ctx, tx.DB(), userID)
		if err != nil {
			return translate(err, ErrUserNotFound, nil, nil)
		}
		current, err := user.NewRole(snap.Role)
		if err != nil {
			return err
		}

		if err := tx.Businesses().Create(ctx, tx.DB(), b); err != nil {
			return translate(err, nil, ErrBusinessExists, ErrUserNotFound)
		}

		role = current
		if !current.AtLeast(user.RoleBusiness) {
			role = user.RoleBusiness
			promoted = true
			if err := tx.Users().UpdateRole(ctx, tx.DB(), userID, role); err != nil {
				return err
			}
		}
		owner = snap
		return nil
	})
	if err != nil {
		return nil, err
	}

	res := &BusinessRegistration{BusinessID: b.ID(), Promoted: promoted}
	if promoted {
		pair, err := issuePair(c.tokens, userID, role)
		if err != nil {
			return nil, err
		}
		res.TokenPair = pair
		res.User = &queries.UserView{
			ID:       owner.ID,
			Email:    owner.Email,
			FullName: owner.FullName,
			Role:     role.String(),
			Points:   owner.Points,
			IsActive: owner.IsActive,
		}
	}
	return res, nil
}

func (c *businessCommandsImpl) SetVerificationStatus(ctx context.Context, businessID uuid.UUID, status string) error {
	s, err := business.NewVerificationStatus(status)
	if err != nil {
		return invalid(err)
	}
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		err := tx.Businesses().UpdateVerificationStatus(ctx, tx.DB(), businessID, s)
		return translate(err, ErrBusinessNotFound, nil, nil)
	})
}
