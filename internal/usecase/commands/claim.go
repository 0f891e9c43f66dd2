package commands

import (
	"context"
	"time"

	"local-deals/internal/domain/claim"
	"local-deals/internal/domain/user"
	"local-deals/internal/pkg/clock"
	"local-deals/internal/pkg/errs"
	"local-deals/internal/usecase/shared"

	"github.com/google/uuid"
)

const maxCodeAttempts = 5

var (
	ErrSoldOut            = errs.Mark(claim.ErrSoldOut, errs.ErrConflict)
	ErrDealNotClaimable   = errs.Mark(claim.ErrDealNotClaimable, errs.ErrConflict)
	ErrClaimNotFound      = errs.Mark(errs.New("claim not found"), errs.ErrNotFound)
	ErrAlreadyRedeemed    = errs.Mark(claim.ErrAlreadyRedeemed, errs.ErrConflict)
	ErrNotRedeemer        = errs.Mark(errs.New("only the deal's business can redeem this code"), errs.ErrForbidden)
	ErrCodeSpaceExhausted = errs.New("could not allocate a unique claim code")
)

type ClaimResult struct {
	ClaimID   uuid.UUID
	DealID    uuid.UUID
	Code      claim.Code
	CreatedAt time.Time
}

type RedeemResult struct {
	ClaimID    uuid.UUID
	DealID     uuid.UUID
	Code       claim.Code
	RedeemedAt time.Time
}

type ClaimCommands interface {
	Claim(ctx context.Context, userID, dealID uuid.UUID) (*ClaimResult, error)
	Redeem(ctx context.Context, actor Actor, code string) (*RedeemResult, error)
}

type claimCommandsImpl struct {
	uow   shared.UnitOfWork
	cache shared.DealCache
	clock clock.Clock
}

func NewClaimCommands(uow shared.UnitOfWork, cache shared.DealCache, clk clock.Clock) ClaimCommands {
	return &claimCommandsImpl{uow: uow, cache: cache, clock: clk}
}

func (c *claimCommandsImpl) Claim(ctx context.Context, userID, dealID uuid.UUID) (*ClaimResult, error) {
	var cl *claim.Claim
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		ok, err := tx.Deals().ReserveClaimSlot(ctx, tx.DB(), dealID)
		if err != nil {
			return err
		}
		if !ok {
			return c.whyNotClaimable(ctx, tx, dealID)
		}

		cl, err = claim.NewClaim(userID, dealID, c.clock.Now())
		if err != nil {
			return err
		}
		for attempt := 1; ; attempt++ {
			created, err := tx.Claims().Create(ctx, tx.DB(), cl)
			if err != nil {
				return translate(err, nil, nil, ErrUserNotFound)
			}
			if created {
				return nil
			}
			if attempt == maxCodeAttempts {
				return ErrCodeSpaceExhausted
			}
			if err := cl.Regenerate(); err != nil {
				return err
			}
		}
	})
	if err != nil {
		return nil, err
	}

	invalidateDeals(ctx, c.cache)
	return &ClaimResult{ClaimID: cl.ID(), DealID: dealID, Code: cl.Code(), CreatedAt: cl.CreatedAt()}, nil
}

// whyNotClaimable runs after the conditional reserve matched no row.
func (c *claimCommandsImpl) whyNotClaimable(ctx context.Context, tx shared.Tx, dealID uuid.UUID) error {
	d, err := tx.Deals().FindForUpdate(ctx, tx.DB(), dealID)
	if err != nil {
		return translate(err, ErrDealNotFound, nil, nil)
	}
	if d.Scarcity().SoldOut() {
		return ErrSoldOut
	}
	return ErrDealNotClaimable
}

func (c *claimCommandsImpl) Redeem(ctx context.Context, actor Actor, rawCode string) (*RedeemResult, error) {
	// A code that cannot exist matches no claim.
	code, err := claim.ParseCode(rawCode)
	if err != nil {
		return nil, ErrClaimNotFound
	}

	var res *RedeemResult
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Claims().FindByCodeForUpdate(ctx, tx.DB(), code)
		if err != nil {
			return translate(err, ErrClaimNotFound, nil, nil)
		}
		if !actor.Role.AtLeast(user.RoleAdmin) && snap.BusinessUserID != actor.UserID {
			return ErrNotRedeemer
		}

		cl := claim.Restore(snap.ID, snap.UserID, snap.DealID, claim.Code(snap.Code), snap.IsRedeemed, snap.RedeemedAt, time.Time{})
		now := c.clock.Now()
		if err := cl.Redeem(now); err != nil {
			return ErrAlreadyRedeemed
		}
		marked, err := tx.Claims().MarkRedeemed(ctx, tx.DB(), cl.ID(), now)
		if err != nil {
			return err
		}
		if !marked {
			return ErrAlreadyRedeemed
		}
		res = &RedeemResult{ClaimID: cl.ID(), DealID: cl.DealID(), Code: cl.Code(), RedeemedAt: now}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
