package commands

import (
	"context"
	"log/slog"

	"local-deals/internal/domain/deal"
	"local-deals/internal/domain/user"
	"local-deals/internal/infra"
	"local-deals/internal/pkg/clock"
	"local-deals/internal/pkg/errs"
	"local-deals/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrDealNotFound     = errs.Mark(errs.New("deal not found"), errs.ErrNotFound)
	ErrBusinessRequired = errs.Mark(errs.New("a business profile is required to post deals"), errs.ErrForbidden)
	ErrDealNotOwned     = errs.Mark(errs.New("deal belongs to another business"), errs.ErrForbidden)
	ErrCategoryNotFound = errs.Mark(errs.New("category not found"), errs.ErrDomainValidation)
)

// Actor is the authenticated caller of a mutation.
type Actor struct {
	UserID uuid.UUID
	Role   user.Role
}

type DealCommands interface {
	Create(ctx context.Context, actorID uuid.UUID, p deal.Params) (uuid.UUID, error)
	// Update applies fn to the deal's current fields, so callers only set what changed.
	Update(ctx context.Context, actor Actor, dealID uuid.UUID, fn func(deal.Params) deal.Params) error
	Delete(ctx context.Context, actor Actor, dealID uuid.UUID) error
	RecordView(ctx context.Context, dealID uuid.UUID) error
	ExpireOverdue(ctx context.Context) (int64, error)
}

type dealCommandsImpl struct {
	uow   shared.UnitOfWork
	cache shared.DealCache
	clock clock.Clock
}

func NewDealCommands(uow shared.UnitOfWork, cache shared.DealCache, clk clock.Clock) DealCommands {
	return &dealCommandsImpl{uow: uow, cache: cache, clock: clk}
}

func (c *dealCommandsImpl) Create(ctx context.Context, actorID uuid.UUID, p deal.Params) (uuid.UUID, error) {
	var id uuid.UUID
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		biz, err := tx.Businesses().FindByUserID(ctx, tx.DB(), actorID)
		if err != nil {
			return translate(err, ErrBusinessRequired, nil, nil)
		}

		d, err := deal.NewDeal(biz.ID, p, c.clock.Now())
		if err != nil {
			return invalid(err)
		}
		if err := tx.Deals().Create(ctx, tx.DB(), d); err != nil {
			return translate(err, nil, nil, ErrCategoryNotFound)
		}
		id = d.ID()
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	invalidateDeals(ctx, c.cache)
	return id, nil
}

func (c *dealCommandsImpl) Update(ctx context.Context, actor Actor, dealID uuid.UUID, fn func(deal.Params) deal.Params) error {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		d, err := c.loadOwned(ctx, tx, actor, dealID)
		if err != nil {
			return err
		}
		if err := d.Update(fn(d.Params()), c.clock.Now()); err != nil {
			return invalid(err)
		}
		return translate(tx.Deals().Update(ctx, tx.DB(), d), ErrDealNotFound, nil, ErrCategoryNotFound)
	})
	if err != nil {
		return err
	}

	invalidateDeals(ctx, c.cache)
	return nil
}

func (c *dealCommandsImpl) Delete(ctx context.Context, actor Actor, dealID uuid.UUID) error {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := c.loadOwned(ctx, tx, actor, dealID); err != nil {
			return err
		}
		return translate(tx.Deals().Delete(ctx, tx.DB(), dealID), ErrDealNotFound, nil, nil)
	})
	if err != nil {
		return err
	}

	invalidateDeals(ctx, c.cache)
	return nil
}

// loadOwned locks the deal row and checks the actor's business owns it. Admins bypass ownership.
func (c *dealCommandsImpl) loadOwned(ctx context.Context, tx shared.Tx, actor Actor, dealID uuid.UUID) (*deal.Deal, error) {
	d, err := tx.Deals().FindForUpdate(ctx, tx.DB(), dealID)
	if err != nil {
		return nil, translate(err, ErrDealNotFound, nil, nil)
	}
	if actor.Role.AtLeast(user.RoleAdmin) {
		return d, nil
	}

	biz, err := tx.Businesses().FindByUserID(ctx, tx.DB(), actor.UserID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrDealNotOwned
		}
		return nil, err
	}
	if !d.OwnedBy(biz.ID) {
		return nil, ErrDealNotOwned
	}
	return d, nil
}

// RecordView does not touch the listing cache; view counts may lag in cached listings.
func (c *dealCommandsImpl) RecordView(ctx context.Context, dealID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Deals().IncrementViews(ctx, tx.DB(), dealID)
	})
}

func (c *dealCommandsImpl) ExpireOverdue(ctx context.Context) (int64, error) {
	var n int64
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		n, err = tx.Deals().ExpireOverdue(ctx, tx.DB(), c.clock.Now())
		return err
	})
	if err != nil {
		return 0, err
	}
	if n > 0 {
		slog.InfoContext(ctx, "expired overdue deals", "count", n)
		invalidateDeals(ctx, c.cache)
	}
	return n, nil
}
