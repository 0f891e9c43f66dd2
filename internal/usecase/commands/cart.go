package commands

import (
	"context"

	"local-deals/internal/domain/cart"
	"local-deals/internal/pkg/errs"
	"local-deals/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrCartItemNotFound = errs.Mark(errs.New("cart item not found"), errs.ErrNotFound)

type CartCommands interface {
	// Add puts a deal in the cart; adding it again keeps a single line.
	Add(ctx context.Context, userID, dealID uuid.UUID) (uuid.UUID, error)
	UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) error
	Remove(ctx context.Context, userID, itemID uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID) (int64, error)
}

type cartCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewCartCommands(uow shared.UnitOfWork) CartCommands {
	return &cartCommandsImpl{uow: uow}
}

func (c *cartCommandsImpl) Add(ctx context.Context, userID, dealID uuid.UUID) (uuid.UUID, error) {
	var id uuid.UUID
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		id, err = tx.Cart().Upsert(ctx, tx.DB(), cart.NewItem(userID, dealID))
		return translate(err, nil, nil, ErrDealNotFound)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (c *cartCommandsImpl) UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) error {
	qty, err := cart.NewQuantity(quantity)
	if err != nil {
		return invalid(err)
	}
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		err := tx.Cart().UpdateQuantity(ctx, tx.DB(), userID, itemID, qty)
		return translate(err, ErrCartItemNotFound, nil, nil)
	})
}

func (c *cartCommandsImpl) Remove(ctx context.Context, userID, itemID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return translate(tx.Cart().Delete(ctx, tx.DB(), userID, itemID), ErrCartItemNotFound, nil, nil)
	})
}

func (c *cartCommandsImpl) Clear(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		n, err = tx.Cart().Clear(ctx, tx.DB(), userID)
		return err
	})
	return n, err
}

type WishlistCommands interface {
	Add(ctx context.Context, userID, dealID uuid.UUID) error
	Remove(ctx context.Context, userID, dealID uuid.UUID) error
}

type wishlistCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewWishlistCommands(uow shared.UnitOfWork) WishlistCommands {
	return &wishlistCommandsImpl{uow: uow}
}

func (c *wishlistCommandsImpl) Add(ctx context.Context, userID, dealID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return translate(tx.Wishlist().Add(ctx, tx.DB(), userID, dealID), nil, nil, ErrDealNotFound)
	})
}

func (c *wishlistCommandsImpl) Remove(ctx context.Context, userID, dealID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Wishlist().Remove(ctx, tx.DB(), userID, dealID)
	})
}
