package commands

import (
	"context"

	"local-deals/internal/domain/rating"
	"local-deals/internal/domain/report"
	"local-deals/internal/infra"
	"local-deals/internal/pkg/clock"
	"local-deals/internal/pkg/errs"
	"local-deals/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrSelfRating     = errs.Mark(rating.ErrSelfRating, errs.ErrForbidden)
	ErrReportNotFound = errs.Mark(errs.New("report not found"), errs.ErrNotFound)
)

type VerificationCommands interface {
	// Verify records that the user saw the deal honoured in store. Repeats are no-ops.
	Verify(ctx context.Context, userID, dealID uuid.UUID) (bool, error)
}

type verificationCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewVerificationCommands(uow shared.UnitOfWork) VerificationCommands {
	return &verificationCommandsImpl{uow: uow}
}

func (c *verificationCommandsImpl) Verify(ctx context.Context, userID, dealID uuid.UUID) (bool, error) {
	var added bool
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		added, err = tx.Verifications().Add(ctx, tx.DB(), userID, dealID)
		return translate(err, nil, nil, ErrDealNotFound)
	})
	return added, err
}

type RatingCommands interface {
	Submit(ctx context.Context, userID, businessID uuid.UUID, score int, comment string) (uuid.UUID, error)
}

type ratingCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewRatingCommands(uow shared.UnitOfWork, clk clock.Clock) RatingCommands {
	return &ratingCommandsImpl{uow: uow, clock: clk}
}

func (c *ratingCommandsImpl) Submit(ctx context.Context, userID, businessID uuid.UUID, score int, comment string) (uuid.UUID, error) {
	r, err := rating.NewRating(userID, businessID, score, comment, c.clock.Now())
	if err != nil {
		return uuid.Nil, invalid(err)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		own, err := tx.Businesses().FindByUserID(ctx, tx.DB(), userID)
		switch {
		case err == nil && own.ID == businessID:
			return ErrSelfRating
		case err != nil && !infra.IsKind(err, infra.KindNotFound):
			return err
		}
		return translate(tx.Ratings().Create(ctx, tx.DB(), r), nil, nil, ErrBusinessNotFound)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return r.ID(), nil
}

type ReportCommands interface {
	Create(ctx context.Context, reporterID, dealID uuid.UUID, reason string) (uuid.UUID, error)
	UpdateStatus(ctx context.Context, reportID uuid.UUID, status string) error
}

type reportCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewReportCommands(uow shared.UnitOfWork, clk clock.Clock) ReportCommands {
	return &reportCommandsImpl{uow: uow, clock: clk}
}

func (c *reportCommandsImpl) Create(ctx context.Context, reporterID, dealID uuid.UUID, reason string) (uuid.UUID, error) {
	rp, err := report.NewReport(dealID, reporterID, reason, c.clock.Now())
	if err != nil {
		return uuid.Nil, invalid(err)
	}
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return translate(tx.Reports().Create(ctx, tx.DB(), rp), nil, nil, ErrDealNotFound)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return rp.ID(), nil
}

func (c *reportCommandsImpl) UpdateStatus(ctx context.Context, reportID uuid.UUID, status string) error {
	st, err := report.NewStatus(status)
	if err != nil {
		return invalid(err)
	}
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return translate(tx.Reports().UpdateStatus(ctx, tx.DB(), reportID, st), ErrReportNotFound, nil, nil)
	})
}
