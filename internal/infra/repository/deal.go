package repository

import (
	"context"
	"time"

	"local-deals/internal/domain/deal"
	"local-deals/internal/infra"
	"local-deals/internal/infra/db"
	"local-deals/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type DealRepository struct{}

func NewDealRepository() *DealRepository {
	return &DealRepository{}
}

const dealColumns = `id, business_id, category_id, title, description, discount_type, discount_value,
	image_url, terms_conditions, start_date, end_date, is_perpetual, status, total_quantity,
	claimed_count, created_at, updated_at`

const createDealSQL = `
INSERT INTO deals (id, business_id, category_id, title, description, discount_type, discount_value,
	discount_amount, image_url, terms_conditions, start_date, end_date, is_perpetual, status,
	total_quantity, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $16)`

func (r *DealRepository) Create(ctx context.Context, tx db.DBTX, d *deal.Deal) error {
	_, err := tx.Exec(ctx, createDealSQL,
		d.ID(), d.BusinessID(), pgconv.UUIDPtrToPgtype(d.CategoryID()), d.Title(), d.Description(),
		d.Discount().Kind().String(), d.Discount().Display(), d.Discount().NumericValue(),
		pgconv.StringPtrToPgtype(d.ImageURL()), pgconv.StringPtrToPgtype(d.TermsConditions()),
		d.StartDate(), d.EndDate(), d.IsPerpetual(), d.Status().String(),
		pgconv.IntPtrToInt4(d.TotalQuantity()), d.CreatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to create deal", err)
	}
	return nil
}

func (r *DealRepository) FindForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*deal.Deal, error) {
	var (
		s          deal.State
		categoryID pgtype.UUID
		imageURL   pgtype.Text
		terms      pgtype.Text
		total      pgtype.Int4
	)
	err := tx.QueryRow(ctx, `SELECT `+dealColumns+` FROM deals WHERE id = $1 FOR UPDATE`, id).Scan(
		&s.ID, &s.BusinessID, &categoryID, &s.Title, &s.Description, &s.DiscountType, &s.DiscountValue,
		&imageURL, &terms, &s.StartDate, &s.EndDate, &s.IsPerpetual, &s.Status, &total,
		&s.ClaimedCount, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load deal", err)
	}
	s.CategoryID = pgconv.UUIDPtrFromPgtype(categoryID)
	s.ImageURL = pgconv.StringPtrFromPgtype(imageURL)
	s.TermsConditions = pgconv.StringPtrFromPgtype(terms)
	s.TotalQuantity = pgconv.IntPtrFromInt4(total)
	return deal.Restore(s), nil
}

const updateDealSQL = `
UPDATE deals SET category_id = $2, title = $3, description = $4, discount_type = $5,
	discount_value = $6, discount_amount = $7, image_url = $8, terms_conditions = $9,
	start_date = $10, end_date = $11, is_perpetual = $12, status = $13, total_quantity = $14,
	updated_at = $15
WHERE id = $1`

func (r *DealRepository) Update(ctx context.Context, tx db.DBTX, d *deal.Deal) error {
	tag, err := tx.Exec(ctx, updateDealSQL,
		d.ID(), pgconv.UUIDPtrToPgtype(d.CategoryID()), d.Title(), d.Description(),
		d.Discount().Kind().String(), d.Discount().Display(), d.Discount().NumericValue(),
		pgconv.StringPtrToPgtype(d.ImageURL()), pgconv.StringPtrToPgtype(d.TermsConditions()),
		d.StartDate(), d.EndDate(), d.IsPerpetual(), d.Status().String(),
		pgconv.IntPtrToInt4(d.TotalQuantity()), d.UpdatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to update deal", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("deal not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *DealRepository) Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	tag, err := tx.Exec(ctx, `DELETE FROM deals WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete deal", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("deal not found", nil, infra.KindNotFound)
	}
	return nil
}

// The cap check and the increment are one statement, so concurrent claims
// serialize on the row lock and the count never passes total_quantity.
const reserveClaimSlotSQL = `
UPDATE deals SET claimed_count = claimed_count + 1, updated_at = now()
WHERE id = $1
  AND status = 'active'
  AND (is_perpetual OR end_date >= now())
  AND (total_quantity IS NULL OR claimed_count < total_quantity)`

func (r *DealRepository) ReserveClaimSlot(ctx context.Context, tx db.DBTX, id uuid.UUID) (bool, error) {
	tag, err := tx.Exec(ctx, reserveClaimSlotSQL, id)
	if err != nil {
		return false, infra.WrapRepoErr("failed to reserve claim slot", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *DealRepository) IncrementViews(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	_, err := tx.Exec(ctx, `UPDATE deals SET view_count = view_count + 1 WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to record deal view", err)
	}
	return nil
}

func (r *DealRepository) ExpireOverdue(ctx context.Context, tx db.DBTX, now time.Time) (int64, error) {
	tag, err := tx.Exec(ctx, `
UPDATE deals SET status = 'expired', updated_at = $1
WHERE status = 'active' AND NOT is_perpetual AND end_date < $1`, now)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to expire overdue deals", err)
	}
	return tag.RowsAffected(), nil
}
