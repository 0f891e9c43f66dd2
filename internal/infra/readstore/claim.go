package readstore

import (
	"context"

	"local-deals/internal/infra"
	"local-deals/internal/infra/db"
	"local-deals/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ClaimReadStore struct {
	db db.DBTX
}

func NewClaimReadStore(db db.DBTX) *ClaimReadStore {
	return &ClaimReadStore{db: db}
}

const claimSelect = `
SELECT dc.id, dc.user_id, dc.deal_id, dc.code, dc.is_redeemed, dc.redeemed_at, dc.created_at,
       d.title, d.discount_value, d.business_name, d.end_date, d.is_perpetual
FROM deal_claims dc
JOIN deals_with_details d ON d.id = dc.deal_id`

func scanClaim(row pgx.Row) (*queries.ClaimView, error) {
	var c queries.ClaimView
	err := row.Scan(&c.ID, &c.UserID, &c.DealID, &c.Code, &c.IsRedeemed, &c.RedeemedAt, &c.CreatedAt,
		&c.DealTitle, &c.DiscountValue, &c.BusinessName, &c.EndDate, &c.IsPerpetual)
	return &c, err
}

func (r *ClaimReadStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*queries.ClaimView, error) {
	rows, err := r.db.Query(ctx, claimSelect+` WHERE dc.user_id = $1 ORDER BY dc.created_at DESC, dc.id`, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list claims", err)
	}
	out, err := collect(rows, scanClaim)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan claims", err)
	}
	return out, nil
}

func (r *ClaimReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ClaimView, error) {
	c, err := scanClaim(r.db.QueryRow(ctx, claimSelect+` WHERE dc.id = $1`, id))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find claim", err)
	}
	return c, nil
}
