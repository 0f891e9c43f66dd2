package repository

import (
	"context"
	"time"

	"local-deals/internal/domain/claim"
	"local-deals/internal/infra"
	"local-deals/internal/infra/db"
	"local-deals/internal/usecase/shared"

	"github.com/google/uuid"
)

type ClaimRepository struct{}

func NewClaimRepository() *ClaimRepository {
	return &ClaimRepository{}
}

const createClaimSQL = `
INSERT INTO deal_claims (id, user_id, deal_id, code, created_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (code) DO NOTHING`

// Create reports false when the code collided with an existing claim; the
// transaction stays usable so the caller can retry with a new code.
func (r *ClaimRepository) Create(ctx context.Context, tx db.DBTX, c *claim.Claim) (bool, error) {
	tag, err := tx.Exec(ctx, createClaimSQL, c.ID(), c.UserID(), c.DealID(), c.Code().String(), c.CreatedAt())
	if err != nil {
		return false, infra.WrapRepoErr("failed to create claim", err)
	}
	return tag.RowsAffected() == 1, nil
}

const findClaimByCodeSQL = `
SELECT dc.id, dc.user_id, dc.deal_id, dc.code, dc.is_redeemed, dc.redeemed_at, b.id, b.user_id
FROM deal_claims dc
JOIN deals d ON d.id = dc.deal_id
JOIN businesses b ON b.id = d.business_id
WHERE dc.code = $1
FOR UPDATE OF dc`

func (r *ClaimRepository) FindByCodeForUpdate(ctx context.Context, tx db.DBTX, code claim.Code) (*shared.ClaimSnapshot, error) {
	var s shared.ClaimSnapshot
	err := tx.QueryRow(ctx, findClaimByCodeSQL, code.String()).Scan(
		&s.ID, &s.UserID, &s.DealID, &s.Code, &s.IsRedeemed, &s.RedeemedAt, &s.BusinessID, &s.BusinessUserID,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find claim by code", err)
	}
	return &s, nil
}

// MarkRedeemed only flips unredeemed claims; false means it was already redeemed.
func (r *ClaimRepository) MarkRedeemed(ctx context.Context, tx db.DBTX, id uuid.UUID, at time.Time) (bool, error) {
	tag, err := tx.Exec(ctx,
		`UPDATE deal_claims SET is_redeemed = TRUE, redeemed_at = $2 WHERE id = $1 AND NOT is_redeemed`, id, at)
	if err != nil {
		return false, infra.WrapRepoErr("failed to redeem claim", err)
	}
	return tag.RowsAffected() == 1, nil
}
