package repository

import (
	"context"

	"local-deals/internal/infra"
	"local-deals/internal/infra/db"

	"github.com/google/uuid"
)

type VerificationRepository struct{}

func NewVerificationRepository() *VerificationRepository {
	return &VerificationRepository{}
}

func (r *VerificationRepository) Add(ctx context.Context, tx db.DBTX, userID, dealID uuid.UUID) (bool, error) {
	tag, err := tx.Exec(ctx,
		`INSERT INTO deal_verifications (user_id, deal_id) VALUES ($1, $2) ON CONFLICT (user_id, deal_id) DO NOTHING`,
		userID, dealID)
	if err != nil {
		return false, infra.WrapRepoErr("failed to verify deal", err)
	}
	return tag.RowsAffected() == 1, nil
}
