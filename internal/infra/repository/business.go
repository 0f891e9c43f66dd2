package repository

import (
	"context"

	"local-deals/internal/domain/business"
	"local-deals/internal/infra"
	"local-deals/internal/infra/db"
	"local-deals/internal/usecase/shared"

	"github.com/google/uuid"
)

type BusinessRepository struct{}

func NewBusinessRepository() *BusinessRepository {
	return &BusinessRepository{}
}

const createBusinessSQL = `
INSERT INTO businesses (id, user_id, business_name, phone, address, description, verification_status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)`

func (r *BusinessRepository) Create(ctx context.Context, tx db.DBTX, b *business.Business) error {
	_, err := tx.Exec(ctx, createBusinessSQL,
		b.ID(), b.UserID(), b.Name(), b.Phone(), b.Address(), b.Description(),
		b.VerificationStatus().String(), b.CreatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to create business", err)
	}
	return nil
}

func (r *BusinessRepository) FindByUserID(ctx context.Context, tx db.DBTX, userID uuid.UUID) (*shared.BusinessSnapshot, error) {
	var s shared.BusinessSnapshot
	err := tx.QueryRow(ctx,
		`SELECT id, user_id, business_name, verification_status FROM businesses WHERE user_id = $1`, userID).
		Scan(&s.ID, &s.UserID, &s.Name, &s.VerificationStatus)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find business by user", err)
	}
	return &s, nil
}

func (r *BusinessRepository) UpdateVerificationStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status business.VerificationStatus) error {
	tag, err := tx.Exec(ctx,
		`UPDATE businesses SET verification_status = $2, updated_at = now() WHERE id = $1`, id, status.String())
	if err != nil {
		return infra.WrapRepoErr("failed to update verification status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("business not found", nil, infra.KindNotFound)
	}
	return nil
}
