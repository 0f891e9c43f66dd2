package readstore

import (
	"context"

	"local-deals/internal/infra"
	"local-deals/internal/infra/db"
	"local-deals/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type BusinessReadStore struct {
	db db.DBTX
}

func NewBusinessReadStore(db db.DBTX) *BusinessReadStore {
	return &BusinessReadStore{db: db}
}

const businessSelect = `
SELECT id, user_id, business_name, phone, address, description, verification_status, created_at
FROM businesses`

func scanBusiness(row pgx.Row) (*queries.BusinessView, error) {
	var b queries.BusinessView
	err := row.Scan(&b.ID, &b.UserID, &b.BusinessName, &b.Phone, &b.Address, &b.Description,
		&b.VerificationStatus, &b.CreatedAt)
	return &b, err
}

func (r *BusinessReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BusinessView, error) {
	b, err := scanBusiness(r.db.QueryRow(ctx, businessSelect+` WHERE id = $1`, id))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find business", err)
	}
	return b, nil
}

func (r *BusinessReadStore) FindByUserID(ctx context.Context, userID uuid.UUID) (*queries.BusinessView, error) {
	b, err := scanBusiness(r.db.QueryRow(ctx, businessSelect+` WHERE user_id = $1`, userID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find business by user", err)
	}
	return b, nil
}

func (r *BusinessReadStore) ListByStatus(ctx context.Context, status string) ([]*queries.BusinessView, error) {
	rows, err := r.db.Query(ctx,
		businessSelect+` WHERE ($1::text = '' OR verification_status = $1) ORDER BY created_at DESC, id`, status)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list businesses", err)
	}
	out, err := collect(rows, scanBusiness)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan businesses", err)
	}
	return out, nil
}
