package readstore

import (
	"context"

	"local-deals/internal/infra"
	"local-deals/internal/infra/db"
	"local-deals/internal/pkg/pgconv"
	"local-deals/internal/usecase/queries"

	"github.com/google/uuid"
)

type VerificationReadStore struct {
	db db.DBTX
}

func NewVerificationReadStore(db db.DBTX) *VerificationReadStore {
	return &VerificationReadStore{db: db}
}

func (r *VerificationReadStore) Summary(ctx context.Context, dealID uuid.UUID, viewer *uuid.UUID) (*queries.VerificationSummary, error) {
	s := queries.VerificationSummary{DealID: dealID}
	err := r.db.QueryRow(ctx, `
SELECT count(*), coalesce(bool_or(user_id = $2), false)
FROM deal_verifications
WHERE deal_id = $1`, dealID, pgconv.UUIDPtrToPgtype(viewer)).Scan(&s.Count, &s.VerifiedByMe)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to count verifications", err)
	}
	return &s, nil
}
