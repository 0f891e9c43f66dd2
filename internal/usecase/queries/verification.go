package queries

import (
	"context"

	"github.com/google/uuid"
)

type VerificationReadStore interface {
	// Summary counts attestations; viewer may be nil for anonymous callers.
	Summary(ctx context.Context, dealID uuid.UUID, viewer *uuid.UUID) (*VerificationSummary, error)
}

type VerificationQueries interface {
	Summary(ctx context.Context, dealID uuid.UUID, viewer *uuid.UUID) (*VerificationSummary, error)
}

type verificationQueriesImpl struct {
	store VerificationReadStore
}

func NewVerificationQueries(store VerificationReadStore) VerificationQueries {
	return &verificationQueriesImpl{store: store}
}

func (q *verificationQueriesImpl) Summary(ctx context.Context, dealID uuid.UUID, viewer *uuid.UUID) (*VerificationSummary, error) {
	return q.store.Summary(ctx, dealID, viewer)
}
