package queries

import (
	"context"
)

type ReportReadStore interface {
	List(ctx context.Context, status string) ([]*ReportView, error)
}

type ReportQueries interface {
	List(ctx context.Context, status string) ([]*ReportView, error)
}

type reportQueriesImpl struct {
	store ReportReadStore
}

func NewReportQueries(store ReportReadStore) ReportQueries {
	return &reportQueriesImpl{store: store}
}

func (q *reportQueriesImpl) List(ctx context.Context, status string) ([]*ReportView, error) {
	reports, err := q.store.List(ctx, status)
	if err != nil {
		return nil, err
	}
	if reports == nil {
		reports = []*ReportView{}
	}
	return reports, nil
}
