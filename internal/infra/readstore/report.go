package readstore

import (
	"context"

	"local-deals/internal/infra"
	"local-deals/internal/infra/db"
	"local-deals/internal/usecase/queries"

	"github.com/jackc/pgx/v5"
)

type ReportReadStore struct {
	db db.DBTX
}

func NewReportReadStore(db db.DBTX) *ReportReadStore {
	return &ReportReadStore{db: db}
}

func (r *ReportReadStore) List(ctx context.Context, status string) ([]*queries.ReportView, error) {
	rows, err := r.db.Query(ctx, `
SELECT rp.id, rp.deal_id, d.title, rp.reporter_id, u.email, rp.reason, rp.status, rp.created_at
FROM deal_reports rp
JOIN deals d ON d.id = rp.deal_id
JOIN users u ON u.id = rp.reporter_id
WHERE ($1::text = '' OR rp.status = $1)
ORDER BY rp.created_at DESC, rp.id`, status)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reports", err)
	}
	out, err := collect(rows, func(row pgx.Row) (*queries.ReportView, error) {
		var v queries.ReportView
		err := row.Scan(&v.ID, &v.DealID, &v.DealTitle, &v.ReporterID, &v.ReporterEmail, &v.Reason, &v.Status, &v.CreatedAt)
		return &v, err
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan reports", err)
	}
	return out, nil
}
