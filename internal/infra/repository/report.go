package repository

import (
	"context"

	"local-deals/internal/domain/report"
	"local-deals/internal/infra"
	"local-deals/internal/infra/db"

	"github.com/google/uuid"
)

type ReportRepository struct{}

func NewReportRepository() *ReportRepository {
	return &ReportRepository{}
}

func (r *ReportRepository) Create(ctx context.Context, tx db.DBTX, rp *report.Report) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO deal_reports (id, deal_id, reporter_id, reason, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $6)`,
		rp.ID(), rp.DealID(), rp.ReporterID(), rp.Reason(), rp.Status().String(), rp.CreatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to create report", err)
	}
	return nil
}

func (r *ReportRepository) UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status report.Status) error {
	tag, err := tx.Exec(ctx, `UPDATE deal_reports SET status = $2, updated_at = now() WHERE id = $1`, id, status.String())
	if err != nil {
		return infra.WrapRepoErr("failed to update report", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("report not found", nil, infra.KindNotFound)
	}
	return nil
}
