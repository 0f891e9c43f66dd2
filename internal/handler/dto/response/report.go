package response

import (
	"time"

	"local-deals/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ReportResponse struct {
	ID            uuid.UUID `json:"id"`
	DealID        uuid.UUID `json:"deal_id"`
	DealTitle     string    `json:"deal_title"`
	ReporterID    uuid.UUID `json:"reporter_id"`
	ReporterEmail string    `json:"reporter_email"`
	Reason        string    `json:"reason"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

func FromReportViews(vs []*queries.ReportView) []*ReportResponse {
	return mapAll(vs, func(v *queries.ReportView) *ReportResponse {
		var res ReportResponse
		_ = copier.Copy(&res, v)
		return &res
	})
}

type UploadResponse struct {
	ImageURL string `json:"imageUrl"`
}
