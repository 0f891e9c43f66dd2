package response

import (
	"time"

	"local-deals/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type RatingResponse struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	UserName   string    `json:"user_name"`
	BusinessID uuid.UUID `json:"business_id"`
	Score      int       `json:"score"`
	Comment    *string   `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type RatingListResponse struct {
	Ratings    []*RatingResponse `json:"ratings"`
	NextCursor string            `json:"next_cursor,omitempty"`
}

func FromRatingViews(vs []*queries.RatingView, next *queries.Cursor) *RatingListResponse {
	res := &RatingListResponse{
		Ratings: mapAll(vs, func(v *queries.RatingView) *RatingResponse {
			var r RatingResponse
			_ = copier.Copy(&r, v)
			return &r
		}),
	}
	if next != nil {
		res.NextCursor = next.After
	}
	return res
}

type RatingSummaryResponse struct {
	BusinessID uuid.UUID `json:"business_id"`
	Count      int       `json:"count"`
	Average    float64   `json:"average"`
	Histogram  [5]int    `json:"histogram"`
}

func FromRatingSummary(v *queries.RatingSummaryView) *RatingSummaryResponse {
	var res RatingSummaryResponse
	_ = copier.Copy(&res, v)
	return &res
}

type VerificationResponse struct {
	DealID       uuid.UUID `json:"deal_id"`
	Count        int       `json:"count"`
	VerifiedByMe bool      `json:"verified_by_me"`
}

func FromVerificationSummary(v *queries.VerificationSummary) *VerificationResponse {
	var res VerificationResponse
	_ = copier.Copy(&res, v)
	return &res
}

type CreatedResponse struct {
	ID uuid.UUID `json:"id"`
}
