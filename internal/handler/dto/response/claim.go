package response

import (
	"time"

	"local-deals/internal/domain/deal"
	"local-deals/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ClaimResponse struct {
	ID            uuid.UUID  `json:"id"`
	DealID        uuid.UUID  `json:"deal_id"`
	Code          string     `json:"code"`
	IsRedeemed    bool       `json:"is_redeemed"`
	RedeemedAt    *time.Time `json:"redeemed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	DealTitle     string     `json:"deal_title"`
	DiscountValue string     `json:"discount_value"`
	BusinessName  string     `json:"business_name"`
	EndDate       time.Time  `json:"end_date"`
	IsPerpetual   bool       `json:"is_perpetual"`
	ExpiryText    string     `json:"expiry_text"`
}

func FromClaimView(v *queries.ClaimView, now time.Time) *ClaimResponse {
	var res ClaimResponse
	_ = copier.Copy(&res, v)
	res.ExpiryText = deal.ExpiryText(v.EndDate, v.IsPerpetual, now)
	return &res
}

func FromClaimViews(vs []*queries.ClaimView, now time.Time) []*ClaimResponse {
	out := make([]*ClaimResponse, len(vs))
	for i, v := range vs {
		out[i] = FromClaimView(v, now)
	}
	return out
}

type RedeemResponse struct {
	ClaimID    uuid.UUID `json:"claim_id"`
	DealID     uuid.UUID `json:"deal_id"`
	Code       string    `json:"code"`
	RedeemedAt time.Time `json:"redeemed_at"`
}
