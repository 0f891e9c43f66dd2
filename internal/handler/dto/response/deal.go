package response

import (
	"time"

	"local-deals/internal/domain/deal"
	"local-deals/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type DealResponse struct {
	ID              uuid.UUID  `json:"id"`
	BusinessID      uuid.UUID  `json:"business_id"`
	BusinessName    string     `json:"business_name"`
	CategoryID      *uuid.UUID `json:"category_id,omitempty"`
	CategoryName    *string    `json:"category_name,omitempty"`
	CategorySlug    *string    `json:"category_slug,omitempty"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	DiscountType    string     `json:"discount_type"`
	DiscountValue   string     `json:"discount_value"`
	DiscountAmount  float64    `json:"discount_amount"`
	ImageURL        *string    `json:"image_url,omitempty"`
	TermsConditions *string    `json:"terms_conditions,omitempty"`
	StartDate       time.Time  `json:"start_date"`
	EndDate         time.Time  `json:"end_date"`
	IsPerpetual     bool       `json:"is_perpetual"`
	Status          string     `json:"status"`
	ViewCount       int        `json:"view_count"`
	TotalQuantity   *int       `json:"total_quantity,omitempty"`
	ClaimedCount    int        `json:"claimed_count"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	ExpiryText string `json:"expiry_text"`
	// Remaining is omitted for deals without a quantity cap.
	Remaining *int `json:"remaining,omitempty"`
	SoldOut   bool `json:"sold_out"`
}

func FromDealView(v *queries.DealView, now time.Time) *DealResponse {
	var res DealResponse
	_ = copier.Copy(&res, v)
	res.ExpiryText = deal.ExpiryText(v.EndDate, v.IsPerpetual, now)
	s := deal.Scarcity{Total: v.TotalQuantity, Claimed: v.ClaimedCount}
	if s.Limited() {
		remaining := s.Remaining()
		res.Remaining = &remaining
	}
	res.SoldOut = s.SoldOut()
	return &res
}

func FromDealViews(vs []*queries.DealView, now time.Time) []*DealResponse {
	out := make([]*DealResponse, len(vs))
	for i, v := range vs {
		out[i] = FromDealView(v, now)
	}
	return out
}

type CategoryResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Icon         *string   `json:"icon,omitempty"`
	DisplayOrder int       `json:"display_order"`
}

func FromCategoryViews(vs []*queries.CategoryView) []*CategoryResponse {
	return mapAll(vs, func(v *queries.CategoryView) *CategoryResponse {
		var res CategoryResponse
		_ = copier.Copy(&res, v)
		return &res
	})
}
