package request

import (
	"time"

	"local-deals/internal/domain/deal"
	"local-deals/internal/pkg/patch"

	"github.com/google/uuid"
)

type CreateDealRequest struct {
	CategoryID      *uuid.UUID `json:"category_id"`
	Title           string     `json:"title" binding:"required,max=200"`
	Description     string     `json:"description" binding:"required"`
	DiscountType    string     `json:"discount_type" binding:"omitempty,oneof=percentage fixed bogo other"`
	DiscountValue   string     `json:"discount_value" binding:"required,max=50"`
	ImageURL        *string    `json:"image_url"`
	TermsConditions *string    `json:"terms_conditions"`
	StartDate       time.Time  `json:"start_date" binding:"required"`
	EndDate         *time.Time `json:"end_date"`
	IsPerpetual     bool       `json:"is_perpetual"`
	Status          string     `json:"status" binding:"omitempty,oneof=active draft"`
	TotalQuantity   *int       `json:"total_quantity" binding:"omitempty,min=1"`
}

func (r *CreateDealRequest) ToParams() deal.Params {
	return deal.Params{
		CategoryID:      r.CategoryID,
		Title:           r.Title,
		Description:     r.Description,
		DiscountType:    r.DiscountType,
		DiscountValue:   r.DiscountValue,
		ImageURL:        r.ImageURL,
		TermsConditions: r.TermsConditions,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IsPerpetual:     r.IsPerpetual,
		Status:          r.Status,
		TotalQuantity:   r.TotalQuantity,
	}
}

// UpdateDealRequest is a partial update; absent fields keep their stored value.
type UpdateDealRequest struct {
	CategoryID      *uuid.UUID `json:"category_id"`
	Title           *string    `json:"title" binding:"omitempty,max=200"`
	Description     *string    `json:"description"`
	DiscountType    *string    `json:"discount_type" binding:"omitempty,oneof=percentage fixed bogo other"`
	DiscountValue   *string    `json:"discount_value" binding:"omitempty,max=50"`
	ImageURL        *string    `json:"image_url"`
	TermsConditions *string    `json:"terms_conditions"`
	StartDate       *time.Time `json:"start_date"`
	EndDate         *time.Time `json:"end_date"`
	IsPerpetual     *bool      `json:"is_perpetual"`
	Status          *string    `json:"status" binding:"omitempty,oneof=draft active paused expired"`
	TotalQuantity   *int       `json:"total_quantity" binding:"omitempty,min=1"`
}

func (r *UpdateDealRequest) Apply(current deal.Params) deal.Params {
	p := current
	if r.CategoryID != nil {
		p.CategoryID = r.CategoryID
	}
	p.Title = patch.Coalesce(r.Title, p.Title)
	p.Description = patch.Coalesce(r.Description, p.Description)
	p.DiscountType = patch.TrimmedOr(r.DiscountType, p.DiscountType)
	p.DiscountValue = patch.Coalesce(r.DiscountValue, p.DiscountValue)
	if r.ImageURL != nil {
		p.ImageURL = r.ImageURL
	}
	if r.TermsConditions != nil {
		p.TermsConditions = r.TermsConditions
	}
	p.StartDate = patch.Coalesce(r.StartDate, p.StartDate)
	if r.EndDate != nil {
		p.EndDate = r.EndDate
	}
	p.IsPerpetual = patch.Coalesce(r.IsPerpetual, p.IsPerpetual)
	p.Status = patch.TrimmedOr(r.Status, p.Status)
	if r.TotalQuantity != nil {
		p.TotalQuantity = r.TotalQuantity
	}
	return p
}

type ListDealsQuery struct {
	Search     string `form:"search"`
	Category   string `form:"category"`
	SortBy     string `form:"sortBy"`
	Status     string `form:"status" binding:"omitempty,oneof=draft active paused expired rejected"`
	Limit      int    `form:"limit" binding:"omitempty,min=1,max=200"`
	BusinessID string `form:"businessId" binding:"omitempty,uuid"`
}

type TrendingQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=50"`
}
