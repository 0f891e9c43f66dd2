//go:build unit || e2e

package builder

import (
	"time"

	"local-deals/internal/domain/deal"
	reqdto "local-deals/internal/handler/dto/request"
	"local-deals/internal/usecase/queries"

	"github.com/google/uuid"
)

type DealBuilder struct {
	ID            uuid.UUID
	BusinessID    uuid.UUID
	BusinessName  string
	CategoryID    *uuid.UUID
	Title         string
	Description   string
	DiscountType  string
	DiscountValue string
	StartDate     time.Time
	EndDate       *time.Time
	IsPerpetual   bool
	Status        string
	TotalQuantity *int
	ClaimedCount  int
	ViewCount     int
	CreatedAt     time.Time
}

func NewDealBuilder() *DealBuilder {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	return &DealBuilder{
		ID:            uuid.New(),
		BusinessID:    uuid.New(),
		BusinessName:  "Corner Bakery",
		Title:         "Half price sourdough",
		Description:   "Every loaf is half price before noon",
		DiscountType:  deal.DiscountPercentage.String(),
		DiscountValue: "50%",
		StartDate:     start,
		EndDate:       &end,
		Status:        deal.StatusActive.String(),
		CreatedAt:     start,
	}
}

func (d *DealBuilder) With(mutate func(*DealBuilder)) *DealBuilder {
	mutate(d)
	return d
}

// Build methods
func (d *DealBuilder) BuildParams() deal.Params {
	return deal.Params{
		CategoryID:    d.CategoryID,
		Title:         d.Title,
		Description:   d.Description,
		DiscountType:  d.DiscountType,
		DiscountValue: d.DiscountValue,
		StartDate:     d.StartDate,
		EndDate:       d.EndDate,
		IsPerpetual:   d.IsPerpetual,
		Status:        d.Status,
		TotalQuantity: d.TotalQuantity,
	}
}

func (d *DealBuilder) BuildDomain() (*deal.Deal, error) {
	return deal.NewDeal(d.BusinessID, d.BuildParams(), d.CreatedAt)
}

func (d *DealBuilder) BuildState() deal.State {
	end := deal.PerpetualEndDate
	if !d.IsPerpetual && d.EndDate != nil {
		end = *d.EndDate
	}
	return deal.State{
		ID:            d.ID,
		BusinessID:    d.BusinessID,
		CategoryID:    d.CategoryID,
		Title:         d.Title,
		Description:   d.Description,
		DiscountType:  d.DiscountType,
		DiscountValue: d.DiscountValue,
		StartDate:     d.StartDate,
		EndDate:       end,
		IsPerpetual:   d.IsPerpetual,
		Status:        d.Status,
		TotalQuantity: d.TotalQuantity,
		ClaimedCount:  d.ClaimedCount,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.CreatedAt,
	}
}

func (d *DealBuilder) BuildView() *queries.DealView {
	s := d.BuildState()
	return &queries.DealView{
		ID:             s.ID,
		BusinessID:     s.BusinessID,
		BusinessUserID: uuid.New(),
		BusinessName:   d.BusinessName,
		CategoryID:     s.CategoryID,
		Title:          s.Title,
		Description:    s.Description,
		DiscountType:   s.DiscountType,
		DiscountValue:  s.DiscountValue,
		DiscountAmount: deal.ParseDiscountValue(s.DiscountValue),
		StartDate:      s.StartDate,
		EndDate:        s.EndDate,
		IsPerpetual:    s.IsPerpetual,
		Status:         s.Status,
		ViewCount:      d.ViewCount,
		TotalQuantity:  s.TotalQuantity,
		ClaimedCount:   s.ClaimedCount,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

func (d *DealBuilder) BuildCreateRequestDTO() reqdto.CreateDealRequest {
	return reqdto.CreateDealRequest{
		CategoryID:    d.CategoryID,
		Title:         d.Title,
		Description:   d.Description,
		DiscountType:  d.DiscountType,
		DiscountValue: d.DiscountValue,
		StartDate:     d.StartDate,
		EndDate:       d.EndDate,
		IsPerpetual:   d.IsPerpetual,
		Status:        d.Status,
		TotalQuantity: d.TotalQuantity,
	}
}

// Fluent builder methods
func (d *DealBuilder) WithBusinessID(id uuid.UUID) *DealBuilder {
	d.BusinessID = id
	return d
}

func (d *DealBuilder) WithTitle(title string) *DealBuilder {
	d.Title = title
	return d
}

func (d *DealBuilder) WithDiscount(value string) *DealBuilder {
	d.DiscountValue = value
	return d
}

func (d *DealBuilder) WithQuantity(total, claimed int) *DealBuilder {
	d.TotalQuantity = &total
	d.ClaimedCount = claimed
	return d
}

func (d *DealBuilder) WithViews(n int) *DealBuilder {
	d.ViewCount = n
	return d
}

func (d *DealBuilder) AsPerpetual() *DealBuilder {
	d.IsPerpetual = true
	d.EndDate = nil
	return d
}

func (d *DealBuilder) AsDraft() *DealBuilder {
	d.Status = deal.StatusDraft.String()
	return d
}
