package deal

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const MaxTitleLength = 200

type Deal struct {
	id              uuid.UUID
	businessID      uuid.UUID
	categoryID      *uuid.UUID
	title           string
	description     string
	discount        Discount
	imageURL        *string
	termsConditions *string
	startDate       time.Time
	endDate         time.Time
	isPerpetual     bool
	status          Status
	totalQuantity   *int
	claimedCount    int
	createdAt       time.Time
	updatedAt       time.Time
}

// Params are the owner-editable fields of a deal.
type Params struct {
	CategoryID      *uuid.UUID
	Title           string
	Description     string
	DiscountType    string
	DiscountValue   string
	ImageURL        *string
	TermsConditions *string
	StartDate       time.Time
	EndDate         *time.Time
	IsPerpetual     bool
	Status          string
	TotalQuantity   *int
}

func NewDeal(businessID uuid.UUID, p Params, now time.Time) (*Deal, error) {
	d := &Deal{
		id:         uuid.New(),
		businessID: businessID,
		createdAt:  now,
		updatedAt:  now,
	}
	if p.Status == "" {
		p.Status = StatusActive.String()
	}
	if err := d.apply(p); err != nil {
		return nil, err
	}
	return d, nil
}

// State is the persisted form used to rebuild a deal without re-running creation rules.
type State struct {
	ID              uuid.UUID
	BusinessID      uuid.UUID
	CategoryID      *uuid.UUID
	Title           string
	Description     string
	DiscountType    string
	DiscountValue   string
	ImageURL        *string
	TermsConditions *string
	StartDate       time.Time
	EndDate         time.Time
	IsPerpetual     bool
	Status          string
	TotalQuantity   *int
	ClaimedCount    int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func Restore(s State) *Deal {
	return &Deal{
		id:              s.ID,
		businessID:      s.BusinessID,
		categoryID:      s.CategoryID,
		title:           s.Title,
		description:     s.Description,
		discount:        Discount{kind: DiscountType(s.DiscountType), display: s.DiscountValue},
		imageURL:        s.ImageURL,
		termsConditions: s.TermsConditions,
		startDate:       s.StartDate,
		endDate:         s.EndDate,
		isPerpetual:     s.IsPerpetual,
		status:          Status(s.Status),
		totalQuantity:   s.TotalQuantity,
		claimedCount:    s.ClaimedCount,
		createdAt:       s.CreatedAt,
		updatedAt:       s.UpdatedAt,
	}
}

// Params returns the current editable fields, the base for partial updates.
func (d *Deal) Params() Params {
	end := d.endDate
	return Params{
		CategoryID:      d.categoryID,
		Title:           d.title,
		Description:     d.description,
		DiscountType:    d.discount.kind.String(),
		DiscountValue:   d.discount.display,
		ImageURL:        d.imageURL,
		TermsConditions: d.termsConditions,
		StartDate:       d.startDate,
		EndDate:         &end,
		IsPerpetual:     d.isPerpetual,
		Status:          d.status.String(),
		TotalQuantity:   d.totalQuantity,
	}
}

func (d *Deal) Update(p Params, now time.Time) error {
	if err := d.apply(p); err != nil {
		return err
	}
	d.updatedAt = now
	return nil
}

func (d *Deal) apply(p Params) error {
	title := strings.TrimSpace(p.Title)
	if title == "" {
		return ErrEmptyTitle
	}
	if len(title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	description := strings.TrimSpace(p.Description)
	if description == "" {
		return ErrEmptyDescription
	}
	kind, err := NewDiscountType(p.DiscountType)
	if err != nil {
		return err
	}
	discount, err := NewDiscount(kind, p.DiscountValue)
	if err != nil {
		return err
	}
	status, err := NewStatus(p.Status)
	if err != nil {
		return err
	}
	if p.StartDate.IsZero() {
		return ErrMissingStartDate
	}

	end := PerpetualEndDate
	if !p.IsPerpetual {
		if p.EndDate == nil || p.EndDate.IsZero() {
			return ErrMissingEndDate
		}
		if p.EndDate.Before(p.StartDate) {
			return ErrEndBeforeStart
		}
		end = *p.EndDate
	}

	if p.TotalQuantity != nil {
		if *p.TotalQuantity <= 0 {
			return ErrInvalidQuantity
		}
		if *p.TotalQuantity < d.claimedCount {
			return ErrQuantityBelowClaims
		}
	}

	d.categoryID = p.CategoryID
	d.title = title
	d.description = description
	d.discount = discount
	d.imageURL = trimOptional(p.ImageURL)
	d.termsConditions = trimOptional(p.TermsConditions)
	d.startDate = p.StartDate
	d.endDate = end
	d.isPerpetual = p.IsPerpetual
	d.status = status
	d.totalQuantity = p.TotalQuantity
	return nil
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func (d *Deal) ID() uuid.UUID            { return d.id }
func (d *Deal) BusinessID() uuid.UUID    { return d.businessID }
func (d *Deal) CategoryID() *uuid.UUID   { return d.categoryID }
func (d *Deal) Title() string            { return d.title }
func (d *Deal) Description() string      { return d.description }
func (d *Deal) Discount() Discount       { return d.discount }
func (d *Deal) ImageURL() *string        { return d.imageURL }
func (d *Deal) TermsConditions() *string { return d.termsConditions }
func (d *Deal) StartDate() time.Time     { return d.startDate }
func (d *Deal) EndDate() time.Time       { return d.endDate }
func (d *Deal) IsPerpetual() bool        { return d.isPerpetual }
func (d *Deal) Status() Status           { return d.status }
func (d *Deal) TotalQuantity() *int      { return d.totalQuantity }
func (d *Deal) ClaimedCount() int        { return d.claimedCount }
func (d *Deal) CreatedAt() time.Time     { return d.createdAt }
func (d *Deal) UpdatedAt() time.Time     { return d.updatedAt }

func (d *Deal) OwnedBy(businessID uuid.UUID) bool {
	return d.businessID == businessID
}

func (d *Deal) Scarcity() Scarcity {
	return Scarcity{Total: d.totalQuantity, Claimed: d.claimedCount}
}
