package queries

import (
	"time"

	"github.com/google/uuid"
)

// UserView is the authenticated user's own profile.
type UserView struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	Points    int       `json:"points"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type BusinessView struct {
	ID                 uuid.UUID `json:"id"`
	UserID             uuid.UUID `json:"user_id"`
	BusinessName       string    `json:"business_name"`
	Phone              *string   `json:"phone,omitempty"`
	Address            *string   `json:"address,omitempty"`
	Description        *string   `json:"description,omitempty"`
	VerificationStatus string    `json:"verification_status"`
	CreatedAt          time.Time `json:"created_at"`
}

type CategoryView struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Icon         *string   `json:"icon,omitempty"`
	DisplayOrder int       `json:"display_order"`
}

// DealView is a row of the deals_with_details view.
type DealView struct {
	ID              uuid.UUID  `json:"id"`
	BusinessID      uuid.UUID  `json:"business_id"`
	BusinessUserID  uuid.UUID  `json:"business_user_id"`
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
}

type CartItemView struct {
	ID       uuid.UUID `json:"id"`
	DealID   uuid.UUID `json:"deal_id"`
	Quantity int       `json:"quantity"`
	AddedAt  time.Time `json:"added_at"`
	Deal     DealView  `json:"deal"`
}

type WishlistItemView struct {
	ID        uuid.UUID `json:"id"`
	DealID    uuid.UUID `json:"deal_id"`
	CreatedAt time.Time `json:"created_at"`
	Deal      DealView  `json:"deal"`
}

type ClaimView struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"user_id"`
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
}

type VerificationSummary struct {
	DealID       uuid.UUID `json:"deal_id"`
	Count        int       `json:"count"`
	VerifiedByMe bool      `json:"verified_by_me"`
}

type RatingView struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	UserName   string    `json:"user_name"`
	BusinessID uuid.UUID `json:"business_id"`
	Score      int       `json:"score"`
	Comment    *string   `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type RatingSummaryView struct {
	BusinessID uuid.UUID `json:"business_id"`
	Count      int       `json:"count"`
	Average    float64   `json:"average"`
	Histogram  [5]int    `json:"histogram"`
}

type ReportView struct {
	ID            uuid.UUID `json:"id"`
	DealID        uuid.UUID `json:"deal_id"`
	DealTitle     string    `json:"deal_title"`
	ReporterID    uuid.UUID `json:"reporter_id"`
	ReporterEmail string    `json:"reporter_email"`
	Reason        string    `json:"reason"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}
