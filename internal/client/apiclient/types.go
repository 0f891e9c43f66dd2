package apiclient

import (
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Response schemas. Field names follow the JSON the backend renders.

type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	Points    int       `json:"points"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) IsBusiness() bool { return u != nil && u.Role == "business" }

// Session is the login and refresh response.
type Session struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
	User         *User  `json:"user"`
}

type Business struct {
	ID                 uuid.UUID `json:"id"`
	UserID             uuid.UUID `json:"user_id"`
	BusinessName       string    `json:"business_name"`
	Phone              *string   `json:"phone,omitempty"`
	Address            *string   `json:"address,omitempty"`
	Description        *string   `json:"description,omitempty"`
	VerificationStatus string    `json:"verification_status"`
	CreatedAt          time.Time `json:"created_at"`
}

// BusinessRegistration carries a new token pair when the caller was promoted to business.
type BusinessRegistration struct {
	Business     *Business `json:"business"`
	Token        string    `json:"token,omitempty"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	User         *User     `json:"user,omitempty"`
}

type Category struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Icon         *string   `json:"icon,omitempty"`
	DisplayOrder int       `json:"display_order"`
}

type Deal struct {
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
	Remaining  *int   `json:"remaining,omitempty"`
	SoldOut    bool   `json:"sold_out"`
}

type CartItem struct {
	ID       uuid.UUID `json:"id"`
	DealID   uuid.UUID `json:"deal_id"`
	Quantity int       `json:"quantity"`
	AddedAt  time.Time `json:"added_at"`
	Deal     *Deal     `json:"deal"`
}

type WishlistItem struct {
	ID        uuid.UUID `json:"id"`
	DealID    uuid.UUID `json:"deal_id"`
	CreatedAt time.Time `json:"created_at"`
	Deal      *Deal     `json:"deal"`
}

type Claim struct {
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

type Redemption struct {
	ClaimID    uuid.UUID `json:"claim_id"`
	DealID     uuid.UUID `json:"deal_id"`
	Code       string    `json:"code"`
	RedeemedAt time.Time `json:"redeemed_at"`
}

type Verifications struct {
	DealID       uuid.UUID `json:"deal_id"`
	Count        int       `json:"count"`
	VerifiedByMe bool      `json:"verified_by_me"`
}

type Rating struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	UserName   string    `json:"user_name"`
	BusinessID uuid.UUID `json:"business_id"`
	Score      int       `json:"score"`
	Comment    *string   `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type RatingPage struct {
	Ratings    []Rating `json:"ratings"`
	NextCursor string   `json:"next_cursor,omitempty"`
}

type RatingSummary struct {
	BusinessID uuid.UUID `json:"business_id"`
	Count      int       `json:"count"`
	Average    float64   `json:"average"`
	Histogram  [5]int    `json:"histogram"`
}

type Report struct {
	ID            uuid.UUID `json:"id"`
	DealID        uuid.UUID `json:"deal_id"`
	DealTitle     string    `json:"deal_title"`
	ReporterID    uuid.UUID `json:"reporter_id"`
	ReporterEmail string    `json:"reporter_email"`
	Reason        string    `json:"reason"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

type Created struct {
	ID uuid.UUID `json:"id"`
}

type Upload struct {
	ImageURL string `json:"imageUrl"`
}

// Request schemas, validated before dispatch.

type SignUpRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required,max=200"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=customer business"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type BusinessRequest struct {
	BusinessName string  `json:"business_name" validate:"required,max=200"`
	Phone        *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Address      *string `json:"address,omitempty" validate:"omitempty,max=500"`
	Description  *string `json:"description,omitempty" validate:"omitempty,max=2000"`
}

// DealRequest requires an end date unless the deal is perpetual.
type DealRequest struct {
	CategoryID      *uuid.UUID `json:"category_id,omitempty"`
	Title           string     `json:"title" validate:"required,max=200"`
	Description     string     `json:"description" validate:"required"`
	DiscountType    string     `json:"discount_type,omitempty" validate:"omitempty,oneof=percentage fixed bogo other"`
	DiscountValue   string     `json:"discount_value" validate:"required,max=50"`
	ImageURL        *string    `json:"image_url,omitempty"`
	TermsConditions *string    `json:"terms_conditions,omitempty"`
	StartDate       time.Time  `json:"start_date" validate:"required"`
	EndDate         *time.Time `json:"end_date,omitempty" validate:"required_if=IsPerpetual false"`
	IsPerpetual     bool       `json:"is_perpetual"`
	Status          string     `json:"status,omitempty" validate:"omitempty,oneof=active draft"`
	TotalQuantity   *int       `json:"total_quantity,omitempty" validate:"omitempty,min=1"`
}

// DealPatch changes only the fields that are set.
type DealPatch struct {
	CategoryID      *uuid.UUID `json:"category_id,omitempty"`
	Title           *string    `json:"title,omitempty" validate:"omitempty,max=200"`
	Description     *string    `json:"description,omitempty"`
	DiscountType    *string    `json:"discount_type,omitempty" validate:"omitempty,oneof=percentage fixed bogo other"`
	DiscountValue   *string    `json:"discount_value,omitempty" validate:"omitempty,max=50"`
	ImageURL        *string    `json:"image_url,omitempty"`
	TermsConditions *string    `json:"terms_conditions,omitempty"`
	StartDate       *time.Time `json:"start_date,omitempty"`
	EndDate         *time.Time `json:"end_date,omitempty"`
	IsPerpetual     *bool      `json:"is_perpetual,omitempty"`
	Status          *string    `json:"status,omitempty" validate:"omitempty,oneof=draft active paused expired"`
	TotalQuantity   *int       `json:"total_quantity,omitempty" validate:"omitempty,min=1"`
}

type CartAddRequest struct {
	DealID   uuid.UUID `json:"deal_id" validate:"required"`
	Quantity int       `json:"quantity" validate:"min=1"`
}

type QuantityRequest struct {
	Quantity int `json:"quantity" validate:"min=1"`
}

type WishlistAddRequest struct {
	DealID uuid.UUID `json:"deal_id" validate:"required"`
}

type RatingRequest struct {
	BusinessID uuid.UUID `json:"business_id" validate:"required"`
	Score      int       `json:"score" validate:"min=1,max=5"`
	Comment    string    `json:"comment" validate:"max=1000"`
}

type ReportRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

type VerificationStatusRequest struct {
	Status string `json:"verification_status" validate:"required,oneof=pending approved rejected"`
}

type ReportStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=open resolved dismissed"`
}

// DealQuery is the GET /deals filter set. Empty fields are omitted.
type DealQuery struct {
	Search     string
	Category   string
	SortBy     string
	Status     string
	BusinessID string
	Limit      int
}

func (q DealQuery) Values() url.Values {
	v := url.Values{}
	set := func(k, val string) {
		if val != "" {
			v.Set(k, val)
		}
	}
	set("search", q.Search)
	set("category", q.Category)
	set("sortBy", q.SortBy)
	set("status", q.Status)
	set("businessId", q.BusinessID)
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}
