package deal

import "errors"

var (
	ErrEmptyTitle          = errors.New("title is required")
	ErrEmptyDescription    = errors.New("description is required")
	ErrEmptyDiscountValue  = errors.New("discount value is required")
	ErrInvalidDiscountType = errors.New("invalid discount type")
	ErrInvalidStatus       = errors.New("invalid deal status")
	ErrMissingStartDate    = errors.New("start date is required")
	ErrMissingEndDate      = errors.New("end date is required unless the deal is perpetual")
	ErrEndBeforeStart      = errors.New("end date must not be before start date")
	ErrInvalidQuantity     = errors.New("total quantity must be positive")
	ErrQuantityBelowClaims = errors.New("total quantity cannot be lower than claims already made")
	ErrTitleTooLong        = errors.New("title exceeds maximum length")
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
	DiscountBOGO       DiscountType = "bogo"
	DiscountOther      DiscountType = "other"
)

func NewDiscountType(s string) (DiscountType, error) {
	if s == "" {
		return DiscountPercentage, nil
	}
	t := DiscountType(s)
	switch t {
	case DiscountPercentage, DiscountFixed, DiscountBOGO, DiscountOther:
		return t, nil
	default:
		return "", ErrInvalidDiscountType
	}
}

func (t DiscountType) String() string { return string(t) }

type Status string

const (
	StatusDraft    Status = "draft"
	StatusActive   Status = "active"
	StatusPaused   Status = "paused"
	StatusExpired  Status = "expired"
	StatusRejected Status = "rejected"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusPaused, StatusExpired, StatusRejected:
		return true
	default:
		return false
	}
}

func NewStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

// Claimable reports whether new claims may be issued in this status.
func (s Status) Claimable() bool {
	return s == StatusActive
}
