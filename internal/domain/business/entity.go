package business

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyBusinessName     = errors.New("business name is required")
	ErrInvalidVerification   = errors.New("invalid verification status")
	ErrBusinessAlreadyExists = errors.New("user already has a business")
)

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

func (s VerificationStatus) String() string { return string(s) }

func NewVerificationStatus(s string) (VerificationStatus, error) {
	switch v := VerificationStatus(s); v {
	case VerificationPending, VerificationApproved, VerificationRejected:
		return v, nil
	default:
		return "", ErrInvalidVerification
	}
}

type Business struct {
	id                 uuid.UUID
	userID             uuid.UUID
	name               string
	phone              *string
	address            *string
	description        *string
	verificationStatus VerificationStatus
	createdAt          time.Time
}

type Profile struct {
	Name        string
	Phone       *string
	Address     *string
	Description *string
}

// NewBusiness starts every business as pending until an admin reviews it.
func NewBusiness(userID uuid.UUID, p Profile, now time.Time) (*Business, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return nil, ErrEmptyBusinessName
	}
	return &Business{
		id:                 uuid.New(),
		userID:             userID,
		name:               name,
		phone:              optional(p.Phone),
		address:            optional(p.Address),
		description:        optional(p.Description),
		verificationStatus: VerificationPending,
		createdAt:          now,
	}, nil
}

func optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func (b *Business) ID() uuid.UUID                          { return b.id }
func (b *Business) UserID() uuid.UUID                      { return b.userID }
func (b *Business) Name() string                           { return b.name }
func (b *Business) Phone() *string                         { return b.phone }
func (b *Business) Address() *string                       { return b.address }
func (b *Business) Description() *string                   { return b.description }
func (b *Business) VerificationStatus() VerificationStatus { return b.verificationStatus }
func (b *Business) CreatedAt() time.Time                   { return b.createdAt }
