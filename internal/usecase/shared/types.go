package shared

import (
	"time"

	"github.com/google/uuid"
)

// Minimal snapshots for command read operations
type UserSnapshot struct {
	ID       uuid.UUID
	Email    string
	FullName string
	Role     string
	Points   int
	IsActive bool
}

type BusinessSnapshot struct {
	ID                 uuid.UUID
	UserID             uuid.UUID
	Name               string
	VerificationStatus string
}

type ClaimSnapshot struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	DealID         uuid.UUID
	Code           string
	IsRedeemed     bool
	RedeemedAt     *time.Time
	BusinessID     uuid.UUID
	BusinessUserID uuid.UUID
}
