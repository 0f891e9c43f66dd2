package shared

import (
	"context"
	"time"

	"local-deals/internal/domain/business"
	"local-deals/internal/domain/cart"
	"local-deals/internal/domain/claim"
	"local-deals/internal/domain/deal"
	"local-deals/internal/domain/rating"
	"local-deals/internal/domain/report"
	"local-deals/internal/domain/user"
	"local-deals/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
}

type Tx interface {
	Users() UserRepository
	Businesses() BusinessRepository
	Deals() DealRepository
	Cart() CartRepository
	Wishlist() WishlistRepository
	Claims() ClaimRepository
	Verifications() VerificationRepository
	Ratings() RatingRepository
	Reports() ReportRepository
	DB() db.DBTX
}

type UserRepository interface {
	Create(ctx context.Context, tx db.DBTX, u *user.User) error
	FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*UserSnapshot, error)
	UpdateRole(ctx context.Context, tx db.DBTX, id uuid.UUID, role user.Role) error
	UpdateLastLogin(ctx context.Context, tx db.DBTX, id uuid.UUID, at time.Time) error
}

type BusinessRepository interface {
	Create(ctx context.Context, tx db.DBTX, b *business.Business) error
	FindByUserID(ctx context.Context, tx db.DBTX, userID uuid.UUID) (*BusinessSnapshot, error)
	UpdateVerificationStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status business.VerificationStatus) error
}

type DealRepository interface {
	Create(ctx context.Context, tx db.DBTX, d *deal.Deal) error
	FindForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*deal.Deal, error)
	Update(ctx context.Context, tx db.DBTX, d *deal.Deal) error
	Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error
	// ReserveClaimSlot increments claimed_count only while the deal is active and
	// under its cap; false means no slot was taken.
	ReserveClaimSlot(ctx context.Context, tx db.DBTX, id uuid.UUID) (bool, error)
	IncrementViews(ctx context.Context, tx db.DBTX, id uuid.UUID) error
	ExpireOverdue(ctx context.Context, tx db.DBTX, now time.Time) (int64, error)
}

type CartRepository interface {
	Upsert(ctx context.Context, tx db.DBTX, item *cart.Item) (uuid.UUID, error)
	UpdateQuantity(ctx context.Context, tx db.DBTX, userID, itemID uuid.UUID, qty cart.Quantity) error
	Delete(ctx context.Context, tx db.DBTX, userID, itemID uuid.UUID) error
	Clear(ctx context.Context, tx db.DBTX, userID uuid.UUID) (int64, error)
}

type WishlistRepository interface {
	Add(ctx context.Context, tx db.DBTX, userID, dealID uuid.UUID) error
	Remove(ctx context.Context, tx db.DBTX, userID, dealID uuid.UUID) error
}

type ClaimRepository interface {
	// Create reports false on a code collision.
	Create(ctx context.Context, tx db.DBTX, c *claim.Claim) (bool, error)
	FindByCodeForUpdate(ctx context.Context, tx db.DBTX, code claim.Code) (*ClaimSnapshot, error)
	MarkRedeemed(ctx context.Context, tx db.DBTX, id uuid.UUID, at time.Time) (bool, error)
}

type VerificationRepository interface {
	// Add reports whether a new row was written; repeats are no-ops.
	Add(ctx context.Context, tx db.DBTX, userID, dealID uuid.UUID) (bool, error)
}

type RatingRepository interface {
	Create(ctx context.Context, tx db.DBTX, r *rating.Rating) error
}

type ReportRepository interface {
	Create(ctx context.Context, tx db.DBTX, r *report.Report) error
	UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status report.Status) error
}

// DealCache is the deal-list cache. Mutations bump its version so every
// cached listing becomes unreachable at once.
type DealCache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Invalidate(ctx context.Context) error
}
