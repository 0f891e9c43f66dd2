package claim

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAlreadyRedeemed  = errors.New("claim already redeemed")
	ErrInvalidCode      = errors.New("invalid redemption code")
	ErrDealNotClaimable = errors.New("deal is not available for claiming")
	ErrSoldOut          = errors.New("deal has reached its claim limit")
)

// codeAlphabet leaves out 0/O and 1/I/L so codes read back reliably from print.
const (
	codeAlphabet  = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
	codeLength    = 12
	codeGroupSize = 4
)

type Code string

func GenerateCode() (Code, error) {
	var b strings.Builder
	limit := big.NewInt(int64(len(codeAlphabet)))
	for i := 0; i < codeLength; i++ {
		if i > 0 && i%codeGroupSize == 0 {
			b.WriteByte('-')
		}
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		b.WriteByte(codeAlphabet[n.Int64()])
	}
	return Code(b.String()), nil
}

// ParseCode accepts codes typed with or without dashes and in any case.
func ParseCode(s string) (Code, error) {
	raw := strings.ToUpper(strings.NewReplacer("-", "", " ", "").Replace(strings.TrimSpace(s)))
	if len(raw) != codeLength {
		return "", ErrInvalidCode
	}
	var b strings.Builder
	for i, r := range raw {
		if !strings.ContainsRune(codeAlphabet, r) {
			return "", ErrInvalidCode
		}
		if i > 0 && i%codeGroupSize == 0 {
			b.WriteByte('-')
		}
		b.WriteRune(r)
	}
	return Code(b.String()), nil
}

func (c Code) String() string { return string(c) }

type Claim struct {
	id         uuid.UUID
	userID     uuid.UUID
	dealID     uuid.UUID
	code       Code
	isRedeemed bool
	redeemedAt *time.Time
	createdAt  time.Time
}

func NewClaim(userID, dealID uuid.UUID, now time.Time) (*Claim, error) {
	code, err := GenerateCode()
	if err != nil {
		return nil, err
	}
	return &Claim{
		id:        uuid.New(),
		userID:    userID,
		dealID:    dealID,
		code:      code,
		createdAt: now,
	}, nil
}

// Regenerate replaces the code after a uniqueness collision.
func (c *Claim) Regenerate() error {
	code, err := GenerateCode()
	if err != nil {
		return err
	}
	c.code = code
	return nil
}

func Restore(id, userID, dealID uuid.UUID, code Code, isRedeemed bool, redeemedAt *time.Time, createdAt time.Time) *Claim {
	return &Claim{
		id:         id,
		userID:     userID,
		dealID:     dealID,
		code:       code,
		isRedeemed: isRedeemed,
		redeemedAt: redeemedAt,
		createdAt:  createdAt,
	}
}

// Redeem is one-way; a second call fails and leaves the first timestamp intact.
func (c *Claim) Redeem(now time.Time) error {
	if c.isRedeemed {
		return ErrAlreadyRedeemed
	}
	c.isRedeemed = true
	c.redeemedAt = &now
	return nil
}

func (c *Claim) ID() uuid.UUID          { return c.id }
func (c *Claim) UserID() uuid.UUID      { return c.userID }
func (c *Claim) DealID() uuid.UUID      { return c.dealID }
func (c *Claim) Code() Code             { return c.code }
func (c *Claim) IsRedeemed() bool       { return c.isRedeemed }
func (c *Claim) RedeemedAt() *time.Time { return c.redeemedAt }
func (c *Claim) CreatedAt() time.Time   { return c.createdAt }
