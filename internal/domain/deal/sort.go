package deal

import (
	"cmp"
	"slices"
	"time"

	"github.com/google/uuid"
)

type SortKey string

const (
	SortTrending   SortKey = "trending"
	SortNewest     SortKey = "newest"
	SortEndingSoon SortKey = "ending-soon"
	SortDiscount   SortKey = "discount"
)

// NewSortKey falls back to trending for unknown or empty values.
func NewSortKey(s string) SortKey {
	switch k := SortKey(s); k {
	case SortTrending, SortNewest, SortEndingSoon, SortDiscount:
		return k
	default:
		return SortTrending
	}
}

// Facts are the fields every sort key reads.
type Facts struct {
	ID            uuid.UUID
	ViewCount     int
	CreatedAt     time.Time
	EndDate       time.Time
	DiscountValue string
}

// Compare orders a before b under key; ids break ties so the order is total.
func Compare(key SortKey, a, b Facts) int {
	var c int
	switch key {
	case SortNewest:
		c = b.CreatedAt.Compare(a.CreatedAt)
	case SortEndingSoon:
		c = a.EndDate.Compare(b.EndDate)
	case SortDiscount:
		c = cmp.Compare(ParseDiscountValue(b.DiscountValue), ParseDiscountValue(a.DiscountValue))
	default:
		c = cmp.Compare(b.ViewCount, a.ViewCount)
	}
	if c != 0 {
		return c
	}
	return cmp.Compare(a.ID.String(), b.ID.String())
}

func SortBy[T any](items []T, key SortKey, facts func(T) Facts) {
	slices.SortStableFunc(items, func(a, b T) int {
		return Compare(key, facts(a), facts(b))
	})
}
