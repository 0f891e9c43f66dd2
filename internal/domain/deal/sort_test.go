//go:build unit

package deal_test

import (
	"slices"
	"testing"
	"time"

	"local-deals/internal/domain/deal"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func facts(f deal.Facts) deal.Facts { return f }

func TestSortBy_Discount(t *testing.T) {
	items := []deal.Facts{
		{ID: uuid.New(), DiscountValue: "abc"},
		{ID: uuid.New(), DiscountValue: "10%"},
		{ID: uuid.New(), DiscountValue: "50%"},
	}
	deal.SortBy(items, deal.SortDiscount, facts)

	got := make([]string, 0, len(items))
	for _, f := range items {
		got = append(got, f.DiscountValue)
	}
	assert.Equal(t, []string{"50%", "10%", "abc"}, got)
}

func TestSortBy_TotalOrderAndIdempotent(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	items := make([]deal.Facts, 0, 20)
	for i := 0; i < 20; i++ {
		items = append(items, deal.Facts{
			ID:            uuid.New(),
			ViewCount:     i % 3,
			CreatedAt:     base.Add(time.Duration(i%4) * time.Hour),
			EndDate:       base.Add(time.Duration(i%5) * 24 * time.Hour),
			DiscountValue: []string{"5%", "x", "20%"}[i%3],
		})
	}

	for _, key := range []deal.SortKey{deal.SortTrending, deal.SortNewest, deal.SortEndingSoon, deal.SortDiscount} {
		t.Run(string(key), func(t *testing.T) {
			once := slices.Clone(items)
			deal.SortBy(once, key, facts)
			twice := slices.Clone(once)
			deal.SortBy(twice, key, facts)
			require.Equal(t, once, twice)

			reversed := slices.Clone(items)
			slices.Reverse(reversed)
			deal.SortBy(reversed, key, facts)
			assert.Equal(t, once, reversed, "order must not depend on input order")

			for i := 1; i < len(once); i++ {
				assert.Negative(t, deal.Compare(key, once[i-1], once[i]))
			}
		})
	}
}

func TestNewSortKey(t *testing.T) {
	assert.Equal(t, deal.SortDiscount, deal.NewSortKey("discount"))
	assert.Equal(t, deal.SortTrending, deal.NewSortKey(""))
	assert.Equal(t, deal.SortTrending, deal.NewSortKey("cheapest"))
}
