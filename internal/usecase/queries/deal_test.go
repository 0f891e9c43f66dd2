//go:build unit

package queries_test

import (
	"testing"

	"local-deals/internal/domain/deal"
	"local-deals/internal/usecase/queries"

	"github.com/stretchr/testify/assert"
)

func TestDealFilters_Normalize(t *testing.T) {
	tests := []struct {
		name      string
		in        queries.DealFilters
		wantLimit int
		wantSort  deal.SortKey
	}{
		{name: "件数指定なしは全件", in: queries.DealFilters{}, wantLimit: 0, wantSort: deal.SortTrending},
		{name: "負の件数は全件", in: queries.DealFilters{Limit: -3}, wantLimit: 0, wantSort: deal.SortTrending},
		{name: "上限を超える件数は切り詰める", in: queries.DealFilters{Limit: 5000}, wantLimit: queries.MaxDealListLimit, wantSort: deal.SortTrending},
		{name: "指定した並び順は保つ", in: queries.DealFilters{Limit: 12, SortBy: deal.SortNewest}, wantLimit: 12, wantSort: deal.SortNewest},
		{name: "未知の並び順は人気順", in: queries.DealFilters{SortBy: "cheapest"}, wantLimit: 0, wantSort: deal.SortTrending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			assert.Equal(t, tt.wantLimit, got.Limit)
			assert.Equal(t, tt.wantSort, got.SortBy)
			assert.Equal(t, deal.StatusActive.String(), got.Status)
		})
	}
}
