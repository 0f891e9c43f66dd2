package storefront

import (
	"slices"

	"local-deals/internal/client/apiclient"
	"local-deals/internal/domain/deal"
	"local-deals/internal/pkg/errs"
)

const PageSize = 6

// DiscountThresholds are the minimum-discount choices offered while browsing.
// Zero means no minimum.
var DiscountThresholds = []float64{0, 10, 25, 50, 75}

var ErrUnknownThreshold = errs.New("unknown discount threshold")

// Browser narrows an already-fetched deal list on the client. Every change of
// deals or selection recomputes the filtered set and pulls the current page
// back into range if it shrank. Not safe for concurrent use.
type Browser struct {
	deals       []apiclient.Deal
	categories  map[string]bool
	minDiscount float64
	page        int

	filtered []apiclient.Deal
}

func NewBrowser() *Browser {
	return &Browser{categories: map[string]bool{}, page: 1}
}

func (b *Browser) SetDeals(deals []apiclient.Deal) {
	b.deals = deals
	b.recompute()
}

// ToggleCategory selects or deselects a category by id or slug.
func (b *Browser) ToggleCategory(idOrSlug string) {
	if b.categories[idOrSlug] {
		delete(b.categories, idOrSlug)
	} else {
		b.categories[idOrSlug] = true
	}
	b.recompute()
}

func (b *Browser) ClearCategories() {
	clear(b.categories)
	b.recompute()
}

func (b *Browser) SelectedCategories() []string {
	out := make([]string, 0, len(b.categories))
	for c := range b.categories {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

func (b *Browser) SetMinDiscount(threshold float64) error {
	if !slices.Contains(DiscountThresholds, threshold) {
		return ErrUnknownThreshold
	}
	b.minDiscount = threshold
	b.recompute()
	return nil
}

func (b *Browser) MinDiscount() float64 { return b.minDiscount }

func (b *Browser) matches(d apiclient.Deal) bool {
	if len(b.categories) > 0 {
		in := d.CategoryID != nil && b.categories[d.CategoryID.String()] ||
			d.CategorySlug != nil && b.categories[*d.CategorySlug]
		if !in {
			return false
		}
	}
	if b.minDiscount > 0 && discountOf(d) < b.minDiscount {
		return false
	}
	return true
}

func discountOf(d apiclient.Deal) float64 {
	if d.DiscountAmount > 0 {
		return d.DiscountAmount
	}
	return deal.ParseDiscountValue(d.DiscountValue)
}

func (b *Browser) recompute() {
	out := make([]apiclient.Deal, 0, len(b.deals))
	for _, d := range b.deals {
		if b.matches(d) {
			out = append(out, d)
		}
	}
	b.filtered = out
	b.page = min(max(b.page, 1), b.PageCount())
}

// Filtered is every deal passing the current selection, in the original order.
func (b *Browser) Filtered() []apiclient.Deal { return b.filtered }

func (b *Browser) Total() int { return len(b.filtered) }

// PageCount is at least 1 so an empty result still has a page to show.
func (b *Browser) PageCount() int {
	return max(1, (len(b.filtered)+PageSize-1)/PageSize)
}

func (b *Browser) Page() int { return b.page }

// SetPage clamps p into [1, PageCount].
func (b *Browser) SetPage(p int) {
	b.page = min(max(p, 1), b.PageCount())
}

func (b *Browser) PageItems() []apiclient.Deal {
	start := (b.page - 1) * PageSize
	if start >= len(b.filtered) {
		return nil
	}
	end := min(start+PageSize, len(b.filtered))
	return b.filtered[start:end]
}
