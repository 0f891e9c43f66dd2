package readstore

import (
	"context"
	"fmt"
	"strings"

	"local-deals/internal/domain/deal"
	"local-deals/internal/infra"
	"local-deals/internal/infra/db"
	"local-deals/internal/pkg/pgconv"
	"local-deals/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type DealReadStore struct {
	db db.DBTX
}

func NewDealReadStore(db db.DBTX) *DealReadStore {
	return &DealReadStore{db: db}
}

// dealViewColumns is qualified by alias so it can be joined; callers alias the view as d.
const dealViewColumns = `d.id, d.business_id, d.business_user_id, d.business_name, d.category_id,
	d.category_name, d.category_slug, d.title, d.description, d.discount_type, d.discount_value,
	d.discount_amount, d.image_url, d.terms_conditions, d.start_date, d.end_date, d.is_perpetual,
	d.status, d.view_count, d.total_quantity, d.claimed_count, d.created_at, d.updated_at`

// scanDealInto reads dealViewColumns followed by extra destinations.
func scanDealInto(row pgx.Row, v *queries.DealView, extra ...any) error {
	var categoryID pgtype.UUID
	dest := []any{
		&v.ID, &v.BusinessID, &v.BusinessUserID, &v.BusinessName, &categoryID,
		&v.CategoryName, &v.CategorySlug, &v.Title, &v.Description, &v.DiscountType, &v.DiscountValue,
		&v.DiscountAmount, &v.ImageURL, &v.TermsConditions, &v.StartDate, &v.EndDate, &v.IsPerpetual,
		&v.Status, &v.ViewCount, &v.TotalQuantity, &v.ClaimedCount, &v.CreatedAt, &v.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return err
	}
	v.CategoryID = pgconv.UUIDPtrFromPgtype(categoryID)
	return nil
}

func scanDeal(row pgx.Row) (*queries.DealView, error) {
	var v queries.DealView
	if err := scanDealInto(row, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// The trailing id keeps the order total for equal sort values.
func orderClause(key deal.SortKey) string {
	switch key {
	case deal.SortNewest:
		return "d.created_at DESC, d.id"
	case deal.SortEndingSoon:
		return "d.end_date ASC, d.id"
	case deal.SortDiscount:
		return "d.discount_amount DESC, d.id"
	default:
		return "d.view_count DESC, d.id"
	}
}

func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

func buildListQuery(f queries.DealFilters) (string, []any) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}

	if f.Status != "" {
		add("d.status = $%d", f.Status)
	}
	if f.Search != "" {
		add("(d.title ILIKE $%[1]d OR d.description ILIKE $%[1]d)", likePattern(f.Search))
	}
	if f.CategoryID != nil {
		add("d.category_id = $%d", *f.CategoryID)
	} else if f.CategorySlug != "" {
		add("d.category_slug = $%d", f.CategorySlug)
	}
	if f.BusinessID != nil {
		add("d.business_id = $%d", *f.BusinessID)
	}

	var b strings.Builder
	b.WriteString("SELECT " + dealViewColumns + " FROM deals_with_details d")
	if len(where) > 0 {
		b.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	b.WriteString(" ORDER BY " + orderClause(f.SortBy))
	if f.Limit > 0 {
		args = append(args, f.Limit)
		fmt.Fprintf(&b, " LIMIT $%d", len(args))
	}
	return b.String(), args
}

func (r *DealReadStore) List(ctx context.Context, f queries.DealFilters) ([]*queries.DealView, error) {
	sql, args := buildListQuery(f)
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list deals", err)
	}
	out, err := collect(rows, scanDeal)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan deals", err)
	}
	return out, nil
}

func (r *DealReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.DealView, error) {
	v, err := scanDeal(r.db.QueryRow(ctx, `SELECT `+dealViewColumns+` FROM deals_with_details d WHERE d.id = $1`, id))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find deal", err)
	}
	return v, nil
}

func (r *DealReadStore) Trending(ctx context.Context, limit int) ([]*queries.DealView, error) {
	rows, err := r.db.Query(ctx, `SELECT `+dealViewColumns+` FROM deals_with_details d
WHERE d.status = 'active' ORDER BY `+orderClause(deal.SortTrending)+` LIMIT $1`, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list trending deals", err)
	}
	out, err := collect(rows, scanDeal)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan trending deals", err)
	}
	return out, nil
}

func (r *DealReadStore) Categories(ctx context.Context) ([]*queries.CategoryView, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, slug, icon, display_order FROM categories WHERE is_active ORDER BY display_order, name`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list categories", err)
	}
	out, err := collect(rows, func(row pgx.Row) (*queries.CategoryView, error) {
		var c queries.CategoryView
		err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.Icon, &c.DisplayOrder)
		return &c, err
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan categories", err)
	}
	return out, nil
}
