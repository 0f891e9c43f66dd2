//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// passwordHash is bcrypt("password123").
const passwordHash = "$2a$12$uhAjVE9f92IGYv3E25pJNetg.27lVt0p7jmLWjqjmhOg92ldPS0A."

const DefaultPassword = "password123"

func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()
	tag, err := db.Exec(ctx, "INSERT INTO users (id, email, full_name, password_hash, role, is_active) VALUES ($1, $2, $3, $4, $5, true) ON CONFLICT (email) DO NOTHING",
		userID, email, "Test "+role, passwordHash, role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
	}

	return userID
}

func CreateTestBusiness(t *testing.T, db DBLike, userID uuid.UUID, name string) uuid.UUID {
	t.Helper()

	businessID := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO businesses (id, user_id, business_name, verification_status) VALUES ($1, $2, $3, 'approved')",
		businessID, userID, name)
	require.NoError(t, err)

	return businessID
}

// CreateTestDeal inserts an active deal that started yesterday and ends in a week.
// total nil means unlimited claims.
func CreateTestDeal(t *testing.T, db DBLike, businessID uuid.UUID, title string, total *int) uuid.UUID {
	t.Helper()

	dealID := uuid.New()
	now := time.Now().UTC()
	_, err := db.Exec(context.Background(), `
		INSERT INTO deals (id, business_id, title, description, discount_type, discount_value, discount_amount,
		                   start_date, end_date, status, total_quantity)
		VALUES ($1, $2, $3, $4, 'percentage', '25%', 25, $5, $6, 'active', $7)`,
		dealID, businessID, title, title+" description", now.Add(-24*time.Hour), now.Add(7*24*time.Hour), total)
	require.NoError(t, err)

	return dealID
}

// SeedReferenceData restores the categories the initial migration inserts.
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO categories (name, slug, icon, display_order) VALUES
		    ('Food & Drink',      'food-drink',    'utensils',     1),
		    ('Health & Beauty',   'health-beauty', 'sparkles',     2),
		    ('Retail',            'retail',        'shopping-bag', 3),
		    ('Services',          'services',      'wrench',       4),
		    ('Entertainment',     'entertainment', 'ticket',       5),
		    ('Fitness',           'fitness',       'dumbbell',     6)
		ON CONFLICT (slug) DO NOTHING;
	`)
	return err
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
