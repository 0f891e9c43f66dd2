//go:build unit

package repository

import (
	"context"
	"testing"
	"time"

	"local-deals/internal/domain/cart"
	"local-deals/internal/domain/claim"
	"local-deals/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockDB implements db.DBTX.
type MockDB struct {
	mock.Mock
}

func (m *MockDB) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	mockArgs := m.Called(ctx, query, args)
	return mockArgs.Get(0).(pgconn.CommandTag), mockArgs.Error(1)
}

func (m *MockDB) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	mockArgs := m.Called(ctx, query, args)
	return mockArgs.Get(0).(pgx.Rows), mockArgs.Error(1)
}

func (m *MockDB) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	mockArgs := m.Called(ctx, query, args)
	return mockArgs.Get(0).(pgx.Row)
}

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }

func updated(n int) pgconn.CommandTag {
	if n == 0 {
		return pgconn.NewCommandTag("UPDATE 0")
	}
	return pgconn.NewCommandTag("UPDATE 1")
}

func TestDealRepository_ReserveClaimSlot(t *testing.T) {
	tests := []struct {
		name     string
		tag      pgconn.CommandTag
		dbErr    error
		wantOK   bool
		wantKind infra.RepositoryErrorKind
	}{
		{name: "slot taken", tag: updated(1), wantOK: true},
		{name: "cap reached or inactive", tag: updated(0), wantOK: false},
		{name: "database error", tag: pgconn.CommandTag{}, dbErr: assert.AnError, wantKind: infra.KindDBFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dbtx := new(MockDB)
			dealID := uuid.New()
			dbtx.On("Exec", mock.Anything, reserveClaimSlotSQL, []any{dealID}).Return(tt.tag, tt.dbErr)

			ok, err := NewDealRepository().ReserveClaimSlot(context.Background(), dbtx, dealID)

			if tt.wantKind != "" {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tt.wantKind))
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantOK, ok)
			}
			dbtx.AssertExpectations(t)
		})
	}
}

func TestDealRepository_FindForUpdate_NotFound(t *testing.T) {
	dbtx := new(MockDB)
	dbtx.On("QueryRow", mock.Anything, mock.Anything, mock.Anything).Return(errRow{err: pgx.ErrNoRows})

	_, err := NewDealRepository().FindForUpdate(context.Background(), dbtx, uuid.New())
	assert.True(t, infra.IsKind(err, infra.KindNotFound))
}

func TestCartRepository_UpdateQuantity(t *testing.T) {
	userID, itemID := uuid.New(), uuid.New()
	qty, err := cart.NewQuantity(2)
	require.NoError(t, err)

	t.Run("updates the caller's line", func(t *testing.T) {
		dbtx := new(MockDB)
		dbtx.On("Exec", mock.Anything, mock.Anything, []any{itemID, userID, 2}).Return(updated(1), nil)
		require.NoError(t, NewCartRepository().UpdateQuantity(context.Background(), dbtx, userID, itemID, qty))
		dbtx.AssertExpectations(t)
	})

	t.Run("someone else's line is not found", func(t *testing.T) {
		dbtx := new(MockDB)
		dbtx.On("Exec", mock.Anything, mock.Anything, mock.Anything).Return(updated(0), nil)
		err := NewCartRepository().UpdateQuantity(context.Background(), dbtx, userID, itemID, qty)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}

func TestCartRepository_UpsertDuplicateKeyIsClassified(t *testing.T) {
	dbtx := new(MockDB)
	dbtx.On("QueryRow", mock.Anything, upsertCartItemSQL, mock.Anything).
		Return(errRow{err: &pgconn.PgError{Code: "23503"}})

	_, err := NewCartRepository().Upsert(context.Background(), dbtx, cart.NewItem(uuid.New(), uuid.New()))
	assert.True(t, infra.IsKind(err, infra.KindForeignKeyViolated))
}

func TestClaimRepository_MarkRedeemed(t *testing.T) {
	at := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	id := uuid.New()

	dbtx := new(MockDB)
	dbtx.On("Exec", mock.Anything, mock.Anything, []any{id, at}).Return(updated(1), nil).Once()
	dbtx.On("Exec", mock.Anything, mock.Anything, []any{id, at}).Return(updated(0), nil).Once()

	repo := NewClaimRepository()
	ok, err := repo.MarkRedeemed(context.Background(), dbtx, id, at)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.MarkRedeemed(context.Background(), dbtx, id, at)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerificationRepository_AddIsIdempotent(t *testing.T) {
	dbtx := new(MockDB)
	dbtx.On("Exec", mock.Anything, mock.Anything, mock.Anything).Return(pgconn.NewCommandTag("INSERT 0 1"), nil).Once()
	dbtx.On("Exec", mock.Anything, mock.Anything, mock.Anything).Return(pgconn.NewCommandTag("INSERT 0 0"), nil).Once()

	repo := NewVerificationRepository()
	created, err := repo.Add(context.Background(), dbtx, uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.Add(context.Background(), dbtx, uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.False(t, created)
}

func TestClaimRepository_CreateReportsCodeCollision(t *testing.T) {
	c, err := claim.NewClaim(uuid.New(), uuid.New(), time.Now())
	require.NoError(t, err)

	dbtx := new(MockDB)
	dbtx.On("Exec", mock.Anything, createClaimSQL, mock.Anything).Return(pgconn.NewCommandTag("INSERT 0 0"), nil).Once()
	dbtx.On("Exec", mock.Anything, createClaimSQL, mock.Anything).Return(pgconn.NewCommandTag("INSERT 0 1"), nil).Once()

	repo := NewClaimRepository()
	created, err := repo.Create(context.Background(), dbtx, c)
	require.NoError(t, err)
	assert.False(t, created)

	created, err = repo.Create(context.Background(), dbtx, c)
	require.NoError(t, err)
	assert.True(t, created)
}
