//go:build unit

package commands_test

import (
	"context"
	"testing"

	"local-deals/internal/domain/auth"
	"local-deals/internal/domain/user"
	"local-deals/internal/infra"
	"local-deals/internal/pkg/clock"
	"local-deals/internal/pkg/errs"
	"local-deals/internal/pkg/password"
	"local-deals/internal/usecase/commands"
	"local-deals/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// userStoreView reads users back out of the shared memStore.
type userStoreView struct {
	s      *memStore
	hashes map[uuid.UUID]string
}

func (v *userStoreView) FindByID(_ context.Context, id uuid.UUID) (*queries.UserView, error) {
	u, ok := v.s.users[id]
	if !ok {
		return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return &queries.UserView{ID: u.ID, Email: u.Email, FullName: u.FullName, Role: u.Role, IsActive: u.IsActive}, nil
}

func (v *userStoreView) FindByEmail(ctx context.Context, email string) (*queries.UserView, string, error) {
	for _, u := range v.s.users {
		if u.Email == email {
			view, _ := v.FindByID(ctx, u.ID)
			return view, v.hashes[u.ID], nil
		}
	}
	return nil, "", infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
}

// recordingHasher remembers hashes by email so the read side can return them.
type recordingHasher struct {
	*password.Hasher
	last string
}

func (h *recordingHasher) Hash(plain string) (string, error) {
	hashed, err := h.Hasher.Hash(plain)
	h.last = hashed
	return hashed, err
}

func TestAuthCommands(t *testing.T) {
	ctx := context.Background()
	s := newMemStore(testNow)
	store := &userStoreView{s: s, hashes: map[uuid.UUID]string{}}
	hasher := &recordingHasher{Hasher: password.NewHasher(bcrypt.MinCost)}
	tokens := newTokenService()
	cmd := commands.NewAuthCommands(&fakeUoW{s}, store, tokens, hasher, clock.NewMockClock(testNow))

	reg, err := auth.NewRegistration("Shopper@Example.com", "secret123", "Sam Shopper", "")
	require.NoError(t, err)

	var registered *queries.UserView
	t.Run("ユーザー登録", func(t *testing.T) {
		registered, err = cmd.Register(ctx, reg)
		require.NoError(t, err)
		store.hashes[registered.ID] = hasher.last
		assert.Equal(t, "shopper@example.com", registered.Email)
		assert.Equal(t, user.RoleCustomer.String(), registered.Role)
	})

	t.Run("重複メールアドレスは409", func(t *testing.T) {
		_, err := cmd.Register(ctx, reg)
		assert.ErrorIs(t, err, commands.ErrEmailTaken)
		assert.True(t, errs.Is(err, errs.ErrConflict))
	})

	t.Run("ログイン成功", func(t *testing.T) {
		creds, err := auth.NewCredentials("shopper@example.com", "secret123")
		require.NoError(t, err)

		res, err := cmd.Login(ctx, creds)
		require.NoError(t, err)
		assert.Equal(t, registered.ID, res.User.ID)

		claims, err := tokens.ValidateToken(res.TokenPair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, registered.ID, claims.UserID)
	})

	t.Run("パスワード不一致と未登録は同じエラー", func(t *testing.T) {
		wrong, _ := auth.NewCredentials("shopper@example.com", "wrong-password")
		_, err := cmd.Login(ctx, wrong)
		assert.ErrorIs(t, err, commands.ErrInvalidCredentials)

		unknown, _ := auth.NewCredentials("nobody@example.com", "secret123")
		_, err = cmd.Login(ctx, unknown)
		assert.ErrorIs(t, err, commands.ErrInvalidCredentials)
		assert.True(t, errs.Is(err, errs.ErrUnauthenticated))
	})

	t.Run("無効化されたユーザー", func(t *testing.T) {
		s.users[registered.ID].IsActive = false
		defer func() { s.users[registered.ID].IsActive = true }()

		creds, _ := auth.NewCredentials("shopper@example.com", "secret123")
		_, err := cmd.Login(ctx, creds)
		assert.ErrorIs(t, err, commands.ErrUserInactive)
	})

	t.Run("リフレッシュは最新のロールを使う", func(t *testing.T) {
		refresh, err := tokens.GenerateRefreshToken(registered.ID, user.RoleCustomer)
		require.NoError(t, err)
		s.users[registered.ID].Role = user.RoleBusiness.String()

		res, err := cmd.Refresh(ctx, refresh)
		require.NoError(t, err)
		claims, err := tokens.ValidateToken(res.TokenPair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, user.RoleBusiness.String(), claims.Role)
	})

	t.Run("アクセストークンではリフレッシュできない", func(t *testing.T) {
		access, err := tokens.GenerateAccessToken(registered.ID, user.RoleCustomer)
		require.NoError(t, err)

		_, err = cmd.Refresh(ctx, access)
		assert.ErrorIs(t, err, commands.ErrInvalidRefreshToken)
	})
}
