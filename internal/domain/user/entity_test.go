//go:build unit

package user_test

import (
	"testing"

	"local-deals/internal/domain/user"
	"local-deals/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cmpOpts = []cmp.Option{
	cmpopts.IgnoreUnexported(user.User{}),
	cmpopts.EquateEmpty(),
}

type testCase struct {
	name   string
	mutate func(*builder.UserBuilder)
	errIs  error
}

func TestUser(t *testing.T) {
	t.Run("基本成功ケース", func(t *testing.T) {
		actual, err := builder.NewUserBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		email, _ := user.NewEmail("shopper@example.com")
		expected := user.NewUser(email, "Sam Shopper", "hashed_password", user.RoleCustomer)

		if diff := cmp.Diff(expected, actual, cmpOpts...); diff != "" {
			t.Errorf("User mismatch (-want +got):\n%s", diff)
		}

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.True(t, actual.IsActive())
		assert.Zero(t, actual.Points())
		assert.Nil(t, actual.LastLogin())
	})

	t.Run("メールアドレス検証", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "有効なメールアドレスOK",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("valid@example.com") },
			},
			{
				name:   "大文字混在OK",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("  Mixed@Example.COM ") },
			},
			{
				name:   "空のメールアドレスNG",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("") },
				errIs:  user.ErrInvalidEmail,
			},
			{
				name:   "@なしNG",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("invalidemail.com") },
				errIs:  user.ErrInvalidEmail,
			},
		})
	})

	t.Run("ロール検証", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "customer ロールOK",
				mutate: func(b *builder.UserBuilder) { b.WithRole("customer") },
			},
			{
				name:   "business ロールOK",
				mutate: func(b *builder.UserBuilder) { b.WithRole("business") },
			},
			{
				name:   "admin ロールOK",
				mutate: func(b *builder.UserBuilder) { b.WithRole("admin") },
			},
			{
				name:   "無効なロールNG",
				mutate: func(b *builder.UserBuilder) { b.WithRole("operator") },
				errIs:  user.ErrInvalidRole,
			},
		})
	})

	t.Run("email is normalised to lower case", func(t *testing.T) {
		actual, err := builder.NewUserBuilder().WithEmail(" Mixed@Example.COM ").BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, "mixed@example.com", actual.Email().Value())
	})

	t.Run("promotion never demotes", func(t *testing.T) {
		customer, err := builder.NewUserBuilder().BuildDomain()
		require.NoError(t, err)
		customer.Promote(user.RoleBusiness)
		assert.Equal(t, user.RoleBusiness, customer.Role())

		admin, err := builder.NewUserBuilder().WithRole("admin").BuildDomain()
		require.NoError(t, err)
		admin.Promote(user.RoleBusiness)
		assert.Equal(t, user.RoleAdmin, admin.Role())
	})
}

func TestNewSignupRole(t *testing.T) {
	role, err := user.NewSignupRole("")
	require.NoError(t, err)
	assert.Equal(t, user.RoleCustomer, role)

	role, err = user.NewSignupRole("business")
	require.NoError(t, err)
	assert.Equal(t, user.RoleBusiness, role)

	_, err = user.NewSignupRole("admin")
	assert.ErrorIs(t, err, user.ErrInvalidRole)
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewUserBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NotNil(t, actual)
				require.NoError(t, err)
			} else {
				require.Nil(t, actual)
				require.Error(t, err)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
