//go:build e2e

package auth_test

import (
	"net/http"
	"testing"

	"local-deals/internal/domain/user"
	"local-deals/internal/handler/dto/request"
	resdto "local-deals/internal/handler/dto/response"
	"local-deals/tests/common/authtest"
	"local-deals/tests/common/dbtest"
	"local-deals/tests/common/httptest"
	"local-deals/tests/e2e"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	registerURL = "/api/auth/register"
	loginURL    = "/api/auth/login"
	logoutURL   = "/api/auth/logout"
	refreshURL  = "/api/auth/refresh"
	meURL       = "/api/auth/me"
)

type authSuite struct {
	e2e.SharedSuite
	jwt *authtest.JWTHelper
}

func TestAuthSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(authSuite))
}

func (s *authSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwt = authtest.NewJWTHelper(s.Config.JWT)
}

func (s *authSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()

	dbtest.CreateTestUser(s.T(), s.DB, "shopper@example.com", user.RoleCustomer.String())
	dbtest.CreateTestUser(s.T(), s.DB, "owner@example.com", user.RoleBusiness.String())
	dbtest.CreateTestUser(s.T(), s.DB, "inactive@example.com", user.RoleCustomer.String())

	_, err := s.DB.Exec(s.T().Context(), "UPDATE users SET is_active = false WHERE email = 'inactive@example.com'")
	require.NoError(s.T(), err)
}

func (s *authSuite) TestRegister() {
	tests := []struct {
		name           string
		body           request.RegisterRequest
		expectedStatus int
	}{
		{
			name:           "新規登録",
			body:           request.RegisterRequest{Email: "new@example.com", Password: "password123", Name: "New Shopper"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "ビジネスとして登録",
			body:           request.RegisterRequest{Email: "biz@example.com", Password: "password123", Name: "Biz", Role: "business"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "登録済みのメールアドレス",
			body:           request.RegisterRequest{Email: "shopper@example.com", Password: "password123", Name: "Dup"},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "管理者ロールは選べない",
			body:           request.RegisterRequest{Email: "root@example.com", Password: "password123", Name: "Root", Role: "admin"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "短すぎるパスワード",
			body:           request.RegisterRequest{Email: "short@example.com", Password: "123", Name: "Short"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, registerURL, tt.body, "")
			require.Equal(s.T(), tt.expectedStatus, w.Code, w.Body.String())
		})
	}
}

func (s *authSuite) TestLogin() {
	tests := []struct {
		name           string
		email          string
		password       string
		expectedStatus int
	}{
		{name: "正常なログイン", email: "shopper@example.com", password: dbtest.DefaultPassword, expectedStatus: http.StatusOK},
		{name: "存在しないユーザー", email: "nobody@example.com", password: dbtest.DefaultPassword, expectedStatus: http.StatusUnauthorized},
		{name: "間違ったパスワード", email: "shopper@example.com", password: "wrongpassword", expectedStatus: http.StatusUnauthorized},
		{name: "非アクティブユーザー", email: "inactive@example.com", password: dbtest.DefaultPassword, expectedStatus: http.StatusUnauthorized},
		{name: "空のメールアドレス", email: "", password: dbtest.DefaultPassword, expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()

			w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL,
				request.LoginRequest{Email: tt.email, Password: tt.password}, "")
			require.Equal(t, tt.expectedStatus, w.Code, w.Body.String())

			if tt.expectedStatus == http.StatusOK {
				var res resdto.LoginResponse
				require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))
				require.NotEmpty(t, res.Token)
				require.NotEmpty(t, res.RefreshToken)
				require.Equal(t, tt.email, res.User.Email)
				require.NotNil(t, httptest.ExtractCookie(w, "refresh_token"))

				var lastLogin any
				err := s.DB.QueryRow(t.Context(), "SELECT last_login FROM users WHERE email = $1", tt.email).Scan(&lastLogin)
				require.NoError(t, err)
				require.NotNil(t, lastLogin, "last_loginが更新されていない")
			}
		})
	}
}

func (s *authSuite) TestRefresh() {
	s.Run("ボディのリフレッシュトークンで更新", func() {
		t := s.T()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL,
			request.LoginRequest{Email: "shopper@example.com", Password: dbtest.DefaultPassword}, "")
		require.Equal(t, http.StatusOK, w.Code)
		var login resdto.LoginResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &login))

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, refreshURL,
			request.RefreshRequest{RefreshToken: login.RefreshToken}, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	s.Run("アクセストークンはリフレッシュに使えない", func() {
		t := s.T()
		token := authtest.LoginUser(t, s.Router, "shopper@example.com", dbtest.DefaultPassword)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, refreshURL,
			request.RefreshRequest{RefreshToken: token}, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	s.Run("トークンなし", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, refreshURL, request.RefreshRequest{}, "")
		require.Equal(s.T(), http.StatusUnauthorized, w.Code)
	})
}

func (s *authSuite) TestMe() {
	s.Run("ログイン中のユーザー情報", func() {
		t := s.T()
		token := authtest.LoginUser(t, s.Router, "owner@example.com", dbtest.DefaultPassword)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, token)
		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		require.Contains(t, body, "owner@example.com")
		require.Contains(t, body, "business")
		require.NotContains(t, body, "password")
	})

	s.Run("期限切れトークンの拒否", func() {
		t := s.T()
		userID := dbtest.CreateTestUser(t, s.DB, "expiry@example.com", user.RoleCustomer.String())
		expired := s.jwt.CreateExpiredToken(t, userID, user.RoleCustomer)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, expired)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	s.Run("トークンなし", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, meURL, nil, "")
		require.Equal(s.T(), http.StatusUnauthorized, w.Code)
	})
}

func (s *authSuite) TestLogout() {
	s.Run("ログアウトでクッキーが消える", func() {
		t := s.T()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL,
			request.LoginRequest{Email: "shopper@example.com", Password: dbtest.DefaultPassword}, "")
		require.Equal(t, http.StatusOK, w.Code)

		authtest.LogoutUser(t, s.Router, httptest.ExtractCookies(w))
	})
}
