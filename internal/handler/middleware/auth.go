package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"local-deals/internal/domain/user"
	"local-deals/internal/handler/httperr"
	"local-deals/internal/pkg/cookie"
	"local-deals/internal/pkg/errs"
	"local-deals/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const (
	ctxUserIDKey   = "user_id"
	ctxUserRoleKey = "user_role"
	ctxClaimsKey   = "jwt_claims"
)

var (
	errTokenRequired      = errs.Mark(errs.New("access token required"), errs.ErrUnauthenticated)
	errInsufficientRole   = errs.Mark(errs.New("insufficient permissions"), errs.ErrForbidden)
	errMissingAuthContext = errs.New("role check used without RequireAuth")
)

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

// The cookie wins over the Authorization header so browser sessions keep working
// when a stale bearer token is configured.
func extractToken(c *gin.Context) string {
	if token := cookie.GetAccessToken(c); token != "" {
		return token
	}
	authHeader := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, errTokenRequired, "Access token required", nil)
			return
		}

		p, err := m.tokenValidator.ValidateAccessToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid or expired token", nil)
			return
		}

		setPrincipal(c, p)
		c.Next()
	}
}

// RequireRole must run after RequireAuth.
func (m *AuthMiddleware) RequireRole(minRole user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRole(c)
		if !ok {
			httperr.AbortWithError(c, http.StatusInternalServerError, errMissingAuthContext, "Internal server error", nil)
			return
		}
		if !role.AtLeast(minRole) {
			httperr.AbortWithError(c, http.StatusForbidden, errInsufficientRole, "Insufficient permissions", nil)
			return
		}
		c.Next()
	}
}

// OptionalAuth identifies the caller when a valid token is present and never aborts.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := extractToken(c); token != "" {
			if p, err := m.tokenValidator.ValidateAccessToken(token); err == nil {
				setPrincipal(c, p)
			}
		}
		c.Next()
	}
}

func setPrincipal(c *gin.Context, p usecase.Principal) {
	c.Set(ctxUserIDKey, p.UserID)
	c.Set(ctxUserRoleKey, p.Role)
	c.Set(ctxClaimsKey, map[string]any{
		"user_id": p.UserID.String(),
		"role":    p.Role.String(),
	})
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(ctxUserIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := userID.(uuid.UUID)
	return id, ok
}

func GetUserRole(c *gin.Context) (user.Role, bool) {
	userRole, exists := c.Get(ctxUserRoleKey)
	if !exists {
		return "", false
	}

	role, ok := userRole.(user.Role)
	return role, ok
}

// GetPrincipal returns both halves of the identity set by RequireAuth.
func GetPrincipal(c *gin.Context) (usecase.Principal, bool) {
	id, ok := GetUserID(c)
	if !ok {
		return usecase.Principal{}, false
	}
	role, ok := GetUserRole(c)
	if !ok {
		return usecase.Principal{}, false
	}
	return usecase.Principal{UserID: id, Role: role}, true
}
