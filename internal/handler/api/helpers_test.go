//go:build unit

package api_test

import (
	"time"

	"local-deals/internal/domain/user"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var fixedNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

// asUser stands in for RequireAuth: any request carrying an Authorization
// header is treated as coming from the given principal.
func asUser(id uuid.UUID, role user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			c.Set("user_id", id)
			c.Set("user_role", role)
		}
		c.Next()
	}
}
