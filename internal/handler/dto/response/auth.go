package response

import (
	"time"

	"local-deals/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	Points    int       `json:"points"`
	CreatedAt time.Time `json:"created_at"`
}

func FromUserView(v *queries.UserView) *UserResponse {
	var res UserResponse
	_ = copier.Copy(&res, v)
	return &res
}

// LoginResponse is also returned by refresh and by business registration,
// where the role change requires a new token.
type LoginResponse struct {
	Token        string        `json:"token"`
	RefreshToken string        `json:"refresh_token"`
	User         *UserResponse `json:"user"`
}
