package request

import (
	"local-deals/internal/domain/auth"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (r *LoginRequest) ToDomain() (auth.Credentials, error) {
	return auth.NewCredentials(r.Email, r.Password)
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required,max=200"`
	Role     string `json:"role" binding:"omitempty,oneof=customer business"`
}

func (r *RegisterRequest) ToDomain() (auth.Registration, error) {
	return auth.NewRegistration(r.Email, r.Password, r.Name, r.Role)
}

// RefreshRequest falls back to the refresh cookie when the body is empty.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}
