//go:build unit || e2e

package builder

import (
	reqdto "local-deals/internal/handler/dto/request"
)

type AuthBuilder struct {
	Email    string
	Password string
	Name     string
	Role     string
}

func NewAuthBuilder() *AuthBuilder {
	return &AuthBuilder{
		Email:    "shopper@example.com",
		Password: "password123",
		Name:     "Sam Shopper",
	}
}

func (a *AuthBuilder) WithEmail(email string) *AuthBuilder {
	a.Email = email
	return a
}

func (a *AuthBuilder) WithRole(role string) *AuthBuilder {
	a.Role = role
	return a
}

func (a *AuthBuilder) BuildDTO() reqdto.LoginRequest {
	return reqdto.LoginRequest{
		Email:    a.Email,
		Password: a.Password,
	}
}

func (a *AuthBuilder) BuildRegisterDTO() reqdto.RegisterRequest {
	return reqdto.RegisterRequest{
		Email:    a.Email,
		Password: a.Password,
		Name:     a.Name,
		Role:     a.Role,
	}
}
