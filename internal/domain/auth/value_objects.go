package auth

import (
	"errors"
	"strings"

	"local-deals/internal/domain/user"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactiveUser       = errors.New("account is disabled")
)

type Credentials struct {
	email    user.Email
	password user.Password
}

func NewCredentials(emailStr, passwordStr string) (Credentials, error) {
	email, err := user.NewEmail(emailStr)
	if err != nil {
		return Credentials{}, err
	}

	password, err := user.NewPassword(passwordStr)
	if err != nil {
		return Credentials{}, err
	}

	return Credentials{
		email:    email,
		password: password,
	}, nil
}

func (c Credentials) Email() user.Email {
	return c.email
}

func (c Credentials) Password() user.Password {
	return c.password
}

type Registration struct {
	Credentials
	fullName string
	role     user.Role
}

func NewRegistration(emailStr, passwordStr, fullName, roleStr string) (Registration, error) {
	creds, err := NewCredentials(emailStr, passwordStr)
	if err != nil {
		return Registration{}, err
	}
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return Registration{}, user.ErrEmptyFullName
	}
	role, err := user.NewSignupRole(roleStr)
	if err != nil {
		return Registration{}, err
	}
	return Registration{Credentials: creds, fullName: fullName, role: role}, nil
}

func (r Registration) FullName() string { return r.fullName }
func (r Registration) Role() user.Role  { return r.role }
