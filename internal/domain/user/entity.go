package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type User struct {
	id           uuid.UUID
	email        Email
	fullName     string
	passwordHash string
	role         Role
	points       int
	lastLogin    *time.Time
	isActive     bool
	createdAt    time.Time
	updatedAt    time.Time
}

func NewUser(email Email, fullName, passwordHash string, role Role) *User {
	return &User{
		id:           uuid.New(),
		email:        email,
		fullName:     strings.TrimSpace(fullName),
		passwordHash: passwordHash,
		role:         role,
		isActive:     true,
	}
}

// Promote upgrades a customer who registers a business. Admins keep their role.
func (u *User) Promote(to Role) {
	if u.role.AtLeast(to) {
		return
	}
	u.role = to
}

func (u *User) ID() uuid.UUID         { return u.id }
func (u *User) Email() Email          { return u.email }
func (u *User) FullName() string      { return u.fullName }
func (u *User) PasswordHash() string  { return u.passwordHash }
func (u *User) Role() Role            { return u.role }
func (u *User) Points() int           { return u.points }
func (u *User) LastLogin() *time.Time { return u.lastLogin }
func (u *User) IsActive() bool        { return u.isActive }
func (u *User) CreatedAt() time.Time  { return u.createdAt }
func (u *User) UpdatedAt() time.Time  { return u.updatedAt }
