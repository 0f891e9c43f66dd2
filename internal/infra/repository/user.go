package repository

import (
	"context"
	"time"

	"local-deals/internal/domain/user"
	"local-deals/internal/infra"
	"local-deals/internal/infra/db"
	"local-deals/internal/usecase/shared"

	"github.com/google/uuid"
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

const createUserSQL = `
INSERT INTO users (id, email, full_name, password_hash, role, is_active)
VALUES ($1, $2, $3, $4, $5, $6)`

func (r *UserRepository) Create(ctx context.Context, tx db.DBTX, u *user.User) error {
	_, err := tx.Exec(ctx, createUserSQL,
		u.ID(), u.Email().Value(), u.FullName(), u.PasswordHash(), u.Role().String(), u.IsActive())
	if err != nil {
		return infra.WrapRepoErr("failed to create user", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*shared.UserSnapshot, error) {
	var s shared.UserSnapshot
	err := tx.QueryRow(ctx,
		`SELECT id, email, full_name, role, points, is_active FROM users WHERE id = $1`, id).
		Scan(&s.ID, &s.Email, &s.FullName, &s.Role, &s.Points, &s.IsActive)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return &s, nil
}

func (r *UserRepository) UpdateRole(ctx context.Context, tx db.DBTX, id uuid.UUID, role user.Role) error {
	tag, err := tx.Exec(ctx, `UPDATE users SET role = $2, updated_at = now() WHERE id = $1`, id, role.String())
	if err != nil {
		return infra.WrapRepoErr("failed to update user role", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, tx db.DBTX, id uuid.UUID, at time.Time) error {
	_, err := tx.Exec(ctx, `UPDATE users SET last_login = $2 WHERE id = $1`, id, at)
	if err != nil {
		return infra.WrapRepoErr("failed to update user last login", err)
	}
	return nil
}
