package readstore

import (
	"context"

	"local-deals/internal/infra"
	"local-deals/internal/infra/db"
	"local-deals/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(db db.DBTX) *UserReadStore {
	return &UserReadStore{db: db}
}

const userViewColumns = `id, email, full_name, role, points, is_active, created_at`

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.UserView, error) {
	var u queries.UserView
	err := r.db.QueryRow(ctx, `SELECT `+userViewColumns+` FROM users WHERE id = $1`, id).
		Scan(&u.ID, &u.Email, &u.FullName, &u.Role, &u.Points, &u.IsActive, &u.CreatedAt)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return &u, nil
}

func (r *UserReadStore) FindByEmail(ctx context.Context, email string) (*queries.UserView, string, error) {
	var (
		u    queries.UserView
		hash string
	)
	err := r.db.QueryRow(ctx, `SELECT `+userViewColumns+`, password_hash FROM users WHERE email = $1`, email).
		Scan(&u.ID, &u.Email, &u.FullName, &u.Role, &u.Points, &u.IsActive, &u.CreatedAt, &hash)
	if err != nil {
		return nil, "", infra.WrapRepoErr("failed to find user by email", err)
	}
	return &u, hash, nil
}
