package repository

import (
	"context"

	"local-deals/internal/domain/rating"
	"local-deals/internal/infra"
	"local-deals/internal/infra/db"
	"local-deals/internal/pkg/ptr"
)

type RatingRepository struct{}

func NewRatingRepository() *RatingRepository {
	return &RatingRepository{}
}

func (r *RatingRepository) Create(ctx context.Context, tx db.DBTX, rt *rating.Rating) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO ratings (id, user_id, business_id, score, comment, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		rt.ID(), rt.UserID(), rt.BusinessID(), rt.Score().Value(), ptr.NonEmpty(rt.Comment().String()), rt.CreatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to create rating", err)
	}
	return nil
}
