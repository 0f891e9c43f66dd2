//go:build unit || e2e

package builder

import (
	"time"

	"local-deals/internal/domain/rating"
	reqdto "local-deals/internal/handler/dto/request"

	"github.com/google/uuid"
)

type RatingBuilder struct {
	UserID     uuid.UUID
	BusinessID uuid.UUID
	Score      int
	Comment    string
	CreatedAt  time.Time
}

func NewRatingBuilder() *RatingBuilder {
	return &RatingBuilder{
		UserID:     uuid.New(),
		BusinessID: uuid.New(),
		Score:      5,
		Comment:    "Friendly staff and the deal was honoured",
		CreatedAt:  time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC),
	}
}

func (r *RatingBuilder) With(mutate func(*RatingBuilder)) *RatingBuilder {
	mutate(r)
	return r
}

func (r *RatingBuilder) BuildDomain() (*rating.Rating, error) {
	return rating.NewRating(r.UserID, r.BusinessID, r.Score, r.Comment, r.CreatedAt)
}

func (r *RatingBuilder) BuildCreateRequestDTO() reqdto.CreateRatingRequest {
	return reqdto.CreateRatingRequest{
		BusinessID: r.BusinessID,
		Score:      r.Score,
		Comment:    r.Comment,
	}
}

func (r *RatingBuilder) WithScore(score int) *RatingBuilder {
	r.Score = score
	return r
}

func (r *RatingBuilder) WithComment(comment string) *RatingBuilder {
	r.Comment = comment
	return r
}

func (r *RatingBuilder) WithBusinessID(id uuid.UUID) *RatingBuilder {
	r.BusinessID = id
	return r
}
