package request

import "github.com/google/uuid"

type CreateRatingRequest struct {
	BusinessID uuid.UUID `json:"business_id" binding:"required"`
	Score      int       `json:"score" binding:"required,min=1,max=5"`
	Comment    string    `json:"comment" binding:"max=1000"`
}

type ListRatingsQuery struct {
	Cursor string `form:"cursor"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
}
