package rating

import (
	"time"

	"github.com/google/uuid"
)

type Rating struct {
	id         uuid.UUID
	userID     uuid.UUID
	businessID uuid.UUID
	score      Score
	comment    Comment
	createdAt  time.Time
}

func NewRating(userID, businessID uuid.UUID, scoreValue int, commentText string, now time.Time) (*Rating, error) {
	score, err := NewScore(scoreValue)
	if err != nil {
		return nil, err
	}

	comment, err := NewComment(commentText)
	if err != nil {
		return nil, err
	}

	return &Rating{
		id:         uuid.New(),
		userID:     userID,
		businessID: businessID,
		score:      score,
		comment:    comment,
		createdAt:  now,
	}, nil
}

func (r *Rating) ID() uuid.UUID         { return r.id }
func (r *Rating) UserID() uuid.UUID     { return r.userID }
func (r *Rating) BusinessID() uuid.UUID { return r.businessID }
func (r *Rating) Score() Score          { return r.score }
func (r *Rating) Comment() Comment      { return r.comment }
func (r *Rating) CreatedAt() time.Time  { return r.createdAt }

// Summary aggregates a business's ratings; Histogram[i] counts scores of i+1.
type Summary struct {
	Count     int
	Average   float64
	Histogram [5]int
}

func Summarize(scores []int) Summary {
	var s Summary
	total := 0
	for _, v := range scores {
		if v < 1 || v > 5 {
			continue
		}
		s.Histogram[v-1]++
		s.Count++
		total += v
	}
	if s.Count > 0 {
		s.Average = float64(total) / float64(s.Count)
	}
	return s
}
