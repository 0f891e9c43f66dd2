package storefront

import (
	"context"

	"local-deals/internal/client/apiclient"
	"local-deals/internal/client/querycache"
	"local-deals/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	errEmptyCode    = errs.New("code is required")
	errScoreRange   = errs.New("score must be between 1 and 5")
	errNoBusinessID = errs.New("business id is required")

	errCursorRepeated = errs.New("server repeated a page cursor")
)

// ListRatings returns every rating of a business, newest first. The server
// pages its answers, so this walks the cursors and caches the whole list.
func (s *Storefront) ListRatings(ctx context.Context, businessID uuid.UUID) ([]apiclient.Rating, error) {
	return fetch(ctx, s, ratingsKey(businessID), func(ctx context.Context) ([]apiclient.Rating, error) {
		return s.allRatings(ctx, businessID)
	})
}

func (s *Storefront) allRatings(ctx context.Context, businessID uuid.UUID) ([]apiclient.Rating, error) {
	all := []apiclient.Rating{}
	seen := map[string]bool{}
	cursor := ""
	for {
		page, err := s.api.Ratings(ctx, businessID, cursor)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Ratings...)
		if page.NextCursor == "" {
			return all, nil
		}
		if seen[page.NextCursor] {
			return nil, errs.Wrapf(errCursorRepeated, "ratings of %s", businessID)
		}
		seen[page.NextCursor] = true
		cursor = page.NextCursor
	}
}

func (s *Storefront) RatingSummary(ctx context.Context, businessID uuid.UUID) (*apiclient.RatingSummary, error) {
	return fetch(ctx, s, ratingSummaryKey(businessID), func(ctx context.Context) (*apiclient.RatingSummary, error) {
		return s.api.RatingSummary(ctx, businessID)
	})
}

// SubmitRating checks the score before anything is sent.
func (s *Storefront) SubmitRating(ctx context.Context, businessID uuid.UUID, score int, comment string) error {
	if score < 1 || score > 5 {
		err := &apiclient.ValidationError{Err: errScoreRange}
		s.notifier.Error(ctx, errScoreRange.Error())
		return err
	}
	if businessID == uuid.Nil {
		s.notifier.Error(ctx, errNoBusinessID.Error())
		return &apiclient.ValidationError{Err: errNoBusinessID}
	}
	if !s.session.IsAuthenticated() {
		s.notifier.Error(ctx, "Please sign in to rate businesses")
		return apiclient.ErrUnauthenticated
	}
	return s.mutate(ctx, mutation{
		success: "Thanks for your rating",
		inv:     invalidation{keys: []querycache.Key{ratingsKey(businessID), ratingSummaryKey(businessID)}},
	}, func(ctx context.Context) error {
		_, err := s.api.SubmitRating(ctx, apiclient.RatingRequest{
			BusinessID: businessID,
			Score:      score,
			Comment:    comment,
		})
		return err
	})
}
