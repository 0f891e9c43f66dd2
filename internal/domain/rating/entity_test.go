//go:build unit

package rating_test

import (
	"strings"
	"testing"
	"time"

	"local-deals/internal/domain/rating"
	"local-deals/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.RatingBuilder)
	errIs  error
}

func TestRating(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewRatingBuilder().BuildDomain()
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, 5, actual.Score().Value())
		assert.Equal(t, "Friendly staff and the deal was honoured", actual.Comment().String())
	})

	t.Run("score validation", func(t *testing.T) {
		runCases(t, []testCase{
			{name: "zero", mutate: func(b *builder.RatingBuilder) { b.WithScore(0) }, errIs: rating.ErrInvalidScore},
			{name: "minimum", mutate: func(b *builder.RatingBuilder) { b.WithScore(1) }},
			{name: "maximum", mutate: func(b *builder.RatingBuilder) { b.WithScore(5) }},
			{name: "above maximum", mutate: func(b *builder.RatingBuilder) { b.WithScore(6) }, errIs: rating.ErrInvalidScore},
		})
	})

	t.Run("comment validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "empty comment is allowed",
				mutate: func(b *builder.RatingBuilder) { b.WithComment("   ") },
			},
			{
				name:   "maximum length",
				mutate: func(b *builder.RatingBuilder) { b.WithComment(strings.Repeat("a", rating.MaxCommentLength)) },
			},
			{
				name:   "too long",
				mutate: func(b *builder.RatingBuilder) { b.WithComment(strings.Repeat("a", rating.MaxCommentLength+1)) },
				errIs:  rating.ErrCommentTooLong,
			},
		})
	})

	t.Run("comment trimming", func(t *testing.T) {
		r, err := rating.NewRating(uuid.New(), uuid.New(), 4, "  Trimmed comment  ", time.Now())
		require.NoError(t, err)
		assert.Equal(t, "Trimmed comment", r.Comment().String())
	})
}

func TestSummarize(t *testing.T) {
	s := rating.Summarize([]int{5, 5, 4, 1, 9})
	assert.Equal(t, 4, s.Count)
	assert.InDelta(t, 3.75, s.Average, 1e-9)
	assert.Equal(t, [5]int{1, 0, 0, 1, 2}, s.Histogram)

	assert.Equal(t, rating.Summary{}, rating.Summarize(nil))
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewRatingBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NotNil(t, actual)
				require.NoError(t, err)
			} else {
				require.Nil(t, actual)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
