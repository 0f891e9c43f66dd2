package rating

import "errors"

var (
	ErrInvalidScore   = errors.New("rating must be between 1 and 5")
	ErrCommentTooLong = errors.New("comment exceeds maximum length")
	ErrSelfRating     = errors.New("business owners cannot rate their own business")
)
