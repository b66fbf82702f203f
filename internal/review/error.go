package review

import "errors"

var (
	ErrReviewNotFound = errors.New("review not found")
	ErrInvalidRating  = errors.New("rating must be between 1 and 5")
	ErrUnauthorized   = errors.New("unauthorized")
)
