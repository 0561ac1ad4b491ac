package errors

import "errors"

var (
	ErrDuplicateMatch   = errors.New("match already settled")
	ErrPlayerResolution = errors.New("player could not be resolved")
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("not found")
	ErrInvalidMatch     = errors.New("invalid match payload")
	ErrUnknownHero      = errors.New("unknown hero")
	ErrInvalidParam     = errors.New("invalid query parameter")
)
