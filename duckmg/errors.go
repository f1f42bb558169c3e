package duckmg

import "errors"

var (
	// ErrInvalidSquare is returned for square indices outside [0,63].
	ErrInvalidSquare = errors.New("invalid square")
	// ErrUnknownToken is returned when a field name matches no token.
	ErrUnknownToken = errors.New("unknown token")
	// ErrOverlap reports two token masks claiming the same square.
	ErrOverlap = errors.New("overlapping bitboards")
	// ErrNotSingleton reports a king or duck mask with more than one bit set.
	ErrNotSingleton = errors.New("more than one bit set")
)
