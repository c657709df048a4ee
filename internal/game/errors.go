package game

import "errors"

var (
	// ErrInvalidLength is returned when a secret or guess is not WordLength letters long.
	ErrInvalidLength = errors.New("invalid length")

	// ErrSessionFinished is returned when a guess is submitted to a won or lost session.
	ErrSessionFinished = errors.New("session finished")
)
