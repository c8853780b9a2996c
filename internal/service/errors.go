package service

import "errors"

var (
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNotParticipant is returned when the acting user is neither the
	// owner nor the finder of a match.
	ErrNotParticipant = errors.New("not a participant in this match")
	// ErrInvalidTransition is returned when a match is not in a status that
	// allows the requested action.
	ErrInvalidTransition = errors.New("action not allowed in current match status")
	// ErrNoQuestions is returned when answers arrive before questions were issued.
	ErrNoQuestions = errors.New("verification questions have not been generated")
	// ErrAttemptsExhausted is returned when a match has used all verification attempts.
	ErrAttemptsExhausted = errors.New("verification attempts exhausted")
)
