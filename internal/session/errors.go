package session

import "errors"

// Guard errors. A transition that returns one of these leaves the state
// untouched.
var (
	ErrNoEligible      = errors.New("no eligible questions: every question has reached the streak threshold")
	ErrNotInProgress   = errors.New("no session in progress")
	ErrNoSession       = errors.New("no session to abandon")
	ErrNoAnswers       = errors.New("cannot finish a session without any answers")
	ErrNotConfirmed    = errors.New("finish not confirmed")
	ErrAtFirst         = errors.New("already at the first question")
	ErrIndexOutOfRange = errors.New("question index out of range")
)
