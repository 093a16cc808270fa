package session

import (
	sess "github.com/abhisek/quizdrill/internal/session"
)

// sessionStartedMsg is sent when the engine has built the session.
type sessionStartedMsg struct {
	State *sess.State
	Err   error
}

// graceElapsedMsg is sent when the last question's feedback has been shown
// long enough to ask about finishing.
type graceElapsedMsg struct {
	SessionID string
}
