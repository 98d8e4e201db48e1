package domain

import "errors"

var (
	ErrInstanceNotFound = errors.New("instance not found")
	ErrGuildNotTracked  = errors.New("guild not tracked")
	ErrGuildNotSelected = errors.New("guild not selected")
	ErrConnectTimeout   = errors.New("gateway connect timed out")
	ErrSessionClosed    = errors.New("session closed")
)

// ConnectError is a transport-level failure during a connect attempt. It is
// terminal for that attempt; no retry happens at this layer.
type ConnectError struct {
	Err error
}

func (e *ConnectError) Error() string {
	return "gateway connect failed: " + e.Err.Error()
}

func (e *ConnectError) Unwrap() error {
	return e.Err
}
