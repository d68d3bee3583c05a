package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoSession is returned when Run is called without a session.
	ErrNoSession = errors.New("tui: session is required")
)

// ErrTooManyAttempts is returned when an answer keeps being rejected past
// the configured attempt limit.
var ErrTooManyAttempts = errors.New("tui: too many invalid answers")
