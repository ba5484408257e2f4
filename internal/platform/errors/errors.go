package apperrors

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")
	ErrNoProfile       = errors.New("no saved profile")
	ErrCorruptProfile  = errors.New("saved profile is corrupt")
	ErrNoTrackSelected = errors.New("no track selected")
	ErrGameLocked      = errors.New("game is locked")
	ErrUnknownGame     = errors.New("unknown game")
	ErrNoActiveSession = errors.New("no active session")
	ErrSessionFinished = errors.New("session already finished")
)
