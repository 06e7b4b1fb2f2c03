package apperror

import "errors"

var (
	ErrGameFinished    = errors.New("game is already finished")
	ErrInvalidLocation = errors.New("location isn't valid")
	ErrFilledSpace     = errors.New("space is already filled")
	ErrWrongBoard      = errors.New("move must be played in the forced board")
	ErrInvalidMarking  = errors.New("invalid marking")
	ErrPlayerMismatch  = errors.New("player mark does not match seat")
)
