package apperror

import "errors"

var (
	ErrInvalidDie    = errors.New("die value out of range")
	ErrNoActiveGames = errors.New("no active games")
)
