package renderer

import "errors"

var (
	ErrInvalidOptions = errors.New("renderer: invalid options")
	ErrInterrupted    = errors.New("renderer: interrupted while rendering")
)
