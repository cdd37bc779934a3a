package portfolio

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNoSession    = errors.New("client session is required")
)
