package settings

import "errors"

var (
	// ErrInvalidInput indicates a patch with an unknown theme.
	ErrInvalidInput = errors.New("invalid settings input")
)
