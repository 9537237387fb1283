package focus

import "errors"

var (
	// ErrInvalidInput indicates a malformed focus request.
	ErrInvalidInput = errors.New("invalid focus input")
)
