package errors

import stdErrors "errors"

// ErrNoInput is returned when standard input closes before a valid choice was made.
var ErrNoInput = stdErrors.New("no more input")
