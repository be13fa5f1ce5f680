package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrBadInput indicates malformed request input, such as a non-numeric id
// or missing query parameters.
var ErrBadInput = errors.New("bad input")
