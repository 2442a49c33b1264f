package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
// A session that has already reached COMPLETED is treated the same way for
// lifecycle operations: it is no longer addressable for a close.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")
