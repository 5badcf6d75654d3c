package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
// Entities that exist but belong to another user are reported with this
// same error, so ownership is never revealed to a non-owner.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller is authenticated but not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")
