package service

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSearchUnavailable  = errors.New("search is not configured")
	ErrResetUnavailable   = errors.New("password reset delivery is not configured")
)
