package auth

import "errors"

var (
	ErrNotFound           = errors.New("auth: not found")
	ErrAlreadyExists      = errors.New("auth: already exists")
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
)

// ErrInvalidToken indicates the session token failed validation.
var ErrInvalidToken = errors.New("invalid token")
