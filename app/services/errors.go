package services

import "errors"

var (
	// ErrDuplicateUsername is returned when registering a taken username.
	ErrDuplicateUsername = errors.New("username already taken")
	// ErrInvalidCredentials is returned for an unknown user or a wrong password.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrForbidden is returned when a user acts on a post they did not write.
	ErrForbidden = errors.New("forbidden")
)
