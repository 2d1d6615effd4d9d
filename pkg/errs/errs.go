// Package errs defines the sentinel errors shared by the service layers.
//
// Handlers map these to fixed, non-leaking HTTP responses; anything that
// doesn't match one of them is treated as internal and only logged.
package errs

import "errors"

var (
	// ErrAlreadyExists indicates a uniqueness collision (email, role name,
	// permission name or resource/action pair).
	ErrAlreadyExists = errors.New("already exists")

	// ErrNotFound indicates a referenced record is absent.
	ErrNotFound = errors.New("not found")

	// ErrInvalidCredentials indicates login failure. It is deliberately the
	// same for an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
