package storage

import "errors"

// Expected failure conditions returned by the stores. Callers classify
// them with errors.Is; the messages are shown to the user as-is.
var (
	ErrDuplicateEmail = errors.New("email is already registered")

	// ErrInvalidCredentials is returned for both an unknown email and a
	// wrong password so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrNotFound = errors.New("expense not found")
)
