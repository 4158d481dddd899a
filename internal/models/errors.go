package models

import "errors"

// Shared error taxonomy. Repositories and services return these sentinels;
// handlers map them to HTTP status classes.
var (
	// ErrNotFound covers both genuinely absent rows and rows hidden by the
	// visibility policy, so existence is never leaked.
	ErrNotFound = errors.New("record not found")

	// ErrConflict signals a duplicate username or email at registration.
	ErrConflict = errors.New("resource already exists")

	// ErrInvalidCredentials is the single login failure. Unknown-user and
	// wrong-password are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrIntegrity signals a foreign-key violation, e.g. deleting a user
	// who still has created tasks.
	ErrIntegrity = errors.New("referential integrity violation")
)
