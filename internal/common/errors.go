// Package common defines shared sentinel errors and small helpers used
// across the directory store and its CLI. Callers should use errors.Is
// to match these values.
package common

import "errors"

var (
	// Store-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Authentication errors. The same value is returned whether the
	// user is missing or the password is wrong, so callers cannot tell
	// the two apart.
	ErrorUnauthorized = errors.New("unauthorized")

	// Generic/internal flow control.
	ErrorInternal = errors.New("internal error")
)
