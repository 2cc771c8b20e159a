// Package repository holds the MySQL data access layer.
package repository

import "errors"

// ErrNotFound is returned when a lookup matches no live row.  It is an
// expected outcome, not a storage failure.
var ErrNotFound = errors.New("not found")

// ErrUsernameExists is returned by Create when the unique username index
// rejects the insert.
var ErrUsernameExists = errors.New("username already exists")
