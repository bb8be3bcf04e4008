// Package repository implements the relational persistence layer on top of
// database/sql. Repositories translate driver-level failures into the
// domain error taxonomy so callers never inspect MySQL error codes: a
// missing row becomes domain.ErrNotFound, a violated unique key becomes
// domain.ErrConflict, and the capacity backstop inside the registration
// transaction becomes a wrapped domain.ErrValidation.
package repository

import (
	"errors"
	"strings"
)

// ErrEmailExists is returned when a user signup collides with an existing
// email address.
var ErrEmailExists = errors.New("email already exists")

// isDuplicateKey reports whether err is a MySQL duplicate-entry error
// (code 1062), raised when a unique key is violated.
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
