// Package repository implements raw-SQL data access for the water-network
// tables. Sentinel errors let handlers translate failures into the shared
// HTTP taxonomy without inspecting driver error strings themselves.
package repository

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when an id-based fetch, update or delete matches
// no row. Handlers translate it into HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert violates a unique key. Handlers
// translate it into the "already exists" 400 response.
var ErrDuplicate = errors.New("duplicate entry")

// isDuplicate reports whether err is a MySQL duplicate-key violation
// (error 1062, ER_DUP_ENTRY).
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
