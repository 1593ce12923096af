// Package repository contains data access logic separated from HTTP
// handlers.  This file defines sentinel errors shared across repositories
// so that handlers can map failures to HTTP responses without inspecting
// driver error strings themselves.
package repository

import "errors"

// ErrNotFound is returned when a requested row does not exist.  Handlers
// should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrDuplicateUser is returned when an insert collides with the unique
// username or email index.  The two cases are deliberately not
// distinguished: the auth handler must respond identically to both so a
// caller cannot enumerate which accounts exist.
var ErrDuplicateUser = errors.New("username or email already exists")
