// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// services and handlers to distinguish between different failure
// scenarios. For example, ErrForbidden indicates that the current user
// is not authorized to read a record owned by someone else, while
// ErrLoginExists signals that registration collided with an existing
// account.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrLoginExists is returned when an insert into the users table
// violates the login primary key. Handlers should translate this
// into an HTTP 409 response.
var ErrLoginExists = errors.New("login already exists")
