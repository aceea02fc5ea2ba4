// Package repository holds data access logic for the hotel domain.  This
// file defines sentinel errors shared across repositories so handlers can
// distinguish failure scenarios with errors.Is instead of matching
// strings.
package repository

import "errors"

// ErrConflict is returned when an insert or update cannot proceed because
// of conflicting state, such as deleting a room type that still has rooms
// or booking a room that overlaps an existing reservation.  Handlers
// translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")
