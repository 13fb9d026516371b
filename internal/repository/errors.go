// Package repository implements the MySQL persistence layer.  This file
// defines sentinel errors reused across repositories so handlers can
// map failure scenarios to HTTP responses with errors.Is.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource owned by someone else.  Handlers translate this into 403.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an operation cannot proceed because of
// the resource's current state, such as cancelling a rental that is
// already running.  Handlers translate this into 409.
var ErrConflict = errors.New("conflict")

// ErrVehicleNotFound is returned when no vehicle matches the given id.
var ErrVehicleNotFound = errors.New("vehicle not found")
