// Package storage defines errors shared by storage implementations and the
// services that consume them.
package storage

import "errors"

// ErrNotFound is returned when a row targeted by id does not exist.
var ErrNotFound = errors.New("not found")

// ErrCodeUnavailable is returned when a review access code is unknown or
// already redeemed. Callers cannot distinguish the two cases, which keeps
// code probing uninformative.
var ErrCodeUnavailable = errors.New("code unknown or already used")

// ErrBusy is returned when the database could not take a write lock within
// its busy timeout.
var ErrBusy = errors.New("database busy")
