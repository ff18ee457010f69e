// Package repository defines error values shared across repositories and
// workflows. These sentinels let handlers distinguish business outcomes
// (a rejected booking, a manager touching a hotel they do not own) from
// engine failures. Rejections carry the same severity as "not found":
// they are reported to the user and the server keeps serving.
package repository

import "errors"

// ErrForbidden is returned when a user attempts a manager-only operation
// on a hotel they do not manage. Handlers translate it into HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrRoomNotAvailable is returned when a booking already exists for the
// requested (hotel, room, date) slot. Handlers translate it into HTTP 409.
var ErrRoomNotAvailable = errors.New("room not available")

// ErrRoomNotFound is returned when the addressed room does not exist for
// the given hotel. Handlers translate it into HTTP 404.
var ErrRoomNotFound = errors.New("room not found")

// ErrInvalidCredentials is returned by the login flow when the user does
// not exist or the password does not match. Both cases are reported
// identically so the response does not leak which part was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrSequenceMiss is returned when a freshly inserted row's identifier
// cannot be recovered from its sequence. Callers must treat it like any
// other execution failure and abort dependent inserts.
var ErrSequenceMiss = errors.New("sequence has no current value")
