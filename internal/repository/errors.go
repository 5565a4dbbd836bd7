// Package repository defines error values that are reused across
// repositories. These sentinel values let handlers distinguish between
// failure scenarios without inspecting driver errors: ErrNotFound maps
// to HTTP 404 and ErrEmailExists to 409. Anything else is an opaque
// storage failure.
package repository

import "errors"

// ErrNotFound is returned when a referenced entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when registration or a profile update
// would duplicate an existing account email.
var ErrEmailExists = errors.New("email already exists")

// ErrCodeExhausted is returned when booking creation keeps colliding on
// the booking-code unique index after the bounded number of retries.
var ErrCodeExhausted = errors.New("booking code retries exhausted")
