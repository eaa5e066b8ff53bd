// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrEmailExists indicates a registration raced an existing
// account, while ErrServiceNotFound signals that a catalog lookup
// missed. Business-rule errors such as booking conflicts live in the
// rules package; repositories surface them when a storage constraint
// detects the same condition.
package repository

import "errors"

// ErrEmailExists is returned when inserting a user whose email is
// already taken. Handlers translate this into an HTTP 409 response.
var ErrEmailExists = errors.New("email already exists")

// ErrServiceNotFound is returned when a service lookup by ID finds
// no row. Handlers translate this into an HTTP 404 response.
var ErrServiceNotFound = errors.New("service not found")

// ErrBookingNotFound is returned when a booking lookup by ID finds
// no row.
var ErrBookingNotFound = errors.New("booking not found")

// ErrReviewNotFound is returned when a review lookup by ID finds no
// row.
var ErrReviewNotFound = errors.New("review not found")
