// Package rules implements the decision logic that sits between the
// HTTP handlers and the repositories: input validation, authorization,
// booking conflict detection, the booking state machine and review
// aggregation. Everything in this package is a pure function over its
// arguments; nothing here touches the database, logs or formats
// user-facing messages. Handlers translate the sentinel errors below
// into HTTP responses.
package rules

import "errors"

// ErrForbidden is returned when an actor attempts an action on a
// resource they neither own nor administer. Handlers translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrBookingConflict is returned when a candidate booking interval
// overlaps an existing pending or confirmed booking for the same
// service. Handlers translate this into an HTTP 409 response.
var ErrBookingConflict = errors.New("booking conflict")

// ErrInvalidTransition is returned when a booking status change is
// not permitted from the current state, or when the timing rules for
// the transition are violated.
var ErrInvalidTransition = errors.New("invalid booking transition")

// ErrReviewNotAuthorized is returned when the actor is not the user
// on the referenced booking, or the booking was never rendered
// (still pending, or cancelled).
var ErrReviewNotAuthorized = errors.New("review not authorized")

// ErrDuplicateReview is returned when the booking already has a
// review. One review per booking, enforced both here and by a
// unique index in storage.
var ErrDuplicateReview = errors.New("review already exists for booking")
