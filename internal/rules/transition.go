package rules

import (
    "time"

    "github.com/kerimd/service-booking-api/internal/model"
)

// Transition applies the booking state machine and the authorization
// table to a requested status change, returning the updated booking
// or an error. The stored record is only written by the caller after
// this returns nil.
//
// Permitted transitions:
//
//  PENDING              -> CONFIRMED   admin only
//  PENDING | CONFIRMED  -> CANCELLED   owner or admin, only before StartsAt
//  CONFIRMED            -> COMPLETED   admin only, only after EndsAt
//
// CANCELLED and COMPLETED are terminal. Re-confirming a cancelled
// booking and confirming an already-confirmed booking both fail with
// ErrInvalidTransition.
func Transition(b model.Booking, target string, actor Actor, now time.Time) (model.Booking, error) {
    now = now.UTC()
    switch target {
    case model.BookingConfirmed:
        if err := Authorize(actor, ActionConfirmBooking, b.UserID); err != nil {
            return model.Booking{}, err
        }
        if b.Status != model.BookingPending {
            return model.Booking{}, ErrInvalidTransition
        }
    case model.BookingCancelled:
        if err := Authorize(actor, ActionCancelBooking, b.UserID); err != nil {
            return model.Booking{}, err
        }
        if b.Status != model.BookingPending && b.Status != model.BookingConfirmed {
            return model.Booking{}, ErrInvalidTransition
        }
        // No cancelling history: once the appointment has started the
        // booking can only run to completion.
        if !b.StartsAt.After(now) {
            return model.Booking{}, ErrInvalidTransition
        }
    case model.BookingCompleted:
        if err := Authorize(actor, ActionCompleteBooking, b.UserID); err != nil {
            return model.Booking{}, err
        }
        if b.Status != model.BookingConfirmed {
            return model.Booking{}, ErrInvalidTransition
        }
        if b.EndsAt.After(now) {
            return model.Booking{}, ErrInvalidTransition
        }
    default:
        return model.Booking{}, ErrInvalidTransition
    }
    b.Status = target
    b.UpdatedAt = now
    return b, nil
}
