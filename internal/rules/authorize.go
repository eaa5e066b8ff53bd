package rules

import "github.com/kerimd/service-booking-api/internal/model"

// Actor is the authenticated identity performing a request, as
// extracted from the JWT by the middleware.
type Actor struct {
    ID   uint64
    Role string
}

// IsAdmin reports whether the actor carries the admin role.
func (a Actor) IsAdmin() bool { return a.Role == model.RoleAdmin }

// Action names a permission checked by Authorize. The grouping into
// admin-only, admin-or-owner and owner-only sets below is the whole
// authorization table.
type Action string

const (
    ActionManageCatalog  Action = "manage_catalog"  // create/update/deactivate services
    ActionConfirmBooking Action = "confirm_booking" // pending -> confirmed
    ActionCompleteBooking Action = "complete_booking" // confirmed -> completed
    ActionViewBooking    Action = "view_booking"    // read a booking
    ActionCancelBooking  Action = "cancel_booking"  // pending|confirmed -> cancelled
    ActionWriteReview    Action = "write_review"    // create/update/delete own review
)

// adminOnly actions are never granted to regular users, regardless
// of ownership.
var adminOnly = map[Action]bool{
    ActionManageCatalog:   true,
    ActionConfirmBooking:  true,
    ActionCompleteBooking: true,
}

// ownerAllowed actions are granted to the owner of the target
// resource (and, below, to admins for booking actions).
var ownerAllowed = map[Action]bool{
    ActionViewBooking:   true,
    ActionCancelBooking: true,
    ActionWriteReview:   true,
}

// Authorize decides whether actor may perform action on a resource
// owned by ownerID. Rules are evaluated in order, first match wins:
//
//  1. admins may perform any catalog-management action and may
//     confirm, complete, cancel or view any booking;
//  2. the resource owner may view/cancel their own booking and write
//     reviews for their own bookings;
//  3. everything else is denied.
func Authorize(actor Actor, action Action, ownerID uint64) error {
    if actor.IsAdmin() {
        return nil
    }
    if adminOnly[action] {
        return ErrForbidden
    }
    if ownerAllowed[action] && actor.ID == ownerID {
        return nil
    }
    return ErrForbidden
}

// AuthorizeReview applies the extra review rules on top of
// Authorize: the actor must be the user on the referenced booking,
// the booking must have been rendered (confirmed or completed, not
// pending or cancelled), and the booking must not already have a
// review.
func AuthorizeReview(actor Actor, booking model.Booking, alreadyReviewed bool) error {
    if booking.UserID != actor.ID {
        return ErrReviewNotAuthorized
    }
    switch booking.Status {
    case model.BookingConfirmed, model.BookingCompleted:
    default:
        return ErrReviewNotAuthorized
    }
    if alreadyReviewed {
        return ErrDuplicateReview
    }
    return nil
}
