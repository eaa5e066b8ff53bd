package rules

import (
    "testing"

    "github.com/stretchr/testify/require"

    "github.com/kerimd/service-booking-api/internal/model"
)

var (
    admin    = Actor{ID: 1, Role: model.RoleAdmin}
    owner    = Actor{ID: 42, Role: model.RoleUser}
    stranger = Actor{ID: 99, Role: model.RoleUser}
)

func TestAuthorize(t *testing.T) {
    cases := []struct {
        name    string
        actor   Actor
        action  Action
        ownerID uint64
        wantErr error
    }{
        {"admin manages catalog", admin, ActionManageCatalog, 0, nil},
        {"admin confirms any booking", admin, ActionConfirmBooking, 42, nil},
        {"admin cancels any booking", admin, ActionCancelBooking, 42, nil},
        {"user cannot manage catalog", owner, ActionManageCatalog, 42, ErrForbidden},
        {"user cannot confirm own booking", owner, ActionConfirmBooking, 42, ErrForbidden},
        {"owner views own booking", owner, ActionViewBooking, 42, nil},
        {"owner cancels own booking", owner, ActionCancelBooking, 42, nil},
        {"stranger cannot cancel others booking", stranger, ActionCancelBooking, 42, ErrForbidden},
        {"stranger cannot view others booking", stranger, ActionViewBooking, 42, ErrForbidden},
        {"owner writes own review", owner, ActionWriteReview, 42, nil},
        {"unknown action denied", owner, Action("reboot"), 42, ErrForbidden},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            err := Authorize(tc.actor, tc.action, tc.ownerID)
            if tc.wantErr == nil {
                require.NoError(t, err)
            } else {
                require.ErrorIs(t, err, tc.wantErr)
            }
        })
    }
}

func TestAuthorizeReview(t *testing.T) {
    booking := model.Booking{ID: 5, UserID: owner.ID, Status: model.BookingCompleted}

    require.NoError(t, AuthorizeReview(owner, booking, false))

    confirmed := booking
    confirmed.Status = model.BookingConfirmed
    require.NoError(t, AuthorizeReview(owner, confirmed, false))

    t.Run("not the booking user", func(t *testing.T) {
        require.ErrorIs(t, AuthorizeReview(stranger, booking, false), ErrReviewNotAuthorized)
    })
    t.Run("pending booking", func(t *testing.T) {
        b := booking
        b.Status = model.BookingPending
        require.ErrorIs(t, AuthorizeReview(owner, b, false), ErrReviewNotAuthorized)
    })
    t.Run("cancelled booking", func(t *testing.T) {
        b := booking
        b.Status = model.BookingCancelled
        require.ErrorIs(t, AuthorizeReview(owner, b, false), ErrReviewNotAuthorized)
    })
    t.Run("second review rejected", func(t *testing.T) {
        require.ErrorIs(t, AuthorizeReview(owner, booking, true), ErrDuplicateReview)
    })
}
