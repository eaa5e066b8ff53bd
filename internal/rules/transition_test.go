package rules

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/kerimd/service-booking-api/internal/model"
)

func futureBooking(status string) model.Booking {
    return model.Booking{
        ID:       10,
        UserID:   owner.ID,
        StartsAt: time.Date(2030, 6, 1, 10, 0, 0, 0, time.UTC),
        EndsAt:   time.Date(2030, 6, 1, 11, 0, 0, 0, time.UTC),
        Status:   status,
    }
}

var beforeStart = time.Date(2030, 6, 1, 9, 0, 0, 0, time.UTC)
var afterEnd = time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)

func TestTransition_Confirm(t *testing.T) {
    b, err := Transition(futureBooking(model.BookingPending), model.BookingConfirmed, admin, beforeStart)
    require.NoError(t, err)
    assert.Equal(t, model.BookingConfirmed, b.Status)

    t.Run("second confirm fails", func(t *testing.T) {
        _, err := Transition(b, model.BookingConfirmed, admin, beforeStart)
        require.ErrorIs(t, err, ErrInvalidTransition)
    })
    t.Run("owner may not confirm", func(t *testing.T) {
        _, err := Transition(futureBooking(model.BookingPending), model.BookingConfirmed, owner, beforeStart)
        require.ErrorIs(t, err, ErrForbidden)
    })
    t.Run("cancelled cannot be re-confirmed", func(t *testing.T) {
        _, err := Transition(futureBooking(model.BookingCancelled), model.BookingConfirmed, admin, beforeStart)
        require.ErrorIs(t, err, ErrInvalidTransition)
    })
}

func TestTransition_Cancel(t *testing.T) {
    for _, status := range []string{model.BookingPending, model.BookingConfirmed} {
        b, err := Transition(futureBooking(status), model.BookingCancelled, owner, beforeStart)
        require.NoError(t, err)
        assert.Equal(t, model.BookingCancelled, b.Status)
    }

    t.Run("admin cancels any booking", func(t *testing.T) {
        _, err := Transition(futureBooking(model.BookingPending), model.BookingCancelled, admin, beforeStart)
        require.NoError(t, err)
    })
    t.Run("stranger forbidden", func(t *testing.T) {
        _, err := Transition(futureBooking(model.BookingPending), model.BookingCancelled, stranger, beforeStart)
        require.ErrorIs(t, err, ErrForbidden)
    })
    t.Run("no cancelling after start", func(t *testing.T) {
        atStart := futureBooking(model.BookingConfirmed).StartsAt
        _, err := Transition(futureBooking(model.BookingConfirmed), model.BookingCancelled, owner, atStart)
        require.ErrorIs(t, err, ErrInvalidTransition)
    })
    t.Run("cancelled is terminal", func(t *testing.T) {
        _, err := Transition(futureBooking(model.BookingCancelled), model.BookingCancelled, owner, beforeStart)
        require.ErrorIs(t, err, ErrInvalidTransition)
    })
}

func TestTransition_Complete(t *testing.T) {
    b, err := Transition(futureBooking(model.BookingConfirmed), model.BookingCompleted, admin, afterEnd)
    require.NoError(t, err)
    assert.Equal(t, model.BookingCompleted, b.Status)

    t.Run("not before the appointment ends", func(t *testing.T) {
        _, err := Transition(futureBooking(model.BookingConfirmed), model.BookingCompleted, admin, beforeStart)
        require.ErrorIs(t, err, ErrInvalidTransition)
    })
    t.Run("pending cannot complete", func(t *testing.T) {
        _, err := Transition(futureBooking(model.BookingPending), model.BookingCompleted, admin, afterEnd)
        require.ErrorIs(t, err, ErrInvalidTransition)
    })
    t.Run("owner may not complete", func(t *testing.T) {
        _, err := Transition(futureBooking(model.BookingConfirmed), model.BookingCompleted, owner, afterEnd)
        require.ErrorIs(t, err, ErrForbidden)
    })
    t.Run("completed is terminal", func(t *testing.T) {
        _, err := Transition(futureBooking(model.BookingCompleted), model.BookingCancelled, admin, afterEnd)
        require.ErrorIs(t, err, ErrInvalidTransition)
    })
}

func TestTransition_UnknownTarget(t *testing.T) {
    _, err := Transition(futureBooking(model.BookingPending), "ARCHIVED", admin, beforeStart)
    require.ErrorIs(t, err, ErrInvalidTransition)
}
