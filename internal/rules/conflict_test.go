package rules

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/kerimd/service-booking-api/internal/model"
)

func at(h, m int) time.Time {
    return time.Date(2030, 6, 1, h, m, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
    cases := []struct {
        name           string
        s1, e1, s2, e2 time.Time
        want           bool
    }{
        {"identical", at(10, 0), at(11, 0), at(10, 0), at(11, 0), true},
        {"contained", at(10, 0), at(12, 0), at(10, 30), at(11, 0), true},
        {"partial front", at(10, 0), at(11, 0), at(10, 30), at(11, 30), true},
        {"partial back", at(10, 30), at(11, 30), at(10, 0), at(11, 0), true},
        {"touching end-start", at(10, 0), at(11, 0), at(11, 0), at(12, 0), false},
        {"touching start-end", at(11, 0), at(12, 0), at(10, 0), at(11, 0), false},
        {"disjoint", at(8, 0), at(9, 0), at(10, 0), at(11, 0), false},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            assert.Equal(t, tc.want, Overlaps(tc.s1, tc.e1, tc.s2, tc.e2))
            // the overlap relation is symmetric
            assert.Equal(t, tc.want, Overlaps(tc.s2, tc.e2, tc.s1, tc.e1))
        })
    }
}

func TestCheckConflict_NoExisting(t *testing.T) {
    require.NoError(t, CheckConflict(at(10, 0), at(11, 0), nil))
}

func TestCheckConflict_RejectsOverlap(t *testing.T) {
    existing := []model.Booking{
        {StartsAt: at(9, 0), EndsAt: at(10, 0), Status: model.BookingConfirmed},
        {StartsAt: at(10, 30), EndsAt: at(11, 30), Status: model.BookingPending},
    }
    err := CheckConflict(at(10, 0), at(11, 0), existing)
    require.ErrorIs(t, err, ErrBookingConflict)
}

func TestCheckConflict_BackToBackAllowed(t *testing.T) {
    existing := []model.Booking{
        {StartsAt: at(9, 0), EndsAt: at(10, 0), Status: model.BookingConfirmed},
        {StartsAt: at(11, 0), EndsAt: at(12, 0), Status: model.BookingConfirmed},
    }
    require.NoError(t, CheckConflict(at(10, 0), at(11, 0), existing))
}

func TestCheckConflict_CancelledNeverBlocks(t *testing.T) {
    existing := []model.Booking{
        {StartsAt: at(10, 0), EndsAt: at(11, 0), Status: model.BookingCancelled},
        {StartsAt: at(10, 0), EndsAt: at(11, 0), Status: model.BookingCompleted},
    }
    require.NoError(t, CheckConflict(at(10, 0), at(11, 0), existing))
}

func TestCheckConflict_SlotFreeAfterCancellation(t *testing.T) {
    booked := model.Booking{StartsAt: at(10, 0), EndsAt: at(11, 0), Status: model.BookingPending}
    require.ErrorIs(t, CheckConflict(at(10, 0), at(11, 0), []model.Booking{booked}), ErrBookingConflict)

    booked.Status = model.BookingCancelled
    require.NoError(t, CheckConflict(at(10, 0), at(11, 0), []model.Booking{booked}))
}
