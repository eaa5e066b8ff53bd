package rules

import (
    "time"

    "github.com/kerimd/service-booking-api/internal/model"
)

// Overlaps reports whether the half-open intervals [s1,e1) and
// [s2,e2) intersect. Touching intervals (e1 == s2) do not overlap,
// which is what allows back-to-back bookings.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
    return s1.Before(e2) && s2.Before(e1)
}

// CheckConflict decides whether the candidate interval [start,end)
// may be booked given the service's existing bookings. A single
// overlap with a blocking (pending or confirmed) booking rejects the
// candidate with ErrBookingConflict. Cancelled and completed
// bookings never block.
//
// This check alone is not race-safe: the repository repeats it
// inside a transaction that locks the service row before inserting,
// so two concurrent requests for an overlapping slot cannot both
// succeed.
func CheckConflict(start, end time.Time, existing []model.Booking) error {
    for _, b := range existing {
        if !b.Blocks() {
            continue
        }
        if Overlaps(start, end, b.StartsAt, b.EndsAt) {
            return ErrBookingConflict
        }
    }
    return nil
}
