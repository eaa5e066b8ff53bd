package model

import "time"

// Booking status values stored in bookings.status.  PENDING and
// CONFIRMED bookings block the time slot; CANCELLED and COMPLETED
// never do.  CANCELLED and COMPLETED are terminal.
const (
    BookingPending   = "PENDING"
    BookingConfirmed = "CONFIRMED"
    BookingCancelled = "CANCELLED"
    BookingCompleted = "COMPLETED"
)

// Booking records a user's appointment for a service over a
// half-open interval [StartsAt, EndsAt).  EndsAt is computed at
// creation from the service duration and stored denormalized so
// overlap queries need no join.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – user who made the booking.
//  ServiceID – service being booked.
//  StartsAt  – start of the appointment (UTC).
//  EndsAt    – end of the appointment (UTC, exclusive).
//  Status    – state of the booking (PENDING, CONFIRMED, CANCELLED,
//              COMPLETED).
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Booking struct {
    ID        uint64    // bookings.id
    UserID    uint64    // bookings.user_id
    ServiceID uint64    // bookings.service_id
    StartsAt  time.Time // bookings.starts_at
    EndsAt    time.Time // bookings.ends_at
    Status    string    // bookings.status
    CreatedAt time.Time // bookings.created_at
    UpdatedAt time.Time // bookings.updated_at
}

// Blocks reports whether the booking occupies its time slot for
// conflict purposes.
func (b Booking) Blocks() bool {
    return b.Status == BookingPending || b.Status == BookingConfirmed
}
