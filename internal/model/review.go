package model

import "time"

// Review is a rating left by a user for a booking that was actually
// rendered.  The bookings table enforces one review per booking via
// a unique index on booking_id.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – author of the review.
//  ServiceID – service the review applies to (denormalized from the
//              booking for aggregation queries).
//  BookingID – booking being reviewed, unique per review.
//  Rating    – integer rating between 1 and 5 inclusive.
//  Comment   – free-form comment, may be empty.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Review struct {
    ID        uint64    // reviews.id
    UserID    uint64    // reviews.user_id
    ServiceID uint64    // reviews.service_id
    BookingID uint64    // reviews.booking_id
    Rating    int       // reviews.rating
    Comment   string    // reviews.comment
    CreatedAt time.Time // reviews.created_at
    UpdatedAt time.Time // reviews.updated_at
}
