package model

import "time"

// Service represents a bookable offering in the catalog.  Services
// are created by admins, priced in cents and never hard-deleted:
// deactivation flips IsActive so existing bookings keep a valid
// reference.
//
// Fields:
//  ID          – primary key identifier.
//  Title       – short display name, searchable.
//  Description – free-form description, searchable.
//  PriceCents  – price in cents, never negative.
//  DurationMin – appointment length in minutes; booking end time is
//                derived from it.
//  IsActive    – whether the service can currently be booked.
//  OwnerID     – admin user who created the service.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Service struct {
    ID          uint64    // services.id
    Title       string    // services.title
    Description string    // services.description
    PriceCents  uint32    // services.price_cents
    DurationMin uint32    // services.duration_min
    IsActive    bool      // services.is_active
    OwnerID     uint64    // services.owner_id
    CreatedAt   time.Time // services.created_at
    UpdatedAt   time.Time // services.updated_at
}
