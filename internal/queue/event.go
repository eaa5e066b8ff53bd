// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published when an admin confirms a booking.
// It contains enough information for downstream consumers to log, notify, or
// trigger analytics without querying the primary database.
type BookingConfirmedEvent struct {
    BookingID    uint64 `json:"booking_id"`
    UserID       uint64 `json:"user_id"`
    ServiceID    uint64 `json:"service_id"`
    ServiceTitle string `json:"service_title"`
    StartsAt     string `json:"starts_at"`
    EndsAt       string `json:"ends_at"`
    PriceCents   uint32 `json:"price_cents"`
    ConfirmedAt  string `json:"confirmed_at"`
}
