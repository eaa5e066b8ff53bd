package handler

import (
    "github.com/prometheus/client_golang/prometheus"
    "github.com/prometheus/client_golang/prometheus/promauto"
)

// Request-level counters exposed on /metrics.  Registered once via
// promauto at package init.
var (
    bookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
        Name: "booking_api_bookings_created_total",
        Help: "Number of bookings accepted after conflict checking.",
    })
    bookingConflicts = promauto.NewCounter(prometheus.CounterOpts{
        Name: "booking_api_booking_conflicts_total",
        Help: "Number of booking attempts rejected due to a time conflict.",
    })
    bookingsConfirmed = promauto.NewCounter(prometheus.CounterOpts{
        Name: "booking_api_bookings_confirmed_total",
        Help: "Number of bookings confirmed by an admin.",
    })
    reviewsCreated = promauto.NewCounter(prometheus.CounterOpts{
        Name: "booking_api_reviews_created_total",
        Help: "Number of reviews stored.",
    })
)
