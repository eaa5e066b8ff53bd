package handler

import (
    "context"
    "errors"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/kerimd/service-booking-api/internal/model"
    "github.com/kerimd/service-booking-api/internal/queue"
    "github.com/kerimd/service-booking-api/internal/repository"
    "github.com/kerimd/service-booking-api/internal/rules"
    queue_publisher "github.com/kerimd/service-booking-api/internal/service"
)

// BookingHandler groups the repositories required to create bookings,
// list them and drive status transitions.  All methods assume that JWT
// authentication has already been performed by middleware.  Methods may
// return 401 Unauthorized if the user ID cannot be extracted from the
// context.
type BookingHandler struct {
    Bookings *repository.BookingRepo
    Services *repository.ServiceRepo
}

// NewBookingHandler constructs a BookingHandler with the provided
// repositories.  All dependencies must be non-nil.
func NewBookingHandler(bookings *repository.BookingRepo, services *repository.ServiceRepo) *BookingHandler {
    if bookings == nil || services == nil {
        panic("nil repository passed to NewBookingHandler")
    }
    return &BookingHandler{Bookings: bookings, Services: services}
}

type bookingReq struct {
    ServiceID uint64 `json:"service_id"`
    StartsAt  string `json:"starts_at"`
}

type bookingPart struct {
    ID        uint64    `json:"id"`
    UserID    uint64    `json:"user_id"`
    ServiceID uint64    `json:"service_id"`
    StartsAt  time.Time `json:"starts_at"`
    EndsAt    time.Time `json:"ends_at"`
    Status    string    `json:"status"`
    CreatedAt time.Time `json:"created_at"`
    UpdatedAt time.Time `json:"updated_at"`
}

func toBookingPart(b model.Booking) bookingPart {
    return bookingPart{
        ID:        b.ID,
        UserID:    b.UserID,
        ServiceID: b.ServiceID,
        StartsAt:  b.StartsAt,
        EndsAt:    b.EndsAt,
        Status:    b.Status,
        CreatedAt: b.CreatedAt,
        UpdatedAt: b.UpdatedAt,
    }
}

// Create handles POST /v1/bookings.  The end time is derived from the
// service duration; the repository performs the conflict check and the
// insert in a single transaction so concurrent requests for the same
// slot cannot both succeed.
func (h *BookingHandler) Create(c echo.Context) error {
    actor, err := actorFrom(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req bookingReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    svc, err := h.Services.GetByID(ctx, req.ServiceID)
    if err != nil {
        if err == repository.ErrServiceNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "service not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if !svc.IsActive {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "service not found"})
    }

    norm, err := rules.ValidateBookingRequest(rules.BookingInput{
        ServiceID: req.ServiceID,
        StartsAt:  req.StartsAt,
    }, svc.DurationMin, time.Now())
    if err != nil {
        if ok, resp := validationJSON(c, err); ok {
            return resp
        }
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }

    b := &model.Booking{
        UserID:    actor.ID,
        ServiceID: norm.ServiceID,
        StartsAt:  norm.StartsAt,
        EndsAt:    norm.EndsAt,
    }
    if err := h.Bookings.CreateWithConflictCheck(ctx, b); err != nil {
        switch {
        case errors.Is(err, rules.ErrBookingConflict):
            bookingConflicts.Inc()
            return c.JSON(http.StatusConflict, echo.Map{"error": "time slot already booked"})
        case errors.Is(err, repository.ErrServiceNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "service not found"})
        default:
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create booking"})
        }
    }
    bookingsCreated.Inc()
    return c.JSON(http.StatusCreated, toBookingPart(*b))
}

// ListMine handles GET /v1/bookings and returns the caller's bookings,
// newest first.
func (h *BookingHandler) ListMine(c echo.Context) error {
    actor, err := actorFrom(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    bookings, err := h.Bookings.ListByUser(c.Request().Context(), actor.ID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
    }
    out := make([]bookingPart, 0, len(bookings))
    for _, b := range bookings {
        out = append(out, toBookingPart(b))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// Get handles GET /v1/bookings/:id.  Owners see their own bookings;
// admins see any.
func (h *BookingHandler) Get(c echo.Context) error {
    actor, err := actorFrom(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := paramID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    b, err := h.Bookings.GetByID(c.Request().Context(), id)
    if err != nil {
        if err == repository.ErrBookingNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if err := rules.Authorize(actor, rules.ActionViewBooking, b.UserID); err != nil {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    }
    return c.JSON(http.StatusOK, toBookingPart(b))
}

// ListByService handles GET /v1/admin/services/:id/bookings so admins
// can inspect a service's schedule.
func (h *BookingHandler) ListByService(c echo.Context) error {
    id, err := paramID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid service id"})
    }
    if _, err := h.Services.GetByID(c.Request().Context(), id); err != nil {
        if err == repository.ErrServiceNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "service not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    bookings, err := h.Bookings.ListByService(c.Request().Context(), id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
    }
    out := make([]bookingPart, 0, len(bookings))
    for _, b := range bookings {
        out = append(out, toBookingPart(b))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// Cancel handles PATCH /v1/bookings/:id/cancel for owners and admins.
func (h *BookingHandler) Cancel(c echo.Context) error {
    return h.transition(c, model.BookingCancelled)
}

// Confirm handles PATCH /v1/bookings/:id/confirm (admin).  On success
// a BookingConfirmedEvent is published; publish failures are logged by
// the publisher and never fail the request.
func (h *BookingHandler) Confirm(c echo.Context) error {
    return h.transition(c, model.BookingConfirmed)
}

// Complete handles PATCH /v1/bookings/:id/complete (admin), allowed
// once the appointment has ended.
func (h *BookingHandler) Complete(c echo.Context) error {
    return h.transition(c, model.BookingCompleted)
}

// transition loads the booking, applies the state machine and persists
// the result.  All three status endpoints share this path so the error
// mapping stays in one place.
func (h *BookingHandler) transition(c echo.Context, target string) error {
    actor, err := actorFrom(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := paramID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    b, err := h.Bookings.GetByID(ctx, id)
    if err != nil {
        if err == repository.ErrBookingNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

    next, err := rules.Transition(b, target, actor, time.Now())
    if err != nil {
        switch {
        case errors.Is(err, rules.ErrForbidden):
            return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
        case errors.Is(err, rules.ErrInvalidTransition):
            return c.JSON(http.StatusConflict, echo.Map{"error": "invalid booking transition"})
        default:
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "transition failed"})
        }
    }

    updated, err := h.Bookings.UpdateStatus(ctx, id, next.Status)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update booking"})
    }

    if target == model.BookingConfirmed {
        bookingsConfirmed.Inc()
        h.publishConfirmed(c.Request().Context(), updated)
    }
    return c.JSON(http.StatusOK, toBookingPart(updated))
}

// publishConfirmed emits the booking.confirmed event.  The service row
// is loaded for its title and price; failures are swallowed because
// the booking is already confirmed at this point.
func (h *BookingHandler) publishConfirmed(ctx context.Context, b model.Booking) {
    var title string
    var price uint32
    if svc, err := h.Services.GetByID(ctx, b.ServiceID); err == nil {
        title = svc.Title
        price = svc.PriceCents
    }
    _ = queue_publisher.PublishBookingConfirmed(ctx, queue.BookingConfirmedEvent{
        BookingID:    b.ID,
        UserID:       b.UserID,
        ServiceID:    b.ServiceID,
        ServiceTitle: title,
        StartsAt:     b.StartsAt.Format(time.RFC3339),
        EndsAt:       b.EndsAt.Format(time.RFC3339),
        PriceCents:   price,
        ConfirmedAt:  time.Now().UTC().Format(time.RFC3339),
    })
}
