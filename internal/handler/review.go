package handler

import (
    "context"
    "database/sql"
    "errors"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/kerimd/service-booking-api/internal/model"
    "github.com/kerimd/service-booking-api/internal/repository"
    "github.com/kerimd/service-booking-api/internal/rules"
)

// ReviewHandler groups the repositories required to create, list and
// aggregate reviews.  A review always references one of the caller's
// own confirmed or completed bookings, and each booking carries at
// most one review.
type ReviewHandler struct {
    Reviews  *repository.ReviewRepo
    Bookings *repository.BookingRepo
    Services *repository.ServiceRepo
}

// NewReviewHandler constructs a ReviewHandler with the provided
// repositories.  All dependencies must be non-nil.
func NewReviewHandler(reviews *repository.ReviewRepo, bookings *repository.BookingRepo, services *repository.ServiceRepo) *ReviewHandler {
    if reviews == nil || bookings == nil || services == nil {
        panic("nil repository passed to NewReviewHandler")
    }
    return &ReviewHandler{Reviews: reviews, Bookings: bookings, Services: services}
}

type reviewReq struct {
    BookingID uint64 `json:"booking_id"`
    Rating    int    `json:"rating"`
    Comment   string `json:"comment"`
}

type reviewUpdateReq struct {
    Rating  int    `json:"rating"`
    Comment string `json:"comment"`
}

type reviewPart struct {
    ID        uint64    `json:"id"`
    UserID    uint64    `json:"user_id"`
    ServiceID uint64    `json:"service_id"`
    BookingID uint64    `json:"booking_id"`
    Rating    int       `json:"rating"`
    Comment   string    `json:"comment"`
    CreatedAt time.Time `json:"created_at"`
    UpdatedAt time.Time `json:"updated_at"`
}

func toReviewPart(rv model.Review) reviewPart {
    return reviewPart{
        ID:        rv.ID,
        UserID:    rv.UserID,
        ServiceID: rv.ServiceID,
        BookingID: rv.BookingID,
        Rating:    rv.Rating,
        Comment:   rv.Comment,
        CreatedAt: rv.CreatedAt,
        UpdatedAt: rv.UpdatedAt,
    }
}

// Create handles POST /v1/reviews.  The referenced booking must belong
// to the caller and must have been rendered (confirmed or completed).
func (h *ReviewHandler) Create(c echo.Context) error {
    actor, err := actorFrom(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req reviewReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    norm, err := rules.ValidateReview(rules.ReviewInput{
        BookingID: req.BookingID,
        Rating:    req.Rating,
        Comment:   req.Comment,
    })
    if err != nil {
        if ok, resp := validationJSON(c, err); ok {
            return resp
        }
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    b, err := h.Bookings.GetByID(ctx, norm.BookingID)
    if err != nil {
        if err == repository.ErrBookingNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

    alreadyReviewed := true
    if _, err := h.Reviews.GetByBookingID(ctx, norm.BookingID); err != nil {
        if !errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
        }
        alreadyReviewed = false
    }

    if err := rules.AuthorizeReview(actor, b, alreadyReviewed); err != nil {
        switch {
        case errors.Is(err, rules.ErrDuplicateReview):
            return c.JSON(http.StatusConflict, echo.Map{"error": "booking already reviewed"})
        default:
            return c.JSON(http.StatusForbidden, echo.Map{"error": "review not allowed"})
        }
    }

    rv := &model.Review{
        UserID:    actor.ID,
        ServiceID: b.ServiceID,
        BookingID: b.ID,
        Rating:    norm.Rating,
        Comment:   norm.Comment,
    }
    if err := h.Reviews.Create(ctx, rv); err != nil {
        // The unique index on booking_id closes the race between the
        // existence check above and the insert.
        if errors.Is(err, rules.ErrDuplicateReview) {
            return c.JSON(http.StatusConflict, echo.Map{"error": "booking already reviewed"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create review"})
    }
    reviewsCreated.Inc()
    return c.JSON(http.StatusCreated, toReviewPart(*rv))
}

// ListByService handles GET /v1/services/:id/reviews (public).
func (h *ReviewHandler) ListByService(c echo.Context) error {
    id, err := paramID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    if _, err := h.Services.GetByID(c.Request().Context(), id); err != nil {
        if err == repository.ErrServiceNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "service not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    reviews, err := h.Reviews.ListByService(c.Request().Context(), id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reviews"})
    }
    out := make([]reviewPart, 0, len(reviews))
    for _, rv := range reviews {
        out = append(out, toReviewPart(rv))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// Stats handles GET /v1/services/:id/reviews/stats (public).  The
// aggregate is computed on demand from the stored reviews.
func (h *ReviewHandler) Stats(c echo.Context) error {
    id, err := paramID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    if _, err := h.Services.GetByID(c.Request().Context(), id); err != nil {
        if err == repository.ErrServiceNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "service not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    reviews, err := h.Reviews.ListByService(c.Request().Context(), id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reviews"})
    }
    return c.JSON(http.StatusOK, rules.AggregateReviews(reviews))
}

// ListMine handles GET /v1/my-reviews.
func (h *ReviewHandler) ListMine(c echo.Context) error {
    actor, err := actorFrom(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    reviews, err := h.Reviews.ListByUser(c.Request().Context(), actor.ID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reviews"})
    }
    out := make([]reviewPart, 0, len(reviews))
    for _, rv := range reviews {
        out = append(out, toReviewPart(rv))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// Update handles PATCH /v1/reviews/:id.  Only the author may edit a
// review; the rating bounds are re-checked.
func (h *ReviewHandler) Update(c echo.Context) error {
    actor, err := actorFrom(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := paramID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    existing, err := h.Reviews.GetByID(ctx, id)
    if err != nil {
        if err == repository.ErrReviewNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "review not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if err := rules.Authorize(actor, rules.ActionWriteReview, existing.UserID); err != nil {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    }

    req := reviewUpdateReq{Rating: existing.Rating, Comment: existing.Comment}
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    norm, err := rules.ValidateReview(rules.ReviewInput{
        BookingID: existing.BookingID,
        Rating:    req.Rating,
        Comment:   req.Comment,
    })
    if err != nil {
        if ok, resp := validationJSON(c, err); ok {
            return resp
        }
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }

    updated, err := h.Reviews.Update(ctx, id, norm.Rating, norm.Comment)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update review"})
    }
    return c.JSON(http.StatusOK, toReviewPart(updated))
}

// Delete handles DELETE /v1/reviews/:id.  Only the author (or an
// admin) may remove a review.
func (h *ReviewHandler) Delete(c echo.Context) error {
    actor, err := actorFrom(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := paramID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    existing, err := h.Reviews.GetByID(ctx, id)
    if err != nil {
        if err == repository.ErrReviewNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "review not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if err := rules.Authorize(actor, rules.ActionWriteReview, existing.UserID); err != nil {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    }
    if err := h.Reviews.Delete(ctx, id); err != nil {
        if err == repository.ErrReviewNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "review not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not delete review"})
    }
    return c.NoContent(http.StatusNoContent)
}
