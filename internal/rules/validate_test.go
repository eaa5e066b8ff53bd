package rules

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/kerimd/service-booking-api/internal/model"
)

func fieldCodes(t *testing.T, err error) map[string]string {
    t.Helper()
    var verr *ValidationError
    require.ErrorAs(t, err, &verr)
    out := make(map[string]string, len(verr.Fields))
    for _, f := range verr.Fields {
        out[f.Field] = f.Code
    }
    return out
}

func TestValidateRegistration_NormalizesEmail(t *testing.T) {
    u, err := ValidateRegistration(RegistrationInput{
        Name:     "  Ada Lovelace ",
        Email:    "  Ada@Example.COM ",
        Password: "correct horse",
    })
    require.NoError(t, err)
    assert.Equal(t, "Ada Lovelace", u.Name)
    assert.Equal(t, "ada@example.com", u.Email)
}

func TestValidateRegistration_CollectsAllViolations(t *testing.T) {
    _, err := ValidateRegistration(RegistrationInput{Name: " ", Email: "not-an-email", Password: "short"})
    codes := fieldCodes(t, err)
    assert.Equal(t, "required", codes["name"])
    assert.Equal(t, "invalid_email", codes["email"])
    assert.Equal(t, "too_short", codes["password"])
}

func TestValidateService(t *testing.T) {
    svc, err := ValidateService(ServiceInput{Title: " Haircut ", Description: " classic cut ", PriceCents: 0, DurationMin: 30})
    require.NoError(t, err)
    assert.Equal(t, "Haircut", svc.Title)
    assert.Equal(t, uint32(0), svc.PriceCents) // free services are allowed
    assert.Equal(t, uint32(30), svc.DurationMin)

    _, err = ValidateService(ServiceInput{Title: "", PriceCents: -100, DurationMin: 0})
    codes := fieldCodes(t, err)
    assert.Equal(t, "required", codes["title"])
    assert.Equal(t, "invalid_price", codes["price_cents"])
    assert.Equal(t, "invalid_duration", codes["duration_min"])
}

func TestValidateBookingRequest_FutureOnly(t *testing.T) {
    now := time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)

    b, err := ValidateBookingRequest(BookingInput{
        ServiceID: 7,
        StartsAt:  "2030-06-01T14:00:00Z",
    }, 45, now)
    require.NoError(t, err)
    assert.Equal(t, time.Date(2030, 6, 1, 14, 0, 0, 0, time.UTC), b.StartsAt)
    assert.Equal(t, time.Date(2030, 6, 1, 14, 45, 0, 0, time.UTC), b.EndsAt)
}

func TestValidateBookingRequest_NormalizesZoneBeforeComparing(t *testing.T) {
    now := time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)
    // 15:00+02:00 is 13:00 UTC, one hour ahead of now
    b, err := ValidateBookingRequest(BookingInput{ServiceID: 1, StartsAt: "2030-06-01T15:00:00+02:00"}, 30, now)
    require.NoError(t, err)
    assert.Equal(t, time.UTC, b.StartsAt.Location())
    assert.Equal(t, time.Date(2030, 6, 1, 13, 0, 0, 0, time.UTC), b.StartsAt)
}

func TestValidateBookingRequest_PastTimeRejected(t *testing.T) {
    now := time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)
    cases := map[string]string{
        "one second ago": "2030-06-01T11:59:59Z",
        "exactly now":    "2030-06-01T12:00:00Z",
    }
    for name, starts := range cases {
        t.Run(name, func(t *testing.T) {
            _, err := ValidateBookingRequest(BookingInput{ServiceID: 1, StartsAt: starts}, 30, now)
            codes := fieldCodes(t, err)
            assert.Equal(t, "past_booking_time", codes["starts_at"])
        })
    }
}

func TestValidateBookingRequest_BadPayload(t *testing.T) {
    now := time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)
    _, err := ValidateBookingRequest(BookingInput{ServiceID: 0, StartsAt: "tomorrow at noon"}, 30, now)
    codes := fieldCodes(t, err)
    assert.Equal(t, "required", codes["service_id"])
    assert.Equal(t, "invalid_time", codes["starts_at"])
}

func TestValidateReview_RatingBounds(t *testing.T) {
    for _, rating := range []int{1, 2, 3, 4, 5} {
        r, err := ValidateReview(ReviewInput{BookingID: 1, Rating: rating, Comment: " fine "})
        require.NoError(t, err)
        assert.Equal(t, rating, r.Rating)
        assert.Equal(t, "fine", r.Comment)
    }
    for _, rating := range []int{0, -1, 6, 100} {
        _, err := ValidateReview(ReviewInput{BookingID: 1, Rating: rating})
        codes := fieldCodes(t, err)
        assert.Equal(t, "invalid_rating", codes["rating"])
    }
}

func TestValidRole(t *testing.T) {
    assert.Equal(t, model.RoleAdmin, ValidRole(" admin "))
    assert.Equal(t, model.RoleUser, ValidRole("user"))
    assert.Equal(t, model.RoleUser, ValidRole("superuser"))
    assert.Equal(t, model.RoleUser, ValidRole(""))
}
