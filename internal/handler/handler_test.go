package handler

import (
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/kerimd/service-booking-api/internal/model"
    "github.com/kerimd/service-booking-api/internal/repository"
)

func newJSONContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(method, target, strings.NewReader(body))
    if body != "" {
        req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    }
    rec := httptest.NewRecorder()
    return e.NewContext(req, rec), rec
}

func asUser(c echo.Context, id float64, role string) {
    c.Set("user_id", id)
    c.Set("role", role)
}

func TestHealth(t *testing.T) {
    c, rec := newJSONContext(t, http.MethodGet, "/healthz", "")
    require.NoError(t, Health(c))
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, "ok", rec.Body.String())
}

func TestGetUserID(t *testing.T) {
    e := echo.New()
    c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

    _, err := getUserID(c)
    assert.Error(t, err)

    for _, v := range []any{uint64(7), int(7), int64(7), float64(7), "7"} {
        c.Set("user_id", v)
        id, err := getUserID(c)
        require.NoError(t, err)
        assert.Equal(t, uint64(7), id)
    }

    c.Set("user_id", "not a number")
    _, err = getUserID(c)
    assert.Error(t, err)
}

func TestActorFrom(t *testing.T) {
    e := echo.New()
    c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
    asUser(c, 42, model.RoleAdmin)

    actor, err := actorFrom(c)
    require.NoError(t, err)
    assert.Equal(t, uint64(42), actor.ID)
    assert.True(t, actor.IsAdmin())
}

func TestServiceCreateForbiddenForUser(t *testing.T) {
    h := NewServiceHandler(repository.NewServiceRepo(nil))
    c, rec := newJSONContext(t, http.MethodPost, "/v1/admin/services",
        `{"title":"Cut","price_cents":1500,"duration_min":30}`)
    asUser(c, 42, model.RoleUser)

    require.NoError(t, h.Create(c))
    assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestServiceCreateValidationCollected(t *testing.T) {
    h := NewServiceHandler(repository.NewServiceRepo(nil))
    // Empty title, negative price and zero duration all reported at once.
    c, rec := newJSONContext(t, http.MethodPost, "/v1/admin/services",
        `{"title":"  ","price_cents":-1,"duration_min":0}`)
    asUser(c, 1, model.RoleAdmin)

    require.NoError(t, h.Create(c))
    require.Equal(t, http.StatusBadRequest, rec.Code)

    var resp struct {
        Fields []struct {
            Field string `json:"field"`
            Code  string `json:"code"`
        } `json:"fields"`
    }
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
    codes := map[string]string{}
    for _, f := range resp.Fields {
        codes[f.Field] = f.Code
    }
    assert.Equal(t, "required", codes["title"])
    assert.Equal(t, "invalid_price", codes["price_cents"])
    assert.Equal(t, "invalid_duration", codes["duration_min"])
}

func TestBookingCreateUnauthorized(t *testing.T) {
    h := NewBookingHandler(repository.NewBookingRepo(nil), repository.NewServiceRepo(nil))
    c, rec := newJSONContext(t, http.MethodPost, "/v1/bookings",
        `{"service_id":1,"starts_at":"2030-01-01T10:00:00Z"}`)

    require.NoError(t, h.Create(c))
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestReviewCreateInvalidRating(t *testing.T) {
    h := NewReviewHandler(repository.NewReviewRepo(nil), repository.NewBookingRepo(nil), repository.NewServiceRepo(nil))
    c, rec := newJSONContext(t, http.MethodPost, "/v1/reviews",
        `{"booking_id":9,"rating":6,"comment":"great"}`)
    asUser(c, 42, model.RoleUser)

    require.NoError(t, h.Create(c))
    require.Equal(t, http.StatusBadRequest, rec.Code)
    assert.Contains(t, rec.Body.String(), "invalid_rating")
}

func TestParamID(t *testing.T) {
    e := echo.New()
    c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
    c.SetParamNames("id")

    c.SetParamValues("12")
    id, err := paramID(c, "id")
    require.NoError(t, err)
    assert.Equal(t, uint64(12), id)

    for _, bad := range []string{"0", "-3", "abc", ""} {
        c.SetParamValues(bad)
        _, err := paramID(c, "id")
        assert.Error(t, err, bad)
    }
}
