package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/kerimd/service-booking-api/internal/utils"
)

const testSecret = "test-secret"

func doRequest(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/", nil)
    if authHeader != "" {
        req.Header.Set("Authorization", authHeader)
    }
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)

    var captured echo.Context
    handler := mw(func(c echo.Context) error {
        captured = c
        return c.NoContent(http.StatusOK)
    })
    require.NoError(t, handler(c))
    return rec, captured
}

func TestJWTAuthValidToken(t *testing.T) {
    access, err := utils.NewAccessToken(testSecret, 42, "ADMIN", 5)
    require.NoError(t, err)

    rec, c := doRequest(t, JWTAuth(testSecret), "Bearer "+access.Token)

    require.Equal(t, http.StatusOK, rec.Code)
    require.NotNil(t, c)
    // Numeric claims decode as float64.
    assert.Equal(t, float64(42), c.Get("user_id"))
    assert.Equal(t, "ADMIN", c.Get("role"))
}

func TestJWTAuthMissingHeader(t *testing.T) {
    rec, _ := doRequest(t, JWTAuth(testSecret), "")
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthWrongSecret(t *testing.T) {
    access, err := utils.NewAccessToken("other-secret", 42, "USER", 5)
    require.NoError(t, err)

    rec, _ := doRequest(t, JWTAuth(testSecret), "Bearer "+access.Token)
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthGarbageToken(t *testing.T) {
    rec, _ := doRequest(t, JWTAuth(testSecret), "Bearer not.a.jwt")
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
    cases := []struct {
        name    string
        role    any
        allowed []string
        want    int
    }{
        {"admin on admin route", "ADMIN", []string{"ADMIN"}, http.StatusOK},
        {"user on admin route", "USER", []string{"ADMIN"}, http.StatusForbidden},
        {"user on shared route", "USER", []string{"USER", "ADMIN"}, http.StatusOK},
        {"missing role", nil, []string{"USER", "ADMIN"}, http.StatusForbidden},
        {"non-string role", 7, []string{"USER"}, http.StatusForbidden},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            e := echo.New()
            req := httptest.NewRequest(http.MethodGet, "/", nil)
            rec := httptest.NewRecorder()
            c := e.NewContext(req, rec)
            if tc.role != nil {
                c.Set("role", tc.role)
            }
            handler := RequireRole(tc.allowed...)(func(c echo.Context) error {
                return c.NoContent(http.StatusOK)
            })
            require.NoError(t, handler(c))
            assert.Equal(t, tc.want, rec.Code)
        })
    }
}

func TestCurrentUserID(t *testing.T) {
    e := echo.New()
    c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
    assert.Equal(t, "anon", currentUserID(c))

    c.Set("user_id", float64(42))
    assert.Equal(t, "42", currentUserID(c))

    c.Set("user_id", "99")
    assert.Equal(t, "99", currentUserID(c))
}
