package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/kerimd/service-booking-api/internal/config"
)

func TestEncodeDecodePayload(t *testing.T) {
    hdr := http.Header{}
    hdr.Set("Content-Type", "application/json")

    body := []byte(`{"items":[]}`)
    payload, err := encodePayload(http.StatusOK, hdr, body)
    require.NoError(t, err)

    status, gotHdr, gotBody, ok := decodePayload(payload)
    require.True(t, ok)
    assert.Equal(t, http.StatusOK, status)
    assert.Equal(t, "application/json", gotHdr.Get("Content-Type"))
    assert.Equal(t, body, gotBody)
}

func TestDecodePayloadTruncated(t *testing.T) {
    _, _, _, ok := decodePayload([]byte{0, 0, 0})
    assert.False(t, ok)
}

func TestCacheKeyStrategies(t *testing.T) {
    e := echo.New()
    newCtx := func(target string) echo.Context {
        req := httptest.NewRequest(http.MethodGet, target, nil)
        c := e.NewContext(req, httptest.NewRecorder())
        c.SetPath("/v1/services")
        return c
    }
    cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}

    withQ := cacheKeyFrom(cfg, newCtx("/v1/services?q=milonga"))
    withoutQ := cacheKeyFrom(cfg, newCtx("/v1/services"))
    assert.NotEqual(t, withQ, withoutQ)

    // route strategy ignores the query string
    cfg.KeyStrategy = "route"
    assert.Equal(t, cacheKeyFrom(cfg, newCtx("/v1/services?q=milonga")),
        cacheKeyFrom(cfg, newCtx("/v1/services")))
}

func TestCacheDisabledPassThrough(t *testing.T) {
    mw := NewRedisCache(config.CacheConfig{Enabled: false}, nil)

    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/v1/services", nil)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)

    handler := mw(func(c echo.Context) error {
        return c.String(http.StatusOK, "fresh")
    })
    require.NoError(t, handler(c))
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, "fresh", rec.Body.String())
    assert.Empty(t, rec.Header().Get("X-Cache"))
}
