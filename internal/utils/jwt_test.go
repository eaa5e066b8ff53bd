package utils

import (
    "testing"
    "time"

    "github.com/golang-jwt/jwt/v5"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestPasswordRoundTrip(t *testing.T) {
    hash, err := HashPassword("s3cret-password", 4)
    require.NoError(t, err)
    assert.True(t, VerifyPassword(hash, "s3cret-password"))
    assert.False(t, VerifyPassword(hash, "wrong-password"))
}

func TestNewAccessToken_Claims(t *testing.T) {
    at, err := NewAccessToken("test-secret", 42, "ADMIN", 15)
    require.NoError(t, err)
    assert.WithinDuration(t, time.Now().UTC().Add(15*time.Minute), at.Exp, 2*time.Second)

    tok, err := jwt.Parse(at.Token, func(t *jwt.Token) (interface{}, error) {
        return []byte("test-secret"), nil
    })
    require.NoError(t, err)
    require.True(t, tok.Valid)
    claims := tok.Claims.(jwt.MapClaims)
    assert.Equal(t, float64(42), claims["sub"])
    assert.Equal(t, "ADMIN", claims["role"])
}

func TestRefreshTokenHashing(t *testing.T) {
    rt, err := NewRefreshToken(7)
    require.NoError(t, err)
    assert.Len(t, rt.Raw, 96)

    // hashing is deterministic and never echoes the raw value
    h1 := HashRefreshRaw(rt.Raw)
    h2 := HashRefreshRaw(rt.Raw)
    assert.Equal(t, h1, h2)
    assert.NotEqual(t, rt.Raw, h1)
    assert.Len(t, h1, 64)
}
