package middleware

// identity.go holds small helpers shared across middleware files.

import (
    "fmt"

    "github.com/labstack/echo/v4"
)

// currentUserID returns a string form of the authenticated user ID for
// rate-limit key construction, or "anon" when the request carries no
// identity. JWTAuth stores the raw claim value, which decodes as a
// float64 for numeric IDs.
func currentUserID(c echo.Context) string {
    switch v := c.Get("user_id").(type) {
    case nil:
        return "anon"
    case string:
        if v != "" {
            return v
        }
        return "anon"
    case float64:
        return fmt.Sprintf("%.0f", v)
    default:
        return fmt.Sprint(v)
    }
}
