package handler // handler defines http handlers

import (
    "errors"
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/kerimd/service-booking-api/internal/rules"
)

// getUserID extracts the user_id from echo.Context and converts it to uint64
func getUserID(c echo.Context) (uint64, error) {
    v := c.Get("user_id")
    switch t := v.(type) {
    case uint64:
        return t, nil
    case int:
        return uint64(t), nil
    case int64:
        return uint64(t), nil
    case float64:
        return uint64(t), nil
    case string:
        if n, err := strconv.ParseUint(t, 10, 64); err == nil {
            return n, nil
        }
    }
    return 0, errors.New("invalid user_id in context")
}

// actorFrom builds the rules.Actor for the current request from the
// claims the JWT middleware stored on the context.
func actorFrom(c echo.Context) (rules.Actor, error) {
    uid, err := getUserID(c)
    if err != nil {
        return rules.Actor{}, err
    }
    role, _ := c.Get("role").(string)
    return rules.Actor{ID: uid, Role: role}, nil
}

// validationJSON renders a collected validation error as a 400 with the
// per-field violations, or returns false when err is something else.
func validationJSON(c echo.Context, err error) (bool, error) {
    var verr *rules.ValidationError
    if !errors.As(err, &verr) {
        return false, nil
    }
    return true, c.JSON(http.StatusBadRequest, echo.Map{
        "error":  "validation failed",
        "fields": verr.Fields,
    })
}

// paramID parses a positive numeric :id path parameter.
func paramID(c echo.Context, name string) (uint64, error) {
    id, err := strconv.ParseUint(c.Param(name), 10, 64)
    if err != nil || id == 0 {
        return 0, errors.New("invalid id")
    }
    return id, nil
}
