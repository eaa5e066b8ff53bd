package rules

import (
    "fmt"
    "regexp"
    "strings"
    "time"

    "github.com/kerimd/service-booking-api/internal/model"
)

// emailRe matches a practical subset of the address grammar: local
// part, one @, dotted domain with a 2+ letter TLD.
var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// minPasswordLen is the minimum accepted password length at registration.
const minPasswordLen = 8

// FieldError describes a single violated field. Code is a stable
// machine-readable identifier; Message is for humans.
type FieldError struct {
    Field   string `json:"field"`
    Code    string `json:"code"`
    Message string `json:"message"`
}

// ValidationError collects every violated field of one input so the
// caller can report all problems at once rather than the first.
type ValidationError struct {
    Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
    names := make([]string, 0, len(e.Fields))
    for _, f := range e.Fields {
        names = append(names, f.Field)
    }
    return fmt.Sprintf("validation failed: %s", strings.Join(names, ", "))
}

// add appends a field violation and returns the receiver for chaining.
func (e *ValidationError) add(field, code, message string) {
    e.Fields = append(e.Fields, FieldError{Field: field, Code: code, Message: message})
}

// orNil returns nil when no field was violated, so callers can write
// `if err := ...; err != nil`.
func (e *ValidationError) orNil() error {
    if len(e.Fields) == 0 {
        return nil
    }
    return e
}

// RegistrationInput is the raw registration payload before validation.
type RegistrationInput struct {
    Name     string
    Email    string
    Password string
}

// NormalizedUser is a validated registration with the email
// lower-cased and surrounding whitespace removed.
type NormalizedUser struct {
    Name     string
    Email    string
    Password string
}

// ValidateRegistration checks a registration payload and returns the
// normalized record or a *ValidationError listing every violation.
// Email uniqueness is a storage concern and is checked by the user
// repository at insert time, not here.
func ValidateRegistration(in RegistrationInput) (NormalizedUser, error) {
    verr := &ValidationError{}
    name := strings.TrimSpace(in.Name)
    if name == "" {
        verr.add("name", "required", "name is required")
    }
    email := strings.ToLower(strings.TrimSpace(in.Email))
    if email == "" {
        verr.add("email", "required", "email is required")
    } else if !emailRe.MatchString(email) {
        verr.add("email", "invalid_email", "email address is not valid")
    }
    if in.Password == "" {
        verr.add("password", "required", "password is required")
    } else if len(in.Password) < minPasswordLen {
        verr.add("password", "too_short", fmt.Sprintf("password must be at least %d characters", minPasswordLen))
    }
    if err := verr.orNil(); err != nil {
        return NormalizedUser{}, err
    }
    return NormalizedUser{Name: name, Email: email, Password: in.Password}, nil
}

// ServiceInput is the raw catalog payload before validation. Price
// is carried in cents so no float comparison is involved.
type ServiceInput struct {
    Title       string
    Description string
    PriceCents  int64
    DurationMin int64
}

// NormalizedService is a validated catalog entry with trimmed text
// fields and non-negative numeric fields.
type NormalizedService struct {
    Title       string
    Description string
    PriceCents  uint32
    DurationMin uint32
}

// ValidateService checks a service payload. The price must be
// non-negative (a free service is legal) and the duration strictly
// positive since it determines the booking interval.
func ValidateService(in ServiceInput) (NormalizedService, error) {
    verr := &ValidationError{}
    title := strings.TrimSpace(in.Title)
    if title == "" {
        verr.add("title", "required", "title is required")
    }
    if in.PriceCents < 0 {
        verr.add("price_cents", "invalid_price", "price must not be negative")
    }
    if in.DurationMin <= 0 {
        verr.add("duration_min", "invalid_duration", "duration must be positive")
    }
    if err := verr.orNil(); err != nil {
        return NormalizedService{}, err
    }
    return NormalizedService{
        Title:       title,
        Description: strings.TrimSpace(in.Description),
        PriceCents:  uint32(in.PriceCents),
        DurationMin: uint32(in.DurationMin),
    }, nil
}

// BookingInput is the raw booking payload before validation. StartsAt
// arrives as an RFC3339 string straight from the JSON body.
type BookingInput struct {
    ServiceID uint64
    StartsAt  string
}

// NormalizedBooking carries the parsed, UTC-normalized interval. The
// end time is derived from the service duration so callers never
// supply it.
type NormalizedBooking struct {
    ServiceID uint64
    StartsAt  time.Time
    EndsAt    time.Time
}

// ValidateBookingRequest checks a booking payload against the clock
// value in now. The start time is normalized to UTC before any
// comparison and must be strictly in the future. durationMin comes
// from the already-loaded service record.
func ValidateBookingRequest(in BookingInput, durationMin uint32, now time.Time) (NormalizedBooking, error) {
    verr := &ValidationError{}
    if in.ServiceID == 0 {
        verr.add("service_id", "required", "service_id is required")
    }
    var start time.Time
    raw := strings.TrimSpace(in.StartsAt)
    if raw == "" {
        verr.add("starts_at", "required", "starts_at is required")
    } else {
        t, err := time.Parse(time.RFC3339, raw)
        if err != nil {
            verr.add("starts_at", "invalid_time", "starts_at must be RFC3339")
        } else {
            start = t.UTC()
            if !start.After(now.UTC()) {
                verr.add("starts_at", "past_booking_time", "starts_at must be in the future")
            }
        }
    }
    if err := verr.orNil(); err != nil {
        return NormalizedBooking{}, err
    }
    return NormalizedBooking{
        ServiceID: in.ServiceID,
        StartsAt:  start,
        EndsAt:    start.Add(time.Duration(durationMin) * time.Minute),
    }, nil
}

// ReviewInput is the raw review payload before validation.
type ReviewInput struct {
    BookingID uint64
    Rating    int
    Comment   string
}

// NormalizedReview is a validated review with the comment trimmed.
type NormalizedReview struct {
    BookingID uint64
    Rating    int
    Comment   string
}

// ValidateReview checks a review payload. The rating is an integer
// strictly bounded to [1,5].
func ValidateReview(in ReviewInput) (NormalizedReview, error) {
    verr := &ValidationError{}
    if in.BookingID == 0 {
        verr.add("booking_id", "required", "booking_id is required")
    }
    if in.Rating < 1 || in.Rating > 5 {
        verr.add("rating", "invalid_rating", "rating must be between 1 and 5")
    }
    if err := verr.orNil(); err != nil {
        return NormalizedReview{}, err
    }
    return NormalizedReview{
        BookingID: in.BookingID,
        Rating:    in.Rating,
        Comment:   strings.TrimSpace(in.Comment),
    }, nil
}

// ValidRole normalizes a requested role, falling back to USER for
// anything unknown.
func ValidRole(raw string) string {
    if strings.ToUpper(strings.TrimSpace(raw)) == model.RoleAdmin {
        return model.RoleAdmin
    }
    return model.RoleUser
}
