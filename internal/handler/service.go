// This file defines handlers for the service catalog. Public routes let
// unauthenticated users browse and search active services; admin routes
// manage the catalog. Sensitive fields (owner IDs) are filtered from the
// public responses.

package handler

import (
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/kerimd/service-booking-api/internal/model"
    "github.com/kerimd/service-booking-api/internal/repository"
    "github.com/kerimd/service-booking-api/internal/rules"
)

// ServiceHandler bundles the repository needed for catalog endpoints.
type ServiceHandler struct {
    Services *repository.ServiceRepo
}

func NewServiceHandler(s *repository.ServiceRepo) *ServiceHandler {
    if s == nil {
        panic("nil repository passed to NewServiceHandler")
    }
    return &ServiceHandler{Services: s}
}

// PublicService is a catalog entry exposed via the public API. It
// contains only safe fields.
type PublicService struct {
    ID          uint64 `json:"id"`
    Title       string `json:"title"`
    Description string `json:"description"`
    PriceCents  uint32 `json:"price_cents"`
    DurationMin uint32 `json:"duration_min"`
}

// adminService includes the management fields hidden from guests.
type adminService struct {
    PublicService
    IsActive  bool      `json:"is_active"`
    OwnerID   uint64    `json:"owner_id"`
    CreatedAt time.Time `json:"created_at"`
    UpdatedAt time.Time `json:"updated_at"`
}

type serviceReq struct {
    Title       string `json:"title"`
    Description string `json:"description"`
    PriceCents  int64  `json:"price_cents"`
    DurationMin int64  `json:"duration_min"`
    IsActive    *bool  `json:"is_active"`
}

func toPublicService(s model.Service) PublicService {
    return PublicService{
        ID:          s.ID,
        Title:       s.Title,
        Description: s.Description,
        PriceCents:  s.PriceCents,
        DurationMin: s.DurationMin,
    }
}

func toAdminService(s model.Service) adminService {
    return adminService{
        PublicService: toPublicService(s),
        IsActive:      s.IsActive,
        OwnerID:       s.OwnerID,
        CreatedAt:     s.CreatedAt,
        UpdatedAt:     s.UpdatedAt,
    }
}

// ListPublic handles GET /v1/services. Only active services are shown
// to guests.
func (h *ServiceHandler) ListPublic(c echo.Context) error {
    services, err := h.Services.ListActive(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]PublicService, 0, len(services))
    for _, s := range services {
        out = append(out, toPublicService(s))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetPublic handles GET /v1/services/:id. Inactive services are hidden
// from guests as if they did not exist.
func (h *ServiceHandler) GetPublic(c echo.Context) error {
    id, err := paramID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    s, err := h.Services.GetByID(c.Request().Context(), id)
    if err != nil {
        if err == repository.ErrServiceNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "service not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if !s.IsActive {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "service not found"})
    }
    return c.JSON(http.StatusOK, toPublicService(s))
}

// Search handles GET /v1/services/search?q=. The query matches title
// and description, case-insensitive.
func (h *ServiceHandler) Search(c echo.Context) error {
    q := strings.TrimSpace(c.QueryParam("q"))
    if q == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "q is required"})
    }
    services, err := h.Services.Search(c.Request().Context(), q)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]PublicService, 0, len(services))
    for _, s := range services {
        out = append(out, toPublicService(s))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// ListAdmin handles GET /v1/admin/services and includes inactive
// entries with their management fields.
func (h *ServiceHandler) ListAdmin(c echo.Context) error {
    services, err := h.Services.ListAll(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]adminService, 0, len(services))
    for _, s := range services {
        out = append(out, toAdminService(s))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// Create handles POST /v1/admin/services.
func (h *ServiceHandler) Create(c echo.Context) error {
    actor, err := actorFrom(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    if err := rules.Authorize(actor, rules.ActionManageCatalog, 0); err != nil {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    }
    var req serviceReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    norm, err := rules.ValidateService(rules.ServiceInput{
        Title:       req.Title,
        Description: req.Description,
        PriceCents:  req.PriceCents,
        DurationMin: req.DurationMin,
    })
    if err != nil {
        if ok, resp := validationJSON(c, err); ok {
            return resp
        }
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    s := &model.Service{
        Title:       norm.Title,
        Description: norm.Description,
        PriceCents:  norm.PriceCents,
        DurationMin: norm.DurationMin,
        IsActive:    true,
        OwnerID:     actor.ID,
    }
    if err := h.Services.Create(c.Request().Context(), s); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create service"})
    }
    return c.JSON(http.StatusCreated, toAdminService(*s))
}

// Update handles PATCH /v1/admin/services/:id.
func (h *ServiceHandler) Update(c echo.Context) error {
    actor, err := actorFrom(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    if err := rules.Authorize(actor, rules.ActionManageCatalog, 0); err != nil {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    }
    id, err := paramID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    existing, err := h.Services.GetByID(c.Request().Context(), id)
    if err != nil {
        if err == repository.ErrServiceNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "service not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    // Absent fields keep their stored values.
    req := serviceReq{
        Title:       existing.Title,
        Description: existing.Description,
        PriceCents:  int64(existing.PriceCents),
        DurationMin: int64(existing.DurationMin),
    }
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    norm, err := rules.ValidateService(rules.ServiceInput{
        Title:       req.Title,
        Description: req.Description,
        PriceCents:  req.PriceCents,
        DurationMin: req.DurationMin,
    })
    if err != nil {
        if ok, resp := validationJSON(c, err); ok {
            return resp
        }
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    isActive := existing.IsActive
    if req.IsActive != nil {
        isActive = *req.IsActive
    }
    updated, err := h.Services.Update(c.Request().Context(), id, norm.Title, norm.Description, norm.PriceCents, norm.DurationMin, isActive)
    if err != nil {
        if err == repository.ErrServiceNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "service not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update service"})
    }
    return c.JSON(http.StatusOK, toAdminService(updated))
}

// Delete handles DELETE /v1/admin/services/:id. Services are only ever
// deactivated so historical bookings keep their reference.
func (h *ServiceHandler) Delete(c echo.Context) error {
    actor, err := actorFrom(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    if err := rules.Authorize(actor, rules.ActionManageCatalog, 0); err != nil {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    }
    id, err := paramID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    if err := h.Services.Deactivate(c.Request().Context(), id); err != nil {
        if err == repository.ErrServiceNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "service not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not delete service"})
    }
    return c.NoContent(http.StatusNoContent)
}
