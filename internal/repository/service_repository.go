package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/kerimd/service-booking-api/internal/model"
)

// ServiceRepo provides CRUD operations for the bookable service
// catalog. Services are soft-deleted by flipping is_active so
// historical bookings keep a valid foreign key. All timestamp
// fields are stored in UTC.
type ServiceRepo struct {
	db *sql.DB
}

// NewServiceRepo returns a new ServiceRepo bound to the given database.
func NewServiceRepo(db *sql.DB) *ServiceRepo { return &ServiceRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// spanning multiple repositories.
func (r *ServiceRepo) DB() *sql.DB { return r.db }

const serviceColumns = "id, title, description, price_cents, duration_min, is_active, owner_id, created_at, updated_at"

func scanService(row interface{ Scan(...any) error }) (model.Service, error) {
	var s model.Service
	err := row.Scan(&s.ID, &s.Title, &s.Description, &s.PriceCents, &s.DurationMin,
		&s.IsActive, &s.OwnerID, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

// Create inserts a new service and returns it with the generated ID
// and timestamps populated.
func (r *ServiceRepo) Create(ctx context.Context, s *model.Service) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO services (title, description, price_cents, duration_min, is_active, owner_id) VALUES (?,?,?,?,?,?)",
		s.Title, s.Description, s.PriceCents, s.DurationMin, s.IsActive, s.OwnerID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	got, err := r.GetByID(ctx, s.ID)
	if err != nil {
		return err
	}
	*s = got
	return nil
}

// GetByID fetches a service by id, returning ErrServiceNotFound when
// no row exists.
func (r *ServiceRepo) GetByID(ctx context.Context, id uint64) (model.Service, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+serviceColumns+" FROM services WHERE id=? LIMIT 1", id)
	s, err := scanService(row)
	if err == sql.ErrNoRows {
		return model.Service{}, ErrServiceNotFound
	}
	return s, err
}

// list runs a SELECT returning full service rows for the given
// condition and arguments.
func (r *ServiceRepo) list(ctx context.Context, cond string, args ...any) ([]model.Service, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+serviceColumns+" FROM services WHERE "+cond+" ORDER BY id", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Service, 0)
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ListActive returns all bookable services, the public catalog view.
func (r *ServiceRepo) ListActive(ctx context.Context) ([]model.Service, error) {
	return r.list(ctx, "is_active=1")
}

// ListAll returns every service including deactivated ones, the
// admin catalog view.
func (r *ServiceRepo) ListAll(ctx context.Context) ([]model.Service, error) {
	return r.list(ctx, "1=1")
}

// Search matches active services whose title or description contains
// the query, case-insensitively.
func (r *ServiceRepo) Search(ctx context.Context, query string) ([]model.Service, error) {
	like := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	return r.list(ctx, "is_active=1 AND (LOWER(title) LIKE ? OR LOWER(description) LIKE ?)", like, like)
}

// Update overwrites the mutable fields of a service. It returns
// ErrServiceNotFound when the id does not exist.
func (r *ServiceRepo) Update(ctx context.Context, id uint64, title, description string, priceCents, durationMin uint32, isActive bool) (model.Service, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE services SET title=?, description=?, price_cents=?, duration_min=?, is_active=? WHERE id=?",
		title, description, priceCents, durationMin, isActive, id)
	if err != nil {
		return model.Service{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Distinguish "no such row" from "no change" with a lookup.
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return model.Service{}, getErr
		}
	}
	return r.GetByID(ctx, id)
}

// Deactivate soft-deletes a service so it disappears from the public
// catalog while existing bookings keep referencing it.
func (r *ServiceRepo) Deactivate(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE services SET is_active=0 WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return getErr
		}
	}
	return nil
}
