package repository

import (
	"context"
	"database/sql"

	"github.com/kerimd/service-booking-api/internal/model"
	"github.com/kerimd/service-booking-api/internal/rules"
)

// BookingRepo provides persistence for bookings. The critical
// operation is CreateWithConflictCheck, which serializes the
// check-then-insert sequence per service so two concurrent requests
// for an overlapping slot cannot both succeed. All timestamps are
// stored in UTC.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle for handler-level transactions.
func (r *BookingRepo) DB() *sql.DB { return r.db }

const bookingColumns = "id, user_id, service_id, starts_at, ends_at, status, created_at, updated_at"

func scanBooking(row interface{ Scan(...any) error }) (model.Booking, error) {
	var b model.Booking
	err := row.Scan(&b.ID, &b.UserID, &b.ServiceID, &b.StartsAt, &b.EndsAt,
		&b.Status, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

// CreateWithConflictCheck inserts a pending booking after verifying
// the slot is free. The whole sequence runs in one transaction that
// first locks the service row with SELECT ... FOR UPDATE; the lock
// is the per-service serialization point, so the overlap re-check
// and the insert are atomic with respect to competing bookings on
// the same service. Returns rules.ErrBookingConflict when the slot
// is taken and ErrServiceNotFound when the service id is stale.
func (r *BookingRepo) CreateWithConflictCheck(ctx context.Context, b *model.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Lock the service row; concurrent creators for the same service
	// queue up here until this transaction commits or rolls back.
	var serviceID uint64
	err = tx.QueryRowContext(ctx,
		"SELECT id FROM services WHERE id=? FOR UPDATE", b.ServiceID).Scan(&serviceID)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrServiceNotFound
		}
		return err
	}

	existing, err := r.listBlockingTx(ctx, tx, b.ServiceID, b)
	if err != nil {
		return err
	}
	if err := rules.CheckConflict(b.StartsAt, b.EndsAt, existing); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx,
		"INSERT INTO bookings (user_id, service_id, starts_at, ends_at, status) VALUES (?,?,?,?,?)",
		b.UserID, b.ServiceID, b.StartsAt, b.EndsAt, model.BookingPending)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)

	row := tx.QueryRowContext(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE id=?", b.ID)
	got, err := scanBooking(row)
	if err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	*b = got
	return nil
}

// listBlockingTx loads the pending and confirmed bookings of a
// service that intersect the candidate's window, inside the caller's
// transaction. The SQL predicate mirrors the half-open overlap rule
// so only genuinely competing rows are fetched.
func (r *BookingRepo) listBlockingTx(ctx context.Context, tx *sql.Tx, serviceID uint64, candidate *model.Booking) ([]model.Booking, error) {
	rows, err := tx.QueryContext(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE service_id=? AND status IN (?,?) AND starts_at < ? AND ends_at > ?",
		serviceID, model.BookingPending, model.BookingConfirmed, candidate.EndsAt, candidate.StartsAt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// GetByID fetches a booking by id, returning ErrBookingNotFound when
// no row exists.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (model.Booking, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE id=? LIMIT 1", id)
	b, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return model.Booking{}, ErrBookingNotFound
	}
	return b, err
}

// ListByUser returns all bookings made by a user, newest first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
	return r.listBy(ctx, "user_id=?", userID)
}

// ListByService returns all bookings of a service, newest first.
// Used by admins to inspect a service's schedule.
func (r *BookingRepo) ListByService(ctx context.Context, serviceID uint64) ([]model.Booking, error) {
	return r.listBy(ctx, "service_id=?", serviceID)
}

func (r *BookingRepo) listBy(ctx context.Context, cond string, arg any) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE "+cond+" ORDER BY created_at DESC", arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// UpdateStatus persists a status change decided by the rules state
// machine and returns the refreshed row.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id uint64, status string) (model.Booking, error) {
	_, err := r.db.ExecContext(ctx,
		"UPDATE bookings SET status=? WHERE id=?", status, id)
	if err != nil {
		return model.Booking{}, err
	}
	return r.GetByID(ctx, id)
}
