package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/kerimd/service-booking-api/internal/model"
	"github.com/kerimd/service-booking-api/internal/rules"
)

// ReviewRepo provides persistence for reviews. A unique index on
// booking_id backs the one-review-per-booking rule; an insert that
// races a duplicate surfaces rules.ErrDuplicateReview.
type ReviewRepo struct {
	db *sql.DB
}

// NewReviewRepo returns a new ReviewRepo bound to the given database.
func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{db: db} }

const reviewColumns = "id, user_id, service_id, booking_id, rating, comment, created_at, updated_at"

func scanReview(row interface{ Scan(...any) error }) (model.Review, error) {
	var rv model.Review
	err := row.Scan(&rv.ID, &rv.UserID, &rv.ServiceID, &rv.BookingID,
		&rv.Rating, &rv.Comment, &rv.CreatedAt, &rv.UpdatedAt)
	return rv, err
}

// Create inserts a review and returns it with generated fields
// populated.
func (r *ReviewRepo) Create(ctx context.Context, rv *model.Review) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO reviews (user_id, service_id, booking_id, rating, comment) VALUES (?,?,?,?,?)",
		rv.UserID, rv.ServiceID, rv.BookingID, rv.Rating, rv.Comment)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return rules.ErrDuplicateReview
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rv.ID = uint64(id)
	got, err := r.GetByID(ctx, rv.ID)
	if err != nil {
		return err
	}
	*rv = got
	return nil
}

// GetByID fetches a review by id, returning ErrReviewNotFound when
// no row exists.
func (r *ReviewRepo) GetByID(ctx context.Context, id uint64) (model.Review, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+reviewColumns+" FROM reviews WHERE id=? LIMIT 1", id)
	rv, err := scanReview(row)
	if err == sql.ErrNoRows {
		return model.Review{}, ErrReviewNotFound
	}
	return rv, err
}

// GetByBookingID fetches the review of a booking if one exists.
// sql.ErrNoRows is returned untranslated; callers use it to test
// for absence.
func (r *ReviewRepo) GetByBookingID(ctx context.Context, bookingID uint64) (model.Review, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+reviewColumns+" FROM reviews WHERE booking_id=? LIMIT 1", bookingID)
	return scanReview(row)
}

// ListByService returns all reviews of a service, newest first.
func (r *ReviewRepo) ListByService(ctx context.Context, serviceID uint64) ([]model.Review, error) {
	return r.listBy(ctx, "service_id=?", serviceID)
}

// ListByUser returns all reviews written by a user, newest first.
func (r *ReviewRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Review, error) {
	return r.listBy(ctx, "user_id=?", userID)
}

func (r *ReviewRepo) listBy(ctx context.Context, cond string, arg any) ([]model.Review, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+reviewColumns+" FROM reviews WHERE "+cond+" ORDER BY created_at DESC", arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Review, 0)
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

// Update overwrites rating and comment of a review and returns the
// refreshed row.
func (r *ReviewRepo) Update(ctx context.Context, id uint64, rating int, comment string) (model.Review, error) {
	_, err := r.db.ExecContext(ctx,
		"UPDATE reviews SET rating=?, comment=? WHERE id=?", rating, comment, id)
	if err != nil {
		return model.Review{}, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes a review permanently.
func (r *ReviewRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM reviews WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrReviewNotFound
	}
	return nil
}
