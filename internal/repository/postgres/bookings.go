package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"itemshare-api/internal/model"
	"itemshare-api/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type bookingRepo struct {
	pool *pgxpool.Pool
}

const bookingColumns = `id, start_time, end_time, item_id, booker_id, status`

func (r *bookingRepo) Create(ctx context.Context, booking *model.Booking) error {
	query := `
		INSERT INTO bookings (start_time, end_time, item_id, booker_id, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.pool.QueryRow(ctx, query,
		booking.Start, booking.End, booking.ItemID, booking.BookerID, booking.Status,
	).Scan(&booking.ID)
	if err != nil {
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}

func (r *bookingRepo) GetByID(ctx context.Context, id int64) (*model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var b model.Booking
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.Start, &b.End, &b.ItemID, &b.BookerID, &b.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking by id: %w", err)
	}
	return &b, nil
}

// UpdateStatus is the decision race guard: the row only changes when it
// is still in the expected status, so two concurrent decisions on one
// WAITING booking cannot both succeed.
func (r *bookingRepo) UpdateStatus(ctx context.Context, id int64, from, to model.BookingStatus) error {
	query := `
		UPDATE bookings
		SET status = $1
		WHERE id = $2 AND status = $3
	`
	tag, err := r.pool.Exec(ctx, query, to, id, from)
	if err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrConcurrentModification
	}
	return nil
}

// stateClause renders the ledger predicate for a state filter. now is
// passed as the next positional argument.
func stateClause(state model.State, arg int) string {
	switch state {
	case model.StatePast:
		return fmt.Sprintf(" AND end_time < $%d", arg)
	case model.StateFuture:
		return fmt.Sprintf(" AND start_time > $%d", arg)
	case model.StateCurrent:
		return fmt.Sprintf(" AND start_time < $%d AND end_time > $%d", arg, arg)
	case model.StateWaiting:
		return fmt.Sprintf(" AND status = $%d", arg)
	case model.StateRejected:
		return fmt.Sprintf(" AND status = $%d", arg)
	default:
		return ""
	}
}

func stateArg(state model.State, now time.Time) (any, bool) {
	switch state {
	case model.StatePast, model.StateFuture, model.StateCurrent:
		return now, true
	case model.StateWaiting:
		return model.StatusWaiting, true
	case model.StateRejected:
		return model.StatusRejected, true
	default:
		return nil, false
	}
}

func (r *bookingRepo) ListByBooker(ctx context.Context, bookerID int64, f repository.BookingFilter) ([]*model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE booker_id = $1`
	args := []any{bookerID}
	if arg, ok := stateArg(f.State, f.Now); ok {
		query += stateClause(f.State, 2)
		args = append(args, arg)
	}
	query += fmt.Sprintf(" ORDER BY start_time DESC LIMIT %d OFFSET %d", f.Limit, f.Offset)
	return r.queryBookings(ctx, query, args...)
}

func (r *bookingRepo) ListByOwner(ctx context.Context, ownerID int64, f repository.BookingFilter) ([]*model.Booking, error) {
	query := `
		SELECT b.id, b.start_time, b.end_time, b.item_id, b.booker_id, b.status
		FROM bookings b
		JOIN items i ON i.id = b.item_id
		WHERE i.owner_id = $1`
	args := []any{ownerID}
	if arg, ok := stateArg(f.State, f.Now); ok {
		query += ownerStateClause(f.State, 2)
		args = append(args, arg)
	}
	query += fmt.Sprintf(" ORDER BY b.start_time DESC LIMIT %d OFFSET %d", f.Limit, f.Offset)
	return r.queryBookings(ctx, query, args...)
}

func ownerStateClause(state model.State, arg int) string {
	switch state {
	case model.StatePast:
		return fmt.Sprintf(" AND b.end_time < $%d", arg)
	case model.StateFuture:
		return fmt.Sprintf(" AND b.start_time > $%d", arg)
	case model.StateCurrent:
		return fmt.Sprintf(" AND b.start_time < $%d AND b.end_time > $%d", arg, arg)
	case model.StateWaiting, model.StateRejected:
		return fmt.Sprintf(" AND b.status = $%d", arg)
	default:
		return ""
	}
}

func (r *bookingRepo) LastForItem(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error) {
	query := `SELECT ` + bookingColumns + `
		FROM bookings
		WHERE item_id = $1 AND status = $2 AND start_time <= $3
		ORDER BY start_time DESC
		LIMIT 1`
	return r.queryBooking(ctx, query, itemID, model.StatusApproved, now)
}

func (r *bookingRepo) NextForItem(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error) {
	query := `SELECT ` + bookingColumns + `
		FROM bookings
		WHERE item_id = $1 AND status = $2 AND start_time > $3
		ORDER BY start_time ASC
		LIMIT 1`
	return r.queryBooking(ctx, query, itemID, model.StatusApproved, now)
}

func (r *bookingRepo) HasCompletedApproved(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE item_id = $1 AND booker_id = $2 AND status = $3 AND end_time <= $4
		)
	`
	var exists bool
	err := r.pool.QueryRow(ctx, query, itemID, bookerID, model.StatusApproved, now).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check completed booking: %w", err)
	}
	return exists, nil
}

func (r *bookingRepo) queryBooking(ctx context.Context, query string, args ...any) (*model.Booking, error) {
	var b model.Booking
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&b.ID, &b.Start, &b.End, &b.ItemID, &b.BookerID, &b.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query booking: %w", err)
	}
	return &b, nil
}

func (r *bookingRepo) queryBookings(ctx context.Context, query string, args ...any) ([]*model.Booking, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query bookings: %w", err)
	}
	defer rows.Close()

	bookings := []*model.Booking{}
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(&b.ID, &b.Start, &b.End, &b.ItemID, &b.BookerID, &b.Status); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, &b)
	}
	return bookings, rows.Err()
}
