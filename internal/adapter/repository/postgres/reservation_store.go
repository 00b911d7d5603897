package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/srgjo27/hotel_reservation/internal/core/domain"
)

// txKey carries the transaction opened by WithRoomLock so that store
// calls made inside the lock scope join it.
type txKey struct{}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type ReservationStore struct {
	db *sql.DB
}

func NewReservationStore(db *sql.DB) *ReservationStore {
	return &ReservationStore{db: db}
}

func (r *ReservationStore) conn(ctx context.Context) querier {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return r.db
}

// WithRoomLock opens a transaction and takes a per-room advisory lock
// before running fn. The lock rides the transaction: commit and
// rollback both release it, so no failure path can leak it. Locks for
// different room ids never contend.
func (r *ReservationStore) WithRoomLock(ctx context.Context, roomID int64, fn func(ctx context.Context) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin booking transaction: %w", err)
	}

	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, roomID); err != nil {
		return fmt.Errorf("failed to acquire room lock %d: %w", roomID, err)
	}

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit booking transaction: %w", err)
	}

	return nil
}

func (r *ReservationStore) Insert(ctx context.Context, res *domain.Reservation) error {
	if !res.CheckOut.After(res.CheckIn) {
		return domain.ErrValidation
	}

	res.ID = uuid.New()

	query := `
	INSERT INTO reservations (id, guest_name, room_id, check_in, check_out, status, created_by, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.conn(ctx).ExecContext(ctx, query,
		res.ID, res.GuestName, res.RoomID, res.CheckIn, res.CheckOut, res.Status, res.CreatedBy, res.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert reservation: %w", err)
	}

	return nil
}

const reservationColumns = `id, guest_name, room_id, check_in, check_out, status, created_by, created_at, cancelled_by, cancelled_at`

func scanReservation(scan func(dest ...any) error) (*domain.Reservation, error) {
	var res domain.Reservation
	var cancelledBy sql.NullString
	var cancelledAt sql.NullTime

	err := scan(
		&res.ID,
		&res.GuestName,
		&res.RoomID,
		&res.CheckIn,
		&res.CheckOut,
		&res.Status,
		&res.CreatedBy,
		&res.CreatedAt,
		&cancelledBy,
		&cancelledAt,
	)
	if err != nil {
		return nil, err
	}

	if cancelledBy.Valid {
		res.CancelledBy = cancelledBy.String
	}
	if cancelledAt.Valid {
		at := cancelledAt.Time
		res.CancelledAt = &at
	}

	return &res, nil
}

func (r *ReservationStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

	row := r.conn(ctx).QueryRowContext(ctx, query, id)
	res, err := scanReservation(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to load reservation %s: %w", id, err)
	}

	return res, nil
}

func (r *ReservationStore) ListByRoom(ctx context.Context, roomID int64) ([]domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE room_id = $1`

	rows, err := r.conn(ctx).QueryContext(ctx, query, roomID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	return collectReservations(rows)
}

func (r *ReservationStore) ListAll(ctx context.Context) ([]domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations ORDER BY check_in DESC`

	rows, err := r.conn(ctx).QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	return collectReservations(rows)
}

func collectReservations(rows *sql.Rows) ([]domain.Reservation, error) {
	var out []domain.Reservation
	for rows.Next() {
		res, err := scanReservation(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	return out, rows.Err()
}

// Cancel flips a confirmed reservation to Cancelled. A reservation
// that is already cancelled reports success without touching its
// audit fields; an unknown id reports (false, nil).
func (r *ReservationStore) Cancel(ctx context.Context, id uuid.UUID, actor string, at time.Time) (bool, error) {
	query := `
	UPDATE reservations
	SET status = $2, cancelled_by = $3, cancelled_at = $4
	WHERE id = $1 AND status = $5
	`

	result, err := r.conn(ctx).ExecContext(ctx, query,
		id, domain.ReservationCancelled, actor, at, domain.ReservationConfirmed)
	if err != nil {
		return false, fmt.Errorf("failed to cancel reservation %s: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	if affected > 0 {
		return true, nil
	}

	// nothing flipped: either already cancelled (idempotent success)
	// or the id is unknown
	var status domain.ReservationStatus
	err = r.conn(ctx).QueryRowContext(ctx, `SELECT status FROM reservations WHERE id = $1`, id).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return status == domain.ReservationCancelled, nil
}
