package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/hotel_reservation/internal/core/domain"
)

// RoomCatalog is the read-only source of bookable rooms. The booking
// core never mutates the catalog.
type RoomCatalog interface {
	GetByID(ctx context.Context, roomID int64) (*domain.Room, error)
	ListRooms(ctx context.Context) ([]domain.Room, error)
}

// ReservationStore owns the reservation collection. Reservations are
// append-only apart from the one-way Confirmed -> Cancelled status
// flip; cancelled rows are retained for cost queries.
type ReservationStore interface {
	// Insert assigns a fresh identifier and persists the reservation.
	// It returns domain.ErrValidation when the dates violate the
	// check-out > check-in invariant.
	Insert(ctx context.Context, res *domain.Reservation) error

	GetByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error)

	// ListByRoom returns every reservation for the room regardless of
	// status, so callers can run overlap checks themselves.
	ListByRoom(ctx context.Context, roomID int64) ([]domain.Reservation, error)

	// ListAll returns every reservation ordered by check-in descending.
	ListAll(ctx context.Context) ([]domain.Reservation, error)

	// Cancel flips a reservation to Cancelled, recording the actor.
	// Cancelling an already-cancelled reservation is an idempotent
	// success; a missing id yields (false, nil).
	Cancel(ctx context.Context, id uuid.UUID, actor string, at time.Time) (bool, error)

	// WithRoomLock runs fn under mutual exclusion scoped to the given
	// room. Locks for distinct rooms are independent; a booking
	// decision for room A never serializes against room B. Store
	// methods invoked inside fn observe and join the lock scope (for
	// transactional stores, the surrounding transaction).
	WithRoomLock(ctx context.Context, roomID int64, fn func(ctx context.Context) error) error
}
