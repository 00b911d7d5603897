package domain

import (
	"time"

	"github.com/google/uuid"
)

type ReservationStatus string

const (
	ReservationConfirmed ReservationStatus = "CONFIRMED"
	ReservationCancelled ReservationStatus = "CANCELLED"
)

// Reservation is a stay booked for a single room. Dates are calendar
// dates (UTC midnight, no time of day) and the occupied interval is
// half-open: [CheckIn, CheckOut). A guest departing on day X does not
// block a stay beginning on day X.
//
// CreatedBy and CancelledBy carry the opaque actor reference supplied
// by the caller; the core never inspects it.
type Reservation struct {
	ID          uuid.UUID
	GuestName   string
	RoomID      int64
	CheckIn     time.Time
	CheckOut    time.Time
	Status      ReservationStatus
	CreatedBy   string
	CreatedAt   time.Time
	CancelledBy string
	CancelledAt *time.Time
}

func (r *Reservation) IsConfirmed() bool {
	return r.Status == ReservationConfirmed
}

// Nights returns the length of the stay in nights.
func (r *Reservation) Nights() int {
	return int(r.CheckOut.Sub(r.CheckIn) / (24 * time.Hour))
}

// Overlaps reports whether [start, end) intersects the reservation's
// interval. An empty or inverted candidate range never overlaps, and
// touching intervals do not overlap.
func (r *Reservation) Overlaps(start, end time.Time) bool {
	if !end.After(start) {
		return false
	}
	return end.After(r.CheckIn) && start.Before(r.CheckOut)
}
