package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/srgjo27/hotel_reservation/internal/core/domain"
)

// ReservationStore keeps reservations in a map guarded by a RWMutex.
// Booking mutual exclusion is scoped per room: each room id gets its
// own lock, so bookings for distinct rooms never serialize against
// each other.
type ReservationStore struct {
	mu           sync.RWMutex
	reservations map[uuid.UUID]*domain.Reservation

	lockMu    sync.Mutex
	roomLocks map[int64]*sync.Mutex
}

func NewReservationStore() *ReservationStore {
	return &ReservationStore{
		reservations: make(map[uuid.UUID]*domain.Reservation),
		roomLocks:    make(map[int64]*sync.Mutex),
	}
}

func (s *ReservationStore) roomLock(roomID int64) *sync.Mutex {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()

	lock, ok := s.roomLocks[roomID]
	if !ok {
		lock = &sync.Mutex{}
		s.roomLocks[roomID] = lock
	}
	return lock
}

// WithRoomLock runs fn while holding the room's lock. The lock is
// released on every path, including when fn fails.
func (s *ReservationStore) WithRoomLock(ctx context.Context, roomID int64, fn func(ctx context.Context) error) error {
	lock := s.roomLock(roomID)
	lock.Lock()
	defer lock.Unlock()

	return fn(ctx)
}

// Insert assigns a fresh id and stores a copy of the reservation.
func (s *ReservationStore) Insert(_ context.Context, res *domain.Reservation) error {
	if !res.CheckOut.After(res.CheckIn) {
		return domain.ErrValidation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res.ID = uuid.New()
	stored := *res
	s.reservations[res.ID] = &stored
	return nil
}

func (s *ReservationStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res, ok := s.reservations[id]
	if !ok {
		return nil, domain.ErrReservationNotFound
	}

	out := *res
	return &out, nil
}

func (s *ReservationStore) ListByRoom(_ context.Context, roomID int64) ([]domain.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Reservation
	for _, res := range s.reservations {
		if res.RoomID == roomID {
			out = append(out, *res)
		}
	}
	return out, nil
}

func (s *ReservationStore) ListAll(_ context.Context) ([]domain.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Reservation, 0, len(s.reservations))
	for _, res := range s.reservations {
		out = append(out, *res)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CheckIn.After(out[j].CheckIn)
	})
	return out, nil
}

// Cancel flips the reservation to Cancelled. Missing ids report
// (false, nil); re-cancelling is an idempotent success.
func (s *ReservationStore) Cancel(_ context.Context, id uuid.UUID, actor string, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, ok := s.reservations[id]
	if !ok {
		return false, nil
	}

	if res.Status == domain.ReservationCancelled {
		return true, nil
	}

	res.Status = domain.ReservationCancelled
	res.CancelledBy = actor
	res.CancelledAt = &at
	return true, nil
}
