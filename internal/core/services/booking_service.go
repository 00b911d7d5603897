package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/srgjo27/hotel_reservation/internal/core/domain"
	"github.com/srgjo27/hotel_reservation/internal/core/ports"
)

const (
	dateLayout = "2006-01-02"

	// availabilityEpochKey is bumped on every booking or cancellation
	// so that cached room listings from before the write can never be
	// served again.
	availabilityEpochKey = "rooms:available:epoch"
	availabilityCacheTTL = 30 * time.Second
)

// BookingService orchestrates reservation creation, cancellation and
// cost calculation on top of a room catalog and a reservation store.
// It owns the availability decision: no two confirmed reservations for
// the same room may overlap, even under concurrent booking attempts.
type BookingService struct {
	catalog ports.RoomCatalog
	store   ports.ReservationStore
	cache   *redis.Client
	log     zerolog.Logger
}

// NewBookingService wires the service. cache may be nil, in which case
// availability listings are always computed from the store.
func NewBookingService(catalog ports.RoomCatalog, store ports.ReservationStore, cache *redis.Client, log zerolog.Logger) *BookingService {
	return &BookingService{
		catalog: catalog,
		store:   store,
		cache:   cache,
		log:     log,
	}
}

// normalizeDate strips any time-of-day component; reservations operate
// on calendar dates at UTC midnight.
func normalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CreateReservation books a room for [checkIn, checkOut). The
// availability check and the insert run inside the store's per-room
// lock scope so that concurrent attempts on the same room cannot both
// be admitted.
func (s *BookingService) CreateReservation(ctx context.Context, guestName string, roomID int64, checkIn, checkOut time.Time, actor string) (*domain.Reservation, error) {
	checkIn = normalizeDate(checkIn)
	checkOut = normalizeDate(checkOut)

	if !checkOut.After(checkIn) {
		return nil, domain.ErrInvalidDateRange
	}

	room, err := s.catalog.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	var created *domain.Reservation

	err = s.store.WithRoomLock(ctx, room.ID, func(ctx context.Context) error {
		available, err := s.isAvailable(ctx, room.ID, checkIn, checkOut)
		if err != nil {
			return err
		}
		if !available {
			return domain.ErrRoomUnavailable
		}

		res := &domain.Reservation{
			GuestName: guestName,
			RoomID:    room.ID,
			CheckIn:   checkIn,
			CheckOut:  checkOut,
			Status:    domain.ReservationConfirmed,
			CreatedBy: actor,
			CreatedAt: time.Now().UTC(),
		}

		if err := s.store.Insert(ctx, res); err != nil {
			return err
		}

		created = res
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.bumpAvailabilityEpoch(ctx)

	s.log.Info().
		Str("reservation_id", created.ID.String()).
		Int64("room_id", room.ID).
		Str("check_in", checkIn.Format(dateLayout)).
		Str("check_out", checkOut.Format(dateLayout)).
		Msg("reservation confirmed")

	return created, nil
}

// CancelReservation flips the reservation to Cancelled, recording the
// acting party. It reports false when the id is unknown; re-cancelling
// an already-cancelled reservation is an idempotent success.
func (s *BookingService) CancelReservation(ctx context.Context, id uuid.UUID, actor string) (bool, error) {
	cancelled, err := s.store.Cancel(ctx, id, actor, time.Now().UTC())
	if err != nil {
		return false, err
	}

	if cancelled {
		s.bumpAvailabilityEpoch(ctx)
		s.log.Info().Str("reservation_id", id.String()).Msg("reservation cancelled")
	}

	return cancelled, nil
}

// CalculateCost prices the reservation's stay under its room's
// category strategy. Cancelled reservations remain priceable.
func (s *BookingService) CalculateCost(ctx context.Context, id uuid.UUID) (decimal.Decimal, error) {
	res, err := s.store.GetByID(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}

	room, err := s.catalog.GetByID(ctx, res.RoomID)
	if err != nil {
		return decimal.Zero, err
	}

	return room.PriceForStay(res.Nights()), nil
}

// IsAvailable reports whether the room is free over [start, end). An
// empty or inverted range is never available.
func (s *BookingService) IsAvailable(ctx context.Context, roomID int64, start, end time.Time) (bool, error) {
	return s.isAvailable(ctx, roomID, normalizeDate(start), normalizeDate(end))
}

func (s *BookingService) isAvailable(ctx context.Context, roomID int64, start, end time.Time) (bool, error) {
	if !end.After(start) {
		return false, nil
	}

	reservations, err := s.store.ListByRoom(ctx, roomID)
	if err != nil {
		return false, err
	}

	for i := range reservations {
		res := &reservations[i]
		if !res.IsConfirmed() {
			continue
		}
		if res.Overlaps(start, end) {
			return false, nil
		}
	}

	return true, nil
}

// ListAvailableRooms returns the rooms free over [start, end) in
// catalog order, optionally restricted to a category. Results are
// cached briefly; the cache is never consulted by CreateReservation.
func (s *BookingService) ListAvailableRooms(ctx context.Context, start, end time.Time, category domain.RoomCategory) ([]domain.Room, error) {
	start = normalizeDate(start)
	end = normalizeDate(end)

	if !end.After(start) {
		return nil, domain.ErrInvalidDateRange
	}

	key := s.availabilityKey(ctx, start, end, category)
	if rooms, ok := s.cachedAvailability(ctx, key); ok {
		return rooms, nil
	}

	rooms, err := s.catalog.ListRooms(ctx)
	if err != nil {
		return nil, err
	}

	available := make([]domain.Room, 0, len(rooms))
	for _, room := range rooms {
		if !room.MatchesCategory(category) {
			continue
		}

		free, err := s.isAvailable(ctx, room.ID, start, end)
		if err != nil {
			return nil, err
		}
		if free {
			available = append(available, room)
		}
	}

	s.storeAvailability(ctx, key, available)

	return available, nil
}

// ListRooms returns the full catalog.
func (s *BookingService) ListRooms(ctx context.Context) ([]domain.Room, error) {
	return s.catalog.ListRooms(ctx)
}

// ListReservations returns every reservation, newest check-in first.
func (s *BookingService) ListReservations(ctx context.Context) ([]domain.Reservation, error) {
	return s.store.ListAll(ctx)
}

// availabilityKey builds the epoch-scoped cache key for a listing
// query. A cache failure degrades to an empty key, which disables
// caching for the request.
func (s *BookingService) availabilityKey(ctx context.Context, start, end time.Time, category domain.RoomCategory) string {
	if s.cache == nil {
		return ""
	}

	epoch, err := s.cache.Get(ctx, availabilityEpochKey).Result()
	if errors.Is(err, redis.Nil) {
		epoch = "0"
	} else if err != nil {
		s.log.Warn().Err(err).Msg("availability cache unreachable, skipping")
		return ""
	}

	return fmt.Sprintf("rooms:available:%s:%s:%s:%s",
		epoch, start.Format(dateLayout), end.Format(dateLayout), category)
}

func (s *BookingService) cachedAvailability(ctx context.Context, key string) ([]domain.Room, bool) {
	if s.cache == nil || key == "" {
		return nil, false
	}

	payload, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warn().Err(err).Msg("availability cache read failed")
		}
		return nil, false
	}

	var rooms []domain.Room
	if err := json.Unmarshal(payload, &rooms); err != nil {
		s.log.Warn().Err(err).Msg("availability cache entry corrupt, ignoring")
		return nil, false
	}

	return rooms, true
}

func (s *BookingService) storeAvailability(ctx context.Context, key string, rooms []domain.Room) {
	if s.cache == nil || key == "" {
		return
	}

	payload, err := json.Marshal(rooms)
	if err != nil {
		return
	}

	if err := s.cache.Set(ctx, key, payload, availabilityCacheTTL).Err(); err != nil {
		s.log.Warn().Err(err).Msg("availability cache write failed")
	}
}

func (s *BookingService) bumpAvailabilityEpoch(ctx context.Context) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Incr(ctx, availabilityEpochKey).Err(); err != nil {
		s.log.Warn().Err(err).Msg("availability cache invalidation failed")
	}
}
