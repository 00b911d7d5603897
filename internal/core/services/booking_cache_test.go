package services_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/hotel_reservation/internal/core/domain"
	"github.com/srgjo27/hotel_reservation/internal/core/ports/mocks"
	"github.com/srgjo27/hotel_reservation/internal/core/services"
)

func TestListAvailableRooms_CachesListing(t *testing.T) {
	mockCatalog := mocks.NewRoomCatalog(t)
	mockStore := mocks.NewReservationStore(t)
	cache, mockRedis := redismock.NewClientMock()

	service := services.NewBookingService(mockCatalog, mockStore, cache, zerolog.Nop())

	ctx := context.Background()
	rooms := []domain.Room{{
		ID:       101,
		Name:     "Estándar 101",
		BaseRate: decimal.NewFromInt(100),
		Category: domain.CategoryStandard,
	}}

	mockCatalog.On("ListRooms", ctx).Return(rooms, nil).Once()
	mockStore.On("ListByRoom", ctx, int64(101)).Return(nil, nil).Once()

	payload, err := json.Marshal(rooms)
	require.NoError(t, err)

	cacheKey := "rooms:available:0:2024-01-10:2024-01-13:"

	// first call misses and fills the cache
	mockRedis.ExpectGet("rooms:available:epoch").RedisNil()
	mockRedis.ExpectGet(cacheKey).RedisNil()
	mockRedis.ExpectSet(cacheKey, payload, 30*time.Second).SetVal("OK")

	// second call is served from the cache without touching the store
	mockRedis.ExpectGet("rooms:available:epoch").RedisNil()
	mockRedis.ExpectGet(cacheKey).SetVal(string(payload))

	first, err := service.ListAvailableRooms(ctx, date(10), date(13), domain.CategoryAny)
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := service.ListAvailableRooms(ctx, date(10), date(13), domain.CategoryAny)
	require.NoError(t, err)
	assert.Equal(t, first[0].ID, second[0].ID)

	if err := mockRedis.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestListAvailableRooms_CacheOutageFallsThrough(t *testing.T) {
	mockCatalog := mocks.NewRoomCatalog(t)
	mockStore := mocks.NewReservationStore(t)
	cache, mockRedis := redismock.NewClientMock()

	service := services.NewBookingService(mockCatalog, mockStore, cache, zerolog.Nop())

	ctx := context.Background()
	rooms := []domain.Room{{ID: 101, Category: domain.CategoryStandard}}

	mockCatalog.On("ListRooms", ctx).Return(rooms, nil)
	mockStore.On("ListByRoom", ctx, int64(101)).Return(nil, nil)

	mockRedis.ExpectGet("rooms:available:epoch").SetErr(assert.AnError)

	got, err := service.ListAvailableRooms(ctx, date(10), date(13), domain.CategoryAny)
	require.NoError(t, err, "a cache outage must not fail the listing")
	require.Len(t, got, 1)
}
