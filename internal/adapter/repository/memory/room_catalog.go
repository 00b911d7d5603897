// Package memory provides in-process implementations of the booking
// ports. They back the service in tests and in single-node deployments
// that run without a database.
package memory

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/srgjo27/hotel_reservation/internal/core/domain"
)

// RoomCatalog holds the room inventory in memory. Rooms are returned
// in the order they were added, which for the seed set is ascending
// room number.
type RoomCatalog struct {
	mu    sync.RWMutex
	rooms []domain.Room
}

func NewRoomCatalog(rooms ...domain.Room) *RoomCatalog {
	c := &RoomCatalog{}
	c.rooms = append(c.rooms, rooms...)
	return c
}

// SeedRooms returns the default hotel inventory.
func SeedRooms() []domain.Room {
	return []domain.Room{
		{ID: 101, Name: "Estándar 101", BaseRate: decimal.NewFromInt(100), Category: domain.CategoryStandard, Floor: 1, Capacity: 2},
		{ID: 102, Name: "Estándar 102", BaseRate: decimal.NewFromInt(100), Category: domain.CategoryStandard, Floor: 1, Capacity: 2},
		{ID: 103, Name: "Estándar 103", BaseRate: decimal.NewFromInt(110), Category: domain.CategoryStandard, Floor: 1, Capacity: 3},
		{ID: 201, Name: "Suite 201", BaseRate: decimal.NewFromInt(180), Category: domain.CategorySuite, Floor: 2, Capacity: 2},
		{ID: 202, Name: "Suite 202", BaseRate: decimal.NewFromInt(190), Category: domain.CategorySuite, Floor: 2, Capacity: 4},
		{ID: 301, Name: "Premium 301", BaseRate: decimal.NewFromInt(250), Category: domain.CategoryPremium, Floor: 3, Capacity: 2},
	}
}

// AddRoom registers a new room. Existing rooms are never replaced.
func (c *RoomCatalog) AddRoom(room domain.Room) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rooms = append(c.rooms, room)
}

func (c *RoomCatalog) GetByID(_ context.Context, roomID int64) (*domain.Room, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for i := range c.rooms {
		if c.rooms[i].ID == roomID {
			room := c.rooms[i]
			return &room, nil
		}
	}

	return nil, domain.ErrRoomNotFound
}

func (c *RoomCatalog) ListRooms(_ context.Context) ([]domain.Room, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.Room, len(c.rooms))
	copy(out, c.rooms)
	return out, nil
}
