package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/srgjo27/hotel_reservation/internal/core/domain"
)

type RoomCatalog struct {
	db *sql.DB
}

func NewRoomCatalog(db *sql.DB) *RoomCatalog {
	return &RoomCatalog{db: db}
}

func (r *RoomCatalog) GetByID(ctx context.Context, roomID int64) (*domain.Room, error) {
	query := `
	SELECT id, name, base_rate, category, floor, capacity
	FROM rooms
	WHERE id = $1
	`

	var room domain.Room
	err := r.db.QueryRowContext(ctx, query, roomID).Scan(
		&room.ID,
		&room.Name,
		&room.BaseRate,
		&room.Category,
		&room.Floor,
		&room.Capacity,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to load room %d: %w", roomID, err)
	}

	return &room, nil
}

func (r *RoomCatalog) ListRooms(ctx context.Context) ([]domain.Room, error) {
	query := `
	SELECT id, name, base_rate, category, floor, capacity
	FROM rooms
	ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var rooms []domain.Room
	for rows.Next() {
		var room domain.Room
		if err := rows.Scan(
			&room.ID,
			&room.Name,
			&room.BaseRate,
			&room.Category,
			&room.Floor,
			&room.Capacity,
		); err != nil {
			return nil, err
		}

		rooms = append(rooms, room)
	}

	return rooms, rows.Err()
}
