package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

const roomDetailsQuery = `SELECT r.id, r.owner_id, r.title, r.description, r.city, r.price_per_night,
       r.max_guests, r.image_url, r.created_at, u.name AS owner_name, u.email AS owner_email
FROM rooms r
JOIN users u ON u.id = r.owner_id`

func (r *PostgresRepo) CreateRoom(ctx context.Context, room *Room) (*RoomDetails, error) {
	query := `INSERT INTO rooms (owner_id, title, description, city, price_per_night, max_guests, image_url)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	var id int64
	err := r.db.QueryRowxContext(ctx, query,
		room.OwnerID, room.Title, room.Description, room.City, room.PricePerNight, room.MaxGuests, room.ImageURL,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}
	return r.GetRoomByID(ctx, id)
}

func (r *PostgresRepo) GetRoomByID(ctx context.Context, id int64) (*RoomDetails, error) {
	var room RoomDetails
	err := r.db.GetContext(ctx, &room, roomDetailsQuery+" WHERE r.id=$1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get room by ID: %w", err)
	}
	return &room, nil
}

// SearchRooms builds the WHERE clause from whichever filters are set.
func (r *PostgresRepo) SearchRooms(ctx context.Context, filter RoomFilter) ([]*RoomDetails, error) {
	query := roomDetailsQuery + " WHERE 1=1"
	args := []interface{}{}
	if city := strings.TrimSpace(filter.City); city != "" {
		query += " AND LOWER(r.city) LIKE ?"
		args = append(args, "%"+strings.ToLower(city)+"%")
	}
	if filter.Guests > 0 {
		query += " AND r.max_guests >= ?"
		args = append(args, filter.Guests)
	}
	if filter.HasDates() {
		query += ` AND NOT EXISTS (
			SELECT 1 FROM bookings b
			WHERE b.room_id = r.id AND b.status = ?
			  AND b.check_in < ?::date AND b.check_out > ?::date)`
		args = append(args, BookingConfirmed,
			filter.CheckOut.Format(DateLayout), filter.CheckIn.Format(DateLayout))
	}
	query += " ORDER BY r.id"
	query = sqlx.Rebind(sqlx.DOLLAR, query)

	rooms := []*RoomDetails{}
	if err := r.db.SelectContext(ctx, &rooms, query, args...); err != nil {
		return nil, fmt.Errorf("failed to search rooms: %w", err)
	}
	return rooms, nil
}
