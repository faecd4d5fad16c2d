package models

import (
	"context"
	"time"
)

type Room struct {
	ID            int64     `db:"id" json:"id"`
	OwnerID       int64     `db:"owner_id" json:"-"`
	Title         string    `db:"title" json:"title" validate:"required,max=200"`
	Description   string    `db:"description" json:"description"`
	City          string    `db:"city" json:"city" validate:"required,max=120"`
	PricePerNight float64   `db:"price_per_night" json:"pricePerNight" validate:"gt=0"`
	MaxGuests     int       `db:"max_guests" json:"maxGuests" validate:"gt=0"`
	ImageURL      string    `db:"image_url" json:"imageUrl"`
	CreatedAt     time.Time `db:"created_at" json:"-"`
}

// RoomDetails is a room joined with the owner columns a listing needs.
type RoomDetails struct {
	Room
	OwnerName  string `db:"owner_name"`
	OwnerEmail string `db:"owner_email"`
}

// RoomFilter narrows a room listing. City is a case-insensitive substring;
// the date pair is optional and, when set, excludes rooms with an
// overlapping confirmed booking.
type RoomFilter struct {
	City     string
	Guests   int
	CheckIn  *time.Time
	CheckOut *time.Time
}

func (f RoomFilter) HasDates() bool {
	return f.CheckIn != nil && f.CheckOut != nil
}

type RoomRepo interface {
	CreateRoom(ctx context.Context, room *Room) (*RoomDetails, error)
	GetRoomByID(ctx context.Context, id int64) (*RoomDetails, error)
	SearchRooms(ctx context.Context, filter RoomFilter) ([]*RoomDetails, error)
}
