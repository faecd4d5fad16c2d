package models

import (
	"context"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingRejected  BookingStatus = "REJECTED"
)

type Booking struct {
	ID         int64         `db:"id"`
	RoomID     int64         `db:"room_id"`
	UserID     int64         `db:"user_id"`
	CheckIn    time.Time     `db:"check_in"`
	CheckOut   time.Time     `db:"check_out"`
	TotalPrice float64       `db:"total_price"`
	Status     BookingStatus `db:"status"`
	CreatedAt  time.Time     `db:"created_at"`
	UpdatedAt  time.Time     `db:"updated_at"`
}

// BookingDetails is a booking joined with its room, the room owner and the guest.
type BookingDetails struct {
	Booking
	RoomTitle  string `db:"room_title"`
	OwnerID    int64  `db:"owner_id"`
	OwnerName  string `db:"owner_name"`
	OwnerEmail string `db:"owner_email"`
	GuestName  string `db:"guest_name"`
	GuestEmail string `db:"guest_email"`
}

// DatesOverlap reports whether the half-open ranges [aIn, aOut) and [bIn, bOut) intersect.
// Ranges that only touch at an endpoint do not overlap.
func DatesOverlap(aIn, aOut, bIn, bOut time.Time) bool {
	return aIn.Before(bOut) && aOut.After(bIn)
}

func (b *Booking) Overlaps(checkIn, checkOut time.Time) bool {
	return DatesOverlap(b.CheckIn, b.CheckOut, checkIn, checkOut)
}

// Nights counts the nights between two calendar dates, never less than one.
func Nights(checkIn, checkOut time.Time) int {
	nights := int(checkOut.Sub(checkIn).Hours() / 24)
	if nights <= 0 {
		nights = 1
	}
	return nights
}

// ParseDate parses an ISO calendar date (YYYY-MM-DD) as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

// BookingTx is the view of the store available while a status change is being decided.
type BookingTx interface {
	HasConfirmedOverlap(ctx context.Context, roomID int64, checkIn, checkOut time.Time, excludeID int64) (bool, error)
}

// StatusDecision inspects a locked booking and returns the status to persist.
// Returning an error aborts the change. A decision must only read through tx.
type StatusDecision func(ctx context.Context, tx BookingTx, booking *BookingDetails) (BookingStatus, error)

type BookingRepo interface {
	CreateBooking(ctx context.Context, booking *Booking) (*BookingDetails, error)
	GetBookingByID(ctx context.Context, id int64) (*BookingDetails, error)
	ListBookingsByGuest(ctx context.Context, userID int64) ([]*BookingDetails, error)
	ListBookingsByOwner(ctx context.Context, ownerID int64) ([]*BookingDetails, error)
	// UpdateBookingStatus serialises status changes per room: the decision and
	// the write happen atomically with respect to other changes on the same room.
	UpdateBookingStatus(ctx context.Context, id int64, decide StatusDecision) (*BookingDetails, error)
}
