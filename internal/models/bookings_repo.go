package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

const bookingDetailsQuery = `SELECT b.id, b.room_id, b.user_id, b.check_in, b.check_out, b.total_price,
       b.status, b.created_at, b.updated_at,
       r.title AS room_title, r.owner_id AS owner_id, o.name AS owner_name, o.email AS owner_email,
       g.name AS guest_name, g.email AS guest_email
FROM bookings b
JOIN rooms r ON r.id = b.room_id
JOIN users o ON o.id = r.owner_id
JOIN users g ON g.id = b.user_id`

func (r *PostgresRepo) CreateBooking(ctx context.Context, booking *Booking) (*BookingDetails, error) {
	query := `INSERT INTO bookings (room_id, user_id, check_in, check_out, total_price, status)
	          VALUES ($1, $2, $3::date, $4::date, $5, $6) RETURNING id`
	var id int64
	err := r.db.QueryRowxContext(ctx, query,
		booking.RoomID, booking.UserID,
		booking.CheckIn.Format(DateLayout), booking.CheckOut.Format(DateLayout),
		booking.TotalPrice, booking.Status,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}
	return r.GetBookingByID(ctx, id)
}

func (r *PostgresRepo) GetBookingByID(ctx context.Context, id int64) (*BookingDetails, error) {
	var booking BookingDetails
	err := r.db.GetContext(ctx, &booking, bookingDetailsQuery+" WHERE b.id=$1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get booking by ID: %w", err)
	}
	return &booking, nil
}

func (r *PostgresRepo) ListBookingsByGuest(ctx context.Context, userID int64) ([]*BookingDetails, error) {
	bookings := []*BookingDetails{}
	err := r.db.SelectContext(ctx, &bookings, bookingDetailsQuery+" WHERE b.user_id=$1 ORDER BY b.check_in, b.id", userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list guest bookings: %w", err)
	}
	return bookings, nil
}

func (r *PostgresRepo) ListBookingsByOwner(ctx context.Context, ownerID int64) ([]*BookingDetails, error) {
	bookings := []*BookingDetails{}
	err := r.db.SelectContext(ctx, &bookings, bookingDetailsQuery+" WHERE r.owner_id=$1 ORDER BY b.check_in, b.id", ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list managed bookings: %w", err)
	}
	return bookings, nil
}

// UpdateBookingStatus locks the booking's room row for the duration of the
// transaction, so two confirmations on one room cannot both pass the overlap check.
func (r *PostgresRepo) UpdateBookingStatus(ctx context.Context, id int64, decide StatusDecision) (*BookingDetails, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var roomID int64
	if err := tx.GetContext(ctx, &roomID, "SELECT room_id FROM bookings WHERE id=$1", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "SELECT id FROM rooms WHERE id=$1 FOR UPDATE", roomID); err != nil {
		return nil, fmt.Errorf("failed to lock room: %w", err)
	}

	var booking BookingDetails
	if err := tx.GetContext(ctx, &booking, bookingDetailsQuery+" WHERE b.id=$1 FOR UPDATE OF b", id); err != nil {
		return nil, fmt.Errorf("failed to lock booking: %w", err)
	}

	status, err := decide(ctx, postgresBookingTx{tx: tx}, &booking)
	if err != nil {
		return nil, err
	}

	err = tx.QueryRowxContext(ctx,
		"UPDATE bookings SET status=$1, updated_at=now() WHERE id=$2 RETURNING updated_at", status, id,
	).Scan(&booking.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit booking status: %w", err)
	}
	booking.Status = status
	return &booking, nil
}

type postgresBookingTx struct {
	tx *sqlx.Tx
}

func (p postgresBookingTx) HasConfirmedOverlap(ctx context.Context, roomID int64, checkIn, checkOut time.Time, excludeID int64) (bool, error) {
	var exists bool
	err := p.tx.GetContext(ctx, &exists, `SELECT EXISTS (
		SELECT 1 FROM bookings
		WHERE room_id = $1 AND status = $2 AND id <> $3
		  AND check_in < $4::date AND check_out > $5::date)`,
		roomID, BookingConfirmed, excludeID, checkOut.Format(DateLayout), checkIn.Format(DateLayout))
	if err != nil {
		return false, fmt.Errorf("failed to check overlapping bookings: %w", err)
	}
	return exists, nil
}
