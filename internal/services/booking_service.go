package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/joshua-takyi/staybooking/internal/helpers"
	"github.com/joshua-takyi/staybooking/internal/models"
	"github.com/joshua-takyi/staybooking/internal/notify"
)

type BookingInput struct {
	RoomID   int64
	CheckIn  string
	CheckOut string
}

type BookingService struct {
	bookingRepo   models.BookingRepo
	roomRepo      models.RoomRepo
	userRepo      models.UserRepo
	sender        notify.Sender
	logger        *slog.Logger
	notifyTimeout time.Duration
	now           func() time.Time
}

func NewBookingService(
	bookingRepo models.BookingRepo,
	roomRepo models.RoomRepo,
	userRepo models.UserRepo,
	sender notify.Sender,
	logger *slog.Logger,
	notifyTimeout time.Duration,
) *BookingService {
	if notifyTimeout <= 0 {
		notifyTimeout = 10 * time.Second
	}
	return &BookingService{
		bookingRepo:   bookingRepo,
		roomRepo:      roomRepo,
		userRepo:      userRepo,
		sender:        sender,
		logger:        logger,
		notifyTimeout: notifyTimeout,
		now:           time.Now,
	}
}

// CreateBooking records a PENDING request from the caller and tells the room owner about it.
func (bs *BookingService) CreateBooking(ctx context.Context, caller *helpers.CallerIdentity, input BookingInput) (*models.BookingDetails, error) {
	room, err := bs.roomRepo.GetRoomByID(ctx, input.RoomID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load room: %w", err)
	}

	if _, err := bs.userRepo.GetUserByID(ctx, caller.UserID); errors.Is(err, models.ErrNotFound) {
		return nil, ErrAccountNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to load guest: %w", err)
	}

	checkIn, checkOut, err := bs.parseStay(input.CheckIn, input.CheckOut)
	if err != nil {
		return nil, err
	}

	booking, err := bs.bookingRepo.CreateBooking(ctx, &models.Booking{
		RoomID:     room.ID,
		UserID:     caller.UserID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		TotalPrice: float64(models.Nights(checkIn, checkOut)) * room.PricePerNight,
		Status:     models.BookingPending,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	bs.dispatch(ctx, booking.ID, notify.NewBookingRequest(notice(booking)))
	return booking, nil
}

// ConfirmBooking accepts a pending request unless another confirmed stay on the
// same room overlaps it. The overlap check and the write are atomic per room.
func (bs *BookingService) ConfirmBooking(ctx context.Context, caller *helpers.CallerIdentity, bookingID int64) (*models.BookingDetails, error) {
	return bs.transition(ctx, caller, bookingID, func(ctx context.Context, tx models.BookingTx, b *models.BookingDetails) (models.BookingStatus, error) {
		taken, err := tx.HasConfirmedOverlap(ctx, b.RoomID, b.CheckIn, b.CheckOut, b.ID)
		if err != nil {
			return "", err
		}
		if taken {
			return "", ErrDatesTaken
		}
		return models.BookingConfirmed, nil
	})
}

func (bs *BookingService) RejectBooking(ctx context.Context, caller *helpers.CallerIdentity, bookingID int64) (*models.BookingDetails, error) {
	return bs.transition(ctx, caller, bookingID, func(ctx context.Context, tx models.BookingTx, b *models.BookingDetails) (models.BookingStatus, error) {
		return models.BookingRejected, nil
	})
}

func (bs *BookingService) ListMyBookings(ctx context.Context, caller *helpers.CallerIdentity) ([]*models.BookingDetails, error) {
	bookings, err := bs.bookingRepo.ListBookingsByGuest(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// ListManagedBookings returns the bookings made on any room the caller owns.
func (bs *BookingService) ListManagedBookings(ctx context.Context, caller *helpers.CallerIdentity) ([]*models.BookingDetails, error) {
	bookings, err := bs.bookingRepo.ListBookingsByOwner(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list managed bookings: %w", err)
	}
	return bookings, nil
}

func (bs *BookingService) transition(ctx context.Context, caller *helpers.CallerIdentity, bookingID int64, next models.StatusDecision) (*models.BookingDetails, error) {
	booking, err := bs.bookingRepo.UpdateBookingStatus(ctx, bookingID, func(ctx context.Context, tx models.BookingTx, b *models.BookingDetails) (models.BookingStatus, error) {
		if b.OwnerID != caller.UserID {
			return "", ErrNotOwner
		}
		if b.Status != models.BookingPending {
			return "", ErrInvalidTransition
		}
		return next(ctx, tx, b)
	})
	if errors.Is(err, models.ErrNotFound) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}

	bs.dispatch(ctx, booking.ID, notify.BookingStatusChanged(notice(booking)))
	return booking, nil
}

func (bs *BookingService) parseStay(rawIn, rawOut string) (time.Time, time.Time, error) {
	checkIn, err := models.ParseDate(rawIn)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDates
	}
	checkOut, err := models.ParseDate(rawOut)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDates
	}

	y, m, d := bs.now().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if !checkIn.Before(checkOut) || checkIn.Before(today) {
		return time.Time{}, time.Time{}, ErrInvalidDates
	}
	return checkIn, checkOut, nil
}

// dispatch makes one bounded delivery attempt. Failures are logged and never returned.
func (bs *BookingService) dispatch(ctx context.Context, bookingID int64, msg notify.Message) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), bs.notifyTimeout)
	defer cancel()

	if err := bs.sender.Send(ctx, msg); err != nil {
		bs.logger.WarnContext(ctx, "Failed to send notification",
			"booking_id", bookingID,
			"to", msg.To,
			"subject", msg.Subject,
			"error", err,
		)
	}
}

func notice(b *models.BookingDetails) notify.BookingNotice {
	return notify.BookingNotice{
		RoomTitle:  b.RoomTitle,
		OwnerName:  b.OwnerName,
		OwnerEmail: b.OwnerEmail,
		GuestName:  b.GuestName,
		GuestEmail: b.GuestEmail,
		CheckIn:    b.CheckIn.Format(models.DateLayout),
		CheckOut:   b.CheckOut.Format(models.DateLayout),
		TotalPrice: b.TotalPrice,
		Status:     string(b.Status),
	}
}
