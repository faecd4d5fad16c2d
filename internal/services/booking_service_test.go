package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/joshua-takyi/staybooking/internal/models"
)

func TestCreateBookingPricing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cheap, err := env.repo.CreateRoom(ctx, &models.Room{
		OwnerID: env.host.UserID, Title: "Box Room", City: "Berlin", PricePerNight: 50, MaxGuests: 1,
	})
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}

	b, err := env.bookings.CreateBooking(ctx, env.guest, BookingInput{
		RoomID: cheap.ID, CheckIn: "2025-06-01", CheckOut: "2025-06-04",
	})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if b.TotalPrice != 150 {
		t.Errorf("expected total 150, got %v", b.TotalPrice)
	}
	if b.Status != models.BookingPending {
		t.Errorf("expected PENDING, got %s", b.Status)
	}
	if b.ID == 0 {
		t.Error("expected an assigned id")
	}
}

func TestCreateBookingNotifiesOwner(t *testing.T) {
	env := newTestEnv(t)
	env.book(t, "2025-06-01", "2025-06-03")

	sent := env.sender.messages()
	if len(sent) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(sent))
	}
	if sent[0].To != "host@example.com" {
		t.Errorf("expected owner recipient, got %q", sent[0].To)
	}
}

func TestCreateBookingSurvivesNotificationFailure(t *testing.T) {
	env := newTestEnv(t)
	env.sender.err = errors.New("smtp down")

	b := env.book(t, "2025-06-01", "2025-06-03")
	if b.Status != models.BookingPending {
		t.Errorf("expected PENDING, got %s", b.Status)
	}
}

func TestCreateBookingValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input BookingInput
		want  error
	}{
		{"unknown room", BookingInput{RoomID: 999, CheckIn: "2025-06-01", CheckOut: "2025-06-02"}, ErrRoomNotFound},
		{"check-in equals check-out", BookingInput{RoomID: env.room.ID, CheckIn: "2025-06-01", CheckOut: "2025-06-01"}, ErrInvalidDates},
		{"check-in after check-out", BookingInput{RoomID: env.room.ID, CheckIn: "2025-06-05", CheckOut: "2025-06-01"}, ErrInvalidDates},
		{"check-in in the past", BookingInput{RoomID: env.room.ID, CheckIn: "2025-05-19", CheckOut: "2025-05-22"}, ErrInvalidDates},
		{"malformed date", BookingInput{RoomID: env.room.ID, CheckIn: "June 1", CheckOut: "2025-06-02"}, ErrInvalidDates},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.bookings.CreateBooking(ctx, env.guest, tt.input)
			assertErr(t, err, tt.want)
		})
	}

	// today is allowed
	if _, err := env.bookings.CreateBooking(ctx, env.guest, BookingInput{RoomID: env.room.ID, CheckIn: "2025-05-20", CheckOut: "2025-05-21"}); err != nil {
		t.Errorf("expected booking from today to succeed, got %v", err)
	}
}

func TestCreateBookingUnknownGuest(t *testing.T) {
	env := newTestEnv(t)
	ghost := *env.guest
	ghost.UserID = 12345

	_, err := env.bookings.CreateBooking(context.Background(), &ghost, BookingInput{
		RoomID: env.room.ID, CheckIn: "2025-06-01", CheckOut: "2025-06-02",
	})
	assertErr(t, err, ErrAccountNotFound)
}

func TestConfirmBooking(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	b := env.book(t, "2025-06-10", "2025-06-15")

	confirmed, err := env.bookings.ConfirmBooking(ctx, env.host, b.ID)
	if err != nil {
		t.Fatalf("ConfirmBooking: %v", err)
	}
	if confirmed.Status != models.BookingConfirmed {
		t.Errorf("expected CONFIRMED, got %s", confirmed.Status)
	}

	sent := env.sender.messages()
	last := sent[len(sent)-1]
	if last.To != "guest@example.com" {
		t.Errorf("expected guest recipient, got %q", last.To)
	}
}

func TestConfirmOverlapLeavesStateUnchanged(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	first := env.book(t, "2025-06-10", "2025-06-15")
	second := env.book(t, "2025-06-12", "2025-06-14")

	if _, err := env.bookings.ConfirmBooking(ctx, env.host, first.ID); err != nil {
		t.Fatalf("ConfirmBooking(first): %v", err)
	}
	_, err := env.bookings.ConfirmBooking(ctx, env.host, second.ID)
	assertErr(t, err, ErrDatesTaken)

	got, _ := env.repo.GetBookingByID(ctx, first.ID)
	if got.Status != models.BookingConfirmed {
		t.Errorf("first booking changed to %s", got.Status)
	}
	got, _ = env.repo.GetBookingByID(ctx, second.ID)
	if got.Status != models.BookingPending {
		t.Errorf("second booking changed to %s", got.Status)
	}
}

func TestConfirmTouchingBoundary(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	first := env.book(t, "2025-06-10", "2025-06-15")
	second := env.book(t, "2025-06-15", "2025-06-20")

	if _, err := env.bookings.ConfirmBooking(ctx, env.host, first.ID); err != nil {
		t.Fatalf("ConfirmBooking(first): %v", err)
	}
	if _, err := env.bookings.ConfirmBooking(ctx, env.host, second.ID); err != nil {
		t.Errorf("touching stays should both confirm, got %v", err)
	}
}

func TestTransitionByNonOwner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	b := env.book(t, "2025-06-10", "2025-06-15")

	_, err := env.bookings.ConfirmBooking(ctx, env.guest, b.ID)
	assertErr(t, err, ErrNotOwner)
	_, err = env.bookings.RejectBooking(ctx, env.guest, b.ID)
	assertErr(t, err, ErrNotOwner)

	got, _ := env.repo.GetBookingByID(ctx, b.ID)
	if got.Status != models.BookingPending {
		t.Errorf("booking changed to %s", got.Status)
	}
}

func TestTransitionsArePendingOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	b := env.book(t, "2025-06-10", "2025-06-15")

	rejected, err := env.bookings.RejectBooking(ctx, env.host, b.ID)
	if err != nil {
		t.Fatalf("RejectBooking: %v", err)
	}
	if rejected.Status != models.BookingRejected {
		t.Errorf("expected REJECTED, got %s", rejected.Status)
	}

	_, err = env.bookings.ConfirmBooking(ctx, env.host, b.ID)
	assertErr(t, err, ErrInvalidTransition)
	_, err = env.bookings.RejectBooking(ctx, env.host, b.ID)
	assertErr(t, err, ErrInvalidTransition)
}

func TestTransitionUnknownBooking(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.bookings.ConfirmBooking(context.Background(), env.host, 404)
	assertErr(t, err, ErrBookingNotFound)
}

func TestConcurrentConfirmations(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	const n = 8
	ids := make([]int64, n)
	for i := range ids {
		ids[i] = env.book(t, "2025-07-01", "2025-07-05").ID
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_, _ = env.bookings.ConfirmBooking(ctx, env.host, id)
		}(id)
	}
	wg.Wait()

	managed, err := env.bookings.ListManagedBookings(ctx, env.host)
	if err != nil {
		t.Fatalf("ListManagedBookings: %v", err)
	}
	confirmed := 0
	for _, b := range managed {
		if b.Status == models.BookingConfirmed {
			confirmed++
		}
	}
	if confirmed != 1 {
		t.Errorf("expected exactly 1 confirmed booking, got %d", confirmed)
	}
}

func TestListBookings(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.book(t, "2025-06-20", "2025-06-22")
	env.book(t, "2025-06-01", "2025-06-03")

	mine, err := env.bookings.ListMyBookings(ctx, env.guest)
	if err != nil {
		t.Fatalf("ListMyBookings: %v", err)
	}
	if len(mine) != 2 || !mine[0].CheckIn.Before(mine[1].CheckIn) {
		t.Errorf("expected 2 bookings ordered by check-in, got %+v", mine)
	}

	hostOwn, err := env.bookings.ListMyBookings(ctx, env.host)
	if err != nil {
		t.Fatalf("ListMyBookings(host): %v", err)
	}
	if len(hostOwn) != 0 {
		t.Errorf("host has no stays, got %d", len(hostOwn))
	}

	managed, err := env.bookings.ListManagedBookings(ctx, env.host)
	if err != nil {
		t.Fatalf("ListManagedBookings: %v", err)
	}
	if len(managed) != 2 {
		t.Errorf("expected 2 managed bookings, got %d", len(managed))
	}
	if managed[0].GuestEmail != "guest@example.com" {
		t.Errorf("expected guest details, got %q", managed[0].GuestEmail)
	}
}
