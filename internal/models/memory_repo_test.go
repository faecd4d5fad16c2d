package models

import (
	"context"
	"errors"
	"testing"
	"time"
)

func seedRoom(t *testing.T, m *MemoryRepo) (*User, *RoomDetails) {
	t.Helper()
	ctx := context.Background()
	owner, err := m.CreateUser(ctx, &User{Name: "Owner", Email: "owner@example.com", Password: "x"})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	room, err := m.CreateRoom(ctx, &Room{OwnerID: owner.ID, Title: "Loft", City: "Berlin", PricePerNight: 85, MaxGuests: 2})
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	return owner, room
}

func TestMemoryRepoUsers(t *testing.T) {
	m := NewMemoryRepo()
	ctx := context.Background()

	u, err := m.CreateUser(ctx, &User{Name: "A", Email: "a@b.c"})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u.ID == 0 || u.CreatedAt.IsZero() {
		t.Errorf("expected id and timestamp, got %+v", u)
	}
	if _, err := m.CreateUser(ctx, &User{Name: "B", Email: "a@b.c"}); !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
	if _, err := m.GetUserByEmail(ctx, "x@y.z"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if n, _ := m.CountUsers(ctx); n != 1 {
		t.Errorf("expected 1 user, got %d", n)
	}
}

func TestMemoryRepoBookingDetails(t *testing.T) {
	m := NewMemoryRepo()
	ctx := context.Background()
	owner, room := seedRoom(t, m)
	guest, _ := m.CreateUser(ctx, &User{Name: "Guest", Email: "guest@example.com"})

	b, err := m.CreateBooking(ctx, &Booking{
		RoomID: room.ID, UserID: guest.ID, CheckIn: date(t, "2025-06-01"), CheckOut: date(t, "2025-06-03"),
		TotalPrice: 170, Status: BookingPending,
	})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if b.RoomTitle != "Loft" || b.OwnerID != owner.ID || b.OwnerEmail != "owner@example.com" || b.GuestName != "Guest" {
		t.Errorf("booking details not joined: %+v", b)
	}
	if _, err := m.CreateBooking(ctx, &Booking{RoomID: 99, UserID: guest.ID}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown room, got %v", err)
	}
}

func TestMemoryRepoUpdateBookingStatus(t *testing.T) {
	m := NewMemoryRepo()
	ctx := context.Background()
	owner, room := seedRoom(t, m)

	first, _ := m.CreateBooking(ctx, &Booking{RoomID: room.ID, UserID: owner.ID, CheckIn: date(t, "2025-06-01"), CheckOut: date(t, "2025-06-05"), Status: BookingPending})
	second, _ := m.CreateBooking(ctx, &Booking{RoomID: room.ID, UserID: owner.ID, CheckIn: date(t, "2025-06-03"), CheckOut: date(t, "2025-06-04"), Status: BookingPending})

	confirm := func(ctx context.Context, tx BookingTx, b *BookingDetails) (BookingStatus, error) {
		taken, err := tx.HasConfirmedOverlap(ctx, b.RoomID, b.CheckIn, b.CheckOut, b.ID)
		if err != nil {
			return "", err
		}
		if taken {
			return "", errors.New("taken")
		}
		return BookingConfirmed, nil
	}

	got, err := m.UpdateBookingStatus(ctx, first.ID, confirm)
	if err != nil || got.Status != BookingConfirmed {
		t.Fatalf("expected first to confirm, got %v %v", got, err)
	}
	if _, err := m.UpdateBookingStatus(ctx, second.ID, confirm); err == nil {
		t.Fatal("expected overlap to abort the change")
	}
	again, _ := m.GetBookingByID(ctx, second.ID)
	if again.Status != BookingPending {
		t.Errorf("aborted change must not write, got %s", again.Status)
	}
	if _, err := m.UpdateBookingStatus(ctx, 404, confirm); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryRepoSearchRooms(t *testing.T) {
	m := NewMemoryRepo()
	ctx := context.Background()
	owner, room := seedRoom(t, m)
	b, _ := m.CreateBooking(ctx, &Booking{RoomID: room.ID, UserID: owner.ID, CheckIn: date(t, "2025-06-10"), CheckOut: date(t, "2025-06-15"), Status: BookingPending})
	if _, err := m.UpdateBookingStatus(ctx, b.ID, func(context.Context, BookingTx, *BookingDetails) (BookingStatus, error) {
		return BookingConfirmed, nil
	}); err != nil {
		t.Fatalf("UpdateBookingStatus: %v", err)
	}

	in, out := date(t, "2025-06-12"), date(t, "2025-06-14")
	rooms, _ := m.SearchRooms(ctx, RoomFilter{City: "BERL", Guests: 1, CheckIn: &in, CheckOut: &out})
	if len(rooms) != 0 {
		t.Errorf("expected no rooms, got %d", len(rooms))
	}

	in, out = date(t, "2025-06-15"), date(t, "2025-06-20")
	rooms, _ = m.SearchRooms(ctx, RoomFilter{City: "berl", Guests: 2, CheckIn: &in, CheckOut: &out})
	if len(rooms) != 1 || rooms[0].OwnerName != "Owner" {
		t.Errorf("expected the loft, got %+v", rooms)
	}

	rooms, _ = m.SearchRooms(ctx, RoomFilter{Guests: 3})
	if rooms == nil || len(rooms) != 0 {
		t.Errorf("expected an empty, non-nil result, got %#v", rooms)
	}
}

func TestMemoryRepoReviewsNewestFirst(t *testing.T) {
	m := NewMemoryRepo()
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for i, comment := range []string{"old", "new"} {
		if _, err := m.CreateReview(ctx, &Review{RoomID: 1, Rating: 4, Comment: comment, CreatedAt: base.Add(time.Duration(i) * time.Hour)}); err != nil {
			t.Fatalf("CreateReview: %v", err)
		}
	}
	if _, err := m.CreateReview(ctx, &Review{RoomID: 2, Rating: 3}); err != nil {
		t.Fatalf("CreateReview: %v", err)
	}

	reviews, _ := m.GetReviewsByRoom(ctx, 1)
	if len(reviews) != 2 || reviews[0].Comment != "new" || reviews[0].ID.IsZero() {
		t.Errorf("unexpected reviews %+v", reviews)
	}
}

func TestMemoryRepoTokenRevocation(t *testing.T) {
	m := NewMemoryRepo()
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	if err := m.RevokeToken(ctx, "tok", time.Minute); err != nil {
		t.Fatalf("RevokeToken: %v", err)
	}
	if revoked, _ := m.IsTokenRevoked(ctx, "tok"); !revoked {
		t.Error("expected token to be revoked")
	}
	if revoked, _ := m.IsTokenRevoked(ctx, "other"); revoked {
		t.Error("unexpected revocation")
	}

	now = now.Add(2 * time.Minute)
	if revoked, _ := m.IsTokenRevoked(ctx, "tok"); revoked {
		t.Error("revocation should lapse once the token has expired")
	}
}
