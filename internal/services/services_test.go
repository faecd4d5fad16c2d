package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/joshua-takyi/staybooking/internal/helpers"
	"github.com/joshua-takyi/staybooking/internal/models"
	"github.com/joshua-takyi/staybooking/internal/notify"
)

var fixedNow = time.Date(2025, 5, 20, 9, 30, 0, 0, time.UTC)

type recordingSender struct {
	mu   sync.Mutex
	sent []notify.Message
	err  error
}

func (s *recordingSender) Send(ctx context.Context, msg notify.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	return s.err
}

func (s *recordingSender) messages() []notify.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]notify.Message(nil), s.sent...)
}

type testEnv struct {
	repo     *models.MemoryRepo
	sender   *recordingSender
	bookings *BookingService
	rooms    *RoomService
	reviews  *ReviewService
	host     *helpers.CallerIdentity
	guest    *helpers.CallerIdentity
	room     *models.RoomDetails
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	repo := models.NewMemoryRepo()
	sender := &recordingSender{}

	bookings := NewBookingService(repo, repo, repo, sender, discardLogger(), time.Second)
	bookings.now = func() time.Time { return fixedNow }

	env := &testEnv{
		repo:     repo,
		sender:   sender,
		bookings: bookings,
		rooms:    NewRoomService(repo, nil, discardLogger()),
		reviews:  NewReviewService(repo, repo, repo),
		host:     mustUser(t, repo, "Hannah Host", "host@example.com"),
		guest:    mustUser(t, repo, "Gus Guest", "guest@example.com"),
	}

	room, err := repo.CreateRoom(ctx, &models.Room{
		OwnerID:       env.host.UserID,
		Title:         "Seaside Room",
		City:          "Nice",
		PricePerNight: 100,
		MaxGuests:     4,
	})
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	env.room = room
	return env
}

func mustUser(t *testing.T, repo models.UserRepo, name, email string) *helpers.CallerIdentity {
	t.Helper()
	u, err := repo.CreateUser(context.Background(), &models.User{Name: name, Email: email, Password: "x"})
	if err != nil {
		t.Fatalf("CreateUser(%s): %v", email, err)
	}
	return &helpers.CallerIdentity{UserID: u.ID, Email: u.Email, Name: u.Name}
}

func (env *testEnv) book(t *testing.T, in, out string) *models.BookingDetails {
	t.Helper()
	b, err := env.bookings.CreateBooking(context.Background(), env.guest, BookingInput{
		RoomID:   env.room.ID,
		CheckIn:  in,
		CheckOut: out,
	})
	if err != nil {
		t.Fatalf("CreateBooking(%s, %s): %v", in, out, err)
	}
	return b
}

func assertErr(t *testing.T, err, want error) {
	t.Helper()
	if !errors.Is(err, want) {
		t.Fatalf("expected %v, got %v", want, err)
	}
}
