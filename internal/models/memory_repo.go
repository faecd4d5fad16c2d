package models

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryRepo keeps every entity in process memory. It backs STORE=memory and
// the test suites. One mutex guards all maps, which also makes
// UpdateBookingStatus atomic.
type MemoryRepo struct {
	mu sync.Mutex

	users    map[int64]*User
	rooms    map[int64]*Room
	bookings map[int64]*Booking
	reviews  []*Review
	revoked  map[string]time.Time

	nextUserID    int64
	nextRoomID    int64
	nextBookingID int64

	now func() time.Time
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		users:    make(map[int64]*User),
		rooms:    make(map[int64]*Room),
		bookings: make(map[int64]*Booking),
		revoked:  make(map[string]time.Time),
		now:      time.Now,
	}
}

func (m *MemoryRepo) CreateUser(ctx context.Context, user *User) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return nil, fmt.Errorf("email %q: %w", user.Email, ErrDuplicate)
		}
	}
	m.nextUserID++
	created := *user
	created.ID = m.nextUserID
	created.CreatedAt = m.now().UTC()
	m.users[created.ID] = &created
	out := created
	return &out, nil
}

func (m *MemoryRepo) GetUserByID(ctx context.Context, id int64) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *u
	return &out, nil
}

func (m *MemoryRepo) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryRepo) CountUsers(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users), nil
}

func (m *MemoryRepo) CreateRoom(ctx context.Context, room *Room) (*RoomDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[room.OwnerID]; !ok {
		return nil, fmt.Errorf("failed to create room: owner %d: %w", room.OwnerID, ErrNotFound)
	}
	m.nextRoomID++
	created := *room
	created.ID = m.nextRoomID
	created.CreatedAt = m.now().UTC()
	m.rooms[created.ID] = &created
	return m.roomDetails(&created), nil
}

func (m *MemoryRepo) GetRoomByID(ctx context.Context, id int64) (*RoomDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	room, ok := m.rooms[id]
	if !ok {
		return nil, ErrNotFound
	}
	return m.roomDetails(room), nil
}

func (m *MemoryRepo) SearchRooms(ctx context.Context, filter RoomFilter) ([]*RoomDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	city := strings.ToLower(strings.TrimSpace(filter.City))
	rooms := []*RoomDetails{}
	for _, room := range m.rooms {
		if city != "" && !strings.Contains(strings.ToLower(room.City), city) {
			continue
		}
		if room.MaxGuests < filter.Guests {
			continue
		}
		if filter.HasDates() && m.hasConfirmedOverlap(room.ID, *filter.CheckIn, *filter.CheckOut, 0) {
			continue
		}
		rooms = append(rooms, m.roomDetails(room))
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].ID < rooms[j].ID })
	return rooms, nil
}

func (m *MemoryRepo) CreateBooking(ctx context.Context, booking *Booking) (*BookingDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rooms[booking.RoomID]; !ok {
		return nil, fmt.Errorf("failed to create booking: room %d: %w", booking.RoomID, ErrNotFound)
	}
	if _, ok := m.users[booking.UserID]; !ok {
		return nil, fmt.Errorf("failed to create booking: user %d: %w", booking.UserID, ErrNotFound)
	}
	m.nextBookingID++
	created := *booking
	created.ID = m.nextBookingID
	created.CreatedAt = m.now().UTC()
	created.UpdatedAt = created.CreatedAt
	m.bookings[created.ID] = &created
	return m.bookingDetails(&created), nil
}

func (m *MemoryRepo) GetBookingByID(ctx context.Context, id int64) (*BookingDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	return m.bookingDetails(b), nil
}

func (m *MemoryRepo) ListBookingsByGuest(ctx context.Context, userID int64) ([]*BookingDetails, error) {
	return m.listBookings(func(b *Booking) bool { return b.UserID == userID }), nil
}

func (m *MemoryRepo) ListBookingsByOwner(ctx context.Context, ownerID int64) ([]*BookingDetails, error) {
	return m.listBookings(func(b *Booking) bool {
		room, ok := m.rooms[b.RoomID]
		return ok && room.OwnerID == ownerID
	}), nil
}

func (m *MemoryRepo) UpdateBookingStatus(ctx context.Context, id int64, decide StatusDecision) (*BookingDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	status, err := decide(ctx, memoryBookingTx{m: m}, m.bookingDetails(b))
	if err != nil {
		return nil, err
	}
	b.Status = status
	b.UpdatedAt = m.now().UTC()
	return m.bookingDetails(b), nil
}

func (m *MemoryRepo) CreateReview(ctx context.Context, review *Review) (*Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	review.BeforeCreate()
	stored := *review
	m.reviews = append(m.reviews, &stored)
	return review, nil
}

func (m *MemoryRepo) GetReviewsByRoom(ctx context.Context, roomID int64) ([]*Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	reviews := []*Review{}
	for _, r := range m.reviews {
		if r.RoomID == roomID {
			out := *r
			reviews = append(reviews, &out)
		}
	}
	sort.SliceStable(reviews, func(i, j int) bool { return reviews[i].CreatedAt.After(reviews[j].CreatedAt) })
	return reviews, nil
}

func (m *MemoryRepo) RevokeToken(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[revokedKey(token)] = m.now().Add(ttl)
	return nil
}

func (m *MemoryRepo) IsTokenRevoked(ctx context.Context, token string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := revokedKey(token)
	until, ok := m.revoked[key]
	if !ok {
		return false, nil
	}
	if m.now().After(until) {
		delete(m.revoked, key)
		return false, nil
	}
	return true, nil
}

func (m *MemoryRepo) listBookings(keep func(*Booking) bool) []*BookingDetails {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*BookingDetails{}
	for _, b := range m.bookings {
		if keep(b) {
			out = append(out, m.bookingDetails(b))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CheckIn.Equal(out[j].CheckIn) {
			return out[i].CheckIn.Before(out[j].CheckIn)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// The helpers below expect m.mu to be held.
func (m *MemoryRepo) roomDetails(room *Room) *RoomDetails {
	details := &RoomDetails{Room: *room}
	if owner, ok := m.users[room.OwnerID]; ok {
		details.OwnerName = owner.Name
		details.OwnerEmail = owner.Email
	}
	return details
}

func (m *MemoryRepo) bookingDetails(b *Booking) *BookingDetails {
	details := &BookingDetails{Booking: *b}
	if room, ok := m.rooms[b.RoomID]; ok {
		details.RoomTitle = room.Title
		details.OwnerID = room.OwnerID
		if owner, ok := m.users[room.OwnerID]; ok {
			details.OwnerName = owner.Name
			details.OwnerEmail = owner.Email
		}
	}
	if guest, ok := m.users[b.UserID]; ok {
		details.GuestName = guest.Name
		details.GuestEmail = guest.Email
	}
	return details
}

func (m *MemoryRepo) hasConfirmedOverlap(roomID int64, checkIn, checkOut time.Time, excludeID int64) bool {
	for _, b := range m.bookings {
		if b.RoomID != roomID || b.ID == excludeID || b.Status != BookingConfirmed {
			continue
		}
		if b.Overlaps(checkIn, checkOut) {
			return true
		}
	}
	return false
}

type memoryBookingTx struct {
	m *MemoryRepo
}

func (t memoryBookingTx) HasConfirmedOverlap(ctx context.Context, roomID int64, checkIn, checkOut time.Time, excludeID int64) (bool, error) {
	return t.m.hasConfirmedOverlap(roomID, checkIn, checkOut, excludeID), nil
}
