package handlers

import (
	"github.com/joshua-takyi/staybooking/internal/models"
)

type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type RoomResponse struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	City          string  `json:"city"`
	PricePerNight float64 `json:"pricePerNight"`
	MaxGuests     int     `json:"maxGuests"`
	ImageURL      string  `json:"imageUrl"`
	OwnerName     string  `json:"ownerName"`
}

type BookingResponse struct {
	ID         int64   `json:"id"`
	RoomID     int64   `json:"roomId"`
	RoomTitle  string  `json:"roomTitle"`
	UserID     int64   `json:"userId"`
	UserName   string  `json:"userName"`
	UserEmail  string  `json:"userEmail"`
	CheckIn    string  `json:"checkIn"`
	CheckOut   string  `json:"checkOut"`
	TotalPrice float64 `json:"totalPrice"`
	Status     string  `json:"status"`
}

func toUserResponse(u *models.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}

func toRoomResponse(r *models.RoomDetails) RoomResponse {
	return RoomResponse{
		ID:            r.ID,
		Title:         r.Title,
		Description:   r.Description,
		City:          r.City,
		PricePerNight: r.PricePerNight,
		MaxGuests:     r.MaxGuests,
		ImageURL:      r.ImageURL,
		OwnerName:     r.OwnerName,
	}
}

func toRoomResponses(rooms []*models.RoomDetails) []RoomResponse {
	out := make([]RoomResponse, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, toRoomResponse(r))
	}
	return out
}

func toBookingResponse(b *models.BookingDetails) BookingResponse {
	return BookingResponse{
		ID:         b.ID,
		RoomID:     b.RoomID,
		RoomTitle:  b.RoomTitle,
		UserID:     b.UserID,
		UserName:   b.GuestName,
		UserEmail:  b.GuestEmail,
		CheckIn:    b.CheckIn.Format(models.DateLayout),
		CheckOut:   b.CheckOut.Format(models.DateLayout),
		TotalPrice: b.TotalPrice,
		Status:     string(b.Status),
	}
}

func toBookingResponses(bookings []*models.BookingDetails) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingResponse(b))
	}
	return out
}
