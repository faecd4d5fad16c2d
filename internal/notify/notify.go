package notify

import (
	"context"
	"fmt"
	"strings"
)

// Sender delivers a plain-text notification to a single recipient.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type Message struct {
	To      string
	Subject string
	Body    string
}

// BookingNotice carries the booking facts both notification templates need.
type BookingNotice struct {
	RoomTitle  string
	OwnerName  string
	OwnerEmail string
	GuestName  string
	GuestEmail string
	CheckIn    string
	CheckOut   string
	TotalPrice float64
	Status     string
}

// NewBookingRequest is sent to the room owner when a guest asks for a stay.
func NewBookingRequest(n BookingNotice) Message {
	body := fmt.Sprintf("Hello %s,\n\nYou have a new booking request from %s.\nRoom: %s\nDates: %s to %s\nTotal: €%s\n\nPlease log in to confirm or reject this request.",
		n.OwnerName, n.GuestName, n.RoomTitle, n.CheckIn, n.CheckOut, formatPrice(n.TotalPrice))
	return Message{
		To:      n.OwnerEmail,
		Subject: "New Booking Request: " + n.RoomTitle,
		Body:    body,
	}
}

// BookingStatusChanged is sent to the guest after the owner confirmed or rejected a request.
func BookingStatusChanged(n BookingNotice) Message {
	action := strings.ToLower(n.Status)
	body := fmt.Sprintf("Dear %s,\n\nYour booking request for %s has been %s by the host.\nStatus: %s\n\nThank you for using StayBooking!",
		n.GuestName, n.RoomTitle, action, strings.ToUpper(n.Status))
	return Message{
		To:      n.GuestEmail,
		Subject: "Update on your booking for " + n.RoomTitle,
		Body:    body,
	}
}

func formatPrice(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
