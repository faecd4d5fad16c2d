package services

import "errors"

var (
	ErrRoomNotFound       = errors.New("room not found")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrAccountNotFound    = errors.New("account does not exist")
	ErrInvalidDates       = errors.New("invalid booking dates")
	ErrNotOwner           = errors.New("only the owner can confirm or reject this booking")
	ErrDatesTaken         = errors.New("dates are already taken by another confirmed booking")
	ErrInvalidTransition  = errors.New("only pending bookings can be confirmed or rejected")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrEmailTaken         = errors.New("email taken")
	ErrInvalidPassword    = errors.New("password is required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRoom        = errors.New("invalid room details")
	ErrInvalidSearch      = errors.New("check-in must be before check-out")
	ErrInvalidReview      = errors.New("rating must be between 1 and 5")
	ErrReviewNotAllowed   = errors.New("only guests with a confirmed stay can review this room")
)
