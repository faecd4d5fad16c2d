package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/joshua-takyi/staybooking/internal/helpers"
	"github.com/joshua-takyi/staybooking/internal/models"
)

type ReviewService struct {
	reviewsRepo models.ReviewsRepo
	roomRepo    models.RoomRepo
	bookingRepo models.BookingRepo
}

func NewReviewService(reviewsRepo models.ReviewsRepo, roomRepo models.RoomRepo, bookingRepo models.BookingRepo) *ReviewService {
	return &ReviewService{
		reviewsRepo: reviewsRepo,
		roomRepo:    roomRepo,
		bookingRepo: bookingRepo,
	}
}

func (rs *ReviewService) ListReviews(ctx context.Context, roomID int64) ([]*models.Review, error) {
	if err := rs.ensureRoom(ctx, roomID); err != nil {
		return nil, err
	}
	reviews, err := rs.reviewsRepo.GetReviewsByRoom(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// AddReview stores a rating from a guest who has a confirmed stay in the room.
func (rs *ReviewService) AddReview(ctx context.Context, caller *helpers.CallerIdentity, roomID int64, rating int, comment string) (*models.Review, error) {
	if err := rs.ensureRoom(ctx, roomID); err != nil {
		return nil, err
	}

	review := &models.Review{
		RoomID:   roomID,
		UserID:   caller.UserID,
		UserName: caller.Name,
		Rating:   rating,
		Comment:  strings.TrimSpace(comment),
	}
	if err := models.Validate.Struct(review); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidReview, err)
	}

	stays, err := rs.bookingRepo.ListBookingsByGuest(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check stays: %w", err)
	}
	if !hasConfirmedStay(stays, roomID) {
		return nil, ErrReviewNotAllowed
	}

	created, err := rs.reviewsRepo.CreateReview(ctx, review)
	if err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return created, nil
}

func (rs *ReviewService) ensureRoom(ctx context.Context, roomID int64) error {
	_, err := rs.roomRepo.GetRoomByID(ctx, roomID)
	if errors.Is(err, models.ErrNotFound) {
		return ErrRoomNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load room: %w", err)
	}
	return nil
}

func hasConfirmedStay(bookings []*models.BookingDetails, roomID int64) bool {
	for _, b := range bookings {
		if b.RoomID == roomID && b.Status == models.BookingConfirmed {
			return true
		}
	}
	return false
}
