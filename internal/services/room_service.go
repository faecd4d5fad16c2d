package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/joshua-takyi/staybooking/internal/helpers"
	"github.com/joshua-takyi/staybooking/internal/models"
)

// RoomSearch holds the raw query parameters of a room listing.
// Dates are ISO calendar dates; a half-specified pair is ignored.
type RoomSearch struct {
	City     string
	Guests   int
	CheckIn  string
	CheckOut string
}

type RoomInput struct {
	Title         string
	Description   string
	City          string
	PricePerNight float64
	MaxGuests     int
	ImageURL      string
}

type RoomService struct {
	roomRepo models.RoomRepo
	cld      *cloudinary.Cloudinary
	logger   *slog.Logger
}

// NewRoomService builds the room service. cld may be nil, in which case image
// references are stored as given.
func NewRoomService(roomRepo models.RoomRepo, cld *cloudinary.Cloudinary, logger *slog.Logger) *RoomService {
	return &RoomService{
		roomRepo: roomRepo,
		cld:      cld,
		logger:   logger,
	}
}

func (rs *RoomService) SearchRooms(ctx context.Context, search RoomSearch) ([]*models.RoomDetails, error) {
	filter := models.RoomFilter{
		City:   strings.TrimSpace(search.City),
		Guests: search.Guests,
	}
	if filter.Guests <= 0 {
		filter.Guests = 1
	}

	if strings.TrimSpace(search.CheckIn) != "" && strings.TrimSpace(search.CheckOut) != "" {
		checkIn, err := models.ParseDate(search.CheckIn)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSearch, err)
		}
		checkOut, err := models.ParseDate(search.CheckOut)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSearch, err)
		}
		if !checkIn.Before(checkOut) {
			return nil, ErrInvalidSearch
		}
		filter.CheckIn = &checkIn
		filter.CheckOut = &checkOut
	}

	rooms, err := rs.roomRepo.SearchRooms(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search rooms: %w", err)
	}
	return rooms, nil
}

func (rs *RoomService) GetRoom(ctx context.Context, id int64) (*models.RoomDetails, error) {
	room, err := rs.roomRepo.GetRoomByID(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	return room, nil
}

// CreateRoom lists a new room owned by the caller.
func (rs *RoomService) CreateRoom(ctx context.Context, caller *helpers.CallerIdentity, input RoomInput) (*models.RoomDetails, error) {
	room := &models.Room{
		OwnerID:       caller.UserID,
		Title:         strings.TrimSpace(input.Title),
		Description:   strings.TrimSpace(input.Description),
		City:          strings.TrimSpace(input.City),
		PricePerNight: input.PricePerNight,
		MaxGuests:     input.MaxGuests,
		ImageURL:      strings.TrimSpace(input.ImageURL),
	}
	if err := models.Validate.Struct(room); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRoom, err)
	}

	if rs.cld != nil && isRemoteImage(room.ImageURL) {
		url, err := helpers.UploadImage(ctx, rs.cld, room.ImageURL, helpers.RoomFolder)
		if err != nil {
			rs.logger.WarnContext(ctx, "Image upload failed, keeping original reference",
				"image", room.ImageURL,
				"error", err,
			)
		} else {
			room.ImageURL = url
		}
	}

	created, err := rs.roomRepo.CreateRoom(ctx, room)
	if err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}
	return created, nil
}

func isRemoteImage(ref string) bool {
	return strings.HasPrefix(ref, "https://") || strings.HasPrefix(ref, "http://")
}
