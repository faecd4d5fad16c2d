package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/joshua-takyi/staybooking/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// SeedDemoData creates a demo host with two rooms when the store has no users yet.
func SeedDemoData(ctx context.Context, userRepo models.UserRepo, roomRepo models.RoomRepo, logger *slog.Logger) error {
	count, err := userRepo.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		logger.Debug("Store already has users, skipping seed", "users", count)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}
	host, err := userRepo.CreateUser(ctx, &models.User{
		Name:     "John Host",
		Email:    "host@example.com",
		Password: string(hash),
	})
	if err != nil {
		return fmt.Errorf("failed to seed host: %w", err)
	}

	rooms := []models.Room{
		{
			Title:         "Luxury Beachfront Apartment",
			Description:   "Stunning view of the ocean with all modern amenities.",
			City:          "Nice",
			PricePerNight: 120,
			MaxGuests:     4,
			ImageURL:      "https://picsum.photos/seed/room1/1200/800",
		},
		{
			Title:         "Modern City Loft",
			Description:   "Located in the heart of Berlin, perfect for business trips.",
			City:          "Berlin",
			PricePerNight: 85,
			MaxGuests:     2,
			ImageURL:      "https://picsum.photos/seed/room2/1200/800",
		},
	}
	for i := range rooms {
		rooms[i].OwnerID = host.ID
		if _, err := roomRepo.CreateRoom(ctx, &rooms[i]); err != nil {
			return fmt.Errorf("failed to seed room %q: %w", rooms[i].Title, err)
		}
	}

	logger.Info("Seeded demo data", "host", host.Email, "rooms", len(rooms))
	return nil
}
