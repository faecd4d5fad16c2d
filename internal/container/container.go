package container

import (
	"log/slog"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/joshua-takyi/staybooking/internal/helpers"
	"github.com/joshua-takyi/staybooking/internal/models"
	"github.com/joshua-takyi/staybooking/internal/notify"
	"github.com/joshua-takyi/staybooking/internal/services"
)

// Stores groups the repositories the services are built on. Each field may be
// backed by a different store.
type Stores struct {
	Users    models.UserRepo
	Rooms    models.RoomRepo
	Bookings models.BookingRepo
	Reviews  models.ReviewsRepo
	Sessions models.SessionRepo
}

// MemoryStores backs every repository with one in-memory store.
func MemoryStores() Stores {
	mem := models.NewMemoryRepo()
	return Stores{Users: mem, Rooms: mem, Bookings: mem, Reviews: mem, Sessions: mem}
}

type Options struct {
	JWTSecret     string
	TokenTTL      time.Duration
	NotifyTimeout time.Duration
	Cloudinary    *cloudinary.Cloudinary
	AllowOrigins  []string
	Production    bool
}

// Container holds all application dependencies
type Container struct {
	Logger         *slog.Logger
	Options        Options
	Stores         Stores
	UserService    *services.UserService
	RoomService    *services.RoomService
	BookingService *services.BookingService
	ReviewService  *services.ReviewService
}

// NewContainer creates a new dependency injection container
func NewContainer(logger *slog.Logger, stores Stores, sender notify.Sender, opts Options) *Container {
	tokens := helpers.NewTokenIssuer(opts.JWTSecret, opts.TokenTTL)

	return &Container{
		Logger:         logger,
		Options:        opts,
		Stores:         stores,
		UserService:    services.NewUserService(stores.Users, stores.Sessions, tokens),
		RoomService:    services.NewRoomService(stores.Rooms, opts.Cloudinary, logger),
		BookingService: services.NewBookingService(stores.Bookings, stores.Rooms, stores.Users, sender, logger, opts.NotifyTimeout),
		ReviewService:  services.NewReviewService(stores.Reviews, stores.Rooms, stores.Bookings),
	}
}
