package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/staybooking/internal/container"
	"github.com/joshua-takyi/staybooking/internal/handlers"
	"github.com/joshua-takyi/staybooking/internal/middleware"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	if container.Options.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(cors.New(corsConfig(container.Options.AllowOrigins)))
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "OK",
			"service": "staybooking-api",
		})
	})

	auth := middleware.AuthMiddleware(container.UserService, container.Logger)

	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/register", handlers.Register(container.UserService))
		authRoutes.POST("/login", handlers.Login(container.UserService))
		authRoutes.POST("/logout", auth, handlers.Logout(container.UserService))
		authRoutes.GET("/me", auth, handlers.Me(container.UserService))
	}

	roomRoutes := r.Group("/rooms")
	{
		roomRoutes.GET("", handlers.ListRooms(container.RoomService))
		roomRoutes.GET("/:id", handlers.GetRoom(container.RoomService))
		roomRoutes.GET("/:id/reviews", handlers.ListReviews(container.ReviewService))
		roomRoutes.POST("", auth, handlers.CreateRoom(container.RoomService))
		roomRoutes.POST("/:id/reviews", auth, handlers.CreateReview(container.ReviewService))
	}

	bookingRoutes := r.Group("/bookings")
	bookingRoutes.Use(auth)
	{
		bookingRoutes.POST("", handlers.CreateBooking(container.BookingService))
		bookingRoutes.GET("/my", handlers.ListMyBookings(container.BookingService))
		bookingRoutes.GET("/managed", handlers.ListManagedBookings(container.BookingService))
		bookingRoutes.POST("/:id/confirm", handlers.ConfirmBooking(container.BookingService))
		bookingRoutes.POST("/:id/reject", handlers.RejectBooking(container.BookingService))
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
	}
	allowAll := len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
	}
	if allowAll {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cfg
}
