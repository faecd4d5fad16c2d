package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/staybooking/internal/helpers"
	"github.com/joshua-takyi/staybooking/internal/models"
	"github.com/joshua-takyi/staybooking/internal/services"
)

type bookingRequest struct {
	RoomID   int64  `json:"roomId"`
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
}

func CreateBooking(b *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := helpers.CallerFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("Unauthorized"))
			return
		}
		var req bookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request body")
			return
		}

		booking, err := b.CreateBooking(c.Request.Context(), caller, services.BookingInput{
			RoomID:   req.RoomID,
			CheckIn:  req.CheckIn,
			CheckOut: req.CheckOut,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, toBookingResponse(booking))
	}
}

func ListMyBookings(b *services.BookingService) gin.HandlerFunc {
	return listBookings(b.ListMyBookings)
}

func ListManagedBookings(b *services.BookingService) gin.HandlerFunc {
	return listBookings(b.ListManagedBookings)
}

func ConfirmBooking(b *services.BookingService) gin.HandlerFunc {
	return changeBookingStatus(b.ConfirmBooking)
}

func RejectBooking(b *services.BookingService) gin.HandlerFunc {
	return changeBookingStatus(b.RejectBooking)
}

type bookingLister func(ctx context.Context, caller *helpers.CallerIdentity) ([]*models.BookingDetails, error)

func listBookings(list bookingLister) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := helpers.CallerFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("Unauthorized"))
			return
		}
		bookings, err := list(c.Request.Context(), caller)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, toBookingResponses(bookings))
	}
}

type bookingTransition func(ctx context.Context, caller *helpers.CallerIdentity, bookingID int64) (*models.BookingDetails, error)

func changeBookingStatus(apply bookingTransition) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := helpers.CallerFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("Unauthorized"))
			return
		}
		id, err := helpers.ParseID(c.Param("id"))
		if err != nil {
			badRequest(c, "Invalid booking id")
			return
		}

		booking, err := apply(c.Request.Context(), caller, id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, toBookingResponse(booking))
	}
}
