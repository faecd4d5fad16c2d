package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/staybooking/internal/helpers"
	"github.com/joshua-takyi/staybooking/internal/models"
	"github.com/joshua-takyi/staybooking/internal/services"
)

type roomRequest struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	City          string  `json:"city"`
	PricePerNight float64 `json:"pricePerNight"`
	MaxGuests     int     `json:"maxGuests"`
	ImageURL      string  `json:"imageUrl"`
}

// ListRooms serves GET /rooms?city=&guests=&checkIn=&checkOut=
func ListRooms(r *services.RoomService) gin.HandlerFunc {
	return func(c *gin.Context) {
		guests := 1
		if raw := c.Query("guests"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				badRequest(c, "Invalid guests")
				return
			}
			guests = n
		}

		rooms, err := r.SearchRooms(c.Request.Context(), services.RoomSearch{
			City:     c.Query("city"),
			Guests:   guests,
			CheckIn:  c.Query("checkIn"),
			CheckOut: c.Query("checkOut"),
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, toRoomResponses(rooms))
	}
}

func GetRoom(r *services.RoomService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := helpers.ParseID(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, models.ErrorResponse("Room not found"))
			return
		}
		room, err := r.GetRoom(c.Request.Context(), id)
		if errors.Is(err, services.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse("Room not found"))
			return
		}
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, toRoomResponse(room))
	}
}

func CreateRoom(r *services.RoomService) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := helpers.CallerFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("Unauthorized"))
			return
		}
		var req roomRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request body")
			return
		}

		room, err := r.CreateRoom(c.Request.Context(), caller, services.RoomInput{
			Title:         req.Title,
			Description:   req.Description,
			City:          req.City,
			PricePerNight: req.PricePerNight,
			MaxGuests:     req.MaxGuests,
			ImageURL:      req.ImageURL,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, toRoomResponse(room))
	}
}
