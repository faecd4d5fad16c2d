package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/staybooking/internal/helpers"
	"github.com/joshua-takyi/staybooking/internal/models"
	"github.com/joshua-takyi/staybooking/internal/services"
)

type reviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func ListReviews(r *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := helpers.ParseID(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, models.ErrorResponse("Room not found"))
			return
		}
		reviews, err := r.ListReviews(c.Request.Context(), id)
		if errors.Is(err, services.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse("Room not found"))
			return
		}
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, reviews)
	}
}

func CreateReview(r *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := helpers.CallerFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("Unauthorized"))
			return
		}
		id, err := helpers.ParseID(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, models.ErrorResponse("Room not found"))
			return
		}
		var req reviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request body")
			return
		}

		review, err := r.AddReview(c.Request.Context(), caller, id, req.Rating, req.Comment)
		if errors.Is(err, services.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse("Room not found"))
			return
		}
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, review)
	}
}
