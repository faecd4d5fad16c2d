package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/staybooking/internal/models"
	"github.com/joshua-takyi/staybooking/internal/services"
)

// clientMessages keeps the wording existing clients match on.
var clientMessages = map[error]string{
	services.ErrInvalidEmail:       "Invalid email format",
	services.ErrEmailTaken:         "Email taken",
	services.ErrInvalidCredentials: "Invalid credentials",
	services.ErrUserNotFound:       "User not found",
	services.ErrAccountNotFound:    "Account does not exist.",
	services.ErrInvalidDates:       "Invalid booking dates.",
	services.ErrNotOwner:           "Only the owner can confirm or reject this booking.",
	services.ErrDatesTaken:         "Dates are already taken by another confirmed booking.",
}

var badRequestErrors = []error{
	services.ErrRoomNotFound,
	services.ErrBookingNotFound,
	services.ErrUserNotFound,
	services.ErrAccountNotFound,
	services.ErrInvalidDates,
	services.ErrNotOwner,
	services.ErrDatesTaken,
	services.ErrInvalidTransition,
	services.ErrInvalidEmail,
	services.ErrEmailTaken,
	services.ErrInvalidPassword,
	services.ErrInvalidRoom,
	services.ErrInvalidSearch,
	services.ErrInvalidReview,
	services.ErrReviewNotAllowed,
}

// respondError maps a service error onto the response. Unknown errors become a
// 500 and are attached to the context for ErrorHandler to log.
func respondError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(clientMessage(services.ErrInvalidCredentials)))
		return
	}
	for _, known := range badRequestErrors {
		if errors.Is(err, known) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(clientMessage(known)))
			return
		}
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, models.ErrorResponse("Internal server error"))
}

func clientMessage(err error) string {
	if msg, ok := clientMessages[err]; ok {
		return msg
	}
	msg := err.Error()
	return strings.ToUpper(msg[:1]) + msg[1:]
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse(msg))
}
