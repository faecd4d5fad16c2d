package helpers

import (
	"time"

	"github.com/gin-gonic/gin"
)

const CallerKey = "caller"

// CallerIdentity is the authenticated user attached to a request by the auth middleware.
type CallerIdentity struct {
	UserID    int64
	Email     string
	Name      string
	Token     string
	ExpiresAt time.Time
}

func (c *CallerIdentity) IsOwner(userID int64) bool {
	return c != nil && c.UserID == userID
}

func CallerFromContext(c *gin.Context) (*CallerIdentity, bool) {
	v, exists := c.Get(CallerKey)
	if !exists {
		return nil, false
	}
	caller, ok := v.(*CallerIdentity)
	return caller, ok && caller != nil
}
