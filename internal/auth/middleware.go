package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextUserID is the context key the middleware stores the
// authenticated user's ID under.
const ContextUserID = "userID"

type authError struct {
	Error string `json:"error" example:"a bearer token is required for this endpoint"`
}

// Middleware returns a handler that rejects requests without a valid
// bearer token. The router only attaches it when a token secret is
// configured.
func Middleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, authError{Error: ErrNoToken.Error()})
			return
		}

		id, err := ParseToken(strings.TrimPrefix(header, "Bearer "), secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, authError{Error: err.Error()})
			return
		}

		c.Set(ContextUserID, id)
		c.Next()
	}
}

// UserID returns the authenticated user's ID from the request
// context, uuid.Nil if the request is unauthenticated.
func UserID(c *gin.Context) uuid.UUID {
	value, ok := c.Get(ContextUserID)
	if !ok {
		return uuid.Nil
	}

	id, ok := value.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}

	return id
}
