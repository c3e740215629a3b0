package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// actorIDKey is the key used to store the acting identity in the context.
const actorIDKey = contextKey("actorID")

// actorHeader carries the caller's identity. Authentication happens
// upstream of this service; the header is trusted as-is here.
const actorHeader = "X-Actor-ID"

// defaultActorID is recorded in audit fields when no identity was supplied.
const defaultActorID = "system"

// ActorMiddleware extracts the acting identity from the request headers and
// stores it on the request context for audit fields.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID := c.GetHeader(actorHeader)
		if actorID == "" {
			actorID = defaultActorID
		}
		ctx := context.WithValue(c.Request.Context(), actorIDKey, actorID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// GetActorIDFromContext retrieves the acting identity from the Gin context.
func GetActorIDFromContext(c *gin.Context) (string, bool) {
	actorID, ok := c.Request.Context().Value(actorIDKey).(string)
	if !ok || actorID == "" {
		return "", false
	}
	return actorID, true
}
