package handlers

import (
	"context"
	"log"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/monngon/backend/internal/models"
	"github.com/monngon/backend/internal/notify"
)

// getUserIDFromContext extracts the authenticated user ID stored by the JWT
// middleware, returning 0 when the request is unauthenticated.
func getUserIDFromContext(c echo.Context) uint {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok {
		return 0
	}
	return claims.UserID
}

// parseOwnerID converts a stored numeric owner ID back to uint, returning 0
// when the value is not numeric.
func parseOwnerID(s string) uint {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0
	}
	return uint(id)
}

// recordNotification runs the aggregator off the request path. Aggregation
// failures are logged and never fail the triggering action.
func recordNotification(a *notify.Aggregator, ev notify.Event) {
	if a == nil {
		return
	}
	go func() {
		if err := a.RecordEvent(context.Background(), ev); err != nil {
			log.Printf("Failed to record %s notification: %v", ev.Kind, err)
		}
	}()
}
