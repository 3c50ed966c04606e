package api

import (
	"errors"   // errors.As for typed service errors
	"net/http" // HTTP status codes
	"strconv"  // Path parameter parsing

	"github.com/gin-gonic/gin" // Gin web framework

	"lifetrack/internal/service" // Error taxonomy
)

// actingUserID pulls the authenticated user's ID out of the gin context,
// where the JWT middleware stored it. Handlers pass it into the service layer
// explicitly; nothing below the API layer reads request state.
func actingUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	id, ok := v.(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return id, true
}

// idParam parses a numeric path parameter
func idParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || v == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(v), true
}

// respondError maps a service error onto an HTTP status and JSON body.
// Validation errors keep their per-field detail so the client can render
// messages next to each input.
func respondError(c *gin.Context, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "fields": verr.Fields})
		return
	}
	var nf *service.NotFoundError
	if errors.As(err, &nf) {
		c.JSON(http.StatusNotFound, gin.H{"error": nf.Error()})
		return
	}
	var az *service.AuthorizationError
	if errors.As(err, &az) {
		c.JSON(http.StatusForbidden, gin.H{"error": az.Error()})
		return
	}
	// StorageError and anything unexpected: the whole unit rolled back
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
