package utils

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// firstMessage picks a deterministic headline message for the 422 envelope.
func firstMessage(fields map[string][]string) string {
	for _, messages := range fields {
		if len(messages) > 0 {
			return messages[0]
		}
	}
	return "The given data was invalid."
}

func RespondValidationError(c *gin.Context, verr *ValidationError) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"message": firstMessage(verr.Fields),
		"errors":  verr.Fields,
	})
}

func RespondForbidden(c *gin.Context, message string) {
	if message == "" {
		message = "Forbidden"
	}
	c.JSON(http.StatusForbidden, gin.H{"message": message})
}

func RespondUnauthenticated(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated."})
}

func RespondLocked(c *gin.Context, serr *SuspendedError) {
	body := gin.H{"message": serr.Message}
	if serr.SuspendedUntil != nil {
		body["suspended_until"] = serr.SuspendedUntil
	} else {
		body["suspended_until"] = nil
	}
	c.JSON(http.StatusLocked, body)
}

// HandleServiceError maps the service error taxonomy onto the wire:
// validation 422, forbidden 403, suspension lock 423, missing entity 404,
// everything else 500.
func HandleServiceError(c *gin.Context, err error) {
	var verr *ValidationError
	var ferr *ForbiddenError
	var serr *SuspendedError

	switch {
	case errors.As(err, &verr):
		RespondValidationError(c, verr)
	case errors.As(err, &ferr):
		RespondForbidden(c, ferr.Message)
	case errors.As(err, &serr):
		RespondLocked(c, serr)
	case errors.Is(err, ErrUnauthenticated):
		RespondUnauthenticated(c)
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found."})
	case errors.Is(err, ErrDatabaseError):
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	default:
		log.Printf("Unknown error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}
