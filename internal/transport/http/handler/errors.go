package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/vehicle-api/internal/domain"
	"github.com/gin-gonic/gin"
)

const (
	errInternalServer     = "Internal server error"
	errValidationFailed   = "Validation failed"
	errInvalidBody        = "Invalid request body"
	errInvalidQuery       = "Invalid query parameters"
	errInvalidID          = "Invalid id"
	errEmailTaken         = "Email is already in use."
	errInvalidCredentials = "Invalid Credentials"
	errNoToken            = "No JWT token provided"
	errUnauthorized       = "Unauthorized"
	errUserNotFound       = "User not found"
)

// writeCatalogError maps repository outcomes for one catalog entity to a
// status and body. Anything unrecognised is logged and reported as 500.
func writeCatalogError(c *gin.Context, logger *slog.Logger, entity, op string, err error) {
	var refErr *domain.ReferenceError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": entity + " not found."})
	case errors.As(err, &refErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + refErr.Field + " provided."})
	case errors.Is(err, domain.ErrInUse):
		c.JSON(http.StatusConflict, gin.H{"error": entity + " is still referenced and cannot be deleted."})
	default:
		logger.ErrorContext(c.Request.Context(), op, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
	}
}
