// Package api provides the REST handlers and router for the portal:
// authentication, report submission and review, reference catalogs,
// user management, and the leaderboard channel controls.
package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/usss-rp/portal/internal/models"
)

// errorResponse sends a standardized error response.
func errorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"error":     message,
		"timestamp": time.Now().UTC(),
	})
}

// serviceError maps the service error taxonomy onto HTTP statuses. Anything
// outside the taxonomy is an internal error and keeps its detail out of the
// response body.
func serviceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		errorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrForbidden):
		errorResponse(c, http.StatusForbidden, err.Error())
	case errors.Is(err, models.ErrValidation):
		errorResponse(c, http.StatusBadRequest, err.Error())
	default:
		errorResponse(c, http.StatusInternalServerError, fallback)
	}
}
