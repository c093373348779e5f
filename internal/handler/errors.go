package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"taskboard/internal/service"
)

// statusFor maps a service error kind to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error reason for known kinds and fallback for
// anything else, which is logged.
func respondError(c *gin.Context, err error, fallback string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.WithError(err).WithField("path", c.FullPath()).Error(fallback)
		c.AbortWithStatusJSON(status, gin.H{"error": fallback})
		return
	}
	if errors.Is(err, service.ErrInvalidCredentials) {
		c.AbortWithStatusJSON(status, gin.H{"error": "Invalid credentials"})
		return
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
