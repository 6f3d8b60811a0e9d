package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes

	"hobbymatch/internal/domain"     // Typed outcomes
	"hobbymatch/internal/middleware" // Request and user ids

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// statusFor maps an error kind to its HTTP status
func statusFor(k domain.Kind) int {
	switch k {
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict, domain.KindInvalidInput:
		return http.StatusBadRequest
	case domain.KindUnauthenticated:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindMethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as a JSON error body. Unclassified errors are
// logged and answered with a generic 500.
func respondError(c *gin.Context, err error, action string) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input.", "errors": ve.Fields})
		return
	}
	var de *domain.Error
	if errors.As(err, &de) {
		c.JSON(statusFor(de.Kind), gin.H{"error": de.Message})
		return
	}
	logEntry(c).WithFields(logrus.Fields{
		"action": action,      // Operation that failed
		"error":  err.Error(), // Error message
	}).Error(action + " failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error."})
}

// respondFormError answers a form endpoint. Input problems become
// {success:false, errors} with 400; everything else goes through respondError.
func respondFormError(c *gin.Context, err error, action string) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "errors": ve.Fields})
		return
	}
	field := ""
	switch {
	case errors.Is(err, domain.ErrUsernameTaken):
		field = "username"
	case errors.Is(err, domain.ErrEmailTaken):
		field = "email"
	case errors.Is(err, domain.ErrHobbyNotFound):
		field = "hobbies"
	}
	if field != "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "errors": gin.H{field: err.Error()}})
		return
	}
	respondError(c, err, action)
}

// logEntry returns a logrus entry tagged with the request id and caller
func logEntry(c *gin.Context) *logrus.Entry {
	entry := logrus.WithField("request_id", middleware.RequestID(c))
	if uid, ok := middleware.CurrentUserID(c); ok {
		entry = entry.WithField("user_id", uid)
	}
	return entry
}

// badRequest answers a malformed body
func badRequest(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
}

// currentUserID reads the caller's id, answering 401 when absent
func currentUserID(c *gin.Context) (uint, bool) {
	id, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": domain.ErrUnauthenticated.Message})
	}
	return id, ok
}
