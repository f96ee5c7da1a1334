package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pdfdesk/internal/middleware"
	"pdfdesk/internal/services"
)

// Envelope is the shape of every JSON response; payload keys sit next to
// status and message.
type Envelope struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func respond(c *gin.Context, status int, message string, payload gin.H) {
	body := gin.H{"status": status, "message": message}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

func statusForKind(k services.ErrorKind) int {
	switch k {
	case services.KindValidation, services.KindConflict, services.KindAuth:
		return http.StatusBadRequest
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondError maps a service error onto the envelope. Causes are attached to
// the gin context for the request logger, never written to the client.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	var se *services.Error
	if !errors.As(err, &se) {
		respond(c, http.StatusInternalServerError, "Internal server error", nil)
		return
	}
	msg := se.Message
	if se.Kind == services.KindInternal || msg == "" {
		msg = "Internal server error"
	}
	respond(c, statusForKind(se.Kind), msg, nil)
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		_ = c.Error(err)
		respond(c, http.StatusBadRequest, "Invalid request body", nil)
		return false
	}
	return true
}

// currentUserID is the id carried by the session token.
func currentUserID(c *gin.Context) string {
	if claims, ok := middleware.ClaimsFromContext(c); ok {
		return claims.UserID
	}
	return ""
}
