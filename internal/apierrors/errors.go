package apierrors

import (
	"net/http"

	"footballadmin/internal/observability"

	"github.com/gin-gonic/gin"
)

var logger = observability.NewLogger()

// ErrorResponse is the JSON structure returned to API clients. The admin
// dashboard surfaces Message directly in toast notifications, so it must be
// human-readable.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// respond writes the error response and logs correlation info
func respond(c *gin.Context, statusCode int, code, message string) {
	ctx := c.Request.Context()
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "status_code", Value: statusCode},
		observability.Field{Key: "error_code", Value: code},
		observability.Field{Key: "error_message", Value: message},
	)
	logger.Info(ctx, "API error response")

	c.JSON(statusCode, ErrorResponse{
		Message: message,
		Code:    code,
	})
}

// NotFound sends a 404 response
func NotFound(c *gin.Context, message string) {
	respond(c, http.StatusNotFound, "NOT_FOUND", message)
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, code, message string) {
	respond(c, http.StatusBadRequest, code, message)
}

// ValidationError sends a 400 response for a request body that failed binding
func ValidationError(c *gin.Context, err error) {
	respond(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
}

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	respond(c, http.StatusUnauthorized, "UNAUTHORIZED", message)
}

// Conflict sends a 409 response
func Conflict(c *gin.Context, code, message string) {
	respond(c, http.StatusConflict, code, message)
}

// InternalError sends a 500 response carrying the error's message. Upstream
// integration failures are surfaced to the operator as-is; the dashboard is an
// internal tool and the messages are needed for diagnosis.
func InternalError(c *gin.Context, internalErr error) {
	ctx := c.Request.Context()
	logger.Error(ctx, "internal error", internalErr)
	respond(c, http.StatusInternalServerError, "INTERNAL_ERROR", internalErr.Error())
}
