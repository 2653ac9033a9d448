package handler

import (
	"net/http"

	"footballadmin/internal/apierrors"
	"footballadmin/internal/auth/processor"
	"footballadmin/internal/observability"

	"github.com/gin-gonic/gin"
)

// SessionCookieName is the HTTP-only cookie carrying the admin session token
const SessionCookieName = "admin_session"

type Handler struct {
	processor processor.AuthProcessor
	logger    *observability.Logger
}

func New(processor processor.AuthProcessor, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
	}
}

// LoginRequest carries the shared admin password
type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// HandleLogin verifies the admin password and sets the session cookie
func (h *Handler) HandleLogin(c *gin.Context) {
	ctx := c.Request.Context()

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "VALIDATION_ERROR", "Password is required")
		return
	}

	token, expiresAt, err := h.processor.Login(ctx, req.Password)
	if err != nil {
		apierrors.Unauthorized(c, "Invalid password")
		return
	}

	maxAge := int(processor.SessionLifetime.Seconds())
	c.SetCookie(SessionCookieName, token, maxAge, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true, "expiresAt": expiresAt})
}

// HandleLogout clears the session cookie
func (h *Handler) HandleLogout(c *gin.Context) {
	c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// RequireSession gates all dashboard routes behind a valid session cookie
func (h *Handler) RequireSession(c *gin.Context) {
	token, err := c.Cookie(SessionCookieName)
	if err != nil {
		apierrors.Unauthorized(c, "Authentication required")
		c.Abort()
		return
	}
	if err := h.processor.ValidateSession(token); err != nil {
		apierrors.Unauthorized(c, "Session expired or invalid")
		c.Abort()
		return
	}
	c.Next()
}
