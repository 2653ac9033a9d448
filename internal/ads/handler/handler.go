package handler

import (
	"errors"
	"net/http"

	"footballadmin/internal/ads/processor"
	"footballadmin/internal/apierrors"
	"footballadmin/internal/observability"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	processor processor.AdProcessor
	logger    *observability.Logger
}

func New(processor processor.AdProcessor, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
	}
}

// UpdateAdConfigRequest represents the HTTP request for replacing the ad config
type UpdateAdConfigRequest struct {
	AdsEnabled          bool    `json:"adsEnabled"`
	UseAdMob            bool    `json:"useAdMob"`
	UseStartApp         bool    `json:"useStartApp"`
	AdMobAppID          *string `json:"adMobAppId,omitempty"`
	AdMobBannerID       *string `json:"adMobBannerId,omitempty"`
	AdMobInterstitialID *string `json:"adMobInterstitialId,omitempty"`
	StartAppAppID       *string `json:"startAppAppId,omitempty"`
	AdFrequency         int     `json:"adFrequency"`
}

// SendAdNotificationRequest represents the HTTP request for an ad broadcast
type SendAdNotificationRequest struct {
	Title string `json:"title" binding:"required,min=1"`
	Body  string `json:"body" binding:"required,min=1"`
}

// HandleGetAdConfig returns the singleton ad configuration
func (h *Handler) HandleGetAdConfig(c *gin.Context) {
	cfg, err := h.processor.GetAdConfig(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// HandleUpdateAdConfig validates and replaces the ad configuration
func (h *Handler) HandleUpdateAdConfig(c *gin.Context) {
	var req UpdateAdConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	cfg, err := h.processor.UpdateAdConfig(c.Request.Context(), processor.UpdateAdConfigParams{
		AdsEnabled:          req.AdsEnabled,
		UseAdMob:            req.UseAdMob,
		UseStartApp:         req.UseStartApp,
		AdMobAppID:          req.AdMobAppID,
		AdMobBannerID:       req.AdMobBannerID,
		AdMobInterstitialID: req.AdMobInterstitialID,
		StartAppAppID:       req.StartAppAppID,
		AdFrequency:         req.AdFrequency,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// HandleSendAdNotification broadcasts a promotional push to all users
func (h *Handler) HandleSendAdNotification(c *gin.Context) {
	var req SendAdNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "VALIDATION_ERROR", "Title and body are required")
		return
	}

	messageID, err := h.processor.SendAdNotification(c.Request.Context(), req.Title, req.Body)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "messageId": messageID})
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, processor.ErrNoProvider):
		apierrors.BadRequest(c, "VALIDATION_ERROR", "Enable exactly one ad provider when ads are enabled")
	case errors.Is(err, processor.ErrBothProviders):
		apierrors.BadRequest(c, "VALIDATION_ERROR", "AdMob and StartApp cannot both be enabled")
	case errors.Is(err, processor.ErrMissingAdMobIDs):
		apierrors.BadRequest(c, "VALIDATION_ERROR", "AdMob app, banner and interstitial ids are required")
	case errors.Is(err, processor.ErrMissingStartAppID):
		apierrors.BadRequest(c, "VALIDATION_ERROR", "StartApp app id is required")
	case errors.Is(err, processor.ErrInvalidFrequency):
		apierrors.BadRequest(c, "VALIDATION_ERROR", "Ad frequency must be at least 1")
	default:
		apierrors.InternalError(c, err)
	}
}
