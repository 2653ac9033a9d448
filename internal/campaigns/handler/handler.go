package handler

import (
	"errors"
	"net/http"

	"footballadmin/internal/apierrors"
	"footballadmin/internal/campaigns/processor"
	"footballadmin/internal/observability"
	"footballadmin/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	processor processor.CampaignProcessor
	logger    *observability.Logger
}

func New(processor processor.CampaignProcessor, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
	}
}

// MessageRequest is the notification content of a campaign
type MessageRequest struct {
	Title string `json:"title" binding:"required,min=1"`
	Body  string `json:"body" binding:"required,min=1"`
}

// CreateCampaignRequest represents the HTTP request for creating a campaign
type CreateCampaignRequest struct {
	Title          string         `json:"title" binding:"required,min=1,max=255"`
	Message        MessageRequest `json:"message" binding:"required"`
	TargetAudience string         `json:"targetAudience" binding:"required"`
	CustomTopic    *string        `json:"customTopic,omitempty"`
	CampaignType   string         `json:"campaignType,omitempty"`
	Status         string         `json:"status,omitempty"`
	MatchID        *uuid.UUID     `json:"matchId,omitempty"`
}

// UpdateCampaignRequest represents the HTTP request for updating a campaign
type UpdateCampaignRequest struct {
	Title          *string         `json:"title,omitempty"`
	Message        *MessageRequest `json:"message,omitempty"`
	TargetAudience *string         `json:"targetAudience,omitempty"`
	CustomTopic    *string         `json:"customTopic,omitempty"`
	MatchID        *uuid.UUID      `json:"matchId,omitempty"`
}

// StatusRequest represents the HTTP request for a status transition
type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// HandleListCampaigns returns all campaigns
func (h *Handler) HandleListCampaigns(c *gin.Context) {
	campaigns, err := h.processor.ListCampaigns(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, campaigns)
}

// HandleGetCampaign returns a campaign by ID
func (h *Handler) HandleGetCampaign(c *gin.Context) {
	campaignID, ok := h.getCampaignID(c)
	if !ok {
		return
	}

	campaign, err := h.processor.GetCampaign(c.Request.Context(), campaignID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, campaign)
}

// HandleCreateCampaign creates a campaign and, for instant campaigns,
// dispatches it in the same request. The response reports the dispatch
// outcome with success true or false rather than an error status.
func (h *Handler) HandleCreateCampaign(c *gin.Context) {
	ctx := c.Request.Context()

	var req CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "VALIDATION_ERROR", "Title, message title, message body and target audience are required")
		return
	}

	ctx = observability.WithFields(ctx, observability.Field{Key: "campaign_title", Value: req.Title})

	campaign, err := h.processor.CreateCampaign(ctx, processor.CreateCampaignParams{
		Title:          req.Title,
		Message:        store.CampaignMessage{Title: req.Message.Title, Body: req.Message.Body},
		TargetAudience: req.TargetAudience,
		CustomTopic:    req.CustomTopic,
		CampaignType:   req.CampaignType,
		Status:         req.Status,
		MatchID:        req.MatchID,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	switch campaign.Status {
	case store.CampaignStatusSent:
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"id":        campaign.ID,
			"messageId": campaign.MessageID,
			"campaign":  campaign,
		})
	case store.CampaignStatusFailed:
		c.JSON(http.StatusOK, gin.H{
			"success":  false,
			"id":       campaign.ID,
			"error":    campaign.Error,
			"campaign": campaign,
		})
	default:
		c.JSON(http.StatusCreated, campaign)
	}
}

// HandleUpdateCampaign updates a campaign's editable fields
func (h *Handler) HandleUpdateCampaign(c *gin.Context) {
	campaignID, ok := h.getCampaignID(c)
	if !ok {
		return
	}

	var req UpdateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	params := processor.UpdateCampaignParams{
		Title:          req.Title,
		TargetAudience: req.TargetAudience,
		CustomTopic:    req.CustomTopic,
		MatchID:        req.MatchID,
	}
	if req.Message != nil {
		params.Message = &store.CampaignMessage{Title: req.Message.Title, Body: req.Message.Body}
	}

	campaign, err := h.processor.UpdateCampaign(c.Request.Context(), campaignID, params)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, campaign)
}

// HandleDeleteCampaign removes a campaign
func (h *Handler) HandleDeleteCampaign(c *gin.Context) {
	campaignID, ok := h.getCampaignID(c)
	if !ok {
		return
	}

	if err := h.processor.DeleteCampaign(c.Request.Context(), campaignID); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// HandleSetStatus moves a campaign between draft, active and paused
func (h *Handler) HandleSetStatus(c *gin.Context) {
	campaignID, ok := h.getCampaignID(c)
	if !ok {
		return
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "VALIDATION_ERROR", "Status is required")
		return
	}

	campaign, err := h.processor.SetStatus(c.Request.Context(), campaignID, req.Status)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, campaign)
}

// HandleSendCampaign dispatches an existing campaign. The outcome is reported
// the same way as the create-and-send path.
func (h *Handler) HandleSendCampaign(c *gin.Context) {
	campaignID, ok := h.getCampaignID(c)
	if !ok {
		return
	}

	campaign, err := h.processor.SendCampaign(c.Request.Context(), campaignID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	if campaign.Status == store.CampaignStatusFailed {
		c.JSON(http.StatusOK, gin.H{
			"success":  false,
			"id":       campaign.ID,
			"error":    campaign.Error,
			"campaign": campaign,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"id":        campaign.ID,
		"messageId": campaign.MessageID,
		"campaign":  campaign,
	})
}

func (h *Handler) getCampaignID(c *gin.Context) (uuid.UUID, bool) {
	campaignID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "INVALID_ID", "Invalid campaign id")
		return uuid.Nil, false
	}
	return campaignID, true
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, processor.ErrCampaignNotFound):
		apierrors.NotFound(c, "Campaign not found")
	case errors.Is(err, processor.ErrInvalidCampaign):
		apierrors.BadRequest(c, "VALIDATION_ERROR", "Title, message title, message body and target audience are required")
	case errors.Is(err, processor.ErrInvalidAudience):
		apierrors.BadRequest(c, "VALIDATION_ERROR", "Target audience must be all-users, live-matches or custom")
	case errors.Is(err, processor.ErrMissingCustomTopic):
		apierrors.BadRequest(c, "VALIDATION_ERROR", "Custom topic is required for a custom audience")
	case errors.Is(err, processor.ErrInvalidStatus):
		apierrors.BadRequest(c, "VALIDATION_ERROR", "Status must be draft, active or paused")
	case errors.Is(err, processor.ErrAlreadySent):
		apierrors.BadRequest(c, "ALREADY_SENT", "Campaign has already been sent")
	default:
		apierrors.InternalError(c, err)
	}
}
