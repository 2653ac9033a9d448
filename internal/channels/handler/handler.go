package handler

import (
	"errors"
	"net/http"

	"footballadmin/internal/apierrors"
	"footballadmin/internal/channels/processor"
	"footballadmin/internal/observability"
	"footballadmin/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	processor processor.ChannelProcessor
	logger    *observability.Logger
}

func New(processor processor.ChannelProcessor, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
	}
}

// HeaderRequest is one stream header in an HTTP request
type HeaderRequest struct {
	Name  string `json:"name" binding:"required,min=1"`
	Value string `json:"value" binding:"required"`
}

// CreateChannelRequest represents the HTTP request for creating a channel
type CreateChannelRequest struct {
	Name    string          `json:"name" binding:"required,min=1,max=255"`
	M3U8URL string          `json:"m3u8Url" binding:"required,url"`
	Headers []HeaderRequest `json:"headers,omitempty" binding:"dive"`
}

// UpdateChannelRequest represents the HTTP request for updating a channel
type UpdateChannelRequest struct {
	Name    *string          `json:"name,omitempty"`
	M3U8URL *string          `json:"m3u8Url,omitempty"`
	Headers *[]HeaderRequest `json:"headers,omitempty"`
}

// HandleListChannels returns all channels
func (h *Handler) HandleListChannels(c *gin.Context) {
	channels, err := h.processor.ListChannels(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, channels)
}

// HandleGetChannel returns a channel by ID
func (h *Handler) HandleGetChannel(c *gin.Context) {
	channelID, ok := h.getChannelID(c)
	if !ok {
		return
	}

	channel, err := h.processor.GetChannel(c.Request.Context(), channelID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, channel)
}

// HandleCreateChannel creates a new channel
func (h *Handler) HandleCreateChannel(c *gin.Context) {
	ctx := c.Request.Context()

	var req CreateChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "VALIDATION_ERROR", "Channel name and a valid m3u8 URL are required")
		return
	}

	ctx = observability.WithFields(ctx, observability.Field{Key: "channel_name", Value: req.Name})

	channel, err := h.processor.CreateChannel(ctx, processor.CreateChannelParams{
		Name:    req.Name,
		M3U8URL: req.M3U8URL,
		Headers: convertHeaders(req.Headers),
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, channel)
}

// HandleUpdateChannel updates a channel
func (h *Handler) HandleUpdateChannel(c *gin.Context) {
	channelID, ok := h.getChannelID(c)
	if !ok {
		return
	}

	var req UpdateChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	params := processor.UpdateChannelParams{
		Name:    req.Name,
		M3U8URL: req.M3U8URL,
	}
	if req.Headers != nil {
		headers := convertHeaders(*req.Headers)
		params.Headers = &headers
	}

	channel, err := h.processor.UpdateChannel(c.Request.Context(), channelID, params)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, channel)
}

// HandleDeleteChannel deletes a channel unless a match references it
func (h *Handler) HandleDeleteChannel(c *gin.Context) {
	channelID, ok := h.getChannelID(c)
	if !ok {
		return
	}

	if err := h.processor.DeleteChannel(c.Request.Context(), channelID); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func convertHeaders(reqs []HeaderRequest) store.ChannelHeaders {
	headers := make(store.ChannelHeaders, 0, len(reqs))
	for _, r := range reqs {
		headers = append(headers, store.ChannelHeader{Name: r.Name, Value: r.Value})
	}
	return headers
}

func (h *Handler) getChannelID(c *gin.Context) (uuid.UUID, bool) {
	channelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "INVALID_ID", "Invalid channel id")
		return uuid.Nil, false
	}
	return channelID, true
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, processor.ErrChannelNotFound):
		apierrors.NotFound(c, "Channel not found")
	case errors.Is(err, processor.ErrDuplicateName):
		apierrors.BadRequest(c, "DUPLICATE_NAME", "A channel with this name already exists")
	case errors.Is(err, processor.ErrChannelInUse):
		apierrors.BadRequest(c, "CHANNEL_IN_USE", "Cannot delete channel as it is used in one or more matches")
	case errors.Is(err, processor.ErrInvalidChannel):
		apierrors.BadRequest(c, "VALIDATION_ERROR", "Channel name and a valid m3u8 URL are required")
	default:
		apierrors.InternalError(c, err)
	}
}
