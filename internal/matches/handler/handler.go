package handler

import (
	"errors"
	"net/http"

	"footballadmin/internal/apierrors"
	"footballadmin/internal/matches/processor"
	"footballadmin/internal/observability"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	processor processor.MatchProcessor
	logger    *observability.Logger
}

func New(processor processor.MatchProcessor, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
	}
}

// CreateMatchRequest represents the HTTP request for creating a match
type CreateMatchRequest struct {
	Title      string      `json:"title" binding:"required,min=1,max=255"`
	Team1ID    uuid.UUID   `json:"team1Id" binding:"required"`
	Team2ID    uuid.UUID   `json:"team2Id" binding:"required"`
	ChannelIDs []uuid.UUID `json:"channelIds" binding:"required,min=1"`
	StreamURL  *string     `json:"streamUrl,omitempty"`
}

// UpdateMatchRequest represents the HTTP request for updating a match
type UpdateMatchRequest struct {
	Title      *string      `json:"title,omitempty"`
	Team1ID    *uuid.UUID   `json:"team1Id,omitempty"`
	Team2ID    *uuid.UUID   `json:"team2Id,omitempty"`
	ChannelIDs *[]uuid.UUID `json:"channelIds,omitempty"`
	StreamURL  *string      `json:"streamUrl,omitempty"`
}

// ToggleLiveRequest represents the HTTP request for flipping the live flag
type ToggleLiveRequest struct {
	IsLive *bool `json:"isLive" binding:"required"`
}

// NotificationsRequest represents the HTTP request for flipping notifications
type NotificationsRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// HandleListMatches returns all matches
func (h *Handler) HandleListMatches(c *gin.Context) {
	matches, err := h.processor.ListMatches(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, matches)
}

// HandleGetMatch returns a match by ID
func (h *Handler) HandleGetMatch(c *gin.Context) {
	matchID, ok := h.getMatchID(c)
	if !ok {
		return
	}

	match, err := h.processor.GetMatch(c.Request.Context(), matchID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, match)
}

// HandleCreateMatch creates a new match
func (h *Handler) HandleCreateMatch(c *gin.Context) {
	ctx := c.Request.Context()

	var req CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "VALIDATION_ERROR", "Title, both teams and at least one channel are required")
		return
	}

	ctx = observability.WithFields(ctx, observability.Field{Key: "match_title", Value: req.Title})

	match, err := h.processor.CreateMatch(ctx, processor.CreateMatchParams{
		Title:      req.Title,
		Team1ID:    req.Team1ID,
		Team2ID:    req.Team2ID,
		ChannelIDs: req.ChannelIDs,
		StreamURL:  req.StreamURL,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, match)
}

// HandleUpdateMatch updates a match
func (h *Handler) HandleUpdateMatch(c *gin.Context) {
	matchID, ok := h.getMatchID(c)
	if !ok {
		return
	}

	var req UpdateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	match, err := h.processor.UpdateMatch(c.Request.Context(), matchID, processor.UpdateMatchParams{
		Title:      req.Title,
		Team1ID:    req.Team1ID,
		Team2ID:    req.Team2ID,
		ChannelIDs: req.ChannelIDs,
		StreamURL:  req.StreamURL,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, match)
}

// HandleDeleteMatch deletes a match
func (h *Handler) HandleDeleteMatch(c *gin.Context) {
	matchID, ok := h.getMatchID(c)
	if !ok {
		return
	}

	if err := h.processor.DeleteMatch(c.Request.Context(), matchID); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// HandleToggleLive flips the live flag and may fire the live notification
func (h *Handler) HandleToggleLive(c *gin.Context) {
	matchID, ok := h.getMatchID(c)
	if !ok {
		return
	}

	var req ToggleLiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "VALIDATION_ERROR", "isLive is required")
		return
	}

	match, err := h.processor.ToggleLive(c.Request.Context(), matchID, *req.IsLive)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, match)
}

// HandleSetNotifications flips per-match notification delivery
func (h *Handler) HandleSetNotifications(c *gin.Context) {
	matchID, ok := h.getMatchID(c)
	if !ok {
		return
	}

	var req NotificationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "VALIDATION_ERROR", "enabled is required")
		return
	}

	match, err := h.processor.SetNotifications(c.Request.Context(), matchID, *req.Enabled)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, match)
}

func (h *Handler) getMatchID(c *gin.Context) (uuid.UUID, bool) {
	matchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "INVALID_ID", "Invalid match id")
		return uuid.Nil, false
	}
	return matchID, true
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, processor.ErrMatchNotFound):
		apierrors.NotFound(c, "Match not found")
	case errors.Is(err, processor.ErrTeamNotFound):
		apierrors.NotFound(c, "Team not found")
	case errors.Is(err, processor.ErrChannelNotFound):
		apierrors.NotFound(c, "Channel not found")
	case errors.Is(err, processor.ErrSameTeams):
		apierrors.BadRequest(c, "SAME_TEAMS", "Team 1 and Team 2 cannot be the same")
	case errors.Is(err, processor.ErrNoChannels):
		apierrors.BadRequest(c, "VALIDATION_ERROR", "At least one channel is required")
	case errors.Is(err, processor.ErrMatchNotLive):
		apierrors.BadRequest(c, "MATCH_NOT_LIVE", "Match is not live")
	default:
		apierrors.InternalError(c, err)
	}
}
