package handler

import (
	"errors"
	"net/http"

	"footballadmin/internal/apierrors"
	"footballadmin/internal/observability"
	"footballadmin/internal/teams/processor"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	processor processor.TeamProcessor
	logger    *observability.Logger
}

func New(processor processor.TeamProcessor, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
	}
}

// CreateTeamRequest represents the HTTP request for creating a team
type CreateTeamRequest struct {
	Name     string  `json:"name" binding:"required,min=1,max=255"`
	CrestURL *string `json:"crestUrl,omitempty"`
}

// UpdateTeamRequest represents the HTTP request for updating a team
type UpdateTeamRequest struct {
	Name     *string `json:"name,omitempty"`
	CrestURL *string `json:"crestUrl,omitempty"`
}

// HandleListTeams returns all teams
func (h *Handler) HandleListTeams(c *gin.Context) {
	teams, err := h.processor.ListTeams(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, teams)
}

// HandleGetTeam returns a team by ID
func (h *Handler) HandleGetTeam(c *gin.Context) {
	teamID, ok := h.getTeamID(c)
	if !ok {
		return
	}

	team, err := h.processor.GetTeam(c.Request.Context(), teamID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, team)
}

// HandleCreateTeam creates a new team
func (h *Handler) HandleCreateTeam(c *gin.Context) {
	ctx := c.Request.Context()

	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "VALIDATION_ERROR", "Team name is required")
		return
	}

	ctx = observability.WithFields(ctx, observability.Field{Key: "team_name", Value: req.Name})

	team, err := h.processor.CreateTeam(ctx, processor.CreateTeamParams{
		Name:     req.Name,
		CrestURL: req.CrestURL,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, team)
}

// HandleUpdateTeam updates a team
func (h *Handler) HandleUpdateTeam(c *gin.Context) {
	teamID, ok := h.getTeamID(c)
	if !ok {
		return
	}

	var req UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	team, err := h.processor.UpdateTeam(c.Request.Context(), teamID, processor.UpdateTeamParams{
		Name:     req.Name,
		CrestURL: req.CrestURL,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, team)
}

// HandleDeleteTeam deletes a team unless a match references it
func (h *Handler) HandleDeleteTeam(c *gin.Context) {
	teamID, ok := h.getTeamID(c)
	if !ok {
		return
	}

	if err := h.processor.DeleteTeam(c.Request.Context(), teamID); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) getTeamID(c *gin.Context) (uuid.UUID, bool) {
	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "INVALID_ID", "Invalid team id")
		return uuid.Nil, false
	}
	return teamID, true
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, processor.ErrTeamNotFound):
		apierrors.NotFound(c, "Team not found")
	case errors.Is(err, processor.ErrDuplicateName):
		apierrors.BadRequest(c, "DUPLICATE_NAME", "A team with this name already exists")
	case errors.Is(err, processor.ErrTeamInUse):
		apierrors.BadRequest(c, "TEAM_IN_USE", "Cannot delete team as it is used in one or more matches")
	case errors.Is(err, processor.ErrEmptyName):
		apierrors.BadRequest(c, "VALIDATION_ERROR", "Team name is required")
	default:
		apierrors.InternalError(c, err)
	}
}
