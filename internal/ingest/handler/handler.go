package handler

import (
	"context"
	"errors"
	"net/http"

	"footballadmin/internal/apierrors"
	"footballadmin/internal/ingest/processor"
	"footballadmin/internal/observability"
	"footballadmin/internal/store"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	processor processor.IngestProcessor
	logger    *observability.Logger
}

func New(processor processor.IngestProcessor, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
	}
}

// HandleFetchCompetitions refreshes the competitions snapshot
func (h *Handler) HandleFetchCompetitions(c *gin.Context) {
	h.runFetch(c, h.processor.FetchCompetitions)
}

// HandleFetchMatches refreshes the fixture snapshot
func (h *Handler) HandleFetchMatches(c *gin.Context) {
	h.runFetch(c, h.processor.FetchMatches)
}

// HandleFetchStandings refreshes the standings snapshot
func (h *Handler) HandleFetchStandings(c *gin.Context) {
	h.runFetch(c, h.processor.FetchStandings)
}

// HandleFetchScorers refreshes the top scorers snapshot
func (h *Handler) HandleFetchScorers(c *gin.Context) {
	h.runFetch(c, h.processor.FetchScorers)
}

// HandleFetchTeams imports teams into the admin teams table
func (h *Handler) HandleFetchTeams(c *gin.Context) {
	h.runFetch(c, h.processor.FetchTeams)
}

// HandleFetchNews refreshes the news snapshot
func (h *Handler) HandleFetchNews(c *gin.Context) {
	h.runFetch(c, h.processor.FetchNews)
}

// HandleFetchAll runs every fetcher and returns the per-endpoint summary.
// The call succeeds as long as the orchestrator itself ran; individual
// endpoint failures are reported inside the results list.
func (h *Handler) HandleFetchAll(c *gin.Context) {
	results := h.processor.FetchAll(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"success": true, "results": results})
}

// HandleListCompetitions returns the current competitions snapshot
func (h *Handler) HandleListCompetitions(c *gin.Context) {
	h.listSnapshots(c, store.SnapshotCompetitions)
}

// HandleListAPIMatches returns the current fixture snapshot
func (h *Handler) HandleListAPIMatches(c *gin.Context) {
	h.listSnapshots(c, store.SnapshotMatches)
}

// HandleListStandings returns the current standings snapshot
func (h *Handler) HandleListStandings(c *gin.Context) {
	h.listSnapshots(c, store.SnapshotStandings)
}

// HandleListScorers returns the current top scorers snapshot
func (h *Handler) HandleListScorers(c *gin.Context) {
	h.listSnapshots(c, store.SnapshotScorers)
}

// HandleListNews returns the current news snapshot
func (h *Handler) HandleListNews(c *gin.Context) {
	h.listSnapshots(c, store.SnapshotNews)
}

func (h *Handler) runFetch(c *gin.Context, fetch func(context.Context) (int64, error)) {
	inserted, err := fetch(c.Request.Context())
	if err != nil {
		if errors.Is(err, processor.ErrNoRecords) {
			c.Status(http.StatusNoContent)
			return
		}
		apierrors.InternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "insertedCount": inserted})
}

func (h *Handler) listSnapshots(c *gin.Context, kind store.SnapshotKind) {
	snapshots, err := h.processor.ListSnapshots(c.Request.Context(), kind)
	if err != nil {
		apierrors.InternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshots)
}
