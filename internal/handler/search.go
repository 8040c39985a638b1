// Package handler provides HTTP request handlers for the application.
package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/creatorlens/youtube-analytics-go/internal/models"
	"github.com/creatorlens/youtube-analytics-go/internal/repository"
	"github.com/creatorlens/youtube-analytics-go/pkg/logger"
)

// Searcher runs a full search analysis.
type Searcher interface {
	Search(ctx context.Context, params models.SearchParams) (*models.SearchResult, error)
}

// Enqueuer defers a search analysis to the background worker.
type Enqueuer interface {
	EnqueueSearchAnalysis(ctx context.Context, params models.SearchParams) (*models.SearchRun, error)
}

// RunStore reads the state of background analyses.
type RunStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.SearchRun, error)
	ListRecent(ctx context.Context, limit int) ([]models.SearchRun, error)
}

// SearchHandler handles synchronous and deferred search analyses.
type SearchHandler struct {
	searcher Searcher
	enqueuer Enqueuer
	runStore RunStore
}

// NewSearchHandler creates a SearchHandler. enqueuer and runStore may be
// nil, which disables the async endpoints.
func NewSearchHandler(searcher Searcher, enqueuer Enqueuer, runStore RunStore) *SearchHandler {
	return &SearchHandler{
		searcher: searcher,
		enqueuer: enqueuer,
		runStore: runStore,
	}
}

// Search runs the analysis pipeline and returns the full result.
func (h *SearchHandler) Search(c *gin.Context) {
	var params models.SearchParams
	if err := c.ShouldBindJSON(&params); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	start := time.Now()
	result, err := h.searcher.Search(c.Request.Context(), params)
	if err != nil {
		if Metrics.SearchesTotal != nil {
			Metrics.SearchesTotal.WithLabelValues("error").Inc()
		}
		handleServiceError(c, err)
		return
	}

	if Metrics.SearchesTotal != nil {
		Metrics.SearchesTotal.WithLabelValues("success").Inc()
		Metrics.QuotaUsedTotal.Add(float64(result.QuotaCost))
		Metrics.PipelineDuration.Observe(time.Since(start).Seconds())
	}

	c.JSON(http.StatusOK, result)
}

// SearchAsync records a pending run, enqueues the analysis and returns
// immediately with the run ID.
func (h *SearchHandler) SearchAsync(c *gin.Context) {
	if h.enqueuer == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
			Status:    http.StatusServiceUnavailable,
			Error:     "Service Unavailable",
			Message:   "Background processing is not configured",
			Timestamp: time.Now(),
			Path:      c.Request.URL.Path,
		})
		return
	}

	var params models.SearchParams
	if err := c.ShouldBindJSON(&params); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	run, err := h.enqueuer.EnqueueSearchAnalysis(c.Request.Context(), params)
	if err != nil {
		logger.Log.Error("Failed to enqueue search analysis",
			zap.Error(err),
			zap.String("keyword", params.Keyword),
		)
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, models.AsyncSearchResponse{
		RunID:      run.ID,
		Status:     run.Status,
		EnqueuedAt: run.CreatedAt,
	})
}

// GetRun returns the state of a background analysis.
func (h *SearchHandler) GetRun(c *gin.Context) {
	if h.runStore == nil {
		notFound(c, "Search run not found")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "Invalid run ID")
		return
	}

	run, err := h.runStore.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			notFound(c, "Search run not found")
			return
		}
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, run)
}

// ListRuns returns recent background analyses, newest first.
func (h *SearchHandler) ListRuns(c *gin.Context) {
	if h.runStore == nil {
		c.JSON(http.StatusOK, gin.H{"runs": []models.SearchRun{}, "count": 0})
		return
	}

	runs, err := h.runStore.ListRecent(c.Request.Context(), parseLimit(c, 20))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"runs":  runs,
		"count": len(runs),
	})
}
