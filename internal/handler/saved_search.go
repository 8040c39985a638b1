package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/creatorlens/youtube-analytics-go/internal/models"
	"github.com/creatorlens/youtube-analytics-go/internal/repository"
)

// SavedSearchStore persists bookmarked search parameters.
type SavedSearchStore interface {
	Create(ctx context.Context, saved *models.SavedSearch) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.SavedSearch, error)
	List(ctx context.Context, limit int) ([]models.SavedSearch, error)
	Update(ctx context.Context, saved *models.SavedSearch) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// savedSearchRequest is the write payload for saved searches.
type savedSearchRequest struct {
	Name   string              `json:"name" binding:"required,max=100"`
	Params models.SearchParams `json:"params" binding:"required"`
}

// SavedSearchHandler handles CRUD for bookmarked searches.
type SavedSearchHandler struct {
	store SavedSearchStore
}

// NewSavedSearchHandler creates a SavedSearchHandler.
func NewSavedSearchHandler(store SavedSearchStore) *SavedSearchHandler {
	return &SavedSearchHandler{store: store}
}

// Create bookmarks a set of search parameters.
func (h *SavedSearchHandler) Create(c *gin.Context) {
	var req savedSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	if req.Params.Keyword == "" {
		badRequest(c, "Search keyword is required")
		return
	}

	saved := &models.SavedSearch{Name: req.Name, Params: req.Params}
	if err := h.store.Create(c.Request.Context(), saved); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, saved)
}

// Get returns one saved search.
func (h *SavedSearchHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "Invalid saved search ID")
		return
	}

	saved, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			notFound(c, "Saved search not found")
			return
		}
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, saved)
}

// List returns saved searches, newest first.
func (h *SavedSearchHandler) List(c *gin.Context) {
	searches, err := h.store.List(c.Request.Context(), parseLimit(c, 50))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	if searches == nil {
		searches = []models.SavedSearch{}
	}
	c.JSON(http.StatusOK, gin.H{
		"savedSearches": searches,
		"count":         len(searches),
	})
}

// Update replaces the name and parameters of a saved search.
func (h *SavedSearchHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "Invalid saved search ID")
		return
	}

	var req savedSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	saved := &models.SavedSearch{ID: id, Name: req.Name, Params: req.Params}
	if err := h.store.Update(c.Request.Context(), saved); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			notFound(c, "Saved search not found")
			return
		}
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, saved)
}

// Delete removes a saved search.
func (h *SavedSearchHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "Invalid saved search ID")
		return
	}

	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			notFound(c, "Saved search not found")
			return
		}
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
