package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/creatorlens/youtube-analytics-go/internal/generator"
	"github.com/creatorlens/youtube-analytics-go/internal/models"
)

// GenerateHandler handles title and script generation endpoints.
type GenerateHandler struct {
	gen generator.TextGenerator
}

// NewGenerateHandler creates a GenerateHandler.
func NewGenerateHandler(gen generator.TextGenerator) *GenerateHandler {
	return &GenerateHandler{gen: gen}
}

// Titles generates title variations for a keyword.
func (h *GenerateHandler) Titles(c *gin.Context) {
	var req models.TitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	titles, err := h.gen.Titles(c.Request.Context(), req.Keyword, req.Language, req.Emotion, req.Count)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, models.TitleResponse{Titles: titles})
}

// Script generates a video script outline for a keyword.
func (h *GenerateHandler) Script(c *gin.Context) {
	var req models.ScriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	script, err := h.gen.Script(c.Request.Context(), req.Keyword, req.Language, req.Tone, req.DurationMinutes)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, models.ScriptResponse{Script: script})
}
