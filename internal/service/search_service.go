// Package service provides the orchestration layer tying the provider,
// the pure analytics pipeline and the supporting infrastructure together.
package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/creatorlens/youtube-analytics-go/internal/analytics"
	"github.com/creatorlens/youtube-analytics-go/internal/models"
	"github.com/creatorlens/youtube-analytics-go/internal/validation"
	"github.com/creatorlens/youtube-analytics-go/pkg/logger"
)

// VideoProvider supplies raw video records for a normalized query. The
// fetch completes entirely before any pipeline stage runs.
type VideoProvider interface {
	Search(ctx context.Context, params models.SearchParams) ([]models.VideoRecord, int, error)
}

// ResultCache caches full pipeline results keyed by search parameters.
type ResultCache interface {
	Get(ctx context.Context, params models.SearchParams) (*models.SearchResult, bool)
	Set(ctx context.Context, params models.SearchParams, result *models.SearchResult)
}

// EventPublisher announces completed analyses to downstream consumers.
type EventPublisher interface {
	PublishSearchCompleted(ctx context.Context, result *models.SearchResult) error
}

// SearchService runs the full analytics pipeline for one search
// invocation: validate, fetch, filter, enrich, aggregate, rank. The
// cache and publisher are optional; a nil value disables the concern.
type SearchService struct {
	provider  VideoProvider
	economics analytics.NicheEconomicsProvider
	validator *validation.Validator
	cache     ResultCache
	publisher EventPublisher
	topNiches int
}

// NewSearchService creates a SearchService. provider and economics are
// required; cache and publisher may be nil.
func NewSearchService(
	provider VideoProvider,
	economics analytics.NicheEconomicsProvider,
	validator *validation.Validator,
	cache ResultCache,
	publisher EventPublisher,
) *SearchService {
	return &SearchService{
		provider:  provider,
		economics: economics,
		validator: validator,
		cache:     cache,
		publisher: publisher,
		topNiches: 8,
	}
}

// Search validates the parameters and runs the pipeline. Every stage is
// a pure pass over the collection returned by the provider; the provider
// call is the only external interaction.
func (s *SearchService) Search(ctx context.Context, params models.SearchParams) (*models.SearchResult, error) {
	if err := s.validator.ValidateSearchParams(&params); err != nil {
		logger.Log.Warn("Search parameter validation failed",
			zap.Error(err),
			zap.String("keyword", params.Keyword),
		)
		return nil, &ValidationError{Message: err.Error()}
	}

	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, params); ok {
			logger.Log.Debug("Search served from cache",
				zap.String("keyword", params.Keyword),
			)
			return cached, nil
		}
	}

	start := time.Now()
	raw, quotaCost, err := s.provider.Search(ctx, params)
	if err != nil {
		logger.Log.Error("Provider search failed",
			zap.Error(err),
			zap.String("keyword", params.Keyword),
			zap.Int("quotaCost", quotaCost),
		)
		return nil, &ProcessingError{Message: "video provider search failed", Cause: err}
	}

	result := s.runPipeline(params, raw)
	result.QuotaCost = quotaCost
	result.FetchedAt = time.Now()

	logger.Log.Info("Search completed",
		zap.String("keyword", params.Keyword),
		zap.Int("rawCount", len(raw)),
		zap.Int("resultCount", len(result.Videos)),
		zap.Int("quotaCost", quotaCost),
		zap.Duration("duration", time.Since(start)),
	)

	if s.cache != nil {
		s.cache.Set(ctx, params, result)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishSearchCompleted(ctx, result); err != nil {
			// Publishing is best-effort; the caller still gets the result.
			logger.Log.Warn("Failed to publish search completion",
				zap.Error(err),
				zap.String("keyword", params.Keyword),
			)
		}
	}

	return result, nil
}

// runPipeline chains the pure stages over an in-memory collection.
func (s *SearchService) runPipeline(params models.SearchParams, raw []models.VideoRecord) *models.SearchResult {
	filtered := analytics.Filter(raw, params)
	enriched := analytics.EnrichAll(filtered, s.economics)

	niches := analytics.TopNichesByRPM(analytics.AggregateNiches(enriched), s.topNiches)
	saturation := analytics.KeywordSaturation(filtered, splitKeywords(params.Keyword), analytics.MaxAgeDays(models.Period30d))
	summary := analytics.Summarize(enriched)

	return &models.SearchResult{
		Params:     params,
		Videos:     enriched,
		Niches:     niches,
		Saturation: saturation,
		Summary:    summary,
	}
}

// Analyze runs the pipeline over records the caller already holds,
// skipping the provider. Used by the background worker for replays and
// by tests.
func (s *SearchService) Analyze(params models.SearchParams, raw []models.VideoRecord) (*models.SearchResult, error) {
	if err := s.validator.ValidateSearchParams(&params); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}
	result := s.runPipeline(params, raw)
	result.FetchedAt = time.Now()
	return result, nil
}

// splitKeywords breaks a query into individual saturation keywords.
func splitKeywords(keyword string) []string {
	parts := strings.FieldsFunc(keyword, func(r rune) bool {
		return r == ',' || r == '|'
	})
	keywords := make([]string, 0, len(parts)+1)
	keywords = append(keywords, strings.TrimSpace(keyword))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" && part != keyword {
			keywords = append(keywords, part)
		}
	}
	return keywords
}
