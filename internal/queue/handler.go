package queue

import (
	"context"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/creatorlens/youtube-analytics-go/internal/repository"
	"github.com/creatorlens/youtube-analytics-go/internal/service"
	"github.com/creatorlens/youtube-analytics-go/pkg/logger"
)

// SearchAnalysisHandler runs deferred search analyses and records the
// outcome on the search_runs row created at enqueue time.
type SearchAnalysisHandler struct {
	searchService *service.SearchService
	runRepo       *repository.SearchRunRepository
}

// NewSearchAnalysisHandler creates a search analysis task handler.
func NewSearchAnalysisHandler(searchService *service.SearchService, runRepo *repository.SearchRunRepository) *SearchAnalysisHandler {
	return &SearchAnalysisHandler{
		searchService: searchService,
		runRepo:       runRepo,
	}
}

// ProcessTask implements asynq.Handler.
func (h *SearchAnalysisHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	payload, err := UnmarshalSearchAnalysisPayload(task.Payload())
	if err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	logger.Log.Info("Processing search analysis",
		zap.String("runID", payload.RunID.String()),
		zap.String("keyword", payload.Params.Keyword),
	)

	result, err := h.searchService.Search(ctx, payload.Params)
	if err != nil {
		if markErr := h.runRepo.MarkFailed(ctx, payload.RunID, err.Error()); markErr != nil {
			logger.Log.Warn("Failed to mark run as failed",
				zap.Error(markErr),
				zap.String("runID", payload.RunID.String()),
			)
		}
		// Validation errors never succeed on retry.
		var validationErr *service.ValidationError
		if errors.As(err, &validationErr) {
			return fmt.Errorf("invalid search parameters: %v: %w", err, asynq.SkipRetry)
		}
		return fmt.Errorf("search analysis failed: %w", err)
	}

	if err := h.runRepo.MarkCompleted(ctx, payload.RunID, len(result.Videos), result.QuotaCost, result.Summary); err != nil {
		return fmt.Errorf("failed to record run outcome: %w", err)
	}

	logger.Log.Info("Search analysis completed",
		zap.String("runID", payload.RunID.String()),
		zap.Int("resultCount", len(result.Videos)),
		zap.Int("quotaCost", result.QuotaCost),
	)
	return nil
}

// Server wraps the asynq server and task routing.
type Server struct {
	asynqServer *asynq.Server
	mux         *asynq.ServeMux
}

// NewServer creates a task processing server.
func NewServer(redisURL string, concurrency int, handler *SearchAnalysisHandler) (*Server, error) {
	redisOpt, err := ParseRedisURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: concurrency,
			Queues: map[string]int{
				"default": 10,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				logger.Log.Error("Task failed",
					zap.String("type", task.Type()),
					zap.Error(err),
				)
			}),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeSearchAnalysis, handler.ProcessTask)

	return &Server{asynqServer: srv, mux: mux}, nil
}

// Start starts the server without blocking.
func (s *Server) Start() error {
	logger.Log.Info("Starting task processing server")
	return s.asynqServer.Start(s.mux)
}

// Stop gracefully stops the server, waiting for in-flight tasks.
func (s *Server) Stop() {
	logger.Log.Info("Shutting down task processing server")
	s.asynqServer.Shutdown()
}

// Run starts the server and blocks until shutdown.
func (s *Server) Run() error {
	return s.asynqServer.Run(s.mux)
}
