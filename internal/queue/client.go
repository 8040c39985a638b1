package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/creatorlens/youtube-analytics-go/internal/models"
	"github.com/creatorlens/youtube-analytics-go/internal/repository"
	"github.com/creatorlens/youtube-analytics-go/pkg/logger"
)

// Client enqueues background search analyses. Every enqueued task has a
// matching search_runs row so callers can poll for the outcome.
type Client struct {
	asynqClient *asynq.Client
	runRepo     *repository.SearchRunRepository
}

// NewClient creates a queue client from a Redis URL.
func NewClient(redisURL string, runRepo *repository.SearchRunRepository) (*Client, error) {
	redisOpt, err := ParseRedisURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	return &Client{
		asynqClient: asynq.NewClient(redisOpt),
		runRepo:     runRepo,
	}, nil
}

// Close closes the client connection.
func (c *Client) Close() error {
	return c.asynqClient.Close()
}

// EnqueueSearchAnalysis records a pending run and enqueues the analysis
// task. The returned run carries the ID callers poll with.
func (c *Client) EnqueueSearchAnalysis(ctx context.Context, params models.SearchParams) (*models.SearchRun, error) {
	run := &models.SearchRun{Params: params}
	if err := c.runRepo.Create(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to record search run: %w", err)
	}

	payload, err := NewSearchAnalysisPayload(run.ID, params)
	if err != nil {
		return nil, fmt.Errorf("failed to create task payload: %w", err)
	}

	payloadBytes, err := payload.Marshal()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	task := asynq.NewTask(TypeSearchAnalysis, payloadBytes)

	info, err := c.asynqClient.Enqueue(task,
		asynq.MaxRetry(3),
		asynq.Timeout(5*time.Minute),
		asynq.Queue("default"),
	)
	if err != nil {
		// Leave the run behind as FAILED rather than orphaned PENDING.
		if markErr := c.runRepo.MarkFailed(ctx, run.ID, "enqueue failed: "+err.Error()); markErr != nil {
			logger.Log.Warn("Failed to mark orphaned run as failed",
				zap.Error(markErr),
				zap.String("runID", run.ID.String()),
			)
		}
		return nil, fmt.Errorf("failed to enqueue task: %w", err)
	}

	logger.Log.Info("Enqueued search analysis",
		zap.String("runID", run.ID.String()),
		zap.String("taskID", info.ID),
		zap.String("keyword", params.Keyword),
	)

	return run, nil
}
