package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/creatorlens/youtube-analytics-go/internal/models"
)

// SearchRunRepository tracks the lifecycle of background analyses.
type SearchRunRepository struct {
	pool *pgxpool.Pool
}

// NewSearchRunRepository creates a SearchRunRepository.
func NewSearchRunRepository(pool *pgxpool.Pool) *SearchRunRepository {
	return &SearchRunRepository{pool: pool}
}

// Create inserts a pending run and fills in the generated fields.
func (r *SearchRunRepository) Create(ctx context.Context, run *models.SearchRun) error {
	params, err := json.Marshal(run.Params)
	if err != nil {
		return fmt.Errorf("marshal params: %w", err)
	}

	run.ID = uuid.New()
	run.Status = models.RunStatusPending
	now := time.Now()
	run.CreatedAt = now
	run.UpdatedAt = now

	_, err = r.pool.Exec(ctx, `
		INSERT INTO search_runs (id, params, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`,
		run.ID, params, run.Status, run.CreatedAt, run.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert search run: %w", err)
	}
	return nil
}

// GetByID fetches one run.
func (r *SearchRunRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.SearchRun, error) {
	var run models.SearchRun
	var params []byte
	var summary []byte

	err := r.pool.QueryRow(ctx, `
		SELECT id, params, status, result_count, quota_cost, summary,
		       error_message, created_at, updated_at, completed_at
		FROM search_runs WHERE id = $1`,
		id).Scan(&run.ID, &params, &run.Status, &run.ResultCount, &run.QuotaCost,
		&summary, &run.ErrorMessage, &run.CreatedAt, &run.UpdatedAt, &run.CompletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select search run: %w", err)
	}

	if err := json.Unmarshal(params, &run.Params); err != nil {
		return nil, fmt.Errorf("unmarshal params: %w", err)
	}
	if summary != nil {
		run.Summary = &models.DashboardSummary{}
		if err := json.Unmarshal(summary, run.Summary); err != nil {
			return nil, fmt.Errorf("unmarshal summary: %w", err)
		}
	}
	return &run, nil
}

// ListRecent returns the latest runs, newest first.
func (r *SearchRunRepository) ListRecent(ctx context.Context, limit int) ([]models.SearchRun, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, params, status, result_count, quota_cost, summary,
		       error_message, created_at, updated_at, completed_at
		FROM search_runs
		ORDER BY created_at DESC
		LIMIT $1`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("list search runs: %w", err)
	}
	defer rows.Close()

	var runs []models.SearchRun
	for rows.Next() {
		var run models.SearchRun
		var params []byte
		var summary []byte
		if err := rows.Scan(&run.ID, &params, &run.Status, &run.ResultCount, &run.QuotaCost,
			&summary, &run.ErrorMessage, &run.CreatedAt, &run.UpdatedAt, &run.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan search run: %w", err)
		}
		if err := json.Unmarshal(params, &run.Params); err != nil {
			return nil, fmt.Errorf("unmarshal params: %w", err)
		}
		if summary != nil {
			run.Summary = &models.DashboardSummary{}
			if err := json.Unmarshal(summary, run.Summary); err != nil {
				return nil, fmt.Errorf("unmarshal summary: %w", err)
			}
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// MarkCompleted records a successful run with its outcome.
func (r *SearchRunRepository) MarkCompleted(ctx context.Context, id uuid.UUID, resultCount, quotaCost int, summary *models.DashboardSummary) error {
	var summaryJSON []byte
	if summary != nil {
		var err error
		summaryJSON, err = json.Marshal(summary)
		if err != nil {
			return fmt.Errorf("marshal summary: %w", err)
		}
	}

	now := time.Now()
	tag, err := r.pool.Exec(ctx, `
		UPDATE search_runs
		SET status = $1, result_count = $2, quota_cost = $3, summary = $4,
		    updated_at = $5, completed_at = $5
		WHERE id = $6`,
		models.RunStatusCompleted, resultCount, quotaCost, summaryJSON, now, id)
	if err != nil {
		return fmt.Errorf("complete search run: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkFailed records a failed run with its error message.
func (r *SearchRunRepository) MarkFailed(ctx context.Context, id uuid.UUID, message string) error {
	now := time.Now()
	tag, err := r.pool.Exec(ctx, `
		UPDATE search_runs
		SET status = $1, error_message = $2, updated_at = $3, completed_at = $3
		WHERE id = $4`,
		models.RunStatusFailed, message, now, id)
	if err != nil {
		return fmt.Errorf("fail search run: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
