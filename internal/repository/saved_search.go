// Package repository provides PostgreSQL persistence for saved searches
// and background search runs. The analytics pipeline itself never
// touches storage; these tables only bookmark inputs and record run
// outcomes.
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

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("not found")

// SavedSearchRepository stores bookmarked search parameters.
type SavedSearchRepository struct {
	pool *pgxpool.Pool
}

// NewSavedSearchRepository creates a SavedSearchRepository.
func NewSavedSearchRepository(pool *pgxpool.Pool) *SavedSearchRepository {
	return &SavedSearchRepository{pool: pool}
}

// Create inserts a saved search and fills in the generated fields.
func (r *SavedSearchRepository) Create(ctx context.Context, saved *models.SavedSearch) error {
	params, err := json.Marshal(saved.Params)
	if err != nil {
		return fmt.Errorf("marshal params: %w", err)
	}

	saved.ID = uuid.New()
	now := time.Now()
	saved.CreatedAt = now
	saved.UpdatedAt = now

	_, err = r.pool.Exec(ctx, `
		INSERT INTO saved_searches (id, name, params, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`,
		saved.ID, saved.Name, params, saved.CreatedAt, saved.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert saved search: %w", err)
	}
	return nil
}

// GetByID fetches one saved search.
func (r *SavedSearchRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.SavedSearch, error) {
	var saved models.SavedSearch
	var params []byte

	err := r.pool.QueryRow(ctx, `
		SELECT id, name, params, created_at, updated_at
		FROM saved_searches WHERE id = $1`,
		id).Scan(&saved.ID, &saved.Name, &params, &saved.CreatedAt, &saved.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select saved search: %w", err)
	}

	if err := json.Unmarshal(params, &saved.Params); err != nil {
		return nil, fmt.Errorf("unmarshal params: %w", err)
	}
	return &saved, nil
}

// List returns saved searches newest first.
func (r *SavedSearchRepository) List(ctx context.Context, limit int) ([]models.SavedSearch, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, name, params, created_at, updated_at
		FROM saved_searches
		ORDER BY created_at DESC
		LIMIT $1`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("list saved searches: %w", err)
	}
	defer rows.Close()

	var searches []models.SavedSearch
	for rows.Next() {
		var saved models.SavedSearch
		var params []byte
		if err := rows.Scan(&saved.ID, &saved.Name, &params, &saved.CreatedAt, &saved.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan saved search: %w", err)
		}
		if err := json.Unmarshal(params, &saved.Params); err != nil {
			return nil, fmt.Errorf("unmarshal params: %w", err)
		}
		searches = append(searches, saved)
	}
	return searches, rows.Err()
}

// Update renames a saved search and/or replaces its parameters.
func (r *SavedSearchRepository) Update(ctx context.Context, saved *models.SavedSearch) error {
	params, err := json.Marshal(saved.Params)
	if err != nil {
		return fmt.Errorf("marshal params: %w", err)
	}
	saved.UpdatedAt = time.Now()

	tag, err := r.pool.Exec(ctx, `
		UPDATE saved_searches SET name = $1, params = $2, updated_at = $3
		WHERE id = $4`,
		saved.Name, params, saved.UpdatedAt, saved.ID)
	if err != nil {
		return fmt.Errorf("update saved search: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a saved search.
func (r *SavedSearchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM saved_searches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete saved search: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
