//go:build integration
// +build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/creatorlens/youtube-analytics-go/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("Failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("Failed to get connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}

	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS saved_searches (
			id UUID PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			params JSONB NOT NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		t.Fatalf("Failed to create saved_searches table: %v", err)
	}

	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS search_runs (
			id UUID PRIMARY KEY,
			params JSONB NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'PENDING',
			result_count INTEGER NOT NULL DEFAULT 0,
			quota_cost INTEGER NOT NULL DEFAULT 0,
			summary JSONB,
			error_message TEXT,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL,
			completed_at TIMESTAMP
		)
	`)
	if err != nil {
		t.Fatalf("Failed to create search_runs table: %v", err)
	}

	cleanup := func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	}

	return pool, cleanup
}

func TestSavedSearchRepository_CreateAndGet(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewSavedSearchRepository(pool)
	ctx := context.Background()

	minViews := int64(10000)
	saved := &models.SavedSearch{
		Name: "viral cooking",
		Params: models.SearchParams{
			Keyword:  "cooking",
			Language: "en",
			Period:   models.Period7d,
			MinViews: &minViews,
		},
	}

	if err := repo.Create(ctx, saved); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if saved.ID == uuid.Nil || saved.CreatedAt.IsZero() {
		t.Error("Create() should fill in ID and timestamps")
	}

	retrieved, err := repo.GetByID(ctx, saved.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}

	if retrieved.Name != saved.Name {
		t.Errorf("Name = %s, want %s", retrieved.Name, saved.Name)
	}
	if retrieved.Params.Keyword != "cooking" {
		t.Errorf("Params.Keyword = %s, want cooking", retrieved.Params.Keyword)
	}
	if retrieved.Params.MinViews == nil || *retrieved.Params.MinViews != minViews {
		t.Errorf("Params.MinViews = %v, want %d", retrieved.Params.MinViews, minViews)
	}
}

func TestSavedSearchRepository_UpdateAndDelete(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewSavedSearchRepository(pool)
	ctx := context.Background()

	saved := &models.SavedSearch{
		Name:   "before",
		Params: models.SearchParams{Keyword: "travel"},
	}
	if err := repo.Create(ctx, saved); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	saved.Name = "after"
	saved.Params.Keyword = "budget travel"
	if err := repo.Update(ctx, saved); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	retrieved, err := repo.GetByID(ctx, saved.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if retrieved.Name != "after" || retrieved.Params.Keyword != "budget travel" {
		t.Errorf("Update() not persisted: got %s / %s", retrieved.Name, retrieved.Params.Keyword)
	}

	if err := repo.Delete(ctx, saved.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.GetByID(ctx, saved.ID); err != ErrNotFound {
		t.Errorf("GetByID() after delete error = %v, want ErrNotFound", err)
	}
}

func TestSavedSearchRepository_List(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewSavedSearchRepository(pool)
	ctx := context.Background()

	for _, keyword := range []string{"cooking", "travel", "fitness"} {
		saved := &models.SavedSearch{
			Name:   keyword,
			Params: models.SearchParams{Keyword: keyword},
		}
		if err := repo.Create(ctx, saved); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	searches, err := repo.List(ctx, 10)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(searches) != 3 {
		t.Errorf("Got %d saved searches, want 3", len(searches))
	}
}

func TestSearchRunRepository_Lifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewSearchRunRepository(pool)
	ctx := context.Background()

	run := &models.SearchRun{
		Params: models.SearchParams{Keyword: "cooking", Period: models.Period30d},
	}
	if err := repo.Create(ctx, run); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if run.Status != models.RunStatusPending {
		t.Errorf("Status = %s, want %s", run.Status, models.RunStatusPending)
	}

	summary := &models.DashboardSummary{AvgViewsPerDay: 1234.5}
	if err := repo.MarkCompleted(ctx, run.ID, 17, 102, summary); err != nil {
		t.Fatalf("MarkCompleted() error = %v", err)
	}

	retrieved, err := repo.GetByID(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if retrieved.Status != models.RunStatusCompleted {
		t.Errorf("Status = %s, want %s", retrieved.Status, models.RunStatusCompleted)
	}
	if retrieved.ResultCount != 17 || retrieved.QuotaCost != 102 {
		t.Errorf("ResultCount/QuotaCost = %d/%d, want 17/102", retrieved.ResultCount, retrieved.QuotaCost)
	}
	if retrieved.Summary == nil || retrieved.Summary.AvgViewsPerDay != 1234.5 {
		t.Errorf("Summary = %+v, want AvgViewsPerDay 1234.5", retrieved.Summary)
	}
	if retrieved.CompletedAt == nil {
		t.Error("CompletedAt should be set")
	}
}

func TestSearchRunRepository_MarkFailed(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewSearchRunRepository(pool)
	ctx := context.Background()

	run := &models.SearchRun{
		Params: models.SearchParams{Keyword: "cooking"},
	}
	if err := repo.Create(ctx, run); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := repo.MarkFailed(ctx, run.ID, "provider quota exceeded"); err != nil {
		t.Fatalf("MarkFailed() error = %v", err)
	}

	retrieved, err := repo.GetByID(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if retrieved.Status != models.RunStatusFailed {
		t.Errorf("Status = %s, want %s", retrieved.Status, models.RunStatusFailed)
	}
	if retrieved.ErrorMessage == nil || *retrieved.ErrorMessage != "provider quota exceeded" {
		t.Errorf("ErrorMessage = %v, want provider quota exceeded", retrieved.ErrorMessage)
	}
}

func TestSearchRunRepository_ListRecent(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewSearchRunRepository(pool)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		run := &models.SearchRun{Params: models.SearchParams{Keyword: "cooking"}}
		if err := repo.Create(ctx, run); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	runs, err := repo.ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecent() error = %v", err)
	}
	if len(runs) != 3 {
		t.Errorf("Got %d runs, want 3", len(runs))
	}
}
