// Package queue defines the background task types and the asynq client
// and handler wiring for deferred search analyses.
package queue

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/creatorlens/youtube-analytics-go/internal/models"
)

// Task types.
const (
	TypeSearchAnalysis = "analytics:search"
)

// SearchAnalysisPayload is the payload for a deferred search analysis.
// The run ID references the SearchRun row created at enqueue time.
type SearchAnalysisPayload struct {
	RunID  uuid.UUID           `json:"run_id"`
	Params models.SearchParams `json:"params"`
}

// NewSearchAnalysisPayload validates and builds a task payload.
func NewSearchAnalysisPayload(runID uuid.UUID, params models.SearchParams) (*SearchAnalysisPayload, error) {
	if runID == uuid.Nil {
		return nil, fmt.Errorf("run ID is required")
	}
	if params.Keyword == "" {
		return nil, fmt.Errorf("search keyword is required")
	}
	return &SearchAnalysisPayload{RunID: runID, Params: params}, nil
}

// Marshal serializes the payload to JSON.
func (p *SearchAnalysisPayload) Marshal() ([]byte, error) {
	return json.Marshal(p)
}

// UnmarshalSearchAnalysisPayload parses a task payload.
func UnmarshalSearchAnalysisPayload(data []byte) (*SearchAnalysisPayload, error) {
	var payload SearchAnalysisPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal search analysis payload: %w", err)
	}
	return &payload, nil
}
