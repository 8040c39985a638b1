package queue

import (
	"testing"

	"github.com/google/uuid"

	"github.com/creatorlens/youtube-analytics-go/internal/models"
)

func TestNewSearchAnalysisPayload(t *testing.T) {
	runID := uuid.New()

	payload, err := NewSearchAnalysisPayload(runID, models.SearchParams{Keyword: "cooking"})
	if err != nil {
		t.Fatalf("NewSearchAnalysisPayload() error = %v", err)
	}
	if payload.RunID != runID {
		t.Errorf("RunID = %v, want %v", payload.RunID, runID)
	}

	if _, err := NewSearchAnalysisPayload(uuid.Nil, models.SearchParams{Keyword: "cooking"}); err == nil {
		t.Error("NewSearchAnalysisPayload() with nil run ID should fail")
	}
	if _, err := NewSearchAnalysisPayload(runID, models.SearchParams{}); err == nil {
		t.Error("NewSearchAnalysisPayload() without keyword should fail")
	}
}

func TestSearchAnalysisPayload_RoundTrip(t *testing.T) {
	minViews := int64(5000)
	payload, err := NewSearchAnalysisPayload(uuid.New(), models.SearchParams{
		Keyword:  "budget travel",
		Language: "en",
		Period:   models.Period7d,
		MinViews: &minViews,
	})
	if err != nil {
		t.Fatalf("NewSearchAnalysisPayload() error = %v", err)
	}

	data, err := payload.Marshal()
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	decoded, err := UnmarshalSearchAnalysisPayload(data)
	if err != nil {
		t.Fatalf("UnmarshalSearchAnalysisPayload() error = %v", err)
	}

	if decoded.RunID != payload.RunID {
		t.Errorf("RunID = %v, want %v", decoded.RunID, payload.RunID)
	}
	if decoded.Params.Keyword != "budget travel" {
		t.Errorf("Keyword = %q, want %q", decoded.Params.Keyword, "budget travel")
	}
	if decoded.Params.MinViews == nil || *decoded.Params.MinViews != minViews {
		t.Errorf("MinViews = %v, want %d", decoded.Params.MinViews, minViews)
	}
}

func TestUnmarshalSearchAnalysisPayload_Invalid(t *testing.T) {
	if _, err := UnmarshalSearchAnalysisPayload([]byte("not json")); err == nil {
		t.Error("UnmarshalSearchAnalysisPayload() should fail on invalid JSON")
	}
}
