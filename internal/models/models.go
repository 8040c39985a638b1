// Package models contains the data models and DTOs for the creator analytics service.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Period restricts search results to videos published within a window.
type Period string

// Period constants define the supported publish-age windows.
const (
	Period24h  Period = "24h"
	Period48h  Period = "48h"
	Period72h  Period = "72h"
	Period7d   Period = "7d"
	Period30d  Period = "30d"
	Period90d  Period = "90d"
	Period180d Period = "180d"
	PeriodAll  Period = "all"
)

// SearchType selects what kind of entities a search targets.
type SearchType string

// SearchType constants.
const (
	SearchTypeVideos   SearchType = "videos"
	SearchTypeShorts   SearchType = "shorts"
	SearchTypeChannels SearchType = "channels"
)

// ChannelSize buckets a channel by subscriber count. Buckets are assigned
// once at enrichment time and never reclassified within a query.
type ChannelSize string

// ChannelSize constants.
const (
	ChannelSizeSmall  ChannelSize = "small"
	ChannelSizeMedium ChannelSize = "medium"
	ChannelSizeLarge  ChannelSize = "large"
)

// ViralityPotential is the tier rating derived from the virality signals.
type ViralityPotential string

// ViralityPotential constants.
const (
	ViralityLow    ViralityPotential = "low"
	ViralityMedium ViralityPotential = "medium"
	ViralityHigh   ViralityPotential = "high"
)

// SearchParams holds the caller-supplied parameters for one search
// invocation. A nil range bound means the bound is disabled; zero is a
// valid, enforced bound.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type SearchParams struct {
	Keyword         string     `json:"keyword" binding:"required,max=100"`
	SearchType      SearchType `json:"searchType"`
	Language        string     `json:"language"`
	Period          Period     `json:"period"`
	MinViews        *int64     `json:"minViews"`
	MaxViews        *int64     `json:"maxViews"`
	MinSubscribers  *int64     `json:"minSubscribers"`
	MaxSubscribers  *int64     `json:"maxSubscribers"`
	MaxResults      int        `json:"maxResults"`
	ExcludeMusic    bool       `json:"excludeMusic"`
	ExcludeKeywords string     `json:"excludeKeywords"`
}

// VideoRecord is a raw video as returned by the data provider, normalized
// on ingest. Immutable once created.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type VideoRecord struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Channel     string  `json:"channel"`
	ChannelID   string  `json:"channelId"`
	Views       int64   `json:"views"`
	Likes       int64   `json:"likes"`
	Comments    int64   `json:"comments"`
	Subscribers int64   `json:"subscribers"`
	VideoAge    float64 `json:"videoAge"` // days since publish
	ChannelDate string  `json:"channelDate"`
	Language    string  `json:"language"`
	Category    string  `json:"category,omitempty"`
	Niche       string  `json:"niche,omitempty"`
	Country     string  `json:"country,omitempty"`
}

// EnrichedVideo extends VideoRecord with metrics derived at enrichment
// time. Derived fields are cached on the struct and never recomputed.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type EnrichedVideo struct {
	VideoRecord
	ViewsPerHour      int64             `json:"viewsPerHour"`
	EngagementRate    float64           `json:"engagementRate"`
	ChannelSize       ChannelSize       `json:"channelSize"`
	ViralScore        float64           `json:"viralScore"`
	ViralityPotential ViralityPotential `json:"viralityPotential"`
	ViralityReason    string            `json:"viralityReason"`
	EstimatedCPM      float64           `json:"estimatedCpm"`
	EstimatedRPM      float64           `json:"estimatedRpm"`
	EstimatedEarnings float64           `json:"estimatedEarnings"`
}

// NicheAggregate is a per-query rollup for a (niche, country) pair.
// Aggregates with fewer than two videos are never surfaced.
type NicheAggregate struct {
	Niche      string  `json:"niche"`
	Country    string  `json:"country"`
	VideoCount int     `json:"videoCount"`
	AvgCPM     float64 `json:"avgCpm"`
	AvgRPM     float64 `json:"avgRpm"`
}

// ChannelPerformance is a per-channel rollup used by the ranker.
type ChannelPerformance struct {
	Channel       string  `json:"channel"`
	VideoCount    int     `json:"videoCount"`
	AvgEngagement float64 `json:"avgEngagement"`
	AvgViralScore float64 `json:"avgViralScore"`
}

// DashboardSummary holds the ranked summary facts for the dashboard KPIs.
//
// FastestGrowing uses a day-based rate with a one-day floor while
// ViewsPerHour on EnrichedVideo is hour-based; the two are distinct
// metrics consumed by different widgets.
type DashboardSummary struct {
	TopViral       *EnrichedVideo      `json:"topViral,omitempty"`
	FastestGrowing *EnrichedVideo      `json:"fastestGrowing,omitempty"`
	BestNiche      *ChannelPerformance `json:"bestNiche,omitempty"`
	AvgViewsPerDay float64             `json:"avgViewsPerDay"`
}

// SearchResult is the full output of one pipeline run.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type SearchResult struct {
	Params     SearchParams      `json:"params"`
	Videos     []EnrichedVideo   `json:"videos"`
	Niches     []NicheAggregate  `json:"niches"`
	Saturation map[string]int    `json:"saturation,omitempty"`
	Summary    *DashboardSummary `json:"summary,omitempty"`
	QuotaCost  int               `json:"quotaCost"`
	FetchedAt  time.Time         `json:"fetchedAt"`
}

// RunStatus represents the processing state of a background search run.
type RunStatus string

// RunStatus constants.
const (
	RunStatusPending   RunStatus = "PENDING"
	RunStatusCompleted RunStatus = "COMPLETED"
	RunStatusFailed    RunStatus = "FAILED"
)

// SearchRun is a persisted record of a background analysis.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type SearchRun struct {
	ID           uuid.UUID         `json:"id"`
	Params       SearchParams      `json:"params"`
	Status       RunStatus         `json:"status"`
	ResultCount  int               `json:"resultCount"`
	QuotaCost    int               `json:"quotaCost"`
	Summary      *DashboardSummary `json:"summary,omitempty"`
	ErrorMessage *string           `json:"errorMessage,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
	CompletedAt  *time.Time        `json:"completedAt,omitempty"`
}

// SavedSearch is a bookmarked set of search parameters.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type SavedSearch struct {
	ID        uuid.UUID    `json:"id"`
	Name      string       `json:"name"`
	Params    SearchParams `json:"params"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// TitleRequest asks the generator for title variations.
type TitleRequest struct {
	Keyword  string `json:"keyword" binding:"required,max=100"`
	Language string `json:"language"`
	Emotion  string `json:"emotion"`
	Count    int    `json:"count"`
}

// TitleResponse carries generated title variations.
type TitleResponse struct {
	Titles []string `json:"titles"`
}

// ScriptRequest asks the generator for a video script outline.
type ScriptRequest struct {
	Keyword         string `json:"keyword" binding:"required,max=100"`
	Language        string `json:"language"`
	Tone            string `json:"tone"`
	DurationMinutes int    `json:"durationMinutes"`
}

// ScriptResponse carries a generated script.
type ScriptResponse struct {
	Script string `json:"script"`
}

// AsyncSearchResponse acknowledges an enqueued background analysis.
type AsyncSearchResponse struct {
	RunID      uuid.UUID `json:"runId"`
	Status     RunStatus `json:"status"`
	EnqueuedAt time.Time `json:"enqueuedAt"`
}

// ErrorResponse represents an error response.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type ErrorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
}
