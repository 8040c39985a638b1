// Package analytics implements the video analytics pipeline: a filter
// chain, a metric enricher, an aggregate analyzer and a recommendation
// ranker. Every stage is a pure, order-preserving function over immutable
// input collections; nothing in this package touches the network, the
// database or ambient configuration.
package analytics

import (
	"math"
	"strings"

	"github.com/creatorlens/youtube-analytics-go/internal/models"
)

// musicIndicators are title substrings that mark a video as music content.
// Matching is case-insensitive.
var musicIndicators = []string{
	"official video",
	"lyrics",
	"music video",
	"official music",
	"official audio",
	"videoclip",
	"video clip",
	"ft.",
	"feat",
	"official lyric",
	"audio oficial",
	"clipe oficial",
}

// MaxAgeDays returns the maximum video age in days admitted by a period.
// Unknown periods behave like PeriodAll and admit everything.
func MaxAgeDays(p models.Period) float64 {
	switch p {
	case models.Period24h:
		return 1
	case models.Period48h:
		return 2
	case models.Period72h:
		return 3
	case models.Period7d:
		return 7
	case models.Period30d:
		return 30
	case models.Period90d:
		return 90
	case models.Period180d:
		return 180
	default:
		return math.Inf(1)
	}
}

// MatchesLanguage reports whether a video passes the language filter.
// Language "any" (or empty) disables the filter.
func MatchesLanguage(v models.VideoRecord, language string) bool {
	if language == "" || language == "any" {
		return true
	}
	return v.Language == language
}

// WithinPeriod reports whether the video is young enough for the period.
func WithinPeriod(v models.VideoRecord, p models.Period) bool {
	return v.VideoAge <= MaxAgeDays(p)
}

// IsMusic reports whether a video looks like music content, either by
// category or by a known indicator substring in the title.
func IsMusic(v models.VideoRecord) bool {
	if v.Category == "Music" {
		return true
	}
	title := strings.ToLower(v.Title)
	for _, indicator := range musicIndicators {
		if strings.Contains(title, indicator) {
			return true
		}
	}
	return false
}

// MatchesExclusion reports whether the title contains any of the
// comma-separated excluded substrings. Terms are trimmed and matched
// case-insensitively; empty terms are skipped.
func MatchesExclusion(title, excludeKeywords string) bool {
	if excludeKeywords == "" {
		return false
	}
	lower := strings.ToLower(title)
	for _, term := range strings.Split(excludeKeywords, ",") {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// withinRange checks an inclusive range. A nil bound is disabled; zero is
// a valid, enforced bound.
func withinRange(value int64, min, max *int64) bool {
	if min != nil && value < *min {
		return false
	}
	if max != nil && value > *max {
		return false
	}
	return true
}

// WithinViewRange reports whether the view count satisfies the bounds.
func WithinViewRange(v models.VideoRecord, min, max *int64) bool {
	return withinRange(v.Views, min, max)
}

// WithinSubscriberRange reports whether the subscriber count satisfies
// the bounds.
func WithinSubscriberRange(v models.VideoRecord, min, max *int64) bool {
	return withinRange(v.Subscribers, min, max)
}

// Filter applies every active predicate from params to the collection and
// returns the subset satisfying all of them, preserving input order. With
// all filters disabled the input comes back unchanged. No predicate ever
// fails; malformed or absent bounds are treated as disabled.
func Filter(videos []models.VideoRecord, params models.SearchParams) []models.VideoRecord {
	filtered := make([]models.VideoRecord, 0, len(videos))
	for _, v := range videos {
		if !MatchesLanguage(v, params.Language) {
			continue
		}
		if !WithinPeriod(v, params.Period) {
			continue
		}
		if params.ExcludeMusic && IsMusic(v) {
			continue
		}
		if MatchesExclusion(v.Title, params.ExcludeKeywords) {
			continue
		}
		if !WithinViewRange(v, params.MinViews, params.MaxViews) {
			continue
		}
		if !WithinSubscriberRange(v, params.MinSubscribers, params.MaxSubscribers) {
			continue
		}
		filtered = append(filtered, v)
	}
	return filtered
}
