package analytics

import (
	"math"
	"strings"

	"github.com/creatorlens/youtube-analytics-go/internal/models"
)

// Channel size bucket boundaries (exclusive upper bounds).
const (
	smallChannelMax  = 100_000
	mediumChannelMax = 1_000_000
)

// Virality signal thresholds.
const (
	recentAgeDays     = 3.0
	highEngagementPct = 7.0
	highViewsPerHour  = 200
	highViralScore    = 700.0
)

// viralitySignal is one weighted boolean contributor to the potential tier.
// Signals are evaluated and reported in a fixed order.
type viralitySignal struct {
	description string
	weight      int
	triggered   func(v models.VideoRecord, viewsPerHour int64, engagement, score float64) bool
}

var viralitySignals = []viralitySignal{
	{
		description: "published within the last 3 days",
		weight:      1,
		triggered: func(v models.VideoRecord, _ int64, _, _ float64) bool {
			return v.VideoAge < recentAgeDays
		},
	},
	{
		description: "engagement rate above 7%",
		weight:      2,
		triggered: func(_ models.VideoRecord, _ int64, engagement, _ float64) bool {
			return engagement > highEngagementPct
		},
	},
	{
		description: "over 200 views per hour",
		weight:      2,
		triggered: func(_ models.VideoRecord, viewsPerHour int64, _, _ float64) bool {
			return viewsPerHour > highViewsPerHour
		},
	},
	{
		description: "small channel punching above its size",
		weight:      1,
		triggered: func(v models.VideoRecord, _ int64, _, _ float64) bool {
			return ClassifyChannelSize(v.Subscribers) == models.ChannelSizeSmall
		},
	},
	{
		description: "viral score above 700",
		weight:      1,
		triggered: func(_ models.VideoRecord, _ int64, _, score float64) bool {
			return score > highViralScore
		},
	},
}

const defaultViralityReason = "no strong virality signals in age, engagement or view rate"

// ViewsPerHour returns the rounded hourly view rate. Videos with a
// non-positive age report 0 rather than dividing by zero.
func ViewsPerHour(v models.VideoRecord) int64 {
	ageHours := v.VideoAge * 24
	if ageHours <= 0 {
		return 0
	}
	return int64(math.Round(float64(v.Views) / ageHours))
}

// EngagementRate returns (likes+comments)/views as a percentage. Missing
// likes or comments count as zero; zero views yields zero.
func EngagementRate(v models.VideoRecord) float64 {
	if v.Views <= 0 {
		return 0
	}
	return float64(v.Likes+v.Comments) / float64(v.Views) * 100
}

// ClassifyChannelSize buckets a subscriber count. Boundary values fall
// into the lower bucket (strict less-than).
func ClassifyChannelSize(subscribers int64) models.ChannelSize {
	switch {
	case subscribers < smallChannelMax:
		return models.ChannelSizeSmall
	case subscribers < mediumChannelMax:
		return models.ChannelSizeMedium
	default:
		return models.ChannelSizeLarge
	}
}

// ViralScore combines view velocity, engagement and recency into a
// heuristic 0-1000 score. Higher means more viral. The score is a pure
// function of the record so repeated enrichment is stable.
func ViralScore(v models.VideoRecord) float64 {
	velocity := math.Min(float64(ViewsPerHour(v)), 500)
	engagement := math.Min(EngagementRate(v)*20, 300)

	var recency float64
	switch {
	case v.VideoAge <= 1:
		recency = 200
	case v.VideoAge <= 3:
		recency = 150
	case v.VideoAge <= 7:
		recency = 100
	case v.VideoAge <= 30:
		recency = 50
	}

	return math.Min(velocity+engagement+recency, 1000)
}

// AssessVirality evaluates the five weighted signals and maps the total
// positive-factor count to a tier: >=4 high, >=2 medium, else low. The
// reason string joins the triggered signal descriptions in evaluation
// order; when nothing triggers a generic explanation is returned. Adding
// a triggering signal never lowers the tier.
func AssessVirality(v models.VideoRecord, viewsPerHour int64, engagement, score float64) (models.ViralityPotential, string) {
	factors := 0
	var reasons []string
	for _, signal := range viralitySignals {
		if signal.triggered(v, viewsPerHour, engagement, score) {
			factors += signal.weight
			reasons = append(reasons, signal.description)
		}
	}

	potential := models.ViralityLow
	switch {
	case factors >= 4:
		potential = models.ViralityHigh
	case factors >= 2:
		potential = models.ViralityMedium
	}

	reason := defaultViralityReason
	if len(reasons) > 0 {
		reason = strings.Join(reasons, ", ")
	}
	return potential, reason
}

// Enrich derives all per-video metrics for a single record. Economics
// come from the injected provider; a nil provider leaves the monetary
// estimates at zero.
func Enrich(v models.VideoRecord, economics NicheEconomicsProvider) models.EnrichedVideo {
	viewsPerHour := ViewsPerHour(v)
	engagement := EngagementRate(v)
	score := ViralScore(v)
	potential, reason := AssessVirality(v, viewsPerHour, engagement, score)

	enriched := models.EnrichedVideo{
		VideoRecord:       v,
		ViewsPerHour:      viewsPerHour,
		EngagementRate:    engagement,
		ChannelSize:       ClassifyChannelSize(v.Subscribers),
		ViralScore:        score,
		ViralityPotential: potential,
		ViralityReason:    reason,
	}

	if economics != nil {
		if eco, ok := economics.Estimate(v.Niche, v.Country); ok {
			enriched.EstimatedCPM = eco.CPM
			enriched.EstimatedRPM = eco.RPM
			enriched.EstimatedEarnings = EstimatedEarnings(v.Views, eco.RPM)
		}
	}

	return enriched
}

// EnrichAll maps every record through Enrich, preserving order.
func EnrichAll(videos []models.VideoRecord, economics NicheEconomicsProvider) []models.EnrichedVideo {
	enriched := make([]models.EnrichedVideo, 0, len(videos))
	for _, v := range videos {
		enriched = append(enriched, Enrich(v, economics))
	}
	return enriched
}
