package analytics

import (
	"math"

	"github.com/creatorlens/youtube-analytics-go/internal/models"
)

// ViewsPerDay is the day-based growth rate used by the ranker. The
// one-day floor keeps sub-day-old videos from blowing up the rate. This
// is deliberately not the same metric as the enricher's hour-based
// ViewsPerHour; both feed different dashboard widgets.
func ViewsPerDay(v models.VideoRecord) float64 {
	return float64(v.Views) / math.Max(1, v.VideoAge)
}

// TopViral returns the video with the highest viral score, or nil for an
// empty collection. Ties go to the first occurrence in input order.
func TopViral(videos []models.EnrichedVideo) *models.EnrichedVideo {
	if len(videos) == 0 {
		return nil
	}
	best := 0
	for i := 1; i < len(videos); i++ {
		if videos[i].ViralScore > videos[best].ViralScore {
			best = i
		}
	}
	return &videos[best]
}

// FastestGrowing returns the video with the highest day-based view rate,
// or nil for an empty collection. Ties go to the first occurrence.
func FastestGrowing(videos []models.EnrichedVideo) *models.EnrichedVideo {
	if len(videos) == 0 {
		return nil
	}
	best := 0
	bestRate := ViewsPerDay(videos[0].VideoRecord)
	for i := 1; i < len(videos); i++ {
		if rate := ViewsPerDay(videos[i].VideoRecord); rate > bestRate {
			best = i
			bestRate = rate
		}
	}
	return &videos[best]
}

// BestNiche groups videos by channel and returns the group with the
// highest average viral score, or nil for an empty collection. Ties go
// to the channel appearing first in the input.
func BestNiche(videos []models.EnrichedVideo) *models.ChannelPerformance {
	performances := ChannelPerformances(videos)
	if len(performances) == 0 {
		return nil
	}
	best := 0
	for i := 1; i < len(performances); i++ {
		if performances[i].AvgViralScore > performances[best].AvgViralScore {
			best = i
		}
	}
	return &performances[best]
}

// AverageViewsPerDay is the mean day-based view rate over the full
// collection, single-video channels included. Empty input yields 0.
func AverageViewsPerDay(videos []models.EnrichedVideo) float64 {
	if len(videos) == 0 {
		return 0
	}
	var total float64
	for _, v := range videos {
		total += ViewsPerDay(v.VideoRecord)
	}
	return total / float64(len(videos))
}

// Summarize computes all dashboard-level summary facts over the full,
// unpaginated collection. Empty input returns nil rather than panicking;
// callers are expected to guard on non-empty results anyway.
func Summarize(videos []models.EnrichedVideo) *models.DashboardSummary {
	if len(videos) == 0 {
		return nil
	}
	return &models.DashboardSummary{
		TopViral:       TopViral(videos),
		FastestGrowing: FastestGrowing(videos),
		BestNiche:      BestNiche(videos),
		AvgViewsPerDay: AverageViewsPerDay(videos),
	}
}
