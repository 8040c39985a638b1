package analytics

import (
	"sort"
	"strings"

	"github.com/creatorlens/youtube-analytics-go/internal/models"
)

// minTrendSampleSize is the smallest group surfaced as a trend. A single
// video is not statistically meaningful.
const minTrendSampleSize = 2

// AggregateNiches rolls enriched videos up by (niche, country). Videos
// without a niche fall back to their channel name as the grouping key.
// Groups with fewer than minTrendSampleSize videos are dropped. Output
// order follows first appearance in the input; callers sort by their
// metric of choice.
func AggregateNiches(videos []models.EnrichedVideo) []models.NicheAggregate {
	if len(videos) == 0 {
		return nil
	}

	type bucket struct {
		agg      models.NicheAggregate
		cpmTotal float64
		rpmTotal float64
	}

	buckets := make(map[string]*bucket)
	var order []string

	for _, v := range videos {
		niche := v.Niche
		if niche == "" {
			niche = v.Channel
		}
		key := strings.ToLower(niche) + "|" + strings.ToLower(v.Country)

		b, ok := buckets[key]
		if !ok {
			b = &bucket{agg: models.NicheAggregate{Niche: niche, Country: v.Country}}
			buckets[key] = b
			order = append(order, key)
		}
		b.agg.VideoCount++
		b.cpmTotal += v.EstimatedCPM
		b.rpmTotal += v.EstimatedRPM
	}

	aggregates := make([]models.NicheAggregate, 0, len(order))
	for _, key := range order {
		b := buckets[key]
		if b.agg.VideoCount < minTrendSampleSize {
			continue
		}
		b.agg.AvgCPM = b.cpmTotal / float64(b.agg.VideoCount)
		b.agg.AvgRPM = b.rpmTotal / float64(b.agg.VideoCount)
		aggregates = append(aggregates, b.agg)
	}
	return aggregates
}

// TopNichesByRPM returns the n best-paying aggregates, descending by
// AvgRPM. The sort is stable so equal niches keep input order.
func TopNichesByRPM(aggregates []models.NicheAggregate, n int) []models.NicheAggregate {
	sorted := make([]models.NicheAggregate, len(aggregates))
	copy(sorted, aggregates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].AvgRPM > sorted[j].AvgRPM
	})
	if n > 0 && n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// KeywordSaturation counts, per keyword, how many videos mention it in
// the title within the age window. The count gauges how crowded a
// keyword already is. Empty keywords are skipped.
func KeywordSaturation(videos []models.VideoRecord, keywords []string, maxAgeDays float64) map[string]int {
	saturation := make(map[string]int, len(keywords))
	for _, keyword := range keywords {
		keyword = strings.TrimSpace(keyword)
		if keyword == "" {
			continue
		}
		needle := strings.ToLower(keyword)
		count := 0
		for _, v := range videos {
			if v.VideoAge > maxAgeDays {
				continue
			}
			if strings.Contains(strings.ToLower(v.Title), needle) {
				count++
			}
		}
		saturation[keyword] = count
	}
	return saturation
}

// ChannelPerformances groups enriched videos by channel and averages
// engagement and viral score per group. Output order follows first
// appearance in the input, which also fixes tie-breaking for callers
// picking a maximum.
func ChannelPerformances(videos []models.EnrichedVideo) []models.ChannelPerformance {
	if len(videos) == 0 {
		return nil
	}

	type bucket struct {
		perf            models.ChannelPerformance
		engagementTotal float64
		scoreTotal      float64
	}

	buckets := make(map[string]*bucket)
	var order []string

	for _, v := range videos {
		b, ok := buckets[v.Channel]
		if !ok {
			b = &bucket{perf: models.ChannelPerformance{Channel: v.Channel}}
			buckets[v.Channel] = b
			order = append(order, v.Channel)
		}
		b.perf.VideoCount++
		b.engagementTotal += v.EngagementRate
		b.scoreTotal += v.ViralScore
	}

	performances := make([]models.ChannelPerformance, 0, len(order))
	for _, channel := range order {
		b := buckets[channel]
		b.perf.AvgEngagement = b.engagementTotal / float64(b.perf.VideoCount)
		b.perf.AvgViralScore = b.scoreTotal / float64(b.perf.VideoCount)
		performances = append(performances, b.perf)
	}
	return performances
}
