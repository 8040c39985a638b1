// Package youtube wraps the YouTube Data API v3 behind the provider
// contract consumed by the analytics pipeline: a normalized query in,
// raw VideoRecord collections out.
package youtube

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/creatorlens/youtube-analytics-go/internal/analytics"
	"github.com/creatorlens/youtube-analytics-go/internal/models"
)

// Quota unit costs per YouTube Data API v3 documentation.
const (
	searchQuotaCost = 100
	listQuotaCost   = 1
)

const videoBatchSize = 50

// videoCategories maps YouTube category IDs to display names. Only the
// commonly returned categories are listed; unknown IDs map to "".
var videoCategories = map[string]string{
	"1":  "Film & Animation",
	"2":  "Autos & Vehicles",
	"10": "Music",
	"15": "Pets & Animals",
	"17": "Sports",
	"19": "Travel & Events",
	"20": "Gaming",
	"22": "People & Blogs",
	"23": "Comedy",
	"24": "Entertainment",
	"25": "News & Politics",
	"26": "Howto & Style",
	"27": "Education",
	"28": "Science & Technology",
	"29": "Nonprofits",
}

// Client wraps the YouTube Data API v3 service.
type Client struct {
	service *youtube.Service
}

// NewClient creates a YouTube API client. The API key is required.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("YouTube API key is required")
	}

	service, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	return &Client{service: service}, nil
}

// Search runs a keyword search and hydrates the hits with video
// statistics and channel statistics, returning normalized records and
// the total quota cost of the calls made. Missing optional counters
// (likes, comments) come back as zero.
func (c *Client) Search(ctx context.Context, params models.SearchParams) ([]models.VideoRecord, int, error) {
	call := c.service.Search.List([]string{"snippet"}).
		Q(params.Keyword).
		Type("video").
		MaxResults(int64(params.MaxResults)).
		Context(ctx)

	if params.SearchType == models.SearchTypeShorts {
		call = call.VideoDuration("short")
	}
	if params.Language != "" && params.Language != "any" {
		call = call.RelevanceLanguage(params.Language)
	}
	if after, ok := publishedAfter(params.Period); ok {
		call = call.PublishedAfter(after.Format(time.RFC3339))
	}

	searchResponse, err := call.Do()
	if err != nil {
		return nil, searchQuotaCost, fmt.Errorf("youtube search failed: %w", err)
	}

	quotaCost := searchQuotaCost

	videoIDs := make([]string, 0, len(searchResponse.Items))
	for _, item := range searchResponse.Items {
		if item.Id != nil && item.Id.VideoId != "" {
			videoIDs = append(videoIDs, item.Id.VideoId)
		}
	}
	if len(videoIDs) == 0 {
		return nil, quotaCost, nil
	}

	videos, cost, err := c.fetchVideos(ctx, videoIDs)
	quotaCost += cost
	if err != nil {
		return nil, quotaCost, err
	}

	channelIDs := make([]string, 0, len(videos))
	seen := make(map[string]bool, len(videos))
	for _, v := range videos {
		if v.Snippet != nil && !seen[v.Snippet.ChannelId] {
			seen[v.Snippet.ChannelId] = true
			channelIDs = append(channelIDs, v.Snippet.ChannelId)
		}
	}

	channels, cost, err := c.fetchChannels(ctx, channelIDs)
	quotaCost += cost
	if err != nil {
		return nil, quotaCost, err
	}

	records := make([]models.VideoRecord, 0, len(videos))
	for _, v := range videos {
		records = append(records, mapVideo(v, channels, params.Language))
	}
	return records, quotaCost, nil
}

// fetchVideos hydrates video IDs in batches of videoBatchSize.
func (c *Client) fetchVideos(ctx context.Context, videoIDs []string) ([]*youtube.Video, int, error) {
	var videos []*youtube.Video
	cost := 0

	for start := 0; start < len(videoIDs); start += videoBatchSize {
		end := start + videoBatchSize
		if end > len(videoIDs) {
			end = len(videoIDs)
		}

		response, err := c.service.Videos.
			List([]string{"snippet", "statistics", "contentDetails"}).
			Id(videoIDs[start:end]...).
			Context(ctx).
			Do()
		cost += listQuotaCost
		if err != nil {
			return nil, cost, fmt.Errorf("failed to fetch videos: %w", err)
		}
		videos = append(videos, response.Items...)
	}
	return videos, cost, nil
}

// fetchChannels hydrates channel stats keyed by channel ID.
func (c *Client) fetchChannels(ctx context.Context, channelIDs []string) (map[string]*youtube.Channel, int, error) {
	channels := make(map[string]*youtube.Channel, len(channelIDs))
	cost := 0

	for start := 0; start < len(channelIDs); start += videoBatchSize {
		end := start + videoBatchSize
		if end > len(channelIDs) {
			end = len(channelIDs)
		}

		response, err := c.service.Channels.
			List([]string{"snippet", "statistics"}).
			Id(channelIDs[start:end]...).
			Context(ctx).
			Do()
		cost += listQuotaCost
		if err != nil {
			return nil, cost, fmt.Errorf("failed to fetch channels: %w", err)
		}
		for _, ch := range response.Items {
			channels[ch.Id] = ch
		}
	}
	return channels, cost, nil
}

// mapVideo converts an API video plus its channel into a VideoRecord.
func mapVideo(v *youtube.Video, channels map[string]*youtube.Channel, fallbackLanguage string) models.VideoRecord {
	record := models.VideoRecord{ID: v.Id}

	if v.Snippet != nil {
		record.Title = v.Snippet.Title
		record.Channel = v.Snippet.ChannelTitle
		record.ChannelID = v.Snippet.ChannelId
		record.Category = videoCategories[v.Snippet.CategoryId]
		record.Niche = strings.ToLower(record.Category)
		record.Language = normalizeLanguage(v.Snippet.DefaultAudioLanguage, v.Snippet.DefaultLanguage, fallbackLanguage)

		if published, err := time.Parse(time.RFC3339, v.Snippet.PublishedAt); err == nil {
			age := time.Since(published).Hours() / 24
			if age < 0 {
				age = 0
			}
			record.VideoAge = age
		}
	}

	if v.Statistics != nil {
		record.Views = int64(v.Statistics.ViewCount)
		record.Likes = int64(v.Statistics.LikeCount)
		record.Comments = int64(v.Statistics.CommentCount)
	}

	if ch, ok := channels[record.ChannelID]; ok {
		if ch.Statistics != nil {
			record.Subscribers = int64(ch.Statistics.SubscriberCount)
		}
		if ch.Snippet != nil {
			record.Country = ch.Snippet.Country
			if published, err := time.Parse(time.RFC3339, ch.Snippet.PublishedAt); err == nil {
				record.ChannelDate = published.Format("2006-01-02")
			}
		}
	}

	return record
}

// normalizeLanguage picks the first non-empty tag and reduces it to its
// primary subtag so "en-US" matches a filter asking for "en".
func normalizeLanguage(candidates ...string) string {
	for _, tag := range candidates {
		if tag == "" || tag == "any" {
			continue
		}
		if idx := strings.IndexByte(tag, '-'); idx > 0 {
			tag = tag[:idx]
		}
		return strings.ToLower(tag)
	}
	return ""
}

// publishedAfter converts a period into the earliest admissible publish
// time. PeriodAll (and unknown periods) apply no cutoff.
func publishedAfter(p models.Period) (time.Time, bool) {
	days := analytics.MaxAgeDays(p)
	if days <= 0 || days > 365*10 {
		return time.Time{}, false
	}
	return time.Now().Add(-time.Duration(days*24) * time.Hour), true
}
