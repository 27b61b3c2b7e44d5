package youtube

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/sanremolab/sanremo-pulse-go/internal/constants"
	"github.com/sanremolab/sanremo-pulse-go/internal/domain"
)

// Client looks up per-song video statistics through the YouTube Data API.
// A nil *Client is a disabled source: every lookup returns no stats without
// erroring, so a missing API key never fails a run.
type Client struct {
	service *youtube.Service
	logger  *zap.Logger
}

// NewClient returns nil when the API key is absent.
func NewClient(ctx context.Context, apiKey string, logger *zap.Logger) *Client {
	if apiKey == "" {
		logger.Warn("YouTube API key not configured, skipping YouTube data")
		return nil
	}

	service, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		logger.Error("YouTube service init failed, skipping YouTube data", zap.Error(err))
		return nil
	}

	return &Client{service: service, logger: logger}
}

// NewClientWithService wraps a pre-built API service for tests.
func NewClientWithService(service *youtube.Service, logger *zap.Logger) *Client {
	return &Client{service: service, logger: logger}
}

// VideoStats searches for the song's official performance video and returns
// its view/like/comment counters. The top hit for "<artist> <song> <edition>"
// is assumed to be the RAI upload. Errors are logged and yield nil.
func (c *Client) VideoStats(ctx context.Context, artist, song string) *domain.VideoStats {
	if c == nil {
		return nil
	}

	query := fmt.Sprintf("%s %s %s", artist, song, constants.YouTubeConfig.SearchSuffix)
	search, err := c.service.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		MaxResults(constants.YouTubeConfig.MaxResults).
		Context(ctx).Do()
	if err != nil {
		c.logger.Error("YouTube search failed",
			zap.String("artist", artist),
			zap.String("song", song),
			zap.Error(err),
		)
		return nil
	}
	if len(search.Items) == 0 || search.Items[0].Id == nil || search.Items[0].Id.VideoId == "" {
		c.logger.Debug("No YouTube results",
			zap.String("artist", artist),
			zap.String("song", song),
		)
		return nil
	}

	videoID := search.Items[0].Id.VideoId
	videos, err := c.service.Videos.List([]string{"statistics"}).
		Id(videoID).
		Context(ctx).Do()
	if err != nil {
		c.logger.Error("YouTube statistics fetch failed",
			zap.String("video_id", videoID),
			zap.Error(err),
		)
		return nil
	}
	if len(videos.Items) == 0 || videos.Items[0].Statistics == nil {
		c.logger.Debug("YouTube video has no statistics", zap.String("video_id", videoID))
		return nil
	}

	stats := videos.Items[0].Statistics
	return &domain.VideoStats{
		Views:    stats.ViewCount,
		Likes:    stats.LikeCount,
		Comments: stats.CommentCount,
	}
}
