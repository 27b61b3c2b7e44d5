package app

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/sanremolab/sanremo-pulse-go/internal/aggregate"
	"github.com/sanremolab/sanremo-pulse-go/internal/cache"
	"github.com/sanremolab/sanremo-pulse-go/internal/collector"
	"github.com/sanremolab/sanremo-pulse-go/internal/config"
	"github.com/sanremolab/sanremo-pulse-go/internal/constants"
	"github.com/sanremolab/sanremo-pulse-go/internal/lineup"
	"github.com/sanremolab/sanremo-pulse-go/internal/pipeline"
	"github.com/sanremolab/sanremo-pulse-go/internal/publish"
	"github.com/sanremolab/sanremo-pulse-go/internal/reddit"
	"github.com/sanremolab/sanremo-pulse-go/internal/report"
	"github.com/sanremolab/sanremo-pulse-go/internal/sentiment"
	"github.com/sanremolab/sanremo-pulse-go/internal/site"
	"github.com/sanremolab/sanremo-pulse-go/internal/spotify"
	"github.com/sanremolab/sanremo-pulse-go/internal/youtube"
)

// Container bundles the assembled services the commands run against.
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	Cache     *cache.Service
	Lineup    *lineup.Provider
	Collector *collector.Collector
	Reports   *report.Client
	Pipeline  *pipeline.Pipeline
	Site      *site.Builder

	closers []func()
}

// Close releases held resources in reverse construction order.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

// Build assembles the full dependency graph. Sources with missing
// credentials come up disabled rather than failing the build: a nil Spotify
// client, an absent thread ID, and a nil cache are all safe no-ops
// downstream.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (container *Container, err error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var closers []func()
	defer func() {
		if err != nil {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		}
	}()

	// Cache is optional: no REDIS_HOST means every lookup is a miss.
	var cacheSvc *cache.Service
	if cfg.Redis.Host != "" {
		cacheSvc, err = cache.New(cache.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create cache service: %w", err)
		}
		closers = append(closers, func() {
			_ = cacheSvc.Close()
		})
	}

	// Collection sources
	spotifyClient := spotify.NewClient(ctx, cfg.Spotify.ClientID, cfg.Spotify.ClientSecret, logger)
	youtubeClient := youtube.NewClient(ctx, cfg.YouTube.APIKey, logger)
	redditClient := reddit.NewClient(
		&http.Client{Timeout: constants.RedditConfig.Timeout},
		cacheSvc,
		logger,
	)
	aggregator := aggregate.New(sentiment.NewItalianScorer())

	coll := collector.New(spotifyClient, youtubeClient, redditClient, aggregator, cfg.GitHub.ProjectDir, logger)

	// Lineup resolution
	var scraper *lineup.Scraper
	if cfg.Lineup.ScrapeURL != "" {
		scraper = lineup.NewScraper(cfg.Lineup.ScrapeURL, logger)
	}
	lineupProvider := lineup.NewProvider(cfg.Lineup.File, scraper, logger)

	// Publication and reporting
	reports := report.NewClient(
		&http.Client{Timeout: constants.ReportAPIConfig.Timeout},
		cfg.API.BaseURL,
		cfg.API.Key,
		logger,
	)
	publisher := publish.NewGitPublisher(cfg.GitHub.ProjectDir, logger)
	waiter := publish.NewAvailabilityWaiter(
		&http.Client{Timeout: constants.ReportAPIConfig.Timeout},
		logger,
	)

	pipe := pipeline.New(coll, publisher, waiter, reports, cfg.GitHub.RawBase, cfg.GitHub.ProjectDir, logger)
	siteBuilder := site.NewBuilder(reports, cacheSvc, logger)

	return &Container{
		Config:    cfg,
		Logger:    logger,
		Cache:     cacheSvc,
		Lineup:    lineupProvider,
		Collector: coll,
		Reports:   reports,
		Pipeline:  pipe,
		Site:      siteBuilder,
		closers:   closers,
	}, nil
}
