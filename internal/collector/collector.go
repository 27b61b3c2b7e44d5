package collector

import (
	"context"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/sanremolab/sanremo-pulse-go/internal/aggregate"
	"github.com/sanremolab/sanremo-pulse-go/internal/constants"
	"github.com/sanremolab/sanremo-pulse-go/internal/dataset"
	"github.com/sanremolab/sanremo-pulse-go/internal/domain"
	"github.com/sanremolab/sanremo-pulse-go/internal/reddit"
	"github.com/sanremolab/sanremo-pulse-go/internal/spotify"
	"github.com/sanremolab/sanremo-pulse-go/internal/youtube"
)

// Collector runs one serata's data collection: Spotify popularity and
// YouTube video stats per contestant, the Reddit megathread corpus,
// aggregation, and the CSV on disk. Sources are independent; a disabled or
// failing source shrinks the dataset instead of failing the run.
type Collector struct {
	spotify    *spotify.Client
	youtube    *youtube.Client
	reddit     *reddit.Client
	aggregator *aggregate.Aggregator
	projectDir string
	logger     *zap.Logger

	// sleep is substituted in tests.
	sleep func(time.Duration)
}

func New(spotifyClient *spotify.Client, youtubeClient *youtube.Client, redditClient *reddit.Client, aggregator *aggregate.Aggregator, projectDir string, logger *zap.Logger) *Collector {
	return &Collector{
		spotify:    spotifyClient,
		youtube:    youtubeClient,
		reddit:     redditClient,
		aggregator: aggregator,
		projectDir: projectDir,
		logger:     logger,
		sleep:      time.Sleep,
	}
}

// Result is what one collection run produced.
type Result struct {
	// RelPath is the dataset path relative to the project root, the form
	// both git and the raw-URL builder need.
	RelPath string
	Rows    []domain.MetricsRow
	Variant dataset.Variant
}

// Collect fetches all signals for the serata and writes the CSV. An empty
// threadID disables the Reddit source and produces the Spotify-only column
// set.
func (c *Collector) Collect(ctx context.Context, serata int, contestants []domain.Contestant, threadID string) (*Result, error) {
	c.logger.Info("Collecting data",
		zap.Int("serata", serata),
		zap.Int("contestants", len(contestants)),
		zap.String("thread", threadID),
	)

	popularity := make(map[string]*int, len(contestants))
	videoStats := make(map[string]*domain.VideoStats, len(contestants))
	for i, contestant := range contestants {
		c.logger.Info("Fetching contestant data",
			zap.Int("index", i+1),
			zap.Int("total", len(contestants)),
			zap.String("artist", contestant.Artist),
			zap.String("song", contestant.Song),
		)
		popularity[contestant.Artist] = c.spotify.TrackPopularity(ctx, contestant.Artist, contestant.Song)
		videoStats[contestant.Artist] = c.youtube.VideoStats(ctx, contestant.Artist, contestant.Song)

		// Pacing between search calls.
		c.sleep(constants.FetchConfig.ContestantDelay)
	}

	variant := dataset.VariantSpotify
	thread := &domain.Thread{}
	if threadID != "" {
		variant = dataset.VariantFull
		fetched, err := c.reddit.FetchThread(ctx, threadID)
		if err != nil {
			return nil, err
		}
		thread = fetched
	}

	rows := c.aggregator.Rows(thread, contestants)
	for i := range rows {
		rows[i].SpotifyPopularity = popularity[rows[i].Artist]
		rows[i].YouTube = videoStats[rows[i].Artist]
	}

	relPath := filepath.Join("datasets", dataset.Filename(serata))
	if err := dataset.Write(filepath.Join(c.projectDir, relPath), rows, variant); err != nil {
		return nil, err
	}

	c.logger.Info("Dataset written",
		zap.String("path", relPath),
		zap.Int("rows", len(rows)),
	)

	return &Result{RelPath: relPath, Rows: rows, Variant: variant}, nil
}
