package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sanremolab/sanremo-pulse-go/internal/domain"
	"github.com/sanremolab/sanremo-pulse-go/internal/util"
)

// maxCommentRunes keeps quote cells short enough for spreadsheet viewers.
const maxCommentRunes = 500

// Variant selects the column set, depending on which data sources ran.
type Variant int

const (
	// VariantSpotify emits streaming popularity only.
	VariantSpotify Variant = iota
	// VariantReddit adds the discussion metrics.
	VariantReddit
	// VariantFull also appends the representative quotes.
	VariantFull
)

// Filename is the per-serata dataset name, referenced by both the publisher
// and the raw-URL builder.
func Filename(serata int) string {
	return fmt.Sprintf("sanremo_serata_%d.csv", serata)
}

func (v Variant) header() []string {
	columns := []string{
		"artista", "brano", "spotify_popularity",
		"youtube_views", "youtube_likes", "youtube_comments",
	}
	if v >= VariantReddit {
		columns = append(columns,
			"reddit_mentions", "reddit_score", "reddit_comments",
			"sentiment_score", "sentiment_label",
		)
	}
	if v >= VariantFull {
		columns = append(columns, "top_comment_1", "top_comment_2", "top_comment_3")
	}
	return columns
}

func (v Variant) record(row domain.MetricsRow) []string {
	popularity := ""
	if row.SpotifyPopularity != nil {
		popularity = strconv.Itoa(*row.SpotifyPopularity)
	}

	views, likes, comments := "", "", ""
	if row.YouTube != nil {
		views = strconv.FormatUint(row.YouTube.Views, 10)
		likes = strconv.FormatUint(row.YouTube.Likes, 10)
		comments = strconv.FormatUint(row.YouTube.Comments, 10)
	}

	record := []string{row.Artist, row.Song, popularity, views, likes, comments}
	if v >= VariantReddit {
		record = append(record,
			strconv.Itoa(row.Mentions),
			strconv.Itoa(row.Score),
			strconv.Itoa(row.TotalComments),
			strconv.FormatFloat(row.SentimentScore, 'f', 3, 64),
			row.SentimentLabel,
		)
	}
	if v >= VariantFull {
		for i := 0; i < 3; i++ {
			if i < len(row.TopComments) {
				record = append(record, util.TruncateString(row.TopComments[i], maxCommentRunes))
			} else {
				record = append(record, "")
			}
		}
	}
	return record
}

// Write serializes rows to path as CSV, creating parent directories.
func Write(path string, rows []domain.MetricsRow, variant Variant) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating dataset directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating dataset file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(variant.header()); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(variant.record(row)); err != nil {
			return fmt.Errorf("writing row for %s: %w", row.Artist, err)
		}
	}

	w.Flush()
	return w.Error()
}
