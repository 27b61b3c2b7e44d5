package aggregate

import (
	"sort"

	"github.com/sanremolab/sanremo-pulse-go/internal/domain"
	"github.com/sanremolab/sanremo-pulse-go/internal/matcher"
	"github.com/sanremolab/sanremo-pulse-go/internal/sentiment"
)

// topCommentCount caps the representative quotes kept per contestant.
const topCommentCount = 3

// Aggregator scans a fetched comment corpus once per contestant and derives
// the per-artist metrics row.
type Aggregator struct {
	scorer *sentiment.Scorer
}

func New(scorer *sentiment.Scorer) *Aggregator {
	return &Aggregator{scorer: scorer}
}

// Row computes the metrics for one contestant. Matching comments are exactly
// those whose body the artist matcher accepts; mention count and vote total
// cover those and nothing else.
func (a *Aggregator) Row(thread *domain.Thread, contestant domain.Contestant) domain.MetricsRow {
	var matching []domain.Comment
	totalScore := 0

	for _, c := range thread.Comments {
		if matcher.Matches(contestant.Artist, c.Body) {
			matching = append(matching, c)
			totalScore += c.Score
		}
	}

	bodies := make([]string, len(matching))
	for i, c := range matching {
		bodies[i] = c.Body
	}
	score, label := a.scorer.Score(bodies)

	// Ties keep corpus order.
	ranked := make([]domain.Comment, len(matching))
	copy(ranked, matching)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	top := make([]string, 0, topCommentCount)
	for _, c := range ranked {
		if len(top) == topCommentCount {
			break
		}
		top = append(top, c.Body)
	}

	return domain.MetricsRow{
		Artist:         contestant.Artist,
		Song:           contestant.Song,
		Mentions:       len(matching),
		Score:          totalScore,
		TotalComments:  len(thread.Comments),
		SentimentScore: score,
		SentimentLabel: label,
		TopComments:    top,
	}
}

// Rows aggregates every contestant and orders the result by
// (mentions, vote score) descending; ties keep the contestant list order.
func (a *Aggregator) Rows(thread *domain.Thread, contestants []domain.Contestant) []domain.MetricsRow {
	rows := make([]domain.MetricsRow, 0, len(contestants))
	for _, c := range contestants {
		rows = append(rows, a.Row(thread, c))
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Mentions != rows[j].Mentions {
			return rows[i].Mentions > rows[j].Mentions
		}
		return rows[i].Score > rows[j].Score
	})

	return rows
}
