package lineup

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/sanremolab/sanremo-pulse-go/internal/domain"
)

const scraperTimeout = 15 * time.Second

// Scraper pulls the contestant table from a lineup page (the Wikipedia
// article of the current edition works). Expects a wikitable whose rows
// carry artist and song in the first two cells.
type Scraper struct {
	httpClient *http.Client
	pageURL    string
	logger     *zap.Logger
}

func NewScraper(pageURL string, logger *zap.Logger) *Scraper {
	return &Scraper{
		httpClient: &http.Client{Timeout: scraperTimeout},
		pageURL:    pageURL,
		logger:     logger,
	}
}

func (s *Scraper) Fetch(ctx context.Context) ([]domain.Contestant, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", s.pageURL, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; SanremoPulse/1.0)")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("HTML parse failed: %w", err)
	}

	contestants := make([]domain.Contestant, 0)
	parseErrors := 0

	doc.Find("table.wikitable tbody tr").Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return // header row
		}

		artist := cleanCell(cells.Eq(0).Text())
		song := cleanCell(cells.Eq(1).Text())
		if artist == "" || song == "" {
			parseErrors++
			return
		}

		contestants = append(contestants, domain.Contestant{Artist: artist, Song: song})
	})

	if len(contestants) == 0 {
		return nil, &StructureChangedError{
			Message:     "No contestants found - HTML structure may have changed",
			ParseErrors: parseErrors,
		}
	}

	if parseErrors > len(contestants)/2 {
		s.logger.Warn("High parse error rate detected",
			zap.Int("successes", len(contestants)),
			zap.Int("errors", parseErrors))
	}

	s.logger.Info("Lineup page scraped",
		zap.Int("contestants", len(contestants)),
		zap.Int("parse_errors", parseErrors))

	return contestants, nil
}

// cleanCell strips footnote markers like "[1]" and surrounding quotes that
// Wikipedia wraps song titles in.
func cleanCell(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "["); idx != -1 {
		text = strings.TrimSpace(text[:idx])
	}
	text = strings.Trim(text, `"«»“”`)
	return strings.TrimSpace(text)
}

type StructureChangedError struct {
	Message     string
	ParseErrors int
}

func (e *StructureChangedError) Error() string {
	return fmt.Sprintf("%s (parse errors: %d)", e.Message, e.ParseErrors)
}

func IsStructureError(err error) bool {
	_, ok := err.(*StructureChangedError)
	return ok
}
