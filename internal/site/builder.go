package site

import (
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/sanremolab/sanremo-pulse-go/internal/cache"
	"github.com/sanremolab/sanremo-pulse-go/internal/constants"
	"github.com/sanremolab/sanremo-pulse-go/internal/domain"
)

//go:embed index.template.html
var indexTemplate string

// ReportLister is the subset of the reports client the site build needs.
type ReportLister interface {
	GetReportStatus(ctx context.Context, id string) (string, error)
	ListReports(ctx context.Context) ([]domain.Report, error)
	GetEmbedURL(ctx context.Context, id string) (string, error)
}

// Builder renders the static page of report links.
type Builder struct {
	reports      ReportLister
	cache        *cache.Service
	pollInterval time.Duration
	maxWait      time.Duration
	logger       *zap.Logger

	// now and sleep are substituted in tests.
	now   func() time.Time
	sleep func(time.Duration)
}

func NewBuilder(reports ReportLister, cacheSvc *cache.Service, logger *zap.Logger) *Builder {
	return &Builder{
		reports:      reports,
		cache:        cacheSvc,
		pollInterval: constants.SiteConfig.PollInterval,
		maxWait:      constants.SiteConfig.MaxWait,
		logger:       logger,
		now:          time.Now,
		sleep:        time.Sleep,
	}
}

type pageData struct {
	BuildTime       string
	LatestReportURL string
	Reports         []reportView
}

type reportView struct {
	Date     string
	EmbedURL string
	time     string
}

// Build renders the page at outputPath. When newReportID is non-empty the
// build first waits for that report to complete; a report that fails or
// times out only logs a warning and the page is rebuilt from whatever
// reports exist.
func (b *Builder) Build(ctx context.Context, newReportID, outputPath string) error {
	if newReportID != "" {
		if !b.waitForCompletion(ctx, newReportID) {
			b.logger.Warn("New report did not complete, rebuilding with existing reports",
				zap.String("report_id", newReportID))
		}
	}

	reports, err := b.reports.ListReports(ctx)
	if err != nil {
		b.logger.Warn("Could not list reports, generating empty page", zap.Error(err))
		reports = nil
	}
	b.logger.Info("Reports listed", zap.Int("count", len(reports)))

	views := make([]reportView, 0, len(reports))
	for i, r := range reports {
		b.logger.Info("Fetching embed URL",
			zap.Int("index", i+1),
			zap.Int("total", len(reports)),
			zap.String("report_id", r.ID),
		)
		embedURL := b.embedURL(ctx, r.ID)
		if embedURL == "" {
			b.logger.Warn("Could not get embed URL, skipping report", zap.String("report_id", r.ID))
			continue
		}
		views = append(views, reportView{
			Date:     formatItalianDate(r.Time),
			EmbedURL: embedURL,
			time:     r.Time,
		})
	}

	// Newest first.
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].time > views[j].time
	})

	data := pageData{
		BuildTime: b.now().UTC().Format("2006-01-02 15:04:05 UTC"),
		Reports:   views,
	}
	if len(views) > 0 {
		data.LatestReportURL = views[0].EmbedURL
	}

	tmpl, err := template.New("index").Parse(indexTemplate)
	if err != nil {
		return fmt.Errorf("parsing page template: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("creating site directory: %w", err)
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating page: %w", err)
	}
	defer f.Close()

	if err := tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("rendering page: %w", err)
	}

	b.logger.Info("Site generated",
		zap.String("path", outputPath),
		zap.Int("reports", len(views)),
	)
	return nil
}

// waitForCompletion polls the report status until completed, failed, or the
// wall-clock budget runs out.
func (b *Builder) waitForCompletion(ctx context.Context, id string) bool {
	b.logger.Info("Waiting for report completion", zap.String("report_id", id))
	start := b.now()
	attempts := 0

	for {
		if ctx.Err() != nil {
			return false
		}

		elapsed := b.now().Sub(start)
		if elapsed > b.maxWait {
			b.logger.Warn("Report completion timed out",
				zap.String("report_id", id),
				zap.Duration("waited", elapsed),
			)
			return false
		}

		attempts++
		status, err := b.reports.GetReportStatus(ctx, id)
		if err != nil {
			b.logger.Warn("Status poll failed",
				zap.String("report_id", id),
				zap.Int("attempt", attempts),
				zap.Error(err),
			)
			b.sleep(b.pollInterval)
			continue
		}

		b.logger.Info("Report status",
			zap.String("report_id", id),
			zap.String("status", status),
			zap.Int("attempt", attempts),
		)

		switch status {
		case domain.ReportStatusCompleted:
			return true
		case domain.ReportStatusFailed:
			return false
		default:
			// queued, processing, running, or anything unknown: keep polling
			b.sleep(b.pollInterval)
		}
	}
}

func (b *Builder) embedURL(ctx context.Context, id string) string {
	cacheKey := "report:embed:" + id
	var cached string
	if b.cache.Get(ctx, cacheKey, &cached) {
		return cached
	}

	embedURL, err := b.reports.GetEmbedURL(ctx, id)
	if err != nil {
		return ""
	}

	if embedURL != "" {
		b.cache.Set(ctx, cacheKey, embedURL, constants.CacheTTL.EmbedURL)
	}
	return embedURL
}

var italianDays = []string{"Lunedì", "Martedì", "Mercoledì", "Giovedì", "Venerdì", "Sabato", "Domenica"}

var italianMonths = []string{
	"gennaio", "febbraio", "marzo", "aprile", "maggio", "giugno",
	"luglio", "agosto", "settembre", "ottobre", "novembre", "dicembre",
}

// formatItalianDate renders an RFC 3339 timestamp as "Martedì 10 febbraio
// 2026". Unparseable input comes back unchanged.
func formatItalianDate(value string) string {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return value
	}

	day := italianDays[(int(t.Weekday())+6)%7]
	return fmt.Sprintf("%s %d %s %d", day, t.Day(), italianMonths[int(t.Month())-1], t.Year())
}
