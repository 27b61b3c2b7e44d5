package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/sanremolab/sanremo-pulse-go/internal/collector"
	"github.com/sanremolab/sanremo-pulse-go/internal/constants"
	"github.com/sanremolab/sanremo-pulse-go/internal/domain"
	"github.com/sanremolab/sanremo-pulse-go/internal/util"
	"github.com/sanremolab/sanremo-pulse-go/pkg/errors"
)

// State is the pipeline's position in its sequential run.
type State string

const (
	StateFetch             State = "FETCH"
	StatePublish           State = "PUBLISH"
	StateAwaitAvailability State = "AWAIT_AVAILABILITY"
	StateCreateSource      State = "CREATE_SOURCE"
	StateCreateReport      State = "CREATE_REPORT"
	StateDone              State = "DONE"
	StateFailed            State = "FAILED"
)

// Fetcher produces the serata dataset.
type Fetcher interface {
	Collect(ctx context.Context, serata int, contestants []domain.Contestant, threadID string) (*collector.Result, error)
}

// Publisher pushes datasets to the hosting repository and can compensate by
// removing them again.
type Publisher interface {
	Publish(ctx context.Context, relPath string) error
	Remove(ctx context.Context, relPath string)
}

// Waiter blocks until a published URL actually serves the file.
type Waiter interface {
	Wait(ctx context.Context, fileURL string) error
}

// ReportAPI is the subset of the reports client the pipeline drives.
type ReportAPI interface {
	CreateDataSource(ctx context.Context, fileURL string) (string, error)
	CreateReport(ctx context.Context, dataSourceID string, serata int) (string, error)
}

// Pipeline is the sequential publishing run:
// FETCH → PUBLISH → AWAIT_AVAILABILITY → CREATE_SOURCE → CREATE_REPORT → DONE.
// Any step exhausting its retries lands in FAILED; failures after a
// successful publish roll the pushed dataset back (saga-style compensation,
// not a transaction).
type Pipeline struct {
	fetcher    Fetcher
	publisher  Publisher
	waiter     Waiter
	reports    ReportAPI
	rawBaseURL string
	projectDir string
	retry      util.RetryPolicy
	logger     *zap.Logger

	state State
}

func New(fetcher Fetcher, publisher Publisher, waiter Waiter, reports ReportAPI, rawBaseURL, projectDir string, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		fetcher:    fetcher,
		publisher:  publisher,
		waiter:     waiter,
		reports:    reports,
		rawBaseURL: strings.TrimRight(rawBaseURL, "/") + "/",
		projectDir: projectDir,
		retry: util.RetryPolicy{
			MaxAttempts: constants.RetryConfig.MaxAttempts,
			BaseDelay:   constants.RetryConfig.BaseDelay,
			Multiplier:  constants.RetryConfig.Multiplier,
		},
		logger: logger,
		state:  StateFetch,
	}
}

// State reports the pipeline's current (or terminal) state.
func (p *Pipeline) State() State {
	return p.state
}

// Run executes the full pipeline for one serata and returns the queued
// report id.
func (p *Pipeline) Run(ctx context.Context, serata int, contestants []domain.Contestant, threadID string) (string, error) {
	p.state = StateFetch
	p.logger.Info("Pipeline started", zap.Int("serata", serata))

	result, err := p.fetcher.Collect(ctx, serata, contestants, threadID)
	if err != nil {
		return "", p.fail(StateFetch, err)
	}

	p.state = StatePublish
	if err := p.publisher.Publish(ctx, result.RelPath); err != nil {
		return "", p.fail(StatePublish, err)
	}

	fileURL := p.rawBaseURL + filepath.ToSlash(result.RelPath)

	p.state = StateAwaitAvailability
	if err := p.waiter.Wait(ctx, fileURL); err != nil {
		p.publisher.Remove(ctx, result.RelPath)
		return "", p.fail(StateAwaitAvailability, err)
	}

	p.state = StateCreateSource
	dataSourceID, err := p.reports.CreateDataSource(ctx, fileURL)
	if err != nil {
		p.publisher.Remove(ctx, result.RelPath)
		return "", p.fail(StateCreateSource, err)
	}

	p.state = StateCreateReport
	var reportID string
	err = p.retry.Do(ctx, func() error {
		id, createErr := p.reports.CreateReport(ctx, dataSourceID, serata)
		if createErr != nil {
			p.logger.Warn("Report creation failed, may retry", zap.Error(createErr))
			return createErr
		}
		reportID = id
		return nil
	})
	if err != nil {
		p.publisher.Remove(ctx, result.RelPath)
		return "", p.fail(StateCreateReport, err)
	}

	if err := p.saveReportID(reportID); err != nil {
		p.logger.Warn("Could not persist report id for the site build", zap.Error(err))
	}

	p.state = StateDone
	p.logger.Info("Pipeline completed",
		zap.Int("serata", serata),
		zap.String("report_id", reportID),
	)

	return reportID, nil
}

// saveReportID leaves the id where the site builder picks it up.
func (p *Pipeline) saveReportID(id string) error {
	return os.WriteFile(filepath.Join(p.projectDir, "report_id.txt"), []byte(id), 0644)
}

func (p *Pipeline) fail(stage State, err error) error {
	p.state = StateFailed
	p.logger.Error("Pipeline failed",
		zap.String("stage", string(stage)),
		zap.Error(err),
	)
	return errors.NewPipelineError("pipeline failed", string(stage), err)
}
