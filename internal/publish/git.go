package publish

import (
	"context"
	"fmt"
	"os/exec"

	"go.uber.org/zap"

	"github.com/sanremolab/sanremo-pulse-go/pkg/errors"
)

// GitPublisher pushes dataset files to the hosting repository so they become
// reachable through the raw-content CDN.
type GitPublisher struct {
	repoRoot string
	logger   *zap.Logger

	// run is substituted in tests.
	run func(ctx context.Context, dir string, args ...string) error
}

func NewGitPublisher(repoRoot string, logger *zap.Logger) *GitPublisher {
	return &GitPublisher{
		repoRoot: repoRoot,
		logger:   logger,
		run:      runGit,
	}
}

func runGit(ctx context.Context, dir string, args ...string) error {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git %v: %w (%s)", args, err, out)
	}
	return nil
}

// Publish force-adds, commits and pushes the file at relPath.
func (p *GitPublisher) Publish(ctx context.Context, relPath string) error {
	steps := [][]string{
		{"add", "-f", relPath},
		{"commit", "-m", fmt.Sprintf("Sanremo serata dataset %s", relPath)},
		{"push"},
	}

	for _, args := range steps {
		if err := p.run(ctx, p.repoRoot, args...); err != nil {
			return errors.NewPublishError("git publish failed", relPath, err)
		}
	}

	p.logger.Info("Dataset pushed", zap.String("path", relPath))
	return nil
}

// Remove deletes a previously published file and pushes the deletion. It is
// the compensating action after a downstream failure: best effort, a failed
// rollback only logs a warning.
func (p *GitPublisher) Remove(ctx context.Context, relPath string) {
	p.logger.Info("Removing published dataset after pipeline error", zap.String("path", relPath))

	steps := [][]string{
		{"rm", "-f", relPath},
		{"commit", "-m", fmt.Sprintf("Remove %s due to pipeline error", relPath)},
		{"push"},
	}

	for _, args := range steps {
		if err := p.run(ctx, p.repoRoot, args...); err != nil {
			p.logger.Warn("Failed to remove published dataset",
				zap.String("path", relPath),
				zap.Error(err),
			)
			return
		}
	}

	p.logger.Info("Published dataset removed", zap.String("path", relPath))
}
