package lineup

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sanremolab/sanremo-pulse-go/internal/domain"
)

//go:embed contestants.yaml
var embeddedLineup []byte

// lineupFile is the YAML shape: a default list plus optional per-serata
// overrides (the cover night runs a different billing, for example).
type lineupFile struct {
	Default []domain.Contestant         `yaml:"default"`
	Serate  map[int][]domain.Contestant `yaml:"serate"`
}

func (f *lineupFile) pick(serata int) []domain.Contestant {
	if contestants, ok := f.Serate[serata]; ok && len(contestants) > 0 {
		return contestants
	}
	return f.Default
}

// Provider resolves the contestant list for a serata. Sources in order:
// explicit YAML file, scrape of the configured lineup page, embedded
// default. Earlier sources failing fall through silently.
type Provider struct {
	filePath string
	scraper  *Scraper
	logger   *zap.Logger
}

func NewProvider(filePath string, scraper *Scraper, logger *zap.Logger) *Provider {
	return &Provider{
		filePath: filePath,
		scraper:  scraper,
		logger:   logger,
	}
}

func (p *Provider) Contestants(ctx context.Context, serata int) ([]domain.Contestant, error) {
	if p.filePath != "" {
		contestants, err := p.fromFile(serata)
		if err != nil {
			p.logger.Warn("Lineup file unusable, falling back",
				zap.String("path", p.filePath),
				zap.Error(err),
			)
		} else if len(contestants) > 0 {
			p.logger.Info("Lineup loaded from file",
				zap.String("path", p.filePath),
				zap.Int("contestants", len(contestants)),
			)
			return contestants, nil
		}
	}

	if p.scraper != nil {
		contestants, err := p.scraper.Fetch(ctx)
		if err != nil {
			p.logger.Warn("Lineup scrape failed, falling back", zap.Error(err))
		} else if len(contestants) > 0 {
			p.logger.Info("Lineup scraped", zap.Int("contestants", len(contestants)))
			return contestants, nil
		}
	}

	return p.fromEmbedded(serata)
}

func (p *Provider) fromFile(serata int) ([]domain.Contestant, error) {
	data, err := os.ReadFile(p.filePath)
	if err != nil {
		return nil, err
	}

	var f lineupFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing lineup file: %w", err)
	}

	return f.pick(serata), nil
}

func (p *Provider) fromEmbedded(serata int) ([]domain.Contestant, error) {
	var f lineupFile
	if err := yaml.Unmarshal(embeddedLineup, &f); err != nil {
		return nil, fmt.Errorf("parsing embedded lineup: %w", err)
	}

	contestants := f.pick(serata)
	p.logger.Info("Using embedded lineup", zap.Int("contestants", len(contestants)))
	return contestants, nil
}
