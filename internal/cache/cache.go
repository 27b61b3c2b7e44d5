package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/sanremolab/sanremo-pulse-go/pkg/errors"
)

// Service is an optional Redis-backed JSON cache used to avoid refetching
// megathread corpora and report embed URLs on repeated runs. A nil *Service
// is valid and behaves as an always-miss cache, so callers never need to
// branch on whether caching is configured.
type Service struct {
	client *redis.Client
	logger *zap.Logger
}

type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
}

func New(cfg Config, logger *zap.Logger) (*Service, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.NewCacheError("failed to connect to Redis", "ping", "", err)
	}

	logger.Info("Redis connected",
		zap.String("addr", fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)),
		zap.Int("db", cfg.DB),
	)

	return &Service{client: client, logger: logger}, nil
}

// Get unmarshals the cached value for key into dest and reports whether the
// key existed. Cache failures are logged and reported as misses so a flaky
// Redis never breaks a run.
func (s *Service) Get(ctx context.Context, key string, dest any) bool {
	if s == nil {
		return false
	}

	value, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		s.logger.Warn("Cache get failed", zap.String("key", key), zap.Error(err))
		return false
	}

	if err := json.Unmarshal([]byte(value), dest); err != nil {
		s.logger.Warn("Cache unmarshal failed", zap.String("key", key), zap.Error(err))
		return false
	}

	return true
}

func (s *Service) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	if s == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("Cache marshal failed", zap.String("key", key), zap.Error(err))
		return
	}

	if err := s.client.Set(ctx, key, data, ttl).Err(); err != nil {
		s.logger.Warn("Cache set failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *Service) Close() error {
	if s == nil {
		return nil
	}
	return s.client.Close()
}
