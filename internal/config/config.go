package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/sanremolab/sanremo-pulse-go/internal/constants"
)

type Config struct {
	Serata  int
	API     APIConfig
	Spotify SpotifyConfig
	YouTube YouTubeConfig
	Reddit  RedditConfig
	GitHub  GitHubConfig
	Lineup  LineupConfig
	Redis   RedisConfig
	Logging LoggingConfig
}

type APIConfig struct {
	BaseURL string
	Key     string
}

type SpotifyConfig struct {
	ClientID     string
	ClientSecret string
}

type YouTubeConfig struct {
	APIKey string
}

type RedditConfig struct {
	// ThreadIDs maps serata number to the megathread ID for that night.
	ThreadIDs map[int]string
}

type GitHubConfig struct {
	// RawBase is the raw-content URL prefix the published datasets become
	// reachable under.
	RawBase    string
	ProjectDir string
}

type LineupConfig struct {
	File      string
	ScrapeURL string
}

type RedisConfig struct {
	// Host empty means caching is disabled.
	Host     string
	Port     int
	Password string
	DB       int
}

type LoggingConfig struct {
	Level string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	serata, err := ParseSerata(os.Getenv("SERATA"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Serata: serata,
		API: APIConfig{
			BaseURL: getEnv("API_BASE_URL", constants.ReportAPIConfig.DefaultBaseURL),
			Key:     getEnv("API_KEY", ""),
		},
		Spotify: SpotifyConfig{
			ClientID:     getEnv("SPOTIFY_CLIENT_ID", ""),
			ClientSecret: getEnv("SPOTIFY_CLIENT_SECRET", ""),
		},
		YouTube: YouTubeConfig{
			APIKey: getEnv("YOUTUBE_API_KEY", ""),
		},
		Reddit: RedditConfig{
			ThreadIDs: collectThreadIDs("REDDIT_THREAD_ID_"),
		},
		GitHub: GitHubConfig{
			RawBase:    getEnv("GITHUB_RAW_BASE", "https://raw.githubusercontent.com/sanremolab/sanremo-pulse/refs/heads/main/"),
			ProjectDir: getEnv("PROJECT_DIR", "."),
		},
		Lineup: LineupConfig{
			File:      getEnv("LINEUP_FILE", ""),
			ScrapeURL: getEnv("LINEUP_SCRAPE_URL", ""),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", ""),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	return cfg, nil
}

// ParseSerata validates the serata value before anything touches the
// network. An unset value is allowed here so commands that take the serata
// as a flag can run without the variable; they validate again themselves.
func ParseSerata(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	serata, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("SERATA must be a number, got %q", raw)
	}
	if err := ValidateSerata(serata); err != nil {
		return 0, err
	}
	return serata, nil
}

func ValidateSerata(serata int) error {
	if serata < constants.SerataConfig.Min || serata > constants.SerataConfig.Max {
		return fmt.Errorf("SERATA must be between %d and %d, got %d",
			constants.SerataConfig.Min, constants.SerataConfig.Max, serata)
	}
	return nil
}

// ThreadID returns the megathread ID configured for the serata, or "" when
// Reddit collection is disabled for that night.
func (c *Config) ThreadID(serata int) string {
	return c.Reddit.ThreadIDs[serata]
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func collectThreadIDs(prefix string) map[int]string {
	ids := make(map[int]string)
	for serata := constants.SerataConfig.Min; serata <= constants.SerataConfig.Max; serata++ {
		envKey := fmt.Sprintf("%s%d", prefix, serata)
		if value := os.Getenv(envKey); value != "" {
			ids[serata] = value
		}
	}
	return ids
}
