package constants

import "time"

var SerataConfig = struct {
	Min int
	Max int
}{
	Min: 1,
	Max: 5,
}

var RedditConfig = struct {
	BaseURL           string
	UserAgent         string
	Timeout           time.Duration
	RequestDelay      time.Duration
	RateLimitCooldown time.Duration
	ListingLimit      int
	MoreBatchSize     int
}{
	BaseURL:           "https://www.reddit.com",
	UserAgent:         "sanremo-pulse/1.0 (dataset collector)",
	Timeout:           15 * time.Second,
	RequestDelay:      1 * time.Second,  // between every Reddit call
	RateLimitCooldown: 60 * time.Second, // single cooldown on a 429
	ListingLimit:      500,
	MoreBatchSize:     100, // /api/morechildren hard limit
}

var SpotifyConfig = struct {
	APIBaseURL  string
	TokenURL    string
	Market      string
	SearchLimit int
	Timeout     time.Duration
}{
	APIBaseURL:  "https://api.spotify.com/v1",
	TokenURL:    "https://accounts.spotify.com/api/token",
	Market:      "IT",
	SearchLimit: 5,
	Timeout:     10 * time.Second,
}

var YouTubeConfig = struct {
	SearchSuffix string
	MaxResults   int64
}{
	SearchSuffix: "Sanremo 2026", // official RAI uploads carry the edition name
	MaxResults:   1,
}

var ReportAPIConfig = struct {
	DefaultBaseURL string
	Timeout        time.Duration
}{
	DefaultBaseURL: "https://app.southwind.ai/api",
	Timeout:        30 * time.Second,
}

var RetryConfig = struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Multiplier  float64
}{
	MaxAttempts: 3,
	BaseDelay:   2 * time.Second,
	Multiplier:  2,
}

var PublishConfig = struct {
	AvailabilityAttempts int
	AvailabilityDelay    time.Duration
}{
	AvailabilityAttempts: 20, // GitHub raw CDN propagation can lag
	AvailabilityDelay:    5 * time.Second,
}

var SiteConfig = struct {
	PollInterval time.Duration
	MaxWait      time.Duration
}{
	PollInterval: 30 * time.Second,
	MaxWait:      30 * time.Minute,
}

var FetchConfig = struct {
	ContestantDelay time.Duration
}{
	ContestantDelay: 500 * time.Millisecond,
}

var CacheTTL = struct {
	ThreadCorpus time.Duration
	EmbedURL     time.Duration
}{
	ThreadCorpus: 15 * time.Minute,
	EmbedURL:     60 * time.Minute,
}
