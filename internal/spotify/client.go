package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/sanremolab/sanremo-pulse-go/internal/constants"
)

// Client wraps the Spotify Web API search endpoint behind a client
// credentials token. A nil *Client is a disabled source: every lookup
// returns no popularity without erroring, so a missing credential never
// fails a run.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

// NewClient returns nil when credentials are absent.
func NewClient(ctx context.Context, clientID, clientSecret string, logger *zap.Logger) *Client {
	if clientID == "" || clientSecret == "" {
		logger.Warn("Spotify credentials not configured, skipping Spotify data")
		return nil
	}

	cfg := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     constants.SpotifyConfig.TokenURL,
	}

	httpClient := cfg.Client(ctx)
	httpClient.Timeout = constants.SpotifyConfig.Timeout

	return &Client{
		httpClient: httpClient,
		baseURL:    constants.SpotifyConfig.APIBaseURL,
		logger:     logger,
	}
}

// NewClientWithBaseURL builds an unauthenticated client against a custom
// base URL for tests.
func NewClientWithBaseURL(httpClient *http.Client, baseURL string, logger *zap.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		logger:     logger,
	}
}

type searchResponse struct {
	Tracks struct {
		Items []struct {
			Name       string `json:"name"`
			Popularity int    `json:"popularity"`
		} `json:"items"`
	} `json:"tracks"`
}

// TrackPopularity searches the song on the Italian market and returns the
// highest popularity among the results. Search ranking sometimes puts a
// fresh low-popularity upload first, so the best-scoring version wins.
// Errors are logged and yield nil.
func (c *Client) TrackPopularity(ctx context.Context, artist, song string) *int {
	if c == nil {
		return nil
	}

	params := url.Values{}
	params.Set("q", fmt.Sprintf("track:%s artist:%s", song, artist))
	params.Set("type", "track")
	params.Set("limit", strconv.Itoa(constants.SpotifyConfig.SearchLimit))
	params.Set("market", constants.SpotifyConfig.Market)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		c.logger.Error("Spotify request build failed", zap.Error(err))
		return nil
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Spotify search failed",
			zap.String("artist", artist),
			zap.String("song", song),
			zap.Error(err),
		)
		return nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("Spotify response read failed", zap.Error(err))
		return nil
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Spotify search returned error status",
			zap.Int("status", resp.StatusCode),
			zap.String("artist", artist),
		)
		return nil
	}

	var search searchResponse
	if err := json.Unmarshal(body, &search); err != nil {
		c.logger.Error("Spotify response did not parse", zap.Error(err))
		return nil
	}

	if len(search.Tracks.Items) == 0 {
		c.logger.Debug("No Spotify results",
			zap.String("artist", artist),
			zap.String("song", song),
		)
		return nil
	}

	best := search.Tracks.Items[0].Popularity
	for _, item := range search.Tracks.Items[1:] {
		if item.Popularity > best {
			best = item.Popularity
		}
	}

	return &best
}
