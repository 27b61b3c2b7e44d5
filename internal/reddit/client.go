package reddit

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/sanremolab/sanremo-pulse-go/internal/cache"
	"github.com/sanremolab/sanremo-pulse-go/internal/constants"
	"github.com/sanremolab/sanremo-pulse-go/pkg/errors"
)

// Client talks to the public Reddit JSON API. All calls are sequential and
// paced with a fixed delay; a 429 triggers one long cooldown followed by a
// single retry of that call.
type Client struct {
	httpClient        *http.Client
	baseURL           string
	userAgent         string
	requestDelay      time.Duration
	rateLimitCooldown time.Duration
	cache             *cache.Service
	logger            *zap.Logger

	// sleep is substituted in tests.
	sleep func(time.Duration)
}

func NewClient(httpClient *http.Client, cacheSvc *cache.Service, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: constants.RedditConfig.Timeout}
	}
	return &Client{
		httpClient:        httpClient,
		baseURL:           constants.RedditConfig.BaseURL,
		userAgent:         constants.RedditConfig.UserAgent,
		requestDelay:      constants.RedditConfig.RequestDelay,
		rateLimitCooldown: constants.RedditConfig.RateLimitCooldown,
		cache:             cacheSvc,
		logger:            logger,
		sleep:             time.Sleep,
	}
}

// NewClientWithBaseURL builds a client against a custom base URL for tests.
func NewClientWithBaseURL(httpClient *http.Client, baseURL string, logger *zap.Logger) *Client {
	c := NewClient(httpClient, nil, logger)
	c.baseURL = baseURL
	return c
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	c.sleep(c.requestDelay)

	body, status, err := c.doOnce(ctx, path, params)
	if err != nil {
		return nil, err
	}

	if status == http.StatusTooManyRequests {
		c.logger.Warn("Reddit rate limit hit, cooling down",
			zap.String("path", path),
			zap.Duration("cooldown", c.rateLimitCooldown),
		)
		c.sleep(c.rateLimitCooldown)

		body, status, err = c.doOnce(ctx, path, params)
		if err != nil {
			return nil, err
		}
	}

	if status != http.StatusOK {
		return nil, errors.NewAPIError(fmt.Sprintf("reddit returned status %d", status), status, map[string]any{
			"path": path,
		})
	}

	return body, nil
}

func (c *Client) doOnce(ctx context.Context, path string, params url.Values) ([]byte, int, error) {
	reqURL := c.baseURL + path
	if params != nil {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}

	return body, resp.StatusCode, nil
}
