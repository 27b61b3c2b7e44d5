package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/sanremolab/sanremo-pulse-go/internal/constants"
	"github.com/sanremolab/sanremo-pulse-go/internal/domain"
	"github.com/sanremolab/sanremo-pulse-go/pkg/errors"
)

// Client talks to the reports API: data-source registration, report
// creation, status polling and embed-URL lookup. The API key is optional;
// when empty no auth header is sent.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *zap.Logger
}

func NewClient(httpClient *http.Client, baseURL, apiKey string, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: constants.ReportAPIConfig.Timeout}
	}
	if baseURL == "" {
		baseURL = constants.ReportAPIConfig.DefaultBaseURL
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		logger:     logger,
	}
}

func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, int, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, 0, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}

	return respBody, resp.StatusCode, nil
}

// CreateDataSource registers a publicly reachable file with the API and
// returns the created data-source id. A 201 response that lacks the nested
// created_data_origins/data_sources ids is a fatal schema mismatch.
func (c *Client) CreateDataSource(ctx context.Context, fileURL string) (string, error) {
	name := fileURL
	if idx := strings.LastIndex(fileURL, "/"); idx != -1 {
		name = fileURL[idx+1:]
	}

	payload := createDataSourceRequest{Files: []fileRef{{Name: name, URL: fileURL}}}
	body, status, err := c.do(ctx, http.MethodPost, "/v1/data-sources/file/", payload)
	if err != nil {
		return "", err
	}
	if status != http.StatusCreated {
		return "", errors.NewAPIError(
			fmt.Sprintf("data source creation failed (status %d)", status),
			status,
			map[string]any{"body": string(body)},
		)
	}

	var resp createDataSourceResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", errors.NewSchemaError("data source response did not parse", map[string]any{
			"body": string(body),
		})
	}
	if len(resp.CreatedDataOrigins) == 0 {
		return "", errors.NewSchemaError("no created_data_origins in response", map[string]any{
			"body": string(body),
		})
	}
	if len(resp.CreatedDataOrigins[0].DataSources) == 0 {
		return "", errors.NewSchemaError("no data_sources in response", map[string]any{
			"body": string(body),
		})
	}

	id := resp.CreatedDataOrigins[0].DataSources[0].ID
	c.logger.Info("Data source created", zap.String("id", id), zap.String("file", name))
	return id, nil
}

// CreateReport queues a report over a data source and returns the report id.
func (c *Client) CreateReport(ctx context.Context, dataSourceID string, serata int) (string, error) {
	payload := createReportRequest{
		DataSourcesIDs: []string{dataSourceID},
		Params: reportParams{
			Language:       "italian",
			Currency:       "EUR",
			Prompt:         buildPrompt(serata),
			DatasetInfo:    "",
			DataProvenance: false,
		},
		ImprovePrompt: false,
	}

	body, status, err := c.do(ctx, http.MethodPost, "/v1/reports/", payload)
	if err != nil {
		return "", err
	}
	if status != http.StatusCreated {
		return "", errors.NewAPIError(
			fmt.Sprintf("report creation failed (status %d)", status),
			status,
			map[string]any{"body": string(body)},
		)
	}

	var resp createReportResponse
	if err := json.Unmarshal(body, &resp); err != nil || resp.ID == "" {
		return "", errors.NewSchemaError("report response missing id", map[string]any{
			"body": string(body),
		})
	}

	c.logger.Info("Report queued", zap.String("id", resp.ID), zap.Int("serata", serata))
	return resp.ID, nil
}

// GetReportStatus returns the report's current status string.
func (c *Client) GetReportStatus(ctx context.Context, id string) (string, error) {
	body, status, err := c.do(ctx, http.MethodGet, "/v1/reports/"+id, nil)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", errors.NewAPIError(
			fmt.Sprintf("status check failed (status %d)", status),
			status,
			map[string]any{"id": id},
		)
	}

	var resp reportStatusResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", errors.NewSchemaError("status response did not parse", map[string]any{
			"body": string(body),
		})
	}

	return resp.Status, nil
}

// ListReports fetches every report known to the API.
func (c *Client) ListReports(ctx context.Context) ([]domain.Report, error) {
	body, status, err := c.do(ctx, http.MethodGet, "/v1/reports/", nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, errors.NewAPIError(
			fmt.Sprintf("report listing failed (status %d)", status),
			status,
			nil,
		)
	}

	var resp listReportsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.NewSchemaError("report list did not parse", map[string]any{
			"body": string(body),
		})
	}

	return resp.Reports, nil
}

// GetEmbedURL fetches the shareable embed URL for a report.
func (c *Client) GetEmbedURL(ctx context.Context, id string) (string, error) {
	body, status, err := c.do(ctx, http.MethodGet, "/v1/reports/"+id+"?format=embed", nil)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", errors.NewAPIError(
			fmt.Sprintf("embed URL fetch failed (status %d)", status),
			status,
			map[string]any{"id": id},
		)
	}

	var resp embedResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", errors.NewSchemaError("embed response did not parse", map[string]any{
			"body": string(body),
		})
	}

	return resp.EmbeddedURL, nil
}

func buildPrompt(serata int) string {
	return fmt.Sprintf(`Analizza i dati di discussione Reddit relativi al Festival di Sanremo per la serata %d.

I dati provengono dai subreddit r/italy e r/italyMusic e contengono, per ogni artista in gara:
- reddit_mentions: quante volte l'artista viene menzionato in post e commenti
- reddit_score: somma degli upvote dei post in cui l'artista è citato (proxy di rilevanza/gradimento)
- reddit_comments: numero totale di commenti nei thread in cui appare l'artista
- sentiment_score: punteggio di sentiment testuale da -1.0 (molto negativo) a +1.0 (molto positivo)
- sentiment_label: etichetta sintetica (positivo / neutro / negativo)

Analizza:
- Chi è l'artista più discusso e perché potrebbe essere così
- La relazione tra volume di discussione (mentions + comments) e sentiment
- Quali artisti polarizzano di più l'opinione pubblica online
- Chi ha il sentiment più positivo e chi il più negativo, con possibili interpretazioni
- Eventuali pattern interessanti o sorprese rispetto alle aspettative
- Una previsione su chi potrebbe vincere o fare meglio secondo la "voce del pubblico" Reddit

Il report deve essere in italiano, narrativo e ricco di insight, pensato per un lettore curioso di musica e cultura pop italiana.`, serata)
}
