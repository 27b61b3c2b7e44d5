package report

import "github.com/sanremolab/sanremo-pulse-go/internal/domain"

type fileRef struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type createDataSourceRequest struct {
	Files []fileRef `json:"files"`
}

type createDataSourceResponse struct {
	CreatedDataOrigins []struct {
		DataSources []struct {
			ID string `json:"id"`
		} `json:"data_sources"`
	} `json:"created_data_origins"`
}

type reportParams struct {
	Language       string `json:"language"`
	Currency       string `json:"currency"`
	Prompt         string `json:"prompt"`
	DatasetInfo    string `json:"dataset_info"`
	DataProvenance bool   `json:"data_provenance"`
}

type createReportRequest struct {
	DataSourcesIDs []string     `json:"data_sources_ids"`
	Params         reportParams `json:"params"`
	ImprovePrompt  bool         `json:"improve_prompt"`
}

type createReportResponse struct {
	ID string `json:"id"`
}

type reportStatusResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type listReportsResponse struct {
	Reports []domain.Report `json:"reports"`
}

type embedResponse struct {
	EmbeddedURL string `json:"embedded_url"`
}
