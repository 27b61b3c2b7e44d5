package domain

// Report statuses as returned by the reports API.
const (
	ReportStatusQueued     = "queued"
	ReportStatusProcessing = "processing"
	ReportStatusRunning    = "running"
	ReportStatusCompleted  = "completed"
	ReportStatusFailed     = "failed"
)

// Report is one generated report as listed by the reports API.
type Report struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Time  string `json:"time"`
}
