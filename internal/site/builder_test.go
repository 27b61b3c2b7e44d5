package site

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/sanremolab/sanremo-pulse-go/internal/domain"
)

type fakeReports struct {
	statuses    []string
	statusCalls int
	reports     []domain.Report
	listErr     error
	embedURLs   map[string]string
	embedErrs   map[string]error
}

func (f *fakeReports) GetReportStatus(_ context.Context, _ string) (string, error) {
	if f.statusCalls < len(f.statuses) {
		status := f.statuses[f.statusCalls]
		f.statusCalls++
		return status, nil
	}
	return domain.ReportStatusCompleted, nil
}

func (f *fakeReports) ListReports(_ context.Context) ([]domain.Report, error) {
	return f.reports, f.listErr
}

func (f *fakeReports) GetEmbedURL(_ context.Context, id string) (string, error) {
	if err, ok := f.embedErrs[id]; ok {
		return "", err
	}
	return f.embedURLs[id], nil
}

func newTestBuilder(reports *fakeReports) *Builder {
	b := NewBuilder(reports, nil, zap.NewNop())
	b.sleep = func(time.Duration) {}
	return b
}

func TestBuildRendersSortedReportLinks(t *testing.T) {
	reports := &fakeReports{
		reports: []domain.Report{
			{ID: "rep-1", Title: "Serata 1", Time: "2026-02-10T23:00:00Z"},
			{ID: "rep-2", Title: "Serata 2", Time: "2026-02-11T23:00:00Z"},
		},
		embedURLs: map[string]string{
			"rep-1": "https://app.example.com/embed/rep-1",
			"rep-2": "https://app.example.com/embed/rep-2",
		},
	}

	out := filepath.Join(t.TempDir(), "index.html")
	b := newTestBuilder(reports)
	if err := b.Build(context.Background(), "", out); err != nil {
		t.Fatalf("build failed: %v", err)
	}

	html, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("page not written: %v", err)
	}
	page := string(html)

	// Newest report leads both the hero CTA and the list.
	first := strings.Index(page, "embed/rep-2")
	second := strings.Index(page, "embed/rep-1")
	if first == -1 || second == -1 {
		t.Fatalf("expected both report links, got:\n%s", page)
	}
	if first > second {
		t.Fatal("expected the newest report to come first")
	}
	if !strings.Contains(page, "Mercoledì 11 febbraio 2026") {
		t.Fatalf("expected Italian date formatting, got:\n%s", page)
	}
}

func TestBuildSkipsReportsWithoutEmbedURL(t *testing.T) {
	reports := &fakeReports{
		reports: []domain.Report{
			{ID: "rep-1", Time: "2026-02-10T23:00:00Z"},
			{ID: "rep-2", Time: "2026-02-11T23:00:00Z"},
		},
		embedURLs: map[string]string{"rep-1": "https://app.example.com/embed/rep-1"},
		embedErrs: map[string]error{"rep-2": fmt.Errorf("not ready")},
	}

	out := filepath.Join(t.TempDir(), "index.html")
	if err := newTestBuilder(reports).Build(context.Background(), "", out); err != nil {
		t.Fatalf("build failed: %v", err)
	}

	html, _ := os.ReadFile(out)
	if strings.Contains(string(html), "rep-2") {
		t.Fatal("report without embed URL should be skipped")
	}
	if !strings.Contains(string(html), "embed/rep-1") {
		t.Fatal("surviving report should be linked")
	}
}

func TestBuildEmptyPageWhenListingFails(t *testing.T) {
	reports := &fakeReports{listErr: fmt.Errorf("api down")}

	out := filepath.Join(t.TempDir(), "index.html")
	if err := newTestBuilder(reports).Build(context.Background(), "", out); err != nil {
		t.Fatalf("a listing failure must still produce a page, got %v", err)
	}

	html, _ := os.ReadFile(out)
	if !strings.Contains(string(html), "Nessun report disponibile") {
		t.Fatalf("expected empty-state message, got:\n%s", html)
	}
}

func TestWaitForCompletionPollsUntilCompleted(t *testing.T) {
	reports := &fakeReports{
		statuses: []string{
			domain.ReportStatusQueued,
			domain.ReportStatusProcessing,
			domain.ReportStatusRunning,
			domain.ReportStatusCompleted,
		},
	}

	b := newTestBuilder(reports)
	if !b.waitForCompletion(context.Background(), "rep-1") {
		t.Fatal("expected completion")
	}
	if reports.statusCalls != 4 {
		t.Fatalf("expected 4 polls, got %d", reports.statusCalls)
	}
}

func TestWaitForCompletionFailedReport(t *testing.T) {
	reports := &fakeReports{statuses: []string{domain.ReportStatusFailed}}
	b := newTestBuilder(reports)
	if b.waitForCompletion(context.Background(), "rep-1") {
		t.Fatal("expected failure result")
	}
}

func TestWaitForCompletionTimesOut(t *testing.T) {
	reports := &fakeReports{
		statuses: []string{domain.ReportStatusQueued, domain.ReportStatusQueued},
	}

	b := newTestBuilder(reports)
	clock := time.Date(2026, 2, 10, 21, 0, 0, 0, time.UTC)
	b.now = func() time.Time {
		clock = clock.Add(20 * time.Minute)
		return clock
	}

	if b.waitForCompletion(context.Background(), "rep-1") {
		t.Fatal("expected timeout")
	}
}

func TestFormatItalianDate(t *testing.T) {
	if got := formatItalianDate("2026-02-10T23:00:00Z"); got != "Martedì 10 febbraio 2026" {
		t.Fatalf("unexpected date: %s", got)
	}
	if got := formatItalianDate("not-a-date"); got != "not-a-date" {
		t.Fatalf("unparseable input should pass through, got %s", got)
	}
}
