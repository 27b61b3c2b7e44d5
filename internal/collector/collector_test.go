package collector

import (
	"context"
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	youtubeapi "google.golang.org/api/youtube/v3"

	"github.com/sanremolab/sanremo-pulse-go/internal/aggregate"
	"github.com/sanremolab/sanremo-pulse-go/internal/dataset"
	"github.com/sanremolab/sanremo-pulse-go/internal/domain"
	"github.com/sanremolab/sanremo-pulse-go/internal/sentiment"
	"github.com/sanremolab/sanremo-pulse-go/internal/spotify"
	"github.com/sanremolab/sanremo-pulse-go/internal/youtube"
)

func TestCollectSpotifyOnly(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"tracks":{"items":[{"name":"Song","popularity":64}]}}`))
	}))
	defer server.Close()

	dir := t.TempDir()
	spotifyClient := spotify.NewClientWithBaseURL(server.Client(), server.URL, zap.NewNop())
	c := New(spotifyClient, nil, nil, aggregate.New(sentiment.NewItalianScorer()), dir, zap.NewNop())
	c.sleep = func(time.Duration) {}

	contestants := []domain.Contestant{
		{Artist: "Mahmood", Song: "Song"},
		{Artist: "Angelina", Song: "Brano"},
	}

	result, err := c.Collect(context.Background(), 1, contestants, "")
	if err != nil {
		t.Fatalf("collect failed: %v", err)
	}
	if result.Variant != dataset.VariantSpotify {
		t.Fatalf("expected Spotify-only variant, got %v", result.Variant)
	}
	if result.RelPath != filepath.Join("datasets", "sanremo_serata_1.csv") {
		t.Fatalf("unexpected rel path: %s", result.RelPath)
	}

	f, err := os.Open(filepath.Join(dir, result.RelPath))
	if err != nil {
		t.Fatalf("dataset not written: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("dataset not readable: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(records))
	}
	// Without Reddit metrics every row ties; contestant order is preserved.
	if records[1][0] != "Mahmood" || records[2][0] != "Angelina" {
		t.Fatalf("unexpected row order: %v", records)
	}
	if records[1][2] != "64" {
		t.Fatalf("expected popularity 64, got %q", records[1][2])
	}
}

func TestCollectWithDisabledSourcesLeavesCellsEmpty(t *testing.T) {
	dir := t.TempDir()
	c := New(nil, nil, nil, aggregate.New(sentiment.NewItalianScorer()), dir, zap.NewNop())
	c.sleep = func(time.Duration) {}

	result, err := c.Collect(context.Background(), 2, []domain.Contestant{{Artist: "Mahmood", Song: "Song"}}, "")
	if err != nil {
		t.Fatalf("collect failed: %v", err)
	}

	f, _ := os.Open(filepath.Join(dir, result.RelPath))
	defer f.Close()
	records, _ := csv.NewReader(f).ReadAll()
	// spotify_popularity and the three YouTube counters all stay empty.
	for col := 2; col <= 5; col++ {
		if records[1][col] != "" {
			t.Fatalf("expected empty cell at column %d, got %q", col, records[1][col])
		}
	}
}

func TestCollectAttachesYouTubeStats(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/youtube/v3/search":
			w.Write([]byte(`{"items":[{"id":{"videoId":"vid1"}}]}`))
		case "/youtube/v3/videos":
			w.Write([]byte(`{"items":[{"statistics":{"viewCount":"9000","likeCount":"800","commentCount":"70"}}]}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	service, err := youtubeapi.NewService(context.Background(),
		option.WithAPIKey("test-key"),
		option.WithEndpoint(server.URL),
	)
	if err != nil {
		t.Fatalf("service init failed: %v", err)
	}

	dir := t.TempDir()
	ytClient := youtube.NewClientWithService(service, zap.NewNop())
	c := New(nil, ytClient, nil, aggregate.New(sentiment.NewItalianScorer()), dir, zap.NewNop())
	c.sleep = func(time.Duration) {}

	result, err := c.Collect(context.Background(), 3, []domain.Contestant{{Artist: "Mahmood", Song: "Song"}}, "")
	if err != nil {
		t.Fatalf("collect failed: %v", err)
	}

	f, _ := os.Open(filepath.Join(dir, result.RelPath))
	defer f.Close()
	records, _ := csv.NewReader(f).ReadAll()
	if records[1][3] != "9000" || records[1][4] != "800" || records[1][5] != "70" {
		t.Fatalf("unexpected YouTube cells: %v", records[1])
	}
}
