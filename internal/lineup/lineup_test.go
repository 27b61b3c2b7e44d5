package lineup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

const lineupHTML = `<html><body>
<table class="wikitable">
<tbody>
<tr><th>Artista</th><th>Brano</th></tr>
<tr><td>Mahmood</td><td>"Specchi"[1]</td></tr>
<tr><td>Elodie[2]</td><td>«Vertigine nera»</td></tr>
<tr><td></td><td>orphan</td></tr>
</tbody>
</table>
</body></html>`

func TestProviderPrefersLineupFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lineup.yaml")
	content := `default:
  - { artist: "Artista Uno", song: "Canzone Uno" }
serate:
  4:
    - { artist: "Ospite Cover", song: "Classico" }
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	p := NewProvider(path, nil, zap.NewNop())

	contestants, err := p.Contestants(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(contestants) != 1 || contestants[0].Artist != "Artista Uno" {
		t.Fatalf("expected default list, got %+v", contestants)
	}

	// Serata 4 carries an override.
	contestants, err = p.Contestants(context.Background(), 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(contestants) != 1 || contestants[0].Artist != "Ospite Cover" {
		t.Fatalf("expected serata override, got %+v", contestants)
	}
}

func TestProviderFallsBackToEmbeddedLineup(t *testing.T) {
	p := NewProvider(filepath.Join(t.TempDir(), "missing.yaml"), nil, zap.NewNop())

	contestants, err := p.Contestants(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(contestants) == 0 {
		t.Fatal("embedded lineup should never be empty")
	}
}

func TestScraperParsesWikitable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(lineupHTML))
	}))
	defer server.Close()

	s := NewScraper(server.URL, zap.NewNop())
	contestants, err := s.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(contestants) != 2 {
		t.Fatalf("expected 2 contestants, got %d: %+v", len(contestants), contestants)
	}
	if contestants[0].Artist != "Mahmood" || contestants[0].Song != "Specchi" {
		t.Fatalf("footnotes and quotes should be stripped, got %+v", contestants[0])
	}
	if contestants[1].Artist != "Elodie" || contestants[1].Song != "Vertigine nera" {
		t.Fatalf("guillemets should be stripped, got %+v", contestants[1])
	}
}

func TestScraperStructureChanged(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><body><p>layout redesign</p></body></html>"))
	}))
	defer server.Close()

	s := NewScraper(server.URL, zap.NewNop())
	_, err := s.Fetch(context.Background())
	if err == nil {
		t.Fatal("expected error on unparseable page")
	}
	if !IsStructureError(err) {
		t.Fatalf("expected StructureChangedError, got %T", err)
	}
}

func TestProviderScraperFallbackOnFileError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(lineupHTML))
	}))
	defer server.Close()

	p := NewProvider(
		filepath.Join(t.TempDir(), "missing.yaml"),
		NewScraper(server.URL, zap.NewNop()),
		zap.NewNop(),
	)

	contestants, err := p.Contestants(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(contestants) != 2 {
		t.Fatalf("expected scraped lineup, got %+v", contestants)
	}
}
