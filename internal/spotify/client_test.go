package spotify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func TestTrackPopularityPicksMostPopularResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("market"); got != "IT" {
			t.Errorf("expected market IT, got %s", got)
		}
		w.Write([]byte(`{"tracks":{"items":[
			{"name":"Song - Fresh Upload","popularity":12},
			{"name":"Song","popularity":81},
			{"name":"Song (Live)","popularity":44}
		]}}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL(server.Client(), server.URL, zap.NewNop())
	pop := client.TrackPopularity(context.Background(), "Mahmood", "Song")
	if pop == nil {
		t.Fatal("expected popularity, got nil")
	}
	if *pop != 81 {
		t.Fatalf("expected 81, got %d", *pop)
	}
}

func TestTrackPopularityNoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"tracks":{"items":[]}}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL(server.Client(), server.URL, zap.NewNop())
	if pop := client.TrackPopularity(context.Background(), "Sconosciuto", "Inedito"); pop != nil {
		t.Fatalf("expected nil for empty results, got %d", *pop)
	}
}

func TestTrackPopularityErrorsYieldNil(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClientWithBaseURL(server.Client(), server.URL, zap.NewNop())
	if pop := client.TrackPopularity(context.Background(), "Mahmood", "Song"); pop != nil {
		t.Fatalf("expected nil on error, got %d", *pop)
	}
}

func TestNilClientIsDisabledSource(t *testing.T) {
	var client *Client
	if pop := client.TrackPopularity(context.Background(), "Mahmood", "Song"); pop != nil {
		t.Fatal("nil client must return nil popularity")
	}
}

func TestNewClientWithoutCredentialsIsNil(t *testing.T) {
	if c := NewClient(context.Background(), "", "", zap.NewNop()); c != nil {
		t.Fatal("expected nil client without credentials")
	}
	if c := NewClient(context.Background(), "id", "", zap.NewNop()); c != nil {
		t.Fatal("expected nil client with partial credentials")
	}
}
