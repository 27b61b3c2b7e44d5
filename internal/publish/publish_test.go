package publish

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestPublishRunsAddCommitPush(t *testing.T) {
	var commands []string
	p := NewGitPublisher("/repo", zap.NewNop())
	p.run = func(_ context.Context, dir string, args ...string) error {
		if dir != "/repo" {
			t.Errorf("expected repo root /repo, got %s", dir)
		}
		commands = append(commands, strings.Join(args, " "))
		return nil
	}

	if err := p.Publish(context.Background(), "datasets/sanremo_serata_1.csv"); err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	want := []string{
		"add -f datasets/sanremo_serata_1.csv",
		"commit -m Sanremo serata dataset datasets/sanremo_serata_1.csv",
		"push",
	}
	if len(commands) != len(want) {
		t.Fatalf("expected %d git commands, got %v", len(want), commands)
	}
	for i, cmd := range want {
		if commands[i] != cmd {
			t.Fatalf("command %d: expected %q, got %q", i, cmd, commands[i])
		}
	}
}

func TestPublishStopsOnFirstFailure(t *testing.T) {
	var commands []string
	p := NewGitPublisher("/repo", zap.NewNop())
	p.run = func(_ context.Context, _ string, args ...string) error {
		commands = append(commands, args[0])
		if args[0] == "commit" {
			return fmt.Errorf("nothing to commit")
		}
		return nil
	}

	if err := p.Publish(context.Background(), "datasets/x.csv"); err == nil {
		t.Fatal("expected publish to fail")
	}
	if len(commands) != 2 {
		t.Fatalf("expected no push after a failed commit, got %v", commands)
	}
}

func TestRemoveIsBestEffort(t *testing.T) {
	p := NewGitPublisher("/repo", zap.NewNop())
	p.run = func(_ context.Context, _ string, args ...string) error {
		return fmt.Errorf("remote rejected")
	}

	// Must not panic or propagate: rollback failures are warnings only.
	p.Remove(context.Background(), "datasets/x.csv")
}

func TestWaitSucceedsOnceAvailable(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if hits < 3 {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("artista,brano\n"))
	}))
	defer server.Close()

	w := NewAvailabilityWaiter(server.Client(), zap.NewNop())
	w.attempts = 5
	w.sleep = func(time.Duration) {}

	if err := w.Wait(context.Background(), server.URL+"/datasets/x.csv"); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if hits != 3 {
		t.Fatalf("expected 3 polls, got %d", hits)
	}
}

func TestWaitTimesOut(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	w := NewAvailabilityWaiter(server.Client(), zap.NewNop())
	w.attempts = 3
	w.sleep = func(time.Duration) {}

	if err := w.Wait(context.Background(), server.URL+"/never.csv"); err == nil {
		t.Fatal("expected timeout error")
	}
}
