package server

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/janpfeifer/HeartPairs/internal/config"
)

// startServer runs a server on a free port until the test ends.
func startServer(t *testing.T) *ServerState {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())

	cfg := config.Default()
	cfg.WebDir = t.TempDir()
	started := make(chan *ServerState, 1)
	errCh := make(chan error, 1)
	go func() {
		errCh <- Run(ctx, cfg, started)
	}()

	var s *ServerState
	select {
	case s = <-started:
	case err := <-errCh:
		t.Fatalf("Server failed to start: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatalf("Server took too long to start")
	}

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-errCh:
			if err != nil {
				t.Errorf("Server shut down with error: %v", err)
			}
		case <-time.After(5 * time.Second):
			t.Errorf("Server took too long to shut down")
		}
	})
	return s
}

func TestServerRun(t *testing.T) {
	s := startServer(t)

	resp, err := http.Get("http://" + s.Address + "/")
	if err != nil {
		t.Fatalf("Failed to connect to server: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status OK, got %v", resp.Status)
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read body: %v", err)
	}

	// The go-app framework generates standard HTML with our title in it.
	body := string(bodyBytes)
	if !strings.Contains(body, "HeartPairs") {
		t.Errorf("Expected body to contain 'HeartPairs', got body: %s", body)
	}
}

func TestServerHealth(t *testing.T) {
	s := startServer(t)

	resp, err := http.Get("http://" + s.Address + "/health")
	if err != nil {
		t.Fatalf("Failed to connect to server: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status OK, got %v", resp.Status)
	}
	body, _ := io.ReadAll(resp.Body)
	if strings.TrimSpace(string(body)) != `{"ok":true}` {
		t.Errorf("Unexpected health body: %s", body)
	}
	if resp.Header.Get("X-Request-Id") != "" {
		t.Logf("Request id echoed: %s", resp.Header.Get("X-Request-Id"))
	}
}
