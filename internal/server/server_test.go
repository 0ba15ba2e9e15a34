package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/liturgica/lectern/internal/export"
	"github.com/liturgica/lectern/internal/home"
	"github.com/liturgica/lectern/internal/server/endpoints"
)

func waitForServer(ctx context.Context, baseURL string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		req, err := http.NewRequestWithContext(ctx, "GET", baseURL+"/health", nil)
		if err != nil {
			return err
		}
		resp, err := http.DefaultClient.Do(req)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(100 * time.Millisecond):
		}
	}
	return fmt.Errorf("server at %s not ready after %s", baseURL, timeout)
}

func postJSON(t *testing.T, url string, body any, out any) int {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response from %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func TestServer_Lifecycle(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	homeDir, err := home.New(t.TempDir())
	if err != nil {
		t.Fatalf("home.New() error = %v", err)
	}

	port := 18666
	srv, err := New(Config{
		Host:    "127.0.0.1",
		Port:    port,
		HomeDir: homeDir,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	serverErr := make(chan error, 1)
	serverCtx, serverCancel := context.WithCancel(ctx)
	go func() {
		serverErr <- srv.Start(serverCtx)
	}()

	baseURL := fmt.Sprintf("http://127.0.0.1:%d", port)
	if err := waitForServer(ctx, baseURL, 10*time.Second); err != nil {
		serverCancel()
		t.Fatalf("server did not start: %v", err)
	}

	t.Run("health_endpoint", func(t *testing.T) {
		resp, err := http.Get(baseURL + "/health")
		if err != nil {
			t.Fatalf("health check failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Errorf("health status = %d, want %d", resp.StatusCode, http.StatusOK)
		}

		var health endpoints.HealthResponse
		if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if health.Status != "ok" {
			t.Errorf("health.Status = %q, want %q", health.Status, "ok")
		}
	})

	t.Run("is_running", func(t *testing.T) {
		if !srv.IsRunning() {
			t.Error("IsRunning() = false, want true")
		}
	})

	var presentationID string
	t.Run("create_presentation", func(t *testing.T) {
		var created struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		}
		status := postJSON(t, baseURL+"/api/presentations", map[string]string{
			"title": "Messe de Noël",
			"date":  "2025-12-25",
		}, &created)
		if status != http.StatusCreated {
			t.Fatalf("create status = %d, want %d", status, http.StatusCreated)
		}
		if created.ID == "" {
			t.Fatal("created presentation has no ID")
		}
		presentationID = created.ID
	})

	t.Run("add_reading_and_song", func(t *testing.T) {
		status := postJSON(t, baseURL+"/api/presentations/"+presentationID+"/readings", map[string]string{
			"title":     "Évangile de Jésus Christ selon saint Luc",
			"reference": "Lc 2, 1-14",
			"body":      "En ces jours-là, parut un édit de l'empereur Auguste.",
		}, nil)
		if status != http.StatusCreated {
			t.Fatalf("add reading status = %d, want %d", status, http.StatusCreated)
		}

		status = postJSON(t, baseURL+"/api/presentations/"+presentationID+"/songs", map[string]string{
			"title":    "Il est né le divin enfant",
			"lyrics":   "R/ Il est né le divin enfant,\nJouez hautbois, résonnez musettes.",
			"category": "entrance",
		}, nil)
		if status != http.StatusCreated {
			t.Fatalf("add song status = %d, want %d", status, http.StatusCreated)
		}
	})

	t.Run("preview_slides", func(t *testing.T) {
		resp, err := http.Get(baseURL + "/api/presentations/" + presentationID + "/slides")
		if err != nil {
			t.Fatalf("slides request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("slides status = %d, want %d", resp.StatusCode, http.StatusOK)
		}
		var preview endpoints.SlidesResponse
		if err := json.NewDecoder(resp.Body).Decode(&preview); err != nil {
			t.Fatalf("failed to decode slides: %v", err)
		}
		if preview.Count < 3 {
			t.Errorf("slide count = %d, want at least 3 (title + reading + song)", preview.Count)
		}
	})

	t.Run("export_roundtrip", func(t *testing.T) {
		var rec export.Record
		status := postJSON(t, baseURL+"/api/presentations/"+presentationID+"/export", endpoints.ExportRequest{}, &rec)
		if status != http.StatusAccepted {
			t.Fatalf("export status = %d, want %d", status, http.StatusAccepted)
		}

		deadline := time.Now().Add(10 * time.Second)
		for rec.Status != export.StatusCompleted && rec.Status != export.StatusFailed {
			if time.Now().After(deadline) {
				t.Fatalf("export job stuck in status %q", rec.Status)
			}
			time.Sleep(50 * time.Millisecond)
			resp, err := http.Get(baseURL + "/api/exports/" + rec.ID)
			if err != nil {
				t.Fatalf("export status request failed: %v", err)
			}
			err = json.NewDecoder(resp.Body).Decode(&rec)
			resp.Body.Close()
			if err != nil {
				t.Fatalf("failed to decode export record: %v", err)
			}
		}
		if rec.Status != export.StatusCompleted {
			t.Fatalf("export failed: %s", rec.Error)
		}
		if rec.Filename == "" {
			t.Error("completed export has no filename")
		}

		resp, err := http.Get(baseURL + "/api/exports/" + rec.ID + "/download")
		if err != nil {
			t.Fatalf("download request failed: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("download status = %d, want %d", resp.StatusCode, http.StatusOK)
		}
		if ct := resp.Header.Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.presentationml.presentation" {
			t.Errorf("download Content-Type = %q", ct)
		}
	})

	serverCancel()
	select {
	case err := <-serverErr:
		if err != nil {
			t.Errorf("Start() returned error: %v", err)
		}
	case <-time.After(35 * time.Second):
		t.Error("server did not shut down in time")
	}

	if srv.IsRunning() {
		t.Error("IsRunning() = true after shutdown")
	}
}

func TestServer_RequireInitBeforeStart(t *testing.T) {
	homeDir, err := home.New(t.TempDir())
	if err != nil {
		t.Fatalf("home.New() error = %v", err)
	}

	srv, err := New(Config{HomeDir: homeDir})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	// Not started: /api routes must report 503, /health still answers.
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest("GET", "/api/presentations", nil))
	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("pre-init /api/presentations status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}

	rr = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest("GET", "/health", nil))
	if rr.Code != http.StatusOK {
		t.Errorf("pre-init /health status = %d, want %d", rr.Code, http.StatusOK)
	}
}
