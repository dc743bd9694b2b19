package app

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/riskibarqy/segment-leaderboard/external/strava"
	"github.com/riskibarqy/segment-leaderboard/internal/config"
	"github.com/riskibarqy/segment-leaderboard/internal/platform/logging"
)

func testConfig() config.Config {
	return config.Config{
		HTTPAddr:           ":0",
		StravaAccessToken:  "token",
		StravaEffortFilter: strava.EffortFilterUpstream,
		DefaultSegmentID:   "8428538",
		MetricsEnabled:     true,
	}
}

func TestNewHTTPServer_ServesHealthzAndMetrics(t *testing.T) {
	srv, err := NewHTTPServer(testConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("new http server: %v", err)
	}

	for _, path := range []string{"/healthz", "/metrics", "/v1/groups/1"} {
		rec := httptest.NewRecorder()
		srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s: expected 200, got %d", path, rec.Code)
		}
	}
}

func TestNewHTTPServer_RequiresAddr(t *testing.T) {
	cfg := testConfig()
	cfg.HTTPAddr = ""
	if _, err := NewHTTPServer(cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for empty addr")
	}
}

func TestNewHTTPServer_GroupsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "groups.yaml")
	body := "groups:\n  - id: 7\n    name: Tuesday Club\n    athletes: [10, 20]\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write groups file: %v", err)
	}

	cfg := testConfig()
	cfg.GroupsFile = path
	srv, err := NewHTTPServer(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("new http server: %v", err)
	}

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/groups/7", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected configured group 7, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/groups/1", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected built-in group to be replaced, got %d", rec.Code)
	}

	cfg.GroupsFile = filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := NewHTTPServer(cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for missing groups file")
	}
}
