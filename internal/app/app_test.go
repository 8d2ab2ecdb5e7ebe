package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/basketball-roster/internal/config"
	"github.com/riskibarqy/basketball-roster/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/basketball-roster/internal/platform/logging"
)

func memoryConfig() config.Config {
	return config.Config{
		AppEnv:             config.EnvDev,
		ServiceName:        "basketball-roster-api",
		HTTPAddr:           ":0",
		StorageDriver:      config.StorageMemory,
		DBSeedDemo:         true,
		CacheEnabled:       true,
		CacheTTL:           time.Minute,
		CORSAllowedOrigins: []string{"*"},
		AnubisBaseURL:      "http://127.0.0.1:1",
		AnubisTimeout:      time.Second,
	}
}

func TestNewHTTPServer_MemoryStorageServesSeededScoreboard(t *testing.T) {
	srv, cleanup, err := NewHTTPServer(context.Background(), memoryConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("build server: %v", err)
	}
	t.Cleanup(func() {
		if err := cleanup(); err != nil {
			t.Fatalf("cleanup: %v", err)
		}
	})

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/scoreboard", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body struct {
		Data struct {
			Teams   []map[string]any `json:"teams"`
			Players []map[string]any `json:"players"`
		} `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(body.Data.Teams) != len(memory.SeedTeams()) {
		t.Fatalf("expected %d seeded teams, got %d", len(memory.SeedTeams()), len(body.Data.Teams))
	}
	if len(body.Data.Players) != len(memory.SeedPlayers()) {
		t.Fatalf("expected %d seeded players, got %d", len(memory.SeedPlayers()), len(body.Data.Players))
	}
}

func TestNewHTTPServer_WithoutSeedStartsEmpty(t *testing.T) {
	cfg := memoryConfig()
	cfg.DBSeedDemo = false
	cfg.CacheEnabled = false

	srv, _, err := NewHTTPServer(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("build server: %v", err)
	}

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/scoreboard", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestNewHTTPServer_RequiresAddr(t *testing.T) {
	cfg := memoryConfig()
	cfg.HTTPAddr = ""

	if _, _, err := NewHTTPServer(context.Background(), cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for empty http addr")
	}
}

func TestNewHTTPServer_ProtectedRoutesNeedToken(t *testing.T) {
	srv, _, err := NewHTTPServer(context.Background(), memoryConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("build server: %v", err)
	}

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/players", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}
