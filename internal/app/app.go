package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/riskibarqy/basketball-roster/internal/config"
	"github.com/riskibarqy/basketball-roster/internal/infrastructure/account/anubis"
	"github.com/riskibarqy/basketball-roster/internal/interfaces/httpapi"
	idgen "github.com/riskibarqy/basketball-roster/internal/platform/id"
	"github.com/riskibarqy/basketball-roster/internal/platform/logging"
	"github.com/riskibarqy/basketball-roster/internal/platform/resilience"
	"github.com/riskibarqy/basketball-roster/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// NewHTTPServer wires repositories, services and the router. The returned cleanup releases storage.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	rosterSvc := usecase.NewRosterService(
		repos.teams,
		repos.players,
		idgen.NewUUIDGenerator(),
		usecase.RosterOptions{RequireOwnedTeam: cfg.RosterRequireOwnedTeam},
		logger,
	)
	scoreboardSvc := usecase.NewScoreboardService(repos.teams, repos.players)

	anubisClient := anubis.NewClient(
		&http.Client{
			Timeout:   cfg.AnubisTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		anubis.Config{
			BaseURL:        cfg.AnubisBaseURL,
			IntrospectPath: cfg.AnubisIntrospectURL,
			AdminKey:       cfg.AnubisAdminKey,
			TokenCacheTTL:  cfg.AnubisTokenCacheTTL,
			Circuit: resilience.CircuitBreakerConfig{
				Enabled:          cfg.AnubisCircuitEnabled,
				FailureThreshold: cfg.AnubisCircuitFailureCount,
				OpenTimeout:      cfg.AnubisCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.AnubisCircuitHalfOpenMaxReq,
			},
		},
		logger,
	)

	handler := httpapi.NewHandler(rosterSvc, scoreboardSvc, logger)
	router := httpapi.NewRouter(handler, anubisClient, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, repos.close, nil
}
