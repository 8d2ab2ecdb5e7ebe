package observability

import (
	"strings"

	"github.com/riskibarqy/basketball-roster/internal/config"
	"github.com/riskibarqy/basketball-roster/internal/platform/logging"
	"github.com/uptrace/uptrace-go/uptrace"
)

// startUptrace installs the global OpenTelemetry providers. A nil stop means disabled.
func startUptrace(cfg config.Config, logger *logging.Logger) (stopFunc, error) {
	if !cfg.UptraceEnabled || strings.TrimSpace(cfg.UptraceDSN) == "" {
		logger.Info("uptrace disabled", "enabled", cfg.UptraceEnabled)
		return nil, nil
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
	)
	logger.Info("uptrace enabled", "service_version", cfg.ServiceVersion, "environment", cfg.AppEnv)

	return uptrace.Shutdown, nil
}
