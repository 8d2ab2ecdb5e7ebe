package observability

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/basketball-roster/internal/config"
	"github.com/riskibarqy/basketball-roster/internal/platform/logging"
)

type stopFunc func(context.Context) error

type component struct {
	name string
	stop stopFunc
}

// Stack owns the process-wide tracing, profiling and pprof components.
type Stack struct {
	logger     *logging.Logger
	components []component
}

// Start brings up every enabled component. Components already started are
// stopped again when a later one fails.
func Start(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Stack, error) {
	if logger == nil {
		logger = logging.Default()
	}
	s := &Stack{logger: logger}

	steps := []struct {
		name  string
		start func(config.Config, *logging.Logger) (stopFunc, error)
	}{
		{name: "uptrace", start: startUptrace},
		{name: "pyroscope", start: startPyroscope},
		{name: "pprof", start: startPprof},
	}
	for _, step := range steps {
		stop, err := step.start(cfg, logger)
		if err != nil {
			_ = s.Shutdown(ctx)
			return nil, errors.Wrapf(err, "start %s", step.name)
		}
		if stop != nil {
			s.components = append(s.components, component{name: step.name, stop: stop})
		}
	}

	return s, nil
}

// Shutdown stops components in reverse start order and reports every failure.
func (s *Stack) Shutdown(ctx context.Context) error {
	if s == nil {
		return nil
	}

	var combined error
	for i := len(s.components) - 1; i >= 0; i-- {
		c := s.components[i]
		if err := c.stop(ctx); err != nil {
			s.logger.ErrorContext(ctx, "stop observability component failed", "component", c.name, "error", err)
			combined = errors.CombineErrors(combined, errors.Wrapf(err, "stop %s", c.name))
		}
	}
	s.components = nil

	return combined
}

func (s *Stack) running() []string {
	names := make([]string, 0, len(s.components))
	for _, c := range s.components {
		names = append(names, c.name)
	}
	return names
}
