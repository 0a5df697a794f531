package metrics

import (
	"fmt"
	"regexp"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option applies a configuration option to the Manager.
type Option func(*Manager)

var namespacePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// WithNamespace replaces DefaultNamespace, e.g. to run two lobbies behind
// one Prometheus.
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithDeployment labels every series with deployment=<name>.
func WithDeployment(name string) Option {
	return func(m *Manager) { m.deployment = name }
}

// WithRefreshInterval sets how often cmd refreshes the system and session
// gauges.
func WithRefreshInterval(interval time.Duration) Option {
	return func(m *Manager) {
		if interval > 0 {
			m.refreshInterval = interval
		}
	}
}

// WithPrometheusRegistry sets a custom Prometheus registry.
func WithPrometheusRegistry(registry prometheus.Registerer) Option {
	return func(m *Manager) {
		if registry != nil {
			m.registry = registry
		}
	}
}

// Init rebuilds the package-level collectors on a fresh registry. It must run
// before anything records, typically once in main.
func Init(namespace, deployment string, refresh time.Duration) error {
	if namespace != "" && !namespacePattern.MatchString(namespace) {
		return fmt.Errorf("%w: %q", ErrInvalidNamespace, namespace)
	}
	reg := prometheus.NewRegistry()
	globalManager = NewManager(
		WithNamespace(namespace),
		WithDeployment(deployment),
		WithRefreshInterval(refresh),
		WithPrometheusRegistry(reg),
	)
	customRegistry = reg
	return nil
}
