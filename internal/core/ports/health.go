package ports

import "context"

// HealthChecker verifies an external dependency is reachable.
type HealthChecker interface {
	// Ping returns nil if the dependency is healthy.
	Ping(ctx context.Context) error
	// Name identifies the dependency ("postgresql", "redis").
	Name() string
}
