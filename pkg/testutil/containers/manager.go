//go:build integration

// Package containers manages shared test containers for integration
// suites. Containers are started once per test binary and shared across
// suites; Ryuk reaps them when the run ends.
package containers

import "sync"

// Manager owns the singleton containers for a test run.
type Manager struct {
	mu       sync.Mutex
	postgres *PostgresContainer
	redis    *RedisContainer
}

var manager = &Manager{}

// GetManager returns the process-wide container manager.
func GetManager() *Manager {
	return manager
}
