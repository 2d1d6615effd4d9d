package store

// HealthStore provides liveness check operations.
type HealthStore interface {
	// CheckConnectivity verifies database connectivity.
	CheckConnectivity() error
}
