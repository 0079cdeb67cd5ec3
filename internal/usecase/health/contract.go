package health

import "context"

// IndexReadiness reports whether a retrieval index came up at startup.
type IndexReadiness interface {
	Ready() bool
}

// EmbeddingChecker checks embedding provider availability.
type EmbeddingChecker interface {
	HealthCheck(ctx context.Context) error
}
