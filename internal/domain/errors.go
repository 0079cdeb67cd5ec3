package domain

import "errors"

var (
	// ErrIndexNotReady signals that a retrieval index failed to load at startup.
	// Queries against an unready index return this instead of panicking; the
	// host process keeps serving the subsystems that did come up.
	ErrIndexNotReady = errors.New("index not initialized")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
)
