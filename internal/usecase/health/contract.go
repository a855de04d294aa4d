package health

import "context"

// CachePinger checks translation cache backend availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}

// TranslationChecker checks translation provider availability.
type TranslationChecker interface {
	HealthCheck(ctx context.Context) error
}

// IndexChecker reports whether a retrieval index is built.
type IndexChecker interface {
	Ready() bool
}
