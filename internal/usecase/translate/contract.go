package translate

import (
	"context"

	"github.com/kailas-cloud/clir/internal/domain"
)

// Provider is the remote translation contract consumed by the service.
type Provider interface {
	Translate(ctx context.Context, text, src, dest string) (domain.TranslationResult, error)
	Detect(ctx context.Context, text string) (string, error)
}

// Cache stores completed translations keyed by the exact request triple.
type Cache interface {
	Lookup(ctx context.Context, text, src, dest string) (string, bool)
	Store(ctx context.Context, text, src, dest, translation string)
}
