package search

import (
	"context"

	"github.com/kailas-cloud/clir/internal/domain"
)

// Translator is the best-effort translation contract consumed by the
// pipeline. Implementations never fail: they return the input unchanged
// instead.
type Translator interface {
	Translate(ctx context.Context, text, src, dest string) string
}

// Retriever ranks the corpus against a pivot-language query.
type Retriever interface {
	Retrieve(query string, topK int) ([]domain.ScoredDocument, error)
}
