// Package translate orchestrates best-effort translation: cache first,
// language detection for auto-source requests, and an unchanged-input
// fallback on any provider failure. Translation must never block retrieval.
package translate

import (
	"context"

	"go.uber.org/zap"

	"github.com/kailas-cloud/clir/internal/domain"
)

// Service handles translations with caching and detect-skip semantics.
type Service struct {
	provider Provider
	cache    Cache
	logger   *zap.Logger
}

// New creates a translation service. cache may be nil to disable caching.
func New(provider Provider, cache Cache, logger *zap.Logger) *Service {
	return &Service{provider: provider, cache: cache, logger: logger}
}

// Translate converts text from src to dest. src may be domain.LangAuto.
//
// The input is returned unchanged when src and dest are the same concrete
// language, when auto-detection resolves to dest, or when the provider
// fails. The cache key is the original (text, src, dest) triple, computed
// before detection, so a repeated auto-source request skips detection too.
func (s *Service) Translate(ctx context.Context, text, src, dest string) string {
	if text == "" || (src == dest && src != domain.LangAuto) {
		return text
	}

	if s.cache != nil {
		if cached, ok := s.cache.Lookup(ctx, text, src, dest); ok {
			s.logger.Debug("Translation cache hit", zap.String("dest", dest))
			return cached
		}
	}

	resolvedSrc := src
	if src == domain.LangAuto {
		detected := s.Detect(ctx, text)
		if detected == dest {
			// Already in the target language; trust detection and skip
			// the remote call.
			return text
		}
		resolvedSrc = detected
	}

	result, err := s.provider.Translate(ctx, text, resolvedSrc, dest)
	if err != nil {
		s.logger.Warn("Translation failed, returning input unchanged",
			zap.String("src", resolvedSrc),
			zap.String("dest", dest),
			zap.Error(err))
		return text
	}

	if s.cache != nil {
		s.cache.Store(ctx, text, src, dest, result.Text)
	}
	return result.Text
}

// Detect returns the language code of text, or domain.LangAuto when
// detection fails.
func (s *Service) Detect(ctx context.Context, text string) string {
	code, err := s.provider.Detect(ctx, text)
	if err != nil {
		s.logger.Warn("Language detection failed", zap.Error(err))
		return domain.LangAuto
	}
	return code
}

// Languages returns the supported language codes mapped to names.
func (s *Service) Languages() map[string]string {
	return domain.Languages
}
