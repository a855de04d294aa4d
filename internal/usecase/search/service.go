// Package search runs the cross-language query pipeline: validate, translate
// the query to the pivot language, rank the corpus, and translate the top
// hit back to the display language.
package search

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/clir/internal/domain"
	"github.com/kailas-cloud/clir/internal/metrics"
)

// Options configures the pipeline languages and the default result count.
type Options struct {
	PivotLang   string // language the corpus is indexed in
	DisplayLang string // language the top hit is translated back to; "" disables
	DefaultTopK int
}

// Service executes cross-language queries.
type Service struct {
	translator Translator
	retriever  Retriever
	opts       Options
	logger     *zap.Logger
}

// New creates a query service.
func New(translator Translator, retriever Retriever, opts Options, logger *zap.Logger) *Service {
	if opts.PivotLang == "" {
		opts.PivotLang = "en"
	}
	if opts.DefaultTopK <= 0 {
		opts.DefaultTopK = 5
	}
	return &Service{
		translator: translator,
		retriever:  retriever,
		opts:       opts,
		logger:     logger,
	}
}

// Search runs the full pipeline for one query. topK <= 0 selects the
// configured default. Empty queries fail with domain.ErrEmptyQuery before
// any translation, retrieval or query logging happens.
func (s *Service) Search(ctx context.Context, rawQuery string, topK int) (domain.QueryResult, error) {
	query := strings.TrimSpace(rawQuery)
	if query == "" {
		metrics.QueriesTotal.WithLabelValues("invalid").Inc()
		return domain.QueryResult{}, domain.ErrEmptyQuery
	}
	if topK <= 0 {
		topK = s.opts.DefaultTopK
	}

	translated := s.translator.Translate(ctx, query, domain.LangAuto, s.opts.PivotLang)

	results, err := s.retriever.Retrieve(translated, topK)
	if err != nil {
		metrics.QueriesTotal.WithLabelValues("error").Inc()
		return domain.QueryResult{}, fmt.Errorf("retrieve documents: %w", err)
	}

	out := domain.QueryResult{
		Original:   query,
		Translated: translated,
		Results:    results,
	}

	if len(results) > 0 && s.opts.DisplayLang != "" && s.opts.DisplayLang != s.opts.PivotLang {
		out.TranslatedTop = s.translator.Translate(
			ctx, results[0].Document, s.opts.PivotLang, s.opts.DisplayLang)
	}

	metrics.QueriesTotal.WithLabelValues("ok").Inc()
	s.logger.Info("query",
		zap.String("original_query", query),
		zap.String("translated_query", translated),
		zap.Int("results", len(results)))
	return out, nil
}
