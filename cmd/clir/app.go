package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/clir/internal/config"
	"github.com/kailas-cloud/clir/internal/corpus"
	"github.com/kailas-cloud/clir/internal/db"
	dbFile "github.com/kailas-cloud/clir/internal/db/file"
	dbRedis "github.com/kailas-cloud/clir/internal/db/redis"
	"github.com/kailas-cloud/clir/internal/index"
	logpkg "github.com/kailas-cloud/clir/internal/logger"
	"github.com/kailas-cloud/clir/internal/metrics"
	"github.com/kailas-cloud/clir/internal/repository/trcache"
	"github.com/kailas-cloud/clir/internal/textproc"
	openaiTr "github.com/kailas-cloud/clir/internal/transport/openai"
	healthuc "github.com/kailas-cloud/clir/internal/usecase/health"
	searchuc "github.com/kailas-cloud/clir/internal/usecase/search"
	translateuc "github.com/kailas-cloud/clir/internal/usecase/translate"
)

// app is the composition root: every dependency is constructed here and
// passed explicitly, no package-level singletons.
type app struct {
	cfg       config.Config
	logger    *zap.Logger
	store     db.Store
	retriever *index.Retriever
	translate *translateuc.Service
	search    *searchuc.Service
	health    *healthuc.Service
}

// buildApp loads config, builds or restores the index, and wires the
// translation and query services.
func buildApp() (*app, error) {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	metrics.RegisterPipelineMetrics()

	pre, err := buildPreprocessor(cfg)
	if err != nil {
		return nil, err
	}

	docs, err := corpus.Load(cfg.Retrieval.CorpusPath, logger)
	if err != nil {
		return nil, err
	}

	retriever := index.NewRetriever(pre, logger)
	if err := retriever.LoadOrBuild(cfg.Retrieval.IndexPath, docs); err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}

	provider := openaiTr.NewTranslator(&openaiTr.Config{
		APIKey:   cfg.Translation.APIKey,
		BaseURL:  cfg.Translation.BaseURL,
		Model:    cfg.Translation.Model,
		Provider: cfg.Translation.Provider,
		Logger:   logger,
	})

	store, cache, err := buildCache(cfg, logger)
	if err != nil {
		return nil, err
	}

	// Pass nil interface (not typed nil pointer!) when caching is disabled.
	var trCache translateuc.Cache
	if cache != nil {
		trCache = cache
	}
	translateSvc := translateuc.New(provider, trCache, logger)

	searchSvc := searchuc.New(translateSvc, retriever, searchuc.Options{
		PivotLang:   cfg.Translation.PivotLang,
		DisplayLang: cfg.Translation.DisplayLang,
		DefaultTopK: cfg.Retrieval.DefaultTopK,
	}, logger)

	var cachePinger healthuc.CachePinger
	if store != nil {
		cachePinger = store
	}
	healthSvc := healthuc.New(retriever, cachePinger, provider)

	return &app{
		cfg:       cfg,
		logger:    logger,
		store:     store,
		retriever: retriever,
		translate: translateSvc,
		search:    searchSvc,
		health:    healthSvc,
	}, nil
}

// buildPreprocessor merges an optional custom stopword file into the
// embedded list.
func buildPreprocessor(cfg config.Config) (*textproc.Preprocessor, error) {
	if cfg.Retrieval.StopwordsPath == "" {
		return textproc.New(), nil
	}
	data, err := os.ReadFile(cfg.Retrieval.StopwordsPath)
	if err != nil {
		return nil, fmt.Errorf("read stopwords %s: %w", cfg.Retrieval.StopwordsPath, err)
	}
	return textproc.NewWithStopwords(strings.Split(string(data), "\n")), nil
}

// buildCache creates the translation cache backend. Returns (nil, nil, nil)
// when caching is disabled.
func buildCache(cfg config.Config, logger *zap.Logger) (db.Store, *trcache.Cache, error) {
	switch cfg.Cache.Backend {
	case "none":
		return nil, nil, nil
	case "redis":
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("create redis cache: %w", err)
		}
		timeout := time.Duration(cfg.Cache.ReadinessTimeout) * time.Second
		if err := store.WaitForReady(context.Background(), timeout); err != nil {
			return nil, nil, fmt.Errorf("redis cache not ready: %w", err)
		}
		cache := trcache.New(store, metrics.TranslationCacheTotal, logger).
			WithKeyPrefix(cfg.Cache.KeyPrefix)
		return store, cache, nil
	default: // file
		store, err := dbFile.NewStore(cfg.Cache.FilePath)
		if err != nil {
			return nil, nil, fmt.Errorf("create file cache: %w", err)
		}
		cache := trcache.New(store, metrics.TranslationCacheTotal, logger)
		return store, cache, nil
	}
}

// Close releases app resources.
func (a *app) Close() {
	if a.store != nil {
		a.store.Close()
	}
	_ = a.logger.Sync()
}
