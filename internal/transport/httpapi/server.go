// Package httpapi exposes the query pipeline over HTTP: POST /search,
// GET /healthz and GET /languages.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/clir/internal/domain"
	"github.com/kailas-cloud/clir/internal/logger"
	healthuc "github.com/kailas-cloud/clir/internal/usecase/health"
	searchuc "github.com/kailas-cloud/clir/internal/usecase/search"
)

// LanguageLister reports the supported languages.
type LanguageLister interface {
	Languages() map[string]string
}

// Server holds the HTTP handlers.
type Server struct {
	search    *searchuc.Service
	health    *healthuc.Service
	languages LanguageLister
	maxTopK   int
	logger    *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	health *healthuc.Service,
	languages LanguageLister,
	maxTopK int,
	logger *zap.Logger,
) *Server {
	return &Server{
		search:    search,
		health:    health,
		languages: languages,
		maxTopK:   maxTopK,
		logger:    logger,
	}
}

// Routes registers the API handlers on r.
func (s *Server) Routes(r chi.Router) {
	r.Post("/search", s.handleSearch)
	r.Get("/healthz", s.handleHealth)
	r.Get("/languages", s.handleLanguages)
}

type searchRequest struct {
	Query string `json:"query"`
	TopK  *int   `json:"top_k,omitempty"`
}

type searchResult struct {
	Document string  `json:"document"`
	Score    float64 `json:"score"`
}

type searchResponse struct {
	Success             bool           `json:"success"`
	OriginalQuery       string         `json:"original_query"`
	TranslatedQuery     string         `json:"translated_query"`
	Results             []searchResult `json:"results"`
	TranslatedTopResult string         `json:"translated_top_result,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleSearch handles POST /search.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.Debug("Rejected malformed search request", zap.Error(err))
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	topK := 0
	if req.TopK != nil {
		topK = *req.TopK
		if topK > s.maxTopK {
			topK = s.maxTopK
		}
	}

	result, err := s.search.Search(r.Context(), req.Query, topK)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyQuery) {
			writeError(w, http.StatusBadRequest, domain.ErrEmptyQuery.Error())
			return
		}
		// The request-scoped logger installed by the wide-event middleware
		// carries the request id.
		logger.FromContext(r.Context()).Error("Search failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	results := make([]searchResult, len(result.Results))
	for i, sd := range result.Results {
		results[i] = searchResult{Document: sd.Document, Score: sd.Score}
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Success:             true,
		OriginalQuery:       result.Original,
		TranslatedQuery:     result.Translated,
		Results:             results,
		TranslatedTopResult: result.TranslatedTop,
	})
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// handleHealth handles GET /healthz. Unhealthy maps to 503.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for name, res := range report.Checks {
		checks[name] = string(res)
	}

	status := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, healthResponse{Status: string(report.Status), Checks: checks})
}

// handleLanguages handles GET /languages.
func (s *Server) handleLanguages(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]map[string]string{
		"languages": s.languages.Languages(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
