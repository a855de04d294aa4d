package sdk

import "fmt"

type searchRequest struct {
	Query string `json:"query"`
	TopK  *int   `json:"top_k,omitempty"`
}

// SearchResult is one ranked document.
type SearchResult struct {
	Document string  `json:"document"`
	Score    float64 `json:"score"`
}

// SearchResponse is the outcome of a cross-language query.
type SearchResponse struct {
	Success             bool           `json:"success"`
	OriginalQuery       string         `json:"original_query"`
	TranslatedQuery     string         `json:"translated_query"`
	Results             []SearchResult `json:"results"`
	TranslatedTopResult string         `json:"translated_top_result,omitempty"`
}

// HealthResponse is the server health report.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("clir: server returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("clir: %s (status %d)", e.Message, e.StatusCode)
}
