package domain

// ScoredDocument pairs a corpus document with its cosine similarity score.
// Score is in (0, 1]; zero-score matches are never returned.
type ScoredDocument struct {
	Document string
	Score    float64
}

// QueryResult is the outcome of one full cross-language query.
type QueryResult struct {
	Original      string
	Translated    string
	Results       []ScoredDocument
	TranslatedTop string
}
