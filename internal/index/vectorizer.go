// Package index implements the TF-IDF vector-space retrieval core:
// vocabulary fitting, sparse document vectors, cosine ranking and a
// versioned on-disk manifest.
package index

import (
	"math"
	"sort"
	"strings"

	"github.com/kailas-cloud/clir/internal/domain"
)

const (
	defaultMaxFeatures = 5000
	defaultMaxDocRatio = 0.95
	defaultMinDocFreq  = 1
	defaultNgramMax    = 2
	minTokenRunes      = 2
)

// TermWeight is one entry of a sparse vector, ordered by Index.
type TermWeight struct {
	Index  int     `json:"i"`
	Weight float64 `json:"w"`
}

// SparseVector is an L2-normalized sparse term-weight vector,
// sorted by term index.
type SparseVector []TermWeight

// Vectorizer fits a TF-IDF vocabulary over a corpus and projects text into
// the learned term space. Immutable after Fit; safe for concurrent reads.
type Vectorizer struct {
	MaxFeatures int     // vocabulary cap, kept by highest corpus frequency
	MaxDocRatio float64 // terms in more than this fraction of docs are dropped
	MinDocFreq  int     // terms in fewer docs are dropped
	NgramMax    int     // 2 = unigrams + adjacent bigrams

	vocab map[string]int
	terms []string  // index -> term
	idf   []float64 // index -> smoothed inverse document frequency
}

// NewVectorizer creates a vectorizer with the standard retrieval settings:
// 5000 features, unigrams + bigrams, min_df 1, max_df 0.95.
func NewVectorizer() *Vectorizer {
	return &Vectorizer{
		MaxFeatures: defaultMaxFeatures,
		MaxDocRatio: defaultMaxDocRatio,
		MinDocFreq:  defaultMinDocFreq,
		NgramMax:    defaultNgramMax,
	}
}

// analyze splits preprocessed text into unigram and adjacent n-gram terms.
// Tokens shorter than two runes are skipped.
func (v *Vectorizer) analyze(text string) []string {
	fields := strings.Fields(text)
	tokens := fields[:0:0]
	for _, f := range fields {
		if len([]rune(f)) >= minTokenRunes {
			tokens = append(tokens, f)
		}
	}

	terms := make([]string, 0, len(tokens)*v.NgramMax)
	for n := 1; n <= v.NgramMax; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			terms = append(terms, strings.Join(tokens[i:i+n], " "))
		}
	}
	return terms
}

// Fit learns the vocabulary and idf weights from preprocessed documents.
func (v *Vectorizer) Fit(docs []string) error {
	if len(docs) == 0 {
		return domain.ErrCorpusEmpty
	}

	docFreq := make(map[string]int)
	totalFreq := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, term := range v.analyze(doc) {
			totalFreq[term]++
			seen[term] = struct{}{}
		}
		for term := range seen {
			docFreq[term]++
		}
	}

	n := len(docs)
	maxDF := int(v.MaxDocRatio * float64(n))
	if maxDF < 1 {
		// A one-document corpus would otherwise prune every term.
		maxDF = 1
	}
	candidates := make([]string, 0, len(docFreq))
	for term, df := range docFreq {
		if df < v.MinDocFreq || df > maxDF {
			continue
		}
		candidates = append(candidates, term)
	}

	// Cap vocabulary by corpus frequency, ties broken alphabetically.
	if v.MaxFeatures > 0 && len(candidates) > v.MaxFeatures {
		sort.Slice(candidates, func(i, j int) bool {
			if totalFreq[candidates[i]] != totalFreq[candidates[j]] {
				return totalFreq[candidates[i]] > totalFreq[candidates[j]]
			}
			return candidates[i] < candidates[j]
		})
		candidates = candidates[:v.MaxFeatures]
	}
	sort.Strings(candidates)

	v.terms = candidates
	v.vocab = make(map[string]int, len(candidates))
	v.idf = make([]float64, len(candidates))
	for i, term := range candidates {
		v.vocab[term] = i
		df := docFreq[term]
		v.idf[i] = math.Log(float64(1+n)/float64(1+df)) + 1
	}
	return nil
}

// Transform projects preprocessed text into the fitted vocabulary space.
// Out-of-vocabulary terms are dropped; the result is L2-normalized.
// Returns an empty vector when nothing overlaps the vocabulary.
func (v *Vectorizer) Transform(text string) SparseVector {
	counts := make(map[int]int)
	for _, term := range v.analyze(text) {
		if idx, ok := v.vocab[term]; ok {
			counts[idx]++
		}
	}
	if len(counts) == 0 {
		return nil
	}

	vec := make(SparseVector, 0, len(counts))
	var norm float64
	for idx, count := range counts {
		w := float64(count) * v.idf[idx]
		vec = append(vec, TermWeight{Index: idx, Weight: w})
		norm += w * w
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i].Weight /= norm
	}
	sort.Slice(vec, func(i, j int) bool { return vec[i].Index < vec[j].Index })
	return vec
}

// VocabularySize reports the number of fitted features.
func (v *Vectorizer) VocabularySize() int { return len(v.terms) }

// Dot computes the inner product of two sparse vectors sorted by index.
// For L2-normalized vectors this is the cosine similarity.
func Dot(a, b SparseVector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].Index == b[j].Index:
			sum += a[i].Weight * b[j].Weight
			i++
			j++
		case a[i].Index < b[j].Index:
			i++
		default:
			j++
		}
	}
	return sum
}
