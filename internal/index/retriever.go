package index

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/clir/internal/domain"
	"github.com/kailas-cloud/clir/internal/metrics"
	"github.com/kailas-cloud/clir/internal/textproc"
)

// Retriever ranks a fixed corpus against queries with TF-IDF cosine
// similarity. The index is immutable after Build/Load and safe for
// concurrent readers.
type Retriever struct {
	pre    *textproc.Preprocessor
	vec    *Vectorizer
	docs   []string
	matrix []SparseVector
	logger *zap.Logger
}

// NewRetriever creates an unbuilt retriever.
func NewRetriever(pre *textproc.Preprocessor, logger *zap.Logger) *Retriever {
	return &Retriever{
		pre:    pre,
		vec:    NewVectorizer(),
		logger: logger,
	}
}

// Build fits the vectorizer over the corpus and vectorizes every document.
func (r *Retriever) Build(docs []string) error {
	if len(docs) == 0 {
		return domain.ErrCorpusEmpty
	}

	start := time.Now()

	preprocessed := make([]string, len(docs))
	for i, doc := range docs {
		preprocessed[i] = r.pre.PreprocessForRetrieval(doc)
	}

	vec := NewVectorizer()
	if err := vec.Fit(preprocessed); err != nil {
		return err
	}

	matrix := make([]SparseVector, len(docs))
	for i, doc := range preprocessed {
		matrix[i] = vec.Transform(doc)
	}

	r.vec = vec
	r.docs = docs
	r.matrix = matrix

	r.logger.Info("Built TF-IDF index",
		zap.Int("documents", len(docs)),
		zap.Int("features", vec.VocabularySize()),
		zap.Duration("took", time.Since(start)))
	return nil
}

// Ready reports whether an index is available for queries.
func (r *Retriever) Ready() bool { return len(r.matrix) > 0 }

// Documents returns the indexed corpus in identity order.
func (r *Retriever) Documents() []string { return r.docs }

// Retrieve returns up to topK documents with non-zero cosine similarity to
// the query, sorted by descending score, ties stable in corpus order.
func (r *Retriever) Retrieve(query string, topK int) ([]domain.ScoredDocument, error) {
	if !r.Ready() {
		return nil, domain.ErrIndexNotBuilt
	}
	if topK <= 0 {
		return nil, nil
	}

	start := time.Now()

	qv := r.vec.Transform(r.pre.PreprocessForRetrieval(query))

	scores := make([]float64, len(r.matrix))
	for i, dv := range r.matrix {
		scores[i] = Dot(qv, dv)
	}

	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})

	results := make([]domain.ScoredDocument, 0, topK)
	for _, idx := range order {
		if scores[idx] <= 0 {
			break
		}
		results = append(results, domain.ScoredDocument{
			Document: r.docs[idx],
			Score:    scores[idx],
		})
		if len(results) == topK {
			break
		}
	}

	metrics.RetrievalDuration.Observe(time.Since(start).Seconds())
	r.logger.Debug("Retrieved documents",
		zap.Int("results", len(results)),
		zap.Int("top_k", topK))
	return results, nil
}
