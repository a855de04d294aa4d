// Package eval measures retrieval quality: precision, recall and F1 at a
// cutoff, and mean reciprocal rank over a query set.
package eval

import (
	"context"
	"fmt"
	"sort"

	"github.com/kailas-cloud/clir/internal/domain"
)

// Retriever is the ranking contract the evaluator exercises.
type Retriever interface {
	Retrieve(query string, topK int) ([]domain.ScoredDocument, error)
	Documents() []string
}

// LabeledQuery pairs a query with the corpus positions of its relevant
// documents.
type LabeledQuery struct {
	Query    string `json:"query"`
	Relevant []int  `json:"relevant"`
}

// PrecisionAtK is the fraction of the top-k retrieved documents that are
// relevant.
func PrecisionAtK(retrieved, relevant []string, k int) float64 {
	if k <= 0 || len(retrieved) == 0 {
		return 0
	}
	topK := retrieved
	if len(topK) > k {
		topK = topK[:k]
	}
	rel := toSet(relevant)

	hits := 0
	for _, doc := range topK {
		if _, ok := rel[doc]; ok {
			hits++
		}
	}
	return float64(hits) / float64(k)
}

// RecallAtK is the fraction of relevant documents found in the top-k.
func RecallAtK(retrieved, relevant []string, k int) float64 {
	if len(relevant) == 0 {
		return 0
	}
	topK := retrieved
	if len(topK) > k {
		topK = topK[:k]
	}
	rel := toSet(relevant)

	hits := 0
	for doc := range toSet(topK) {
		if _, ok := rel[doc]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(rel))
}

// F1AtK is the harmonic mean of precision and recall at k.
func F1AtK(retrieved, relevant []string, k int) float64 {
	p := PrecisionAtK(retrieved, relevant, k)
	r := RecallAtK(retrieved, relevant, k)
	if p+r == 0 {
		return 0
	}
	return 2 * p * r / (p + r)
}

// RankedQuery holds one query's retrieved and relevant document lists for MRR.
type RankedQuery struct {
	Retrieved []string
	Relevant  []string
}

// MeanReciprocalRank averages 1/rank of the first relevant document across
// queries; queries with no relevant hit contribute zero.
func MeanReciprocalRank(queries []RankedQuery) float64 {
	if len(queries) == 0 {
		return 0
	}
	var sum float64
	for _, q := range queries {
		rel := toSet(q.Relevant)
		for rank, doc := range q.Retrieved {
			if _, ok := rel[doc]; ok {
				sum += 1.0 / float64(rank+1)
				break
			}
		}
	}
	return sum / float64(len(queries))
}

// Evaluator scores a retriever against labeled queries.
type Evaluator struct {
	retriever Retriever
	cutoffs   []int
}

// New creates an evaluator with the standard cutoffs 1, 3 and 5.
func New(retriever Retriever) *Evaluator {
	return &Evaluator{retriever: retriever, cutoffs: []int{1, 3, 5}}
}

// EvaluateQuery retrieves topK documents for one labeled query and returns
// precision/recall/F1 at each cutoff, keyed e.g. "precision@3".
func (e *Evaluator) EvaluateQuery(ctx context.Context, lq LabeledQuery, topK int) (map[string]float64, error) {
	out, _, err := e.evaluate(ctx, lq, topK)
	return out, err
}

func (e *Evaluator) evaluate(_ context.Context, lq LabeledQuery, topK int) (map[string]float64, RankedQuery, error) {
	results, err := e.retriever.Retrieve(lq.Query, topK)
	if err != nil {
		return nil, RankedQuery{}, fmt.Errorf("retrieve for evaluation: %w", err)
	}

	retrieved := make([]string, len(results))
	for i, r := range results {
		retrieved[i] = r.Document
	}

	docs := e.retriever.Documents()
	var relevant []string
	for _, idx := range lq.Relevant {
		if idx >= 0 && idx < len(docs) {
			relevant = append(relevant, docs[idx])
		}
	}

	out := make(map[string]float64, len(e.cutoffs)*3)
	for _, k := range e.cutoffs {
		out[fmt.Sprintf("precision@%d", k)] = PrecisionAtK(retrieved, relevant, k)
		out[fmt.Sprintf("recall@%d", k)] = RecallAtK(retrieved, relevant, k)
		out[fmt.Sprintf("f1@%d", k)] = F1AtK(retrieved, relevant, k)
	}
	return out, RankedQuery{Retrieved: retrieved, Relevant: relevant}, nil
}

// EvaluateBatch averages per-query metrics over a query set (names prefixed
// with "avg_") and adds the mean reciprocal rank under "mrr".
func (e *Evaluator) EvaluateBatch(ctx context.Context, queries []LabeledQuery, topK int) (map[string]float64, error) {
	if len(queries) == 0 {
		return nil, fmt.Errorf("no queries to evaluate")
	}

	sums := make(map[string]float64)
	ranked := make([]RankedQuery, 0, len(queries))
	for _, lq := range queries {
		m, rq, err := e.evaluate(ctx, lq, topK)
		if err != nil {
			return nil, err
		}
		for k, v := range m {
			sums[k] += v
		}
		ranked = append(ranked, rq)
	}

	avg := make(map[string]float64, len(sums)+1)
	for k, v := range sums {
		avg["avg_"+k] = v / float64(len(queries))
	}
	avg["mrr"] = MeanReciprocalRank(ranked)
	return avg, nil
}

// MetricNames returns the keys of a metric map in stable order, for display.
func MetricNames(m map[string]float64) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func toSet(docs []string) map[string]struct{} {
	set := make(map[string]struct{}, len(docs))
	for _, d := range docs {
		set[d] = struct{}{}
	}
	return set
}
