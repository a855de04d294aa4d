package index

import (
	"errors"
	"math"
	"sort"
	"testing"

	"github.com/kailas-cloud/clir/internal/domain"
)

func TestFit_EmptyCorpus(t *testing.T) {
	v := NewVectorizer()
	if err := v.Fit(nil); !errors.Is(err, domain.ErrCorpusEmpty) {
		t.Fatalf("expected ErrCorpusEmpty, got %v", err)
	}
}

func TestFit_VocabularyIsAlphabetical(t *testing.T) {
	v := NewVectorizer()
	if err := v.Fit([]string{"zebra apple", "mango apple", "kiwi"}); err != nil {
		t.Fatal(err)
	}

	if !sort.StringsAreSorted(v.terms) {
		t.Errorf("vocabulary not sorted: %v", v.terms)
	}
	for i, term := range v.terms {
		if v.vocab[term] != i {
			t.Errorf("vocab[%q] = %d, want %d", term, v.vocab[term], i)
		}
	}
}

func TestFit_IncludesAdjacentBigrams(t *testing.T) {
	v := NewVectorizer()
	if err := v.Fit([]string{"prime minister india", "capital city"}); err != nil {
		t.Fatal(err)
	}

	for _, term := range []string{"prime minister", "minister india", "capital city"} {
		if _, ok := v.vocab[term]; !ok {
			t.Errorf("expected bigram %q in vocabulary, have %v", term, v.terms)
		}
	}
	if _, ok := v.vocab["prime india"]; ok {
		t.Error("non-adjacent pair must not form a bigram")
	}
}

func TestFit_DropsOverfrequentTerms(t *testing.T) {
	// With 3 documents max_df cuts at int(0.95*3) = 2, so a term present
	// in all 3 is discarded.
	v := NewVectorizer()
	docs := []string{"common apple", "common banana", "common cherry"}
	if err := v.Fit(docs); err != nil {
		t.Fatal(err)
	}

	if _, ok := v.vocab["common"]; ok {
		t.Error("term present in every document must be dropped")
	}
	if _, ok := v.vocab["apple"]; !ok {
		t.Errorf("expected %q in vocabulary, have %v", "apple", v.terms)
	}
}

func TestFit_SingleDocumentKeepsTerms(t *testing.T) {
	// Every term of a one-document corpus has df == n; the max-df prune
	// must not empty the vocabulary.
	v := NewVectorizer()
	if err := v.Fit([]string{"prime minister india"}); err != nil {
		t.Fatal(err)
	}

	if v.VocabularySize() == 0 {
		t.Fatal("one-document corpus produced an empty vocabulary")
	}
	if vec := v.Transform("prime minister"); len(vec) == 0 {
		t.Error("query over a one-document corpus cannot match anything")
	}
}

func TestFit_SmoothedIDF(t *testing.T) {
	v := NewVectorizer()
	if err := v.Fit([]string{"apple", "banana", "cherry"}); err != nil {
		t.Fatal(err)
	}

	// Each term appears in 1 of 3 documents: idf = ln((1+3)/(1+1)) + 1.
	want := math.Log(2) + 1
	idx, ok := v.vocab["apple"]
	if !ok {
		t.Fatalf("missing term, vocabulary %v", v.terms)
	}
	if got := v.idf[idx]; math.Abs(got-want) > 1e-12 {
		t.Errorf("idf = %v, want %v", got, want)
	}
}

func TestFit_CapsFeaturesByFrequency(t *testing.T) {
	v := &Vectorizer{MaxFeatures: 2, MaxDocRatio: 0.95, MinDocFreq: 1, NgramMax: 1}
	// Corpus frequency: aa=2, bb=2, cc=1, dd=1. The cap keeps the two most
	// frequent terms, alphabetical on ties.
	if err := v.Fit([]string{"aa aa bb", "cc bb", "dd"}); err != nil {
		t.Fatal(err)
	}

	if len(v.terms) != 2 {
		t.Fatalf("expected 2 features, got %v", v.terms)
	}
	if v.terms[0] != "aa" || v.terms[1] != "bb" {
		t.Errorf("expected [aa bb], got %v", v.terms)
	}
}

func TestTransform_SkipsShortTokens(t *testing.T) {
	v := NewVectorizer()
	if err := v.Fit([]string{"apple banana", "cherry mango"}); err != nil {
		t.Fatal(err)
	}

	if vec := v.Transform("a b c"); vec != nil {
		t.Errorf("single-rune tokens must vectorize to nothing, got %v", vec)
	}
}

func TestTransform_L2Normalized(t *testing.T) {
	v := NewVectorizer()
	if err := v.Fit([]string{"apple apple banana", "cherry mango", "plum"}); err != nil {
		t.Fatal(err)
	}

	vec := v.Transform("apple apple banana")
	if len(vec) == 0 {
		t.Fatal("expected a non-empty vector")
	}

	var norm float64
	for _, tw := range vec {
		norm += tw.Weight * tw.Weight
	}
	if math.Abs(norm-1) > 1e-12 {
		t.Errorf("squared norm = %v, want 1", norm)
	}
	for i := 1; i < len(vec); i++ {
		if vec[i-1].Index >= vec[i].Index {
			t.Errorf("vector not sorted by index: %v", vec)
		}
	}
}

func TestTransform_NoVocabularyOverlap(t *testing.T) {
	v := NewVectorizer()
	if err := v.Fit([]string{"apple banana", "cherry"}); err != nil {
		t.Fatal(err)
	}

	if vec := v.Transform("quantum entanglement"); vec != nil {
		t.Errorf("expected empty vector, got %v", vec)
	}
}

func TestDot(t *testing.T) {
	a := SparseVector{{Index: 0, Weight: 0.5}, {Index: 2, Weight: 0.5}}
	b := SparseVector{{Index: 1, Weight: 1.0}, {Index: 2, Weight: 0.25}}

	if got := Dot(a, b); math.Abs(got-0.125) > 1e-12 {
		t.Errorf("Dot = %v, want 0.125", got)
	}
	if got := Dot(a, nil); got != 0 {
		t.Errorf("Dot with empty vector = %v, want 0", got)
	}
	if got := Dot(a, a); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("Dot self = %v, want 0.5", got)
	}
}
