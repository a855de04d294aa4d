package index

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// manifestVersion guards the on-disk format. Any mismatch forces a rebuild.
const manifestVersion = 1

// vocabEntry is one fitted vocabulary term, ordered by feature index.
type vocabEntry struct {
	Term string  `json:"term"`
	IDF  float64 `json:"idf"`
}

// manifest is the versioned serialized bundle of vectorizer state, document
// vectors and the raw document list. Vocabulary, vectors and documents are
// coupled: the manifest is only ever written and read as a unit.
type manifest struct {
	Version    int            `json:"version"`
	Documents  []string       `json:"documents"`
	Vocabulary []vocabEntry   `json:"vocabulary"`
	Vectors    []SparseVector `json:"vectors"`
}

// Save writes the fitted index to path, creating parent directories.
func (r *Retriever) Save(path string) error {
	if !r.Ready() {
		return fmt.Errorf("save index: nothing to save")
	}

	vocab := make([]vocabEntry, len(r.vec.terms))
	for i, term := range r.vec.terms {
		vocab[i] = vocabEntry{Term: term, IDF: r.vec.idf[i]}
	}

	data, err := json.Marshal(manifest{
		Version:    manifestVersion,
		Documents:  r.docs,
		Vocabulary: vocab,
		Vectors:    r.matrix,
	})
	if err != nil {
		return fmt.Errorf("marshal index manifest: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create index dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write index manifest: %w", err)
	}

	r.logger.Info("Saved index manifest",
		zap.String("path", path),
		zap.Int("documents", len(r.docs)),
		zap.Int("features", len(vocab)))
	return nil
}

// Load restores a previously saved index from path.
func (r *Retriever) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read index manifest: %w", err)
	}

	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("parse index manifest: %w", err)
	}
	if m.Version != manifestVersion {
		return fmt.Errorf("index manifest version %d, want %d", m.Version, manifestVersion)
	}
	if len(m.Vectors) != len(m.Documents) {
		return fmt.Errorf("index manifest: %d vectors for %d documents",
			len(m.Vectors), len(m.Documents))
	}

	vec := NewVectorizer()
	vec.terms = make([]string, len(m.Vocabulary))
	vec.idf = make([]float64, len(m.Vocabulary))
	vec.vocab = make(map[string]int, len(m.Vocabulary))
	for i, e := range m.Vocabulary {
		vec.terms[i] = e.Term
		vec.idf[i] = e.IDF
		vec.vocab[e.Term] = i
	}

	r.vec = vec
	r.docs = m.Documents
	r.matrix = m.Vectors

	r.logger.Info("Loaded index manifest",
		zap.String("path", path),
		zap.Int("documents", len(r.docs)),
		zap.Int("features", len(vec.terms)))
	return nil
}

// LoadOrBuild restores the index from indexPath, falling back to a full
// rebuild from docs (and a fresh save) when loading fails for any reason.
func (r *Retriever) LoadOrBuild(indexPath string, docs []string) error {
	if err := r.Load(indexPath); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		r.logger.Warn("Failed to load index, rebuilding from corpus",
			zap.String("path", indexPath), zap.Error(err))
	}

	if err := r.Build(docs); err != nil {
		return err
	}
	if err := r.Save(indexPath); err != nil {
		r.logger.Warn("Failed to save rebuilt index", zap.Error(err))
	}
	return nil
}
