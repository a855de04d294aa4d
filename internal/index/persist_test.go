package index

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/clir/internal/corpus"
	"github.com/kailas-cloud/clir/internal/textproc"
)

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models", "index.json")

	built := newTestRetriever(t)
	if err := built.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded := NewRetriever(textproc.New(), zap.NewNop())
	if err := loaded.Load(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	if !loaded.Ready() {
		t.Fatal("loaded retriever not ready")
	}

	query := "Who is the Prime Minister of India?"
	want, err := built.Retrieve(query, 5)
	if err != nil {
		t.Fatal(err)
	}
	got, err := loaded.Retrieve(query, 5)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("loaded index ranks differently:\n%v\n%v", got, want)
	}
}

func TestSave_NotBuilt(t *testing.T) {
	r := NewRetriever(textproc.New(), zap.NewNop())
	if err := r.Save(filepath.Join(t.TempDir(), "index.json")); err == nil {
		t.Fatal("expected error saving an unbuilt index")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	r := NewRetriever(textproc.New(), zap.NewNop())
	err := r.Load(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
}

func TestLoad_RejectsBadManifests(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"corrupt json", "{not json"},
		{"wrong version", `{"version":99,"documents":[],"vocabulary":[],"vectors":[]}`},
		{"length mismatch", `{"version":1,"documents":["a","b"],"vocabulary":[],"vectors":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "index.json")
			if err := os.WriteFile(path, []byte(tt.data), 0o644); err != nil {
				t.Fatal(err)
			}

			r := NewRetriever(textproc.New(), zap.NewNop())
			if err := r.Load(path); err == nil {
				t.Fatal("expected load error")
			}
		})
	}
}

func TestLoadOrBuild_RebuildsAndSaves(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.json")
	if err := os.WriteFile(path, []byte("{corrupt"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewRetriever(textproc.New(), zap.NewNop())
	if err := r.LoadOrBuild(path, corpus.Sample); err != nil {
		t.Fatalf("load-or-build: %v", err)
	}
	if !r.Ready() {
		t.Fatal("retriever not ready after rebuild")
	}

	// The rebuilt index replaces the corrupt manifest on disk.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("rewritten manifest unreadable: %v", err)
	}
	if m.Version != manifestVersion {
		t.Errorf("manifest version = %d, want %d", m.Version, manifestVersion)
	}
	if len(m.Documents) != len(corpus.Sample) {
		t.Errorf("manifest has %d documents, want %d", len(m.Documents), len(corpus.Sample))
	}
}

func TestLoadOrBuild_PrefersExistingIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.json")

	built := newTestRetriever(t)
	if err := built.Save(path); err != nil {
		t.Fatal(err)
	}

	// A retriever given a different corpus still serves the saved one.
	r := NewRetriever(textproc.New(), zap.NewNop())
	if err := r.LoadOrBuild(path, []string{"unrelated document"}); err != nil {
		t.Fatal(err)
	}
	if got := len(r.Documents()); got != len(corpus.Sample) {
		t.Errorf("loaded %d documents, want %d from the saved index", got, len(corpus.Sample))
	}
}
