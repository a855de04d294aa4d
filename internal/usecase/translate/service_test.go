package translate

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/clir/internal/domain"
)

type mockProvider struct {
	translateFn    func(ctx context.Context, text, src, dest string) (domain.TranslationResult, error)
	detectFn       func(ctx context.Context, text string) (string, error)
	translateCalls int
	detectCalls    int
}

func (m *mockProvider) Translate(ctx context.Context, text, src, dest string) (domain.TranslationResult, error) {
	m.translateCalls++
	if m.translateFn != nil {
		return m.translateFn(ctx, text, src, dest)
	}
	return domain.TranslationResult{Text: "translated:" + text}, nil
}

func (m *mockProvider) Detect(ctx context.Context, text string) (string, error) {
	m.detectCalls++
	if m.detectFn != nil {
		return m.detectFn(ctx, text)
	}
	return "hi", nil
}

type mockCache struct {
	entries map[string]string
	stores  int
}

func key(text, src, dest string) string { return text + "_" + src + "_" + dest }

func (m *mockCache) Lookup(_ context.Context, text, src, dest string) (string, bool) {
	v, ok := m.entries[key(text, src, dest)]
	return v, ok
}

func (m *mockCache) Store(_ context.Context, text, src, dest, translation string) {
	m.stores++
	if m.entries == nil {
		m.entries = map[string]string{}
	}
	m.entries[key(text, src, dest)] = translation
}

func TestTranslate_EmptyText(t *testing.T) {
	p := &mockProvider{}
	s := New(p, nil, zap.NewNop())

	if got := s.Translate(context.Background(), "", "auto", "en"); got != "" {
		t.Errorf("Translate empty = %q", got)
	}
	if p.translateCalls != 0 || p.detectCalls != 0 {
		t.Error("empty input must not reach the provider")
	}
}

func TestTranslate_SameConcreteLanguage(t *testing.T) {
	p := &mockProvider{}
	s := New(p, nil, zap.NewNop())

	if got := s.Translate(context.Background(), "hello", "en", "en"); got != "hello" {
		t.Errorf("Translate same-lang = %q, want input unchanged", got)
	}
	if p.translateCalls != 0 {
		t.Error("same-language request must not reach the provider")
	}
}

func TestTranslate_AutoDetectsThenTranslates(t *testing.T) {
	p := &mockProvider{}
	s := New(p, nil, zap.NewNop())

	got := s.Translate(context.Background(), "namaste", "auto", "en")
	if got != "translated:namaste" {
		t.Errorf("Translate = %q", got)
	}
	if p.detectCalls != 1 || p.translateCalls != 1 {
		t.Errorf("expected 1 detect + 1 translate, got %d/%d", p.detectCalls, p.translateCalls)
	}
}

func TestTranslate_DetectedEqualsDest(t *testing.T) {
	p := &mockProvider{detectFn: func(context.Context, string) (string, error) { return "en", nil }}
	c := &mockCache{}
	s := New(p, c, zap.NewNop())

	if got := s.Translate(context.Background(), "already english", "auto", "en"); got != "already english" {
		t.Errorf("Translate = %q, want input unchanged", got)
	}
	if p.translateCalls != 0 {
		t.Error("detected==dest must skip the provider call")
	}
	if c.stores != 0 {
		t.Error("skipped translation must not be cached")
	}
}

func TestTranslate_CacheHitSkipsProvider(t *testing.T) {
	p := &mockProvider{}
	c := &mockCache{}
	s := New(p, c, zap.NewNop())
	ctx := context.Background()

	first := s.Translate(ctx, "namaste", "auto", "en")
	second := s.Translate(ctx, "namaste", "auto", "en")

	if first != second {
		t.Errorf("cached translation differs: %q vs %q", first, second)
	}
	if p.translateCalls != 1 {
		t.Errorf("expected exactly 1 provider translate call, got %d", p.translateCalls)
	}
	if p.detectCalls != 1 {
		t.Errorf("cache hit must also skip detection, got %d detect calls", p.detectCalls)
	}
}

func TestTranslate_CacheKeyedOnOriginalSource(t *testing.T) {
	p := &mockProvider{}
	c := &mockCache{}
	s := New(p, c, zap.NewNop())

	s.Translate(context.Background(), "namaste", "auto", "en")

	if _, ok := c.entries["namaste_auto_en"]; !ok {
		t.Errorf("cache must be keyed on the pre-detection source, have %v", c.entries)
	}
}

func TestTranslate_ProviderFailureReturnsInput(t *testing.T) {
	p := &mockProvider{
		translateFn: func(context.Context, string, string, string) (domain.TranslationResult, error) {
			return domain.TranslationResult{}, domain.ErrTranslationProviderError
		},
	}
	c := &mockCache{}
	s := New(p, c, zap.NewNop())

	if got := s.Translate(context.Background(), "namaste", "hi", "en"); got != "namaste" {
		t.Errorf("Translate on failure = %q, want input unchanged", got)
	}
	if c.stores != 0 {
		t.Error("failed translation must not be cached")
	}
}

func TestTranslate_NilCache(t *testing.T) {
	s := New(&mockProvider{}, nil, zap.NewNop())
	if got := s.Translate(context.Background(), "namaste", "hi", "en"); got != "translated:namaste" {
		t.Errorf("Translate = %q", got)
	}
}

func TestDetect_FailureFallsBackToAuto(t *testing.T) {
	p := &mockProvider{detectFn: func(context.Context, string) (string, error) {
		return "", errors.New("provider down")
	}}
	s := New(p, nil, zap.NewNop())

	if got := s.Detect(context.Background(), "namaste"); got != domain.LangAuto {
		t.Errorf("Detect on failure = %q, want %q", got, domain.LangAuto)
	}
}

func TestTranslate_DetectFailureStillTranslates(t *testing.T) {
	p := &mockProvider{detectFn: func(context.Context, string) (string, error) {
		return "", errors.New("provider down")
	}}
	var gotSrc string
	p.translateFn = func(_ context.Context, text, src, _ string) (domain.TranslationResult, error) {
		gotSrc = src
		return domain.TranslationResult{Text: "translated:" + text}, nil
	}
	s := New(p, nil, zap.NewNop())

	if got := s.Translate(context.Background(), "namaste", "auto", "en"); got != "translated:namaste" {
		t.Errorf("Translate = %q", got)
	}
	if gotSrc != domain.LangAuto {
		t.Errorf("provider src = %q, want %q after failed detection", gotSrc, domain.LangAuto)
	}
}

func TestLanguages(t *testing.T) {
	s := New(&mockProvider{}, nil, zap.NewNop())
	langs := s.Languages()
	if langs["en"] == "" || langs["hi"] == "" {
		t.Errorf("expected english and hindi in %v", langs)
	}
}
