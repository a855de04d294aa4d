package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/clir/internal/domain"
	"github.com/kailas-cloud/clir/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.RegisterPipelineMetrics()
	os.Exit(m.Run())
}

// chatRequest mirrors the OpenAI-compatible chat-completions request.
type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func chatResponse(content string) map[string]any {
	return map[string]any{
		"id":     "chatcmpl-test",
		"object": "chat.completion",
		"model":  "test-model",
		"choices": []map[string]any{
			{
				"index":         0,
				"finish_reason": "stop",
				"message": map[string]any{
					"role":    "assistant",
					"content": content,
				},
			},
		},
	}
}

func newTestTranslator(serverURL string) *Translator {
	return NewTranslator(&Config{
		APIKey:   "test-key",
		BaseURL:  serverURL,
		Model:    "test-model",
		Provider: "test",
		Logger:   zap.NewNop(),
	})
}

func TestTranslator_Translate(t *testing.T) {
	var gotReq chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("unexpected auth header: %s", r.Header.Get("Authorization"))
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatal(err)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatResponse("  namaste duniya  "))
	}))
	defer server.Close()

	tr := newTestTranslator(server.URL)

	result, err := tr.Translate(context.Background(), "hello world", "en", "hi")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if result.Text != "namaste duniya" {
		t.Errorf("Text = %q, expected trimmed translation", result.Text)
	}

	if gotReq.Model != "test-model" {
		t.Errorf("model = %q", gotReq.Model)
	}
	if len(gotReq.Messages) != 2 {
		t.Fatalf("expected system + user message, got %d", len(gotReq.Messages))
	}
	system := gotReq.Messages[0].Content
	if !strings.Contains(system, "English") || !strings.Contains(system, "Hindi") {
		t.Errorf("system prompt must name both languages: %q", system)
	}
	if gotReq.Messages[1].Content != "hello world" {
		t.Errorf("user message = %q", gotReq.Messages[1].Content)
	}
}

func TestTranslator_TranslateAutoSource(t *testing.T) {
	var system string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		system = req.Messages[0].Content

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatResponse("hello"))
	}))
	defer server.Close()

	tr := newTestTranslator(server.URL)

	if _, err := tr.Translate(context.Background(), "namaste", domain.LangAuto, "en"); err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if strings.Contains(system, "from") {
		t.Errorf("auto-source prompt must not name a source language: %q", system)
	}
}

func TestTranslator_Detect(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		want    string
		wantErr bool
	}{
		{"plain code", "hi", "hi", false},
		{"quoted uppercase", `"HI"`, "hi", false},
		{"code with region", "en-US", "en", false},
		{"too short", "x", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(chatResponse(tt.reply))
			}))
			defer server.Close()

			got, err := newTestTranslator(server.URL).Detect(context.Background(), "text")
			if tt.wantErr {
				if !errors.Is(err, domain.ErrTranslationProviderError) {
					t.Fatalf("error = %v, want ErrTranslationProviderError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Detect failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Detect = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTranslator_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"message": "rate limit exceeded",
				"type":    "rate_limit_error",
			},
		})
	}))
	defer server.Close()

	tr := newTestTranslator(server.URL)

	_, err := tr.Translate(context.Background(), "hello", "en", "hi")
	if !errors.Is(err, domain.ErrTranslationProviderError) {
		t.Fatalf("error = %v, want wrapped ErrTranslationProviderError", err)
	}
}

func TestTranslator_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"model":   "test-model",
			"choices": []any{},
		})
	}))
	defer server.Close()

	tr := newTestTranslator(server.URL)

	_, err := tr.Translate(context.Background(), "hello", "en", "hi")
	if !errors.Is(err, domain.ErrTranslationProviderError) {
		t.Fatalf("error = %v, want wrapped ErrTranslationProviderError", err)
	}
}

func TestLanguageName(t *testing.T) {
	if got := languageName("hi"); got != "Hindi" {
		t.Errorf("languageName(hi) = %q", got)
	}
	if got := languageName("zz"); got != "zz" {
		t.Errorf("unknown code must pass through, got %q", got)
	}
}
