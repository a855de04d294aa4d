// Package openai is the remote translation provider, speaking an
// OpenAI-compatible chat-completions API.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/clir/internal/domain"
	"github.com/kailas-cloud/clir/internal/metrics"
)

// Compile-time check: Translator implements domain.Translator.
var _ domain.Translator = (*Translator)(nil)

// Translator translates text through an OpenAI-compatible chat model.
type Translator struct {
	client   *openai.Client
	model    string
	provider string
	logger   *zap.Logger
}

// Config holds the translation provider settings.
type Config struct {
	APIKey   string
	BaseURL  string
	Model    string
	Provider string
	Logger   *zap.Logger
}

// NewTranslator creates an OpenAI-compatible translation provider.
func NewTranslator(cfg *Config) *Translator {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Translator{
		client:   openai.NewClientWithConfig(clientCfg),
		model:    cfg.Model,
		provider: cfg.Provider,
		logger:   cfg.Logger,
	}
}

// Translate implements domain.Translator. src may be domain.LangAuto, in
// which case the model infers the source language itself.
func (t *Translator) Translate(ctx context.Context, text, src, dest string) (domain.TranslationResult, error) {
	destName := languageName(dest)

	var system string
	if src == domain.LangAuto {
		system = fmt.Sprintf(
			"You are a translation engine. Translate the user's text into %s. "+
				"Respond with only the translation, no explanations.", destName)
	} else {
		system = fmt.Sprintf(
			"You are a translation engine. Translate the user's text from %s into %s. "+
				"Respond with only the translation, no explanations.",
			languageName(src), destName)
	}

	out, err := t.complete(ctx, system, text)
	if err != nil {
		return domain.TranslationResult{}, err
	}
	return domain.TranslationResult{Text: out}, nil
}

// Detect implements domain.Translator. Returns an ISO 639-1 code.
func (t *Translator) Detect(ctx context.Context, text string) (string, error) {
	system := "You are a language identifier. Reply with only the ISO 639-1 code " +
		"of the language the user's text is written in, e.g. \"en\" or \"hi\"."

	out, err := t.complete(ctx, system, text)
	if err != nil {
		return "", err
	}

	code := strings.ToLower(strings.Trim(strings.TrimSpace(out), `"'.`))
	if len(code) < 2 {
		return "", fmt.Errorf("unrecognized language code %q: %w", out, domain.ErrTranslationProviderError)
	}
	return code[:2], nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (t *Translator) HealthCheck(ctx context.Context) error {
	if _, err := t.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

func (t *Translator) complete(ctx context.Context, system, user string) (string, error) {
	start := time.Now()

	resp, err := t.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       t.model,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})

	if err != nil {
		metrics.TranslationRequestsTotal.WithLabelValues(t.provider, "error").Inc()
		return "", parseAPIError(err)
	}
	if len(resp.Choices) == 0 {
		metrics.TranslationRequestsTotal.WithLabelValues(t.provider, "error").Inc()
		return "", fmt.Errorf("empty completion response: %w", domain.ErrTranslationProviderError)
	}

	metrics.TranslationRequestsTotal.WithLabelValues(t.provider, "success").Inc()
	t.logger.Debug("Translation request completed",
		zap.String("provider", t.provider),
		zap.Duration("took", time.Since(start)))

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// languageName resolves a code to a readable name for prompting; unknown
// codes are passed through verbatim.
func languageName(code string) string {
	if name, ok := domain.Languages[code]; ok {
		return name
	}
	return code
}

// parseAPIError extracts a human-readable error from the API response.
// All errors are wrapped with domain.ErrTranslationProviderError.
func parseAPIError(err error) error {
	wrap := domain.ErrTranslationProviderError

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		detail := extractDetail(reqErr.Body)
		if detail != "" {
			return fmt.Errorf("translation API error %d: %s: %w",
				reqErr.HTTPStatusCode, detail, wrap)
		}
		return fmt.Errorf("translation API error %d: %s: %w",
			reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("translation API error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("translation request failed: %w", wrap)
}

// extractDetail extracts the "detail" field from a JSON error body.
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}
