// Package textproc normalizes free text for indexing and querying:
// lowercasing, URL/email stripping, tokenization, stopword removal and
// optional lemmatization.
package textproc

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	urlRe        = regexp.MustCompile(`(?i)\b(?:https?://|www\.)\S+`)
	emailRe      = regexp.MustCompile(`\S+@\S+`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	wordRe       = regexp.MustCompile(`\p{L}+(?:'\p{L}+)*|\p{N}+`)
)

// Options controls the preprocessing pipeline.
type Options struct {
	RemoveStopwords bool
	Lemmatize       bool
}

// Preprocessor is a stateless text normalizer with a fixed stopword set.
// Safe for concurrent use.
type Preprocessor struct {
	stopwords map[string]struct{}
}

// New creates a preprocessor with the embedded English stopword list.
func New() *Preprocessor {
	return &Preprocessor{stopwords: embeddedStopwords()}
}

// NewWithStopwords creates a preprocessor with the embedded list merged
// with extra stopwords (e.g. loaded from a per-language file).
func NewWithStopwords(extra []string) *Preprocessor {
	sw := embeddedStopwords()
	for _, w := range extra {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			sw[w] = struct{}{}
		}
	}
	return &Preprocessor{stopwords: sw}
}

// Clean lowercases text and strips URLs, email addresses and redundant whitespace.
func (p *Preprocessor) Clean(text string) string {
	text = strings.ToLower(text)
	text = urlRe.ReplaceAllString(text, "")
	text = emailRe.ReplaceAllString(text, "")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Tokenize splits cleaned text into word tokens. Falls back to a plain
// whitespace split when the word pattern matches nothing.
func (p *Preprocessor) Tokenize(text string) []string {
	tokens := wordRe.FindAllString(text, -1)
	if tokens == nil {
		return strings.Fields(text)
	}
	return tokens
}

// RemoveStopwords drops stopword and pure-punctuation tokens.
func (p *Preprocessor) RemoveStopwords(tokens []string) []string {
	out := tokens[:0:0]
	for _, tok := range tokens {
		if _, ok := p.stopwords[strings.ToLower(tok)]; ok {
			continue
		}
		if isPunct(tok) {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// Preprocess runs the full pipeline and returns tokens rejoined by spaces.
func (p *Preprocessor) Preprocess(text string, opts Options) string {
	tokens := p.Tokenize(p.Clean(text))
	if opts.RemoveStopwords {
		tokens = p.RemoveStopwords(tokens)
	}
	if opts.Lemmatize {
		for i, tok := range tokens {
			tokens[i] = Lemmatize(tok)
		}
	}
	return strings.Join(tokens, " ")
}

// PreprocessForRetrieval applies the retrieval variant of the pipeline:
// stopwords removed, no lemmatization.
func (p *Preprocessor) PreprocessForRetrieval(text string) string {
	return p.Preprocess(text, Options{RemoveStopwords: true})
}

func isPunct(s string) bool {
	for _, r := range s {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			return false
		}
	}
	return len(s) > 0
}
