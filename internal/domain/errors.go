package domain

import "errors"

var (
	// ErrEmptyQuery signals a blank or whitespace-only query.
	ErrEmptyQuery = errors.New("query must not be empty")
	// ErrIndexNotBuilt signals that retrieval was attempted before an index exists.
	ErrIndexNotBuilt = errors.New("index not built")
	// ErrCorpusEmpty signals a corpus with no documents.
	ErrCorpusEmpty = errors.New("corpus is empty")
	// ErrTranslationProviderError signals a remote translation provider failure.
	ErrTranslationProviderError = errors.New("translation provider error")
	// ErrUnsupportedLanguage signals an unknown language code.
	ErrUnsupportedLanguage = errors.New("unsupported language")
)
