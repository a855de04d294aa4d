// Package corpus loads the retrieval document set. Documents are immutable
// after load; a document's position in the slice is its identity.
package corpus

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
)

// Sample is the built-in fallback corpus used when no corpus file exists.
var Sample = []string{
	"India is a country in South Asia. It is the seventh-largest country by area.",
	"The Prime Minister of India is the head of government of the Republic of India.",
	"New Delhi is the capital of India. It is located in northern India.",
	"The Indian economy is one of the fastest-growing major economies in the world.",
	"Hindi is one of the official languages of India, along with English.",
	"The Indian flag has three horizontal stripes: saffron, white, and green.",
	"India gained independence from British rule on August 15, 1947.",
	"The Indian Parliament consists of two houses: Lok Sabha and Rajya Sabha.",
	"Cricket is the most popular sport in India.",
	"The Ganges is one of the major rivers in India.",
}

// Load reads documents from path. Documents are separated by blank lines;
// if that yields nothing, each non-empty line becomes a document; if the
// file does not exist, the built-in Sample corpus is returned.
func Load(path string, logger *zap.Logger) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn("Corpus file not found, using built-in sample corpus",
				zap.String("path", path))
			return append([]string(nil), Sample...), nil
		}
		return nil, fmt.Errorf("read corpus %s: %w", path, err)
	}

	docs := Parse(string(data))
	if len(docs) == 0 {
		logger.Warn("Corpus file is empty, using built-in sample corpus",
			zap.String("path", path))
		return append([]string(nil), Sample...), nil
	}

	logger.Info("Loaded corpus",
		zap.String("path", path),
		zap.Int("documents", len(docs)))
	return docs, nil
}

// Parse splits raw corpus text into documents on blank-line boundaries,
// falling back to one document per line only when that yields nothing.
// A single document spanning many lines with no blank lines stays one
// document.
func Parse(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")

	var docs []string
	for _, block := range strings.Split(content, "\n\n") {
		if doc := strings.TrimSpace(block); doc != "" {
			docs = append(docs, doc)
		}
	}
	if len(docs) > 0 {
		return docs
	}

	var lines []string
	for _, line := range strings.Split(content, "\n") {
		if doc := strings.TrimSpace(line); doc != "" {
			lines = append(lines, doc)
		}
	}
	return lines
}
