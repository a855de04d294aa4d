package textproc

import "strings"

// irregular maps common irregular English forms to their dictionary base.
var irregular = map[string]string{
	"children": "child",
	"men":      "man",
	"women":    "woman",
	"mice":     "mouse",
	"feet":     "foot",
	"teeth":    "tooth",
	"geese":    "goose",
	"people":   "person",
	"went":     "go",
	"gone":     "go",
	"was":      "be",
	"were":     "be",
	"been":     "be",
	"is":       "be",
	"are":      "be",
	"has":      "have",
	"had":      "have",
	"did":      "do",
	"done":     "do",
	"said":     "say",
	"made":     "make",
	"better":   "good",
	"best":     "good",
	"worse":    "bad",
	"worst":    "bad",
}

// Lemmatize reduces a lowercase token to an approximate dictionary base form
// using an irregular-form table and ordered suffix rules. Words that would be
// cut below three runes are returned unchanged.
func Lemmatize(token string) string {
	if base, ok := irregular[token]; ok {
		return base
	}

	rules := []struct{ suffix, replace string }{
		{"ies", "y"},
		{"sses", "ss"},
		{"shes", "sh"},
		{"ches", "ch"},
		{"xes", "x"},
		{"zes", "z"},
		{"ing", ""},
		{"ied", "y"},
		{"ed", ""},
		{"s", ""},
	}

	for _, r := range rules {
		if !strings.HasSuffix(token, r.suffix) {
			continue
		}
		stem := token[:len(token)-len(r.suffix)] + r.replace
		if len([]rune(stem)) < 3 {
			continue
		}
		// "ss" endings stay plural-looking but are singular ("glass").
		if r.suffix == "s" && strings.HasSuffix(token, "ss") {
			continue
		}
		return stem
	}
	return token
}
