package textproc

import (
	_ "embed"
	"strings"
)

//go:embed stopwords_en.txt
var stopwordsEN string

func embeddedStopwords() map[string]struct{} {
	sw := make(map[string]struct{}, 200)
	for _, line := range strings.Split(stopwordsEN, "\n") {
		w := strings.TrimSpace(line)
		if w != "" && !strings.HasPrefix(w, "#") {
			sw[w] = struct{}{}
		}
	}
	return sw
}
