package selection

import (
	"strings"
	"unicode"
)

// idNoise is stripped from both ends of every token. Models like to quote,
// bracket or number their answers.
const idNoise = "\"'`[](){}<>“”‘’「」《》.。:：;；"

// ParseIDs extracts question IDs from a free-text oracle reply. Tokens are
// separated by commas (ASCII or full-width), ideographic commas or
// whitespace. Only tokens present in known are kept, each once, in reply
// order. It never fails: an unusable reply yields an empty slice.
func ParseIDs[V any](raw string, known map[string]V) []string {
	tokens := strings.FieldsFunc(raw, isIDSeparator)

	ids := make([]string, 0, len(tokens))
	seen := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		tok = strings.Trim(strings.TrimSpace(tok), idNoise)
		if tok == "" || seen[tok] {
			continue
		}
		if _, ok := known[tok]; !ok {
			continue
		}
		seen[tok] = true
		ids = append(ids, tok)
	}
	return ids
}

func isIDSeparator(r rune) bool {
	switch r {
	case ',', '，', '、':
		return true
	}
	return unicode.IsSpace(r)
}
