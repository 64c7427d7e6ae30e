package pictograms

import "strings"

const maxTokenQueries = 3

// Plan derives the ordered set of search queries for a piece of text: the
// whole trimmed phrase first, then up to three tokens longer than two runes
// in their original order. Duplicates are dropped by exact string equality.
// Empty or whitespace-only text yields an empty plan.
func Plan(rawText string) []string {
	phrase := strings.TrimSpace(rawText)
	if phrase == "" {
		return nil
	}

	queries := []string{phrase}
	seen := map[string]struct{}{phrase: {}}

	added := 0
	for _, tok := range strings.Fields(phrase) {
		if added >= maxTokenQueries {
			break
		}
		if len([]rune(tok)) <= 2 {
			continue
		}
		added++
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		queries = append(queries, tok)
	}
	return queries
}
