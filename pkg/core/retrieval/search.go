package retrieval

import (
	"sort"
	"strings"
	"unicode"

	"legacy_m/pkg/core/corpus"
)

// DefaultLimit is the number of passages returned when the caller does not
// specify one.
const DefaultLimit = 5

// Result is one scored passage.
type Result struct {
	Passage corpus.Passage `json:"passage"`
	Score   int            `json:"score"`
}

// Searcher ranks passages of one confession against a free-text question by
// lexical overlap. Purely lexical: no embeddings, no external calls.
type Searcher struct {
	corpus *corpus.Corpus
}

func NewSearcher(c *corpus.Corpus) *Searcher {
	return &Searcher{corpus: c}
}

// Search scores every passage of the confession by the number of unique
// question tokens it shares with the passage text, and returns the top limit
// results ordered by descending score. Ties keep corpus insertion order.
// A question with no matching tokens yields an empty result, never an error.
func (s *Searcher) Search(question, confession string, limit int) []Result {
	if limit <= 0 {
		limit = DefaultLimit
	}

	qTokens := Tokenize(question)
	if len(qTokens) == 0 {
		return nil
	}

	passages := s.corpus.Passages(confession)
	results := make([]Result, 0, len(passages))
	for _, p := range passages {
		score := overlap(qTokens, Tokenize(p.Text))
		if score > 0 {
			results = append(results, Result{Passage: p, Score: score})
		}
	}

	// SliceStable keeps insertion order within equal scores.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// Tokenize lowercases the text and splits it on anything that is not a letter
// or digit, returning the set of unique tokens.
func Tokenize(text string) map[string]struct{} {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		tokens[f] = struct{}{}
	}
	return tokens
}

func overlap(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			n++
		}
	}
	return n
}
