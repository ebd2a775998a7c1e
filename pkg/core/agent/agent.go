package agent

import (
	"fmt"
	"strings"

	"legacy_m/pkg/core/llm"
	"legacy_m/pkg/core/retrieval"
)

// Agent answers questions within one confession: it owns the system prompt
// and knows how to find relevant passages for a question.
type Agent interface {
	Confession() string
	SystemPrompt() string
	SearchRelevantTexts(question string, limit int) []retrieval.Result
}

// passageExcerptLen caps how much of a passage goes into the prompt context.
const passageExcerptLen = 400

// base carries the shared retrieval wiring; each confession variant embeds it
// and supplies its own system prompt.
type base struct {
	confession string
	searcher   *retrieval.Searcher
}

func (b base) Confession() string { return b.confession }

func (b base) SearchRelevantTexts(question string, limit int) []retrieval.Result {
	return b.searcher.Search(question, b.confession, limit)
}

// ComposeRequest builds the provider request: system prompt, short history,
// and a user turn that embeds the retrieved passages as a sources block.
func ComposeRequest(a Agent, question string, history []llm.Message, results []retrieval.Result) llm.Request {
	var sb strings.Builder
	sb.WriteString("Вопрос: ")
	sb.WriteString(question)
	sb.WriteString("\n\n")

	if len(results) > 0 {
		sb.WriteString("Источники:\n")
		for _, r := range results {
			text := r.Passage.Text
			if len([]rune(text)) > passageExcerptLen {
				text = string([]rune(text)[:passageExcerptLen]) + "..."
			}
			fmt.Fprintf(&sb, "%s: %s\n", r.Passage.Reference, text)
		}
		sb.WriteString("\nОтветь кратко, опираясь на источники. НЕ копируй длинные цитаты!")
	} else {
		sb.WriteString("Релевантных источников не найдено. Ответь кратко и честно укажи, что для полного ответа стоит обратиться к духовному наставнику.")
	}

	return llm.Request{
		System:   a.SystemPrompt(),
		History:  history,
		Question: sb.String(),
	}
}
