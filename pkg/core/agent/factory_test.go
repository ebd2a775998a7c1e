package agent

import (
	"errors"
	"strings"
	"testing"

	"legacy_m/pkg/core/corpus"
	"legacy_m/pkg/core/llm"
	"legacy_m/pkg/core/retrieval"
)

func testCorpus() *corpus.Corpus {
	return corpus.New([]corpus.Passage{
		{Confession: "orthodox", Reference: "Мф 5:9", Text: "Блаженны миротворцы"},
		{Confession: "sunni", Reference: "Коран 2:255", Text: "Аят аль-Курси"},
		{Confession: "shia", Reference: "аль-Кафи 1:1", Text: "Книга разума и невежества"},
	})
}

func TestFactoryKnownConfessions(t *testing.T) {
	f := NewFactory(testCorpus())

	for _, id := range []string{"orthodox", "sunni", "shia"} {
		a, err := f.New(id)
		if err != nil {
			t.Fatalf("New(%s): %v", id, err)
		}
		if a.Confession() != id {
			t.Errorf("expected confession %s, got %s", id, a.Confession())
		}
		if a.SystemPrompt() == "" {
			t.Errorf("%s agent has empty system prompt", id)
		}
	}
}

func TestFactoryUnknownConfession(t *testing.T) {
	f := NewFactory(testCorpus())

	_, err := f.New("unknown123")
	if !errors.Is(err, ErrUnsupportedConfession) {
		t.Fatalf("expected ErrUnsupportedConfession, got %v", err)
	}
}

func TestFactoryRejectsEmptyCorpus(t *testing.T) {
	// shia is registered but has no passages here
	c := corpus.New([]corpus.Passage{
		{Confession: "orthodox", Reference: "Мф 5:9", Text: "Блаженны миротворцы"},
	})
	f := NewFactory(c)

	_, err := f.New("shia")
	if !errors.Is(err, ErrUnsupportedConfession) {
		t.Fatalf("expected ErrUnsupportedConfession for empty corpus, got %v", err)
	}
}

func TestFactoryRegisterExtension(t *testing.T) {
	c := corpus.New([]corpus.Passage{
		{Confession: "catholic", Reference: "CCC 1", Text: "Катехизис"},
	})
	f := NewFactory(c)
	f.Register("catholic", func(s *retrieval.Searcher) Agent {
		return &orthodoxAgent{base{confession: "catholic", searcher: s}}
	})

	a, err := f.New("catholic")
	if err != nil {
		t.Fatal(err)
	}
	if a.Confession() != "catholic" {
		t.Errorf("expected catholic, got %s", a.Confession())
	}
}

func TestComposeRequestEmbedsSources(t *testing.T) {
	f := NewFactory(testCorpus())
	a, err := f.New("orthodox")
	if err != nil {
		t.Fatal(err)
	}

	results := a.SearchRelevantTexts("кто такие миротворцы", 5)
	if len(results) == 0 {
		t.Fatal("expected at least one relevant passage")
	}

	history := []llm.Message{
		{Role: "user", Content: "предыдущий вопрос"},
		{Role: "assistant", Content: "предыдущий ответ"},
	}
	req := ComposeRequest(a, "кто такие миротворцы", history, results)

	if req.System != a.SystemPrompt() {
		t.Error("system prompt not carried into request")
	}
	if len(req.History) != 2 {
		t.Errorf("expected history of 2, got %d", len(req.History))
	}
	if !strings.Contains(req.Question, "Мф 5:9") {
		t.Errorf("sources block missing reference: %q", req.Question)
	}
	if !strings.Contains(req.Question, "кто такие миротворцы") {
		t.Errorf("question missing from prompt: %q", req.Question)
	}
}

func TestComposeRequestNoSources(t *testing.T) {
	f := NewFactory(testCorpus())
	a, _ := f.New("orthodox")

	req := ComposeRequest(a, "вопрос без совпадений", nil, nil)
	if !strings.Contains(req.Question, "Релевантных источников не найдено") {
		t.Errorf("expected no-sources note in prompt, got %q", req.Question)
	}
}
