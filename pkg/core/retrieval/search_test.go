package retrieval

import (
	"testing"

	"legacy_m/pkg/core/corpus"
)

func testCorpus() *corpus.Corpus {
	return corpus.New([]corpus.Passage{
		{Confession: "orthodox", Reference: "Мф 5:9", Text: "Блаженны миротворцы, ибо они будут наречены сынами Божиими"},
		{Confession: "orthodox", Reference: "Пс 22:1", Text: "Господь — Пастырь мой; я ни в чем не буду нуждаться"},
		{Confession: "orthodox", Reference: "Ин 14:27", Text: "Мир оставляю вам, мир Мой даю вам"},
		{Confession: "sunni", Reference: "Коран 2:255", Text: "Аллах — нет божества, кроме Него, Живого, Вседержителя"},
	})
}

func TestSearchRanksByOverlap(t *testing.T) {
	s := NewSearcher(testCorpus())

	results := s.Search("мир оставляю вам", "orthodox", 5)
	if len(results) == 0 {
		t.Fatal("expected results, got none")
	}
	if results[0].Passage.Reference != "Ин 14:27" {
		t.Errorf("expected Ин 14:27 first, got %s", results[0].Passage.Reference)
	}
	if results[0].Score < 3 {
		t.Errorf("expected score >= 3, got %d", results[0].Score)
	}
}

func TestSearchNoMatchingTokens(t *testing.T) {
	s := NewSearcher(testCorpus())

	// Zero overlap must return an empty list, never an error.
	results := s.Search("quantum chromodynamics", "orthodox", 5)
	if len(results) != 0 {
		t.Errorf("expected empty results, got %d", len(results))
	}
}

func TestSearchIsConfessionScoped(t *testing.T) {
	s := NewSearcher(testCorpus())

	results := s.Search("Аллах божества", "orthodox", 5)
	for _, r := range results {
		if r.Passage.Confession != "orthodox" {
			t.Errorf("got passage from %s in orthodox search", r.Passage.Confession)
		}
	}
}

func TestSearchTiesKeepInsertionOrder(t *testing.T) {
	c := corpus.New([]corpus.Passage{
		{Confession: "x", Reference: "a", Text: "вера"},
		{Confession: "x", Reference: "b", Text: "вера"},
		{Confession: "x", Reference: "c", Text: "вера"},
	})
	s := NewSearcher(c)

	results := s.Search("вера", "x", 5)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, want := range []string{"a", "b", "c"} {
		if results[i].Passage.Reference != want {
			t.Errorf("position %d: expected %s, got %s", i, want, results[i].Passage.Reference)
		}
	}
}

func TestSearchLimit(t *testing.T) {
	c := corpus.New([]corpus.Passage{
		{Confession: "x", Reference: "a", Text: "молитва и пост"},
		{Confession: "x", Reference: "b", Text: "молитва дома"},
		{Confession: "x", Reference: "c", Text: "молитва в храме"},
	})
	s := NewSearcher(c)

	results := s.Search("молитва", "x", 2)
	if len(results) != 2 {
		t.Errorf("expected 2 results with limit 2, got %d", len(results))
	}

	// limit <= 0 falls back to DefaultLimit
	results = s.Search("молитва", "x", 0)
	if len(results) != 3 {
		t.Errorf("expected 3 results with default limit, got %d", len(results))
	}
}
