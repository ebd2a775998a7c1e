package corpus

import (
	"fmt"
)

// Passage is an immutable scripture/reference text snippet tagged to a confession.
type Passage struct {
	Confession string `json:"confession" yaml:"confession"`
	Reference  string `json:"reference" yaml:"reference"`
	Text       string `json:"text" yaml:"text"`
}

// Corpus holds the full passage set, grouped by confession.
// It is built once at startup and never mutated afterwards, so it is safe to
// share across concurrent requests without locking.
type Corpus struct {
	byConfession map[string][]Passage
}

// New builds a Corpus from a flat passage list. Per-confession insertion order
// is preserved; retrieval uses it as the tie-breaker.
func New(passages []Passage) *Corpus {
	c := &Corpus{byConfession: make(map[string][]Passage)}
	for _, p := range passages {
		c.byConfession[p.Confession] = append(c.byConfession[p.Confession], p)
	}
	return c
}

// Passages returns the passage list for a confession in insertion order.
// The returned slice must not be modified.
func (c *Corpus) Passages(confession string) []Passage {
	return c.byConfession[confession]
}

// Confessions lists every confession that has at least one passage.
func (c *Corpus) Confessions() []string {
	out := make([]string, 0, len(c.byConfession))
	for name, ps := range c.byConfession {
		if len(ps) > 0 {
			out = append(out, name)
		}
	}
	return out
}

// Has reports whether a confession has a non-empty passage set. The agent
// factory refuses confessions for which this is false.
func (c *Corpus) Has(confession string) bool {
	return len(c.byConfession[confession]) > 0
}

// Size returns the total passage count.
func (c *Corpus) Size() int {
	n := 0
	for _, ps := range c.byConfession {
		n += len(ps)
	}
	return n
}

func (p Passage) String() string {
	return fmt.Sprintf("%s: %s", p.Reference, p.Text)
}
