package agent

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"legacy_m/pkg/core/corpus"
	"legacy_m/pkg/core/retrieval"
)

// ErrUnsupportedConfession is returned for confession ids the factory does not
// know, or knows but has no passages for. A user error, not a server fault.
var ErrUnsupportedConfession = errors.New("unsupported confession")

// Constructor builds a confession agent over the shared searcher.
type Constructor func(s *retrieval.Searcher) Agent

// Factory maps confession ids to agent variants. The built-in set is closed
// {orthodox, sunni, shia}; new confessions are added through Register before
// the factory is shared across requests.
type Factory struct {
	corpus       *corpus.Corpus
	searcher     *retrieval.Searcher
	constructors map[string]Constructor
}

func NewFactory(c *corpus.Corpus) *Factory {
	f := &Factory{
		corpus:       c,
		searcher:     retrieval.NewSearcher(c),
		constructors: make(map[string]Constructor),
	}
	f.Register("orthodox", newOrthodoxAgent)
	f.Register("sunni", newSunniAgent)
	f.Register("shia", newShiaAgent)
	return f
}

// Register adds a confession variant. Call during setup only; the factory is
// read-only once request handling starts.
func (f *Factory) Register(confession string, ctor Constructor) {
	f.constructors[strings.ToLower(confession)] = ctor
}

// New returns the agent for a confession id. Unknown ids and confessions with
// an empty passage corpus both fail with ErrUnsupportedConfession.
func (f *Factory) New(confession string) (Agent, error) {
	id := strings.ToLower(strings.TrimSpace(confession))
	ctor, ok := f.constructors[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedConfession, confession)
	}
	if !f.corpus.Has(id) {
		return nil, fmt.Errorf("%w: %s has no passage corpus", ErrUnsupportedConfession, confession)
	}
	return ctor(f.searcher), nil
}

// Supported lists registered confessions that have a non-empty corpus.
func (f *Factory) Supported() []string {
	var out []string
	for id := range f.constructors {
		if f.corpus.Has(id) {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}
