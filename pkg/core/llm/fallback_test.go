package llm

import (
	"context"
	"errors"
	"testing"

	"legacy_m/pkg/logger"
)

// stubProvider lets tests script per-provider behavior.
type stubProvider struct {
	name     string
	text     string
	err      error
	attempts int
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Complete(ctx context.Context, req Request) (string, error) {
	s.attempts++
	if s.err != nil {
		return "", s.err
	}
	return s.text, nil
}

func TestDispatcherFallsThroughToLocal(t *testing.T) {
	primary := &stubProvider{name: "anthropic", err: &ProviderError{Provider: "anthropic", Err: errors.New("rate limited")}}
	secondary := &stubProvider{name: "openai", err: &ProviderError{Provider: "openai", Err: errors.New("timeout")}}
	local := &stubProvider{name: "ollama", text: "local answer"}

	d := NewDispatcher([]Provider{primary, secondary, local}, logger.New())

	text, provider, err := d.Complete(context.Background(), Request{Question: "q"})
	if err != nil {
		t.Fatalf("expected success from local provider, got %v", err)
	}
	if text != "local answer" {
		t.Errorf("expected local answer, got %q", text)
	}
	if provider != "ollama" {
		t.Errorf("expected ollama, got %s", provider)
	}
	if primary.attempts != 1 || secondary.attempts != 1 || local.attempts != 1 {
		t.Errorf("expected exactly one attempt per provider, got %d/%d/%d",
			primary.attempts, secondary.attempts, local.attempts)
	}
}

func TestDispatcherPrimaryWinsWithoutFallback(t *testing.T) {
	primary := &stubProvider{name: "anthropic", text: "primary answer"}
	secondary := &stubProvider{name: "openai", text: "should not be used"}

	d := NewDispatcher([]Provider{primary, secondary}, logger.New())

	text, provider, err := d.Complete(context.Background(), Request{Question: "q"})
	if err != nil {
		t.Fatal(err)
	}
	if text != "primary answer" || provider != "anthropic" {
		t.Errorf("got %q from %s", text, provider)
	}
	if secondary.attempts != 0 {
		t.Errorf("secondary should never be attempted, got %d attempts", secondary.attempts)
	}
}

func TestDispatcherAllProvidersFailed(t *testing.T) {
	failing := func(name string) *stubProvider {
		return &stubProvider{name: name, err: &ProviderError{Provider: name, Err: errors.New("down")}}
	}

	d := NewDispatcher([]Provider{failing("anthropic"), failing("openai"), failing("ollama")}, logger.New())

	_, _, err := d.Complete(context.Background(), Request{Question: "q"})
	if !errors.Is(err, ErrAllProvidersFailed) {
		t.Fatalf("expected ErrAllProvidersFailed, got %v", err)
	}
}

func TestDispatcherEmptyChain(t *testing.T) {
	d := NewDispatcher(nil, logger.New())
	_, _, err := d.Complete(context.Background(), Request{Question: "q"})
	if !errors.Is(err, ErrAllProvidersFailed) {
		t.Fatalf("expected ErrAllProvidersFailed, got %v", err)
	}
}
