package llm

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// ErrAllProvidersFailed is returned when every provider in the chain has been
// tried and failed. The boundary layer maps it to a generic
// "service unavailable" message without leaking provider detail.
var ErrAllProvidersFailed = errors.New("all AI providers failed")

// Dispatcher tries an ordered provider chain until one succeeds. The chain is
// fixed at construction; there is no shared mutable provider state. Each
// provider gets exactly one attempt per request.
type Dispatcher struct {
	providers []Provider
	log       zerolog.Logger
}

func NewDispatcher(providers []Provider, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{providers: providers, log: log}
}

// Providers returns the configured chain order by name.
func (d *Dispatcher) Providers() []string {
	names := make([]string, len(d.providers))
	for i, p := range d.providers {
		names[i] = p.Name()
	}
	return names
}

// Complete runs the request through the chain and returns the first
// successful completion along with the name of the provider that produced it.
func (d *Dispatcher) Complete(ctx context.Context, req Request) (text string, provider string, err error) {
	if len(d.providers) == 0 {
		return "", "", ErrAllProvidersFailed
	}

	for _, p := range d.providers {
		d.log.Info().Str("provider", p.Name()).Msg("attempting provider")
		text, err := p.Complete(ctx, req)
		if err == nil {
			d.log.Info().Str("provider", p.Name()).Msg("provider succeeded")
			return text, p.Name(), nil
		}
		d.log.Warn().Str("provider", p.Name()).Err(err).Msg("provider failed, advancing")
	}

	return "", "", ErrAllProvidersFailed
}
