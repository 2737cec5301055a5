package provider

import (
	"context"

	"github.com/amirasaad/finledger/pkg/provider"
)

// StaticRates serves a fixed set of quotes. It backs offline deployments
// that run without API keys.
type StaticRates struct {
	name   string
	quotes []provider.Quote
}

var _ provider.RateFetcher = (*StaticRates)(nil)

func NewStaticRates(name string, quotes []provider.Quote) *StaticRates {
	cp := make([]provider.Quote, len(quotes))
	copy(cp, quotes)
	return &StaticRates{name: name, quotes: cp}
}

func (s *StaticRates) Name() string { return s.name }

func (s *StaticRates) FetchRates(ctx context.Context) ([]provider.Quote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]provider.Quote, len(s.quotes))
	copy(out, s.quotes)
	return out, nil
}
