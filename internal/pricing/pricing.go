// Package pricing resolves per-liter fuel prices from an external
// provider, with an in-process freshness cache and constant fallbacks
// so callers never see an error.
package pricing

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"gyeongbi/internal/core"
)

// Quote is one set of nationwide average prices in won per liter.
// PremiumGasoline is zero when the provider did not report it.
type Quote struct {
	Gasoline        int64 `json:"gasoline"`
	PremiumGasoline int64 `json:"premiumGasoline,omitempty"`
	Diesel          int64 `json:"diesel"`
	LPG             int64 `json:"lpg"`
}

// Prices is a quote plus the moment it was obtained.
type Prices struct {
	Quote
	FetchedAt time.Time `json:"fetchedAt"`
}

// Provider fetches current prices from an external source.
type Provider interface {
	Fetch(ctx context.Context) (Quote, error)
}

// Fallback is the constant set used when no provider value is
// available. Premium gasoline is deliberately absent.
func Fallback() Quote {
	return Quote{Gasoline: 1850, Diesel: 1650, LPG: 950}
}

// PriceFor picks the per-liter price for a fuel type out of a quote.
// Electric returns 0: electric trips are costed on a flat tariff, not
// a pump price. A fuel with no reported price falls back to gasoline.
func PriceFor(fuel core.FuelType, q Quote) int64 {
	switch fuel {
	case core.FuelElectric:
		return 0
	case core.FuelDiesel:
		if q.Diesel > 0 {
			return q.Diesel
		}
	case core.FuelLPG:
		if q.LPG > 0 {
			return q.LPG
		}
	case core.FuelPremium:
		if q.PremiumGasoline > 0 {
			return q.PremiumGasoline
		}
	}
	return q.Gasoline
}

// DefaultTTL is how long a fetched quote stays fresh.
const DefaultTTL = time.Hour

// Resolver serves prices through an ordered fallback chain: fresh
// cache, then provider, then last-known-good cache, then constants.
// Current never fails; provider errors are logged and absorbed.
type Resolver struct {
	provider Provider
	ttl      time.Duration
	now      func() time.Time

	mu        sync.Mutex
	cached    Quote
	fetchedAt time.Time
}

func NewResolver(provider Provider) *Resolver {
	return &Resolver{
		provider: provider,
		ttl:      DefaultTTL,
		now:      time.Now,
	}
}

// Current returns the best available price set.
func (r *Resolver) Current(ctx context.Context) Prices {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if !r.fetchedAt.IsZero() && now.Sub(r.fetchedAt) <= r.ttl {
		return Prices{Quote: r.cached, FetchedAt: r.fetchedAt}
	}

	if r.provider != nil {
		q, err := r.provider.Fetch(ctx)
		if err == nil {
			r.cached = q
			r.fetchedAt = now
			return Prices{Quote: q, FetchedAt: now}
		}
		slog.WarnContext(ctx, "fuel price fetch failed", "error", err)
	}

	if !r.fetchedAt.IsZero() {
		return Prices{Quote: r.cached, FetchedAt: r.fetchedAt}
	}
	return Prices{Quote: Fallback(), FetchedAt: now}
}

// PricePerLiter resolves the price to feed the cost calculator. A
// positive override wins outright and bypasses cache and fallbacks.
func (r *Resolver) PricePerLiter(ctx context.Context, fuel core.FuelType, override int64) int64 {
	if override > 0 {
		return override
	}
	return PriceFor(fuel, r.Current(ctx).Quote)
}
