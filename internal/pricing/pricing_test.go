package pricing

import (
	"context"
	"errors"
	"testing"
	"time"

	"gyeongbi/internal/core"
)

type fakeProvider struct {
	quote Quote
	err   error
	calls int
}

func (f *fakeProvider) Fetch(ctx context.Context) (Quote, error) {
	f.calls++
	return f.quote, f.err
}

func TestPriceFor(t *testing.T) {
	q := Quote{Gasoline: 1850, PremiumGasoline: 2100, Diesel: 1650, LPG: 950}
	tests := []struct {
		fuel core.FuelType
		q    Quote
		want int64
	}{
		{core.FuelGasoline, q, 1850},
		{core.FuelPremium, q, 2100},
		{core.FuelDiesel, q, 1650},
		{core.FuelLPG, q, 950},
		{core.FuelElectric, q, 0},
		{core.FuelPremium, Fallback(), 1850}, // absent premium falls back to gasoline
		{"bogus", q, 1850},
	}
	for _, tt := range tests {
		if got := PriceFor(tt.fuel, tt.q); got != tt.want {
			t.Errorf("PriceFor(%s) = %d, want %d", tt.fuel, got, tt.want)
		}
	}
}

func TestResolverCachesWithinTTL(t *testing.T) {
	provider := &fakeProvider{quote: Quote{Gasoline: 1900, Diesel: 1700, LPG: 1000}}
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	r := NewResolver(provider)
	r.now = func() time.Time { return now }

	first := r.Current(context.Background())
	if first.Gasoline != 1900 {
		t.Fatalf("gasoline = %d, want 1900", first.Gasoline)
	}

	now = now.Add(30 * time.Minute)
	r.Current(context.Background())
	if provider.calls != 1 {
		t.Errorf("provider called %d times within ttl, want 1", provider.calls)
	}

	now = now.Add(45 * time.Minute) // past the 1h window
	r.Current(context.Background())
	if provider.calls != 2 {
		t.Errorf("provider called %d times after expiry, want 2", provider.calls)
	}
}

func TestResolverFallsBackToLastKnownGood(t *testing.T) {
	provider := &fakeProvider{quote: Quote{Gasoline: 1920, Diesel: 1710, LPG: 990}}
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	r := NewResolver(provider)
	r.now = func() time.Time { return now }

	r.Current(context.Background())

	provider.err = errors.New("feed down")
	now = now.Add(2 * time.Hour)
	got := r.Current(context.Background())
	if got.Gasoline != 1920 {
		t.Errorf("gasoline = %d, want stale 1920", got.Gasoline)
	}
}

func TestResolverFallsBackToConstants(t *testing.T) {
	provider := &fakeProvider{err: errors.New("feed down")}
	r := NewResolver(provider)

	got := r.Current(context.Background())
	want := Fallback()
	if got.Quote != want {
		t.Errorf("Current() = %+v, want fallback %+v", got.Quote, want)
	}
}

func TestResolverNilProvider(t *testing.T) {
	r := NewResolver(nil)
	if got := r.Current(context.Background()); got.Quote != Fallback() {
		t.Errorf("Current() = %+v, want fallback", got.Quote)
	}
}

func TestPricePerLiterOverrideWins(t *testing.T) {
	provider := &fakeProvider{quote: Quote{Gasoline: 1900, Diesel: 1700, LPG: 1000}}
	r := NewResolver(provider)

	if got := r.PricePerLiter(context.Background(), core.FuelGasoline, 2000); got != 2000 {
		t.Errorf("override price = %d, want 2000", got)
	}
	if provider.calls != 0 {
		t.Errorf("provider called %d times with override set, want 0", provider.calls)
	}
	if got := r.PricePerLiter(context.Background(), core.FuelDiesel, 0); got != 1700 {
		t.Errorf("resolved price = %d, want 1700", got)
	}
}
