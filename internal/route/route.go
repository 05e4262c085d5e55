// Package route finds driving route candidates between two free-text
// endpoints.
package route

import (
	"context"
	"errors"
	"math/rand"

	"gyeongbi/internal/core"
)

var (
	ErrEmptyEndpoints = errors.New("departure and destination are required")
	ErrNoCredentials  = errors.New("route provider credentials not configured")
	ErrNoRouteFound   = errors.New("no route found between endpoints")
)

// Query is one route search request.
type Query struct {
	Departure   string `json:"departure"`
	Destination string `json:"destination"`
}

func (q Query) Validate() error {
	if q.Departure == "" || q.Destination == "" {
		return ErrEmptyEndpoints
	}
	return nil
}

// Result carries the candidates of a search. Mock marks synthetic
// candidates produced without a real provider, so the caller can tell
// them apart from live data.
type Result struct {
	Candidates []core.RouteCandidate `json:"routes"`
	Mock       bool                  `json:"mock,omitempty"`
}

// Provider searches routes against an external source.
type Provider interface {
	Search(ctx context.Context, q Query) (Result, error)
}

// MockProvider fabricates three plausible candidates per search. Used
// when no real provider credentials are configured.
type MockProvider struct {
	rng *rand.Rand
}

func NewMockProvider(seed int64) *MockProvider {
	return &MockProvider{rng: rand.New(rand.NewSource(seed))}
}

func (m *MockProvider) Search(ctx context.Context, q Query) (Result, error) {
	if err := q.Validate(); err != nil {
		return Result{}, err
	}
	bases := []core.RouteCandidate{
		{DistanceKm: 200, DurationMin: 120, TollFeeWon: 10000},
		{DistanceKm: 250, DurationMin: 150, TollFeeWon: 15000},
		{DistanceKm: 300, DurationMin: 180, TollFeeWon: 8000},
	}
	out := make([]core.RouteCandidate, 0, len(bases))
	for _, b := range bases {
		out = append(out, core.RouteCandidate{
			DistanceKm:  b.DistanceKm + float64(m.rng.Intn(100)),
			DurationMin: b.DurationMin + float64(m.rng.Intn(60)),
			TollFeeWon:  b.TollFeeWon + int64(m.rng.Intn(10000)),
		})
	}
	return Result{Candidates: out, Mock: true}, nil
}
