package route

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMockProvider(t *testing.T) {
	m := NewMockProvider(42)
	res, err := m.Search(context.Background(), Query{Departure: "Seoul", Destination: "Busan"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if !res.Mock {
		t.Error("mock result not flagged as mock")
	}
	if len(res.Candidates) != 3 {
		t.Fatalf("candidates = %d, want 3", len(res.Candidates))
	}
	for i, c := range res.Candidates {
		if c.DistanceKm < 200 || c.DistanceKm >= 400 {
			t.Errorf("candidate %d distance %v out of range", i, c.DistanceKm)
		}
		if c.TollFeeWon < 8000 || c.TollFeeWon >= 25000 {
			t.Errorf("candidate %d toll %d out of range", i, c.TollFeeWon)
		}
	}
}

func TestMockProviderEmptyQuery(t *testing.T) {
	m := NewMockProvider(1)
	if _, err := m.Search(context.Background(), Query{Departure: "Seoul"}); !errors.Is(err, ErrEmptyEndpoints) {
		t.Fatalf("err = %v, want ErrEmptyEndpoints", err)
	}
}

func TestNaverSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-NCP-APIGW-API-KEY-ID"); got != "id" {
			t.Errorf("client id header = %q", got)
		}
		if got := r.URL.Query().Get("option"); got != "trafast" {
			t.Errorf("option = %q, want trafast", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"route": {"trafast": [
				{"summary": {"distance": 249612, "duration": 10782000, "tollFare": 15000}},
				{"summary": {"distance": 301200, "duration": 12300000, "tollFare": 9800}}
			]}
		}`))
	}))
	defer srv.Close()

	c := NewNaverClient("id", "secret")
	c.baseURL = srv.URL

	res, err := c.Search(context.Background(), Query{Departure: "Seoul", Destination: "Busan"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.Mock {
		t.Error("live result flagged as mock")
	}
	if len(res.Candidates) != 2 {
		t.Fatalf("candidates = %d, want 2", len(res.Candidates))
	}
	first := res.Candidates[0]
	if first.DistanceKm != 250 {
		t.Errorf("distance = %v, want 250 (meters rounded to km)", first.DistanceKm)
	}
	if first.DurationMin != 180 {
		t.Errorf("duration = %v, want 180 (ms rounded to minutes)", first.DurationMin)
	}
	if first.TollFeeWon != 15000 {
		t.Errorf("toll = %d, want 15000", first.TollFeeWon)
	}
}

func TestNaverSearchNoCredentials(t *testing.T) {
	c := NewNaverClient("", "")
	_, err := c.Search(context.Background(), Query{Departure: "Seoul", Destination: "Busan"})
	if !errors.Is(err, ErrNoCredentials) {
		t.Fatalf("err = %v, want ErrNoCredentials", err)
	}
}

func TestNaverSearchNoRoutes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"route": {"trafast": []}}`))
	}))
	defer srv.Close()

	c := NewNaverClient("id", "secret")
	c.baseURL = srv.URL

	_, err := c.Search(context.Background(), Query{Departure: "Seoul", Destination: "Dokdo"})
	if !errors.Is(err, ErrNoRouteFound) {
		t.Fatalf("err = %v, want ErrNoRouteFound", err)
	}
}

func TestNaverSearchStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewNaverClient("id", "secret")
	c.baseURL = srv.URL

	if _, err := c.Search(context.Background(), Query{Departure: "a", Destination: "b"}); err == nil {
		t.Fatal("want error for non-200 status")
	}
}
