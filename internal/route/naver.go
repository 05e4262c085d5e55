package route

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"

	"gyeongbi/internal/core"
)

const defaultNaverBaseURL = "https://naveropenapi.apigw.ntruss.com/map-direction/v1"

// NaverClient queries the Naver Directions API with the traffic-fast
// option. It implements Provider.
type NaverClient struct {
	clientID     string
	clientSecret string
	baseURL      string
	httpc        *http.Client
}

func NewNaverClient(clientID, clientSecret string) *NaverClient {
	return &NaverClient{
		clientID:     clientID,
		clientSecret: clientSecret,
		baseURL:      defaultNaverBaseURL,
		httpc:        &http.Client{Timeout: 10 * time.Second},
	}
}

type naverResponse struct {
	Route struct {
		Trafast []struct {
			Summary struct {
				Distance float64 `json:"distance"` // meters
				Duration float64 `json:"duration"` // milliseconds
				TollFare int64   `json:"tollFare"`
			} `json:"summary"`
		} `json:"trafast"`
	} `json:"route"`
}

func (c *NaverClient) Search(ctx context.Context, q Query) (Result, error) {
	if err := q.Validate(); err != nil {
		return Result{}, err
	}
	if c.clientID == "" || c.clientSecret == "" {
		return Result{}, ErrNoCredentials
	}

	u := fmt.Sprintf("%s/driving?start=%s&goal=%s&option=trafast",
		c.baseURL, url.QueryEscape(q.Departure), url.QueryEscape(q.Destination))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Result{}, fmt.Errorf("build naver request: %w", err)
	}
	req.Header.Set("X-NCP-APIGW-API-KEY-ID", c.clientID)
	req.Header.Set("X-NCP-APIGW-API-KEY", c.clientSecret)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("naver request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return Result{}, fmt.Errorf("naver status %d: %s", resp.StatusCode, body)
	}

	var parsed naverResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return Result{}, fmt.Errorf("decode naver response: %w", err)
	}

	if len(parsed.Route.Trafast) == 0 {
		return Result{}, ErrNoRouteFound
	}
	out := make([]core.RouteCandidate, 0, len(parsed.Route.Trafast))
	for _, r := range parsed.Route.Trafast {
		out = append(out, core.RouteCandidate{
			DistanceKm:  math.Round(r.Summary.Distance / 1000),
			DurationMin: math.Round(r.Summary.Duration / 60000),
			TollFeeWon:  r.Summary.TollFare,
		})
	}
	return Result{Candidates: out}, nil
}
