package pricing

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultOpinetBaseURL = "https://www.opinet.co.kr/api"

// Opinet product codes for the nationwide average price feed.
const (
	prodGasoline = "B027"
	prodPremium  = "B034"
	prodDiesel   = "D047"
	prodLPG      = "C004"
)

var ErrNoOpinetKey = errors.New("opinet api key not configured")

// OpinetClient fetches nationwide average pump prices from the Opinet
// open API. It implements Provider.
type OpinetClient struct {
	apiKey  string
	baseURL string
	httpc   *http.Client
}

func NewOpinetClient(apiKey string) *OpinetClient {
	return &OpinetClient{
		apiKey:  apiKey,
		baseURL: defaultOpinetBaseURL,
		httpc:   &http.Client{Timeout: 10 * time.Second},
	}
}

type opinetBody struct {
	Oils []opinetOil `xml:"OIL"`
}

type opinetOil struct {
	ProductCode string `xml:"PRODCD"`
	Price       string `xml:"PRICE"`
}

func (c *OpinetClient) Fetch(ctx context.Context) (Quote, error) {
	if c.apiKey == "" {
		return Quote{}, ErrNoOpinetKey
	}

	u := fmt.Sprintf("%s/avgAllPrice.do?code=%s&out=xml", c.baseURL, url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Quote{}, fmt.Errorf("build opinet request: %w", err)
	}
	req.Header.Set("Accept", "application/xml")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return Quote{}, fmt.Errorf("opinet request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Quote{}, fmt.Errorf("opinet status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Quote{}, fmt.Errorf("read opinet body: %w", err)
	}
	// The feed reports errors inside a 200 body.
	if bytes.Contains(body, []byte("<ERROR>")) {
		return Quote{}, fmt.Errorf("opinet error body: %s", errorText(body))
	}

	var parsed opinetBody
	if err := xml.Unmarshal(body, &parsed); err != nil {
		return Quote{}, fmt.Errorf("decode opinet xml: %w", err)
	}

	q := Fallback()
	for _, oil := range parsed.Oils {
		price, err := strconv.ParseFloat(strings.TrimSpace(oil.Price), 64)
		if err != nil || price <= 0 {
			continue
		}
		won := int64(math.Round(price))
		switch code := strings.TrimSpace(oil.ProductCode); {
		case code == prodGasoline:
			q.Gasoline = won
		case code == prodPremium:
			q.PremiumGasoline = won
		case code == prodDiesel:
			q.Diesel = won
		case code == prodLPG || strings.Contains(code, "LPG"):
			q.LPG = won
		}
	}
	return q, nil
}

func errorText(body []byte) string {
	s := string(body)
	start := strings.Index(s, "<ERROR>")
	end := strings.Index(s, "</ERROR>")
	if start < 0 || end < 0 || end <= start {
		return "unknown"
	}
	return strings.TrimSpace(s[start+len("<ERROR>") : end])
}
