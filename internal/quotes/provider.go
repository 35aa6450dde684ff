package quotes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/resilience"
	"github.com/sony/gobreaker/v2"
)

var ErrEmptyResponse = errors.New("quotes provider returned no quotes")

type Provider interface {
	IsConfigured() bool
	Fetch(ctx context.Context, category string) ([]Quote, error)
}

// HTTPProvider talks to a QuoteGarden-style API.
type HTTPProvider struct {
	apiURL  string
	apiKey  string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[[]Quote]
}

type remoteQuote struct {
	QuoteText   string `json:"quoteText"`
	QuoteAuthor string `json:"quoteAuthor"`
}

type remoteResponse struct {
	Data []remoteQuote `json:"data"`
}

func NewHTTPProvider(apiURL, apiKey string, timeout time.Duration) *HTTPProvider {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPProvider{
		apiURL:  apiURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
		breaker: resilience.NewBreaker[[]Quote]("quotes_api", resilience.DefaultBreakerConfig()),
	}
}

func (p *HTTPProvider) IsConfigured() bool { return p.apiKey != "" && p.apiURL != "" }

func (p *HTTPProvider) Fetch(ctx context.Context, category string) ([]Quote, error) {
	return p.breaker.Execute(func() ([]Quote, error) {
		return p.call(ctx, category)
	})
}

func (p *HTTPProvider) call(ctx context.Context, category string) ([]Quote, error) {
	u, err := url.Parse(p.apiURL)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("author", "motivational")
	q.Set("category", category)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("quotes API status %d", resp.StatusCode)
	}

	var decoded remoteResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("decode quotes response: %w", err)
	}
	if len(decoded.Data) == 0 {
		return nil, ErrEmptyResponse
	}

	n := min(len(decoded.Data), 3)
	out := make([]Quote, 0, n)
	for _, rq := range decoded.Data[:n] {
		out = append(out, Quote{Text: rq.QuoteText, Author: rq.QuoteAuthor})
	}
	return out, nil
}
