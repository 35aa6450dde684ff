package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/resilience"
	"github.com/sony/gobreaker/v2"
)

var ErrInvalidProviderResponse = errors.New("invalid sentiment provider response")

// Provider is an optional remote sentiment service.
type Provider interface {
	IsConfigured() bool
	Analyze(ctx context.Context, text string) (*Result, error)
}

// HTTPProvider calls a JSON sentiment API with bearer auth.
type HTTPProvider struct {
	apiURL  string
	apiKey  string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[*Result]
}

type analyzeRequest struct {
	Text string `json:"text"`
}

func NewHTTPProvider(apiURL, apiKey string, timeout time.Duration) *HTTPProvider {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPProvider{
		apiURL:  apiURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
		breaker: resilience.NewBreaker[*Result]("sentiment_api", resilience.DefaultBreakerConfig()),
	}
}

func (p *HTTPProvider) IsConfigured() bool { return p.apiKey != "" && p.apiURL != "" }

func (p *HTTPProvider) Analyze(ctx context.Context, text string) (*Result, error) {
	return p.breaker.Execute(func() (*Result, error) {
		return p.call(ctx, text)
	})
}

func (p *HTTPProvider) call(ctx context.Context, text string) (*Result, error) {
	body, err := json.Marshal(analyzeRequest{Text: text})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("sentiment API status %d", resp.StatusCode)
	}

	var result Result
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProviderResponse, err)
	}
	if !result.Label.Valid() || result.Score < -1 || result.Score > 1 ||
		result.Confidence < 0 || result.Confidence > 1 {
		return nil, ErrInvalidProviderResponse
	}
	return &result, nil
}
