// Package imagesearch looks up stock photos for generated challenges.
package imagesearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"fitchallenge/internal/logger"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const DefaultBaseURL = "https://pixabay.com/api/"

// Searcher returns candidate image URLs for a free-text query. An empty result is not
// an error.
type Searcher interface {
	Search(ctx context.Context, query string) ([]string, error)
}

type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *logger.LogMiddleware
}

type ClientProps struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	Logger  *logger.LogMiddleware
}

type searchResponse struct {
	Total     int `json:"total"`
	TotalHits int `json:"totalHits"`
	Hits      []struct {
		ID            int    `json:"id"`
		WebformatURL  string `json:"webformatURL"`
		LargeImageURL string `json:"largeImageURL"`
	} `json:"hits"`
}

func NewClient(args ClientProps) *Client {
	baseURL := args.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := args.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		apiKey:  args.APIKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: args.Logger,
	}
}

// Search queries Pixabay photos and returns the web-format URL of every hit.
func (c *Client) Search(ctx context.Context, query string) ([]string, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("q", query)
	params.Set("image_type", "photo")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pixabay request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pixabay api error: %d", resp.StatusCode)
	}

	var data searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decoding pixabay response: %w", err)
	}

	urls := make([]string, 0, len(data.Hits))
	for _, hit := range data.Hits {
		if hit.WebformatURL != "" {
			urls = append(urls, hit.WebformatURL)
		}
	}
	c.logger.Logger(ctx).Debug("[Pixabay] search finished", zap.String("query", query), zap.Int("hits", len(urls)))
	return urls, nil
}
