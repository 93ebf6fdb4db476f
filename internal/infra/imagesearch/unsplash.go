// Package imagesearch finds illustration photos for generated articles.
package imagesearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"blogforge/internal/domain/entity"
)

const defaultEndpoint = "https://api.unsplash.com/search/photos"

// Searcher returns image URLs matching a search phrase.
type Searcher interface {
	Search(ctx context.Context, query string) ([]string, error)
}

// UnsplashClient queries the Unsplash photo search API. Requests are paced by
// a client-side rate limiter so a burst of article generations cannot exhaust
// the Unsplash demo quota (50 requests/hour).
type UnsplashClient struct {
	accessKey string
	endpoint  string
	client    *http.Client
	limiter   *rate.Limiter
	group     singleflight.Group
}

// Option configures an UnsplashClient.
type Option func(*UnsplashClient)

// WithEndpoint overrides the API endpoint. Used by tests.
func WithEndpoint(endpoint string) Option {
	return func(c *UnsplashClient) { c.endpoint = endpoint }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *UnsplashClient) { c.client = client }
}

func NewUnsplashClient(accessKey string, opts ...Option) *UnsplashClient {
	c := &UnsplashClient{
		accessKey: accessKey,
		endpoint:  defaultEndpoint,
		client:    &http.Client{Timeout: 10 * time.Second},
		// 50 requests/hour with a small burst allowance
		limiter: rate.NewLimiter(rate.Every(72*time.Second), 5),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// searchResponse mirrors the subset of the Unsplash search payload we read.
type searchResponse struct {
	Results []struct {
		URLs struct {
			Small string `json:"small"`
		} `json:"urls"`
	} `json:"results"`
}

// Search returns up to entity.MaxArticleImages landscape photo URLs for the
// query. An empty result list is not an error. Concurrent searches for the
// same query are collapsed into a single upstream request.
func (c *UnsplashClient) Search(ctx context.Context, query string) ([]string, error) {
	if c.accessKey == "" {
		return nil, fmt.Errorf("unsplash access key not configured")
	}

	result, err, _ := c.group.Do(query, func() (any, error) {
		return c.search(ctx, query)
	})
	if err != nil {
		return nil, err
	}
	return result.([]string), nil
}

func (c *UnsplashClient) search(ctx context.Context, query string) ([]string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("unsplash rate wait: %w", err)
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", strconv.Itoa(entity.MaxArticleImages))
	params.Set("orientation", "landscape")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("unsplash request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+c.accessKey)
	req.Header.Set("Accept-Version", "v1")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unsplash search: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unsplash search: unexpected status %d", resp.StatusCode)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("unsplash decode: %w", err)
	}

	urls := make([]string, 0, entity.MaxArticleImages)
	for _, result := range payload.Results {
		if result.URLs.Small == "" {
			continue
		}
		urls = append(urls, result.URLs.Small)
		if len(urls) == entity.MaxArticleImages {
			break
		}
	}
	return urls, nil
}
