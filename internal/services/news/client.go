// Package news provides the news source boundary: a live feed API client and
// a deterministic sample-data source, selected by configuration.
package news

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/ternarybob/cognita/internal/models"
)

const (
	// DefaultTimeout is the default HTTP timeout
	DefaultTimeout = 30 * time.Second

	// DefaultRateLimit is the default rate limit (requests per second)
	DefaultRateLimit = 5
)

// StatusError is returned when the news API responds with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("news api returned status %d: %s", e.StatusCode, e.Body)
}

// Client is a live news feed API client
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     arbor.ILogger
	limiter    *rate.Limiter
}

// ClientOption configures the Client
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets a logger
func WithLogger(logger arbor.ILogger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets a custom rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// NewClient creates a new news API client
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// apiEnvelope is the common response wrapper of the feed API
type apiEnvelope struct {
	Data json.RawMessage `json:"data"`
}

// do performs a request and decodes the "data" envelope into result
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("news: %w", err)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("news: marshal payload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("news: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("news: request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("news: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	var envelope apiEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return fmt.Errorf("news: decode envelope: %w", err)
	}
	if err := json.Unmarshal(envelope.Data, result); err != nil {
		return fmt.Errorf("news: decode data: %w", err)
	}

	return nil
}

// sanitize strips HTML from article bodies; feed items frequently carry
// markup we do not want in stored document content.
func sanitize(articles []models.NewsArticle) []models.NewsArticle {
	for i := range articles {
		articles[i].Content = StripHTML(articles[i].Content)
	}
	return articles
}

// SearchNews returns articles matching a free-text query
func (c *Client) SearchNews(ctx context.Context, query string, limit int) ([]models.NewsArticle, error) {
	payload := map[string]interface{}{
		"query": query,
		"limit": limit,
	}

	var articles []models.NewsArticle
	if err := c.do(ctx, http.MethodPost, "/search", nil, payload, &articles); err != nil {
		return nil, err
	}

	if c.logger != nil {
		c.logger.Debug().Str("query", query).Int("count", len(articles)).Msg("News search complete")
	}
	return sanitize(articles), nil
}

// NewsByCategory returns articles in a category
func (c *Client) NewsByCategory(ctx context.Context, category string, limit int) ([]models.NewsArticle, error) {
	q := url.Values{}
	q.Set("limit", fmt.Sprintf("%d", limit))

	var articles []models.NewsArticle
	if err := c.do(ctx, http.MethodGet, "/news/category/"+url.PathEscape(category), q, nil, &articles); err != nil {
		return nil, err
	}
	return sanitize(articles), nil
}

// RecentNews returns the most recent listing
func (c *Client) RecentNews(ctx context.Context, limit int) ([]models.NewsArticle, error) {
	q := url.Values{}
	q.Set("limit", fmt.Sprintf("%d", limit))

	var articles []models.NewsArticle
	if err := c.do(ctx, http.MethodGet, "/news/recent", q, nil, &articles); err != nil {
		return nil, err
	}
	return sanitize(articles), nil
}

// NewsByID returns a single article by its external identifier
func (c *Client) NewsByID(ctx context.Context, id string) (*models.NewsArticle, error) {
	var article models.NewsArticle
	if err := c.do(ctx, http.MethodGet, "/news/"+url.PathEscape(id), nil, nil, &article); err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return nil, models.ErrNotFound
		}
		return nil, err
	}

	article.Content = StripHTML(article.Content)
	return &article, nil
}

// Categories lists the categories the feed knows about
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.do(ctx, http.MethodGet, "/categories", nil, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}
