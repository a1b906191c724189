package leetcode

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/nhle/leetcode-tracker/internal/model"
	"github.com/nhle/leetcode-tracker/internal/source"
)

// maxErrorBody bounds how much of a failed response is kept in the error.
const maxErrorBody = 512

// Client is a thin HTTP client for the LeetCode GraphQL endpoint.
// It handles the optional session cookie, JSON marshaling, and bounded
// retry with capped exponential backoff on transient failures.
type Client struct {
	url         string
	session     string
	httpClient  *http.Client
	maxAttempts int
	backoff     time.Duration
	maxBackoff  time.Duration
	logger      *zap.Logger
}

// NewClient creates a client from the API configuration. session may be
// empty for anonymous access.
func NewClient(cfg model.APIConfig, session string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	attempts := cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	return &Client{
		url:     cfg.URL,
		session: session,
		httpClient: &http.Client{
			Timeout: cfg.Timeout(),
		},
		maxAttempts: attempts,
		backoff:     cfg.Backoff(),
		maxBackoff:  cfg.MaxBackoff(),
		logger:      logger.Named("leetcode"),
	}
}

// Query posts a GraphQL query and unmarshals the JSON response into result.
func (c *Client) Query(ctx context.Context, query string, result interface{}) error {
	data, err := json.Marshal(GraphQLRequest{Query: query})
	if err != nil {
		return fmt.Errorf("marshaling request body: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		wait, err := c.post(ctx, data, result)
		if err == nil {
			return nil
		}
		lastErr = err

		if !source.IsRetryable(err) || attempt == c.maxAttempts-1 {
			break
		}

		if wait <= 0 {
			wait = c.backoffFor(attempt)
		}
		c.logger.Warn("catalog request failed, retrying",
			zap.Int("attempt", attempt+1),
			zap.Int("max_attempts", c.maxAttempts),
			zap.Duration("wait", wait),
			zap.Error(err),
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}

	if c.maxAttempts > 1 && source.IsRetryable(lastErr) {
		return fmt.Errorf("giving up after %d attempts: %w", c.maxAttempts, lastErr)
	}
	return lastErr
}

// post performs one request. The returned duration is a server-requested
// wait from Retry-After, or zero.
func (c *Client) post(ctx context.Context, data []byte, result interface{}) (time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Referer", "https://leetcode.com/problemset/")
	if c.session != "" {
		req.AddCookie(&http.Cookie{Name: "LEETCODE_SESSION", Value: c.session})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("executing request POST %s: %w", c.url, err)
	}

	respBody, readErr := io.ReadAll(resp.Body)
	resp.Body.Close()
	if readErr != nil {
		return 0, fmt.Errorf("reading response body: %w", readErr)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body := string(respBody)
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return c.retryAfter(resp), &source.HTTPError{StatusCode: resp.StatusCode, Body: body}
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return 0, &source.MalformedError{Reason: "decoding JSON", Err: err}
	}

	return 0, nil
}

// backoffFor returns the delay before retry number attempt+1:
// backoff, 2*backoff, 4*backoff, ... capped at maxBackoff.
func (c *Client) backoffFor(attempt int) time.Duration {
	d := c.backoff << uint(attempt)
	if d > c.maxBackoff || d < 0 {
		d = c.maxBackoff
	}
	return d
}

// retryAfter reads the Retry-After header in seconds, capped at maxBackoff.
func (c *Client) retryAfter(resp *http.Response) time.Duration {
	header := resp.Header.Get("Retry-After")
	if header == "" {
		return 0
	}
	seconds, err := strconv.Atoi(header)
	if err != nil || seconds <= 0 {
		return 0
	}
	d := time.Duration(seconds) * time.Second
	if d > c.maxBackoff {
		d = c.maxBackoff
	}
	return d
}
