package source

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/nhle/leetcode-tracker/internal/model"
)

// Fetcher retrieves the full remote problem catalog in one call.
type Fetcher interface {
	FetchCatalog(ctx context.Context) ([]model.Problem, error)
}

// FetcherFunc adapts a plain function to Fetcher.
type FetcherFunc func(ctx context.Context) ([]model.Problem, error)

// FetchCatalog calls f.
func (f FetcherFunc) FetchCatalog(ctx context.Context) ([]model.Problem, error) {
	return f(ctx)
}

// HTTPError is a non-success response from the remote API.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

// MalformedError indicates a response that could not be interpreted.
// It is never retried.
type MalformedError struct {
	Reason string
	Err    error
}

func (e *MalformedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed response: %s: %v", e.Reason, e.Err)
	}
	return "malformed response: " + e.Reason
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}

// IsRetryable reports whether err is a transient failure: a network error,
// HTTP 429, or a 5xx response.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var malformed *MalformedError
	if errors.As(err, &malformed) {
		return false
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == http.StatusTooManyRequests ||
			httpErr.StatusCode >= 500
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
