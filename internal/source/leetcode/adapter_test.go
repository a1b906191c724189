package leetcode

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/nhle/leetcode-tracker/internal/model"
	"github.com/nhle/leetcode-tracker/internal/source"
)

const catalogBody = `{
  "data": {
    "problemsetQuestionList": {
      "questions": [
        {"acRate": 52.1, "difficulty": "Easy", "frontendQuestionId": "1", "paidOnly": false, "title": "Two Sum", "titleSlug": "two-sum"},
        {"acRate": 41.0, "difficulty": "Medium", "frontendQuestionId": "2", "paidOnly": false, "title": "Add Two Numbers", "titleSlug": "add-two-numbers"},
        {"acRate": 60.0, "difficulty": "Hard", "frontendQuestionId": "4", "paidOnly": true, "title": "Median of Two Sorted Arrays", "titleSlug": "median-of-two-sorted-arrays"},
        {"acRate": 10.0, "difficulty": "Legendary", "frontendQuestionId": "9", "paidOnly": false, "title": "Bogus", "titleSlug": "bogus"}
      ]
    }
  }
}`

func testConfig(url string) model.APIConfig {
	return model.APIConfig{
		URL:          url,
		TimeoutSec:   5,
		MaxAttempts:  3,
		BackoffMs:    1,
		MaxBackoffMs: 4,
	}
}

func TestFetchCatalogMapsQuestions(t *testing.T) {
	var gotQuery GraphQLRequest
	var gotCookie string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		if c, err := r.Cookie("LEETCODE_SESSION"); err == nil {
			gotCookie = c.Value
		}
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotQuery)
		io.WriteString(w, catalogBody)
	}))
	defer srv.Close()

	a := NewAdapter(testConfig(srv.URL), "cookie-123", zaptest.NewLogger(t))
	problems, err := a.FetchCatalog(context.Background())
	require.NoError(t, err)

	assert.Contains(t, gotQuery.Query, "problemsetQuestionList")
	assert.Equal(t, "cookie-123", gotCookie)

	require.Len(t, problems, 3)
	assert.Equal(t, model.Problem{
		ID: "1", Title: "Two Sum", Slug: "two-sum",
		Difficulty: model.DifficultyEasy, AcceptanceRate: 52.1,
	}, problems[0])
	assert.True(t, problems[2].PaidOnly)
}

func TestFetchCatalogRetriesTransientFailures(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			http.Error(w, "upstream busy", http.StatusServiceUnavailable)
			return
		}
		io.WriteString(w, catalogBody)
	}))
	defer srv.Close()

	a := NewAdapter(testConfig(srv.URL), "", zaptest.NewLogger(t))
	problems, err := a.FetchCatalog(context.Background())
	require.NoError(t, err)
	assert.Len(t, problems, 3)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestFetchCatalogGivesUpAfterMaxAttempts(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	a := NewAdapter(testConfig(srv.URL), "", zaptest.NewLogger(t))
	_, err := a.FetchCatalog(context.Background())
	require.Error(t, err)

	var httpErr *source.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusTooManyRequests, httpErr.StatusCode)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestFetchCatalogDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "bad query", http.StatusBadRequest)
	}))
	defer srv.Close()

	a := NewAdapter(testConfig(srv.URL), "", zaptest.NewLogger(t))
	_, err := a.FetchCatalog(context.Background())
	require.Error(t, err)
	assert.False(t, source.IsRetryable(err))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestFetchCatalogRejectsMalformedPayloads(t *testing.T) {
	cases := map[string]string{
		"not json":       `<html>maintenance</html>`,
		"graphql errors": `{"errors": [{"message": "rate limited"}]}`,
		"missing list":   `{"data": {}}`,
		"no questions":   `{"data": {"problemsetQuestionList": {"questions": []}}}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			var calls int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
				io.WriteString(w, body)
			}))
			defer srv.Close()

			a := NewAdapter(testConfig(srv.URL), "", zaptest.NewLogger(t))
			_, err := a.FetchCatalog(context.Background())

			var malformed *source.MalformedError
			require.True(t, errors.As(err, &malformed), "got %v", err)
			assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
		})
	}
}

func TestBackoffDoublesAndCaps(t *testing.T) {
	c := NewClient(model.APIConfig{MaxAttempts: 5, BackoffMs: 100, MaxBackoffMs: 350}, "", nil)
	assert.Equal(t, int64(100), c.backoffFor(0).Milliseconds())
	assert.Equal(t, int64(200), c.backoffFor(1).Milliseconds())
	assert.Equal(t, int64(350), c.backoffFor(2).Milliseconds())
	assert.Equal(t, int64(350), c.backoffFor(10).Milliseconds())
}
