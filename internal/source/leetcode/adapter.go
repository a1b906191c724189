package leetcode

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/nhle/leetcode-tracker/internal/model"
	"github.com/nhle/leetcode-tracker/internal/source"
)

// Adapter implements source.Fetcher for the LeetCode problem set.
type Adapter struct {
	client *Client
	logger *zap.Logger
}

// NewAdapter creates a LeetCode catalog fetcher.
func NewAdapter(cfg model.APIConfig, session string, logger *zap.Logger) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{
		client: NewClient(cfg, session, logger),
		logger: logger.Named("leetcode"),
	}
}

var _ source.Fetcher = (*Adapter)(nil)

// FetchCatalog downloads the whole problem set. Questions with an unknown
// difficulty or no id are skipped; an empty result is malformed.
func (a *Adapter) FetchCatalog(ctx context.Context) ([]model.Problem, error) {
	var resp CatalogResponse
	if err := a.client.Query(ctx, catalogQuery, &resp); err != nil {
		return nil, fmt.Errorf("fetching catalog: %w", err)
	}

	if len(resp.Errors) > 0 {
		msgs := make([]string, 0, len(resp.Errors))
		for _, e := range resp.Errors {
			msgs = append(msgs, e.Message)
		}
		return nil, fmt.Errorf("fetching catalog: %w",
			&source.MalformedError{Reason: "graphql errors: " + strings.Join(msgs, "; ")})
	}
	if resp.Data == nil || resp.Data.ProblemsetQuestionList == nil {
		return nil, fmt.Errorf("fetching catalog: %w",
			&source.MalformedError{Reason: "missing problemsetQuestionList"})
	}

	questions := resp.Data.ProblemsetQuestionList.Questions
	problems := make([]model.Problem, 0, len(questions))
	skipped := 0
	for _, q := range questions {
		p, ok := questionToProblem(q)
		if !ok {
			skipped++
			continue
		}
		problems = append(problems, p)
	}

	if skipped > 0 {
		a.logger.Debug("skipped unusable questions", zap.Int("count", skipped))
	}
	if len(problems) == 0 {
		return nil, fmt.Errorf("fetching catalog: %w",
			&source.MalformedError{Reason: "no usable questions"})
	}

	a.logger.Debug("fetched catalog", zap.Int("problems", len(problems)))
	return problems, nil
}

// questionToProblem maps an API question onto the catalog model.
func questionToProblem(q Question) (model.Problem, bool) {
	id := strings.TrimSpace(q.FrontendQuestionID)
	if id == "" {
		return model.Problem{}, false
	}
	diff, err := model.ParseDifficulty(q.Difficulty)
	if err != nil {
		return model.Problem{}, false
	}

	rate := q.AcRate
	switch {
	case rate < 0:
		rate = 0
	case rate > 100:
		rate = 100
	}

	return model.Problem{
		ID:             id,
		Title:          q.Title,
		Slug:           q.TitleSlug,
		Difficulty:     diff,
		AcceptanceRate: rate,
		PaidOnly:       q.PaidOnly,
	}, true
}
