package testutil

import (
	"context"

	"github.com/nhle/leetcode-tracker/internal/model"
)

// FakeFetcher serves a fixed catalog and counts calls.
type FakeFetcher struct {
	Problems []model.Problem
	Err      error
	Calls    int
}

// FetchCatalog returns the configured problems or error.
func (f *FakeFetcher) FetchCatalog(_ context.Context) ([]model.Problem, error) {
	f.Calls++
	if f.Err != nil {
		return nil, f.Err
	}
	out := make([]model.Problem, len(f.Problems))
	copy(out, f.Problems)
	return out, nil
}

// Problem builds a free catalog entry.
func Problem(id, title string, d model.Difficulty) model.Problem {
	return model.Problem{
		ID:             id,
		Title:          title,
		Slug:           slugify(title),
		Difficulty:     d,
		AcceptanceRate: 50,
	}
}

func slugify(title string) string {
	out := make([]rune, 0, len(title))
	for _, r := range title {
		switch {
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		case r == ' ' || r == '-':
			out = append(out, '-')
		}
	}
	return string(out)
}
