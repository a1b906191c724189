package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Difficulty is the catalog's difficulty tier for a problem.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Difficulties lists every tier in display and draw order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// ParseDifficulty matches a tier name case-insensitively.
func ParseDifficulty(s string) (Difficulty, error) {
	for _, d := range Difficulties {
		if strings.EqualFold(strings.TrimSpace(s), string(d)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q (want Easy, Medium or Hard)", s)
}

// Valid reports whether d is one of the known tiers.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// problemBaseURL is the public URL prefix for problem pages.
const problemBaseURL = "https://leetcode.com/problems/"

// ProblemURL returns the public problem page for a slug.
func ProblemURL(slug string) string {
	return problemBaseURL + slug + "/"
}

// Problem is a single entry of the remote catalog. Immutable once fetched.
type Problem struct {
	// ID is the stable frontend question identifier, e.g. "1".
	ID string `json:"id"`

	Title string `json:"title"`

	// Slug is the URL component of the problem page.
	Slug string `json:"slug"`

	Difficulty Difficulty `json:"difficulty"`

	// AcceptanceRate is a percentage in [0, 100].
	AcceptanceRate float64 `json:"acceptance_rate"`

	PaidOnly bool `json:"paid_only"`
}

// URL returns the problem's page.
func (p Problem) URL() string {
	return ProblemURL(p.Slug)
}

// CompareIDs orders problem ids numerically when both are integers and
// lexically otherwise. Numeric ids sort before non-numeric ones.
func CompareIDs(a, b string) int {
	ai, aErr := strconv.Atoi(a)
	bi, bErr := strconv.Atoi(b)
	switch {
	case aErr == nil && bErr == nil:
		switch {
		case ai < bi:
			return -1
		case ai > bi:
			return 1
		}
		return 0
	case aErr == nil:
		return -1
	case bErr == nil:
		return 1
	}
	return strings.Compare(a, b)
}
