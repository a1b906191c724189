package model

import "time"

// SolvedRecord is one ledger entry. The ledger holds at most one record
// per problem id.
type SolvedRecord struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Slug       string     `json:"slug"`
	Difficulty Difficulty `json:"difficulty"`

	// SolvedAt is the UTC completion time. Legacy records may carry the
	// zero time; those count toward totals but not toward dated stats.
	SolvedAt time.Time `json:"solved_at"`
}

// NewSolvedRecord stamps a problem as solved at the given time.
func NewSolvedRecord(p Problem, at time.Time) SolvedRecord {
	return SolvedRecord{
		ID:         p.ID,
		Title:      p.Title,
		Slug:       p.Slug,
		Difficulty: p.Difficulty,
		SolvedAt:   at.UTC(),
	}
}

// URL returns the problem's page.
func (r SolvedRecord) URL() string {
	return ProblemURL(r.Slug)
}

// Dated reports whether the record carries a completion timestamp.
func (r SolvedRecord) Dated() bool {
	return !r.SolvedAt.IsZero()
}

// SolvedIDs returns the set of problem ids present in the ledger.
func SolvedIDs(records []SolvedRecord) map[string]bool {
	ids := make(map[string]bool, len(records))
	for _, r := range records {
		ids[r.ID] = true
	}
	return ids
}
