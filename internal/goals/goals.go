package goals

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nhle/leetcode-tracker/internal/model"
	"github.com/nhle/leetcode-tracker/internal/stats"
)

var (
	// ErrDifficultyRequired is returned when a per-difficulty goal has no difficulty.
	ErrDifficultyRequired = errors.New("difficulty is required for a difficulty goal")

	// ErrInvalidGoal is returned when a goal definition cannot be accepted.
	ErrInvalidGoal = errors.New("invalid goal")
)

// DefaultDeadlineDays is used when a new goal names no deadline.
const DefaultDeadlineDays = 30

// NewGoal is the user-supplied part of a goal.
type NewGoal struct {
	Name       string
	Type       model.GoalType
	Target     int
	Difficulty model.Difficulty

	// Deadline wins over Days when both are set.
	Deadline model.Date
	Days     int
}

// Validate checks a goal definition against today.
func Validate(g NewGoal, today model.Date) error {
	if !g.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidGoal, g.Type)
	}
	if g.Target < 1 {
		return fmt.Errorf("%w: target must be at least 1", ErrInvalidGoal)
	}
	if g.Days < 0 {
		return fmt.Errorf("%w: days must not be negative", ErrInvalidGoal)
	}
	if !g.Deadline.IsZero() && g.Deadline.Before(today) {
		return fmt.Errorf("%w: deadline %s is in the past", ErrInvalidGoal, g.Deadline)
	}
	if g.Type == model.GoalDifficultyCount {
		if g.Difficulty == "" {
			return ErrDifficultyRequired
		}
		if !g.Difficulty.Valid() {
			return fmt.Errorf("%w: unknown difficulty %q", ErrInvalidGoal, g.Difficulty)
		}
	} else if g.Difficulty != "" {
		return fmt.Errorf("%w: difficulty only applies to difficulty goals", ErrInvalidGoal)
	}
	return nil
}

// Build turns a validated definition into an active goal with the given id.
func Build(id int, g NewGoal, today model.Date) model.Goal {
	deadline := g.Deadline
	if deadline.IsZero() {
		days := g.Days
		if days == 0 {
			days = DefaultDeadlineDays
		}
		deadline = today.AddDays(days)
	}

	name := strings.TrimSpace(g.Name)
	if name == "" {
		name = DefaultName(g.Type, g.Target, g.Difficulty)
	}

	return model.Goal{
		ID:         id,
		Name:       name,
		Type:       g.Type,
		Target:     g.Target,
		Difficulty: g.Difficulty,
		CreatedAt:  today,
		Deadline:   deadline,
		Status:     model.GoalActive,
	}
}

// DefaultName describes a goal when the user gives it no name.
func DefaultName(t model.GoalType, target int, d model.Difficulty) string {
	switch t {
	case model.GoalTotalSolved:
		return fmt.Sprintf("Reach %d total solved", target)
	case model.GoalDailyStreak:
		return fmt.Sprintf("%d-day streak", target)
	case model.GoalDifficultyCount:
		return fmt.Sprintf("Solve %d %s problems", target, d)
	case model.GoalWeeklyTarget:
		return fmt.Sprintf("Solve %d this week", target)
	}
	return fmt.Sprintf("%s %d", t.Label(), target)
}

// NextID returns one more than the largest id in use.
func NextID(goals []model.Goal) int {
	highest := 0
	for _, g := range goals {
		if g.ID > highest {
			highest = g.ID
		}
	}
	return highest + 1
}

// StarterGoals returns the three goals created on first use.
func StarterGoals(today model.Date) []model.Goal {
	defs := []NewGoal{
		{Name: "Reach 5 total solved", Type: model.GoalTotalSolved, Target: 5, Days: 14},
		{Name: "Solve 3 this week", Type: model.GoalWeeklyTarget, Target: 3, Days: 7},
		{Name: "3-day streak", Type: model.GoalDailyStreak, Target: 3, Days: 10},
	}
	out := make([]model.Goal, 0, len(defs))
	for i, d := range defs {
		out = append(out, Build(i+1, d, today))
	}
	return out
}

// Snapshot is everything a goal's current value can be derived from.
type Snapshot struct {
	Stats  model.UserStats
	Weekly int
	Today  model.Date
}

// TakeSnapshot derives a Snapshot from the ledger at now.
func TakeSnapshot(records []model.SolvedRecord, now time.Time) Snapshot {
	today := model.DateOf(now)
	return Snapshot{
		Stats:  stats.Compute(records, today),
		Weekly: stats.WeeklyCount(records, now),
		Today:  today,
	}
}

// Current returns the value g tracks in snap.
func Current(g model.Goal, snap Snapshot) int {
	switch g.Type {
	case model.GoalTotalSolved:
		return snap.Stats.TotalSolved
	case model.GoalDailyStreak:
		return snap.Stats.CurrentStreak
	case model.GoalDifficultyCount:
		if g.Difficulty == "" {
			return 0
		}
		return snap.Stats.ByDifficulty[g.Difficulty]
	case model.GoalWeeklyTarget:
		return snap.Weekly
	}
	return 0
}

// Evaluate recomputes every active goal and applies its transition.
// Completion is checked before the deadline. Terminal goals are returned
// unchanged. changed reports whether any goal differs from its input.
func Evaluate(goals []model.Goal, snap Snapshot) (out []model.Goal, changed bool) {
	out = make([]model.Goal, len(goals))
	for i, g := range goals {
		next := Step(g, snap)
		if next != g {
			changed = true
		}
		out[i] = next
	}
	return out, changed
}

// Step recomputes a single goal.
func Step(g model.Goal, snap Snapshot) model.Goal {
	if g.Status.Terminal() {
		return g
	}

	g.Current = Current(g, snap)
	g.Status = model.GoalActive

	switch {
	case g.Target > 0 && g.Current >= g.Target:
		g.Status = model.GoalCompleted
	case !g.Deadline.IsZero() && snap.Today.After(g.Deadline):
		g.Status = model.GoalFailed
	}
	return g
}
