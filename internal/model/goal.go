package model

import (
	"fmt"
	"strings"
)

// GoalType identifies which statistic a goal tracks.
type GoalType string

const (
	GoalTotalSolved     GoalType = "total_solved"
	GoalDailyStreak     GoalType = "daily_streak"
	GoalDifficultyCount GoalType = "difficulty_count"
	GoalWeeklyTarget    GoalType = "weekly_target"
)

// GoalTypes lists every goal type.
var GoalTypes = []GoalType{
	GoalTotalSolved,
	GoalDailyStreak,
	GoalDifficultyCount,
	GoalWeeklyTarget,
}

// ParseGoalType accepts the canonical name or a short alias.
func ParseGoalType(s string) (GoalType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "total_solved", "total":
		return GoalTotalSolved, nil
	case "daily_streak", "streak":
		return GoalDailyStreak, nil
	case "difficulty_count", "difficulty":
		return GoalDifficultyCount, nil
	case "weekly_target", "weekly":
		return GoalWeeklyTarget, nil
	}
	return "", fmt.Errorf(
		"unknown goal type %q (want total, streak, difficulty or weekly)", s,
	)
}

// Valid reports whether t is a known goal type.
func (t GoalType) Valid() bool {
	switch t {
	case GoalTotalSolved, GoalDailyStreak, GoalDifficultyCount, GoalWeeklyTarget:
		return true
	}
	return false
}

// Label is a human-readable name for the type.
func (t GoalType) Label() string {
	switch t {
	case GoalTotalSolved:
		return "total solved"
	case GoalDailyStreak:
		return "daily streak"
	case GoalDifficultyCount:
		return "solved by difficulty"
	case GoalWeeklyTarget:
		return "solved this week"
	}
	return string(t)
}

// GoalStatus is the lifecycle state of a goal. Completed and Failed are terminal.
type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
	GoalFailed    GoalStatus = "failed"
)

// Valid reports whether s is a known status.
func (s GoalStatus) Valid() bool {
	switch s {
	case GoalActive, GoalCompleted, GoalFailed:
		return true
	}
	return false
}

// Terminal reports whether the status can no longer change.
func (s GoalStatus) Terminal() bool {
	return s == GoalCompleted || s == GoalFailed
}

// Goal is a user-defined target tied to a statistic.
type Goal struct {
	ID   int      `json:"id"`
	Name string   `json:"name"`
	Type GoalType `json:"type"`

	Target int `json:"target"`

	// Current is derived from the ledger on every refresh; it is frozen once
	// the goal reaches a terminal status.
	Current int `json:"current"`

	// Difficulty is required when Type is GoalDifficultyCount.
	Difficulty Difficulty `json:"difficulty,omitempty"`

	CreatedAt Date       `json:"created_at"`
	Deadline  Date       `json:"deadline"`
	Status    GoalStatus `json:"status"`
}

// Progress returns the completion ratio capped to [0, 1].
func (g Goal) Progress() float64 {
	if g.Target <= 0 {
		return 0
	}
	p := float64(g.Current) / float64(g.Target)
	if p > 1 {
		return 1
	}
	if p < 0 {
		return 0
	}
	return p
}
