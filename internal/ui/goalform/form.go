package goalform

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/nhle/leetcode-tracker/internal/goals"
	"github.com/nhle/leetcode-tracker/internal/model"
)

// Values holds the raw form input. Fields are bound by pointer so the
// form can write into them.
type Values struct {
	Name       string
	Type       string
	Target     string
	Difficulty string
	Deadline   string
}

// New builds the goal creation form bound to v.
func New(v *Values) *huh.Form {
	typeOpts := make([]huh.Option[string], 0, len(model.GoalTypes))
	for _, t := range model.GoalTypes {
		typeOpts = append(typeOpts, huh.NewOption(t.Label(), string(t)))
	}
	diffOpts := make([]huh.Option[string], 0, len(model.Difficulties))
	for _, d := range model.Difficulties {
		diffOpts = append(diffOpts, huh.NewOption(string(d), string(d)))
	}

	if v.Type == "" {
		v.Type = string(model.GoalTotalSolved)
	}
	if v.Difficulty == "" {
		v.Difficulty = string(model.DifficultyEasy)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Goal type").
				Options(typeOpts...).
				Value(&v.Type),
			huh.NewInput().
				Title("Target").
				Placeholder("e.g. 10").
				Value(&v.Target).
				Validate(validatePositiveInt),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Difficulty").
				Options(diffOpts...).
				Value(&v.Difficulty),
		).WithHideFunc(func() bool {
			return v.Type != string(model.GoalDifficultyCount)
		}),
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("Optional, generated when empty").
				Value(&v.Name),
			huh.NewInput().
				Title("Deadline").
				Placeholder(fmt.Sprintf("YYYY-MM-DD (optional, default %d days)", goals.DefaultDeadlineDays)).
				Value(&v.Deadline).
				Validate(validateOptionalDate),
		),
	)
}

// Run shows the form and returns the goal it describes.
func Run(ctx context.Context, today model.Date) (goals.NewGoal, error) {
	var v Values
	if err := New(&v).RunWithContext(ctx); err != nil {
		return goals.NewGoal{}, err
	}
	return Parse(v, today)
}

// Parse converts raw form values into a goal definition.
func Parse(v Values, today model.Date) (goals.NewGoal, error) {
	t, err := model.ParseGoalType(v.Type)
	if err != nil {
		return goals.NewGoal{}, err
	}

	target, err := strconv.Atoi(strings.TrimSpace(v.Target))
	if err != nil {
		return goals.NewGoal{}, fmt.Errorf("target must be a number: %w", err)
	}

	g := goals.NewGoal{
		Name:   strings.TrimSpace(v.Name),
		Type:   t,
		Target: target,
	}

	if t == model.GoalDifficultyCount {
		d, err := model.ParseDifficulty(v.Difficulty)
		if err != nil {
			return goals.NewGoal{}, err
		}
		g.Difficulty = d
	}

	if s := strings.TrimSpace(v.Deadline); s != "" {
		d, err := model.ParseDateSelector(s, today)
		if err != nil {
			return goals.NewGoal{}, err
		}
		g.Deadline = d
	}

	return g, nil
}

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return fmt.Errorf("enter a whole number of at least 1")
	}
	return nil
}

func validateOptionalDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := model.ParseDate(s); err != nil {
		return fmt.Errorf("invalid date format, use YYYY-MM-DD")
	}
	return nil
}
