package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nhle/leetcode-tracker/internal/goals"
	"github.com/nhle/leetcode-tracker/internal/model"
	"github.com/nhle/leetcode-tracker/internal/render"
	"github.com/nhle/leetcode-tracker/internal/ui/goalform"
)

func newGoalsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "goals",
		Aliases: []string{"goal"},
		Short:   "List and manage goals",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listGoals(a, cmd)
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List goals with their progress",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return listGoals(a, cmd)
			},
		},
		newGoalsAddCmd(a),
		&cobra.Command{
			Use:   "init",
			Short: "Create the starter goals if no goal exists yet",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				svc, err := a.service()
				if err != nil {
					return err
				}
				gs, created, err := svc.BootstrapGoals(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if created {
					fmt.Fprintf(out, "Created %d starter goals\n", len(gs))
				} else {
					fmt.Fprintln(out, "Goals already exist, starter goals not created")
				}
				render.Goals(out, gs)
				return nil
			},
		},
	)
	return cmd
}

func listGoals(a *app, cmd *cobra.Command) error {
	svc, err := a.service()
	if err != nil {
		return err
	}
	gs, err := svc.Goals(cmd.Context())
	if err != nil {
		return err
	}
	render.Goals(cmd.OutOrStdout(), gs)
	return nil
}

func newGoalsAddCmd(a *app) *cobra.Command {
	var (
		name       string
		goalType   string
		target     int
		difficulty string
		deadline   string
		days       int
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a goal (interactive when --type is omitted)",
		Long: `Create a goal. Types: total, streak, difficulty, weekly.
Without --type an interactive form is shown.`,
		Example: `  lctracker goals add --type total --target 50 --days 30
  lctracker goals add --type difficulty --difficulty hard --target 5 --deadline 2025-01-31`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				g   goals.NewGoal
				err error
			)
			if goalType == "" {
				g, err = goalform.Run(cmd.Context(), a.today())
			} else {
				g, err = goalFromFlags(goalType, target, difficulty, deadline, days, a.today())
			}
			if err != nil {
				return err
			}
			g.Name = firstNonEmpty(name, g.Name)

			svc, err := a.service()
			if err != nil {
				return err
			}
			created, err := svc.CreateGoal(cmd.Context(), g)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created goal #%d\n", created.ID)
			fmt.Fprintln(cmd.OutOrStdout(), render.Goal(created))
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "goal name (generated when empty)")
	cmd.Flags().StringVarP(&goalType, "type", "t", "", "total, streak, difficulty or weekly")
	cmd.Flags().IntVar(&target, "target", 0, "target value")
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "Easy, Medium or Hard (difficulty goals only)")
	cmd.Flags().StringVar(&deadline, "deadline", "", "deadline as YYYY-MM-DD")
	cmd.Flags().IntVar(&days, "days", 0, fmt.Sprintf("deadline in days from today (default %d)", goals.DefaultDeadlineDays))
	return cmd
}

func goalFromFlags(goalType string, target int, difficulty, deadline string, days int, today model.Date) (goals.NewGoal, error) {
	t, err := model.ParseGoalType(goalType)
	if err != nil {
		return goals.NewGoal{}, err
	}

	g := goals.NewGoal{Type: t, Target: target, Days: days}
	if difficulty != "" {
		d, err := model.ParseDifficulty(difficulty)
		if err != nil {
			return goals.NewGoal{}, err
		}
		g.Difficulty = d
	}
	if deadline != "" {
		d, err := model.ParseDateSelector(deadline, today)
		if err != nil {
			return goals.NewGoal{}, err
		}
		g.Deadline = d
	}
	return g, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
