package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nhle/leetcode-tracker/internal/model"
	"github.com/nhle/leetcode-tracker/internal/render"
)

func newFetchCmd(a *app) *cobra.Command {
	var (
		date  string
		force bool
	)

	cmd := &cobra.Command{
		Use:     "fetch",
		Aliases: []string{"daily", "today"},
		Short:   "Show the daily Easy, Medium and Hard problems",
		Long: `Show one free, unsolved problem per difficulty for a date.
The selection is fixed per date: repeated calls return the same problems.
--force refetches the catalog and draws again.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := model.ParseDateSelector(date, a.today())
			if err != nil {
				return err
			}

			svc, err := a.service()
			if err != nil {
				return err
			}
			view, err := svc.Daily(cmd.Context(), d, force)
			if err != nil {
				return err
			}

			render.Daily(cmd.OutOrStdout(), view)
			return nil
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", "today", `date to show: "today", "yesterday" or YYYY-MM-DD`)
	cmd.Flags().BoolVarP(&force, "force", "f", false, "refetch the catalog and redraw the selection")
	return cmd
}

func newDoneCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "done <problem-id>...",
		Aliases: []string{"markAsDone", "solve"},
		Short:   "Mark problems as solved",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			for _, id := range args {
				res, err := svc.MarkSolved(cmd.Context(), id)
				if err != nil {
					return err
				}
				render.Mark(cmd.OutOrStdout(), id, res)
			}
			return nil
		},
	}
}

func newUndoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "undo <problem-id>...",
		Aliases: []string{"markAsIncomplete", "unsolve"},
		Short:   "Remove problems from the solved list",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			for _, id := range args {
				res, err := svc.MarkUnsolved(cmd.Context(), id)
				if err != nil {
					return err
				}
				render.Mark(cmd.OutOrStdout(), id, res)
			}
			return nil
		},
	}
}

func newSolvedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "solved",
		Aliases: []string{"listSolved", "list"},
		Short:   "List solved problems",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			records, err := svc.Solved(cmd.Context())
			if err != nil {
				return err
			}
			render.Solved(cmd.OutOrStdout(), records)
			return nil
		},
	}
}

func newProfileCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "profile",
		Aliases: []string{"stats"},
		Short:   "Show totals, streaks, the activity heatmap and goals",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			p, err := svc.Profile(cmd.Context())
			if err != nil {
				return err
			}
			render.Profile(cmd.OutOrStdout(), p)
			return nil
		},
	}
}

func newReportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Activity reports",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "weekly",
		Short: "Problems solved in the last 7 days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			r, err := svc.WeeklyReport(cmd.Context())
			if err != nil {
				return err
			}
			render.Weekly(cmd.OutOrStdout(), r)
			return nil
		},
	})

	return cmd
}

func newRefreshCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Refetch the problem catalog without drawing problems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			n, err := svc.RefreshCatalog(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Catalog refreshed: %d problems\n", n)
			return nil
		},
	}
}
