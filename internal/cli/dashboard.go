package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nhle/leetcode-tracker/internal/model"
	"github.com/nhle/leetcode-tracker/internal/ui/dashboard"
)

func newDashboardCmd(a *app) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"ui"},
		Short:   "Open the interactive dashboard",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := model.ParseDateSelector(date, a.today())
			if err != nil {
				return err
			}
			svc, err := a.service()
			if err != nil {
				return err
			}

			p := tea.NewProgram(
				dashboard.New(cmd.Context(), svc, d),
				tea.WithAltScreen(),
				tea.WithContext(cmd.Context()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", "today", "initial date")
	return cmd
}
