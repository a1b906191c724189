package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/nhle/leetcode-tracker/internal/credential"
)

func newAuthCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the LeetCode session cookie used for catalog requests",
	}
	cmd.AddCommand(newAuthLoginCmd(a), newAuthLogoutCmd(a), newAuthStatusCmd(a))
	return cmd
}

func newAuthLoginCmd(a *app) *cobra.Command {
	var session string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store a LEETCODE_SESSION cookie in the system keyring",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if session == "" {
				form := huh.NewForm(huh.NewGroup(
					huh.NewInput().
						Title("LEETCODE_SESSION cookie").
						Description("Copy it from your browser while signed in to leetcode.com").
						EchoMode(huh.EchoModePassword).
						Value(&session).
						Validate(validateRequired("Session")),
				))
				if err := form.RunWithContext(cmd.Context()); err != nil {
					return err
				}
			}
			session = strings.TrimSpace(session)
			if session == "" {
				return fmt.Errorf("session cookie must not be empty")
			}

			creds, err := a.credentials()
			if err != nil {
				return err
			}
			if err := creds.Set(credential.SessionKey, session); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Session stored")
			return nil
		},
	}

	cmd.Flags().StringVar(&session, "session", "", "cookie value (prompted when omitted)")
	return cmd
}

func newAuthLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored session cookie",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			creds, err := a.credentials()
			if err != nil {
				return err
			}
			if err := creds.Delete(credential.SessionKey); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Session removed")
			return nil
		},
	}
}

func newAuthStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report whether a session cookie is configured",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if a.cfg.API.Session != "" {
				fmt.Fprintln(out, "Session set from configuration or LCTRACKER_API_SESSION")
				return nil
			}
			creds, err := a.credentials()
			if err != nil {
				return err
			}
			session, err := creds.Session()
			if err != nil {
				return err
			}
			if session == "" {
				fmt.Fprintln(out, "No session stored; requests are anonymous")
				return nil
			}
			fmt.Fprintln(out, "Session stored in keyring")
			return nil
		},
	}
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}
