package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/freand76/kalkon/internal/app"
	"github.com/freand76/kalkon/internal/domain"
)

func newLogCommand(container *app.Container) *cobra.Command {
	logCmd := &cobra.Command{
		Use:   "log",
		Short: "Inspect the persistent session log",
	}

	var limit int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := container.SessionLog
			if store == nil {
				return fmt.Errorf("session log disabled; enable session_log in the configuration")
			}
			sessions, err := store.Sessions(limit)
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No sessions recorded yet.")
				return nil
			}
			for _, sess := range sessions {
				fmt.Fprintf(cmd.OutOrStdout(), "%s | %s | %s\n",
					sess.ID,
					sess.StartedAt.Format(domain.TimestampFormat),
					humanize.Time(sess.StartedAt))
			}
			return nil
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", 20, "Max sessions to show (0 for all)")

	var entryLimit int
	showCmd := &cobra.Command{
		Use:   "show <session-id>",
		Short: "Show the transcript of one session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := container.SessionLog
			if store == nil {
				return fmt.Errorf("session log disabled; enable session_log in the configuration")
			}
			entries, err := store.Entries(args[0], entryLimit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No entries for this session.")
				return nil
			}
			for _, entry := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%s | %s = %s\n",
					entry.At.Format(domain.TimestampFormat),
					entry.Expression,
					entry.Result)
			}
			return nil
		},
	}
	showCmd.Flags().IntVar(&entryLimit, "limit", 0, "Max entries to show (0 for all)")

	var yes bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := container.SessionLog
			if store == nil {
				return fmt.Errorf("session log disabled; enable session_log in the configuration")
			}
			if !yes {
				prompter := NewPrompter(nil, nil)
				if !prompter.Enabled() {
					return fmt.Errorf("confirmation required; re-run with --yes")
				}
				ok, err := prompter.Confirm(fmt.Sprintf("Delete all recorded sessions in %s?", store.Path()))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}
			if err := store.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Session log cleared.")
			return nil
		},
	}
	clearCmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the session log location",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := container.SessionLog
			if store == nil {
				return fmt.Errorf("session log disabled; enable session_log in the configuration")
			}
			fmt.Fprintln(cmd.OutOrStdout(), store.Path())
			return nil
		},
	}

	logCmd.AddCommand(listCmd, showCmd, clearCmd, pathCmd)
	return logCmd
}
