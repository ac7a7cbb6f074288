package commands

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(sessionCmd)
}

var sessionColumns = []string{
	"session_id",
	"session_full_name",
	"legislature",
	"session",
	"legislation_year",
	"session_start_date",
	"sine_die_date",
}

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Lists every legislative session.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := getClient(cmd.Context())
		if err != nil {
			return err
		}
		sessions, err := client.Sessions(cmd.Context())
		if err != nil {
			return err
		}
		return printRecords(sessions, sessionColumns...)
	},
}

var sessionCmd = &cobra.Command{
	Use:   "session <session_id>",
	Short: "Prints a single session.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID, err := parseID("session_id", args[0])
		if err != nil {
			return err
		}
		client, err := getClient(cmd.Context())
		if err != nil {
			return err
		}
		session, err := client.SessionByID(cmd.Context(), sessionID)
		if err != nil {
			return err
		}
		return printRecord(session)
	},
}
