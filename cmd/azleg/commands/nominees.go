package commands

import (
	"azlegapi/lib/xmlrecord"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(nomineeCmd)
	rootCmd.AddCommand(agenciesCmd)
}

var nomineeCmd = &cobra.Command{
	Use:   "nominee <nominee_id>",
	Short: "Prints an executive nominee and the positions they were nominated to.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		nomineeID, err := parseID("nominee_id", args[0])
		if err != nil {
			return err
		}
		client, err := getClient(cmd.Context())
		if err != nil {
			return err
		}
		nominee, err := client.NomineeByID(cmd.Context(), nomineeID)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(nominee)
		}
		err = printRecord(nominee)
		if err != nil {
			return err
		}
		positions, _ := nominee["positions"].([]xmlrecord.Record)
		return printRecords(positions, "agency_name", "position_name", "status", "received_date", "confirmed_date")
	},
}

var agenciesCmd = &cobra.Command{
	Use:   "agencies",
	Short: "Lists the agencies and positions executive nominees are appointed to.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := getClient(cmd.Context())
		if err != nil {
			return err
		}
		agencies, err := client.AgenciesAndPositions(cmd.Context())
		if err != nil {
			return err
		}
		return printRecords(agencies, "agency_id", "agency_name", "term_length", "positions")
	},
}
