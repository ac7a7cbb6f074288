package commands

import (
	"errors"

	"azlegapi/lib/platforms/azleg"
	"azlegapi/lib/xmlrecord"

	"github.com/spf13/cobra"
)

var (
	calendarsBody      string
	calendarsCommittee int
	calendarsFrom      string
)

func init() {
	calendarsCmd.Flags().StringVar(&calendarsBody, "body", "", "Only list calendars of a chamber (H or S).")
	calendarsCmd.Flags().IntVar(&calendarsCommittee, "committee", 0, "Only list calendars of a committee.")
	calendarsCmd.Flags().StringVar(&calendarsFrom, "from", "", "Only list calendars since this date.")
	calendarsCmd.MarkFlagsMutuallyExclusive("body", "committee", "from")
	rootCmd.AddCommand(calendarsCmd)
	rootCmd.AddCommand(calendarCmd)
}

var calendarColumns = []string{
	"calendar_id",
	"calendar_date",
	"calendar_time",
	"body",
	"type",
	"committee_name",
	"bills",
}

var calendarsCmd = &cobra.Command{
	Use:   "calendars <session_id> [--body <H|S>|--committee <id>|--from <date>]",
	Short: "Lists the calendars of a session.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID, err := parseID("session_id", args[0])
		if err != nil {
			return err
		}
		from, err := parseDateFlag("from", calendarsFrom)
		if err != nil {
			return err
		}
		client, err := getClient(cmd.Context())
		if err != nil {
			return err
		}

		var calendars xmlrecord.Record
		switch {
		case calendarsBody != "":
			calendars, err = client.CalendarsByBody(cmd.Context(), sessionID, azleg.Body(calendarsBody))
		case calendarsCommittee != 0:
			calendars, err = client.CalendarsByCommitteeID(cmd.Context(), sessionID, calendarsCommittee)
		default:
			calendars, err = client.CalendarsBySessionID(cmd.Context(), sessionID, from)
		}
		if err != nil {
			return err
		}
		return printCollection(calendars, "calendars", calendarColumns...)
	},
}

var calendarCmd = &cobra.Command{
	Use:   "calendar <calendar_id>",
	Short: "Prints a single calendar with its bills.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		calendarID, err := parseID("calendar_id", args[0])
		if err != nil {
			return err
		}
		client, err := getClient(cmd.Context())
		if err != nil {
			return err
		}
		calendar, err := client.CalendarByID(cmd.Context(), calendarID)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(calendar)
		}
		err = printRecord(calendar)
		if err != nil {
			return err
		}
		bills, ok := calendar["bills"].([]xmlrecord.Record)
		if !ok {
			return errors.New("calendar has no bills")
		}
		return printRecords(bills, "display_order", "bill_number", "reconsidered")
	},
}
