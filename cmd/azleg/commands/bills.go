package commands

import (
	"fmt"
	"os"
	"strings"

	"azlegapi/lib/xmlrecord"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	billsSince string
	votesFrom  string
)

func init() {
	billsCmd.Flags().StringVar(&billsSince, "since", "", "Only list bills updated since this date.")
	votesCmd.Flags().StringVar(&votesFrom, "from", "", "Only list votes since this date.")
	rootCmd.AddCommand(billCmd)
	rootCmd.AddCommand(billsCmd)
	rootCmd.AddCommand(votesCmd)
}

var transactionColumns = []string{
	"tran_id",
	"action_date",
	"type",
	"cmte_short_name",
	"action",
	"comments",
	"votes",
}

var documentColumns = []string{
	"document_type",
	"document_format",
	"description",
	"last_updated",
	"url",
}

var billCmd = &cobra.Command{
	Use:   "bill <session_id> <bill_number>",
	Short: "Prints a bill with its floor votes and documents.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID, err := parseID("session_id", args[0])
		if err != nil {
			return err
		}
		billNumber := strings.ToUpper(args[1])
		client, err := getClient(cmd.Context())
		if err != nil {
			return err
		}

		var bill, votes, documents xmlrecord.Record
		group, ctx := errgroup.WithContext(cmd.Context())
		group.Go(func() error {
			var err error
			bill, err = client.BillInfo(ctx, sessionID, billNumber)
			return err
		})
		group.Go(func() error {
			var err error
			votes, err = client.FloorVotesByBill(ctx, sessionID, billNumber, nil)
			return err
		})
		group.Go(func() error {
			var err error
			documents, err = client.DocumentsByBillNum(ctx, sessionID, billNumber)
			return err
		})
		err = group.Wait()
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(xmlrecord.Record{
				"bill":        bill,
				"floor_votes": votes["transactions"],
				"documents":   documents["documents"],
			})
		}

		err = printRecord(bill)
		if err != nil {
			return err
		}
		sponsors, _ := bill["sponsors"].([]xmlrecord.Record)
		fmt.Fprintln(os.Stdout, "Sponsors")
		err = printRecords(sponsors, "display_order", "type", "member_name")
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, "Floor votes")
		err = printCollection(votes, "transactions", transactionColumns...)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, "Documents")
		return printCollection(documents, "documents", documentColumns...)
	},
}

var billsCmd = &cobra.Command{
	Use:   "bills <session_id> [--since <date>]",
	Short: "Lists the bills of a session.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID, err := parseID("session_id", args[0])
		if err != nil {
			return err
		}
		since, err := parseDateFlag("since", billsSince)
		if err != nil {
			return err
		}
		client, err := getClient(cmd.Context())
		if err != nil {
			return err
		}

		var bills xmlrecord.Record
		if since != nil {
			bills, err = client.UpdatedBills(cmd.Context(), sessionID, *since)
		} else {
			bills, err = client.BillsBySessionID(cmd.Context(), sessionID)
		}
		if err != nil {
			return err
		}
		return printCollection(bills, "bills", "bill_number", "current_title", "last_updated")
	},
}

var votesCmd = &cobra.Command{
	Use:   "votes <session_id> <bill_number> [--from <date>]",
	Short: "Lists the floor votes on a bill.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID, err := parseID("session_id", args[0])
		if err != nil {
			return err
		}
		from, err := parseDateFlag("from", votesFrom)
		if err != nil {
			return err
		}
		client, err := getClient(cmd.Context())
		if err != nil {
			return err
		}
		votes, err := client.FloorVotesByBill(cmd.Context(), sessionID, strings.ToUpper(args[1]), from)
		if err != nil {
			return err
		}
		return printCollection(votes, "transactions", transactionColumns...)
	},
}
