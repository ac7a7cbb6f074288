package commands

import (
	"errors"
	"strings"

	"azlegapi/lib/xmlrecord"

	"github.com/spf13/cobra"
)

var (
	documentsBill string
	documentsType string
	documentsFrom string
	documentsTo   string
)

func init() {
	flags := documentsCmd.Flags()
	flags.StringVar(&documentsBill, "bill", "", "Only list documents of a bill.")
	flags.StringVar(&documentsType, "type", "", "Only list documents of a type.")
	flags.StringVar(&documentsFrom, "from", "", "Only list documents since this date.")
	flags.StringVar(&documentsTo, "to", "", "Only list documents until this date, requires --from.")
	documentsCmd.MarkFlagsMutuallyExclusive("bill", "from")
	documentsCmd.MarkFlagsMutuallyExclusive("type", "from")
	rootCmd.AddCommand(documentsCmd)
}

var documentsCmd = &cobra.Command{
	Use:   "documents <session_id> [--bill <number>] [--type <type>] [--from <date> [--to <date>]]",
	Short: "Lists the documents of a session.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID, err := parseID("session_id", args[0])
		if err != nil {
			return err
		}
		from, err := parseDateFlag("from", documentsFrom)
		if err != nil {
			return err
		}
		to, err := parseDateFlag("to", documentsTo)
		if err != nil {
			return err
		}
		if to != nil && from == nil {
			return errors.New("--to requires --from")
		}
		client, err := getClient(cmd.Context())
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		bill := strings.ToUpper(documentsBill)

		var documents xmlrecord.Record
		switch {
		case bill != "" && documentsType != "":
			documents, err = client.DocumentsByBillNumDocType(ctx, sessionID, bill, documentsType)
		case bill != "":
			documents, err = client.DocumentsByBillNum(ctx, sessionID, bill)
		case documentsType != "":
			documents, err = client.DocumentsByDocType(ctx, sessionID, documentsType)
		case to != nil:
			documents, err = client.DocumentsFromDateToDate(ctx, sessionID, *from, *to)
		case from != nil:
			documents, err = client.DocumentsFromDate(ctx, sessionID, *from)
		default:
			return errors.New("one of --bill, --type or --from is required")
		}
		if err != nil {
			return err
		}
		return printCollection(documents, "documents", append([]string{"bill_number"}, documentColumns...)...)
	},
}
