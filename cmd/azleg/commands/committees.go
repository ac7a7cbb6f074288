package commands

import (
	"azlegapi/lib/platforms/azleg"
	"azlegapi/lib/xmlrecord"

	"github.com/spf13/cobra"
)

var (
	committeesType string
	committeesBody string
)

func init() {
	committeesCmd.Flags().StringVar(&committeesType, "type", "", "Only list committees of a kind (S for sitting, F for financial).")
	committeesCmd.Flags().StringVar(&committeesBody, "body", "", "Only list committees of a chamber (H or S).")
	actionsCmd.Flags().StringVar(&committeesType, "type", "", "Committee kind (S or F).")
	actionsCmd.Flags().StringVar(&committeesBody, "body", "", "Chamber (H or S).")
	rootCmd.AddCommand(committeesCmd)
	rootCmd.AddCommand(committeeCmd)
	rootCmd.AddCommand(actionsCmd)
}

var committeeColumns = []string{
	"committee_id",
	"committee_short_name",
	"committee_name",
	"type",
	"body",
	"sub_committee",
}

var committeesCmd = &cobra.Command{
	Use:   "committees [legislature] [--type <S|F>] [--body <H|S>]",
	Short: "Lists the committees of a legislature, the current one by default.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		legislature := 0
		if len(args) > 0 {
			var err error
			legislature, err = parseID("legislature", args[0])
			if err != nil {
				return err
			}
		}
		client, err := getClient(cmd.Context())
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		kind := azleg.CommitteeKind(committeesType)
		body := azleg.Body(committeesBody)

		var committees []xmlrecord.Record
		switch {
		case legislature == 0:
			committees, err = client.CurrentCommittees(ctx)
		case kind != "" && body != "":
			committees, err = client.CommitteesByLegTypeBody(ctx, legislature, kind, body)
		case kind != "":
			committees, err = client.CommitteesByLegType(ctx, legislature, kind)
		case body != "":
			committees, err = client.CommitteesByLegBody(ctx, legislature, body)
		default:
			committees, err = client.CommitteesByLegislature(ctx, legislature)
		}
		if err != nil {
			return err
		}
		return printRecords(committees, committeeColumns...)
	},
}

var committeeCmd = &cobra.Command{
	Use:   "committee <session_id> <committee_id>",
	Short: "Lists the members of a committee.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID, err := parseID("session_id", args[0])
		if err != nil {
			return err
		}
		committeeID, err := parseID("committee_id", args[1])
		if err != nil {
			return err
		}
		client, err := getClient(cmd.Context())
		if err != nil {
			return err
		}
		members, err := client.CommitteeMembers(cmd.Context(), sessionID, committeeID)
		if err != nil {
			return err
		}
		return printRecords(members, "committee_name", "member_id", "full_name", "party", "position")
	},
}

var actionsCmd = &cobra.Command{
	Use:   "actions [--type <S|F> --body <H|S>]",
	Short: "Lists the actions a committee can take on a bill.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := getClient(cmd.Context())
		if err != nil {
			return err
		}
		var filter *azleg.ActionFilter
		if committeesType != "" || committeesBody != "" {
			filter = &azleg.ActionFilter{
				Body: azleg.Body(committeesBody),
				Kind: azleg.CommitteeKind(committeesType),
			}
		}
		actions, err := client.CommitteeActions(cmd.Context(), filter)
		if err != nil {
			return err
		}
		return printRecords(actions, "action_id", "action", "action_description", "body", "committee_type")
	},
}
