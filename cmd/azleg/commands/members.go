package commands

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(membersCmd)
	rootCmd.AddCommand(memberCmd)
}

var membersCmd = &cobra.Command{
	Use:   "members <session_id>",
	Short: "Lists the members serving in a session.",
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
		members, err := client.MembersBySessionID(cmd.Context(), sessionID)
		if err != nil {
			return err
		}
		return printCollection(
			members, "members",
			"member_id", "full_name", "body", "district", "party", "position", "email",
		)
	},
}

var memberCmd = &cobra.Command{
	Use:   "member <session_id> <member_id>",
	Short: "Prints a member and the committees they sit on.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID, err := parseID("session_id", args[0])
		if err != nil {
			return err
		}
		memberID, err := parseID("member_id", args[1])
		if err != nil {
			return err
		}
		client, err := getClient(cmd.Context())
		if err != nil {
			return err
		}
		member, err := client.MemberByID(cmd.Context(), sessionID, memberID)
		if err != nil {
			return err
		}
		committees, err := client.MemberCommittees(cmd.Context(), sessionID, memberID)
		if err != nil {
			return err
		}
		if jsonOutput {
			member["committees"] = committees["committees"]
			return printJSON(member)
		}
		err = printRecord(member)
		if err != nil {
			return err
		}
		return printCollection(committees, "committees", "committee_id", "committee_name", "body", "position")
	},
}
