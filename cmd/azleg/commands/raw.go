package commands

import (
	"fmt"
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(opsCmd)
	rootCmd.AddCommand(callCmd)
}

var opsCmd = &cobra.Command{
	Use:   "ops",
	Short: "Lists the operations the service describes.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := getClient(cmd.Context())
		if err != nil {
			return err
		}
		operations := client.Operations()
		if jsonOutput {
			return printJSON(operations)
		}
		for _, op := range operations {
			fmt.Fprintln(os.Stdout, op)
		}
		return nil
	},
}

var callCmd = &cobra.Command{
	Use:   "call <operation> [args...]",
	Short: "Calls any operation with positional arguments and prints the raw response as JSON.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := getClient(cmd.Context())
		if err != nil {
			return err
		}
		params := lo.Map(args[1:], func(arg string, _ int) any {
			return arg
		})
		result, err := client.Raw(cmd.Context(), args[0], params...)
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}
