package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

// apiPath joins escaped segments onto the API prefix
func apiPath(segments ...string) string {
	p := "/api/v1"
	for _, s := range segments {
		p += "/" + url.PathEscape(s)
	}
	return p
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the initial players (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Player

			if err := client.Post(apiPath("ledger", "seed"), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newExistsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exists <id>",
		Short: "Check whether any asset uses an id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result ExistsResult

			if err := client.Get(apiPath("assets", args[0], "exists"), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a player or faculty (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(apiPath("assets", args[0])); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.PrintMessage(fmt.Sprintf("Deleted %s", args[0]))
			return nil
		},
	}
}
