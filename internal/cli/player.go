package cli

import (
	"github.com/spf13/cobra"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Player management commands",
	}

	cmd.AddCommand(newPlayerCreateCmd())
	cmd.AddCommand(newPlayerGetCmd())
	cmd.AddCommand(newPlayerListCmd())
	cmd.AddCommand(newPlayerActiveCmd())
	cmd.AddCommand(newPlayerCreditCmd())
	cmd.AddCommand(newPlayerEliminatedCmd())

	return cmd
}

func newPlayerCreateCmd() *cobra.Command {
	var name string
	var credit int64

	cmd := &cobra.Command{
		Use:   "create <id>",
		Short: "Create a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"id":     args[0],
				"name":   name,
				"credit": credit,
			}
			var result Player

			if err := client.Post(apiPath("players"), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Player name (required)")
	cmd.Flags().Int64Var(&credit, "credit", 0, "Starting credit")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newPlayerGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Player

			if err := client.Get(apiPath("players", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newPlayerListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every player",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Player

			if err := client.Get(apiPath("players"), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newPlayerActiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "active",
		Short: "List the names of players still in the game",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result NamesResult

			if err := client.Get(apiPath("players", "active"), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newPlayerCreditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "credit <id>",
		Short: "Show a player's credit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result CreditResult

			if err := client.Get(apiPath("players", args[0], "credit"), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newPlayerEliminatedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "eliminated <id>",
		Short: "Show whether a player has been eliminated",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result EliminatedResult

			if err := client.Get(apiPath("players", args[0], "eliminated"), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}
