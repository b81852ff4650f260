package cli

import (
	"github.com/spf13/cobra"
)

func newBuyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "buy <player-id> <faculty-id>",
		Short: "Buy a faculty from the bank at its sale price",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"buyer_id": args[0]}
			var result Faculty

			if err := client.Post(apiPath("faculties", args[1], "purchase"), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newRentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rent <faculty-id> <visitor-id>",
		Short: "Charge a visitor the rental fee of a faculty",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"visitor_id": args[1]}
			var result RentResult

			if err := client.Post(apiPath("faculties", args[0], "rent"), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newTradeCmd() *cobra.Command {
	var price int64

	cmd := &cobra.Command{
		Use:   "trade <faculty-id> <buyer-id>",
		Short: "Sell an owned faculty to another player at a negotiated price",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"buyer_id": args[1],
				"price":    price,
			}
			var result Faculty

			if err := client.Post(apiPath("faculties", args[0], "trade"), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().Int64Var(&price, "price", 0, "Negotiated price (required)")
	_ = cmd.MarkFlagRequired("price")

	return cmd
}
