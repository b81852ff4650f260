package cli

import (
	"github.com/spf13/cobra"
)

func newFacultyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "faculty",
		Short: "Faculty management commands",
	}

	cmd.AddCommand(newFacultyCreateCmd())
	cmd.AddCommand(newFacultyGetCmd())
	cmd.AddCommand(newFacultyListCmd())
	cmd.AddCommand(newFacultyOwnerCmd())

	return cmd
}

func newFacultyCreateCmd() *cobra.Command {
	var name string
	var salePrice, rentalFee int64

	cmd := &cobra.Command{
		Use:   "create <id>",
		Short: "Create a faculty owned by the bank",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"id":         args[0],
				"name":       name,
				"sale_price": salePrice,
				"rental_fee": rentalFee,
			}
			var result Faculty

			if err := client.Post(apiPath("faculties"), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Faculty name (required)")
	cmd.Flags().Int64Var(&salePrice, "price", 0, "Sale price")
	cmd.Flags().Int64Var(&rentalFee, "rent", 0, "Rental fee")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newFacultyGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a faculty",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Faculty

			if err := client.Get(apiPath("faculties", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newFacultyListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every faculty",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Faculty

			if err := client.Get(apiPath("faculties"), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newFacultyOwnerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "owner <id>",
		Short: "Show who owns a faculty",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result OwnerResult

			if err := client.Get(apiPath("faculties", args[0], "owner"), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}
