package main

import (
	"context"

	customerdomain "github.com/smallbiznis/railpos/internal/customer/domain"
	"github.com/spf13/cobra"
)

var debtCmd = &cobra.Command{
	Use:   "debt <customer-id>",
	Short: "Show a customer's outstanding balance",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		var customers customerdomain.Service
		return runOnce(cmd, func(ctx context.Context) error {
			customer, err := customers.Get(ctx, id)
			if err != nil {
				return err
			}
			debt, err := customers.TotalDebt(ctx, id)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"customer_id": customer.ID,
				"name":        customer.Name,
				"total_debt":  debt.StringFixed(2),
			})
		}, &customers)
	},
}

func init() {
	rootCmd.AddCommand(debtCmd)
}
