package cmd

import (
	"context"

	"github.com/spf13/cobra"

	portssvc "github.com/SscSPs/ledgerbook/internal/core/ports/services"
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Compare budgets with ledger activity",
}

var budgetVarianceCmd = &cobra.Command{
	Use:   "variance <budgetID>",
	Short: "Budget versus actual for each expense category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd, func(ctx context.Context, svc *portssvc.ServiceContainer) (any, error) {
			return svc.Budget.BudgetVariance(ctx, args[0])
		})
	},
}

func init() {
	budgetCmd.AddCommand(budgetVarianceCmd)
}
