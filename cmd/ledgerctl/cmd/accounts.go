package cmd

import (
	"github.com/spf13/cobra"

	"github.com/SscSPs/ledgerbook/internal/core/services"
	"github.com/SscSPs/ledgerbook/internal/dto"
)

var chartPath string

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "Print the chart of accounts",
	Long: `Print the chart of accounts with each account's normal balance and
cash flow activity. Does not need a database.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		chart, err := services.LoadChartOfAccounts(chartPath)
		if err != nil {
			return err
		}
		return printJSON(cmd, dto.ToAccountResponses(chart.Accounts()))
	},
}

func init() {
	accountsCmd.Flags().StringVar(&chartPath, "chart", "", "chart of accounts YAML file (default is the built-in chart)")
}
