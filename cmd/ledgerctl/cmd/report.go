package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/SscSPs/ledgerbook/internal/core/domain"
	portssvc "github.com/SscSPs/ledgerbook/internal/core/ports/services"
	"github.com/SscSPs/ledgerbook/internal/dto"
)

var (
	fromDate    string
	toDate      string
	asOfDate    string
	accountCode string
	pageLimit   int
	pageToken   string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Derive financial statements from the ledger",
}

func periodFlags(c *cobra.Command) {
	c.Flags().StringVar(&fromDate, "from", "", "period start (YYYY-MM-DD)")
	c.Flags().StringVar(&toDate, "to", "", "period end, inclusive (YYYY-MM-DD)")
	_ = c.MarkFlagRequired("from")
	_ = c.MarkFlagRequired("to")
}

func asOfFlag(c *cobra.Command) {
	c.Flags().StringVar(&asOfDate, "as-of", "", "as-of date (YYYY-MM-DD, default today)")
}

func parseAsOf() (time.Time, error) {
	if asOfDate == "" {
		return domain.DateOnly(time.Now().UTC()), nil
	}
	return dto.ParseDate(asOfDate)
}

// periodReport wraps a report that covers a date range.
func periodReport(run func(ctx context.Context, svc *portssvc.ServiceContainer, r domain.DateRange) (any, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		r, err := dto.ParseRange(fromDate, toDate)
		if err != nil {
			return err
		}
		return withServices(cmd, func(ctx context.Context, svc *portssvc.ServiceContainer) (any, error) {
			return run(ctx, svc, r)
		})
	}
}

// pointReport wraps a report taken at a single date.
func pointReport(run func(ctx context.Context, svc *portssvc.ServiceContainer, asOf time.Time) (any, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		asOf, err := parseAsOf()
		if err != nil {
			return err
		}
		return withServices(cmd, func(ctx context.Context, svc *portssvc.ServiceContainer) (any, error) {
			return run(ctx, svc, asOf)
		})
	}
}

var profitLossCmd = &cobra.Command{
	Use:   "pnl",
	Short: "Profit and loss for a period",
	RunE: periodReport(func(ctx context.Context, svc *portssvc.ServiceContainer, r domain.DateRange) (any, error) {
		return svc.Reporting.ProfitAndLoss(ctx, r)
	}),
}

var cashFlowCmd = &cobra.Command{
	Use:   "cash-flow",
	Short: "Cash flow statement for a period",
	RunE: periodReport(func(ctx context.Context, svc *portssvc.ServiceContainer, r domain.DateRange) (any, error) {
		return svc.Reporting.CashFlow(ctx, r)
	}),
}

var generalLedgerCmd = &cobra.Command{
	Use:   "gl",
	Short: "General ledger for a period",
	RunE: periodReport(func(ctx context.Context, svc *portssvc.ServiceContainer, r domain.DateRange) (any, error) {
		return svc.Reporting.GeneralLedger(ctx, portssvc.GeneralLedgerParams{
			Range:       r,
			AccountCode: accountCode,
			Limit:       pageLimit,
			PageToken:   pageToken,
		})
	}),
}

var balanceSheetCmd = &cobra.Command{
	Use:   "balance-sheet",
	Short: "Balance sheet as of a date",
	RunE: pointReport(func(ctx context.Context, svc *portssvc.ServiceContainer, asOf time.Time) (any, error) {
		return svc.Reporting.BalanceSheet(ctx, asOf)
	}),
}

var trialBalanceCmd = &cobra.Command{
	Use:   "trial-balance",
	Short: "Trial balance as of a date",
	RunE: pointReport(func(ctx context.Context, svc *portssvc.ServiceContainer, asOf time.Time) (any, error) {
		return svc.Ledger.TrialBalance(ctx, asOf)
	}),
}

func init() {
	periodFlags(profitLossCmd)
	periodFlags(cashFlowCmd)
	periodFlags(generalLedgerCmd)
	generalLedgerCmd.Flags().StringVar(&accountCode, "account", "", "restrict to one account code")
	generalLedgerCmd.Flags().IntVar(&pageLimit, "limit", 0, "lines per page (0 uses the server default of 500, max 1000)")
	generalLedgerCmd.Flags().StringVar(&pageToken, "page-token", "", "continuation token from a previous page")
	asOfFlag(balanceSheetCmd)
	asOfFlag(trialBalanceCmd)

	reportCmd.AddCommand(profitLossCmd, cashFlowCmd, generalLedgerCmd, balanceSheetCmd, trialBalanceCmd)
}
