package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/ledgerbook/internal/adapters/database/memory"
	"github.com/SscSPs/ledgerbook/internal/apperrors"
	"github.com/SscSPs/ledgerbook/internal/core/domain"
	portsrepo "github.com/SscSPs/ledgerbook/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledgerbook/internal/core/ports/services"
	"github.com/SscSPs/ledgerbook/internal/core/services"
)

func day(month time.Month, d int) time.Time {
	return time.Date(2024, month, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// LedgerScenarioTestSuite drives the services end to end over the in-memory store.
type LedgerScenarioTestSuite struct {
	suite.Suite
	ctx       context.Context
	repos     portsrepo.RepositoryProvider
	chart     portssvc.ChartOfAccounts
	journal   portssvc.JournalSvcFacade
	ledger    portssvc.LedgerSvc
	reporting portssvc.ReportingService
	budgets   portssvc.BudgetSvcFacade
	now       time.Time
}

func (suite *LedgerScenarioTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.repos = memory.NewRepositoryProvider()
	chart, err := services.DefaultChartOfAccounts()
	suite.Require().NoError(err)
	suite.chart = chart
	suite.now = time.Date(2024, time.February, 10, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time { return suite.now }

	suite.journal = services.NewJournalService(suite.repos.JournalRepo, chart, services.WithJournalClock(clock))
	suite.ledger = services.NewLedgerService(suite.repos.JournalRepo, chart, services.WithReportClock(clock))
	suite.reporting = services.NewReportingService(suite.repos.JournalRepo, chart, services.WithReportClock(clock))
	suite.budgets = services.NewBudgetService(suite.repos.BudgetRepo, suite.repos.JournalRepo, chart, services.WithReportClock(clock))

	// January: capital injection, invoice, customer payment, rent. February: one cash sale.
	suite.record(day(time.January, 2), domain.TxAdjustment, "", debitLine("1010", 50_000_000), creditLine("3000", 50_000_000))
	suite.record(day(time.January, 10), domain.TxInvoice, "INV-1", debitLine("1100", 1_000_000), creditLine("4000", 1_000_000))
	suite.record(day(time.January, 20), domain.TxPayment, "PAY-1", debitLine("1010", 1_000_000), creditLine("1100", 1_000_000))
	suite.record(day(time.January, 22), domain.TxExpense, "EXP-1", debitLine("6100", 1_250_000), creditLine("1010", 1_250_000))
	suite.record(day(time.February, 5), domain.TxSalesReceipt, "SR-1", debitLine("1000", 300_000), creditLine("4000", 300_000))
}

func (suite *LedgerScenarioTestSuite) record(date time.Time, txType domain.TransactionType, txID string, lines ...domain.JournalEntryLine) *domain.JournalEntry {
	entry, err := suite.journal.CreateEntry(suite.ctx, domain.NewJournalEntry{
		EntryDate:       date,
		Description:     string(txType) + " " + txID,
		TransactionType: txType,
		TransactionID:   txID,
		Lines:           lines,
		CreatedBy:       "tester",
	})
	suite.Require().NoError(err)
	return entry
}

func (suite *LedgerScenarioTestSuite) january() domain.DateRange {
	return domain.DateRange{Start: day(time.January, 1), End: day(time.January, 31)}
}

func (suite *LedgerScenarioTestSuite) february() domain.DateRange {
	return domain.DateRange{Start: day(time.February, 1), End: day(time.February, 29)}
}

func (suite *LedgerScenarioTestSuite) balance(code string, asOf time.Time) decimal.Decimal {
	b, err := suite.ledger.AccountBalance(suite.ctx, code, asOf)
	suite.Require().NoError(err)
	return b
}

func (suite *LedgerScenarioTestSuite) TestInvoiceThenPaymentClearsReceivable() {
	suite.True(suite.balance("1100", day(time.January, 15)).Equal(dec("1000000")))
	suite.True(suite.balance("1100", day(time.January, 31)).IsZero())

	pl, err := suite.reporting.ProfitAndLoss(suite.ctx, suite.january())
	suite.Require().NoError(err)
	suite.True(pl.Summary.TotalRevenue.Equal(dec("1000000")))
	suite.True(pl.Summary.TotalOperatingExpenses.Equal(dec("1250000")))
	suite.True(pl.Summary.NetIncome.Equal(dec("-250000")))
	suite.True(pl.Summary.NetMargin.Equal(dec("-25")))

	suite.Require().Len(pl.Sections, 5)
	revenue := pl.Sections[0]
	suite.Equal(services.SectionRevenue, revenue.SectionName)
	suite.Require().Len(revenue.Items, 1)
	suite.Equal("4000", revenue.Items[0].AccountCode)
	suite.True(revenue.Items[0].Percentage.Equal(dec("100")))
	suite.Empty(pl.Sections[1].Items, "no cost of goods sold in January")
	suite.Equal("VND", pl.Metadata.Currency)
	suite.Equal(suite.now, pl.Metadata.GeneratedAt)
}

func (suite *LedgerScenarioTestSuite) TestPeriodBoundsAreInclusiveAndExclusive() {
	pl, err := suite.reporting.ProfitAndLoss(suite.ctx, suite.february())
	suite.Require().NoError(err)
	suite.True(pl.Summary.TotalRevenue.Equal(dec("300000")))
	suite.True(pl.Summary.TotalOperatingExpenses.IsZero())

	oneDay := domain.DateRange{Start: day(time.January, 22), End: day(time.January, 22)}
	pl, err = suite.reporting.ProfitAndLoss(suite.ctx, oneDay)
	suite.Require().NoError(err)
	suite.True(pl.Summary.TotalOperatingExpenses.Equal(dec("1250000")))
	suite.True(pl.Summary.TotalRevenue.IsZero())

	_, err = suite.reporting.ProfitAndLoss(suite.ctx, domain.DateRange{Start: day(time.February, 1), End: day(time.January, 1)})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerScenarioTestSuite) TestReversalRestoresBalances() {
	invoice := suite.record(day(time.February, 1), domain.TxInvoice, "INV-2", debitLine("1100", 500_000), creditLine("4000", 500_000))
	suite.True(suite.balance("1100", day(time.February, 29)).Equal(dec("500000")))

	reversal, err := suite.journal.ReverseEntry(suite.ctx, invoice.EntryID, "tester")
	suite.Require().NoError(err)
	suite.Equal(day(time.February, 10), reversal.EntryDate)

	original, err := suite.journal.GetEntry(suite.ctx, invoice.EntryID)
	suite.Require().NoError(err)
	suite.Equal(domain.Reversed, original.Status)
	suite.Require().NotNil(original.ReversedByEntryID)
	suite.Equal(reversal.EntryID, *original.ReversedByEntryID)

	suite.True(suite.balance("1100", day(time.February, 29)).IsZero())
	pl, err := suite.reporting.ProfitAndLoss(suite.ctx, suite.february())
	suite.Require().NoError(err)
	suite.True(pl.Summary.TotalRevenue.Equal(dec("300000")))

	entries, err := suite.journal.ListEntriesByTransaction(suite.ctx, domain.TxInvoice, "INV-2")
	suite.Require().NoError(err)
	suite.Len(entries, 2)

	_, err = suite.journal.ReverseEntry(suite.ctx, invoice.EntryID, "tester")
	suite.ErrorIs(err, apperrors.ErrConflict)
	_, err = suite.journal.ReverseEntry(suite.ctx, reversal.EntryID, "tester")
	suite.ErrorIs(err, services.ErrJournalReversal)

	// The reversal frees the transaction for a corrected entry.
	suite.record(day(time.February, 11), domain.TxInvoice, "INV-2", debitLine("1100", 450_000), creditLine("4000", 450_000))
}

func (suite *LedgerScenarioTestSuite) TestRejectedEntriesLeaveNoTrace() {
	before, err := suite.repos.JournalRepo.CountLines(suite.ctx, domain.LedgerFilter{})
	suite.Require().NoError(err)

	_, err = suite.journal.CreateEntry(suite.ctx, domain.NewJournalEntry{
		EntryDate:       day(time.February, 6),
		TransactionType: domain.TxInvoice,
		TransactionID:   "INV-9",
		Lines:           []domain.JournalEntryLine{debitLine("1100", 500_000), creditLine("4000", 400_000)},
	})
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.journal.CreateEntry(suite.ctx, domain.NewJournalEntry{
		EntryDate:       day(time.February, 6),
		TransactionType: domain.TxInvoice,
		TransactionID:   "INV-1",
		Lines:           []domain.JournalEntryLine{debitLine("1100", 1), creditLine("4000", 1)},
	})
	suite.ErrorIs(err, apperrors.ErrConflict)

	after, err := suite.repos.JournalRepo.CountLines(suite.ctx, domain.LedgerFilter{})
	suite.Require().NoError(err)
	suite.Equal(before, after)
}

func (suite *LedgerScenarioTestSuite) TestDraftsStayOutOfTheLedgerUntilPosted() {
	draft, err := suite.journal.CreateEntry(suite.ctx, domain.NewJournalEntry{
		EntryDate:       day(time.January, 25),
		Description:     "Office supplies awaiting approval",
		TransactionType: domain.TxManual,
		Status:          domain.Draft,
		Lines:           []domain.JournalEntryLine{debitLine("6400", 80_000), creditLine("1000", 80_000)},
	})
	suite.Require().NoError(err)
	suite.True(suite.balance("6400", day(time.January, 31)).IsZero())

	_, err = suite.journal.ReverseEntry(suite.ctx, draft.EntryID, "tester")
	suite.ErrorIs(err, services.ErrJournalNotPosted)

	posted, err := suite.journal.PostEntry(suite.ctx, draft.EntryID, "approver")
	suite.Require().NoError(err)
	suite.Equal(domain.Posted, posted.Status)
	again, err := suite.journal.PostEntry(suite.ctx, draft.EntryID, "approver")
	suite.Require().NoError(err)
	suite.Equal(domain.Posted, again.Status)

	suite.True(suite.balance("6400", day(time.January, 31)).Equal(dec("80000")))
}

func (suite *LedgerScenarioTestSuite) TestTrialBalance() {
	tb, err := suite.ledger.TrialBalance(suite.ctx, day(time.January, 31))
	suite.Require().NoError(err)

	suite.True(tb.Summary.BalanceCheck)
	suite.True(tb.Summary.TotalDebits.Equal(dec("53250000")))
	suite.True(tb.Summary.TotalDebits.Equal(tb.Summary.TotalCredits))

	codes := make([]string, 0, len(tb.Rows))
	for _, row := range tb.Rows {
		codes = append(codes, row.AccountCode)
	}
	suite.Equal([]string{"1010", "1100", "3000", "4000", "6100"}, codes)
	suite.Equal(domain.NormalCredit, tb.Rows[2].BalanceType)
	suite.Equal(day(time.January, 31), *tb.Metadata.AsOf)
}

func (suite *LedgerScenarioTestSuite) TestBalanceSheetFoldsUnclosedEarnings() {
	bs, err := suite.reporting.BalanceSheet(suite.ctx, day(time.January, 31))
	suite.Require().NoError(err)

	suite.True(bs.Summary.IsBalanced)
	suite.Equal(domain.FoldUnclosedEarnings, bs.Summary.EquityPolicy)
	suite.True(bs.Summary.TotalAssets.Equal(dec("49750000")))
	suite.True(bs.Summary.UnclosedEarnings.Equal(dec("-250000")))
	suite.True(bs.Summary.TotalEquity.Equal(dec("49750000")))
	suite.True(bs.Summary.Difference.IsZero())

	suite.Require().Len(bs.Sections, 3)
	equity := bs.Sections[2]
	suite.Equal(services.SectionEquity, equity.SectionName)
	var names []string
	for _, item := range equity.Items {
		names = append(names, item.AccountName)
	}
	suite.Contains(names, services.UnclosedEarningsName)

	assets := bs.Sections[0]
	suite.Equal(services.SubsectionCurrent, assets.Subsections[0].SectionName)
	suite.True(assets.Subsections[0].Subtotal.Equal(dec("49750000")))
	suite.True(assets.Percentage.Equal(dec("100")))
}

func (suite *LedgerScenarioTestSuite) TestBalanceSheetWithClosingEntries() {
	closingOnly := services.NewReportingService(suite.repos.JournalRepo, suite.chart,
		services.WithEquityPolicy(domain.ClosingEntriesOnly))

	bs, err := closingOnly.BalanceSheet(suite.ctx, day(time.January, 31))
	suite.Require().NoError(err)
	suite.False(bs.Summary.IsBalanced, "P&L has not been closed yet")
	suite.True(bs.Summary.Difference.Equal(dec("-250000")))

	balances := map[string]decimal.Decimal{
		"4000": suite.balance("4000", day(time.January, 31)),
		"6100": suite.balance("6100", day(time.January, 31)),
		"1010": suite.balance("1010", day(time.January, 31)),
	}
	closing, err := services.ClosingLines(suite.chart, balances, "3100")
	suite.Require().NoError(err)
	suite.Require().Len(closing.Items, 3, "balance sheet accounts are not closed")
	req, err := services.BuildEntry(closing, day(time.January, 31), "Close January", "tester")
	suite.Require().NoError(err)
	_, err = suite.journal.CreateEntry(suite.ctx, req)
	suite.Require().NoError(err)

	bs, err = closingOnly.BalanceSheet(suite.ctx, day(time.January, 31))
	suite.Require().NoError(err)
	suite.True(bs.Summary.IsBalanced)
	suite.True(suite.balance("3100", day(time.January, 31)).Equal(dec("-250000")))

	folded, err := suite.reporting.BalanceSheet(suite.ctx, day(time.January, 31))
	suite.Require().NoError(err)
	suite.True(folded.Summary.IsBalanced)
	suite.True(folded.Summary.UnclosedEarnings.IsZero())
}

func (suite *LedgerScenarioTestSuite) TestCashFlow() {
	cf, err := suite.reporting.CashFlow(suite.ctx, suite.january())
	suite.Require().NoError(err)

	suite.True(cf.Summary.CashFlowValidation)
	suite.True(cf.Summary.BeginningCash.IsZero())
	suite.True(cf.Summary.EndingCash.Equal(dec("49750000")))
	suite.True(cf.Summary.OperatingTotal.Equal(dec("-250000")))
	suite.True(cf.Summary.FinancingTotal.Equal(dec("50000000")))
	suite.True(cf.Summary.InvestingTotal.IsZero())

	operating := cf.Sections[0]
	suite.Equal(services.SectionOperating, operating.SectionName)
	suite.Require().Len(operating.Items, 2)
	suite.Equal("1100", operating.Items[0].AccountCode)
	suite.Equal("6100", operating.Items[1].AccountCode)

	cf, err = suite.reporting.CashFlow(suite.ctx, suite.february())
	suite.Require().NoError(err)
	suite.True(cf.Summary.BeginningCash.Equal(dec("49750000")))
	suite.True(cf.Summary.NetChangeInCash.Equal(dec("300000")))
	suite.True(cf.Summary.CashFlowValidation)
}

func (suite *LedgerScenarioTestSuite) TestCashTransfersAreNotCashFlows() {
	suite.record(day(time.February, 7), domain.TxManual, "", debitLine("1000", 100_000), creditLine("1010", 100_000))

	cf, err := suite.reporting.CashFlow(suite.ctx, suite.february())
	suite.Require().NoError(err)
	suite.True(cf.Summary.NetChangeInCash.Equal(dec("300000")))
	suite.True(cf.Summary.OperatingTotal.Equal(dec("300000")))
	suite.True(cf.Summary.CashFlowValidation)
}

func (suite *LedgerScenarioTestSuite) TestGeneralLedgerSummaryAndSections() {
	gl, err := suite.reporting.GeneralLedger(suite.ctx, portssvc.GeneralLedgerParams{Range: suite.january()})
	suite.Require().NoError(err)

	suite.Equal(4, gl.Summary.TotalEntries)
	suite.Equal(8, gl.Summary.TotalLines)
	suite.True(gl.Summary.BalanceCheck)
	suite.Nil(gl.NextPageToken)
	suite.Len(gl.Sections, 5)

	bank := gl.Sections[0]
	suite.Equal("1010", bank.AccountCode)
	suite.Require().Len(bank.Items, 3)
	expected := []string{"50000000", "51000000", "49750000"}
	for i, item := range bank.Items {
		suite.True(item.RunningBalance.Equal(dec(expected[i])), "running balance %d", i)
	}
	suite.True(bank.Subtotal.Equal(dec("49750000")))
}

func (suite *LedgerScenarioTestSuite) TestGeneralLedgerPaging() {
	params := portssvc.GeneralLedgerParams{Range: suite.january(), AccountCode: "1010", Limit: 2}
	first, err := suite.reporting.GeneralLedger(suite.ctx, params)
	suite.Require().NoError(err)
	suite.Equal(3, first.Summary.TotalLines)
	suite.Require().Len(first.Sections, 1)
	suite.Len(first.Sections[0].Items, 2)
	suite.True(first.Sections[0].OpeningBalance.IsZero())
	suite.Require().NotNil(first.NextPageToken)

	params.PageToken = *first.NextPageToken
	second, err := suite.reporting.GeneralLedger(suite.ctx, params)
	suite.Require().NoError(err)
	suite.Require().Len(second.Sections, 1)
	suite.Require().Len(second.Sections[0].Items, 1)
	suite.True(second.Sections[0].OpeningBalance.Equal(dec("51000000")))
	suite.True(second.Sections[0].Subtotal.Equal(dec("49750000")))
	suite.Nil(second.NextPageToken)
	suite.Equal(first.Summary.TotalLines, second.Summary.TotalLines)
	suite.True(first.Summary.TotalDebits.Equal(second.Summary.TotalDebits))

	params.PageToken = "not a token"
	_, err = suite.reporting.GeneralLedger(suite.ctx, params)
	suite.ErrorIs(err, apperrors.ErrValidation)

	params.PageToken = ""
	params.Limit = services.MaxGeneralLedgerPageSize + 1
	_, err = suite.reporting.GeneralLedger(suite.ctx, params)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func glItemCount(gl *domain.GeneralLedgerReport) int {
	n := 0
	for _, sec := range gl.Sections {
		n += len(sec.Items)
	}
	return n
}

func (suite *LedgerScenarioTestSuite) TestGeneralLedgerWithoutLimitIsPaged() {
	reporting := services.NewReportingService(suite.repos.JournalRepo, suite.chart,
		services.WithGeneralLedgerPageSize(3))
	params := portssvc.GeneralLedgerParams{Range: suite.january()}

	seen := 0
	pages := 0
	for {
		gl, err := reporting.GeneralLedger(suite.ctx, params)
		suite.Require().NoError(err)
		suite.Equal(8, gl.Summary.TotalLines)
		suite.LessOrEqual(glItemCount(gl), 3)
		seen += glItemCount(gl)
		pages++
		if gl.NextPageToken == nil {
			break
		}
		params.PageToken = *gl.NextPageToken
	}
	suite.Equal(8, seen)
	suite.Equal(3, pages)
}

func (suite *LedgerScenarioTestSuite) TestGeneralLedgerDefaultPageSize() {
	march := domain.DateRange{Start: day(time.March, 1), End: day(time.March, 31)}
	entries := services.DefaultGeneralLedgerPageSize/2 + 1
	for i := 0; i < entries; i++ {
		suite.record(day(time.March, 1+i%28), domain.TxSalesReceipt, fmt.Sprintf("SR-M-%d", i),
			debitLine("1000", 1_000), creditLine("4000", 1_000))
	}

	gl, err := suite.reporting.GeneralLedger(suite.ctx, portssvc.GeneralLedgerParams{Range: march})
	suite.Require().NoError(err)
	suite.Equal(entries*2, gl.Summary.TotalLines)
	suite.Equal(services.DefaultGeneralLedgerPageSize, glItemCount(gl))
	suite.Require().NotNil(gl.NextPageToken)

	rest, err := suite.reporting.GeneralLedger(suite.ctx, portssvc.GeneralLedgerParams{Range: march, PageToken: *gl.NextPageToken})
	suite.Require().NoError(err)
	suite.Equal(entries*2-services.DefaultGeneralLedgerPageSize, glItemCount(rest))
	suite.Nil(rest.NextPageToken)
}

func (suite *LedgerScenarioTestSuite) TestDrillDown() {
	report, err := suite.reporting.DrillDown(suite.ctx, portssvc.DrillDownParams{
		ReportType: domain.ReportProfitAndLoss, AccountCode: "4000", Range: suite.january(),
	})
	suite.Require().NoError(err)
	suite.Equal(1, report.TotalCount)
	suite.Require().Len(report.Items, 1)
	suite.Equal(domain.KindInvoice, report.Items[0].Kind)
	suite.Equal("INV-1", report.Items[0].TransactionID)
	suite.True(report.Items[0].Amount.Equal(dec("1000000")))
	suite.Equal(services.DefaultDrillDownLimit, report.Limit)
	suite.False(report.HasMore)

	page, err := suite.reporting.DrillDown(suite.ctx, portssvc.DrillDownParams{
		ReportType: domain.ReportCashFlow, AccountCode: "1010", Range: suite.january(), Limit: 2,
	})
	suite.Require().NoError(err)
	suite.Equal(3, page.TotalCount)
	suite.Len(page.Items, 2)
	suite.True(page.HasMore)

	page, err = suite.reporting.DrillDown(suite.ctx, portssvc.DrillDownParams{
		ReportType: domain.ReportCashFlow, AccountCode: "1010", Range: suite.january(), Limit: 2, Offset: 2,
	})
	suite.Require().NoError(err)
	suite.Len(page.Items, 1)
	suite.False(page.HasMore)
	suite.True(page.Items[0].Amount.Equal(dec("-1250000")))
	suite.Equal(domain.KindExpense, page.Items[0].Kind)

	// Balance sheet figures are cumulative, so the drill-down starts at inception.
	bs, err := suite.reporting.DrillDown(suite.ctx, portssvc.DrillDownParams{
		ReportType: domain.ReportBalanceSheet, AccountCode: "1010", Range: suite.february(),
	})
	suite.Require().NoError(err)
	suite.Equal(3, bs.TotalCount)
	suite.NotNil(bs.Metadata.AsOf)
}

func (suite *LedgerScenarioTestSuite) TestDrillDownRejections() {
	tests := []struct {
		name   string
		params portssvc.DrillDownParams
		want   error
	}{
		{"account not on report", portssvc.DrillDownParams{ReportType: domain.ReportProfitAndLoss, AccountCode: "1010", Range: suite.january()}, apperrors.ErrValidation},
		{"unsupported report", portssvc.DrillDownParams{ReportType: domain.ReportTrialBalance, AccountCode: "1010", Range: suite.january()}, apperrors.ErrValidation},
		{"negative offset", portssvc.DrillDownParams{ReportType: domain.ReportGeneralLedger, AccountCode: "1010", Range: suite.january(), Offset: -1}, apperrors.ErrValidation},
		{"unknown account", portssvc.DrillDownParams{ReportType: domain.ReportGeneralLedger, AccountCode: "9999", Range: suite.january()}, apperrors.ErrNotFound},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := suite.reporting.DrillDown(suite.ctx, tt.params)
			suite.ErrorIs(err, tt.want)
		})
	}
}

func (suite *LedgerScenarioTestSuite) TestDrillDownPrefersLineReferenceKind() {
	bill, err := services.BuildEntry(services.ExpenseLines{
		ExpenseID: "BILL-1", ExpenseAccount: "6200", OnCredit: true, Amount: dec("400000"),
	}, day(time.February, 8), "Electricity bill", "tester")
	suite.Require().NoError(err)
	_, err = suite.journal.CreateEntry(suite.ctx, bill)
	suite.Require().NoError(err)

	payment, err := services.BuildEntry(services.PaymentLines{
		PaymentID: "PAY-2", SettlesID: "BILL-1", Outgoing: true, Amount: dec("400000"),
	}, day(time.February, 9), "Pay electricity bill", "tester")
	suite.Require().NoError(err)
	_, err = suite.journal.CreateEntry(suite.ctx, payment)
	suite.Require().NoError(err)

	report, err := suite.reporting.DrillDown(suite.ctx, portssvc.DrillDownParams{
		ReportType: domain.ReportGeneralLedger, AccountCode: services.DefaultPayableAccount, Range: suite.february(),
	})
	suite.Require().NoError(err)
	suite.Require().Len(report.Items, 2)
	suite.Equal(domain.KindBill, report.Items[0].Kind)
	suite.Equal(domain.KindBillPayment, report.Items[1].Kind)
	suite.Equal("BILL-1", report.Items[1].ReferenceID)
	suite.True(suite.balance(services.DefaultPayableAccount, day(time.February, 29)).IsZero())
}

func (suite *LedgerScenarioTestSuite) TestBudgetVariance() {
	budget, err := suite.budgets.CreateBudget(suite.ctx, domain.Budget{
		Name:        "January opex",
		PeriodStart: day(time.January, 1),
		PeriodEnd:   day(time.January, 31),
		Lines: []domain.BudgetLine{
			{ExpenseCategory: "6100", BudgetedAmount: dec("1000000")},
			{ExpenseCategory: "Occupancy", BudgetedAmount: dec("2000000")},
		},
	}, "planner")
	suite.Require().NoError(err)

	report, err := suite.budgets.BudgetVariance(suite.ctx, budget.BudgetID)
	suite.Require().NoError(err)
	suite.Require().Len(report.Sections, 1)
	suite.Equal(services.SectionOperatingExpenses, report.Sections[0].SectionName)

	rent := report.Sections[0].Items[0]
	suite.True(rent.ActualAmount.Equal(dec("1250000")))
	suite.True(rent.VarianceAmount.Equal(dec("250000")))
	suite.True(rent.VariancePercentage.Equal(dec("25")))
	suite.True(rent.OverBudget)

	occupancy := report.Sections[0].Items[1]
	suite.Equal([]string{"6100", "6200"}, occupancy.AccountCodes)
	suite.True(occupancy.VarianceAmount.Equal(dec("-750000")))
	suite.False(occupancy.OverBudget)

	suite.Equal(1, report.Summary.OverBudgetCount)
	suite.True(report.Summary.TotalBudgeted.Equal(dec("3000000")))
	suite.True(report.Summary.TotalActual.Equal(dec("2500000")))

	listed, err := suite.budgets.ListBudgets(suite.ctx, 0, 0)
	suite.Require().NoError(err)
	suite.Len(listed, 1)
}

func (suite *LedgerScenarioTestSuite) TestBudgetValidation() {
	base := domain.Budget{Name: "Q1", PeriodStart: day(time.January, 1), PeriodEnd: day(time.March, 31)}

	unknown := base
	unknown.Lines = []domain.BudgetLine{{ExpenseCategory: "yachts", BudgetedAmount: dec("1")}}
	_, err := suite.budgets.CreateBudget(suite.ctx, unknown, "planner")
	suite.ErrorIs(err, apperrors.ErrValidation)

	dup := base
	dup.Lines = []domain.BudgetLine{{ExpenseCategory: "6100", BudgetedAmount: dec("1")}, {ExpenseCategory: "6100", BudgetedAmount: dec("2")}}
	_, err = suite.budgets.CreateBudget(suite.ctx, dup, "planner")
	suite.ErrorIs(err, apperrors.ErrValidation)

	inverted := base
	inverted.PeriodEnd = day(time.January, 1).AddDate(0, 0, -1)
	inverted.Lines = []domain.BudgetLine{{ExpenseCategory: "6100", BudgetedAmount: dec("1")}}
	_, err = suite.budgets.CreateBudget(suite.ctx, inverted, "planner")
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.budgets.BudgetVariance(suite.ctx, "missing")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestLedgerScenarios(t *testing.T) {
	suite.Run(t, new(LedgerScenarioTestSuite))
}
