package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportType identifies a generated statement.
type ReportType string

const (
	ReportGeneralLedger  ReportType = "general_ledger"
	ReportProfitAndLoss  ReportType = "profit_loss"
	ReportBalanceSheet   ReportType = "balance_sheet"
	ReportCashFlow       ReportType = "cash_flow"
	ReportTrialBalance   ReportType = "trial_balance"
	ReportDrillDown      ReportType = "drill_down"
	ReportBudgetVariance ReportType = "budget_variance"
)

// ReportMetadata is carried by every report. Period reports set PeriodStart and
// PeriodEnd, point-in-time reports set AsOf.
type ReportMetadata struct {
	ReportType  ReportType `json:"reportType"`
	Currency    string     `json:"currency"`
	GeneratedAt time.Time  `json:"generatedAt"`
	PeriodStart *time.Time `json:"periodStart,omitempty"`
	PeriodEnd   *time.Time `json:"periodEnd,omitempty"`
	AsOf        *time.Time `json:"asOf,omitempty"`
}

// ReportLineItem is one account's contribution to a section.
type ReportLineItem struct {
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Subcategory string          `json:"subcategory,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Percentage  decimal.Decimal `json:"percentage"`
}

// ReportSection is a named group of line items with a subtotal.
type ReportSection struct {
	SectionName string           `json:"sectionName"`
	Items       []ReportLineItem `json:"items"`
	Subsections []ReportSection  `json:"subsections,omitempty"`
	Subtotal    decimal.Decimal  `json:"subtotal"`
	Percentage  decimal.Decimal  `json:"percentage"`
}

// GeneralLedgerSection holds one account's activity in ledger order.
type GeneralLedgerSection struct {
	SectionName    string          `json:"sectionName"`
	AccountCode    string          `json:"accountCode"`
	AccountName    string          `json:"accountName"`
	NormalBalance  NormalBalance   `json:"normalBalance"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	Items          []LedgerEntry   `json:"items"`
	TotalDebit     decimal.Decimal `json:"totalDebit"`
	TotalCredit    decimal.Decimal `json:"totalCredit"`
	// Subtotal is the closing balance after the last item.
	Subtotal   decimal.Decimal `json:"subtotal"`
	Percentage decimal.Decimal `json:"percentage"`
}

type GeneralLedgerSummary struct {
	TotalEntries int             `json:"totalEntries"`
	TotalLines   int             `json:"totalLines"`
	TotalDebits  decimal.Decimal `json:"totalDebits"`
	TotalCredits decimal.Decimal `json:"totalCredits"`
	BalanceCheck bool            `json:"balanceCheck"`
}

// GeneralLedgerReport covers the whole range in its summary while Sections
// may hold a single page of lines.
type GeneralLedgerReport struct {
	Metadata      ReportMetadata         `json:"metadata"`
	Sections      []GeneralLedgerSection `json:"sections"`
	Summary       GeneralLedgerSummary   `json:"summary"`
	NextPageToken *string                `json:"nextPageToken,omitempty"`
}

type ProfitLossSummary struct {
	TotalRevenue           decimal.Decimal `json:"totalRevenue"`
	TotalCogs              decimal.Decimal `json:"totalCogs"`
	TotalOperatingExpenses decimal.Decimal `json:"totalOperatingExpenses"`
	TotalOtherIncome       decimal.Decimal `json:"totalOtherIncome"`
	TotalOtherExpenses     decimal.Decimal `json:"totalOtherExpenses"`
	GrossProfit            decimal.Decimal `json:"grossProfit"`
	OperatingIncome        decimal.Decimal `json:"operatingIncome"`
	NetIncome              decimal.Decimal `json:"netIncome"`
	GrossMargin            decimal.Decimal `json:"grossMargin"`
	OperatingMargin        decimal.Decimal `json:"operatingMargin"`
	NetMargin              decimal.Decimal `json:"netMargin"`
}

type ProfitLossReport struct {
	Metadata ReportMetadata    `json:"metadata"`
	Sections []ReportSection   `json:"sections"`
	Summary  ProfitLossSummary `json:"summary"`
}

// EquityPolicy decides how unclosed profit and loss reaches the balance sheet.
type EquityPolicy string

const (
	// FoldUnclosedEarnings reports the cumulative net of all profit and loss
	// accounts as a computed equity line. Closing entries zero those accounts,
	// so the line disappears once the period is closed.
	FoldUnclosedEarnings EquityPolicy = "fold_unclosed_earnings"
	// ClosingEntriesOnly reports equity exactly as posted.
	ClosingEntriesOnly EquityPolicy = "closing_entries_only"
)

// Valid reports whether p is a known policy.
func (p EquityPolicy) Valid() bool {
	return p == FoldUnclosedEarnings || p == ClosingEntriesOnly
}

type BalanceSheetSummary struct {
	TotalAssets               decimal.Decimal `json:"totalAssets"`
	TotalLiabilities          decimal.Decimal `json:"totalLiabilities"`
	TotalEquity               decimal.Decimal `json:"totalEquity"`
	TotalLiabilitiesAndEquity decimal.Decimal `json:"totalLiabilitiesAndEquity"`
	UnclosedEarnings          decimal.Decimal `json:"unclosedEarnings"`
	Difference                decimal.Decimal `json:"difference"`
	IsBalanced                bool            `json:"isBalanced"`
	EquityPolicy              EquityPolicy    `json:"equityPolicy"`
}

type BalanceSheetReport struct {
	Metadata ReportMetadata      `json:"metadata"`
	Sections []ReportSection     `json:"sections"`
	Summary  BalanceSheetSummary `json:"summary"`
}

type CashFlowSummary struct {
	BeginningCash      decimal.Decimal `json:"beginningCash"`
	EndingCash         decimal.Decimal `json:"endingCash"`
	NetChangeInCash    decimal.Decimal `json:"netChangeInCash"`
	OperatingTotal     decimal.Decimal `json:"operatingTotal"`
	InvestingTotal     decimal.Decimal `json:"investingTotal"`
	FinancingTotal     decimal.Decimal `json:"financingTotal"`
	Difference         decimal.Decimal `json:"difference"`
	CashFlowValidation bool            `json:"cashFlowValidation"`
}

type CashFlowStatement struct {
	Metadata ReportMetadata  `json:"metadata"`
	Sections []ReportSection `json:"sections"`
	Summary  CashFlowSummary `json:"summary"`
}

// TrialBalanceRow is one account's cumulative activity.
type TrialBalanceRow struct {
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Category    AccountCategory `json:"category"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
	BalanceType NormalBalance   `json:"balanceType"`
}

type TrialBalanceSummary struct {
	TotalDebits  decimal.Decimal `json:"totalDebits"`
	TotalCredits decimal.Decimal `json:"totalCredits"`
	BalanceCheck bool            `json:"balanceCheck"`
}

type TrialBalanceReport struct {
	Metadata ReportMetadata      `json:"metadata"`
	Rows     []TrialBalanceRow   `json:"rows"`
	Summary  TrialBalanceSummary `json:"summary"`
}

// DrillDownKind is the typed source transaction behind a ledger line.
type DrillDownKind string

const (
	KindInvoice       DrillDownKind = "Invoice"
	KindPayment       DrillDownKind = "Payment"
	KindSalesReceipt  DrillDownKind = "SalesReceipt"
	KindCreditMemo    DrillDownKind = "CreditMemo"
	KindExpense       DrillDownKind = "Expense"
	KindBill          DrillDownKind = "Bill"
	KindBillPayment   DrillDownKind = "BillPayment"
	KindJournalEntry  DrillDownKind = "JournalEntry"
	KindPurchaseOrder DrillDownKind = "PurchaseOrder"
	KindExpenseClaim  DrillDownKind = "ExpenseClaim"
)

var drillDownKinds = map[DrillDownKind]struct{}{
	KindInvoice: {}, KindPayment: {}, KindSalesReceipt: {}, KindCreditMemo: {}, KindExpense: {},
	KindBill: {}, KindBillPayment: {}, KindJournalEntry: {}, KindPurchaseOrder: {}, KindExpenseClaim: {},
}

// ParseDrillDownKind recognizes a kind by name.
func ParseDrillDownKind(s string) (DrillDownKind, bool) {
	k := DrillDownKind(s)
	_, ok := drillDownKinds[k]
	return k, ok
}

// DrillDownKindFor maps an entry's transaction type to its source kind.
func DrillDownKindFor(t TransactionType) DrillDownKind {
	switch t {
	case TxInvoice:
		return KindInvoice
	case TxPayment:
		return KindPayment
	case TxSalesReceipt:
		return KindSalesReceipt
	case TxExpense:
		return KindExpense
	case TxExpenseClaim:
		return KindExpenseClaim
	case TxRefund:
		return KindCreditMemo
	default:
		return KindJournalEntry
	}
}

type DrillDownItem struct {
	Kind          DrillDownKind   `json:"kind"`
	TransactionID string          `json:"transactionID,omitempty"`
	EntryID       string          `json:"entryID"`
	EntryNumber   string          `json:"entryNumber"`
	EntryDate     time.Time       `json:"entryDate"`
	Description   string          `json:"description"`
	ReferenceID   string          `json:"referenceID,omitempty"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Amount        decimal.Decimal `json:"amount"`
}

type DrillDownReport struct {
	Metadata    ReportMetadata  `json:"metadata"`
	SourceType  ReportType      `json:"sourceReportType"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Items       []DrillDownItem `json:"items"`
	TotalCount  int             `json:"totalCount"`
	Limit       int             `json:"limit"`
	Offset      int             `json:"offset"`
	HasMore     bool            `json:"hasMore"`
}
