package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget is planned activity for a period. Actuals are never stored with it.
type Budget struct {
	BudgetID    string       `json:"budgetID"`
	Name        string       `json:"name"`
	PeriodStart time.Time    `json:"periodStart"`
	PeriodEnd   time.Time    `json:"periodEnd"`
	Lines       []BudgetLine `json:"lines"`
	AuditFields
}

// BudgetLine plans an amount for an expense category, which is either an
// account code or a chart subcategory.
type BudgetLine struct {
	ExpenseCategory string          `json:"expenseCategory"`
	BudgetedAmount  decimal.Decimal `json:"budgetedAmount"`
}

// BudgetVarianceLine compares a budget line with ledger activity.
type BudgetVarianceLine struct {
	ExpenseCategory    string          `json:"expenseCategory"`
	AccountCodes       []string        `json:"accountCodes"`
	BudgetedAmount     decimal.Decimal `json:"budgetedAmount"`
	ActualAmount       decimal.Decimal `json:"actualAmount"`
	VarianceAmount     decimal.Decimal `json:"varianceAmount"`
	VariancePercentage decimal.Decimal `json:"variancePercentage"`
	OverBudget         bool            `json:"overBudget"`
}

type BudgetSection struct {
	SectionName string               `json:"sectionName"`
	Items       []BudgetVarianceLine `json:"items"`
	Subtotal    decimal.Decimal      `json:"subtotal"`
	Percentage  decimal.Decimal      `json:"percentage"`
}

type BudgetSummary struct {
	TotalBudgeted      decimal.Decimal `json:"totalBudgeted"`
	TotalActual        decimal.Decimal `json:"totalActual"`
	TotalVariance      decimal.Decimal `json:"totalVariance"`
	VariancePercentage decimal.Decimal `json:"variancePercentage"`
	OverBudgetCount    int             `json:"overBudgetCount"`
}

type BudgetReport struct {
	Metadata   ReportMetadata  `json:"metadata"`
	BudgetID   string          `json:"budgetID"`
	BudgetName string          `json:"budgetName"`
	Sections   []BudgetSection `json:"sections"`
	Summary    BudgetSummary   `json:"summary"`
}
