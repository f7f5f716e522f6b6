package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget is a row of budgets.
type Budget struct {
	BudgetID    string    `db:"budget_id"`
	Name        string    `db:"name"`
	PeriodStart time.Time `db:"period_start"`
	PeriodEnd   time.Time `db:"period_end"`
	AuditFields
}

// BudgetLine is a row of budget_lines.
type BudgetLine struct {
	BudgetID        string          `db:"budget_id"`
	LineOrder       int             `db:"line_order"`
	ExpenseCategory string          `db:"expense_category"`
	BudgetedAmount  decimal.Decimal `db:"budgeted_amount"`
}
