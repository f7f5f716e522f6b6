package domain

import "github.com/shopspring/decimal"

// AccountCategory classifies an account for posting and statement routing.
type AccountCategory string

const (
	CategoryAsset            AccountCategory = "ASSET"
	CategoryLiability        AccountCategory = "LIABILITY"
	CategoryEquity           AccountCategory = "EQUITY"
	CategoryRevenue          AccountCategory = "REVENUE"
	CategoryCogs             AccountCategory = "COGS"
	CategoryOperatingExpense AccountCategory = "OPERATING_EXPENSE"
	CategoryOtherIncome      AccountCategory = "OTHER_INCOME"
	CategoryOtherExpense     AccountCategory = "OTHER_EXPENSE"
)

// Valid reports whether c is one of the known categories.
func (c AccountCategory) Valid() bool {
	switch c {
	case CategoryAsset, CategoryLiability, CategoryEquity, CategoryRevenue,
		CategoryCogs, CategoryOperatingExpense, CategoryOtherIncome, CategoryOtherExpense:
		return true
	}
	return false
}

// NormalBalance returns the side that increases accounts of this category.
func (c AccountCategory) NormalBalance() NormalBalance {
	switch c {
	case CategoryLiability, CategoryEquity, CategoryRevenue, CategoryOtherIncome:
		return NormalCredit
	default:
		return NormalDebit
	}
}

// IsBalanceSheet reports whether the category is reported on the balance sheet.
func (c AccountCategory) IsBalanceSheet() bool {
	return c == CategoryAsset || c == CategoryLiability || c == CategoryEquity
}

// IsProfitAndLoss reports whether the category is reported on the profit and loss statement.
func (c AccountCategory) IsProfitAndLoss() bool {
	return c.Valid() && !c.IsBalanceSheet()
}

// NormalBalance is a debit or credit side. It doubles as the balance_type of a ledger entry.
type NormalBalance string

const (
	NormalDebit  NormalBalance = "Debit"
	NormalCredit NormalBalance = "Credit"
)

// Opposite returns the other side.
func (n NormalBalance) Opposite() NormalBalance {
	if n == NormalDebit {
		return NormalCredit
	}
	return NormalDebit
}

// CashFlowActivity is the cash flow statement section an account's movements are reported under.
type CashFlowActivity string

const (
	ActivityOperating CashFlowActivity = "OPERATING"
	ActivityInvesting CashFlowActivity = "INVESTING"
	ActivityFinancing CashFlowActivity = "FINANCING"
)

// Valid reports whether a is a known activity.
func (a CashFlowActivity) Valid() bool {
	return a == ActivityOperating || a == ActivityInvesting || a == ActivityFinancing
}

// Account subcategories understood by the statement derivers.
const (
	SubcategoryCash             = "cash"
	SubcategoryBank             = "bank"
	SubcategoryCurrent          = "current"
	SubcategoryFixed            = "fixed"
	SubcategoryLongTerm         = "long_term"
	SubcategoryRetainedEarnings = "retained_earnings"
)

// AccountDescriptor is immutable chart-of-accounts reference data.
type AccountDescriptor struct {
	Code             string           `json:"code" yaml:"code"`
	Name             string           `json:"name" yaml:"name"`
	Category         AccountCategory  `json:"category" yaml:"category"`
	Subcategory      string           `json:"subcategory,omitempty" yaml:"subcategory,omitempty"`
	CashFlowActivity CashFlowActivity `json:"cashFlowActivity,omitempty" yaml:"cash_flow,omitempty"`
}

// NormalBalance is derived from the category only.
func (a AccountDescriptor) NormalBalance() NormalBalance {
	return a.Category.NormalBalance()
}

// IsCash reports whether the account holds cash or a cash equivalent.
func (a AccountDescriptor) IsCash() bool {
	return a.Category == CategoryAsset && (a.Subcategory == SubcategoryCash || a.Subcategory == SubcategoryBank)
}

// Activity returns the cash flow section for movements against this account.
// An explicit mapping wins; otherwise fixed assets are investing, long-term
// liabilities and equity are financing, and everything else is operating.
func (a AccountDescriptor) Activity() CashFlowActivity {
	if a.CashFlowActivity.Valid() {
		return a.CashFlowActivity
	}
	switch {
	case a.Category == CategoryAsset && a.Subcategory == SubcategoryFixed:
		return ActivityInvesting
	case a.Category == CategoryLiability && a.Subcategory == SubcategoryLongTerm:
		return ActivityFinancing
	case a.Category == CategoryEquity:
		return ActivityFinancing
	default:
		return ActivityOperating
	}
}

// SignedAmount converts a debit/credit pair into a change of the account's
// balance measured on its normal side.
func (a AccountDescriptor) SignedAmount(debit, credit decimal.Decimal) decimal.Decimal {
	if a.NormalBalance() == NormalDebit {
		return debit.Sub(credit)
	}
	return credit.Sub(debit)
}
