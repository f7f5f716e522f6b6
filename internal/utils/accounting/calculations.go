package accounting

import (
	"github.com/SscSPs/ledgerbook/internal/apperrors"
	"github.com/SscSPs/ledgerbook/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MaxScale is the largest currency scale the amount columns store without rounding.
const MaxScale = 8

var hundred = decimal.NewFromInt(100)

// Policy is the single rounding and tolerance policy shared by posting
// validation and every statement deriver.
type Policy struct {
	// Scale is the number of fractional digits of the currency's minor unit.
	Scale int32
	// Tolerance is the largest accepted difference between two totals.
	Tolerance decimal.Decimal
}

// NewPolicy creates a Policy. A negative tolerance is treated as zero.
func NewPolicy(scale int32, tolerance decimal.Decimal) Policy {
	if tolerance.IsNegative() {
		tolerance = decimal.Zero
	}
	return Policy{Scale: scale, Tolerance: tolerance}
}

// DefaultPolicy uses whole minor units of a zero-decimal currency and exact comparison.
func DefaultPolicy() Policy {
	return NewPolicy(0, decimal.Zero)
}

// FitsScale reports whether d is expressible in whole minor units.
func (p Policy) FitsScale(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(p.Scale))
}

// Balanced reports whether a and b agree within the tolerance.
func (p Policy) Balanced(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(p.Tolerance)
}

// Percent returns part/whole*100 rounded to two places, or zero when whole is zero.
func (p Policy) Percent(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred).Round(2)
}

// ValidateEntryBalance checks that the lines' debit and credit totals agree.
func (p Policy) ValidateEntryBalance(lines []domain.JournalEntryLine) error {
	debit, credit := domain.SumLines(lines)
	if !p.Balanced(debit, credit) {
		return &apperrors.UnbalancedEntryError{TotalDebit: debit, TotalCredit: credit}
	}
	return nil
}

// BalanceType reports which side a balance sits on for an account with the given normal side.
func BalanceType(balance decimal.Decimal, normal domain.NormalBalance) domain.NormalBalance {
	if balance.IsNegative() {
		return normal.Opposite()
	}
	return normal
}

// ComputeRunningBalance walks lines of a single account in ledger order and
// attaches the balance after each one, starting from opening.
func ComputeRunningBalance(lines []domain.LedgerLine, account domain.AccountDescriptor, opening decimal.Decimal) []domain.LedgerEntry {
	entries := make([]domain.LedgerEntry, 0, len(lines))
	balance := opening
	normal := account.NormalBalance()
	for _, l := range lines {
		balance = balance.Add(account.SignedAmount(l.Line.Debit, l.Line.Credit))
		entries = append(entries, domain.LedgerEntry{
			LedgerLine:     l,
			RunningBalance: balance,
			BalanceType:    BalanceType(balance, normal),
		})
	}
	return entries
}

// SignedTotal converts aggregate activity into a normal-side balance.
func SignedTotal(t domain.AccountTotals, account domain.AccountDescriptor) decimal.Decimal {
	return account.SignedAmount(t.Debit, t.Credit)
}
