package services

import (
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/ledgerbook/internal/apperrors"
	"github.com/SscSPs/ledgerbook/internal/core/domain"
	portssvc "github.com/SscSPs/ledgerbook/internal/core/ports/services"
)

// Default accounts used by the builders when a field is left empty.
const (
	DefaultCashAccount       = "1000"
	DefaultBankAccount       = "1010"
	DefaultReceivableAccount = "1100"
	DefaultInventoryAccount  = "1200"
	DefaultPayableAccount    = "2000"
	DefaultEmployeePayable   = "2100"
	DefaultTaxPayableAccount = "2200"
	DefaultSalesAccount      = "4000"
	DefaultCogsAccount       = "5000"
)

var builderValidate = validator.New()

// EntryBuilder turns one typed business transaction into journal lines.
type EntryBuilder interface {
	TransactionType() domain.TransactionType
	SourceID() string
	Lines() ([]domain.JournalEntryLine, error)
}

// BuildEntry assembles a creation request from a builder.
func BuildEntry(b EntryBuilder, entryDate time.Time, description string, createdBy string) (domain.NewJournalEntry, error) {
	if err := builderValidate.Struct(b); err != nil {
		return domain.NewJournalEntry{}, apperrors.NewValidationError(string(b.TransactionType()), err.Error()).WithCause(err)
	}
	lines, err := b.Lines()
	if err != nil {
		return domain.NewJournalEntry{}, err
	}
	return domain.NewJournalEntry{
		EntryDate:       entryDate,
		Description:     description,
		TransactionType: b.TransactionType(),
		TransactionID:   b.SourceID(),
		Lines:           lines,
		CreatedBy:       createdBy,
	}, nil
}

func orDefault(code, fallback string) string {
	if code == "" {
		return fallback
	}
	return code
}

func requirePositive(field string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return apperrors.NewValidationError(field, "amount must be positive").WithAmount(amount)
	}
	return nil
}

func debit(account string, amount decimal.Decimal, description string) domain.JournalEntryLine {
	return domain.JournalEntryLine{AccountCode: account, Debit: amount, Credit: decimal.Zero, Description: description}
}

func credit(account string, amount decimal.Decimal, description string) domain.JournalEntryLine {
	return domain.JournalEntryLine{AccountCode: account, Debit: decimal.Zero, Credit: amount, Description: description}
}

func withReference(l domain.JournalEntryLine, referenceID string, kind domain.DrillDownKind) domain.JournalEntryLine {
	l.ReferenceID = referenceID
	l.ReferenceType = string(kind)
	return l
}

// InvoiceLines recognizes revenue on credit: receivable against sales, plus optional output tax.
type InvoiceLines struct {
	InvoiceID         string `validate:"required"`
	ReceivableAccount string
	RevenueAccount    string
	TaxAccount        string
	Amount            decimal.Decimal
	TaxAmount         decimal.Decimal
}

func (b InvoiceLines) TransactionType() domain.TransactionType { return domain.TxInvoice }
func (b InvoiceLines) SourceID() string                        { return b.InvoiceID }

func (b InvoiceLines) Lines() ([]domain.JournalEntryLine, error) {
	if err := requirePositive("amount", b.Amount); err != nil {
		return nil, err
	}
	if b.TaxAmount.IsNegative() {
		return nil, apperrors.NewValidationError("tax_amount", "amount must not be negative").WithAmount(b.TaxAmount)
	}
	total := b.Amount.Add(b.TaxAmount)
	lines := []domain.JournalEntryLine{
		withReference(debit(orDefault(b.ReceivableAccount, DefaultReceivableAccount), total, "Invoice "+b.InvoiceID), b.InvoiceID, domain.KindInvoice),
		credit(orDefault(b.RevenueAccount, DefaultSalesAccount), b.Amount, "Invoice "+b.InvoiceID),
	}
	if b.TaxAmount.IsPositive() {
		lines = append(lines, credit(orDefault(b.TaxAccount, DefaultTaxPayableAccount), b.TaxAmount, "Output tax"))
	}
	return lines, nil
}

// PaymentLines settles a receivable (incoming) or a payable bill (outgoing) through cash.
type PaymentLines struct {
	PaymentID      string `validate:"required"`
	CashAccount    string
	CounterAccount string
	// SettlesID is the invoice or bill being settled, if known.
	SettlesID string
	Outgoing  bool
	Amount    decimal.Decimal
}

func (b PaymentLines) TransactionType() domain.TransactionType { return domain.TxPayment }
func (b PaymentLines) SourceID() string                        { return b.PaymentID }

func (b PaymentLines) Lines() ([]domain.JournalEntryLine, error) {
	if err := requirePositive("amount", b.Amount); err != nil {
		return nil, err
	}
	cash := orDefault(b.CashAccount, DefaultBankAccount)
	if b.Outgoing {
		counter := orDefault(b.CounterAccount, DefaultPayableAccount)
		return []domain.JournalEntryLine{
			withReference(debit(counter, b.Amount, "Bill payment "+b.PaymentID), b.SettlesID, domain.KindBillPayment),
			withReference(credit(cash, b.Amount, "Bill payment "+b.PaymentID), b.PaymentID, domain.KindBillPayment),
		}, nil
	}
	counter := orDefault(b.CounterAccount, DefaultReceivableAccount)
	return []domain.JournalEntryLine{
		withReference(debit(cash, b.Amount, "Payment "+b.PaymentID), b.PaymentID, domain.KindPayment),
		withReference(credit(counter, b.Amount, "Payment "+b.PaymentID), b.SettlesID, domain.KindPayment),
	}, nil
}

// SalesReceiptLines records a cash sale, optionally relieving inventory at cost.
type SalesReceiptLines struct {
	ReceiptID        string `validate:"required"`
	CashAccount      string
	RevenueAccount   string
	Amount           decimal.Decimal
	CostAmount       decimal.Decimal
	CogsAccount      string
	InventoryAccount string
}

func (b SalesReceiptLines) TransactionType() domain.TransactionType { return domain.TxSalesReceipt }
func (b SalesReceiptLines) SourceID() string                        { return b.ReceiptID }

func (b SalesReceiptLines) Lines() ([]domain.JournalEntryLine, error) {
	if err := requirePositive("amount", b.Amount); err != nil {
		return nil, err
	}
	if b.CostAmount.IsNegative() {
		return nil, apperrors.NewValidationError("cost_amount", "amount must not be negative").WithAmount(b.CostAmount)
	}
	lines := []domain.JournalEntryLine{
		withReference(debit(orDefault(b.CashAccount, DefaultCashAccount), b.Amount, "Sales receipt "+b.ReceiptID), b.ReceiptID, domain.KindSalesReceipt),
		credit(orDefault(b.RevenueAccount, DefaultSalesAccount), b.Amount, "Sales receipt "+b.ReceiptID),
	}
	if b.CostAmount.IsPositive() {
		lines = append(lines,
			debit(orDefault(b.CogsAccount, DefaultCogsAccount), b.CostAmount, "Cost of goods sold"),
			credit(orDefault(b.InventoryAccount, DefaultInventoryAccount), b.CostAmount, "Inventory relief"),
		)
	}
	return lines, nil
}

// ExpenseLines records a paid expense, or a vendor bill when OnCredit is set.
type ExpenseLines struct {
	ExpenseID      string `validate:"required"`
	ExpenseAccount string `validate:"required"`
	PaymentAccount string
	OnCredit       bool
	Amount         decimal.Decimal
}

func (b ExpenseLines) TransactionType() domain.TransactionType { return domain.TxExpense }
func (b ExpenseLines) SourceID() string                        { return b.ExpenseID }

func (b ExpenseLines) Lines() ([]domain.JournalEntryLine, error) {
	if err := requirePositive("amount", b.Amount); err != nil {
		return nil, err
	}
	if b.OnCredit {
		return []domain.JournalEntryLine{
			debit(b.ExpenseAccount, b.Amount, "Bill "+b.ExpenseID),
			withReference(credit(orDefault(b.PaymentAccount, DefaultPayableAccount), b.Amount, "Bill "+b.ExpenseID), b.ExpenseID, domain.KindBill),
		}, nil
	}
	return []domain.JournalEntryLine{
		debit(b.ExpenseAccount, b.Amount, "Expense "+b.ExpenseID),
		withReference(credit(orDefault(b.PaymentAccount, DefaultBankAccount), b.Amount, "Expense "+b.ExpenseID), b.ExpenseID, domain.KindExpense),
	}, nil
}

// ExpenseClaimItem is one reimbursable cost on an employee claim.
type ExpenseClaimItem struct {
	AccountCode string `validate:"required"`
	Amount      decimal.Decimal
	Description string
}

// ExpenseClaimLines books an approved employee claim against the reimbursement payable.
type ExpenseClaimLines struct {
	ClaimID        string             `validate:"required"`
	PayableAccount string
	Items          []ExpenseClaimItem `validate:"required,min=1,dive"`
}

func (b ExpenseClaimLines) TransactionType() domain.TransactionType { return domain.TxExpenseClaim }
func (b ExpenseClaimLines) SourceID() string                        { return b.ClaimID }

func (b ExpenseClaimLines) Lines() ([]domain.JournalEntryLine, error) {
	lines := make([]domain.JournalEntryLine, 0, len(b.Items)+1)
	total := decimal.Zero
	for i, item := range b.Items {
		if !item.Amount.IsPositive() {
			return nil, apperrors.NewLineValidationError(i, "amount", "amount must be positive").WithAmount(item.Amount)
		}
		total = total.Add(item.Amount)
		lines = append(lines, debit(item.AccountCode, item.Amount, item.Description))
	}
	lines = append(lines, withReference(credit(orDefault(b.PayableAccount, DefaultEmployeePayable), total, "Expense claim "+b.ClaimID), b.ClaimID, domain.KindExpenseClaim))
	return lines, nil
}

// RefundLines returns money to a customer, reducing revenue.
type RefundLines struct {
	RefundID       string `validate:"required"`
	RevenueAccount string
	CashAccount    string
	InvoiceID      string
	Amount         decimal.Decimal
}

func (b RefundLines) TransactionType() domain.TransactionType { return domain.TxRefund }
func (b RefundLines) SourceID() string                        { return b.RefundID }

func (b RefundLines) Lines() ([]domain.JournalEntryLine, error) {
	if err := requirePositive("amount", b.Amount); err != nil {
		return nil, err
	}
	return []domain.JournalEntryLine{
		withReference(debit(orDefault(b.RevenueAccount, DefaultSalesAccount), b.Amount, "Refund "+b.RefundID), b.InvoiceID, domain.KindCreditMemo),
		withReference(credit(orDefault(b.CashAccount, DefaultBankAccount), b.Amount, "Refund "+b.RefundID), b.RefundID, domain.KindCreditMemo),
	}, nil
}

// AdjustmentLines carries explicit lines, e.g. opening balances or period closing.
type AdjustmentLines struct {
	ReferenceID string
	Items       []domain.JournalEntryLine `validate:"required,min=1"`
}

func (b AdjustmentLines) TransactionType() domain.TransactionType { return domain.TxAdjustment }
func (b AdjustmentLines) SourceID() string                        { return b.ReferenceID }

func (b AdjustmentLines) Lines() ([]domain.JournalEntryLine, error) {
	return copyLines(b.Items), nil
}

// ManualLines carries explicit lines entered by an accountant.
type ManualLines struct {
	ReferenceID string
	Items       []domain.JournalEntryLine `validate:"required,min=1"`
}

func (b ManualLines) TransactionType() domain.TransactionType { return domain.TxManual }
func (b ManualLines) SourceID() string                        { return b.ReferenceID }

func (b ManualLines) Lines() ([]domain.JournalEntryLine, error) {
	return copyLines(b.Items), nil
}

func copyLines(in []domain.JournalEntryLine) []domain.JournalEntryLine {
	out := make([]domain.JournalEntryLine, len(in))
	copy(out, in)
	return out
}

// ClosingLines zeroes every profit and loss balance into retained earnings as of a date.
// balances maps account code to its normal-side balance.
func ClosingLines(chart portssvc.ChartOfAccounts, balances map[string]decimal.Decimal, retainedEarnings string) (AdjustmentLines, error) {
	var items []domain.JournalEntryLine
	net := decimal.Zero
	for code, bal := range balances {
		if bal.IsZero() {
			continue
		}
		acc, err := chart.Resolve(code)
		if err != nil {
			return AdjustmentLines{}, err
		}
		if !acc.Category.IsProfitAndLoss() {
			continue
		}
		// Move the balance off the account by posting its opposite side.
		if acc.NormalBalance() == domain.NormalCredit {
			net = net.Add(bal)
			if bal.IsPositive() {
				items = append(items, debit(code, bal, "Close "+acc.Name))
			} else {
				items = append(items, credit(code, bal.Neg(), "Close "+acc.Name))
			}
		} else {
			net = net.Sub(bal)
			if bal.IsPositive() {
				items = append(items, credit(code, bal, "Close "+acc.Name))
			} else {
				items = append(items, debit(code, bal.Neg(), "Close "+acc.Name))
			}
		}
	}
	if len(items) == 0 {
		return AdjustmentLines{}, apperrors.NewValidationError("balances", "nothing to close")
	}
	switch {
	case net.IsPositive():
		items = append(items, credit(retainedEarnings, net, "Net income to retained earnings"))
	case net.IsNegative():
		items = append(items, debit(retainedEarnings, net.Neg(), "Net loss to retained earnings"))
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].AccountCode < items[j].AccountCode })
	return AdjustmentLines{Items: items}, nil
}
