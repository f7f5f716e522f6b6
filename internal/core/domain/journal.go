package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Draft    JournalStatus = "DRAFT"
	Posted   JournalStatus = "POSTED"
	Reversed JournalStatus = "REVERSED"
)

// statusTransitions is the complete transition table. REVERSED is terminal.
var statusTransitions = map[JournalStatus][]JournalStatus{
	Draft:  {Posted},
	Posted: {Reversed},
}

// Valid reports whether s is a known status.
func (s JournalStatus) Valid() bool {
	return s == Draft || s == Posted || s == Reversed
}

// AffectsLedger reports whether entries in this status are visible to balances and reports.
// A reversed entry stays in the ledger next to its reversal so the pair nets to zero.
func (s JournalStatus) AffectsLedger() bool {
	return s == Posted || s == Reversed
}

// CanTransition reports whether from -> to is a legal status change.
func CanTransition(from, to JournalStatus) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// TransactionType names the kind of business operation that produced an entry.
type TransactionType string

const (
	TxInvoice      TransactionType = "INVOICE"
	TxPayment      TransactionType = "PAYMENT"
	TxSalesReceipt TransactionType = "SALES_RECEIPT"
	TxExpense      TransactionType = "EXPENSE"
	TxExpenseClaim TransactionType = "EXPENSE_CLAIM"
	TxRefund       TransactionType = "REFUND"
	TxAdjustment   TransactionType = "ADJUSTMENT"
	TxManual       TransactionType = "MANUAL"
)

// Valid reports whether t is a member of the closed set of transaction types.
func (t TransactionType) Valid() bool {
	switch t {
	case TxInvoice, TxPayment, TxSalesReceipt, TxExpense, TxExpenseClaim, TxRefund, TxAdjustment, TxManual:
		return true
	}
	return false
}

// RequiresTransactionID reports whether entries of this type must name their source transaction.
func (t TransactionType) RequiresTransactionID() bool {
	return t != TxAdjustment && t != TxManual
}

// JournalEntryLine is one debit or credit against a single account.
// Exactly one of Debit and Credit is nonzero.
type JournalEntryLine struct {
	LineID        string          `json:"lineID"`
	EntryID       string          `json:"entryID"`
	LineOrder     int             `json:"lineOrder"`
	AccountCode   string          `json:"accountCode"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Description   string          `json:"description,omitempty"`
	ReferenceID   string          `json:"referenceID,omitempty"`
	ReferenceType string          `json:"referenceType,omitempty"`
}

// IsDebit reports whether the line posts to the debit side.
func (l JournalEntryLine) IsDebit() bool {
	return !l.Debit.IsZero()
}

// Amount is the nonzero side of the line.
func (l JournalEntryLine) Amount() decimal.Decimal {
	if l.IsDebit() {
		return l.Debit
	}
	return l.Credit
}

// Swapped returns a copy with the debit and credit sides exchanged.
func (l JournalEntryLine) Swapped() JournalEntryLine {
	l.Debit, l.Credit = l.Credit, l.Debit
	return l
}

// JournalEntry is a balanced set of lines recorded for one business transaction.
type JournalEntry struct {
	EntryID           string             `json:"entryID"`
	EntryNumber       string             `json:"entryNumber"`
	EntryDate         time.Time          `json:"entryDate"`
	Description       string             `json:"description"`
	TransactionType   TransactionType    `json:"transactionType"`
	TransactionID     string             `json:"transactionID,omitempty"`
	Status            JournalStatus      `json:"status"`
	ReversalOfEntryID *string            `json:"reversalOfEntryID,omitempty"`
	ReversedByEntryID *string            `json:"reversedByEntryID,omitempty"`
	Lines             []JournalEntryLine `json:"lines,omitempty"`
	AuditFields
}

// IsReversal reports whether this entry offsets another entry.
func (e JournalEntry) IsReversal() bool {
	return e.ReversalOfEntryID != nil
}

// Totals returns the debit and credit sums across all lines.
func (e JournalEntry) Totals() (debit, credit decimal.Decimal) {
	return SumLines(e.Lines)
}

// Header returns a copy of the entry without its lines.
func (e JournalEntry) Header() JournalEntry {
	e.Lines = nil
	return e
}

// SumLines totals the debit and credit sides of lines.
func SumLines(lines []JournalEntryLine) (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, l := range lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}
	return debit, credit
}

// NewJournalEntry is the input to entry creation.
type NewJournalEntry struct {
	EntryDate       time.Time
	Description     string
	TransactionType TransactionType
	TransactionID   string
	// Status may be Draft for entries that need review; empty means Posted.
	Status    JournalStatus
	Lines     []JournalEntryLine
	CreatedBy string
}
