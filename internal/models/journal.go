package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is a row of journal_entries.
type JournalEntry struct {
	EntryID           string    `db:"entry_id"`
	EntryNumber       string    `db:"entry_number"`
	EntryDate         time.Time `db:"entry_date"` // DATE column
	Description       string    `db:"description"`
	TransactionType   string    `db:"transaction_type"`
	TransactionID     string    `db:"transaction_id"` // '' when the entry has no source transaction
	Status            string    `db:"status"`
	ReversalOfEntryID *string   `db:"reversal_of_entry_id"`
	ReversedByEntryID *string   `db:"reversed_by_entry_id"`
	AuditFields
}

// JournalEntryLine is a row of journal_entry_lines. Exactly one of Debit and Credit is nonzero.
type JournalEntryLine struct {
	LineID        string          `db:"line_id"`
	EntryID       string          `db:"entry_id"`
	LineOrder     int             `db:"line_order"`
	AccountCode   string          `db:"account_code"`
	Debit         decimal.Decimal `db:"debit"`
	Credit        decimal.Decimal `db:"credit"`
	Description   string          `db:"description"`
	ReferenceID   string          `db:"reference_id"`
	ReferenceType string          `db:"reference_type"`
}

// AccountTotals is one row of an aggregate over journal_entry_lines.
type AccountTotals struct {
	AccountCode string          `db:"account_code"`
	Debit       decimal.Decimal `db:"total_debit"`
	Credit      decimal.Decimal `db:"total_credit"`
	LineCount   int             `db:"line_count"`
}
