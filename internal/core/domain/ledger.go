package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerLine pairs a journal line with the header of the entry it belongs to.
type LedgerLine struct {
	Entry JournalEntry     `json:"entry"`
	Line  JournalEntryLine `json:"line"`
}

// Cursor returns the line's position in ledger order.
func (l LedgerLine) Cursor() LedgerCursor {
	return LedgerCursor{
		EntryDate:   l.Entry.EntryDate,
		EntryNumber: l.Entry.EntryNumber,
		LineOrder:   l.Line.LineOrder,
	}
}

// LedgerCursor is a position in the total ledger order (entry_date, entry_number, line_order).
type LedgerCursor struct {
	EntryDate   time.Time
	EntryNumber string
	LineOrder   int
}

// Less reports whether c sorts strictly before o.
func (c LedgerCursor) Less(o LedgerCursor) bool {
	cd, od := DateOnly(c.EntryDate), DateOnly(o.EntryDate)
	if !cd.Equal(od) {
		return cd.Before(od)
	}
	if c.EntryNumber != o.EntryNumber {
		return c.EntryNumber < o.EntryNumber
	}
	return c.LineOrder < o.LineOrder
}

// LedgerEntry is a derived view of a ledger line with its running balance.
// It is computed on read and never stored.
type LedgerEntry struct {
	LedgerLine
	RunningBalance decimal.Decimal `json:"runningBalance"`
	BalanceType    NormalBalance   `json:"balanceType"`
}

// LedgerFilter narrows ledger reads. Zero values mean "no restriction".
// Date bounds are inclusive calendar days.
type LedgerFilter struct {
	From             *time.Time
	To               *time.Time
	AccountCodes     []string
	TransactionTypes []TransactionType
	// After and Before are exclusive cursor bounds.
	After  *LedgerCursor
	Before *LedgerCursor
}

// Matches evaluates the filter against a single line. Stores that cannot push
// a predicate down to their backend use this to stay consistent with SQL stores.
func (f LedgerFilter) Matches(l LedgerLine) bool {
	if !l.Entry.Status.AffectsLedger() {
		return false
	}
	d := DateOnly(l.Entry.EntryDate)
	if f.From != nil && d.Before(DateOnly(*f.From)) {
		return false
	}
	if f.To != nil && d.After(DateOnly(*f.To)) {
		return false
	}
	if len(f.AccountCodes) > 0 && !containsString(f.AccountCodes, l.Line.AccountCode) {
		return false
	}
	if len(f.TransactionTypes) > 0 {
		found := false
		for _, t := range f.TransactionTypes {
			if t == l.Entry.TransactionType {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	c := l.Cursor()
	if f.After != nil && !f.After.Less(c) {
		return false
	}
	if f.Before != nil && !c.Less(*f.Before) {
		return false
	}
	return true
}

// Page selects a window of an ordered result. Limit <= 0 means unbounded.
type Page struct {
	Limit  int
	Offset int
}

// AccountTotals aggregates the debit and credit activity of one account.
type AccountTotals struct {
	AccountCode string          `json:"accountCode"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	LineCount   int             `json:"lineCount"`
}

// Add folds a line into the totals.
func (t AccountTotals) Add(l JournalEntryLine) AccountTotals {
	t.AccountCode = l.AccountCode
	t.Debit = t.Debit.Add(l.Debit)
	t.Credit = t.Credit.Add(l.Credit)
	t.LineCount++
	return t
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
