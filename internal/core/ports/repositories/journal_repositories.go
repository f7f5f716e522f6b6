package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledgerbook/internal/core/domain"
)

// JournalReader defines point lookups of journal entries.
type JournalReader interface {
	// FindEntryByID retrieves an entry with its lines. Returns apperrors.ErrNotFound when absent.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindActiveEntryByTransaction returns the entry currently occupying the
	// (transaction_type, transaction_id) slot: not reversed and not itself a reversal.
	// Returns apperrors.ErrNotFound when the slot is free.
	FindActiveEntryByTransaction(ctx context.Context, txType domain.TransactionType, transactionID string) (*domain.JournalEntry, error)

	// ListEntriesByTransaction returns every entry recorded for a source transaction,
	// reversals included, ordered by entry number.
	ListEntriesByTransaction(ctx context.Context, txType domain.TransactionType, transactionID string) ([]domain.JournalEntry, error)
}

// JournalWriter defines the append/reverse-only write operations.
type JournalWriter interface {
	// NextEntrySequence returns a store-wide, strictly increasing sequence number.
	NextEntrySequence(ctx context.Context) (int64, error)

	// SaveEntry persists an entry and all of its lines atomically. A second active entry
	// for the same (transaction_type, transaction_id) fails with apperrors.ErrConflict.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) error

	// SaveReversal persists the reversal and moves the original from POSTED to REVERSED
	// in one atomic step. Fails with apperrors.ErrConflict when the original is no longer POSTED.
	SaveReversal(ctx context.Context, reversal domain.JournalEntry, originalID string) error

	// UpdateEntryStatus performs a conditional status change from -> to.
	// Fails with apperrors.ErrConflict when the stored status is not from.
	UpdateEntryStatus(ctx context.Context, entryID string, from, to domain.JournalStatus, updatedBy string, updatedAt time.Time) error
}

// LedgerReader defines range reads over ledger lines. Only POSTED and REVERSED
// entries are visible. Results are ordered by (entry_date, entry_number, line_order).
type LedgerReader interface {
	// QueryLines returns a window of matching lines.
	QueryLines(ctx context.Context, filter domain.LedgerFilter, page domain.Page) ([]domain.LedgerLine, error)

	// CountLines counts matching lines without loading them.
	CountLines(ctx context.Context, filter domain.LedgerFilter) (int, error)

	// CountEntries counts distinct entries with at least one matching line.
	CountEntries(ctx context.Context, filter domain.LedgerFilter) (int, error)

	// ScanLines streams matching lines to fn in ledger order. Returning an error from fn stops the scan.
	ScanLines(ctx context.Context, filter domain.LedgerFilter, fn func(domain.LedgerLine) error) error

	// SumByAccount aggregates matching lines per account code.
	SumByAccount(ctx context.Context, filter domain.LedgerFilter) (map[string]domain.AccountTotals, error)
}

// JournalRepositoryFacade combines all journal and ledger repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
	LedgerReader
}
