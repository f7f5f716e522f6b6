package services

import (
	"context"

	"github.com/SscSPs/ledgerbook/internal/core/domain"
)

// JournalReaderSvc defines read operations for journal entries
type JournalReaderSvc interface {
	// GetEntry retrieves an entry with its lines.
	GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntriesByTransaction lists the entries recorded for one source transaction, reversals included.
	ListEntriesByTransaction(ctx context.Context, txType domain.TransactionType, transactionID string) ([]domain.JournalEntry, error)
}

// JournalWriterSvc defines write operations for journal entries
type JournalWriterSvc interface {
	// CreateEntry validates and persists a balanced entry. Nothing is written when validation fails.
	CreateEntry(ctx context.Context, req domain.NewJournalEntry) (*domain.JournalEntry, error)

	// PostEntry moves a DRAFT entry to POSTED. Posting a POSTED entry is a no-op.
	PostEntry(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error)

	// ReverseEntry offsets a POSTED entry and marks it REVERSED. It returns the reversal.
	ReverseEntry(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
