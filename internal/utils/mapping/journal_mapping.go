package mapping

import (
	"github.com/SscSPs/ledgerbook/internal/core/domain"
	"github.com/SscSPs/ledgerbook/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry header to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:           d.EntryID,
		EntryNumber:       d.EntryNumber,
		EntryDate:         domain.DateOnly(d.EntryDate),
		Description:       d.Description,
		TransactionType:   string(d.TransactionType),
		TransactionID:     d.TransactionID,
		Status:            string(d.Status),
		ReversalOfEntryID: d.ReversalOfEntryID,
		ReversedByEntryID: d.ReversedByEntryID,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry and its lines to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry, lines []models.JournalEntryLine) domain.JournalEntry {
	e := domain.JournalEntry{
		EntryID:           m.EntryID,
		EntryNumber:       m.EntryNumber,
		EntryDate:         domain.DateOnly(m.EntryDate),
		Description:       m.Description,
		TransactionType:   domain.TransactionType(m.TransactionType),
		TransactionID:     m.TransactionID,
		Status:            domain.JournalStatus(m.Status),
		ReversalOfEntryID: m.ReversalOfEntryID,
		ReversedByEntryID: m.ReversedByEntryID,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
	if len(lines) > 0 {
		e.Lines = ToDomainJournalEntryLineSlice(lines)
	}
	return e
}

// ToModelJournalEntryLine converts a domain JournalEntryLine to a model JournalEntryLine
func ToModelJournalEntryLine(d domain.JournalEntryLine) models.JournalEntryLine {
	return models.JournalEntryLine{
		LineID:        d.LineID,
		EntryID:       d.EntryID,
		LineOrder:     d.LineOrder,
		AccountCode:   d.AccountCode,
		Debit:         d.Debit,
		Credit:        d.Credit,
		Description:   d.Description,
		ReferenceID:   d.ReferenceID,
		ReferenceType: d.ReferenceType,
	}
}

// ToDomainJournalEntryLine converts a model JournalEntryLine to a domain JournalEntryLine
func ToDomainJournalEntryLine(m models.JournalEntryLine) domain.JournalEntryLine {
	return domain.JournalEntryLine{
		LineID:        m.LineID,
		EntryID:       m.EntryID,
		LineOrder:     m.LineOrder,
		AccountCode:   m.AccountCode,
		Debit:         m.Debit,
		Credit:        m.Credit,
		Description:   m.Description,
		ReferenceID:   m.ReferenceID,
		ReferenceType: m.ReferenceType,
	}
}

// ToDomainJournalEntryLineSlice converts a slice of model lines to a slice of domain lines
func ToDomainJournalEntryLineSlice(ms []models.JournalEntryLine) []domain.JournalEntryLine {
	ds := make([]domain.JournalEntryLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalEntryLine(m)
	}
	return ds
}

// ToDomainLedgerLine pairs a line with its entry header
func ToDomainLedgerLine(e models.JournalEntry, l models.JournalEntryLine) domain.LedgerLine {
	return domain.LedgerLine{
		Entry: ToDomainJournalEntry(e, nil),
		Line:  ToDomainJournalEntryLine(l),
	}
}

// ToDomainAccountTotals converts an aggregate row to domain AccountTotals
func ToDomainAccountTotals(m models.AccountTotals) domain.AccountTotals {
	return domain.AccountTotals{
		AccountCode: m.AccountCode,
		Debit:       m.Debit,
		Credit:      m.Credit,
		LineCount:   m.LineCount,
	}
}
