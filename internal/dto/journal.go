package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/ledgerbook/internal/core/domain"
)

// JournalLineRequest is one line of a manually entered entry. Exactly one of
// Debit and Credit must be nonzero; amounts may be sent as strings or numbers.
type JournalLineRequest struct {
	AccountCode   string          `json:"accountCode" binding:"required"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Description   string          `json:"description"`
	ReferenceID   string          `json:"referenceID"`
	ReferenceType string          `json:"referenceType"`
}

// CreateJournalEntryRequest defines the data needed to record a journal entry.
type CreateJournalEntryRequest struct {
	EntryDate       string                 `json:"entryDate" binding:"required,datetime=2006-01-02"`
	Description     string                 `json:"description"`
	TransactionType domain.TransactionType `json:"transactionType" binding:"required,oneof=INVOICE PAYMENT SALES_RECEIPT EXPENSE EXPENSE_CLAIM REFUND ADJUSTMENT MANUAL"`
	TransactionID   string                 `json:"transactionID"`
	Draft           bool                   `json:"draft"`
	Lines           []JournalLineRequest   `json:"lines" binding:"required,min=1,dive"`
}

// ToNewJournalEntry converts the request into a creation request for the journal service.
func (r CreateJournalEntryRequest) ToNewJournalEntry(userID string) (domain.NewJournalEntry, error) {
	date, err := ParseDate(r.EntryDate)
	if err != nil {
		return domain.NewJournalEntry{}, err
	}
	lines := make([]domain.JournalEntryLine, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = domain.JournalEntryLine{
			AccountCode:   l.AccountCode,
			Debit:         l.Debit,
			Credit:        l.Credit,
			Description:   l.Description,
			ReferenceID:   l.ReferenceID,
			ReferenceType: l.ReferenceType,
		}
	}
	status := domain.Posted
	if r.Draft {
		status = domain.Draft
	}
	return domain.NewJournalEntry{
		EntryDate:       date,
		Description:     r.Description,
		TransactionType: r.TransactionType,
		TransactionID:   r.TransactionID,
		Status:          status,
		Lines:           lines,
		CreatedBy:       userID,
	}, nil
}

// ListEntriesQuery selects the entries recorded for one source transaction.
type ListEntriesQuery struct {
	TransactionType string `form:"transaction_type" binding:"required"`
	TransactionID   string `form:"transaction_id" binding:"required"`
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineID        string          `json:"lineID"`
	LineOrder     int             `json:"lineOrder"`
	AccountCode   string          `json:"accountCode"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Description   string          `json:"description,omitempty"`
	ReferenceID   string          `json:"referenceID,omitempty"`
	ReferenceType string          `json:"referenceType,omitempty"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID           string                `json:"entryID"`
	EntryNumber       string                `json:"entryNumber"`
	EntryDate         string                `json:"entryDate"`
	Description       string                `json:"description"`
	TransactionType   string                `json:"transactionType"`
	TransactionID     string                `json:"transactionID,omitempty"`
	Status            string                `json:"status"`
	ReversalOfEntryID *string               `json:"reversalOfEntryID,omitempty"`
	ReversedByEntryID *string               `json:"reversedByEntryID,omitempty"`
	TotalDebit        decimal.Decimal       `json:"totalDebit"`
	TotalCredit       decimal.Decimal       `json:"totalCredit"`
	Lines             []JournalLineResponse `json:"lines"`
	CreatedAt         time.Time             `json:"createdAt"`
	CreatedBy         string                `json:"createdBy"`
	LastUpdatedAt     time.Time             `json:"lastUpdatedAt"`
	LastUpdatedBy     string                `json:"lastUpdatedBy"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to JournalEntryResponse DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	debit, credit := e.Totals()
	lines := make([]JournalLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = JournalLineResponse{
			LineID:        l.LineID,
			LineOrder:     l.LineOrder,
			AccountCode:   l.AccountCode,
			Debit:         l.Debit,
			Credit:        l.Credit,
			Description:   l.Description,
			ReferenceID:   l.ReferenceID,
			ReferenceType: l.ReferenceType,
		}
	}
	return JournalEntryResponse{
		EntryID:           e.EntryID,
		EntryNumber:       e.EntryNumber,
		EntryDate:         FormatDate(e.EntryDate),
		Description:       e.Description,
		TransactionType:   string(e.TransactionType),
		TransactionID:     e.TransactionID,
		Status:            string(e.Status),
		ReversalOfEntryID: e.ReversalOfEntryID,
		ReversedByEntryID: e.ReversedByEntryID,
		TotalDebit:        debit,
		TotalCredit:       credit,
		Lines:             lines,
		CreatedAt:         e.CreatedAt,
		CreatedBy:         e.CreatedBy,
		LastUpdatedAt:     e.LastUpdatedAt,
		LastUpdatedBy:     e.LastUpdatedBy,
	}
}

// ToJournalEntryResponses converts a slice of entries.
func ToJournalEntryResponses(entries []domain.JournalEntry) []JournalEntryResponse {
	out := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		out[i] = ToJournalEntryResponse(&entries[i])
	}
	return out
}
