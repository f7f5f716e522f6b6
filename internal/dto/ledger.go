package dto

import (
	"github.com/shopspring/decimal"

	"github.com/SscSPs/ledgerbook/internal/core/domain"
)

// AccountResponse describes one chart-of-accounts entry.
type AccountResponse struct {
	Code             string                  `json:"code"`
	Name             string                  `json:"name"`
	Category         domain.AccountCategory  `json:"category"`
	Subcategory      string                  `json:"subcategory,omitempty"`
	NormalBalance    domain.NormalBalance    `json:"normalBalance"`
	CashFlowActivity domain.CashFlowActivity `json:"cashFlowActivity"`
	IsCash           bool                    `json:"isCash"`
}

// ToAccountResponse converts an account descriptor to AccountResponse DTO.
func ToAccountResponse(a domain.AccountDescriptor) AccountResponse {
	return AccountResponse{
		Code:             a.Code,
		Name:             a.Name,
		Category:         a.Category,
		Subcategory:      a.Subcategory,
		NormalBalance:    a.NormalBalance(),
		CashFlowActivity: a.Activity(),
		IsCash:           a.IsCash(),
	}
}

// ToAccountResponses converts the whole chart.
func ToAccountResponses(accounts []domain.AccountDescriptor) []AccountResponse {
	out := make([]AccountResponse, len(accounts))
	for i, a := range accounts {
		out[i] = ToAccountResponse(a)
	}
	return out
}

// AccountBalanceResponse is an account's normal-side balance at a date.
type AccountBalanceResponse struct {
	AccountCode   string               `json:"accountCode"`
	AsOf          string               `json:"asOf"`
	Balance       decimal.Decimal      `json:"balance"`
	NormalBalance domain.NormalBalance `json:"normalBalance"`
}

// AsOfQuery selects a point in time. An empty asOf means today.
type AsOfQuery struct {
	AsOf string `form:"asOf" binding:"omitempty,datetime=2006-01-02"`
}

// LedgerQuery selects ledger lines in an inclusive range.
type LedgerQuery struct {
	From        string `form:"from" binding:"required,datetime=2006-01-02"`
	To          string `form:"to" binding:"required,datetime=2006-01-02"`
	AccountCode string `form:"accountCode"`
}

// LedgerLineResponse is one ledger line with the header fields of its entry.
type LedgerLineResponse struct {
	EntryID         string          `json:"entryID"`
	EntryNumber     string          `json:"entryNumber"`
	EntryDate       string          `json:"entryDate"`
	TransactionType string          `json:"transactionType"`
	TransactionID   string          `json:"transactionID,omitempty"`
	Status          string          `json:"status"`
	LineOrder       int             `json:"lineOrder"`
	AccountCode     string          `json:"accountCode"`
	Debit           decimal.Decimal `json:"debit"`
	Credit          decimal.Decimal `json:"credit"`
	Description     string          `json:"description,omitempty"`
}

// ToLedgerLineResponses converts ledger lines to LedgerLineResponse DTOs.
func ToLedgerLineResponses(lines []domain.LedgerLine) []LedgerLineResponse {
	out := make([]LedgerLineResponse, len(lines))
	for i, l := range lines {
		desc := l.Line.Description
		if desc == "" {
			desc = l.Entry.Description
		}
		out[i] = LedgerLineResponse{
			EntryID:         l.Entry.EntryID,
			EntryNumber:     l.Entry.EntryNumber,
			EntryDate:       FormatDate(l.Entry.EntryDate),
			TransactionType: string(l.Entry.TransactionType),
			TransactionID:   l.Entry.TransactionID,
			Status:          string(l.Entry.Status),
			LineOrder:       l.Line.LineOrder,
			AccountCode:     l.Line.AccountCode,
			Debit:           l.Line.Debit,
			Credit:          l.Line.Credit,
			Description:     desc,
		}
	}
	return out
}
