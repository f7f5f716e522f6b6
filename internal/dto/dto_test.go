package dto

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/ledgerbook/internal/apperrors"
	"github.com/SscSPs/ledgerbook/internal/core/domain"
)

func TestParseRange(t *testing.T) {
	r, err := ParseRange("2024-01-01", "2024-01-31")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), r.Start)
	assert.Equal(t, time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC), r.End)

	_, err = ParseRange("2024-01-01", "2024-01-01")
	assert.NoError(t, err, "a single day is a valid range")

	_, err = ParseRange("2024-02-01", "2024-01-01")
	var ve *apperrors.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "to", ve.Field)

	_, err = ParseRange("01/01/2024", "2024-01-31")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCreateJournalEntryRequest_ToNewJournalEntry(t *testing.T) {
	req := CreateJournalEntryRequest{
		EntryDate:       "2024-03-15",
		Description:     "Capital injection",
		TransactionType: domain.TxManual,
		Lines: []JournalLineRequest{
			{AccountCode: "1010", Debit: decimal.NewFromInt(50_000_000)},
			{AccountCode: "3000", Credit: decimal.NewFromInt(50_000_000), ReferenceID: "CAP-1"},
		},
	}

	entry, err := req.ToNewJournalEntry("user-1")
	require.NoError(t, err)
	assert.Equal(t, domain.Posted, entry.Status)
	assert.Equal(t, "user-1", entry.CreatedBy)
	assert.Equal(t, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), entry.EntryDate)
	require.Len(t, entry.Lines, 2)
	assert.True(t, entry.Lines[0].Credit.IsZero())
	assert.Equal(t, "CAP-1", entry.Lines[1].ReferenceID)

	req.Draft = true
	entry, err = req.ToNewJournalEntry("user-1")
	require.NoError(t, err)
	assert.Equal(t, domain.Draft, entry.Status)
}

func TestCreateBudgetRequest_ToDomain(t *testing.T) {
	req := CreateBudgetRequest{
		Name:        "Q1 opex",
		PeriodStart: "2024-01-01",
		PeriodEnd:   "2024-03-31",
		Lines:       []BudgetLineRequest{{ExpenseCategory: "6100", BudgetedAmount: decimal.NewFromInt(3000)}},
	}
	b, err := req.ToDomain()
	require.NoError(t, err)
	assert.Equal(t, "Q1 opex", b.Name)
	assert.Equal(t, time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC), b.PeriodEnd)
	require.Len(t, b.Lines, 1)
	assert.True(t, b.Lines[0].BudgetedAmount.Equal(decimal.NewFromInt(3000)))

	req.PeriodEnd = "2023-12-31"
	_, err = req.ToDomain()
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
