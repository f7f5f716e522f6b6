package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/ledgerbook/internal/apperrors"
	"github.com/SscSPs/ledgerbook/internal/core/domain"
)

func day(d int) time.Time {
	return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC)
}

func entry(id, number string, date time.Time, status domain.JournalStatus, txID string, lines ...domain.JournalEntryLine) domain.JournalEntry {
	for i := range lines {
		lines[i].EntryID = id
		lines[i].LineOrder = i + 1
		lines[i].LineID = id + "-" + string(rune('a'+i))
	}
	return domain.JournalEntry{
		EntryID:         id,
		EntryNumber:     number,
		EntryDate:       date,
		TransactionType: domain.TxInvoice,
		TransactionID:   txID,
		Status:          status,
		Lines:           lines,
	}
}

func dr(code string, amount int64) domain.JournalEntryLine {
	return domain.JournalEntryLine{AccountCode: code, Debit: decimal.NewFromInt(amount), Credit: decimal.Zero}
}

func cr(code string, amount int64) domain.JournalEntryLine {
	return domain.JournalEntryLine{AccountCode: code, Debit: decimal.Zero, Credit: decimal.NewFromInt(amount)}
}

func TestJournalStore_LedgerOrderIsIndependentOfInsertOrder(t *testing.T) {
	ctx := context.Background()
	s := NewJournalStore()

	require.NoError(t, s.SaveEntry(ctx, entry("e3", "JE-3", day(5), domain.Posted, "inv-3", dr("1100", 30), cr("4000", 30))))
	require.NoError(t, s.SaveEntry(ctx, entry("e1", "JE-1", day(2), domain.Posted, "inv-1", dr("1100", 10), cr("4000", 10))))
	require.NoError(t, s.SaveEntry(ctx, entry("e2", "JE-2", day(2), domain.Posted, "inv-2", dr("1100", 20), cr("4000", 20))))

	lines, err := s.QueryLines(ctx, domain.LedgerFilter{}, domain.Page{})
	require.NoError(t, err)
	require.Len(t, lines, 6)

	var got []string
	for _, l := range lines {
		got = append(got, l.Entry.EntryNumber)
	}
	assert.Equal(t, []string{"JE-1", "JE-1", "JE-2", "JE-2", "JE-3", "JE-3"}, got)
	assert.Equal(t, 1, lines[0].Line.LineOrder)
	assert.Equal(t, 2, lines[1].Line.LineOrder)
}

func TestJournalStore_DraftsAreInvisibleToLedgerReads(t *testing.T) {
	ctx := context.Background()
	s := NewJournalStore()
	require.NoError(t, s.SaveEntry(ctx, entry("e1", "JE-1", day(2), domain.Draft, "inv-1", dr("1100", 10), cr("4000", 10))))

	n, err := s.CountLines(ctx, domain.LedgerFilter{})
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, s.UpdateEntryStatus(ctx, "e1", domain.Draft, domain.Posted, "u", day(3)))
	n, err = s.CountLines(ctx, domain.LedgerFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	err = s.UpdateEntryStatus(ctx, "e1", domain.Draft, domain.Posted, "u", day(3))
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestJournalStore_ActiveSlotAndReversal(t *testing.T) {
	ctx := context.Background()
	s := NewJournalStore()
	require.NoError(t, s.SaveEntry(ctx, entry("e1", "JE-1", day(2), domain.Posted, "inv-1", dr("1100", 10), cr("4000", 10))))

	err := s.SaveEntry(ctx, entry("e2", "JE-2", day(2), domain.Posted, "inv-1", dr("1100", 10), cr("4000", 10)))
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	active, err := s.FindActiveEntryByTransaction(ctx, domain.TxInvoice, "inv-1")
	require.NoError(t, err)
	assert.Equal(t, "e1", active.EntryID)

	original := "e1"
	rev := entry("r1", "JE-3", day(4), domain.Posted, "inv-1", dr("4000", 10), cr("1100", 10))
	rev.ReversalOfEntryID = &original
	require.NoError(t, s.SaveReversal(ctx, rev, "e1"))

	stored, err := s.FindEntryByID(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, domain.Reversed, stored.Status)
	require.NotNil(t, stored.ReversedByEntryID)
	assert.Equal(t, "r1", *stored.ReversedByEntryID)

	_, err = s.FindActiveEntryByTransaction(ctx, domain.TxInvoice, "inv-1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound, "reversing frees the slot")

	// A second reversal of the same original loses.
	rev2 := entry("r2", "JE-4", day(4), domain.Posted, "inv-1", dr("4000", 10), cr("1100", 10))
	rev2.ReversalOfEntryID = &original
	assert.ErrorIs(t, s.SaveReversal(ctx, rev2, "e1"), apperrors.ErrConflict)

	totals, err := s.SumByAccount(ctx, domain.LedgerFilter{})
	require.NoError(t, err)
	assert.True(t, totals["1100"].Debit.Equal(totals["1100"].Credit), "original and reversal net to zero")

	list, err := s.ListEntriesByTransaction(ctx, domain.TxInvoice, "inv-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "JE-1", list[0].EntryNumber)
	assert.Equal(t, "JE-3", list[1].EntryNumber)
}

func TestJournalStore_FiltersAndPaging(t *testing.T) {
	ctx := context.Background()
	s := NewJournalStore()
	for i := 1; i <= 5; i++ {
		id := string(rune('0' + i))
		require.NoError(t, s.SaveEntry(ctx, entry("e"+id, "JE-"+id, day(i), domain.Posted, "inv-"+id, dr("1100", int64(i)), cr("4000", int64(i)))))
	}

	from, to := day(2), day(4)
	filter := domain.LedgerFilter{From: &from, To: &to, AccountCodes: []string{"1100"}}

	n, err := s.CountLines(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	entries, err := s.CountEntries(ctx, domain.LedgerFilter{From: &from, To: &to})
	require.NoError(t, err)
	assert.Equal(t, 3, entries)

	page, err := s.QueryLines(ctx, filter, domain.Page{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "JE-3", page[0].Entry.EntryNumber)
	assert.Equal(t, "JE-4", page[1].Entry.EntryNumber)

	after := page[0].Cursor()
	rest, err := s.QueryLines(ctx, domain.LedgerFilter{After: &after, AccountCodes: []string{"1100"}}, domain.Page{})
	require.NoError(t, err)
	require.Len(t, rest, 2)
	assert.Equal(t, "JE-4", rest[0].Entry.EntryNumber)

	before := page[0].Cursor()
	totals, err := s.SumByAccount(ctx, domain.LedgerFilter{Before: &before})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(3).Equal(totals["1100"].Debit), "lines of JE-1 and JE-2 sort before JE-3")
}

func TestJournalStore_ScanStopsOnError(t *testing.T) {
	ctx := context.Background()
	s := NewJournalStore()
	require.NoError(t, s.SaveEntry(ctx, entry("e1", "JE-1", day(1), domain.Posted, "inv-1", dr("1100", 1), cr("4000", 1))))

	stop := errors.New("stop")
	calls := 0
	err := s.ScanLines(ctx, domain.LedgerFilter{}, func(domain.LedgerLine) error {
		calls++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}

func TestJournalStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewJournalStore()
	require.NoError(t, s.SaveEntry(ctx, entry("e1", "JE-1", day(1), domain.Posted, "inv-1", dr("1100", 1), cr("4000", 1))))

	got, err := s.FindEntryByID(ctx, "e1")
	require.NoError(t, err)
	got.Lines[0].AccountCode = "9999"
	got.Status = domain.Draft

	again, err := s.FindEntryByID(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, "1100", again.Lines[0].AccountCode)
	assert.Equal(t, domain.Posted, again.Status)
}

func TestBudgetStore(t *testing.T) {
	ctx := context.Background()
	s := NewBudgetStore()

	b := domain.Budget{BudgetID: "b1", Name: "Q1", Lines: []domain.BudgetLine{{ExpenseCategory: "6100", BudgetedAmount: decimal.NewFromInt(5)}}}
	require.NoError(t, s.SaveBudget(ctx, b))
	require.NoError(t, s.SaveBudget(ctx, domain.Budget{BudgetID: "b2", Name: "Q2"}))
	assert.ErrorIs(t, s.SaveBudget(ctx, b), apperrors.ErrConflict)

	got, err := s.FindBudgetByID(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, "Q1", got.Name)

	_, err = s.FindBudgetByID(ctx, "nope")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	list, err := s.ListBudgets(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "b2", list[0].BudgetID)
}
