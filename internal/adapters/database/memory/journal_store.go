package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/ledgerbook/internal/apperrors"
	"github.com/SscSPs/ledgerbook/internal/core/domain"
	portsrepo "github.com/SscSPs/ledgerbook/internal/core/ports/repositories"
)

// indexedLine is one ledger line in the sorted index. The entry header is
// looked up at read time so status changes are visible without reindexing.
type indexedLine struct {
	cursor  domain.LedgerCursor
	entryID string
	line    domain.JournalEntryLine
}

// JournalStore is an in-memory journal and ledger store. It keeps every line
// in a slice sorted by ledger order so range reads are a binary search plus a walk.
type JournalStore struct {
	mu      sync.RWMutex
	seq     int64
	entries map[string]*domain.JournalEntry
	// active maps a (transaction_type, transaction_id) slot to the entry holding it.
	active map[string]string
	index  []indexedLine
}

// NewJournalStore creates an empty JournalStore.
func NewJournalStore() *JournalStore {
	return &JournalStore{
		entries: make(map[string]*domain.JournalEntry),
		active:  make(map[string]string),
	}
}

var _ portsrepo.JournalRepositoryFacade = (*JournalStore)(nil)

func slotKey(t domain.TransactionType, id string) string {
	return string(t) + "|" + id
}

func cloneEntry(e *domain.JournalEntry, withLines bool) domain.JournalEntry {
	out := *e
	if e.ReversalOfEntryID != nil {
		v := *e.ReversalOfEntryID
		out.ReversalOfEntryID = &v
	}
	if e.ReversedByEntryID != nil {
		v := *e.ReversedByEntryID
		out.ReversedByEntryID = &v
	}
	if withLines {
		out.Lines = make([]domain.JournalEntryLine, len(e.Lines))
		copy(out.Lines, e.Lines)
	} else {
		out.Lines = nil
	}
	return out
}

func (s *JournalStore) NextEntrySequence(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return s.seq, nil
}

// insertLocked stores the entry and indexes its lines. Caller holds s.mu.
func (s *JournalStore) insertLocked(entry domain.JournalEntry) {
	stored := cloneEntry(&entry, true)
	s.entries[entry.EntryID] = &stored
	for _, l := range stored.Lines {
		il := indexedLine{
			cursor:  domain.LedgerCursor{EntryDate: stored.EntryDate, EntryNumber: stored.EntryNumber, LineOrder: l.LineOrder},
			entryID: stored.EntryID,
			line:    l,
		}
		i := sort.Search(len(s.index), func(i int) bool { return il.cursor.Less(s.index[i].cursor) })
		s.index = append(s.index, indexedLine{})
		copy(s.index[i+1:], s.index[i:])
		s.index[i] = il
	}
}

func (s *JournalStore) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[entry.EntryID]; exists {
		return fmt.Errorf("%w: entry %s already exists", apperrors.ErrConflict, entry.EntryID)
	}
	if entry.TransactionID != "" && !entry.IsReversal() {
		key := slotKey(entry.TransactionType, entry.TransactionID)
		if holder, taken := s.active[key]; taken {
			return fmt.Errorf("%w: transaction %s/%s already recorded by entry %s",
				apperrors.ErrConflict, entry.TransactionType, entry.TransactionID, s.entries[holder].EntryNumber)
		}
		s.active[key] = entry.EntryID
	}
	s.insertLocked(entry)
	return nil
}

func (s *JournalStore) SaveReversal(ctx context.Context, reversal domain.JournalEntry, originalID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	orig, ok := s.entries[originalID]
	if !ok {
		return fmt.Errorf("original entry %s: %w", originalID, apperrors.ErrNotFound)
	}
	if orig.Status != domain.Posted {
		return fmt.Errorf("%w: original entry %s is %s", apperrors.ErrConflict, originalID, orig.Status)
	}
	if _, exists := s.entries[reversal.EntryID]; exists {
		return fmt.Errorf("%w: entry %s already exists", apperrors.ErrConflict, reversal.EntryID)
	}

	reversedBy := reversal.EntryID
	orig.Status = domain.Reversed
	orig.ReversedByEntryID = &reversedBy
	orig.LastUpdatedAt = reversal.CreatedAt
	orig.LastUpdatedBy = reversal.CreatedBy
	if orig.TransactionID != "" {
		key := slotKey(orig.TransactionType, orig.TransactionID)
		if s.active[key] == orig.EntryID {
			delete(s.active, key)
		}
	}
	s.insertLocked(reversal)
	return nil
}

func (s *JournalStore) UpdateEntryStatus(ctx context.Context, entryID string, from, to domain.JournalStatus, updatedBy string, updatedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[entryID]
	if !ok {
		return fmt.Errorf("entry %s: %w", entryID, apperrors.ErrNotFound)
	}
	if e.Status != from {
		return fmt.Errorf("%w: entry %s is %s, expected %s", apperrors.ErrConflict, entryID, e.Status, from)
	}
	e.Status = to
	e.LastUpdatedBy = updatedBy
	e.LastUpdatedAt = updatedAt
	return nil
}

func (s *JournalStore) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[entryID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	out := cloneEntry(e, true)
	return &out, nil
}

func (s *JournalStore) FindActiveEntryByTransaction(ctx context.Context, txType domain.TransactionType, transactionID string) (*domain.JournalEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.active[slotKey(txType, transactionID)]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	out := cloneEntry(s.entries[id], true)
	return &out, nil
}

func (s *JournalStore) ListEntriesByTransaction(ctx context.Context, txType domain.TransactionType, transactionID string) ([]domain.JournalEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.JournalEntry{}
	for _, e := range s.entries {
		if e.TransactionType == txType && e.TransactionID == transactionID {
			out = append(out, cloneEntry(e, true))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EntryNumber < out[j].EntryNumber })
	return out, nil
}

// walk visits matching lines in ledger order until visit returns false. Caller holds s.mu.
func (s *JournalStore) walk(filter domain.LedgerFilter, visit func(domain.LedgerLine) bool) {
	start := 0
	if filter.From != nil {
		lower := domain.LedgerCursor{EntryDate: domain.DateOnly(*filter.From)}
		start = sort.Search(len(s.index), func(i int) bool { return !s.index[i].cursor.Less(lower) })
	}
	if filter.After != nil {
		after := *filter.After
		i := sort.Search(len(s.index), func(i int) bool { return after.Less(s.index[i].cursor) })
		if i > start {
			start = i
		}
	}
	var to time.Time
	if filter.To != nil {
		to = domain.DateOnly(*filter.To)
	}

	for i := start; i < len(s.index); i++ {
		il := s.index[i]
		if filter.To != nil && domain.DateOnly(il.cursor.EntryDate).After(to) {
			return
		}
		if filter.Before != nil && !il.cursor.Less(*filter.Before) {
			return
		}
		ll := domain.LedgerLine{Entry: cloneEntry(s.entries[il.entryID], false), Line: il.line}
		if !filter.Matches(ll) {
			continue
		}
		if !visit(ll) {
			return
		}
	}
}

func (s *JournalStore) QueryLines(ctx context.Context, filter domain.LedgerFilter, page domain.Page) ([]domain.LedgerLine, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.LedgerLine{}
	skipped := 0
	s.walk(filter, func(l domain.LedgerLine) bool {
		if skipped < page.Offset {
			skipped++
			return true
		}
		out = append(out, l)
		return page.Limit <= 0 || len(out) < page.Limit
	})
	return out, nil
}

func (s *JournalStore) CountLines(ctx context.Context, filter domain.LedgerFilter) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	s.walk(filter, func(domain.LedgerLine) bool {
		n++
		return true
	})
	return n, nil
}

func (s *JournalStore) CountEntries(ctx context.Context, filter domain.LedgerFilter) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	s.walk(filter, func(l domain.LedgerLine) bool {
		seen[l.Entry.EntryID] = struct{}{}
		return true
	})
	return len(seen), nil
}

// ScanLines snapshots the matching lines under the read lock and then calls fn
// without holding it, so fn may call back into the store.
func (s *JournalStore) ScanLines(ctx context.Context, filter domain.LedgerFilter, fn func(domain.LedgerLine) error) error {
	lines, err := s.QueryLines(ctx, filter, domain.Page{})
	if err != nil {
		return err
	}
	for _, l := range lines {
		if err := fn(l); err != nil {
			return err
		}
	}
	return nil
}

func (s *JournalStore) SumByAccount(ctx context.Context, filter domain.LedgerFilter) (map[string]domain.AccountTotals, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]domain.AccountTotals)
	s.walk(filter, func(l domain.LedgerLine) bool {
		out[l.Line.AccountCode] = out[l.Line.AccountCode].Add(l.Line)
		return true
	})
	return out, nil
}
