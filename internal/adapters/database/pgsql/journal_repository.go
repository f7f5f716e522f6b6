package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/ledgerbook/internal/apperrors"
	"github.com/SscSPs/ledgerbook/internal/core/domain"
	portsrepo "github.com/SscSPs/ledgerbook/internal/core/ports/repositories"
	"github.com/SscSPs/ledgerbook/internal/models"
	"github.com/SscSPs/ledgerbook/internal/utils/mapping"
)

const entryColumns = `e.entry_id, e.entry_number, e.entry_date, e.description, e.transaction_type, e.transaction_id,
	e.status, e.reversal_of_entry_id, e.reversed_by_entry_id, e.created_at, e.created_by, e.last_updated_at, e.last_updated_by`

const lineColumns = `l.line_id, l.entry_id, l.line_order, l.account_code, l.debit, l.credit, l.description, l.reference_id, l.reference_type`

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entries and ledger reads.
func newPgxJournalRepository(pool *pgxpool.Pool) *PgxJournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

func entryScanTargets(e *models.JournalEntry) []any {
	return []any{
		&e.EntryID, &e.EntryNumber, &e.EntryDate, &e.Description, &e.TransactionType, &e.TransactionID,
		&e.Status, &e.ReversalOfEntryID, &e.ReversedByEntryID, &e.CreatedAt, &e.CreatedBy, &e.LastUpdatedAt, &e.LastUpdatedBy,
	}
}

func lineScanTargets(l *models.JournalEntryLine) []any {
	return []any{
		&l.LineID, &l.EntryID, &l.LineOrder, &l.AccountCode, &l.Debit, &l.Credit, &l.Description, &l.ReferenceID, &l.ReferenceType,
	}
}

// transactionLockKey matches the key the journal service locks on, so that
// instances without a shared Redis still serialize writes per source transaction.
func transactionLockKey(e models.JournalEntry) string {
	return fmt.Sprintf("journal:%s:%s", e.TransactionType, e.TransactionID)
}

func advisoryLock(ctx context.Context, tx pgx.Tx, e models.JournalEntry) error {
	if e.TransactionID == "" {
		return nil
	}
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, transactionLockKey(e)); err != nil {
		return fmt.Errorf("failed to take transaction lock: %w", err)
	}
	return nil
}

// insertEntry writes the header and queues every line in a single batch.
func insertEntry(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	_, err := tx.Exec(ctx, `
		INSERT INTO journal_entries (
			entry_id, entry_number, entry_date, description, transaction_type, transaction_id,
			status, reversal_of_entry_id, reversed_by_entry_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`,
		m.EntryID, m.EntryNumber, m.EntryDate, m.Description, m.TransactionType, m.TransactionID,
		m.Status, m.ReversalOfEntryID, m.ReversedByEntryID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return translateError(err, "failed to insert journal entry "+m.EntryNumber)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_entry_lines (line_id, entry_id, line_order, account_code, debit, credit, description, reference_id, reference_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	for _, line := range entry.Lines {
		l := mapping.ToModelJournalEntryLine(line)
		batch.Queue(lineQuery, l.LineID, l.EntryID, l.LineOrder, l.AccountCode, l.Debit, l.Credit, l.Description, l.ReferenceID, l.ReferenceType)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return translateError(err, "failed to insert lines for journal entry "+m.EntryNumber)
	}
	return nil
}

// NextEntrySequence draws from journal_entry_number_seq.
func (r *PgxJournalRepository) NextEntrySequence(ctx context.Context) (int64, error) {
	var seq int64
	if err := r.Pool.QueryRow(ctx, `SELECT nextval('journal_entry_number_seq')`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("failed to draw entry sequence: %w", err)
	}
	return seq, nil
}

// SaveEntry saves an entry and all of its lines within one DB transaction.
// The partial unique index on (transaction_type, transaction_id) rejects a second active entry.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		if err := advisoryLock(ctx, tx, mapping.ToModelJournalEntry(entry)); err != nil {
			return err
		}
		return insertEntry(ctx, tx, entry)
	})
}

// SaveReversal inserts the reversal and flips the original to REVERSED in one DB transaction.
func (r *PgxJournalRepository) SaveReversal(ctx context.Context, reversal domain.JournalEntry, originalID string) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		if err := advisoryLock(ctx, tx, mapping.ToModelJournalEntry(reversal)); err != nil {
			return err
		}

		var status string
		err := tx.QueryRow(ctx, `SELECT status FROM journal_entries WHERE entry_id = $1 FOR UPDATE`, originalID).Scan(&status)
		if err != nil {
			return translateError(err, "failed to lock journal entry "+originalID)
		}
		if domain.JournalStatus(status) != domain.Posted {
			return fmt.Errorf("journal entry %s is %s, not POSTED: %w", originalID, status, apperrors.ErrConflict)
		}

		if err := insertEntry(ctx, tx, reversal); err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
			UPDATE journal_entries
			SET status = $2, reversed_by_entry_id = $3, last_updated_at = $4, last_updated_by = $5
			WHERE entry_id = $1;
		`, originalID, string(domain.Reversed), reversal.EntryID, reversal.CreatedAt, reversal.CreatedBy)
		if err != nil {
			return translateError(err, "failed to mark journal entry "+originalID+" reversed")
		}
		return nil
	})
}

// UpdateEntryStatus performs a conditional status change.
func (r *PgxJournalRepository) UpdateEntryStatus(ctx context.Context, entryID string, from, to domain.JournalStatus, updatedBy string, updatedAt time.Time) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE journal_entries
		SET status = $3, last_updated_by = $4, last_updated_at = $5
		WHERE entry_id = $1 AND status = $2;
	`, entryID, string(from), string(to), updatedBy, updatedAt)
	if err != nil {
		return translateError(err, "failed to update status of journal entry "+entryID)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	var exists bool
	if err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM journal_entries WHERE entry_id = $1)`, entryID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check journal entry %s: %w", entryID, err)
	}
	if !exists {
		return fmt.Errorf("journal entry %s: %w", entryID, apperrors.ErrNotFound)
	}
	return fmt.Errorf("journal entry %s is no longer %s: %w", entryID, from, apperrors.ErrConflict)
}

// findEntries loads headers matching where and attaches their lines.
func (r *PgxJournalRepository) findEntries(ctx context.Context, where string, args ...any) ([]domain.JournalEntry, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+entryColumns+` FROM journal_entries e WHERE `+where+` ORDER BY e.entry_number`, args...)
	if err != nil {
		return nil, translateError(err, "failed to query journal entries")
	}
	defer rows.Close()

	var headers []models.JournalEntry
	ids := make([]string, 0)
	for rows.Next() {
		var e models.JournalEntry
		if err := rows.Scan(entryScanTargets(&e)...); err != nil {
			return nil, translateError(err, "failed to scan journal entry row")
		}
		headers = append(headers, e)
		ids = append(ids, e.EntryID)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err, "error iterating journal entry rows")
	}
	if len(headers) == 0 {
		return []domain.JournalEntry{}, nil
	}

	lines, err := r.linesByEntry(ctx, ids)
	if err != nil {
		return nil, err
	}
	entries := make([]domain.JournalEntry, len(headers))
	for i, h := range headers {
		entries[i] = mapping.ToDomainJournalEntry(h, lines[h.EntryID])
	}
	return entries, nil
}

func (r *PgxJournalRepository) linesByEntry(ctx context.Context, entryIDs []string) (map[string][]models.JournalEntryLine, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+lineColumns+`
		FROM journal_entry_lines l
		WHERE l.entry_id = ANY($1::uuid[])
		ORDER BY l.entry_id, l.line_order;
	`, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entry lines: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]models.JournalEntryLine, len(entryIDs))
	for rows.Next() {
		var l models.JournalEntryLine
		if err := rows.Scan(lineScanTargets(&l)...); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry line row: %w", err)
		}
		out[l.EntryID] = append(out[l.EntryID], l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal entry line rows: %w", err)
	}
	return out, nil
}

// FindEntryByID retrieves an entry with its lines.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entries, err := r.findEntries(ctx, `e.entry_id = $1`, entryID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &entries[0], nil
}

// FindActiveEntryByTransaction returns the entry occupying the (type, id) slot.
func (r *PgxJournalRepository) FindActiveEntryByTransaction(ctx context.Context, txType domain.TransactionType, transactionID string) (*domain.JournalEntry, error) {
	entries, err := r.findEntries(ctx,
		`e.transaction_type = $1 AND e.transaction_id = $2 AND e.reversal_of_entry_id IS NULL AND e.status <> 'REVERSED'`,
		string(txType), transactionID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &entries[0], nil
}

// ListEntriesByTransaction returns every entry for a source transaction, reversals included.
func (r *PgxJournalRepository) ListEntriesByTransaction(ctx context.Context, txType domain.TransactionType, transactionID string) ([]domain.JournalEntry, error) {
	return r.findEntries(ctx, `e.transaction_type = $1 AND e.transaction_id = $2`, string(txType), transactionID)
}
