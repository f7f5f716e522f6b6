package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/SscSPs/ledgerbook/internal/core/domain"
	"github.com/SscSPs/ledgerbook/internal/models"
	"github.com/SscSPs/ledgerbook/internal/utils/mapping"
)

const ledgerFrom = `
	FROM journal_entry_lines l
	JOIN journal_entries e ON e.entry_id = l.entry_id`

const ledgerOrder = ` ORDER BY e.entry_date, e.entry_number, l.line_order`

// ledgerWhere renders a LedgerFilter as a WHERE clause with positional arguments.
func ledgerWhere(filter domain.LedgerFilter) (string, []any) {
	conds := []string{`e.status IN ('POSTED', 'REVERSED')`}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.From != nil {
		conds = append(conds, "e.entry_date >= "+arg(domain.DateOnly(*filter.From))+"::date")
	}
	if filter.To != nil {
		conds = append(conds, "e.entry_date <= "+arg(domain.DateOnly(*filter.To))+"::date")
	}
	if len(filter.AccountCodes) > 0 {
		conds = append(conds, "l.account_code = ANY("+arg(filter.AccountCodes)+"::text[])")
	}
	if len(filter.TransactionTypes) > 0 {
		types := make([]string, len(filter.TransactionTypes))
		for i, t := range filter.TransactionTypes {
			types[i] = string(t)
		}
		conds = append(conds, "e.transaction_type = ANY("+arg(types)+"::text[])")
	}
	if c := filter.After; c != nil {
		conds = append(conds, fmt.Sprintf("(e.entry_date, e.entry_number, l.line_order) > (%s::date, %s, %s)",
			arg(domain.DateOnly(c.EntryDate)), arg(c.EntryNumber), arg(c.LineOrder)))
	}
	if c := filter.Before; c != nil {
		conds = append(conds, fmt.Sprintf("(e.entry_date, e.entry_number, l.line_order) < (%s::date, %s, %s)",
			arg(domain.DateOnly(c.EntryDate)), arg(c.EntryNumber), arg(c.LineOrder)))
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *PgxJournalRepository) queryLedger(ctx context.Context, filter domain.LedgerFilter, page domain.Page, fn func(domain.LedgerLine) error) error {
	where, args := ledgerWhere(filter)
	query := `SELECT ` + entryColumns + `, ` + lineColumns + ledgerFrom + where + ledgerOrder
	if page.Limit > 0 {
		args = append(args, page.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if page.Offset > 0 {
		args = append(args, page.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to query ledger lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e models.JournalEntry
		var l models.JournalEntryLine
		if err := rows.Scan(append(entryScanTargets(&e), lineScanTargets(&l)...)...); err != nil {
			return fmt.Errorf("failed to scan ledger line row: %w", err)
		}
		if err := fn(mapping.ToDomainLedgerLine(e, l)); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating ledger line rows: %w", err)
	}
	return nil
}

// QueryLines returns a window of matching lines in ledger order.
func (r *PgxJournalRepository) QueryLines(ctx context.Context, filter domain.LedgerFilter, page domain.Page) ([]domain.LedgerLine, error) {
	out := []domain.LedgerLine{}
	err := r.queryLedger(ctx, filter, page, func(l domain.LedgerLine) error {
		out = append(out, l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ScanLines streams matching lines without materializing the result.
func (r *PgxJournalRepository) ScanLines(ctx context.Context, filter domain.LedgerFilter, fn func(domain.LedgerLine) error) error {
	return r.queryLedger(ctx, filter, domain.Page{}, fn)
}

func (r *PgxJournalRepository) count(ctx context.Context, expr string, filter domain.LedgerFilter) (int, error) {
	where, args := ledgerWhere(filter)
	var n int
	if err := r.Pool.QueryRow(ctx, `SELECT `+expr+ledgerFrom+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count ledger lines: %w", err)
	}
	return n, nil
}

func (r *PgxJournalRepository) CountLines(ctx context.Context, filter domain.LedgerFilter) (int, error) {
	return r.count(ctx, `COUNT(*)`, filter)
}

func (r *PgxJournalRepository) CountEntries(ctx context.Context, filter domain.LedgerFilter) (int, error) {
	return r.count(ctx, `COUNT(DISTINCT e.entry_id)`, filter)
}

// SumByAccount aggregates debit and credit activity per account in the database.
func (r *PgxJournalRepository) SumByAccount(ctx context.Context, filter domain.LedgerFilter) (map[string]domain.AccountTotals, error) {
	where, args := ledgerWhere(filter)
	rows, err := r.Pool.Query(ctx, `
		SELECT l.account_code, COALESCE(SUM(l.debit), 0) AS total_debit, COALESCE(SUM(l.credit), 0) AS total_credit, COUNT(*) AS line_count`+
		ledgerFrom+where+` GROUP BY l.account_code`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to sum ledger lines: %w", err)
	}
	totals, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.AccountTotals])
	if err != nil {
		return nil, fmt.Errorf("failed to scan account totals: %w", err)
	}

	out := make(map[string]domain.AccountTotals, len(totals))
	for _, t := range totals {
		out[t.AccountCode] = mapping.ToDomainAccountTotals(t)
	}
	return out, nil
}
