package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/ledgerbook/internal/core/domain"
	portsrepo "github.com/SscSPs/ledgerbook/internal/core/ports/repositories"
	"github.com/SscSPs/ledgerbook/internal/models"
	"github.com/SscSPs/ledgerbook/internal/utils/mapping"
)

type PgxBudgetRepository struct {
	BaseRepository
}

func newPgxBudgetRepository(pool *pgxpool.Pool) *PgxBudgetRepository {
	return &PgxBudgetRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BudgetRepositoryFacade = (*PgxBudgetRepository)(nil)

// SaveBudget inserts a budget with its lines. Budgets are immutable once saved.
func (r *PgxBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	m, lines := mapping.ToModelBudget(budget)
	return r.inTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO budgets (budget_id, name, period_start, period_end, created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
		`, m.BudgetID, m.Name, m.PeriodStart, m.PeriodEnd, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
		if err != nil {
			return translateError(err, "failed to insert budget "+m.BudgetID)
		}

		batch := &pgx.Batch{}
		for _, l := range lines {
			batch.Queue(`
				INSERT INTO budget_lines (budget_id, line_order, expense_category, budgeted_amount)
				VALUES ($1, $2, $3, $4);
			`, l.BudgetID, l.LineOrder, l.ExpenseCategory, l.BudgetedAmount)
		}
		err = tx.SendBatch(ctx, batch).Close()
		if err != nil {
			return translateError(err, "failed to insert lines for budget "+m.BudgetID)
		}
		return nil
	})
}

const budgetColumns = `budget_id, name, period_start, period_end, created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxBudgetRepository) FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+budgetColumns+` FROM budgets WHERE budget_id = $1`, budgetID)
	if err != nil {
		return nil, translateError(err, "failed to query budget "+budgetID)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Budget])
	if err != nil {
		return nil, translateError(err, "budget "+budgetID)
	}

	lines, err := r.linesByBudget(ctx, []string{budgetID})
	if err != nil {
		return nil, err
	}
	b := mapping.ToDomainBudget(m, lines[budgetID])
	return &b, nil
}

// ListBudgets returns budgets in creation order.
func (r *PgxBudgetRepository) ListBudgets(ctx context.Context, limit, offset int) ([]domain.Budget, error) {
	if offset < 0 {
		offset = 0
	}
	query := `SELECT ` + budgetColumns + ` FROM budgets ORDER BY created_at, budget_id OFFSET $1`
	args := []any{offset}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Budget])
	if err != nil {
		return nil, fmt.Errorf("failed to scan budget rows: %w", err)
	}
	if len(ms) == 0 {
		return []domain.Budget{}, nil
	}

	ids := make([]string, len(ms))
	for i, m := range ms {
		ids[i] = m.BudgetID
	}
	lines, err := r.linesByBudget(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Budget, len(ms))
	for i, m := range ms {
		out[i] = mapping.ToDomainBudget(m, lines[m.BudgetID])
	}
	return out, nil
}

func (r *PgxBudgetRepository) linesByBudget(ctx context.Context, ids []string) (map[string][]models.BudgetLine, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT budget_id, line_order, expense_category, budgeted_amount
		FROM budget_lines
		WHERE budget_id = ANY($1::uuid[])
		ORDER BY budget_id, line_order;
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query budget lines: %w", err)
	}
	lines, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.BudgetLine])
	if err != nil {
		return nil, fmt.Errorf("failed to scan budget lines: %w", err)
	}
	out := make(map[string][]models.BudgetLine, len(ids))
	for _, l := range lines {
		out[l.BudgetID] = append(out[l.BudgetID], l)
	}
	return out, nil
}
