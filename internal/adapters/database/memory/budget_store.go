package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/SscSPs/ledgerbook/internal/apperrors"
	"github.com/SscSPs/ledgerbook/internal/core/domain"
	portsrepo "github.com/SscSPs/ledgerbook/internal/core/ports/repositories"
)

// BudgetStore is an in-memory budget store that lists budgets in creation order.
type BudgetStore struct {
	mu      sync.RWMutex
	budgets map[string]domain.Budget
	order   []string
}

// NewBudgetStore creates an empty BudgetStore.
func NewBudgetStore() *BudgetStore {
	return &BudgetStore{budgets: make(map[string]domain.Budget)}
}

var _ portsrepo.BudgetRepositoryFacade = (*BudgetStore)(nil)

func cloneBudget(b domain.Budget) domain.Budget {
	lines := make([]domain.BudgetLine, len(b.Lines))
	copy(lines, b.Lines)
	b.Lines = lines
	return b
}

func (s *BudgetStore) SaveBudget(ctx context.Context, budget domain.Budget) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.budgets[budget.BudgetID]; exists {
		return fmt.Errorf("%w: budget %s already exists", apperrors.ErrConflict, budget.BudgetID)
	}
	s.budgets[budget.BudgetID] = cloneBudget(budget)
	s.order = append(s.order, budget.BudgetID)
	return nil
}

func (s *BudgetStore) FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.budgets[budgetID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	out := cloneBudget(b)
	return &out, nil
}

func (s *BudgetStore) ListBudgets(ctx context.Context, limit, offset int) ([]domain.Budget, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if offset < 0 {
		offset = 0
	}
	out := []domain.Budget{}
	for i := offset; i < len(s.order); i++ {
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, cloneBudget(s.budgets[s.order[i]]))
	}
	return out, nil
}
