package services

import (
	"context"

	"github.com/SscSPs/ledgerbook/internal/core/domain"
)

// BudgetReaderSvc defines read operations for budgets
type BudgetReaderSvc interface {
	GetBudget(ctx context.Context, budgetID string) (*domain.Budget, error)
	ListBudgets(ctx context.Context, limit, offset int) ([]domain.Budget, error)
}

// BudgetWriterSvc defines write operations for budgets
type BudgetWriterSvc interface {
	CreateBudget(ctx context.Context, budget domain.Budget, userID string) (*domain.Budget, error)
}

// BudgetVarianceSvc compares budgets with ledger actuals.
type BudgetVarianceSvc interface {
	BudgetVariance(ctx context.Context, budgetID string) (*domain.BudgetReport, error)
}

// BudgetSvcFacade combines all budget-related service interfaces
type BudgetSvcFacade interface {
	BudgetReaderSvc
	BudgetWriterSvc
	BudgetVarianceSvc
}
