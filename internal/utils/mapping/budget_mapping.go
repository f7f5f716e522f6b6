package mapping

import (
	"github.com/SscSPs/ledgerbook/internal/core/domain"
	"github.com/SscSPs/ledgerbook/internal/models"
)

// ToModelBudget converts a domain Budget to a model Budget and its lines
func ToModelBudget(d domain.Budget) (models.Budget, []models.BudgetLine) {
	lines := make([]models.BudgetLine, len(d.Lines))
	for i, l := range d.Lines {
		lines[i] = models.BudgetLine{
			BudgetID:        d.BudgetID,
			LineOrder:       i + 1,
			ExpenseCategory: l.ExpenseCategory,
			BudgetedAmount:  l.BudgetedAmount,
		}
	}
	return models.Budget{
		BudgetID:    d.BudgetID,
		Name:        d.Name,
		PeriodStart: domain.DateOnly(d.PeriodStart),
		PeriodEnd:   domain.DateOnly(d.PeriodEnd),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}, lines
}

// ToDomainBudget converts a model Budget and its lines to a domain Budget
func ToDomainBudget(m models.Budget, lines []models.BudgetLine) domain.Budget {
	d := domain.Budget{
		BudgetID:    m.BudgetID,
		Name:        m.Name,
		PeriodStart: domain.DateOnly(m.PeriodStart),
		PeriodEnd:   domain.DateOnly(m.PeriodEnd),
		Lines:       make([]domain.BudgetLine, len(lines)),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
	for i, l := range lines {
		d.Lines[i] = domain.BudgetLine{ExpenseCategory: l.ExpenseCategory, BudgetedAmount: l.BudgetedAmount}
	}
	return d
}
