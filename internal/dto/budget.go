package dto

import (
	"github.com/shopspring/decimal"

	"github.com/SscSPs/ledgerbook/internal/core/domain"
)

type BudgetLineRequest struct {
	// ExpenseCategory is an account code or a chart subcategory.
	ExpenseCategory string          `json:"expenseCategory" binding:"required"`
	BudgetedAmount  decimal.Decimal `json:"budgetedAmount"`
}

// CreateBudgetRequest defines the data needed to create a budget.
type CreateBudgetRequest struct {
	Name        string              `json:"name" binding:"required"`
	PeriodStart string              `json:"periodStart" binding:"required,datetime=2006-01-02"`
	PeriodEnd   string              `json:"periodEnd" binding:"required,datetime=2006-01-02"`
	Lines       []BudgetLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// ToDomain converts the request into an unsaved budget.
func (r CreateBudgetRequest) ToDomain() (domain.Budget, error) {
	period, err := ParseRange(r.PeriodStart, r.PeriodEnd)
	if err != nil {
		return domain.Budget{}, err
	}
	lines := make([]domain.BudgetLine, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = domain.BudgetLine{ExpenseCategory: l.ExpenseCategory, BudgetedAmount: l.BudgetedAmount}
	}
	return domain.Budget{
		Name:        r.Name,
		PeriodStart: period.Start,
		PeriodEnd:   period.End,
		Lines:       lines,
	}, nil
}

// ListBudgetsQuery pages through budgets in creation order.
type ListBudgetsQuery struct {
	Limit  int `form:"limit" binding:"omitempty,min=0"`
	Offset int `form:"offset" binding:"omitempty,min=0"`
}

type BudgetLineResponse struct {
	ExpenseCategory string          `json:"expenseCategory"`
	BudgetedAmount  decimal.Decimal `json:"budgetedAmount"`
}

// BudgetResponse defines the data returned for a budget.
type BudgetResponse struct {
	BudgetID    string               `json:"budgetID"`
	Name        string               `json:"name"`
	PeriodStart string               `json:"periodStart"`
	PeriodEnd   string               `json:"periodEnd"`
	Lines       []BudgetLineResponse `json:"lines"`
	CreatedBy   string               `json:"createdBy"`
}

// ToBudgetResponse converts a domain.Budget to BudgetResponse DTO.
func ToBudgetResponse(b *domain.Budget) BudgetResponse {
	lines := make([]BudgetLineResponse, len(b.Lines))
	for i, l := range b.Lines {
		lines[i] = BudgetLineResponse{ExpenseCategory: l.ExpenseCategory, BudgetedAmount: l.BudgetedAmount}
	}
	return BudgetResponse{
		BudgetID:    b.BudgetID,
		Name:        b.Name,
		PeriodStart: FormatDate(b.PeriodStart),
		PeriodEnd:   FormatDate(b.PeriodEnd),
		Lines:       lines,
		CreatedBy:   b.CreatedBy,
	}
}

// ListBudgetsResponse wraps a page of budgets.
type ListBudgetsResponse struct {
	Budgets []BudgetResponse `json:"budgets"`
}
