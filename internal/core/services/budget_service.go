package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/ledgerbook/internal/apperrors"
	"github.com/SscSPs/ledgerbook/internal/core/domain"
	portsrepo "github.com/SscSPs/ledgerbook/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledgerbook/internal/core/ports/services"
	"github.com/SscSPs/ledgerbook/internal/platform/metrics"
	"github.com/SscSPs/ledgerbook/internal/utils/accounting"
)

const (
	DefaultBudgetPageSize = 20
	MaxBudgetPageSize     = 100
)

// budgetService stores budgets and compares them with ledger actuals.
// Actuals are always read from the ledger, never stored.
type budgetService struct {
	BaseService
	budgetRepo portsrepo.BudgetRepositoryFacade
	ledgerRepo portsrepo.LedgerReader
	chart      portssvc.ChartOfAccounts
	cfg        reportConfig
}

// NewBudgetService creates a new BudgetService.
func NewBudgetService(budgetRepo portsrepo.BudgetRepositoryFacade, ledgerRepo portsrepo.LedgerReader, chart portssvc.ChartOfAccounts, opts ...ReportOption) portssvc.BudgetSvcFacade {
	return &budgetService{
		budgetRepo: budgetRepo,
		ledgerRepo: ledgerRepo,
		chart:      chart,
		cfg:        newReportConfig(opts),
	}
}

var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

// matchAccounts resolves an expense category to account codes: an exact code
// match wins, otherwise every account with that subcategory.
func (s *budgetService) matchAccounts(category string) []domain.AccountDescriptor {
	if acc, err := s.chart.Resolve(category); err == nil {
		return []domain.AccountDescriptor{acc}
	}
	var matched []domain.AccountDescriptor
	for _, acc := range s.chart.Accounts() {
		if acc.Subcategory != "" && strings.EqualFold(acc.Subcategory, category) {
			matched = append(matched, acc)
		}
	}
	return matched
}

// CreateBudget validates and stores a budget.
func (s *budgetService) CreateBudget(ctx context.Context, budget domain.Budget, userID string) (*domain.Budget, error) {
	if strings.TrimSpace(budget.Name) == "" {
		return nil, apperrors.NewValidationError("name", "budget name is required")
	}
	period, err := domain.NewDateRange(budget.PeriodStart, budget.PeriodEnd)
	if err != nil || budget.PeriodStart.IsZero() {
		return nil, apperrors.NewValidationError("period", "a valid budget period is required").WithCause(err)
	}
	if len(budget.Lines) == 0 {
		return nil, apperrors.NewValidationError("lines", "budget must have at least one line")
	}

	seen := make(map[string]bool, len(budget.Lines))
	for i, l := range budget.Lines {
		if l.ExpenseCategory == "" {
			return nil, apperrors.NewLineValidationError(i, "expense_category", "expense category is required")
		}
		if seen[l.ExpenseCategory] {
			return nil, apperrors.NewLineValidationError(i, "expense_category", fmt.Sprintf("duplicate expense category %s", l.ExpenseCategory))
		}
		seen[l.ExpenseCategory] = true
		if l.BudgetedAmount.IsNegative() {
			return nil, apperrors.NewLineValidationError(i, "budgeted_amount", "amount must not be negative").WithAmount(l.BudgetedAmount)
		}
		if !s.cfg.policy.FitsScale(l.BudgetedAmount) {
			return nil, apperrors.NewLineValidationError(i, "budgeted_amount", fmt.Sprintf("amount has more than %d fractional digits", s.cfg.policy.Scale)).WithAmount(l.BudgetedAmount)
		}
		if len(s.matchAccounts(l.ExpenseCategory)) == 0 {
			return nil, apperrors.NewLineValidationError(i, "expense_category", fmt.Sprintf("%s matches no account code or subcategory", l.ExpenseCategory))
		}
	}

	now := s.cfg.now()
	budget.BudgetID = uuid.NewString()
	budget.PeriodStart = period.Start
	budget.PeriodEnd = period.End
	budget.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
	if err := s.budgetRepo.SaveBudget(ctx, budget); err != nil {
		s.LogError(ctx, err, "Failed to save budget", slog.String("name", budget.Name))
		return nil, fmt.Errorf("failed to save budget: %w", err)
	}

	s.LogInfo(ctx, "Budget created", slog.String("budget_id", budget.BudgetID), slog.Int("lines", len(budget.Lines)))
	return &budget, nil
}

// GetBudget retrieves a budget by ID.
func (s *budgetService) GetBudget(ctx context.Context, budgetID string) (*domain.Budget, error) {
	b, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("budget %s: %w", budgetID, apperrors.ErrNotFound)
		}
		s.LogError(ctx, err, "Failed to get budget", slog.String("budget_id", budgetID))
		return nil, fmt.Errorf("failed to get budget %s: %w", budgetID, err)
	}
	return b, nil
}

// ListBudgets retrieves a page of budgets.
func (s *budgetService) ListBudgets(ctx context.Context, limit, offset int) ([]domain.Budget, error) {
	if limit <= 0 {
		limit = DefaultBudgetPageSize
	}
	if limit > MaxBudgetPageSize {
		limit = MaxBudgetPageSize
	}
	if offset < 0 {
		offset = 0
	}
	budgets, err := s.budgetRepo.ListBudgets(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list budgets")
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	return budgets, nil
}

func budgetSectionName(c domain.AccountCategory) string {
	switch c {
	case domain.CategoryRevenue:
		return SectionRevenue
	case domain.CategoryCogs:
		return SectionCogs
	case domain.CategoryOperatingExpense:
		return SectionOperatingExpenses
	case domain.CategoryOtherIncome:
		return SectionOtherIncome
	case domain.CategoryOtherExpense:
		return SectionOtherExpenses
	case domain.CategoryAsset:
		return SectionAssets
	case domain.CategoryLiability:
		return SectionLiabilities
	default:
		return SectionEquity
	}
}

// BudgetVariance joins each budget line with actual ledger activity over the budget period.
func (s *budgetService) BudgetVariance(ctx context.Context, budgetID string) (*domain.BudgetReport, error) {
	defer metrics.ObserveReport(string(domain.ReportBudgetVariance), time.Now())

	budget, err := s.GetBudget(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	period := domain.DateRange{Start: domain.DateOnly(budget.PeriodStart), End: domain.DateOnly(budget.PeriodEnd)}

	totals, err := s.ledgerRepo.SumByAccount(ctx, domain.LedgerFilter{From: &period.Start, To: &period.End})
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve budget actuals", slog.String("budget_id", budgetID))
		return nil, fmt.Errorf("failed to retrieve budget actuals: %w", err)
	}

	var sections []domain.BudgetSection
	sectionIndex := make(map[string]int)
	sum := domain.BudgetSummary{TotalBudgeted: decimal.Zero, TotalActual: decimal.Zero, TotalVariance: decimal.Zero}

	for _, bl := range budget.Lines {
		matched := s.matchAccounts(bl.ExpenseCategory)
		actual := decimal.Zero
		codes := make([]string, 0, len(matched))
		for _, acc := range matched {
			codes = append(codes, acc.Code)
			actual = actual.Add(accounting.SignedTotal(totals[acc.Code], acc))
		}
		variance := actual.Sub(bl.BudgetedAmount)
		line := domain.BudgetVarianceLine{
			ExpenseCategory:    bl.ExpenseCategory,
			AccountCodes:       codes,
			BudgetedAmount:     bl.BudgetedAmount,
			ActualAmount:       actual,
			VarianceAmount:     variance,
			VariancePercentage: s.cfg.policy.Percent(variance, bl.BudgetedAmount),
			OverBudget:         variance.IsPositive(),
		}

		name := SectionOperatingExpenses
		if len(matched) > 0 {
			name = budgetSectionName(matched[0].Category)
		}
		idx, ok := sectionIndex[name]
		if !ok {
			sections = append(sections, domain.BudgetSection{SectionName: name, Items: []domain.BudgetVarianceLine{}, Subtotal: decimal.Zero})
			idx = len(sections) - 1
			sectionIndex[name] = idx
		}
		sections[idx].Items = append(sections[idx].Items, line)
		sections[idx].Subtotal = sections[idx].Subtotal.Add(actual)

		sum.TotalBudgeted = sum.TotalBudgeted.Add(bl.BudgetedAmount)
		sum.TotalActual = sum.TotalActual.Add(actual)
		if line.OverBudget {
			sum.OverBudgetCount++
		}
	}
	sum.TotalVariance = sum.TotalActual.Sub(sum.TotalBudgeted)
	sum.VariancePercentage = s.cfg.policy.Percent(sum.TotalVariance, sum.TotalBudgeted)
	for i := range sections {
		sections[i].Percentage = s.cfg.policy.Percent(sections[i].Subtotal, sum.TotalActual)
	}
	if sections == nil {
		sections = []domain.BudgetSection{}
	}

	s.LogInfo(ctx, "Budget variance report generated successfully",
		slog.String("budget_id", budgetID),
		slog.Int("over_budget", sum.OverBudgetCount))
	return &domain.BudgetReport{
		Metadata:   s.cfg.periodMetadata(domain.ReportBudgetVariance, period),
		BudgetID:   budget.BudgetID,
		BudgetName: budget.Name,
		Sections:   sections,
		Summary:    sum,
	}, nil
}
