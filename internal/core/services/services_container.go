package services

import (
	"github.com/SscSPs/ledgerbook/internal/core/domain"
	portsrepo "github.com/SscSPs/ledgerbook/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledgerbook/internal/core/ports/services"
	"github.com/SscSPs/ledgerbook/internal/platform/config"
	"github.com/SscSPs/ledgerbook/internal/platform/lock"
	"github.com/SscSPs/ledgerbook/internal/utils/accounting"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// Every service shares the same chart and the same rounding policy.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, chart portssvc.ChartOfAccounts, locker lock.Locker) *portssvc.ServiceContainer {
	policy := accounting.NewPolicy(cfg.CurrencyScale, cfg.Tolerance)
	equityPolicy := cfg.EquityPolicy
	if !equityPolicy.Valid() {
		equityPolicy = domain.FoldUnclosedEarnings
	}
	reportOpts := []ReportOption{
		WithCurrency(cfg.Currency),
		WithPolicy(policy),
		WithEquityPolicy(equityPolicy),
	}

	return &portssvc.ServiceContainer{
		Chart: chart,
		Journal: NewJournalService(repos.JournalRepo, chart,
			WithJournalLocker(locker),
			WithJournalPolicy(policy),
		),
		Ledger:    NewLedgerService(repos.JournalRepo, chart, reportOpts...),
		Reporting: NewReportingService(repos.JournalRepo, chart, reportOpts...),
		Budget:    NewBudgetService(repos.BudgetRepo, repos.JournalRepo, chart, reportOpts...),
	}
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.JournalSvcFacade = (*journalService)(nil)
	_ portssvc.LedgerSvc        = (*ledgerService)(nil)
	_ portssvc.ReportingService = (*reportingService)(nil)
	_ portssvc.BudgetSvcFacade  = (*budgetService)(nil)
)
