package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/ledgerbook/internal/apperrors"
	"github.com/SscSPs/ledgerbook/internal/core/domain"
	portsrepo "github.com/SscSPs/ledgerbook/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledgerbook/internal/core/ports/services"
	"github.com/SscSPs/ledgerbook/internal/platform/metrics"
	"github.com/SscSPs/ledgerbook/internal/utils/accounting"
)

// ledgerService answers range and balance questions over posted lines.
type ledgerService struct {
	BaseService
	ledgerRepo portsrepo.LedgerReader
	chart      portssvc.ChartOfAccounts
	cfg        reportConfig
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledgerRepo portsrepo.LedgerReader, chart portssvc.ChartOfAccounts, opts ...ReportOption) portssvc.LedgerSvc {
	return &ledgerService{
		ledgerRepo: ledgerRepo,
		chart:      chart,
		cfg:        newReportConfig(opts),
	}
}

var _ portssvc.LedgerSvc = (*ledgerService)(nil)

// resolveAccount maps an unknown code to a not-found error the handlers understand.
func resolveAccount(chart portssvc.ChartOfAccounts, code string) (domain.AccountDescriptor, error) {
	acc, err := chart.Resolve(code)
	if err != nil {
		var unknown *apperrors.UnknownAccountError
		if errors.As(err, &unknown) {
			return domain.AccountDescriptor{}, fmt.Errorf("account %s: %w", code, err)
		}
		return domain.AccountDescriptor{}, err
	}
	return acc, nil
}

// Query returns the ledger lines in the range in ledger order.
func (s *ledgerService) Query(ctx context.Context, r domain.DateRange, accountCode string) ([]domain.LedgerLine, error) {
	filter := domain.LedgerFilter{From: &r.Start, To: &r.End}
	if accountCode != "" {
		if _, err := resolveAccount(s.chart, accountCode); err != nil {
			return nil, err
		}
		filter.AccountCodes = []string{accountCode}
	}

	lines, err := s.ledgerRepo.QueryLines(ctx, filter, domain.Page{})
	if err != nil {
		s.LogError(ctx, err, "Failed to query ledger",
			slog.String("start", r.Start.Format(domain.DateLayout)),
			slog.String("end", r.End.Format(domain.DateLayout)))
		return nil, fmt.Errorf("failed to query ledger: %w", err)
	}
	return lines, nil
}

// AccountBalance is the signed sum of every line of the account up to and including asOf.
func (s *ledgerService) AccountBalance(ctx context.Context, accountCode string, asOf time.Time) (decimal.Decimal, error) {
	acc, err := resolveAccount(s.chart, accountCode)
	if err != nil {
		return decimal.Zero, err
	}
	return balanceThrough(ctx, s.ledgerRepo, acc, asOf)
}

func balanceThrough(ctx context.Context, repo portsrepo.LedgerReader, acc domain.AccountDescriptor, asOf time.Time) (decimal.Decimal, error) {
	asOf = domain.DateOnly(asOf)
	totals, err := repo.SumByAccount(ctx, domain.LedgerFilter{To: &asOf, AccountCodes: []string{acc.Code}})
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum account %s: %w", acc.Code, err)
	}
	return accounting.SignedTotal(totals[acc.Code], acc), nil
}

// TrialBalance lists cumulative activity per account through asOf.
func (s *ledgerService) TrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalanceReport, error) {
	defer metrics.ObserveReport(string(domain.ReportTrialBalance), time.Now())

	asOf = domain.DateOnly(asOf)
	totals, err := s.ledgerRepo.SumByAccount(ctx, domain.LedgerFilter{To: &asOf})
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve trial balance data", slog.String("asOf", asOf.Format(domain.DateLayout)))
		return nil, fmt.Errorf("failed to retrieve trial balance data: %w", err)
	}

	report := &domain.TrialBalanceReport{
		Metadata: s.cfg.asOfMetadata(domain.ReportTrialBalance, asOf),
		Rows:     []domain.TrialBalanceRow{},
		Summary: domain.TrialBalanceSummary{
			TotalDebits:  decimal.Zero,
			TotalCredits: decimal.Zero,
		},
	}

	seen := make(map[string]bool, len(totals))
	addRow := func(acc domain.AccountDescriptor, t domain.AccountTotals) {
		balance := accounting.SignedTotal(t, acc)
		report.Rows = append(report.Rows, domain.TrialBalanceRow{
			AccountCode: acc.Code,
			AccountName: acc.Name,
			Category:    acc.Category,
			Debit:       t.Debit,
			Credit:      t.Credit,
			Balance:     balance,
			BalanceType: accounting.BalanceType(balance, acc.NormalBalance()),
		})
		report.Summary.TotalDebits = report.Summary.TotalDebits.Add(t.Debit)
		report.Summary.TotalCredits = report.Summary.TotalCredits.Add(t.Credit)
	}
	for _, acc := range s.chart.Accounts() {
		t, ok := totals[acc.Code]
		if !ok || t.LineCount == 0 {
			continue
		}
		seen[acc.Code] = true
		addRow(acc, t)
	}
	var orphans []string
	for code := range totals {
		if !seen[code] {
			orphans = append(orphans, code)
		}
	}
	sort.Strings(orphans)
	for _, code := range orphans {
		// Lines against a code the chart no longer knows still count toward the totals.
		s.LogWarn(ctx, "Ledger holds lines for an account missing from the chart", slog.String("account_code", code))
		addRow(domain.AccountDescriptor{Code: code, Name: code, Category: domain.CategoryAsset}, totals[code])
	}

	report.Summary.BalanceCheck = s.cfg.policy.Balanced(report.Summary.TotalDebits, report.Summary.TotalCredits)
	flagConsistency(ctx, &s.BaseService, domain.ReportTrialBalance, report.Summary.BalanceCheck,
		slog.String("total_debits", report.Summary.TotalDebits.String()),
		slog.String("total_credits", report.Summary.TotalCredits.String()))

	s.LogInfo(ctx, "Trial balance report generated successfully",
		slog.String("asOf", asOf.Format(domain.DateLayout)),
		slog.Int("row_count", len(report.Rows)))
	return report, nil
}
